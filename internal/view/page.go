package view

import "sync"

// Level classifies a notice. It becomes the notice's CSS class suffix.
type Level string

const LevelError Level = "error"

// Notice is a user-visible message.
type Notice struct {
	Level   Level  `json:"level"`
	Message string `json:"message"`
}

// FormState holds the create form's input fields.
type FormState struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
}

// PageData is everything one render of the page needs. List and Stats come
// from the shared Page; Form and Notices belong to the requesting user.
type PageData struct {
	List    TaskList
	Stats   Stats
	Form    FormState
	Notices []Notice
}

// Page owns the regions every viewer shares: the list and the statistics.
// Each update replaces its region wholesale, so the latest completed
// refresh wins. Page is safe for concurrent use.
type Page struct {
	mu    sync.Mutex
	list  TaskList
	stats Stats
}

// NewPage returns a page with an empty list and zeroed statistics.
func NewPage() *Page {
	return &Page{
		list:  TaskList{Empty: true},
		stats: Stats{Total: "0", Completed: "0", Incomplete: "0"},
	}
}

// ShowTasks replaces the list region.
func (p *Page) ShowTasks(l TaskList) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.list = l
}

// ShowStats replaces the statistics region.
func (p *Page) ShowStats(s Stats) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stats = s
}

// Snapshot copies the shared regions. Form and Notices are left empty for
// the caller to fill in.
func (p *Page) Snapshot() PageData {
	p.mu.Lock()
	defer p.mu.Unlock()

	data := PageData{List: p.list, Stats: p.stats}
	data.List.Items = append([]Item(nil), p.list.Items...)
	return data
}

// Item returns the displayed item for id.
func (p *Page) Item(id string) (Item, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, it := range p.list.Items {
		if it.ID.String() == id {
			return it, true
		}
	}
	return Item{}, false
}
