package view

import (
	"bytes"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"

	"todoview/internal/service"
)

func TestMain(m *testing.M) {
	time.Local = time.UTC
	os.Exit(m.Run())
}

func mustDoc(t *testing.T, data PageData) *goquery.Document {
	t.Helper()
	var buf bytes.Buffer
	if err := WriteHTML(&buf, data); err != nil {
		t.Fatalf("render failed: %v", err)
	}
	doc, err := goquery.NewDocumentFromReader(&buf)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	return doc
}

func TestRenderTasks_Empty(t *testing.T) {
	list := RenderTasks(nil, "")
	if !list.Empty {
		t.Error("expected empty list")
	}
	if list.ListVisible() {
		t.Error("list container should be hidden")
	}
	if !list.PlaceholderVisible() {
		t.Error("placeholder should be shown")
	}
}

func TestRenderTasks_NonEmpty(t *testing.T) {
	tasks := []service.Task{
		{ID: "2", Title: "B", Completed: true},
		{ID: "1", Title: "A"},
	}
	list := RenderTasks(tasks, "")
	if list.Empty || !list.ListVisible() || list.PlaceholderVisible() {
		t.Fatalf("expected visible list, got %+v", list)
	}
	if len(list.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(list.Items))
	}
	// Server order is kept
	if list.Items[0].ID != "2" || list.Items[1].ID != "1" {
		t.Errorf("order changed: %s, %s", list.Items[0].ID, list.Items[1].ID)
	}
	if list.Items[0].Toggle.Label != LabelCompleted || list.Items[0].Toggle.Style != StyleSuccess {
		t.Errorf("unexpected toggle for completed task: %+v", list.Items[0].Toggle)
	}
	if list.Items[1].Toggle.Label != LabelMarkComplete || list.Items[1].Toggle.Style != StylePrimary {
		t.Errorf("unexpected toggle for open task: %+v", list.Items[1].Toggle)
	}
	if list.Items[1].Delete.DOMID != "delete-1" || list.Items[1].Delete.Action != "/todos/1/delete" {
		t.Errorf("unexpected delete control: %+v", list.Items[1].Delete)
	}
}

func TestRenderTasks_BuyMilkScenario(t *testing.T) {
	tasks := []service.Task{{
		ID:        "1",
		Title:     "Buy milk",
		CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}}
	page := NewPage()
	page.ShowTasks(RenderTasks(tasks, "1/2/2006"))
	doc := mustDoc(t, page.Snapshot())

	items := doc.Find("#todo-list .todo-item")
	if items.Length() != 1 {
		t.Fatalf("expected 1 item, got %d", items.Length())
	}
	if got := items.Find(".todo-title").Text(); got != "Buy milk" {
		t.Errorf("expected title %q, got %q", "Buy milk", got)
	}
	if items.Find(".todo-description").Length() != 0 {
		t.Error("expected no description block")
	}
	if got := strings.TrimSpace(doc.Find("#toggle-1").Text()); got != "Mark Complete" {
		t.Errorf("expected %q, got %q", "Mark Complete", got)
	}
	if got := items.Find(".todo-date").Text(); got != "Created: 1/1/2024" {
		t.Errorf("unexpected date %q", got)
	}
	if !doc.Find("#todo-list").HasClass("visible") {
		t.Error("list container should be visible")
	}
	if !doc.Find("#empty-state").HasClass("hidden") {
		t.Error("placeholder should be hidden")
	}
}

func TestWriteHTML_EmptyState(t *testing.T) {
	doc := mustDoc(t, NewPage().Snapshot())

	if doc.Find("#empty-state").HasClass("hidden") {
		t.Error("placeholder should be shown")
	}
	if doc.Find("#todo-list").HasClass("visible") {
		t.Error("list container should be hidden")
	}
	if doc.Find(".todo-item").Length() != 0 {
		t.Error("expected no items")
	}
}

func TestWriteHTML_EscapesMarkup(t *testing.T) {
	title := `<script>alert("x")</script>`
	desc := `<img src=x onerror="alert(1)"> & more`
	page := NewPage()
	page.ShowTasks(RenderTasks([]service.Task{{ID: "5", Title: title, Description: desc}}, ""))
	data := page.Snapshot()
	data.Form = FormState{Title: `"><b>`, Description: `</textarea><i>`}

	doc := mustDoc(t, data)

	if doc.Find("script").Length() != 0 {
		t.Error("title produced a script element")
	}
	if doc.Find("img").Length() != 0 {
		t.Error("description produced an img element")
	}
	if doc.Find("b").Length() != 0 || doc.Find("i").Length() != 0 {
		t.Error("form input produced markup")
	}
	// Escaping round-trips to the input text
	if got := doc.Find(".todo-title").Text(); got != title {
		t.Errorf("expected title text %q, got %q", title, got)
	}
	if got := doc.Find(".todo-description").Text(); got != desc {
		t.Errorf("expected description text %q, got %q", desc, got)
	}
	if got, _ := doc.Find("#todo-title").Attr("value"); got != `"><b>` {
		t.Errorf("expected form title %q, got %q", `"><b>`, got)
	}
}

func TestWriteHTML_ErrorState(t *testing.T) {
	page := NewPage()
	page.ShowTasks(ErrorList("Failed to load tasks."))
	doc := mustDoc(t, page.Snapshot())

	if got := doc.Find(".todo-error p").Text(); got != "Failed to load tasks." {
		t.Errorf("unexpected error text %q", got)
	}
	if doc.Find("#empty-state").HasClass("hidden") == false {
		t.Error("placeholder should be hidden in error state")
	}
}

func TestRenderStats(t *testing.T) {
	page := NewPage()
	page.ShowStats(RenderStats(service.Statistics{Total: 5, Completed: 2, Incomplete: 3}))
	doc := mustDoc(t, page.Snapshot())

	want := map[string]string{
		"#total-count":      "5",
		"#completed-count":  "2",
		"#incomplete-count": "3",
	}
	for sel, v := range want {
		if got := doc.Find(sel).Text(); got != v {
			t.Errorf("%s: expected %q, got %q", sel, v, got)
		}
	}
}

func TestRenderStats_Verbatim(t *testing.T) {
	// Counts are never reconciled client-side
	s := RenderStats(service.Statistics{Total: 1, Completed: 7, Incomplete: 0})
	if s != (Stats{Total: "1", Completed: "7", Incomplete: "0"}) {
		t.Errorf("unexpected stats %+v", s)
	}
}

func TestFormatDate(t *testing.T) {
	ts := time.Date(2024, 3, 9, 15, 4, 0, 0, time.UTC)
	if got := FormatDate(ts, ""); got != "3/9/2024" {
		t.Errorf("expected %q, got %q", "3/9/2024", got)
	}
	if got := FormatDate(ts, "2006-01-02"); got != "2024-03-09" {
		t.Errorf("expected %q, got %q", "2024-03-09", got)
	}
	if got := FormatDate(time.Time{}, ""); got != "" {
		t.Errorf("expected empty string for zero time, got %q", got)
	}
}

func TestRenderTasks_WhitespaceDescriptionOmitted(t *testing.T) {
	list := RenderTasks([]service.Task{{ID: "1", Title: "t", Description: "   "}}, "")
	if list.Items[0].HasDescription() {
		t.Error("whitespace description should be omitted")
	}
}

func TestWriteHTML_Notices(t *testing.T) {
	data := NewPage().Snapshot()
	data.Notices = []Notice{{Level: LevelError, Message: "Failed to update task"}}

	doc := mustDoc(t, data)
	if got := doc.Find(".notice-error").Text(); got != "Failed to update task" {
		t.Errorf("unexpected notice %q", got)
	}
}

func TestPage_SnapshotHasNoUserState(t *testing.T) {
	page := NewPage()
	page.ShowTasks(RenderTasks([]service.Task{{ID: "1", Title: "t"}}, ""))

	data := page.Snapshot()
	if data.Form != (FormState{}) || len(data.Notices) != 0 {
		t.Errorf("snapshot should carry only shared regions, got %+v %+v", data.Form, data.Notices)
	}
	data.List.Items[0].Title = "changed"
	if it, _ := page.Item("1"); it.Title != "t" {
		t.Error("snapshot items alias the page")
	}
}

func TestWriteConfirm(t *testing.T) {
	var buf bytes.Buffer
	err := WriteConfirm(&buf, ConfirmData{
		Prompt: "Are you sure you want to delete this task?",
		Title:  "<b>x</b>",
		Action: "/todos/1/delete",
	})
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	doc, err := goquery.NewDocumentFromReader(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if action, _ := doc.Find("form").Attr("action"); action != "/todos/1/delete" {
		t.Errorf("unexpected action %q", action)
	}
	if doc.Find(".confirm-title b").Length() != 0 {
		t.Error("title produced markup")
	}
	if doc.Find(`button[name="confirm"][value="yes"]`).Length() != 1 {
		t.Error("expected confirm button")
	}
}
