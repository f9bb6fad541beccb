package web

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"todoview/internal/view"
)

const (
	// FlashCookie carries one user's action result across the redirect.
	FlashCookie = "todoview_flash"

	flashMaxAge = 60 // seconds
	flashMaxLen = 3000
)

// flash is what an action hands to the next page render of the same browser.
type flash struct {
	Notices []view.Notice  `json:"notices,omitempty"`
	Form    view.FormState `json:"form,omitzero"`
	// Fresh means the action already refreshed (or deliberately did not),
	// so the render that follows must not fetch again.
	Fresh bool `json:"fresh,omitempty"`
}

func writeFlash(w http.ResponseWriter, f flash) {
	value := encodeFlash(f)
	if len(value) > flashMaxLen {
		// Drop the retained draft before the notices
		f.Form = view.FormState{}
		value = encodeFlash(f)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     FlashCookie,
		Value:    value,
		Path:     "/",
		MaxAge:   flashMaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// readFlash returns the pending flash and clears it, so it is shown once.
// A missing or damaged cookie yields the zero flash.
func readFlash(w http.ResponseWriter, r *http.Request) flash {
	var f flash
	c, err := r.Cookie(FlashCookie)
	if err != nil {
		return f
	}
	http.SetCookie(w, &http.Cookie{Name: FlashCookie, Path: "/", MaxAge: -1})

	data, err := base64.RawURLEncoding.DecodeString(c.Value)
	if err != nil {
		return flash{}
	}
	if err := json.Unmarshal(data, &f); err != nil {
		return flash{}
	}
	return f
}

func encodeFlash(f flash) string {
	data, _ := json.Marshal(f)
	return base64.RawURLEncoding.EncodeToString(data)
}
