package shell

import (
	"fmt"
	"html/template"
	"strings"
)

// Theme is the style table shared by every screen
type Theme struct {
	Background  string
	Surface     string
	Border      string
	Title       string
	Text        string
	Accent      string
	AccentText  string
	Danger      string
	Spinner     string
	TitleSize   int
	TextSize    int
	MaxWidth    int
	Radius      int
	PhotoSize   int
	DrawerPhoto int
}

// DefaultTheme returns the app's style table
func DefaultTheme() Theme {
	return Theme{
		Background:  "#f9f9f9",
		Surface:     "#ffffff",
		Border:      "#ddd",
		Title:       "#333",
		Text:        "#555",
		Accent:      "#007bff",
		AccentText:  "#fff",
		Danger:      "red",
		Spinner:     "#0000ff",
		TitleSize:   22,
		TextSize:    16,
		MaxWidth:    600,
		Radius:      10,
		PhotoSize:   120,
		DrawerPhoto: 60,
	}
}

// CSS renders the theme as a stylesheet
func (t Theme) CSS() template.CSS {
	var b strings.Builder
	rule := func(selector, body string, args ...interface{}) {
		fmt.Fprintf(&b, "%s{%s}\n", selector, fmt.Sprintf(body, args...))
	}

	rule("body", "margin:0;display:flex;min-height:100vh;font-family:sans-serif;color:%s", t.Text)
	rule(".drawer", "width:220px;border-right:1px solid %s;padding:20px 0;background:%s", t.Border, t.Surface)
	rule(".drawer-profile", "display:flex;flex-direction:column;align-items:center;margin-bottom:20px")
	rule(".drawer-profile img", "width:%dpx;height:%dpx;border-radius:50%%;margin-bottom:10px", t.DrawerPhoto, t.DrawerPhoto)
	rule(".drawer-title", "font-size:18px;font-weight:bold;color:%s", t.Title)
	rule(".drawer a", "display:block;padding:10px 20px;color:%s;text-decoration:none", t.Title)
	rule(".drawer a.active", "background:%s;color:%s", t.Accent, t.AccentText)
	rule(".screen", "flex:1;display:flex;flex-direction:column;align-items:center;padding:20px")
	rule(".container", "width:100%%;max-width:%dpx;display:flex;flex-direction:column;align-items:center;padding:20px;background:%s;box-sizing:border-box", t.MaxWidth, t.Background)
	rule(".border", "border:1px solid %s;border-radius:%dpx", t.Border, t.Radius)
	rule(".title", "font-size:%dpx;font-weight:bold;color:%s;margin-bottom:20px;text-align:center", t.TitleSize, t.Title)
	rule(".text", "font-size:%dpx;color:%s;margin:0 0 10px", t.TextSize, t.Text)
	rule(".profile-photo", "width:%dpx;height:%dpx;border-radius:50%%;margin-bottom:10px", t.PhotoSize, t.PhotoSize)
	rule(".todo", "margin-top:20px;width:100%%;max-width:%dpx", t.MaxWidth)
	rule(".todo input[type=text]", "width:100%%;box-sizing:border-box;border:1px solid %s;padding:10px;margin-bottom:10px;border-radius:5px", t.Border)
	rule(".add-button", "width:100%%;background:%s;color:%s;padding:10px;border:0;border-radius:5px;font-size:%dpx", t.Accent, t.AccentText, t.TextSize)
	rule(".task", "display:flex;justify-content:space-between;align-items:center;padding:10px;background:%s;margin-bottom:10px;border:1px solid %s;border-radius:5px", t.Background, t.Border)
	rule(".delete-button", "color:%s;font-size:14px;background:none;border:0;cursor:pointer", t.Danger)
	rule(".error-text", "font-size:18px;color:%s;text-align:center", t.Danger)
	rule(".roster", "width:100%%;max-height:70vh;overflow-y:auto;padding-bottom:20px")
	rule(".list-item", "padding:15px;margin-bottom:10px;background:%s;border:1px solid %s;border-radius:8px;box-shadow:0 2px 4px rgba(0,0,0,.3)", t.Surface, t.Border)
	rule(".spinner", "width:36px;height:36px;border:4px solid %s;border-top-color:%s;border-radius:50%%;animation:spin 1s linear infinite", t.Border, t.Spinner)
	b.WriteString("@keyframes spin{to{transform:rotate(360deg)}}\n")
	return template.CSS(b.String())
}
