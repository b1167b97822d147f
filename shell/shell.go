// Package shell is the drawer navigation shell: the fixed set of screens,
// the static profile content and the theme they are rendered with.
package shell

import (
	"embed"
	"html/template"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Screen is one entry of the drawer menu
type Screen struct {
	Name     string // URL segment
	Title    string // Drawer label
	Template string
}

const (
	ScreenHome    = "home"
	ScreenAbout   = "about"
	ScreenHobbies = "hobbies"
	ScreenRoster  = "api-data"
)

var screens = [...]Screen{
	{Name: ScreenHome, Title: "Home", Template: "home.tmpl"},
	{Name: ScreenAbout, Title: "AboutMe", Template: "about.tmpl"},
	{Name: ScreenHobbies, Title: "Hobbies", Template: "hobbies.tmpl"},
	{Name: ScreenRoster, Title: "API Data", Template: "roster.tmpl"},
}

// Screens returns the drawer entries in menu order
func Screens() []Screen {
	out := make([]Screen, len(screens))
	copy(out, screens[:])
	return out
}

// Lookup finds a screen by name
func Lookup(name string) (Screen, bool) {
	for _, s := range screens {
		if s.Name == name {
			return s, true
		}
	}
	return Screen{}, false
}

// Profile is the static content of the home, about and hobbies screens
type Profile struct {
	Name     string
	NIM      string
	PhotoURL string
	About    string
	Hobbies  []string
}

// DefaultProfile returns the profile shown by the app
func DefaultProfile() Profile {
	return Profile{
		Name:     "M. Firmansyah",
		NIM:      "222505011",
		PhotoURL: "https://media-cgk2-1.cdn.whatsapp.net/v/t61.24694-24/468933809_453250327545213_3989911470315984905_n.jpg?stp=dst-jpg_tt6&ccb=11-4&oh=01_Q5AaILS_3CXCtCl55OX_f0PIRmh6tse6VL7HIU43nhX4_4_Q&oe=6763A288&_nc_sid=5e03e0&_nc_cat=105",
		About:    "Saya adalah seorang mahasiswa semester 5 universitas ma'soem yang sedang belajar react native.",
		Hobbies:  []string{"Voly", "MAin game", "Menonton Film", "Renang", "Running"},
	}
}

// Templates parses the embedded screen templates
func Templates() (*template.Template, error) {
	return template.New("").Funcs(template.FuncMap{
		"inc": func(i int) int { return i + 1 },
	}).ParseFS(templateFS, "templates/*.tmpl")
}
