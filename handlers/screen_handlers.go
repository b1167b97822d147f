package handlers

import (
	"errors"
	"html/template"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"roster-app-go/db"
	"roster-app-go/roster"
	"roster-app-go/shell"
)

const homePath = "/screens/" + shell.ScreenHome

// ScreenHandler renders the drawer screens
type ScreenHandler struct {
	Roster  *roster.Screen
	Tasks   db.TaskStore
	Profile shell.Profile
	css     template.CSS
}

// NewScreenHandler creates a new ScreenHandler
func NewScreenHandler(screen *roster.Screen, tasks db.TaskStore, profile shell.Profile, theme shell.Theme) *ScreenHandler {
	return &ScreenHandler{
		Roster:  screen,
		Tasks:   tasks,
		Profile: profile,
		css:     theme.CSS(),
	}
}

func (h *ScreenHandler) page(s shell.Screen) gin.H {
	return gin.H{
		"Title":   s.Title,
		"Current": s.Name,
		"Screens": shell.Screens(),
		"Profile": h.Profile,
		"CSS":     h.css,
	}
}

// Index handles GET /
func (h *ScreenHandler) Index(c *gin.Context) {
	c.Redirect(http.StatusFound, homePath)
}

// NotFound renders JSON for API paths and the not-found page otherwise
func (h *ScreenHandler) NotFound(c *gin.Context) {
	if strings.HasPrefix(c.Request.URL.Path, "/api") {
		ErrorResponse(c, http.StatusNotFound, "Not found")
		return
	}
	data := h.page(shell.Screen{Title: "Not Found"})
	c.HTML(http.StatusNotFound, "notfound.tmpl", data)
}

// ShowScreen handles GET /screens/:name
func (h *ScreenHandler) ShowScreen(c *gin.Context) {
	s, ok := shell.Lookup(c.Param("name"))
	if !ok {
		h.NotFound(c)
		return
	}
	data := h.page(s)

	switch s.Name {
	case shell.ScreenHome:
		tasks, err := h.Tasks.List(c.Request.Context(), ownerOf(c))
		if err != nil {
			log.Printf("Error listing tasks for home screen: %v", err)
			data["Error"] = "Gagal memuat daftar tugas."
		}
		data["Tasks"] = tasks
	case shell.ScreenRoster:
		if c.Query("mode") == "static" {
			// Mounted for the lifetime of this request
			state := h.Roster.Render(c.Request.Context())
			if !roster.Terminal(state) {
				c.Abort()
				return
			}
			data["Snapshot"] = roster.SnapshotOf(state)
			data["Static"] = true
		} else {
			data["Snapshot"] = roster.SnapshotOf(roster.Loading{})
			data["Static"] = false
		}
	}

	c.HTML(http.StatusOK, s.Template, data)
}

// AddTask handles POST /screens/home/tasks
func (h *ScreenHandler) AddTask(c *gin.Context) {
	err := h.Tasks.Add(c.Request.Context(), ownerOf(c), c.PostForm("text"))
	if err != nil && !errors.Is(err, db.ErrEmptyTask) {
		log.Printf("Error adding task from form: %v", err)
	}
	c.Redirect(http.StatusSeeOther, homePath)
}

// DeleteTask handles POST /screens/home/tasks/:index/delete
func (h *ScreenHandler) DeleteTask(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err == nil {
		err = h.Tasks.Remove(c.Request.Context(), ownerOf(c), index)
	}
	if err != nil && !errors.Is(err, db.ErrTaskNotFound) {
		log.Printf("Error deleting task %q from form: %v", c.Param("index"), err)
	}
	c.Redirect(http.StatusSeeOther, homePath)
}
