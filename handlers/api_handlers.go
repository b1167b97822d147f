package handlers

import (
	"bytes"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"roster-app-go/db"
	"roster-app-go/roster"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// APIHandler holds the dependencies of the JSON API
type APIHandler struct {
	Roster *roster.Screen
	Tasks  db.TaskStore
}

// NewAPIHandler creates a new APIHandler
func NewAPIHandler(screen *roster.Screen, tasks db.TaskStore) *APIHandler {
	return &APIHandler{
		Roster: screen,
		Tasks:  tasks,
	}
}

// --- Roster Handlers ---

// GetRoster handles GET /api/roster
func (h *APIHandler) GetRoster(c *gin.Context) {
	state := h.Roster.Render(c.Request.Context())
	switch s := state.(type) {
	case roster.Loaded:
		SuccessResponse(c, http.StatusOK, roster.SnapshotOf(s))
	case roster.Failed:
		ErrorResponse(c, http.StatusBadGateway, s.Message)
	default:
		// Client went away before the load finished
		c.Abort()
	}
}

// ExportRoster handles GET /api/roster/export.xlsx
func (h *APIHandler) ExportRoster(c *gin.Context) {
	state := h.Roster.Render(c.Request.Context())
	switch s := state.(type) {
	case roster.Loaded:
		var buf bytes.Buffer
		if err := roster.WriteWorkbook(&buf, s.Records); err != nil {
			log.Printf("Error in ExportRoster handler: %v", err)
			ErrorResponse(c, http.StatusInternalServerError, "Failed to build workbook")
			return
		}
		c.Header("Content-Disposition", `attachment; filename="roster.xlsx"`)
		c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
	case roster.Failed:
		ErrorResponse(c, http.StatusBadGateway, s.Message)
	default:
		c.Abort()
	}
}

// --- Task Handlers ---

type addTaskRequest struct {
	Text string `json:"text"`
}

// ListTasks handles GET /api/tasks
func (h *APIHandler) ListTasks(c *gin.Context) {
	tasks, err := h.Tasks.List(c.Request.Context(), ownerOf(c))
	if err != nil {
		log.Printf("Error in ListTasks handler: %v", err)
		ErrorResponse(c, http.StatusInternalServerError, "Failed to retrieve tasks")
		return
	}
	SuccessResponse(c, http.StatusOK, tasks)
}

// AddTask handles POST /api/tasks
func (h *APIHandler) AddTask(c *gin.Context) {
	var req addTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	owner := ownerOf(c)
	if err := h.Tasks.Add(c.Request.Context(), owner, req.Text); err != nil {
		if errors.Is(err, db.ErrEmptyTask) {
			ErrorResponse(c, http.StatusBadRequest, "Task text is required")
			return
		}
		log.Printf("Error in AddTask handler: %v", err)
		ErrorResponse(c, http.StatusInternalServerError, "Failed to add task")
		return
	}

	tasks, err := h.Tasks.List(c.Request.Context(), owner)
	if err != nil {
		log.Printf("Error listing tasks after add: %v", err)
		ErrorResponse(c, http.StatusInternalServerError, "Failed to retrieve tasks")
		return
	}
	SuccessResponse(c, http.StatusCreated, tasks)
}

// DeleteTask handles DELETE /api/tasks/:index
func (h *APIHandler) DeleteTask(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Task index must be a number")
		return
	}

	owner := ownerOf(c)
	if err := h.Tasks.Remove(c.Request.Context(), owner, index); err != nil {
		if errors.Is(err, db.ErrTaskNotFound) {
			ErrorResponse(c, http.StatusNotFound, "Task not found")
			return
		}
		log.Printf("Error in DeleteTask handler for index %d: %v", index, err)
		ErrorResponse(c, http.StatusInternalServerError, "Failed to delete task")
		return
	}

	tasks, err := h.Tasks.List(c.Request.Context(), owner)
	if err != nil {
		log.Printf("Error listing tasks after delete: %v", err)
		ErrorResponse(c, http.StatusInternalServerError, "Failed to retrieve tasks")
		return
	}
	SuccessResponse(c, http.StatusOK, tasks)
}

// --- Ping Handler ---
func PingHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Pong!"})
}
