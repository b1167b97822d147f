package handlers

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
	"roster-app-go/db"
	"roster-app-go/roster"
	"roster-app-go/shell"
)

// NewRouter wires the drawer screens, the JSON API and the roster socket
func NewRouter(screen *roster.Screen, tasks db.TaskStore, store sessions.Store) (*gin.Engine, error) {
	tmpl, err := shell.Templates()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	apiHandler := NewAPIHandler(screen, tasks)
	screenHandler := NewScreenHandler(screen, tasks, shell.DefaultProfile(), shell.DefaultTheme())
	socket := NewRosterSocket(screen)

	router := gin.Default()
	router.SetHTMLTemplate(tmpl)
	router.Use(SessionOwner(store))

	router.GET("/", screenHandler.Index)
	router.NoRoute(screenHandler.NotFound)

	// Drawer screens
	screens := router.Group("/screens")
	{
		screens.GET("/:name", screenHandler.ShowScreen)
		screens.POST("/home/tasks", screenHandler.AddTask)
		screens.POST("/home/tasks/:index/delete", screenHandler.DeleteTask)
	}

	router.GET("/ws/roster", socket.Serve)

	api := router.Group("/api")
	{
		api.GET("/roster", apiHandler.GetRoster)
		api.GET("/roster/export.xlsx", apiHandler.ExportRoster)

		api.GET("/tasks", apiHandler.ListTasks)
		api.POST("/tasks", apiHandler.AddTask)
		api.DELETE("/tasks/:index", apiHandler.DeleteTask)

		api.GET("/ping", PingHandler)
	}

	return router, nil
}
