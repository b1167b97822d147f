package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/sessions"
)

const (
	sessionName   = "roster-app"
	ownerKey      = "owner"
	sessionMaxAge = 7 * 24 * 60 * 60
)

// SessionOwner assigns each browser a stable owner id for its to-do list
func SessionOwner(store sessions.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, err := store.Get(c.Request, sessionName)
		if err != nil {
			// A stale or tampered cookie still yields a fresh session
			log.Printf("Discarding unreadable session cookie: %v", err)
		}

		owner, _ := sess.Values[ownerKey].(string)
		if owner == "" {
			owner = uuid.NewString()
			sess.Values[ownerKey] = owner
			sess.Options = &sessions.Options{
				Path:     "/",
				MaxAge:   sessionMaxAge,
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			}
			if err := sess.Save(c.Request, c.Writer); err != nil {
				log.Printf("Error saving session: %v", err)
			}
		}

		c.Set(ownerKey, owner)
		c.Next()
	}
}

func ownerOf(c *gin.Context) string {
	return c.GetString(ownerKey)
}
