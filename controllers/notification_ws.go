package controller

import (
	"log"

	"github.com/gofiber/websocket/v2"

	"webgestor/config"
	"webgestor/models"
	"webgestor/store"
	"webgestor/utils"
)

// NotificationStream pushes the caller's notifications over a websocket
// as they are created. Browsers cannot set an Authorization header on a
// websocket upgrade, so the access token travels as a query parameter.
func NotificationStream(s *store.Store) func(*websocket.Conn) {
	return func(c *websocket.Conn) {
		defer c.Close()

		token := c.Query("token")
		if token == "" {
			_ = c.WriteJSON(map[string]string{"error": "token required"})
			return
		}

		claims, err := utils.ParseJWTToken(token)
		if err != nil {
			_ = c.WriteJSON(map[string]string{"error": "invalid token"})
			return
		}

		var user models.User
		if err := config.DB.First(&user, claims.UserID).Error; err != nil {
			_ = c.WriteJSON(map[string]string{"error": "user not found"})
			return
		}
		if !user.IsActive || claims.TokenVersion != user.TokenVersion {
			_ = c.WriteJSON(map[string]string{"error": "invalid token"})
			return
		}

		profile, err := utils.EnsureProfile(config.DB, &user)
		if err != nil {
			_ = c.WriteJSON(map[string]string{"error": "profile unavailable"})
			return
		}

		id, events := s.Hub().Subscribe()
		defer s.Hub().Unsubscribe(id)

		// Drain incoming frames so close and ping control messages are
		// processed; the subscription ends when the client goes away.
		done := make(chan struct{})
		go func() {
			defer close(done)
			for {
				if _, _, err := c.ReadMessage(); err != nil {
					return
				}
			}
		}()

		for {
			select {
			case <-done:
				return
			case n, ok := <-events:
				if !ok {
					return
				}
				if n.UserID != profile.ID {
					continue
				}
				if err := c.WriteJSON(n); err != nil {
					log.Printf("notification stream write: %v", err)
					return
				}
			}
		}
	}
}
