// Package server contains HTTP and WebSocket handlers for the application's API endpoints.
package server

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// WebsocketBookingsHandler handles GET /api/ws/bookings. Connected clients
// receive booking events for their own bookings and, for hosts, bookings
// against their listings. The stream is one-way; client frames are ignored.
func (s *Server) WebsocketBookingsHandler() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		userIDVal := conn.Locals("userID")
		if userIDVal == nil {
			_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"unauthorized"}`))
			_ = conn.Close()
			return
		}
		userID := userIDVal.(uint)

		if s.hub == nil {
			// No Redis means no event fan-out; refuse rather than hold a
			// silent connection open.
			_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"events unavailable"}`))
			_ = conn.Close()
			return
		}

		client, err := s.hub.Register(userID, conn)
		if err != nil {
			log.Printf("booking ws: failed to register user %d: %v", userID, err)
			_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"`+err.Error()+`"}`))
			_ = conn.Close()
			return
		}

		go client.WritePump()
		client.ReadPump()
	})
}
