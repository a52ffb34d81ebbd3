package ws

import (
	"log"
	"net/http"
	"strings"

	"github.com/26nm/careerpath/internal/pkg/jwt"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gorilla/websocket"
)

type Handler struct {
	hub    *Hub
	jwt    jwt.Service
	logger *log.Logger
}

func NewHandler(hub *Hub, jwtSvc jwt.Service, logger *log.Logger) *Handler {
	return &Handler{hub: hub, jwt: jwtSvc, logger: logger}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

func (h *Handler) HandleWS(c fiber.Ctx) error {
	if h == nil || h.hub == nil {
		return fiber.ErrServiceUnavailable
	}
	return adaptor.HTTPHandler(h)(c)
}

// ServeHTTP authenticates with an access token from ?token= (browsers cannot
// set headers on websocket requests) or the Authorization header.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	token := strings.TrimSpace(r.URL.Query().Get("token"))
	if token == "" {
		token = bearerToken(r.Header.Get("Authorization"))
	}
	if token == "" || h.jwt == nil {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}
	claims, err := h.jwt.ValidateAccessToken(token)
	if err != nil {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		if h.logger != nil {
			h.logger.Printf("WS upgrade error | error=%v", err)
		}
		return
	}

	client := NewClient(h.hub, conn, claims.UserID)
	if !h.hub.Register(client) {
		_ = conn.Close()
		return
	}
	go client.WritePump()
	go client.ReadPump()
}

func bearerToken(header string) string {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}
