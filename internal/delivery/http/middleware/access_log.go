package middleware

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

const (
	HeaderRequestID    = "X-Request-ID"
	CtxRequestIDKey    = "request_id"
	maxRequestIDLength = 64
)

// RequestID returns the ID assigned by the access log middleware, or "-" when
// the request never passed through it.
func RequestID(c fiber.Ctx) string {
	if rid, ok := c.Locals(CtxRequestIDKey).(string); ok && rid != "" {
		return rid
	}
	return "-"
}

type AccessLogMiddleware struct {
	logger *log.Logger
}

func NewAccessLogMiddleware(logger *log.Logger) *AccessLogMiddleware {
	if logger == nil {
		logger = log.Default()
	}
	return &AccessLogMiddleware{logger: logger}
}

// Middleware tags every request with an ID, echoes it in the response header
// and writes one [HTTP] access line once the rest of the chain has run.
func (m *AccessLogMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()

		rid := c.Get(HeaderRequestID)
		if !validRequestID(rid) {
			rid = uuid.NewString()
		}
		c.Locals(CtxRequestIDKey, rid)
		c.Set(HeaderRequestID, rid)

		err := c.Next()

		userID := "-"
		if id, ok := c.Locals(CtxUserIDKey).(uuid.UUID); ok {
			userID = id.String()
		}

		m.logger.Printf(
			"[HTTP] access rid=%s method=%s path=%s status=%d latency=%s ip=%s user_id=%s resp_bytes=%d ua=%q",
			rid, c.Method(), c.Path(), c.Response().StatusCode(), time.Since(start),
			c.IP(), userID, len(c.Response().Body()), c.Get(fiber.HeaderUserAgent),
		)

		return err
	}
}

// validRequestID accepts client IDs that are short and made of visible ASCII
// so they cannot break the key=value log format.
func validRequestID(rid string) bool {
	if rid == "" || len(rid) > maxRequestIDLength {
		return false
	}
	for i := 0; i < len(rid); i++ {
		if rid[i] <= ' ' || rid[i] > '~' || rid[i] == '"' || rid[i] == '=' {
			return false
		}
	}
	return true
}
