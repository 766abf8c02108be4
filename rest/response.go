// Package rest carries the transport envelope and the single boundary that
// translates error kinds into HTTP responses. Every outward payload, success
// or failure, uses the same shape so clients parse failures uniformly.
package rest

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// Envelope is the uniform response body: success flag, human message,
// optional data, and an RFC 3339 timestamp.
type Envelope struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Data      any    `json:"data,omitempty"`
	Timestamp string `json:"timestamp"`
}

// Success builds a successful envelope around data.
func Success(data any, message string) Envelope {
	if message == "" {
		message = "Operation successful"
	}
	return Envelope{
		Success:   true,
		Message:   message,
		Data:      data,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

// Failure builds an error envelope with no data.
func Failure(message string) Envelope {
	return Envelope{
		Success:   false,
		Message:   message,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

// JSON writes an envelope with the given status code.
func JSON(c *fiber.Ctx, status int, env Envelope) error {
	return c.Status(status).JSON(env)
}
