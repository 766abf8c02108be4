package rest_test

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
	"github.com/stretchr/testify/assert"

	"github.com/careloop/backend/rest"
)

type envelope struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// serve runs a handler returning err through the translator and decodes the
// response.
func serve(t *testing.T, err error) (*http.Response, envelope) {
	t.Helper()

	app := fiber.New()
	app.Get("/boom", func(c *fiber.Ctx) error {
		return rest.RespondError(c, err, nil)
	})

	resp, testErr := app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil), -1)
	assert.NoError(t, testErr)

	payload, readErr := io.ReadAll(resp.Body)
	assert.NoError(t, readErr)

	var env envelope
	assert.NoError(t, json.Unmarshal(payload, &env))
	return resp, env
}

func TestRespondError_CategoryMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{
			"validation maps to 400",
			errors.New("Name is required", errors.CategoryValidation),
			http.StatusBadRequest,
			"Name is required",
		},
		{
			"auth maps to 401",
			errors.New("Invalid token", errors.CategoryAuth),
			http.StatusUnauthorized,
			"Invalid token",
		},
		{
			"authz maps to 403",
			errors.New("Access denied", errors.CategoryAuthz),
			http.StatusForbidden,
			"Access denied",
		},
		{
			"not found maps to 404",
			errors.New("Routine not found", errors.CategoryNotFound),
			http.StatusNotFound,
			"Routine not found",
		},
		{
			"conflict maps to 409",
			errors.New("Email is already registered", errors.CategoryConflict),
			http.StatusConflict,
			"Email is already registered",
		},
		{
			"rate limit maps to 429",
			errors.New("Too many login attempts, try again later", errors.CategoryRateLimit),
			http.StatusTooManyRequests,
			"Too many login attempts, try again later",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			resp, env := serve(t, tc.err)

			assert.Equal(t, tc.wantStatus, resp.StatusCode)
			assert.False(t, env.Success)
			assert.Equal(t, tc.wantMsg, env.Message)
			assert.NotEmpty(t, env.Timestamp)
		})
	}
}

func TestRespondError_ExplicitCodeWins(t *testing.T) {
	err := errors.New("Gone away", errors.CategoryOperation).WithCode(http.StatusGone)

	resp, env := serve(t, err)
	assert.Equal(t, http.StatusGone, resp.StatusCode)
	assert.Equal(t, "Gone away", env.Message)
}

func TestRespondError_InternalDetailNeverLeaks(t *testing.T) {
	t.Run("rich internal error", func(t *testing.T) {
		err := errors.New("database handshake failed on node 3", errors.CategoryInternal)

		resp, env := serve(t, err)
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		assert.Equal(t, "An unexpected error occurred", env.Message)
	})

	t.Run("plain error", func(t *testing.T) {
		resp, env := serve(t, fmt.Errorf("dial tcp 10.0.0.3: connection refused"))

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		assert.Equal(t, "An unexpected error occurred", env.Message)
	})
}

func TestSuccessEnvelope(t *testing.T) {
	env := rest.Success(map[string]string{"k": "v"}, "")
	assert.True(t, env.Success)
	assert.Equal(t, "Operation successful", env.Message)
	assert.NotNil(t, env.Data)
	assert.NotEmpty(t, env.Timestamp)

	failure := rest.Failure("nope")
	assert.False(t, failure.Success)
	assert.Nil(t, failure.Data)
}
