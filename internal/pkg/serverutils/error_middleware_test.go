// FILE: internal/pkg/serverutils/error_middleware_test.go
package serverutils

import (
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Prajankrish/Lex-AI/internal/dto"

	"github.com/gofiber/fiber/v2"
)

func appReturning(err error) *fiber.App {
	app := fiber.New()
	app.Use(ErrorHandlerMiddleware())
	app.Get("/boom", func(c *fiber.Ctx) error {
		return err
	})
	return app
}

func TestErrorHandlerMapsDomainErrors(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"validation", &ValidationError{Fields: map[string]string{"Message": "is required"}}, fiber.StatusBadRequest},
		{"embedding rejected", &dto.EmbeddingError{Reason: "empty query"}, fiber.StatusBadRequest},
		{"session not found", &dto.NotFoundError{Resource: "chat session"}, fiber.StatusNotFound},
		{"daily limit", &dto.LimitExceededError{Limit: 200, Used: 201, ResetAfter: time.Now().Add(time.Hour)}, fiber.StatusTooManyRequests},
		{"index not ready", &dto.IndexNotReadyError{}, fiber.StatusServiceUnavailable},
		{"prompt budget", &dto.BudgetExceededError{Budget: 200, Required: 900}, fiber.StatusInternalServerError},
		{"fiber error passthrough", fiber.ErrTeapot, fiber.StatusTeapot},
		{"opaque error", errors.New("connection refused"), fiber.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := appReturning(tc.err)
			resp, err := app.Test(httptest.NewRequest("GET", "/boom", nil))
			if err != nil {
				t.Fatalf("app.Test: %v", err)
			}
			defer resp.Body.Close()
			if resp.StatusCode != tc.want {
				t.Errorf("status = %d, want %d", resp.StatusCode, tc.want)
			}
		})
	}
}

func TestErrorHandlerPassesCleanRequests(t *testing.T) {
	app := fiber.New()
	app.Use(ErrorHandlerMiddleware())
	app.Get("/ok", func(c *fiber.Ctx) error {
		return c.JSON(SuccessResponse("ok", "data"))
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/ok", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != fiber.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}
