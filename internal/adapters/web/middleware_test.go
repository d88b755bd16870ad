package web

import (
	"net/http/httptest"
	"testing"
	"time"

	"reposter/pkg/log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

func setupTestApp() *fiber.App {
	app := fiber.New()
	app.Use(requestid.New(RequestIDConfig()))
	app.Use(RequestIDToContextMiddleware())
	return app
}

func TestRequestIDToContext_ExtractsIDFromFiber(t *testing.T) {
	app := setupTestApp()

	var capturedRequestID string
	app.Get("/test", func(c *fiber.Ctx) error {
		capturedRequestID = log.RequestIDFromContext(c.UserContext())
		return c.SendString("ok")
	})

	req := httptest.NewRequest("GET", "/test", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	defer resp.Body.Close()

	if capturedRequestID == "" {
		t.Error("request_id should be extracted from Fiber's requestid middleware")
	}

	headerID := resp.Header.Get("X-Request-ID")
	if headerID != capturedRequestID {
		t.Errorf("response header = %q, context = %q, should match", headerID, capturedRequestID)
	}
}

func TestRequestIDToContext_UsesProvidedID(t *testing.T) {
	app := setupTestApp()

	var capturedRequestID string
	app.Get("/test", func(c *fiber.Ctx) error {
		capturedRequestID = log.RequestIDFromContext(c.UserContext())
		return c.SendString("ok")
	})

	req := httptest.NewRequest("GET", "/test", nil)
	req.Header.Set("X-Request-ID", "custom-trace-id-123")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	defer resp.Body.Close()

	if capturedRequestID != "custom-trace-id-123" {
		t.Errorf("request_id = %q, want %q", capturedRequestID, "custom-trace-id-123")
	}
}

func TestRateLimiter_UnderLimit_Allows(t *testing.T) {
	// Arrange
	rl := NewRateLimiter(3, time.Minute)

	// Act
	rl.Record("1.2.3.4")
	rl.Record("1.2.3.4")

	// Assert
	if !rl.Allow("1.2.3.4") {
		t.Error("expected IP under the limit to be allowed")
	}
}

func TestRateLimiter_AtLimit_Blocks(t *testing.T) {
	// Arrange
	rl := NewRateLimiter(2, time.Minute)

	// Act
	rl.Record("1.2.3.4")
	rl.Record("1.2.3.4")

	// Assert
	if rl.Allow("1.2.3.4") {
		t.Error("expected IP at the limit to be blocked")
	}
}

func TestRateLimiter_DifferentIPs_TrackedSeparately(t *testing.T) {
	// Arrange
	rl := NewRateLimiter(1, time.Minute)
	rl.Record("1.2.3.4")

	// Assert
	if rl.Allow("1.2.3.4") {
		t.Error("first IP should be blocked")
	}
	if !rl.Allow("5.6.7.8") {
		t.Error("second IP should be allowed")
	}
}

func TestRateLimiter_OldEntriesOutsideWindow_Ignored(t *testing.T) {
	// Arrange
	rl := NewRateLimiter(1, 20*time.Millisecond)
	rl.Record("1.2.3.4")

	// Act
	time.Sleep(40 * time.Millisecond)

	// Assert
	if !rl.Allow("1.2.3.4") {
		t.Error("entries outside the window should not count")
	}
}
