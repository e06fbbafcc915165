package server

import (
	"io"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/encryptcookie"
	"github.com/gofiber/fiber/v3/middleware/session"
)

// newSessionTestApp builds an app with the production middleware order
// (encryptcookie wrapping session) and routes that store and read the
// "user_sub" value the auth callback puts in the session.
func newSessionTestApp(t *testing.T) *fiber.App {
	t.Helper()

	app := fiber.New()

	app.Use(encryptcookie.New(encryptcookie.Config{
		Key: deriveEncryptionKey("test-secret-that-is-long-enough-for-production"),
	}))

	sessionMiddleware, _ := session.NewWithStore(session.Config{
		CookieHTTPOnly: true,
		CookieSameSite: "Lax",
	})
	app.Use(sessionMiddleware)

	app.Post("/login", func(c fiber.Ctx) error {
		sess := session.FromContext(c)
		if sess == nil {
			return c.Status(500).SendString("no session")
		}
		sess.Set("user_sub", "oidc|user-123")
		return c.SendString("ok")
	})
	app.Get("/whoami", func(c fiber.Ctx) error {
		sess := session.FromContext(c)
		if sess == nil {
			return c.Status(500).SendString("no session")
		}
		sub, _ := sess.Get("user_sub").(string)
		return c.SendString(sub)
	})

	return app
}

// replay sends a GET carrying the given cookies and returns the body.
func replay(t *testing.T, app *fiber.App, cookies []*http.Cookie) (*http.Response, string) {
	t.Helper()

	req, _ := http.NewRequest("GET", "/whoami", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("replay request failed: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	return resp, string(body)
}

// The login flow stores the OIDC subject in the session and every later
// request decrypts the session cookie to resolve the user. This
// round-trips an encrypted session cookie twice to make sure the stack
// keeps returning the stored subject.
func TestSessionCookieCarriesUserSub(t *testing.T) {
	app := newSessionTestApp(t)

	req, _ := http.NewRequest("POST", "/login", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("login request failed: %v", err)
	}
	if resp.StatusCode != 200 {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("login: expected 200, got %d: %s", resp.StatusCode, body)
	}

	cookies := resp.Cookies()
	if len(cookies) == 0 {
		t.Fatal("login returned no session cookie")
	}

	resp2, body := replay(t, app, cookies)
	if resp2.StatusCode != 200 {
		t.Fatalf("first replay: expected 200, got %d: %s", resp2.StatusCode, body)
	}
	if body != "oidc|user-123" {
		t.Errorf("first replay: user_sub = %q, want %q", body, "oidc|user-123")
	}

	// Replay once more with whichever cookies the last response issued.
	replayCookies := resp2.Cookies()
	if len(replayCookies) == 0 {
		replayCookies = cookies
	}
	resp3, body3 := replay(t, app, replayCookies)
	if resp3.StatusCode != 200 {
		t.Fatalf("second replay: expected 200, got %d: %s", resp3.StatusCode, body3)
	}
	if body3 != "oidc|user-123" {
		t.Errorf("second replay: user_sub = %q, want %q", body3, "oidc|user-123")
	}
}

// An anonymous request must not see a subject left over from another
// client's session.
func TestSessionCookieAnonymousIsEmpty(t *testing.T) {
	app := newSessionTestApp(t)

	// Establish one logged-in session first.
	req, _ := http.NewRequest("POST", "/login", nil)
	if _, err := app.Test(req); err != nil {
		t.Fatalf("login request failed: %v", err)
	}

	resp, body := replay(t, app, nil)
	if resp.StatusCode != 200 {
		t.Fatalf("anonymous request: expected 200, got %d: %s", resp.StatusCode, body)
	}
	if body != "" {
		t.Errorf("anonymous request: user_sub = %q, want empty", body)
	}
}
