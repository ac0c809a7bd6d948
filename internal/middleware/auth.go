package middleware

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"campusforum/internal/auth"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// SessionCookie is the name of the cookie carrying the session token.
const SessionCookie = "session"

// Locals keys set by SessionRequired and SessionOptional.
const (
	LocalUserID   = "userID"
	LocalIdentity = "identity"
	LocalSession  = "session"
)

// TokenFromRequest returns the session token from the session cookie or, failing
// that, from an "Authorization: Bearer <token>" header.
func TokenFromRequest(c *fiber.Ctx) string {
	if token := c.Cookies(SessionCookie); token != "" {
		return token
	}
	scheme, token, ok := strings.Cut(c.Get(fiber.HeaderAuthorization), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// SessionRequired resolves the caller's identity from the session token and
// redirects anonymous callers to the landing page with 303 See Other.
// Revocation lookups fail open when Redis is unavailable.
func SessionRequired(tokens *auth.TokenManager, rdb *redis.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session, err := resolveSession(c, tokens, rdb)
		if err != nil {
			if !errors.Is(err, errNoToken) {
				Logger.DebugContext(c.UserContext(), "session rejected",
					slog.String("path", c.Path()),
					slog.String("reason", err.Error()),
				)
			}
			return c.Redirect("/", fiber.StatusSeeOther)
		}

		attachSession(c, session)
		return c.Next()
	}
}

// SessionOptional attaches the caller's session when the request carries a
// valid one and lets every request through.
func SessionOptional(tokens *auth.TokenManager, rdb *redis.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if session, err := resolveSession(c, tokens, rdb); err == nil {
			attachSession(c, session)
		}
		return c.Next()
	}
}

// SessionFromLocals returns the session attached by SessionRequired or SessionOptional.
func SessionFromLocals(c *fiber.Ctx) (auth.Session, bool) {
	session, ok := c.Locals(LocalSession).(auth.Session)
	return session, ok
}

func attachSession(c *fiber.Ctx, session auth.Session) {
	c.Locals(LocalUserID, session.UserID)
	c.Locals(LocalIdentity, session.Identity)
	c.Locals(LocalSession, session)

	ctx := context.WithValue(c.UserContext(), UserIDKey, session.UserID)
	c.SetUserContext(auth.WithIdentity(ctx, session.Identity))
}

var errNoToken = errors.New("no session token")

func resolveSession(c *fiber.Ctx, tokens *auth.TokenManager, rdb *redis.Client) (auth.Session, error) {
	raw := TokenFromRequest(c)
	if raw == "" {
		return auth.Session{}, errNoToken
	}

	session, err := tokens.Parse(raw)
	if err != nil {
		return auth.Session{}, err
	}

	revoked, err := auth.IsRevoked(c.UserContext(), rdb, session.TokenID)
	if err != nil {
		Logger.WarnContext(c.UserContext(), "token revocation lookup failed",
			slog.String("error", err.Error()),
		)
	}
	if revoked {
		return auth.Session{}, auth.ErrRevokedToken
	}
	return session, nil
}
