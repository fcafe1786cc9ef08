package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/snake_catalogue/internal/service"
	"github.com/Skotchmaster/snake_catalogue/pkg/logging"
)

type Policy int

const (
	Public Policy = iota
	RequiresAuthenticatedUser
	RequiresActiveUser
)

func (p Policy) String() string {
	switch p {
	case Public:
		return "public"
	case RequiresAuthenticatedUser:
		return "authenticated"
	case RequiresActiveUser:
		return "active"
	default:
		return "unknown"
	}
}

const (
	identityKey = "identity"

	msgUnauthenticated = "Could not validate credentials"
	msgInactive        = "Inactive user"
)

type Authenticator interface {
	Resolve(ctx context.Context, token string) (*service.Identity, error)
	RequireActive(id *service.Identity) (*service.Identity, error)
}

type Guard struct {
	Auth Authenticator
}

func NewGuard(a Authenticator) *Guard {
	return &Guard{Auth: a}
}

// Protect returns the middleware enforcing p. Only resolution failures are
// answered here; whatever next returns is passed on unchanged.
func (g *Guard) Protect(p Policy) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		if p == Public {
			return next
		}
		return func(c echo.Context) error {
			id, err := g.authorize(c, p)
			if err != nil {
				return err
			}
			c.Set(identityKey, id)
			return next(c)
		}
	}
}

func (g *Guard) authorize(c echo.Context, p Policy) (*service.Identity, error) {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("middleware", "auth.guard", "policy", p.String())

	token, ok := BearerToken(c.Request())
	if !ok {
		l.Warn("rejected", "status", 401, "reason", "missing bearer token")
		return nil, unauthorized(c)
	}

	id, err := g.Auth.Resolve(ctx, token)
	if err != nil {
		if errors.Is(err, service.ErrUnauthenticated) {
			l.Warn("rejected", "status", 401, "reason", "token cannot be resolved", "error", err)
			return nil, unauthorized(c)
		}
		l.Error("rejected", "status", 500, "error", err)
		return nil, echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	if p == RequiresActiveUser {
		if _, err := g.Auth.RequireActive(id); err != nil {
			l.Warn("rejected", "status", 400, "reason", "inactive user", "username", id.Username)
			return nil, echo.NewHTTPError(http.StatusBadRequest, msgInactive)
		}
	}
	return id, nil
}

func unauthorized(c echo.Context) error {
	c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
	return echo.NewHTTPError(http.StatusUnauthorized, msgUnauthenticated)
}

// BearerToken extracts the token of an "Authorization: Bearer <token>" header.
func BearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get(echo.HeaderAuthorization)
	scheme, token, found := strings.Cut(h, " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func IdentityFromContext(c echo.Context) (*service.Identity, bool) {
	id, ok := c.Get(identityKey).(*service.Identity)
	return id, ok && id != nil
}
