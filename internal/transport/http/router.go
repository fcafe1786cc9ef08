package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/snake_catalogue/internal/handlers"
	authmw "github.com/Skotchmaster/snake_catalogue/internal/middleware/auth"
)

type Deps struct {
	Guard          *authmw.Guard
	HealthHandler  *handlers.HealthHandler
	AuthHandler    *handlers.AuthHandler
	SnakeHandler   *handlers.SnakeHandler
	MessageHandler *handlers.MessageHandler
}

type Route struct {
	Method  string
	Path    string
	Policy  authmw.Policy
	Handler echo.HandlerFunc
}

// Routes is the access policy of the API: every exposed operation appears
// here exactly once together with the policy the guard enforces for it.
func Routes(d *Deps) []Route {
	return []Route{
		{http.MethodGet, "/health/live", authmw.Public, d.HealthHandler.Live},
		{http.MethodGet, "/health/ready", authmw.Public, d.HealthHandler.Ready},

		{http.MethodPost, "/token", authmw.Public, d.AuthHandler.Login},
		{http.MethodPost, "/users", authmw.Public, d.AuthHandler.Register},
		{http.MethodGet, "/users/me", authmw.RequiresActiveUser, d.AuthHandler.Me},

		{http.MethodPost, "/upload", authmw.RequiresActiveUser, d.SnakeHandler.UploadImage},
		{http.MethodPost, "/snakes", authmw.RequiresActiveUser, d.SnakeHandler.CreateSnake},
		{http.MethodGet, "/snakes", authmw.Public, d.SnakeHandler.ListSnakes},
		{http.MethodGet, "/snakes/search", authmw.Public, d.SnakeHandler.SearchSnakes},
		{http.MethodGet, "/snakes/:id", authmw.RequiresActiveUser, d.SnakeHandler.GetSnake},
		{http.MethodPatch, "/snakes/:id", authmw.RequiresActiveUser, d.SnakeHandler.PatchSnake},
		{http.MethodDelete, "/snakes/:id", authmw.RequiresActiveUser, d.SnakeHandler.DeleteSnake},

		{http.MethodPost, "/messages", authmw.Public, d.MessageHandler.CreateMessage},
		{http.MethodGet, "/messages", authmw.RequiresActiveUser, d.MessageHandler.ListMessages},
		{http.MethodGet, "/messages/:id", authmw.RequiresActiveUser, d.MessageHandler.GetMessage},
		{http.MethodDelete, "/messages/:id", authmw.RequiresActiveUser, d.MessageHandler.DeleteMessage},
	}
}

func Register(e *echo.Echo, d *Deps) {
	for _, r := range Routes(d) {
		e.Add(r.Method, r.Path, r.Handler, d.Guard.Protect(r.Policy))
	}
}
