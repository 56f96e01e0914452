package router // package router registers the viewer's HTTP routes

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-planner/internal/handler"
	"github.com/iliyamo/cinema-planner/internal/middleware"
)

// RegisterRoutes mounts the health check at /healthz and the read-only viewer
// under /v1. When secret is non-empty every /v1 route requires a viewer token.
func RegisterRoutes(e *echo.Echo, v *handler.Viewer, secret string) {
	e.GET("/healthz", v.Health)

	g := e.Group("/v1")
	if secret != "" {
		g.Use(middleware.ViewerAuth(secret))
	}

	g.GET("/summary", v.Summary)

	// ---- Cinemas ----
	g.GET("/cinemas", v.Cinemas)
	g.GET("/cinemas/:index", v.Cinema)

	// ---- Movies & tags ----
	g.GET("/movies", v.Movies)
	g.GET("/tags", v.Tags)

	// ---- Search ----
	g.GET("/search/cinemas", v.SearchCinemas)
	g.GET("/search/movies", v.SearchMovies)
}
