package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // Echo web framework to handle routing

	"github.com/mobembo/bus-ticket-reservation/internal/handler"    // handlers that implement business logic
	"github.com/mobembo/bus-ticket-reservation/internal/middleware" // JWT authentication and role enforcement
)

// RegisterRoutes registers routes that do not require authentication on
// the provided Echo instance. Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// Load balancers and monitoring systems use /healthz to verify that
	// the service is up and running.
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers all authentication-related routes and applies
// the necessary middleware. Unauthenticated operations live under
// /v1/auth, while protected endpoints live under /v1.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	// Operations that do not require an existing session: register,
	// login, token refresh.
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	// Rotates the refresh token.
	g.POST("/refresh", a.Refresh)
	// Issues a new access token without rotating the refresh token.
	g.POST("/refresh-access", a.RefreshAccess)
	// Logout does not require JWT authentication; the handler accepts a
	// refresh_token body or an Authorization header.
	g.POST("/logout", a.Logout)

	// Protected endpoints. Both roles may query their own identity.
	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.Use(middleware.RequireRole("ADMIN", "CLIENT"))
	auth.GET("/me", a.Me)

	// Alias so clients can call either /v1/auth/logout or /v1/logout.
	e.POST("/v1/logout", a.Logout)
}

// RegisterPublic registers unauthenticated browse endpoints on the
// provided Echo instance. The PublicHandler returns sanitized data for
// companies, routes and schedules. These routes apply no JWT or role
// middleware and are intended for guest users. Extra middleware, such
// as the Redis response cache, can be passed in; it applies to these
// routes only so per-user responses are never cached.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler, mws ...echo.MiddlewareFunc) {
	g := e.Group("/v1", mws...)
	// Expose list of all companies
	g.GET("/companies", p.GetPublicCompanies)
	// Company details by id
	g.GET("/companies/:id", p.GetPublicCompany)
	// List routes served by a specific company
	g.GET("/companies/:id/routes", p.GetPublicRoutesByCompany)
	// List upcoming departures on a specific route
	g.GET("/routes/:id/schedules", p.GetPublicSchedulesByRoute)
	// Departure details by schedule id, including remaining seats
	g.GET("/schedules/:id", p.GetPublicSchedule)
	// Search departures by origin/destination/date/company
	g.GET("/search/schedules", p.SearchSchedules)
}
