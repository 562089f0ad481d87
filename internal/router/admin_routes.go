package router

import (
	"github.com/labstack/echo/v4"

	"github.com/mobembo/bus-ticket-reservation/internal/handler"
	"github.com/mobembo/bus-ticket-reservation/internal/middleware"
)

// RegisterAdmin registers ADMIN-scoped endpoints under /v1/admin.
// All routes require a valid JWT and the ADMIN role.
func RegisterAdmin(e *echo.Echo, a *handler.AdminHandler, jwtSecret string) {
	g := e.Group(
		"/v1/admin",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("ADMIN"),
	)

	// ---- Companies ----
	g.POST("/companies", a.CreateCompany)
	g.GET("/companies", a.ListCompanies)
	g.GET("/companies/:id", a.GetCompany)
	g.PUT("/companies/:id", a.UpdateCompany)
	g.PATCH("/companies/:id", a.UpdateCompany)
	g.DELETE("/companies/:id", a.DeleteCompany)

	// ---- Buses ----
	g.POST("/companies/:id/buses", a.CreateBus)
	g.GET("/companies/:id/buses", a.ListBuses)
	g.PUT("/buses/:id", a.UpdateBus)
	g.PATCH("/buses/:id", a.UpdateBus)
	g.DELETE("/buses/:id", a.DeleteBus)

	// ---- Routes ----
	g.POST("/companies/:id/routes", a.CreateRoute)
	g.GET("/companies/:id/routes", a.ListRoutes)
	g.PUT("/routes/:id", a.UpdateRoute)
	g.PATCH("/routes/:id", a.UpdateRoute)
	g.DELETE("/routes/:id", a.DeleteRoute)

	// ---- Schedules ----
	g.POST("/schedules", a.CreateSchedule)
	g.PUT("/schedules/:id", a.UpdateScheduleTimes)
	g.PATCH("/schedules/:id/status", a.UpdateScheduleStatus)
	g.DELETE("/schedules/:id", a.DeleteSchedule)

	// ---- Bookings (read-only views) ----
	g.GET("/schedules/:id/bookings", a.ListScheduleBookings)
	g.GET("/bookings/:id", a.GetAnyBooking)
}
