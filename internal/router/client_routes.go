package router

import (
	"github.com/labstack/echo/v4"

	"github.com/mobembo/bus-ticket-reservation/internal/handler"
	"github.com/mobembo/bus-ticket-reservation/internal/middleware"
)

// RegisterClient registers client-scoped endpoints under /v1. All
// routes require a valid JWT and the CLIENT role. Clients can create
// bookings, list and view their own bookings, and settle a booking
// with a mobile-money payment.
func RegisterClient(e *echo.Echo, b *handler.BookingHandler, p *handler.PaymentHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("CLIENT", "ADMIN"),
	)
	// ---- Bookings ----
	g.POST("/bookings", b.CreateBooking)
	g.GET("/bookings", b.ListMyBookings)
	// Detail is owner-or-admin; the handler enforces it after loading.
	g.GET("/bookings/:id", b.GetBooking)

	// ---- Payments ----
	g.POST("/bookings/:id/payments", p.PayBooking)
	g.GET("/bookings/:id/payments", p.GetBookingPayment)
}
