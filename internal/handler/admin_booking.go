// This file implements the admin views of bookings: the passenger
// manifest of a departure and direct lookup of any booking.
package handler

import (
    "net/http"
    "strconv"

    "github.com/labstack/echo/v4"

    "github.com/mobembo/bus-ticket-reservation/internal/repository"
)

// ListScheduleBookings handles GET /v1/admin/schedules/:id/bookings.
// It returns every booking placed on the departure, newest first,
// including payment state per booking.
func (h *AdminHandler) ListScheduleBookings(c echo.Context) error {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    ctx := c.Request().Context()
    if _, err := h.ScheduleRepo.GetByID(ctx, id); err != nil {
        if err == repository.ErrScheduleNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "schedule not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    items, err := h.BookingRepo.ListBySchedule(ctx, id)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// GetAnyBooking handles GET /v1/admin/bookings/:id. Admins can inspect
// any booking regardless of owner.
func (h *AdminHandler) GetAnyBooking(c echo.Context) error {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    det, err := h.BookingRepo.GetDetailByID(c.Request().Context(), id)
    if err != nil {
        if err == repository.ErrBookingNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, det)
}
