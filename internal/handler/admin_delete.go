// This file implements DELETE endpoints allowing an admin to remove
// companies, buses, routes and schedules. Cascading deletions are
// performed in the repository layer. Bookings are a financial record
// and are never deleted, so any resource with bookings underneath it
// answers 409 Conflict instead.
package handler

import (
    "database/sql" // sentinel errors such as sql.ErrNoRows
    "net/http"     // status code constants
    "strconv"      // string-to-integer conversion

    "github.com/labstack/echo/v4"

    "github.com/mobembo/bus-ticket-reservation/internal/repository"
)

// DeleteCompany handles DELETE /v1/admin/companies/:id. It removes the
// company with its buses, routes and schedules. Returns 204 on success,
// 404 when missing, 409 when bookings exist under the company.
func (h *AdminHandler) DeleteCompany(c echo.Context) error {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    err = h.CompanyRepo.DeleteByID(c.Request().Context(), id)
    if err != nil {
        switch err {
        case sql.ErrNoRows:
            return c.JSON(http.StatusNotFound, echo.Map{"error": "company not found"})
        case repository.ErrConflict:
            return c.JSON(http.StatusConflict, echo.Map{"error": "company has bookings"})
        default:
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
        }
    }
    return c.NoContent(http.StatusNoContent)
}

// DeleteBus handles DELETE /v1/admin/buses/:id. A bus referenced by any
// schedule cannot be removed.
func (h *AdminHandler) DeleteBus(c echo.Context) error {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    err = h.BusRepo.DeleteByID(c.Request().Context(), id)
    if err != nil {
        switch err {
        case sql.ErrNoRows:
            return c.JSON(http.StatusNotFound, echo.Map{"error": "bus not found"})
        case repository.ErrConflict:
            return c.JSON(http.StatusConflict, echo.Map{"error": "bus has schedules"})
        default:
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
        }
    }
    return c.NoContent(http.StatusNoContent)
}

// DeleteRoute handles DELETE /v1/admin/routes/:id. A route with
// schedules cannot be removed.
func (h *AdminHandler) DeleteRoute(c echo.Context) error {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    err = h.RouteRepo.DeleteByID(c.Request().Context(), id)
    if err != nil {
        switch err {
        case sql.ErrNoRows:
            return c.JSON(http.StatusNotFound, echo.Map{"error": "route not found"})
        case repository.ErrConflict:
            return c.JSON(http.StatusConflict, echo.Map{"error": "route has schedules"})
        default:
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
        }
    }
    return c.NoContent(http.StatusNoContent)
}

// DeleteSchedule handles DELETE /v1/admin/schedules/:id. A schedule
// with bookings cannot be removed; cancel it instead.
func (h *AdminHandler) DeleteSchedule(c echo.Context) error {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    err = h.ScheduleRepo.DeleteByID(c.Request().Context(), id)
    if err != nil {
        switch err {
        case sql.ErrNoRows:
            return c.JSON(http.StatusNotFound, echo.Map{"error": "schedule not found"})
        case repository.ErrConflict:
            return c.JSON(http.StatusConflict, echo.Map{"error": "schedule has bookings"})
        default:
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
        }
    }
    return c.NoContent(http.StatusNoContent)
}
