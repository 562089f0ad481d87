// Package handler exposes HTTP handlers for both authenticated and public endpoints.
// This file defines handlers for the public browsing API. These routes allow
// unauthenticated users to browse companies, routes and departures without
// requiring authentication. Sensitive fields are filtered from responses.

package handler

import (
    "net/http"
    "strconv"

    "github.com/labstack/echo/v4"

    "github.com/mobembo/bus-ticket-reservation/internal/repository"
)

// PublicHandler aggregates repositories needed for unauthenticated browsing.
// It produces sanitized responses suitable for public consumption.
type PublicHandler struct {
    CompanyRepo  *repository.CompanyRepo  // provides access to company data
    RouteRepo    *repository.RouteRepo    // provides access to route data
    ScheduleRepo *repository.ScheduleRepo // provides access to schedule data
}

// PublicCompany represents a company exposed via the public API. It contains
// only safe fields.
type PublicCompany struct {
    ID   uint64 `json:"id"`
    Name string `json:"name"`
}

// PublicRoute represents a route in list responses with the display price
// alongside the cent amount.
type PublicRoute struct {
    ID              uint64  `json:"id"`
    Origin          string  `json:"origin"`
    Destination     string  `json:"destination"`
    PriceCents      int64   `json:"price_cents"`
    Price           float64 `json:"price"`
    DurationMinutes uint32  `json:"duration_minutes"`
}

// GetPublicCompanies returns a list of all companies accessible to
// unauthenticated users. Response JSON contains an "items" array.
func (h *PublicHandler) GetPublicCompanies(c echo.Context) error {
    ctx := c.Request().Context()
    companies, err := h.CompanyRepo.ListAll(ctx)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    out := make([]PublicCompany, 0, len(companies))
    for _, co := range companies {
        out = append(out, PublicCompany{ID: co.ID, Name: co.Name})
    }
    return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// GetPublicCompany returns one company by ID for unauthenticated users.
func (h *PublicHandler) GetPublicCompany(c echo.Context) error {
    ctx := c.Request().Context()
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    co, err := h.CompanyRepo.GetByID(ctx, id)
    if err != nil {
        if err == repository.ErrCompanyNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "company not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, PublicCompany{ID: co.ID, Name: co.Name})
}

// GetPublicRoutesByCompany lists routes of a company for unauthenticated
// users. It validates the company exists, then returns only non-sensitive
// fields.
func (h *PublicHandler) GetPublicRoutesByCompany(c echo.Context) error {
    ctx := c.Request().Context()
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    // ensure company exists
    if _, err := h.CompanyRepo.GetByID(ctx, id); err != nil {
        if err == repository.ErrCompanyNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "company not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    routes, err := h.RouteRepo.ListByCompany(ctx, id)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    out := make([]PublicRoute, 0, len(routes))
    for _, rt := range routes {
        out = append(out, PublicRoute{
            ID:              rt.ID,
            Origin:          rt.Origin,
            Destination:     rt.Destination,
            PriceCents:      rt.PriceCents,
            Price:           float64(rt.PriceCents) / 100.0,
            DurationMinutes: rt.DurationMinutes,
        })
    }
    return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// GetPublicSchedulesByRoute lists upcoming departures on a route for
// unauthenticated users. It ensures the route exists first.
func (h *PublicHandler) GetPublicSchedulesByRoute(c echo.Context) error {
    ctx := c.Request().Context()
    routeID, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    // ensure route exists
    if _, err := h.RouteRepo.GetByID(ctx, routeID); err != nil {
        if err == repository.ErrRouteNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "route not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    schedules, err := h.ScheduleRepo.ListByRoute(ctx, routeID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, echo.Map{"items": schedules})
}

// GetPublicSchedule returns details of a single departure for
// unauthenticated users, joined with route, company and bus names.
func (h *PublicHandler) GetPublicSchedule(c echo.Context) error {
    ctx := c.Request().Context()
    scheduleID, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    det, err := h.ScheduleRepo.GetDetailByID(ctx, scheduleID)
    if err != nil {
        if err == repository.ErrScheduleNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "schedule not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, det)
}
