// This file implements route management for admins: creating routes
// under a company, listing them and updating price or duration.
package handler

import (
    "database/sql"
    "net/http"
    "strconv"
    "strings"

    "github.com/labstack/echo/v4"

    "github.com/mobembo/bus-ticket-reservation/internal/model"
    "github.com/mobembo/bus-ticket-reservation/internal/repository"
)

type routeCreateReq struct {
    Origin          string `json:"origin"`
    Destination     string `json:"destination"`
    PriceCents      int64  `json:"price_cents"`
    DurationMinutes uint32 `json:"duration_minutes"`
}

type routeUpdateReq struct {
    PriceCents      int64  `json:"price_cents"`
    DurationMinutes uint32 `json:"duration_minutes"`
}

// CreateRoute handles POST /v1/admin/companies/:id/routes. A company
// may serve each origin/destination pair only once; duplicates return
// 409 Conflict.
func (h *AdminHandler) CreateRoute(c echo.Context) error {
    companyID, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    var req routeCreateReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    req.Origin = strings.TrimSpace(req.Origin)
    req.Destination = strings.TrimSpace(req.Destination)
    if req.Origin == "" || req.Destination == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "origin and destination required"})
    }
    if strings.EqualFold(req.Origin, req.Destination) {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "origin and destination must differ"})
    }
    if req.PriceCents < 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "price_cents must not be negative"})
    }
    ctx := c.Request().Context()
    if _, err := h.CompanyRepo.GetByID(ctx, companyID); err != nil {
        if err == repository.ErrCompanyNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "company not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    rt := &model.Route{
        CompanyID:       companyID,
        Origin:          req.Origin,
        Destination:     req.Destination,
        PriceCents:      req.PriceCents,
        DurationMinutes: req.DurationMinutes,
    }
    if err := h.RouteRepo.Create(ctx, rt); err != nil {
        if err == repository.ErrConflict {
            return c.JSON(http.StatusConflict, echo.Map{"error": "route already exists for company"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create failed"})
    }
    return c.JSON(http.StatusCreated, rt)
}

// ListRoutes handles GET /v1/admin/companies/:id/routes.
func (h *AdminHandler) ListRoutes(c echo.Context) error {
    companyID, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    ctx := c.Request().Context()
    if _, err := h.CompanyRepo.GetByID(ctx, companyID); err != nil {
        if err == repository.ErrCompanyNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "company not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    routes, err := h.RouteRepo.ListByCompany(ctx, companyID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, echo.Map{"items": routes})
}

// UpdateRoute handles PUT /v1/admin/routes/:id. Only the price and
// duration can change; existing bookings keep their frozen totals.
func (h *AdminHandler) UpdateRoute(c echo.Context) error {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    var req routeUpdateReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    if req.PriceCents < 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "price_cents must not be negative"})
    }
    err = h.RouteRepo.Update(c.Request().Context(), id, req.PriceCents, req.DurationMinutes)
    if err != nil {
        if err == sql.ErrNoRows {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "route not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
    }
    return c.NoContent(http.StatusNoContent)
}
