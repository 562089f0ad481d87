// This file implements fleet management for admins: registering buses
// under a company, listing a company's fleet and updating bus details.
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

type busReq struct {
    PlateNumber string `json:"plate_number"`
    Model       string `json:"model"`
    TotalSeats  uint32 `json:"total_seats"`
}

// CreateBus handles POST /v1/admin/companies/:id/buses. The plate number
// is unique fleet-wide; a duplicate returns 409 Conflict.
func (h *AdminHandler) CreateBus(c echo.Context) error {
    companyID, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    var req busReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    req.PlateNumber = strings.TrimSpace(req.PlateNumber)
    if req.PlateNumber == "" || req.TotalSeats < 1 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "plate_number and total_seats required"})
    }
    ctx := c.Request().Context()
    // ensure company exists
    if _, err := h.CompanyRepo.GetByID(ctx, companyID); err != nil {
        if err == repository.ErrCompanyNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "company not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    b := &model.Bus{
        CompanyID:   companyID,
        PlateNumber: req.PlateNumber,
        Model:       strings.TrimSpace(req.Model),
        TotalSeats:  req.TotalSeats,
    }
    if err := h.BusRepo.Create(ctx, b); err != nil {
        if err == repository.ErrConflict {
            return c.JSON(http.StatusConflict, echo.Map{"error": "plate number already registered"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create failed"})
    }
    return c.JSON(http.StatusCreated, b)
}

// ListBuses handles GET /v1/admin/companies/:id/buses.
func (h *AdminHandler) ListBuses(c echo.Context) error {
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
    buses, err := h.BusRepo.ListByCompany(ctx, companyID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, echo.Map{"items": buses})
}

// UpdateBus handles PUT /v1/admin/buses/:id. Capacity changes only
// affect schedules created afterwards.
func (h *AdminHandler) UpdateBus(c echo.Context) error {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    var req busReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    req.PlateNumber = strings.TrimSpace(req.PlateNumber)
    if req.PlateNumber == "" || req.TotalSeats < 1 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "plate_number and total_seats required"})
    }
    err = h.BusRepo.Update(c.Request().Context(), id, req.PlateNumber, strings.TrimSpace(req.Model), req.TotalSeats)
    if err != nil {
        switch err {
        case sql.ErrNoRows:
            return c.JSON(http.StatusNotFound, echo.Map{"error": "bus not found"})
        case repository.ErrConflict:
            return c.JSON(http.StatusConflict, echo.Map{"error": "plate number already registered"})
        default:
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
        }
    }
    return c.NoContent(http.StatusNoContent)
}
