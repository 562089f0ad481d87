// This file implements departure management for admins. Creating a
// schedule seeds its seat counter from the assigned bus's capacity;
// after that the counter is owned by the reservation flow and admins
// never write it directly.
package handler

import (
    "database/sql"
    "net/http"
    "strconv"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/mobembo/bus-ticket-reservation/internal/model"
    "github.com/mobembo/bus-ticket-reservation/internal/repository"
)

type scheduleCreateReq struct {
    RouteID       uint64 `json:"route_id"`
    BusID         uint64 `json:"bus_id"`
    DepartureTime string `json:"departure_time"` // RFC3339
    ArrivalTime   string `json:"arrival_time"`   // RFC3339
}

type scheduleTimesReq struct {
    DepartureTime string `json:"departure_time"`
    ArrivalTime   string `json:"arrival_time"`
}

type scheduleStatusReq struct {
    Status string `json:"status"`
}

// parseScheduleTime accepts RFC3339 and normalizes the instant to UTC.
func parseScheduleTime(s string) (time.Time, bool) {
    t, err := time.Parse(time.RFC3339, strings.TrimSpace(s))
    if err != nil {
        return time.Time{}, false
    }
    return t.UTC(), true
}

// CreateSchedule handles POST /v1/admin/schedules. The route and bus
// must exist and belong to the same company. AvailableSeats starts at
// the bus's total capacity.
func (h *AdminHandler) CreateSchedule(c echo.Context) error {
    var req scheduleCreateReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    if req.RouteID == 0 || req.BusID == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "route_id and bus_id required"})
    }
    dep, ok := parseScheduleTime(req.DepartureTime)
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid departure_time"})
    }
    arr, ok := parseScheduleTime(req.ArrivalTime)
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid arrival_time"})
    }
    if !arr.After(dep) {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "arrival_time must be after departure_time"})
    }

    ctx := c.Request().Context()
    rt, err := h.RouteRepo.GetByID(ctx, req.RouteID)
    if err != nil {
        if err == repository.ErrRouteNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "route not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    bus, err := h.BusRepo.GetByID(ctx, req.BusID)
    if err != nil {
        if err == repository.ErrBusNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "bus not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    if bus.CompanyID != rt.CompanyID {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "bus and route belong to different companies"})
    }

    s := &model.Schedule{
        RouteID:        req.RouteID,
        BusID:          req.BusID,
        DepartureTime:  dep,
        ArrivalTime:    arr,
        AvailableSeats: bus.TotalSeats, // seed the seat counter from capacity
    }
    if err := h.ScheduleRepo.Create(ctx, s); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create failed"})
    }
    return c.JSON(http.StatusCreated, s)
}

// UpdateScheduleTimes handles PUT /v1/admin/schedules/:id.
func (h *AdminHandler) UpdateScheduleTimes(c echo.Context) error {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    var req scheduleTimesReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    dep, ok := parseScheduleTime(req.DepartureTime)
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid departure_time"})
    }
    arr, ok := parseScheduleTime(req.ArrivalTime)
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid arrival_time"})
    }
    if !arr.After(dep) {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "arrival_time must be after departure_time"})
    }
    if err := h.ScheduleRepo.UpdateTimes(c.Request().Context(), id, dep, arr); err != nil {
        if err == sql.ErrNoRows {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "schedule not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
    }
    return c.NoContent(http.StatusNoContent)
}

// UpdateScheduleStatus handles PATCH /v1/admin/schedules/:id/status.
// Cancelling or completing a departure stops new reservations; existing
// bookings are untouched.
func (h *AdminHandler) UpdateScheduleStatus(c echo.Context) error {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    var req scheduleStatusReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    status := strings.ToUpper(strings.TrimSpace(req.Status))
    switch status {
    case model.ScheduleActive, model.ScheduleCancelled, model.ScheduleCompleted:
    default:
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status"})
    }
    if err := h.ScheduleRepo.UpdateStatus(c.Request().Context(), id, status); err != nil {
        if err == sql.ErrNoRows {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "schedule not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
    }
    return c.NoContent(http.StatusNoContent)
}
