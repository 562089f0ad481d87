package handler // handler defines http handlers

import (
    "errors"  // errors provides sentinel values used in getUserID
    "strconv" // strconv converts strings to numeric types

    "github.com/labstack/echo/v4" // echo defines request context types

    "github.com/mobembo/bus-ticket-reservation/internal/model"      // role constants
    "github.com/mobembo/bus-ticket-reservation/internal/repository" // repository holds data access layer
)

// AdminHandler bundles repositories for admins to manage the catalog:
// companies, buses, routes and schedules, plus the booking views of a
// departure.
type AdminHandler struct {
    CompanyRepo  *repository.CompanyRepo  // CompanyRepo provides company persistence
    BusRepo      *repository.BusRepo      // BusRepo provides bus persistence
    RouteRepo    *repository.RouteRepo    // RouteRepo provides route persistence
    ScheduleRepo *repository.ScheduleRepo // ScheduleRepo provides schedule persistence
    BookingRepo  *repository.BookingRepo  // BookingRepo provides booking lookups for manifests
}

// NewAdminHandler constructs a new AdminHandler and panics if any dependency is nil.
func NewAdminHandler(companyRepo *repository.CompanyRepo, busRepo *repository.BusRepo, routeRepo *repository.RouteRepo, scheduleRepo *repository.ScheduleRepo, bookingRepo *repository.BookingRepo) *AdminHandler {
    if companyRepo == nil || busRepo == nil || routeRepo == nil || scheduleRepo == nil || bookingRepo == nil {
        panic("nil repository passed to NewAdminHandler")
    }
    return &AdminHandler{
        CompanyRepo:  companyRepo,
        BusRepo:      busRepo,
        RouteRepo:    routeRepo,
        ScheduleRepo: scheduleRepo,
        BookingRepo:  bookingRepo,
    }
}

// getUserID extracts the user_id from echo.Context and converts it to uint64.
// JWT claims decode numbers as float64, so several representations are accepted.
func getUserID(c echo.Context) (uint64, error) {
    v := c.Get("user_id")
    switch t := v.(type) {
    case uint64:
        return t, nil
    case int:
        return uint64(t), nil
    case int64:
        return uint64(t), nil
    case float64:
        return uint64(t), nil
    case string:
        if n, err := strconv.ParseUint(t, 10, 64); err == nil {
            return n, nil
        }
    }
    return 0, errors.New("invalid user_id in context")
}

// isAdmin reports whether the authenticated request carries the ADMIN role.
func isAdmin(c echo.Context) bool {
    role, _ := c.Get("role").(string)
    return role == model.RoleAdmin
}
