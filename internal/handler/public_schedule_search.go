package handler

import (
    "net/http"
    "strconv"
    "strings"

    "github.com/labstack/echo/v4"

    "github.com/mobembo/bus-ticket-reservation/internal/repository"
)

// SearchSchedules handles GET /v1/public/schedules/search. Filters:
// origin, destination, date (YYYY-MM-DD), company. Only ACTIVE future
// departures are returned.
func (h *PublicHandler) SearchSchedules(c echo.Context) error {
    origin := strings.TrimSpace(c.QueryParam("origin"))
    destination := strings.TrimSpace(c.QueryParam("destination"))
    date := strings.TrimSpace(c.QueryParam("date"))
    company := strings.TrimSpace(c.QueryParam("company"))

    page, _ := strconv.Atoi(c.QueryParam("page"))
    if page < 1 {
        page = 1
    }
    ps, _ := strconv.Atoi(c.QueryParam("page_size"))
    if ps < 1 {
        ps = 20
    }
    if ps > 100 {
        ps = 100
    }

    q := repository.ScheduleSearchQuery{
        Origin:      origin,
        Destination: destination,
        Date:        date,
        Company:     company,
        Page:        page,
        PageSize:    ps,
    }

    items, total, err := h.ScheduleRepo.SearchUpcoming(c.Request().Context(), q)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{
            "error":   "database_error",
            "message": err.Error(),
        })
    }

    return c.JSON(http.StatusOK, echo.Map{
        "data":      items,
        "total":     total,
        "page":      page,
        "page_size": ps,
    })
}
