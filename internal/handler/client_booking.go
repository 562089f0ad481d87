// This file implements the reservation flow for clients. Creating a
// booking and taking its seats happen in one database transaction: the
// schedule row is locked, the counter checked and decremented, and the
// booking inserted with a total frozen from the route's current price.
// Either all of it commits or none of it does.
package handler

import (
    "database/sql"
    "errors"
    "net/http"
    "strconv"

    "github.com/labstack/echo/v4"

    "github.com/mobembo/bus-ticket-reservation/internal/database"
    "github.com/mobembo/bus-ticket-reservation/internal/model"
    "github.com/mobembo/bus-ticket-reservation/internal/repository"
)

// BookingHandler groups repositories required to create and read
// bookings on behalf of clients. All methods assume that JWT
// authentication and role validation were already performed by
// middleware; they may still return 401 if the user ID cannot be
// extracted from the context.
type BookingHandler struct {
    ScheduleRepo *repository.ScheduleRepo // seat counter and schedule lookups
    BookingRepo  *repository.BookingRepo  // booking persistence
}

// NewBookingHandler constructs a BookingHandler. All dependencies must
// be non-nil.
func NewBookingHandler(scheduleRepo *repository.ScheduleRepo, bookingRepo *repository.BookingRepo) *BookingHandler {
    if scheduleRepo == nil || bookingRepo == nil {
        panic("nil repository passed to NewBookingHandler")
    }
    return &BookingHandler{ScheduleRepo: scheduleRepo, BookingRepo: bookingRepo}
}

type createBookingReq struct {
    ScheduleID uint64 `json:"schedule_id"`
    Seats      uint32 `json:"seats"`
}

// CreateBooking handles POST /v1/bookings. The booking is created
// PENDING with its seats already taken from the schedule, so a pending
// booking blocks those seats until payment. Total price is route price
// times seats, read under the same row lock that protects the counter.
//
// Error mapping: 404 unknown schedule, 400 schedule not ACTIVE, 400
// with the remaining count when fewer seats are left than requested.
func (h *BookingHandler) CreateBooking(c echo.Context) error {
    userID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    var req createBookingReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    if req.ScheduleID == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "schedule_id required"})
    }
    if req.Seats < 1 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "seats must be at least 1"})
    }

    ctx := c.Request().Context()
    booking := &model.Booking{
        UserID:      userID,
        ScheduleID:  req.ScheduleID,
        SeatsBooked: req.Seats,
        Status:      model.BookingPending,
    }
    var insufficient repository.InsufficientSeatsError
    txErr := database.WithinTx(ctx, h.ScheduleRepo.DB(), func(tx *sql.Tx) error {
        priceCents, err := h.ScheduleRepo.ReserveSeatsTx(ctx, tx, req.ScheduleID, req.Seats)
        if err != nil {
            return err
        }
        booking.TotalPriceCents = priceCents * int64(req.Seats)
        return h.BookingRepo.CreateTx(ctx, tx, booking)
    })
    if txErr != nil {
        switch {
        case errors.Is(txErr, repository.ErrScheduleNotFound):
            return c.JSON(http.StatusNotFound, echo.Map{"error": "schedule not found"})
        case errors.Is(txErr, repository.ErrScheduleUnavailable):
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "schedule not available for booking"})
        case errors.As(txErr, &insufficient):
            return c.JSON(http.StatusBadRequest, echo.Map{
                "error":     "not enough seats",
                "remaining": insufficient.Remaining,
            })
        default:
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "booking failed"})
        }
    }
    return c.JSON(http.StatusCreated, echo.Map{
        "id":                booking.ID,
        "schedule_id":       booking.ScheduleID,
        "seats_booked":      booking.SeatsBooked,
        "total_price_cents": booking.TotalPriceCents,
        "status":            booking.Status,
        "created_at":        booking.CreatedAt,
    })
}

// GetBooking handles GET /v1/bookings/:id. The owner and any admin may
// view a booking. Existence is checked before ownership so an unknown
// ID answers 404 rather than leaking through a 403.
func (h *BookingHandler) GetBooking(c echo.Context) error {
    userID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    det, err := h.BookingRepo.GetDetailByID(c.Request().Context(), id)
    if err != nil {
        if errors.Is(err, repository.ErrBookingNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    if det.UserID != userID && !isAdmin(c) {
        return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
    }
    return c.JSON(http.StatusOK, det)
}

// ListMyBookings handles GET /v1/bookings. It returns the caller's
// bookings with schedule and payment details, newest first.
func (h *BookingHandler) ListMyBookings(c echo.Context) error {
    userID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    items, err := h.BookingRepo.ListByUser(c.Request().Context(), userID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, echo.Map{"items": items})
}
