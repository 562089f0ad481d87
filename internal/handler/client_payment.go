// This file implements the settlement flow for clients. Paying a
// booking creates the one-and-only payment row for it, charges the
// mobile-money gateway, and on success flips both the payment and the
// booking in the same database transaction. The unique key on
// payments.booking_id is what serializes concurrent payment attempts:
// exactly one insert wins, all others surface as "payment exists".
package handler

import (
    "context"
    "database/sql"
    "errors"
    "net/http"
    "strconv"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/mobembo/bus-ticket-reservation/internal/database"
    "github.com/mobembo/bus-ticket-reservation/internal/model"
    "github.com/mobembo/bus-ticket-reservation/internal/payment"
    "github.com/mobembo/bus-ticket-reservation/internal/queue"
    "github.com/mobembo/bus-ticket-reservation/internal/repository"
)

// PaymentHandler groups the dependencies of the settlement endpoints.
// PublishConfirmed is called after a successful commit to announce the
// confirmed booking on the broker; it may be nil, and its errors are
// logged by the publisher and otherwise ignored, because the booking
// is already confirmed in the database.
type PaymentHandler struct {
    BookingRepo      *repository.BookingRepo
    PaymentRepo      *repository.PaymentRepo
    ScheduleRepo     *repository.ScheduleRepo
    Gateway          payment.Gateway
    PublishConfirmed func(ctx context.Context, ev queue.BookingConfirmedEvent) error
}

// NewPaymentHandler constructs a PaymentHandler. The publisher is wired
// separately because it is optional.
func NewPaymentHandler(bookingRepo *repository.BookingRepo, paymentRepo *repository.PaymentRepo, scheduleRepo *repository.ScheduleRepo, gw payment.Gateway) *PaymentHandler {
    if bookingRepo == nil || paymentRepo == nil || scheduleRepo == nil || gw == nil {
        panic("nil dependency passed to NewPaymentHandler")
    }
    return &PaymentHandler{
        BookingRepo:  bookingRepo,
        PaymentRepo:  paymentRepo,
        ScheduleRepo: scheduleRepo,
        Gateway:      gw,
    }
}

type payBookingReq struct {
    Method      string `json:"method"`
    PhoneNumber string `json:"phone_number"`
}

type paymentResp struct {
    ID             uint64 `json:"id"`
    BookingID      uint64 `json:"booking_id"`
    AmountCents    int64  `json:"amount_cents"`
    Method         string `json:"method"`
    TransactionRef string `json:"transaction_ref"`
    Status         string `json:"status"`
    BookingStatus  string `json:"booking_status"`
}

// PayBooking handles POST /v1/bookings/:id/payments. Only the booking
// owner may pay. The charged amount is always the booking's frozen
// total; the client does not send an amount.
//
// Error mapping: 404 unknown booking, 403 not the owner, 400 when a
// payment already exists (any status), 502 when the gateway rejects
// the charge. On gateway failure the FAILED payment row is committed
// and the booking stays PENDING.
func (h *PaymentHandler) PayBooking(c echo.Context) error {
    userID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    bookingID, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    var req payBookingReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    method := strings.ToUpper(strings.TrimSpace(req.Method))
    if !model.ValidPaymentMethod(method) {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid payment method"})
    }
    phone := strings.TrimSpace(req.PhoneNumber)
    if phone == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "phone_number required"})
    }

    ctx := c.Request().Context()
    booking, err := h.BookingRepo.GetByID(ctx, bookingID)
    if err != nil {
        if errors.Is(err, repository.ErrBookingNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    if booking.UserID != userID {
        return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
    }
    // Pre-check for an existing payment to answer cleanly; the unique
    // key below still catches races this read cannot see.
    if _, err := h.PaymentRepo.GetByBookingID(ctx, bookingID); err == nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "payment already exists for booking"})
    } else if !errors.Is(err, sql.ErrNoRows) {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }

    pay := &model.Payment{
        BookingID:      bookingID,
        AmountCents:    booking.TotalPriceCents,
        Method:         method,
        PhoneNumber:    phone,
        TransactionRef: payment.NewTransactionRef(),
    }

    var gatewayFailed bool
    var failReason string
    txErr := database.WithinTx(ctx, h.ScheduleRepo.DB(), func(tx *sql.Tx) error {
        // Claim the booking's payment slot first. Losing the race to
        // another request fails right here on the unique key.
        if err := h.PaymentRepo.CreateTx(ctx, tx, pay); err != nil {
            return err
        }
        res, err := h.Gateway.Charge(ctx, method, phone, pay.AmountCents, pay.TransactionRef)
        if err != nil {
            return err
        }
        switch res.Outcome {
        case payment.Success:
            if err := h.PaymentRepo.MarkSuccessTx(ctx, tx, pay.ID); err != nil {
                return err
            }
            return h.BookingRepo.ConfirmTx(ctx, tx, bookingID)
        default:
            // Keep the FAILED row as the record of the attempt. The
            // booking stays PENDING.
            gatewayFailed = true
            failReason = res.Reason
            return h.PaymentRepo.MarkFailedTx(ctx, tx, pay.ID)
        }
    })
    if txErr != nil {
        if errors.Is(txErr, repository.ErrPaymentExists) {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "payment already exists for booking"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "payment failed"})
    }
    if gatewayFailed {
        return c.JSON(http.StatusBadGateway, echo.Map{
            "error":  "payment rejected by provider",
            "reason": failReason,
        })
    }

    // Announce the confirmed booking. Best effort: the booking is
    // already confirmed, a broker outage must not fail the request.
    if h.PublishConfirmed != nil {
        if det, err := h.BookingRepo.GetDetailByID(ctx, bookingID); err == nil {
            dep := ""
            if det.DepartureTime != nil {
                dep = *det.DepartureTime
            }
            _ = h.PublishConfirmed(ctx, queue.BookingConfirmedEvent{
                BookingID:       det.ID,
                UserID:          det.UserID,
                ScheduleID:      det.ScheduleID,
                Origin:          det.Origin,
                Destination:     det.Destination,
                CompanyName:     det.CompanyName,
                PlateNumber:     det.PlateNumber,
                DepartureTime:   dep,
                SeatsBooked:     det.SeatsBooked,
                TotalPriceCents: det.TotalPriceCents,
                TransactionRef:  pay.TransactionRef,
                Method:          method,
                ConfirmedAt:     time.Now().UTC().Format(time.RFC3339),
            })
        }
    }

    return c.JSON(http.StatusCreated, paymentResp{
        ID:             pay.ID,
        BookingID:      bookingID,
        AmountCents:    pay.AmountCents,
        Method:         method,
        TransactionRef: pay.TransactionRef,
        Status:         model.PaymentSuccess,
        BookingStatus:  model.BookingConfirmed,
    })
}

// GetBookingPayment handles GET /v1/bookings/:id/payments. The owner
// and admins may read the settlement state of a booking.
func (h *PaymentHandler) GetBookingPayment(c echo.Context) error {
    userID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    bookingID, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    ctx := c.Request().Context()
    booking, err := h.BookingRepo.GetByID(ctx, bookingID)
    if err != nil {
        if errors.Is(err, repository.ErrBookingNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    if booking.UserID != userID && !isAdmin(c) {
        return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
    }
    pay, err := h.PaymentRepo.GetByBookingID(ctx, bookingID)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "no payment for booking"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    resp := echo.Map{
        "id":              pay.ID,
        "booking_id":      pay.BookingID,
        "amount_cents":    pay.AmountCents,
        "method":          pay.Method,
        "transaction_ref": pay.TransactionRef,
        "status":          pay.Status,
    }
    if pay.PaidAt != nil {
        resp["paid_at"] = pay.PaidAt.UTC().Format(time.RFC3339)
    }
    return c.JSON(http.StatusOK, resp)
}
