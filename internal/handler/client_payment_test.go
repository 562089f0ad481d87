package handler

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"

	"github.com/mobembo/bus-ticket-reservation/internal/payment"
	"github.com/mobembo/bus-ticket-reservation/internal/repository"
)

// stubGateway returns a fixed charge result, so tests can drive the
// failure branch without a real provider.
type stubGateway struct {
	res payment.Result
	err error
}

func (g stubGateway) Charge(ctx context.Context, method, phoneNumber string, amountCents int64, transactionRef string) (payment.Result, error) {
	return g.res, g.err
}

func newPaymentContext(e *echo.Echo, bookingID, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, "/v1/bookings/"+bookingID+"/payments", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(bookingID)
	c.Set("user_id", uint64(7))
	c.Set("role", "CLIENT")
	return c, rec
}

func newPaymentHandler(db *sql.DB, gw payment.Gateway) *PaymentHandler {
	return NewPaymentHandler(
		repository.NewBookingRepo(db),
		repository.NewPaymentRepo(db),
		repository.NewScheduleRepo(db),
		gw,
	)
}

func expectPendingBooking(mock sqlmock.Sqlmock, bookingID, userID int64) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	mock.ExpectQuery("SELECT id, user_id, schedule_id, seats_booked, total_price_cents, status, created_at, updated_at").
		WithArgs(bookingID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "schedule_id", "seats_booked", "total_price_cents", "status", "created_at", "updated_at"}).
			AddRow(bookingID, userID, 5, 2, 300000, "PENDING", now, now))
}

func TestPayBookingConfirmsBookingOnSuccess(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	expectPendingBooking(mock, 11, 7)
	mock.ExpectQuery("FROM payments").
		WithArgs(11).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO payments").
		WillReturnResult(sqlmock.NewResult(21, 1))
	mock.ExpectExec("UPDATE payments").
		WithArgs(21).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE bookings").
		WithArgs(11).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	h := newPaymentHandler(db, payment.NewSimulatedGateway())
	c, rec := newPaymentContext(echo.New(), "11", `{"method":"mpesa","phone_number":"+243970000001"}`)
	if err := h.PayBooking(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("wrong status, got %d want 201: %s", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	if !strings.Contains(body, `"status":"SUCCESS"`) {
		t.Fatalf("payment not successful: %s", body)
	}
	if !strings.Contains(body, `"booking_status":"CONFIRMED"`) {
		t.Fatalf("booking not confirmed with payment: %s", body)
	}
	if !strings.Contains(body, `"amount_cents":300000`) {
		t.Fatalf("charge amount must equal the frozen booking total: %s", body)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPayBookingRejectsSecondPayment(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	expectPendingBooking(mock, 11, 7)
	mock.ExpectQuery("FROM payments").
		WithArgs(11).
		WillReturnRows(sqlmock.NewRows([]string{"id", "booking_id", "amount_cents", "method", "phone_number", "transaction_ref", "status", "paid_at", "created_at", "updated_at"}).
			AddRow(21, 11, 300000, "MPESA", "+243970000001", "MOB-1-x", "FAILED", nil, now, now))

	h := newPaymentHandler(db, payment.NewSimulatedGateway())
	c, rec := newPaymentContext(echo.New(), "11", `{"method":"mpesa","phone_number":"+243970000001"}`)
	if err := h.PayBooking(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("wrong status, got %d want 400: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "payment already exists") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPayBookingForbiddenForNonOwner(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	expectPendingBooking(mock, 11, 99)

	h := newPaymentHandler(db, payment.NewSimulatedGateway())
	c, rec := newPaymentContext(echo.New(), "11", `{"method":"mpesa","phone_number":"+243970000001"}`)
	if err := h.PayBooking(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("wrong status, got %d want 403: %s", rec.Code, rec.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPayBookingUnknownBooking(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT id, user_id, schedule_id, seats_booked, total_price_cents, status, created_at, updated_at").
		WithArgs(404).
		WillReturnError(sql.ErrNoRows)

	h := newPaymentHandler(db, payment.NewSimulatedGateway())
	c, rec := newPaymentContext(echo.New(), "404", `{"method":"mpesa","phone_number":"+243970000001"}`)
	if err := h.PayBooking(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("wrong status, got %d want 404: %s", rec.Code, rec.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPayBookingKeepsFailedPaymentOnGatewayRejection(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	expectPendingBooking(mock, 11, 7)
	mock.ExpectQuery("FROM payments").
		WithArgs(11).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO payments").
		WillReturnResult(sqlmock.NewResult(21, 1))
	// Only the payment flips to FAILED; no booking update, and the
	// transaction still commits so the attempt stays on record.
	mock.ExpectExec("UPDATE payments").
		WithArgs(21).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	gw := stubGateway{res: payment.Result{Outcome: payment.Failure, Reason: "insufficient balance"}}
	h := newPaymentHandler(db, gw)
	c, rec := newPaymentContext(echo.New(), "11", `{"method":"mpesa","phone_number":"+243970000001"}`)
	if err := h.PayBooking(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("wrong status, got %d want 502: %s", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	if !strings.Contains(body, "payment rejected by provider") {
		t.Fatalf("unexpected body: %s", body)
	}
	if !strings.Contains(body, "insufficient balance") {
		t.Fatalf("missing provider reason: %s", body)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPayBookingValidatesMethod(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	h := newPaymentHandler(db, payment.NewSimulatedGateway())
	c, rec := newPaymentContext(echo.New(), "11", `{"method":"cash","phone_number":"+243970000001"}`)
	if err := h.PayBooking(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("wrong status, got %d want 400: %s", rec.Code, rec.Body.String())
	}
}
