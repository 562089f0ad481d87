package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"

	"github.com/mobembo/bus-ticket-reservation/internal/repository"
)

func newBookingContext(e *echo.Echo, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, "/v1/bookings", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", uint64(7))
	c.Set("role", "CLIENT")
	return c, rec
}

func TestCreateBookingFreezesTotalPrice(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT status, available_seats, route_id FROM schedules").
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows([]string{"status", "available_seats", "route_id"}).
			AddRow("ACTIVE", 2, 3))
	mock.ExpectQuery("SELECT price_cents FROM routes").
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{"price_cents"}).AddRow(150000))
	mock.ExpectExec("UPDATE schedules").
		WithArgs(2, 5).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO bookings").
		WithArgs(7, 5, 2, 300000, "PENDING").
		WillReturnResult(sqlmock.NewResult(11, 1))
	mock.ExpectQuery("SELECT id, user_id, schedule_id, seats_booked, total_price_cents, status, created_at, updated_at").
		WithArgs(11).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "schedule_id", "seats_booked", "total_price_cents", "status", "created_at", "updated_at"}).
			AddRow(11, 7, 5, 2, 300000, "PENDING", now, now))
	mock.ExpectCommit()

	h := NewBookingHandler(repository.NewScheduleRepo(db), repository.NewBookingRepo(db))
	c, rec := newBookingContext(echo.New(), `{"schedule_id":5,"seats":2}`)
	if err := h.CreateBooking(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("wrong status, got %d want 201: %s", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	if !strings.Contains(body, `"total_price_cents":300000`) {
		t.Fatalf("total not frozen from route price: %s", body)
	}
	if !strings.Contains(body, `"status":"PENDING"`) {
		t.Fatalf("new booking should be pending: %s", body)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateBookingReportsRemainingSeats(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	// Sold out: pending bookings hold their seats, so zero remain.
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT status, available_seats, route_id FROM schedules").
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows([]string{"status", "available_seats", "route_id"}).
			AddRow("ACTIVE", 0, 3))
	mock.ExpectRollback()

	h := NewBookingHandler(repository.NewScheduleRepo(db), repository.NewBookingRepo(db))
	c, rec := newBookingContext(echo.New(), `{"schedule_id":5,"seats":1}`)
	if err := h.CreateBooking(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("wrong status, got %d want 400: %s", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	if !strings.Contains(body, `"remaining":0`) {
		t.Fatalf("missing remaining count: %s", body)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateBookingUnknownSchedule(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT status, available_seats, route_id FROM schedules").
		WithArgs(404).
		WillReturnRows(sqlmock.NewRows([]string{"status", "available_seats", "route_id"}))
	mock.ExpectRollback()

	h := NewBookingHandler(repository.NewScheduleRepo(db), repository.NewBookingRepo(db))
	c, rec := newBookingContext(echo.New(), `{"schedule_id":404,"seats":1}`)
	if err := h.CreateBooking(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("wrong status, got %d want 404: %s", rec.Code, rec.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateBookingRollsBackSeatDecrementOnInsertFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT status, available_seats, route_id FROM schedules").
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows([]string{"status", "available_seats", "route_id"}).
			AddRow("ACTIVE", 10, 3))
	mock.ExpectQuery("SELECT price_cents FROM routes").
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{"price_cents"}).AddRow(150000))
	mock.ExpectExec("UPDATE schedules").
		WithArgs(1, 5).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO bookings").
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	h := NewBookingHandler(repository.NewScheduleRepo(db), repository.NewBookingRepo(db))
	c, rec := newBookingContext(echo.New(), `{"schedule_id":5,"seats":1}`)
	if err := h.CreateBooking(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("wrong status, got %d want 500: %s", rec.Code, rec.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateBookingValidatesInput(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	h := NewBookingHandler(repository.NewScheduleRepo(db), repository.NewBookingRepo(db))
	for _, body := range []string{`{"schedule_id":0,"seats":1}`, `{"schedule_id":5,"seats":0}`} {
		c, rec := newBookingContext(echo.New(), body)
		if err := h.CreateBooking(c); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("wrong status for %s, got %d want 400", body, rec.Code)
		}
	}
}
