package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestConfirmTxGuardsOnPendingStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE bookings").
		WithArgs(11).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	repo := NewBookingRepo(db)
	tx, _ := db.Begin()
	err = repo.ConfirmTx(context.Background(), tx, 11)
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	_ = tx.Rollback()
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestGetDetailByIDCarriesTimestamps(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	// The DSN sets parseTime=true, so DATETIME columns arrive as
	// time.Time values.
	dep := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	arr := time.Date(2026, 3, 1, 17, 30, 0, 0, time.UTC)
	paid := time.Date(2026, 2, 20, 12, 0, 0, 0, time.UTC)
	mock.ExpectQuery("FROM bookings bk").
		WithArgs(11).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "user_id", "schedule_id", "seats_booked", "total_price_cents", "status",
			"origin", "destination", "name", "model", "plate_number",
			"departure_time", "arrival_time",
			"p.id", "p.amount_cents", "p.method", "p.transaction_ref", "p.status", "p.paid_at",
		}).AddRow(
			11, 7, 5, 2, 300000, "CONFIRMED",
			"Kinshasa", "Matadi", "Trans Congo", "Coaster", "KN-1234-AB",
			dep, arr,
			21, 300000, "MPESA", "MOB-1-x", "SUCCESS", paid,
		))

	repo := NewBookingRepo(db)
	det, err := repo.GetDetailByID(context.Background(), 11)
	if err != nil {
		t.Fatalf("detail failed: %v", err)
	}
	if det.DepartureTime == nil || *det.DepartureTime != dep.Format(time.RFC3339) {
		t.Fatalf("departure_time lost: %v", det.DepartureTime)
	}
	if det.ArrivalTime == nil || *det.ArrivalTime != arr.Format(time.RFC3339) {
		t.Fatalf("arrival_time lost: %v", det.ArrivalTime)
	}
	if det.Payment == nil {
		t.Fatalf("payment missing from detail")
	}
	if det.Payment.PaidAt == nil || *det.Payment.PaidAt != paid.Format(time.RFC3339) {
		t.Fatalf("paid_at lost: %v", det.Payment.PaidAt)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestGetDetailByIDWithoutPayment(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	dep := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	arr := time.Date(2026, 3, 1, 17, 30, 0, 0, time.UTC)
	mock.ExpectQuery("FROM bookings bk").
		WithArgs(11).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "user_id", "schedule_id", "seats_booked", "total_price_cents", "status",
			"origin", "destination", "name", "model", "plate_number",
			"departure_time", "arrival_time",
			"p.id", "p.amount_cents", "p.method", "p.transaction_ref", "p.status", "p.paid_at",
		}).AddRow(
			11, 7, 5, 2, 300000, "PENDING",
			"Kinshasa", "Matadi", "Trans Congo", "Coaster", "KN-1234-AB",
			dep, arr,
			nil, nil, nil, nil, nil, nil,
		))

	repo := NewBookingRepo(db)
	det, err := repo.GetDetailByID(context.Background(), 11)
	if err != nil {
		t.Fatalf("detail failed: %v", err)
	}
	if det.Payment != nil {
		t.Fatalf("expected nil payment, got %+v", det.Payment)
	}
	if det.DepartureTime == nil {
		t.Fatalf("departure_time lost on unpaid booking")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestGetByIDMapsMissingRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT id, user_id, schedule_id, seats_booked, total_price_cents, status, created_at, updated_at").
		WithArgs(404).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "schedule_id", "seats_booked", "total_price_cents", "status", "created_at", "updated_at"}))

	repo := NewBookingRepo(db)
	_, err = repo.GetByID(context.Background(), 404)
	if !errors.Is(err, ErrBookingNotFound) {
		t.Fatalf("expected ErrBookingNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
