package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestReserveSeatsTxDecrementsAndReturnsPrice(t *testing.T) {
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
		WithArgs(4, 5).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	repo := NewScheduleRepo(db)
	tx, err := db.Begin()
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	price, err := repo.ReserveSeatsTx(context.Background(), tx, 5, 4)
	if err != nil {
		t.Fatalf("reserve failed: %v", err)
	}
	if price != 150000 {
		t.Fatalf("wrong price, got %d want 150000", price)
	}
	if err := tx.Commit(); err != nil {
		t.Fatalf("commit: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestReserveSeatsTxReportsRemainingWhenShort(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT status, available_seats, route_id FROM schedules").
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows([]string{"status", "available_seats", "route_id"}).
			AddRow("ACTIVE", 1, 3))
	mock.ExpectRollback()

	repo := NewScheduleRepo(db)
	tx, _ := db.Begin()
	_, err = repo.ReserveSeatsTx(context.Background(), tx, 5, 3)
	var short InsufficientSeatsError
	if !errors.As(err, &short) {
		t.Fatalf("expected InsufficientSeatsError, got %v", err)
	}
	if short.Remaining != 1 {
		t.Fatalf("wrong remaining, got %d want 1", short.Remaining)
	}
	_ = tx.Rollback()
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestReserveSeatsTxRejectsInactiveSchedule(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT status, available_seats, route_id FROM schedules").
		WithArgs(9).
		WillReturnRows(sqlmock.NewRows([]string{"status", "available_seats", "route_id"}).
			AddRow("CANCELLED", 40, 3))
	mock.ExpectRollback()

	repo := NewScheduleRepo(db)
	tx, _ := db.Begin()
	_, err = repo.ReserveSeatsTx(context.Background(), tx, 9, 1)
	if !errors.Is(err, ErrScheduleUnavailable) {
		t.Fatalf("expected ErrScheduleUnavailable, got %v", err)
	}
	_ = tx.Rollback()
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestReserveSeatsTxUnknownSchedule(t *testing.T) {
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

	repo := NewScheduleRepo(db)
	tx, _ := db.Begin()
	_, err = repo.ReserveSeatsTx(context.Background(), tx, 404, 1)
	if !errors.Is(err, ErrScheduleNotFound) {
		t.Fatalf("expected ErrScheduleNotFound, got %v", err)
	}
	_ = tx.Rollback()
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
