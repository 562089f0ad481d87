package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/mobembo/bus-ticket-reservation/internal/model"
)

func TestPaymentCreateTxDuplicateBooking(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO payments").
		WillReturnError(errors.New("Error 1062 (23000): Duplicate entry '11' for key 'payments.uk_payments_booking'"))
	mock.ExpectRollback()

	repo := NewPaymentRepo(db)
	tx, _ := db.Begin()
	p := &model.Payment{BookingID: 11, AmountCents: 300000, Method: "MPESA", PhoneNumber: "+243970000001", TransactionRef: "MOB-1-x"}
	err = repo.CreateTx(context.Background(), tx, p)
	if !errors.Is(err, ErrPaymentExists) {
		t.Fatalf("expected ErrPaymentExists, got %v", err)
	}
	_ = tx.Rollback()
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPaymentCreateTxSetsIDAndPendingStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO payments").
		WithArgs(11, 300000, "MPESA", "+243970000001", "MOB-1-x").
		WillReturnResult(sqlmock.NewResult(21, 1))
	mock.ExpectCommit()

	repo := NewPaymentRepo(db)
	tx, _ := db.Begin()
	p := &model.Payment{BookingID: 11, AmountCents: 300000, Method: "MPESA", PhoneNumber: "+243970000001", TransactionRef: "MOB-1-x"}
	if err := repo.CreateTx(context.Background(), tx, p); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if p.ID != 21 {
		t.Fatalf("id not set, got %d", p.ID)
	}
	if p.Status != "PENDING" {
		t.Fatalf("status not pending, got %q", p.Status)
	}
	_ = tx.Commit()
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestMarkSuccessTxIsOneWay(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	// Already terminal: the status guard matches no rows.
	mock.ExpectExec("UPDATE payments").
		WithArgs(21).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	repo := NewPaymentRepo(db)
	tx, _ := db.Begin()
	err = repo.MarkSuccessTx(context.Background(), tx, 21)
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	_ = tx.Rollback()
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
