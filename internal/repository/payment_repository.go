package repository

import (
    "context"
    "database/sql"
    "errors"

    "github.com/mobembo/bus-ticket-reservation/internal/model"
)

// PaymentRepo provides persistence for payments. The payments table
// carries a unique key on booking_id, which is the mechanism that
// guarantees at most one settlement attempt per booking: whichever
// transaction inserts first wins and every concurrent insert fails
// with a duplicate key error. SUCCESS and FAILED are terminal; a
// payment row never leaves a terminal state.
type PaymentRepo struct {
    db *sql.DB
}

// NewPaymentRepo returns a new PaymentRepo bound to the given database.
func NewPaymentRepo(db *sql.DB) *PaymentRepo { return &PaymentRepo{db: db} }

// ErrPaymentExists is returned when a payment already exists for the
// booking being settled.
var ErrPaymentExists = errors.New("payment already exists for booking")

// CreateTx inserts a PENDING payment for a booking within the caller's
// transaction. A concurrent or earlier settlement of the same booking
// trips the unique key on booking_id and surfaces as ErrPaymentExists.
// On success the generated ID is set on the record. The caller commits
// or rolls back; the row only becomes visible together with whatever
// else the transaction did.
func (r *PaymentRepo) CreateTx(ctx context.Context, tx *sql.Tx, p *model.Payment) error {
    const q = `INSERT INTO payments (booking_id, amount_cents, method, phone_number, transaction_ref, status)
               VALUES (?, ?, ?, ?, ?, 'PENDING')`
    result, err := tx.ExecContext(ctx, q, p.BookingID, p.AmountCents, p.Method, p.PhoneNumber, p.TransactionRef)
    if err != nil {
        if isDuplicateEntry(err) {
            return ErrPaymentExists
        }
        return err
    }
    id, err := result.LastInsertId()
    if err != nil {
        return err
    }
    p.ID = uint64(id)
    p.Status = model.PaymentPending
    return nil
}

// GetByBookingID fetches the payment attached to a booking. It returns
// sql.ErrNoRows when the booking has no payment yet.
func (r *PaymentRepo) GetByBookingID(ctx context.Context, bookingID uint64) (*model.Payment, error) {
    const q = `SELECT id, booking_id, amount_cents, method, phone_number, transaction_ref, status, paid_at, created_at, updated_at
               FROM payments WHERE booking_id = ?`
    var p model.Payment
    var paidAt sql.NullTime
    err := r.db.QueryRowContext(ctx, q, bookingID).Scan(
        &p.ID, &p.BookingID, &p.AmountCents, &p.Method, &p.PhoneNumber,
        &p.TransactionRef, &p.Status, &paidAt, &p.CreatedAt, &p.UpdatedAt,
    )
    if err != nil {
        return nil, err
    }
    if paidAt.Valid {
        t := paidAt.Time
        p.PaidAt = &t
    }
    return &p, nil
}

// MarkSuccessTx transitions a PENDING payment to SUCCESS and stamps
// paid_at, within the caller's transaction. The status guard makes the
// transition a one-way door: a payment already in a terminal state is
// left untouched and ErrConflict is returned.
func (r *PaymentRepo) MarkSuccessTx(ctx context.Context, tx *sql.Tx, id uint64) error {
    const q = `UPDATE payments
               SET status = 'SUCCESS', paid_at = UTC_TIMESTAMP(), updated_at = CURRENT_TIMESTAMP
               WHERE id = ? AND status = 'PENDING'`
    res, err := tx.ExecContext(ctx, q, id)
    if err != nil {
        return err
    }
    if n, _ := res.RowsAffected(); n == 0 {
        return ErrConflict
    }
    return nil
}

// MarkFailedTx transitions a PENDING payment to FAILED within the
// caller's transaction. Like MarkSuccessTx this is one-way; the
// FAILED row stays behind as the record of the rejected attempt.
func (r *PaymentRepo) MarkFailedTx(ctx context.Context, tx *sql.Tx, id uint64) error {
    const q = `UPDATE payments
               SET status = 'FAILED', updated_at = CURRENT_TIMESTAMP
               WHERE id = ? AND status = 'PENDING'`
    res, err := tx.ExecContext(ctx, q, id)
    if err != nil {
        return err
    }
    if n, _ := res.RowsAffected(); n == 0 {
        return ErrConflict
    }
    return nil
}
