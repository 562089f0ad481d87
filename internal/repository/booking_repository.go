package repository

import (
    "context"
    "database/sql"
    "errors"
    "time"

    "github.com/mobembo/bus-ticket-reservation/internal/model"
)

// BookingRepo provides CRUD operations for bookings. A booking groups a
// number of seats on one schedule under a single user and carries the
// total price frozen at creation time. Bookings are never deleted; they
// move from PENDING to CONFIRMED when their payment succeeds and stay
// PENDING otherwise. All timestamp fields are assumed to be stored in
// UTC.
type BookingRepo struct {
    db *sql.DB
}

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// ErrBookingNotFound is returned when a booking lookup fails.
var ErrBookingNotFound = errors.New("booking not found")

// CreateTx inserts a new booking within the scope of an existing
// transaction. It populates the generated ID on the provided record and
// returns any error from the database. The caller must commit or
// rollback the transaction; it is expected to hold the seat decrement
// of the same schedule so booking and counter commit together.
func (r *BookingRepo) CreateTx(ctx context.Context, tx *sql.Tx, b *model.Booking) error {
    const q = `INSERT INTO bookings (user_id, schedule_id, seats_booked, total_price_cents, status)
               VALUES (?, ?, ?, ?, ?)`
    result, err := tx.ExecContext(ctx, q, b.UserID, b.ScheduleID, b.SeatsBooked, b.TotalPriceCents, b.Status)
    if err != nil {
        return err
    }
    id, err := result.LastInsertId()
    if err != nil {
        return err
    }
    b.ID = uint64(id)
    // Query back the full row to populate timestamps and defaults
    const sel = `SELECT id, user_id, schedule_id, seats_booked, total_price_cents, status, created_at, updated_at
                 FROM bookings WHERE id = ?`
    return tx.QueryRowContext(ctx, sel, b.ID).Scan(
        &b.ID, &b.UserID, &b.ScheduleID, &b.SeatsBooked, &b.TotalPriceCents,
        &b.Status, &b.CreatedAt, &b.UpdatedAt,
    )
}

// GetByID fetches a booking row by ID without any ownership filter. The
// handler decides whether the caller may see it. Returns
// ErrBookingNotFound when no row exists.
func (r *BookingRepo) GetByID(ctx context.Context, id uint64) (*model.Booking, error) {
    const q = `SELECT id, user_id, schedule_id, seats_booked, total_price_cents, status, created_at, updated_at
               FROM bookings WHERE id = ?`
    var b model.Booking
    err := r.db.QueryRowContext(ctx, q, id).Scan(
        &b.ID, &b.UserID, &b.ScheduleID, &b.SeatsBooked, &b.TotalPriceCents,
        &b.Status, &b.CreatedAt, &b.UpdatedAt,
    )
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrBookingNotFound
        }
        return nil, err
    }
    return &b, nil
}

// ConfirmTx flips a PENDING booking to CONFIRMED within the caller's
// transaction. The status guard in the WHERE clause makes the
// transition idempotent under concurrency: if another transaction
// already confirmed the booking, zero rows are affected and ErrConflict
// is returned.
func (r *BookingRepo) ConfirmTx(ctx context.Context, tx *sql.Tx, id uint64) error {
    const q = `UPDATE bookings
               SET status = 'CONFIRMED', updated_at = CURRENT_TIMESTAMP
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

// PaymentInfo is the settlement slice of a booking detail. It is nil
// when no payment has been attempted yet.
type PaymentInfo struct {
    ID             uint64  `json:"id"`
    AmountCents    int64   `json:"amount_cents"`
    Method         string  `json:"method"`
    TransactionRef string  `json:"transaction_ref"`
    Status         string  `json:"status"`
    PaidAt         *string `json:"paid_at,omitempty"`
}

// BookingDetail encapsulates a booking along with its schedule, route,
// company, bus and payment information. It is returned to the booking
// owner and to admins.
type BookingDetail struct {
    ID              uint64       `json:"id"`
    UserID          uint64       `json:"user_id"`
    ScheduleID      uint64       `json:"schedule_id"`
    SeatsBooked     uint32       `json:"seats_booked"`
    TotalPriceCents int64        `json:"total_price_cents"`
    Status          string       `json:"status"`
    Origin          string       `json:"origin"`
    Destination     string       `json:"destination"`
    CompanyName     string       `json:"company_name"`
    BusModel        string       `json:"bus_model"`
    PlateNumber     string       `json:"plate_number"`
    DepartureTime   *string      `json:"departure_time"`
    ArrivalTime     *string      `json:"arrival_time"`
    Payment         *PaymentInfo `json:"payment,omitempty"`
}

// dbTimeToISO converts a nullable DATETIME value, which the driver
// hands over as time.Time, to RFC3339. It returns nil when the value
// is absent or zero.
func dbTimeToISO(t sql.NullTime) *string {
    if !t.Valid || t.Time.IsZero() {
        return nil
    }
    iso := t.Time.UTC().Format(time.RFC3339)
    return &iso
}

// GetDetailByID loads a booking with its schedule, route, company, bus
// and payment details. No ownership filter is applied; the handler
// enforces owner-or-admin access after the row is loaded so that a
// missing booking is reported before a forbidden one. Returns
// ErrBookingNotFound when the booking does not exist.
func (r *BookingRepo) GetDetailByID(ctx context.Context, id uint64) (*BookingDetail, error) {
    const q = `SELECT bk.id, bk.user_id, bk.schedule_id, bk.seats_booked, bk.total_price_cents, bk.status,
                      rt.origin, rt.destination, c.name, b.model, b.plate_number,
                      s.departure_time, s.arrival_time,
                      p.id, p.amount_cents, p.method, p.transaction_ref, p.status, p.paid_at
               FROM bookings bk
               JOIN schedules s ON s.id = bk.schedule_id
               JOIN routes rt   ON rt.id = s.route_id
               JOIN companies c ON c.id = rt.company_id
               JOIN buses b     ON b.id = s.bus_id
               LEFT JOIN payments p ON p.booking_id = bk.id
               WHERE bk.id = ?`
    var det BookingDetail
    var depAt, arrAt sql.NullTime
    var payID sql.NullInt64
    var payAmount sql.NullInt64
    var payMethod, payRef, payStatus sql.NullString
    var payPaidAt sql.NullTime
    err := r.db.QueryRowContext(ctx, q, id).Scan(
        &det.ID, &det.UserID, &det.ScheduleID, &det.SeatsBooked, &det.TotalPriceCents, &det.Status,
        &det.Origin, &det.Destination, &det.CompanyName, &det.BusModel, &det.PlateNumber,
        &depAt, &arrAt,
        &payID, &payAmount, &payMethod, &payRef, &payStatus, &payPaidAt,
    )
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrBookingNotFound
        }
        return nil, err
    }
    det.DepartureTime = dbTimeToISO(depAt)
    det.ArrivalTime = dbTimeToISO(arrAt)
    if payID.Valid {
        det.Payment = &PaymentInfo{
            ID:             uint64(payID.Int64),
            AmountCents:    payAmount.Int64,
            Method:         payMethod.String,
            TransactionRef: payRef.String,
            Status:         payStatus.String,
            PaidAt:         dbTimeToISO(payPaidAt),
        }
    }
    return &det, nil
}

// ListByUser returns all bookings of a user with schedule, route,
// company, bus and payment details, newest first. When the user has no
// bookings an empty slice is returned.
func (r *BookingRepo) ListByUser(ctx context.Context, userID uint64) ([]BookingDetail, error) {
    const q = `SELECT bk.id, bk.user_id, bk.schedule_id, bk.seats_booked, bk.total_price_cents, bk.status,
                      rt.origin, rt.destination, c.name, b.model, b.plate_number,
                      s.departure_time, s.arrival_time,
                      p.id, p.amount_cents, p.method, p.transaction_ref, p.status, p.paid_at
               FROM bookings bk
               JOIN schedules s ON s.id = bk.schedule_id
               JOIN routes rt   ON rt.id = s.route_id
               JOIN companies c ON c.id = rt.company_id
               JOIN buses b     ON b.id = s.bus_id
               LEFT JOIN payments p ON p.booking_id = bk.id
               WHERE bk.user_id = ?
               ORDER BY bk.created_at DESC`
    return r.queryDetails(ctx, q, userID)
}

// ListBySchedule returns all bookings placed on one schedule, newest
// first. It serves the admin manifest view of a departure.
func (r *BookingRepo) ListBySchedule(ctx context.Context, scheduleID uint64) ([]BookingDetail, error) {
    const q = `SELECT bk.id, bk.user_id, bk.schedule_id, bk.seats_booked, bk.total_price_cents, bk.status,
                      rt.origin, rt.destination, c.name, b.model, b.plate_number,
                      s.departure_time, s.arrival_time,
                      p.id, p.amount_cents, p.method, p.transaction_ref, p.status, p.paid_at
               FROM bookings bk
               JOIN schedules s ON s.id = bk.schedule_id
               JOIN routes rt   ON rt.id = s.route_id
               JOIN companies c ON c.id = rt.company_id
               JOIN buses b     ON b.id = s.bus_id
               LEFT JOIN payments p ON p.booking_id = bk.id
               WHERE bk.schedule_id = ?
               ORDER BY bk.created_at DESC`
    return r.queryDetails(ctx, q, scheduleID)
}

// queryDetails runs one of the detail list queries above and scans the
// rows into BookingDetail values.
func (r *BookingRepo) queryDetails(ctx context.Context, q string, arg any) ([]BookingDetail, error) {
    rows, err := r.db.QueryContext(ctx, q, arg)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    details := make([]BookingDetail, 0)
    for rows.Next() {
        var d BookingDetail
        var depAt, arrAt sql.NullTime
        var payID sql.NullInt64
        var payAmount sql.NullInt64
        var payMethod, payRef, payStatus sql.NullString
        var payPaidAt sql.NullTime
        if err := rows.Scan(
            &d.ID, &d.UserID, &d.ScheduleID, &d.SeatsBooked, &d.TotalPriceCents, &d.Status,
            &d.Origin, &d.Destination, &d.CompanyName, &d.BusModel, &d.PlateNumber,
            &depAt, &arrAt,
            &payID, &payAmount, &payMethod, &payRef, &payStatus, &payPaidAt,
        ); err != nil {
            return nil, err
        }
        d.DepartureTime = dbTimeToISO(depAt)
        d.ArrivalTime = dbTimeToISO(arrAt)
        if payID.Valid {
            d.Payment = &PaymentInfo{
                ID:             uint64(payID.Int64),
                AmountCents:    payAmount.Int64,
                Method:         payMethod.String,
                TransactionRef: payRef.String,
                Status:         payStatus.String,
                PaidAt:         dbTimeToISO(payPaidAt),
            }
        }
        details = append(details, d)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return details, nil
}
