// Package repository contains data access logic for Schedule domain
// operations. This file holds the seat ledger: the authoritative
// available-seat counter for one departure. All seat mutation goes
// through ReserveSeatsTx under an InnoDB row lock so that concurrent
// reservations serialize and the counter never goes negative.
package repository

import (
    "context"      // context for controlling query lifetime
    "database/sql" // sql provides DB abstraction
    "errors"       // errors for sentinel definitions
    "fmt"          // fmt formats the insufficient-seats message
    "time"         // time carries the departure and arrival instants

    "github.com/mobembo/bus-ticket-reservation/internal/model" // model defines the Schedule record and status constants
)

// ErrScheduleNotFound indicates that a schedule was not located in the DB.
var ErrScheduleNotFound = errors.New("schedule not found")

// ErrScheduleUnavailable is returned when a reservation targets a
// schedule whose status is not ACTIVE.
var ErrScheduleUnavailable = errors.New("schedule not available")

// InsufficientSeatsError is returned when a reservation requests more
// seats than the schedule has left. Remaining carries the actual count
// observed under the row lock so the caller can surface it.
type InsufficientSeatsError struct {
    Remaining uint32
}

func (e InsufficientSeatsError) Error() string {
    return fmt.Sprintf("only %d seat(s) available", e.Remaining)
}

// ScheduleRepo manages persistence for schedules and owns the write
// path of the available_seats column.
type ScheduleRepo struct {
    db *sql.DB
}

// NewScheduleRepo constructs a ScheduleRepo with the given DB handle.
func NewScheduleRepo(db *sql.DB) *ScheduleRepo {
    return &ScheduleRepo{db: db}
}

// DB exposes the underlying sql.DB.  It allows callers to begin
// transactions spanning multiple repositories.  Use this method to
// obtain a *sql.DB when you need fine-grained transaction control.
func (r *ScheduleRepo) DB() *sql.DB {
    return r.db
}

// ReserveSeatsTx atomically takes count seats from a schedule within the
// caller's transaction. It locks the schedule row with SELECT ... FOR
// UPDATE, verifies the status and the remaining seats, decrements the
// counter and returns the route's current price per seat in cents. The
// price basis is read inside the same transaction so a concurrent price
// change can never desynchronize price and inventory.
//
// Errors: ErrScheduleNotFound when the schedule does not exist,
// ErrScheduleUnavailable when its status is not ACTIVE, and
// InsufficientSeatsError (with the remaining count) when fewer than
// count seats are left. The caller must commit or roll back the
// transaction; no partial decrement is ever observable.
func (r *ScheduleRepo) ReserveSeatsTx(ctx context.Context, tx *sql.Tx, scheduleID uint64, count uint32) (int64, error) {
    if count < 1 {
        return 0, errors.New("seat count must be at least 1")
    }
    // Lock the schedule row. Every concurrent reserver blocks here until
    // the owning transaction commits, which makes the read-then-decrement
    // below linearizable per schedule.
    const lockQ = `SELECT status, available_seats, route_id FROM schedules WHERE id = ? FOR UPDATE`
    var (
        status    string
        available uint32
        routeID   uint64
    )
    if err := tx.QueryRowContext(ctx, lockQ, scheduleID).Scan(&status, &available, &routeID); err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return 0, ErrScheduleNotFound
        }
        return 0, err
    }
    if status != model.ScheduleActive {
        return 0, ErrScheduleUnavailable
    }
    if available < count {
        return 0, InsufficientSeatsError{Remaining: available}
    }
    // Price basis for the booking, read under the same transaction.
    var priceCents int64
    if err := tx.QueryRowContext(ctx, `SELECT price_cents FROM routes WHERE id = ?`, routeID).Scan(&priceCents); err != nil {
        return 0, err
    }
    const decQ = `UPDATE schedules
                  SET available_seats = available_seats - ?, updated_at = CURRENT_TIMESTAMP
                  WHERE id = ?`
    if _, err := tx.ExecContext(ctx, decQ, count, scheduleID); err != nil {
        return 0, err
    }
    return priceCents, nil
}

// Create inserts a new schedule. AvailableSeats must be seeded by the
// caller from the assigned bus's total capacity. On success the
// generated ID and DB-default fields (status, timestamps) are populated
// on the given Schedule.
func (r *ScheduleRepo) Create(ctx context.Context, s *model.Schedule) error {
    const qInsert = `INSERT INTO schedules (route_id, bus_id, departure_time, arrival_time, available_seats)
                     VALUES (?, ?, ?, ?, ?)`
    res, err := r.db.ExecContext(ctx, qInsert, s.RouteID, s.BusID, s.DepartureTime, s.ArrivalTime, s.AvailableSeats)
    if err != nil {
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    s.ID = uint64(id)
    // Query the inserted row to obtain default fields such as status and timestamps.
    const qSelect = `SELECT id, route_id, bus_id, departure_time, arrival_time, available_seats, status, created_at, updated_at
                     FROM schedules WHERE id = ?`
    return r.db.QueryRowContext(ctx, qSelect, s.ID).Scan(
        &s.ID, &s.RouteID, &s.BusID, &s.DepartureTime, &s.ArrivalTime,
        &s.AvailableSeats, &s.Status, &s.CreatedAt, &s.UpdatedAt,
    )
}

// GetByID fetches a schedule by its ID. It returns ErrScheduleNotFound
// when no row exists.
func (r *ScheduleRepo) GetByID(ctx context.Context, id uint64) (*model.Schedule, error) {
    const q = `SELECT id, route_id, bus_id, departure_time, arrival_time, available_seats, status, created_at, updated_at
               FROM schedules WHERE id = ?`
    var s model.Schedule
    err := r.db.QueryRowContext(ctx, q, id).Scan(
        &s.ID, &s.RouteID, &s.BusID, &s.DepartureTime, &s.ArrivalTime,
        &s.AvailableSeats, &s.Status, &s.CreatedAt, &s.UpdatedAt,
    )
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrScheduleNotFound
        }
        return nil, err
    }
    return &s, nil
}

// ScheduleDetail is the public view of one departure: the schedule row
// joined with its route, company and bus. Price is duplicated as a
// decimal for display convenience.
type ScheduleDetail struct {
    ID             uint64    `json:"id"`
    DepartureTime  time.Time `json:"departure_time"`
    ArrivalTime    time.Time `json:"arrival_time"`
    AvailableSeats uint32    `json:"available_seats"`
    Status         string    `json:"status"`
    RouteID        uint64    `json:"route_id"`
    Origin         string    `json:"origin"`
    Destination    string    `json:"destination"`
    PriceCents     int64     `json:"price_cents"`
    Price          float64   `json:"price"`
    CompanyID      uint64    `json:"company_id"`
    CompanyName    string    `json:"company_name"`
    BusModel       string    `json:"bus_model"`
    PlateNumber    string    `json:"plate_number"`
    TotalSeats     uint32    `json:"total_seats"`
}

// GetDetailByID returns the joined public view of one schedule. It
// returns ErrScheduleNotFound when the schedule does not exist.
func (r *ScheduleRepo) GetDetailByID(ctx context.Context, id uint64) (*ScheduleDetail, error) {
    const q = `SELECT s.id, s.departure_time, s.arrival_time, s.available_seats, s.status,
                      rt.id, rt.origin, rt.destination, rt.price_cents,
                      c.id, c.name, b.model, b.plate_number, b.total_seats
               FROM schedules s
               JOIN routes rt   ON rt.id = s.route_id
               JOIN companies c ON c.id = rt.company_id
               JOIN buses b     ON b.id = s.bus_id
               WHERE s.id = ?`
    var d ScheduleDetail
    err := r.db.QueryRowContext(ctx, q, id).Scan(
        &d.ID, &d.DepartureTime, &d.ArrivalTime, &d.AvailableSeats, &d.Status,
        &d.RouteID, &d.Origin, &d.Destination, &d.PriceCents,
        &d.CompanyID, &d.CompanyName, &d.BusModel, &d.PlateNumber, &d.TotalSeats,
    )
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrScheduleNotFound
        }
        return nil, err
    }
    d.Price = float64(d.PriceCents) / 100.0
    return &d, nil
}

// ListByRoute returns all upcoming schedules for a route ordered by
// departure time. Past departures are excluded.
func (r *ScheduleRepo) ListByRoute(ctx context.Context, routeID uint64) ([]*ScheduleDetail, error) {
    const q = `SELECT s.id, s.departure_time, s.arrival_time, s.available_seats, s.status,
                      rt.id, rt.origin, rt.destination, rt.price_cents,
                      c.id, c.name, b.model, b.plate_number, b.total_seats
               FROM schedules s
               JOIN routes rt   ON rt.id = s.route_id
               JOIN companies c ON c.id = rt.company_id
               JOIN buses b     ON b.id = s.bus_id
               WHERE s.route_id = ? AND s.departure_time >= NOW()
               ORDER BY s.departure_time`
    rows, err := r.db.QueryContext(ctx, q, routeID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]*ScheduleDetail, 0)
    for rows.Next() {
        d := new(ScheduleDetail)
        if err := rows.Scan(
            &d.ID, &d.DepartureTime, &d.ArrivalTime, &d.AvailableSeats, &d.Status,
            &d.RouteID, &d.Origin, &d.Destination, &d.PriceCents,
            &d.CompanyID, &d.CompanyName, &d.BusModel, &d.PlateNumber, &d.TotalSeats,
        ); err != nil {
            return nil, err
        }
        d.Price = float64(d.PriceCents) / 100.0
        out = append(out, d)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return out, nil
}

// UpdateTimes updates the departure and arrival timestamps of a
// schedule. It returns sql.ErrNoRows when no row was affected.
func (r *ScheduleRepo) UpdateTimes(ctx context.Context, id uint64, departure, arrival time.Time) error {
    const q = `UPDATE schedules
               SET departure_time = ?, arrival_time = ?, updated_at = CURRENT_TIMESTAMP
               WHERE id = ?`
    res, err := r.db.ExecContext(ctx, q, departure, arrival, id)
    if err != nil {
        return err
    }
    if n, _ := res.RowsAffected(); n == 0 {
        return sql.ErrNoRows
    }
    return nil
}

// UpdateStatus transitions a schedule to the given status (ACTIVE,
// CANCELLED or COMPLETED). It returns sql.ErrNoRows when the schedule
// does not exist. Status validity is enforced by the handler.
func (r *ScheduleRepo) UpdateStatus(ctx context.Context, id uint64, status string) error {
    const q = `UPDATE schedules SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`
    res, err := r.db.ExecContext(ctx, q, status, id)
    if err != nil {
        return err
    }
    if n, _ := res.RowsAffected(); n == 0 {
        return sql.ErrNoRows
    }
    return nil
}

// DeleteByID removes a schedule that has no bookings. Bookings are
// never deleted, so a schedule with any booking cannot be removed and
// ErrConflict is returned instead. Returns sql.ErrNoRows when the
// schedule does not exist.
func (r *ScheduleRepo) DeleteByID(ctx context.Context, id uint64) error {
    var exists uint64
    err := r.db.QueryRowContext(ctx, `SELECT id FROM schedules WHERE id = ?`, id).Scan(&exists)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return sql.ErrNoRows
        }
        return err
    }
    var bookings int64
    if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM bookings WHERE schedule_id = ?`, id).Scan(&bookings); err != nil {
        return err
    }
    if bookings > 0 {
        return ErrConflict
    }
    _, err = r.db.ExecContext(ctx, `DELETE FROM schedules WHERE id = ?`, id)
    return err
}
