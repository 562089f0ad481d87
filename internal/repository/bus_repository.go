package repository // repository holds data access logic for domain entities

import (
    "context"      // context is used to manage deadlines and cancellation
    "database/sql" // sql provides DB primitives
    "errors"       // errors package allows sentinel error definitions

    "github.com/mobembo/bus-ticket-reservation/internal/model" // model defines the Bus record
)

// ErrBusNotFound is returned when a bus lookup fails.
var ErrBusNotFound = errors.New("bus not found")

// BusRepo provides methods to create and retrieve buses. It embeds a
// database handle to perform queries and commands.
type BusRepo struct {
    db *sql.DB // db is the underlying database connection
}

// NewBusRepo constructs a BusRepo with the given DB handle.
func NewBusRepo(db *sql.DB) *BusRepo {
    return &BusRepo{db: db}
}

// Create inserts a new bus. The bus must have CompanyID, PlateNumber
// and TotalSeats set. After insert the ID field will be set and the
// row is read back so the timestamp fields are populated too. A
// duplicate plate number surfaces as ErrConflict.
func (r *BusRepo) Create(ctx context.Context, b *model.Bus) error {
    const qInsert = `INSERT INTO buses (company_id, plate_number, model, total_seats)
                     VALUES (?, ?, ?, ?)`
    res, err := r.db.ExecContext(ctx, qInsert, b.CompanyID, b.PlateNumber, b.Model, b.TotalSeats)
    if err != nil {
        if isDuplicateEntry(err) {
            return ErrConflict
        }
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    b.ID = uint64(id)

    const qSelect = `SELECT id, company_id, plate_number, model, total_seats, created_at, updated_at
                     FROM buses WHERE id = ?`
    return r.db.QueryRowContext(ctx, qSelect, b.ID).
        Scan(&b.ID, &b.CompanyID, &b.PlateNumber, &b.Model, &b.TotalSeats, &b.CreatedAt, &b.UpdatedAt)
}

// GetByID fetches a bus by its ID. It returns ErrBusNotFound if no
// row is found.
func (r *BusRepo) GetByID(ctx context.Context, id uint64) (*model.Bus, error) {
    const q = `SELECT id, company_id, plate_number, model, total_seats, created_at, updated_at
               FROM buses WHERE id = ?`
    var b model.Bus
    if err := r.db.QueryRowContext(ctx, q, id).
        Scan(&b.ID, &b.CompanyID, &b.PlateNumber, &b.Model, &b.TotalSeats, &b.CreatedAt, &b.UpdatedAt); err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrBusNotFound
        }
        return nil, err
    }
    return &b, nil
}

// ListByCompany returns all buses of a company ordered by id.
func (r *BusRepo) ListByCompany(ctx context.Context, companyID uint64) ([]*model.Bus, error) {
    const q = `SELECT id, company_id, plate_number, model, total_seats, created_at, updated_at
               FROM buses WHERE company_id = ? ORDER BY id`
    rows, err := r.db.QueryContext(ctx, q, companyID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    var out []*model.Bus
    for rows.Next() {
        b := new(model.Bus)
        if err := rows.Scan(&b.ID, &b.CompanyID, &b.PlateNumber, &b.Model, &b.TotalSeats, &b.CreatedAt, &b.UpdatedAt); err != nil {
            return nil, err
        }
        out = append(out, b)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return out, nil
}

// Update changes the plate number, model and seat capacity of a bus.
// Capacity changes affect only future schedules; existing schedules
// keep the counter they were seeded with. Returns sql.ErrNoRows when
// the bus does not exist and ErrConflict on a duplicate plate.
func (r *BusRepo) Update(ctx context.Context, id uint64, plate, model string, totalSeats uint32) error {
    const q = `UPDATE buses
               SET plate_number = ?, model = ?, total_seats = ?, updated_at = CURRENT_TIMESTAMP
               WHERE id = ?`
    res, err := r.db.ExecContext(ctx, q, plate, model, totalSeats, id)
    if err != nil {
        if isDuplicateEntry(err) {
            return ErrConflict
        }
        return err
    }
    if n, _ := res.RowsAffected(); n == 0 {
        return sql.ErrNoRows
    }
    return nil
}

// DeleteByID removes a bus that is not referenced by any schedule.
// If schedules exist for the bus, ErrConflict is returned so the
// departure history stays intact. Returns sql.ErrNoRows when the
// bus does not exist.
func (r *BusRepo) DeleteByID(ctx context.Context, id uint64) error {
    var exists uint64
    err := r.db.QueryRowContext(ctx, `SELECT id FROM buses WHERE id = ?`, id).Scan(&exists)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return sql.ErrNoRows
        }
        return err
    }
    var schedules int64
    if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM schedules WHERE bus_id = ?`, id).Scan(&schedules); err != nil {
        return err
    }
    if schedules > 0 {
        return ErrConflict
    }
    _, err = r.db.ExecContext(ctx, `DELETE FROM buses WHERE id = ?`, id)
    return err
}
