package repository // repository holds data access logic for domain entities

import (
    "context"      // context is used to manage deadlines and cancellation
    "database/sql" // sql provides DB primitives
    "errors"       // errors package allows sentinel error definitions

    "github.com/mobembo/bus-ticket-reservation/internal/model" // model defines the Route record
)

// ErrRouteNotFound is returned when a route lookup fails.
var ErrRouteNotFound = errors.New("route not found")

// RouteRepo provides methods to create and retrieve routes.
type RouteRepo struct {
    db *sql.DB // db is the underlying database connection
}

// NewRouteRepo constructs a RouteRepo with the given DB handle.
func NewRouteRepo(db *sql.DB) *RouteRepo {
    return &RouteRepo{db: db}
}

// Create inserts a new route. After insert the ID field will be set
// and the row is read back to populate the timestamp fields. Inserting
// a duplicate (company, origin, destination) triple surfaces as
// ErrConflict via the unique key.
func (r *RouteRepo) Create(ctx context.Context, rt *model.Route) error {
    const qInsert = `INSERT INTO routes (company_id, origin, destination, price_cents, duration_minutes)
                     VALUES (?, ?, ?, ?, ?)`
    res, err := r.db.ExecContext(ctx, qInsert, rt.CompanyID, rt.Origin, rt.Destination, rt.PriceCents, rt.DurationMinutes)
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
    rt.ID = uint64(id)

    const qSelect = `SELECT id, company_id, origin, destination, price_cents, duration_minutes, created_at, updated_at
                     FROM routes WHERE id = ?`
    return r.db.QueryRowContext(ctx, qSelect, rt.ID).
        Scan(&rt.ID, &rt.CompanyID, &rt.Origin, &rt.Destination, &rt.PriceCents, &rt.DurationMinutes, &rt.CreatedAt, &rt.UpdatedAt)
}

// GetByID fetches a route by its ID. It returns ErrRouteNotFound if no
// row is found.
func (r *RouteRepo) GetByID(ctx context.Context, id uint64) (*model.Route, error) {
    const q = `SELECT id, company_id, origin, destination, price_cents, duration_minutes, created_at, updated_at
               FROM routes WHERE id = ?`
    var rt model.Route
    if err := r.db.QueryRowContext(ctx, q, id).
        Scan(&rt.ID, &rt.CompanyID, &rt.Origin, &rt.Destination, &rt.PriceCents, &rt.DurationMinutes, &rt.CreatedAt, &rt.UpdatedAt); err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrRouteNotFound
        }
        return nil, err
    }
    return &rt, nil
}

// ListByCompany returns all routes of a company ordered by id.
func (r *RouteRepo) ListByCompany(ctx context.Context, companyID uint64) ([]*model.Route, error) {
    const q = `SELECT id, company_id, origin, destination, price_cents, duration_minutes, created_at, updated_at
               FROM routes WHERE company_id = ? ORDER BY id`
    rows, err := r.db.QueryContext(ctx, q, companyID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    var out []*model.Route
    for rows.Next() {
        rt := new(model.Route)
        if err := rows.Scan(&rt.ID, &rt.CompanyID, &rt.Origin, &rt.Destination, &rt.PriceCents, &rt.DurationMinutes, &rt.CreatedAt, &rt.UpdatedAt); err != nil {
            return nil, err
        }
        out = append(out, rt)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return out, nil
}

// Update changes the price and duration of a route. The cities of a
// route are immutable; operators create a new route instead. Only
// future bookings see the new price. Returns sql.ErrNoRows when the
// route does not exist.
func (r *RouteRepo) Update(ctx context.Context, id uint64, priceCents int64, durationMinutes uint32) error {
    const q = `UPDATE routes
               SET price_cents = ?, duration_minutes = ?, updated_at = CURRENT_TIMESTAMP
               WHERE id = ?`
    res, err := r.db.ExecContext(ctx, q, priceCents, durationMinutes, id)
    if err != nil {
        return err
    }
    if n, _ := res.RowsAffected(); n == 0 {
        return sql.ErrNoRows
    }
    return nil
}

// DeleteByID removes a route that has no schedules. If schedules exist,
// ErrConflict is returned. Returns sql.ErrNoRows when the route does
// not exist.
func (r *RouteRepo) DeleteByID(ctx context.Context, id uint64) error {
    var exists uint64
    err := r.db.QueryRowContext(ctx, `SELECT id FROM routes WHERE id = ?`, id).Scan(&exists)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return sql.ErrNoRows
        }
        return err
    }
    var schedules int64
    if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM schedules WHERE route_id = ?`, id).Scan(&schedules); err != nil {
        return err
    }
    if schedules > 0 {
        return ErrConflict
    }
    _, err = r.db.ExecContext(ctx, `DELETE FROM routes WHERE id = ?`, id)
    return err
}
