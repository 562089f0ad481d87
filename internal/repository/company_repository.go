// Package repository contains data access logic separated from HTTP handlers.
// This file holds the repository methods for company CRUD and lookup
// operations. A Company represents a bus operator that owns buses and
// serves routes. Only minimal fields should be exposed in public responses.
package repository

import (
    "context"      // context allows passing deadlines and cancellation signals to DB operations
    "database/sql" // sql provides generic database operations and drivers
    "errors"       // errors is used to define custom error values

    "github.com/mobembo/bus-ticket-reservation/internal/model" // model defines the Company record
)

// ErrCompanyNotFound is returned when a company cannot be found in the DB.
var ErrCompanyNotFound = errors.New("company not found")

// CompanyRepo encapsulates all database queries related to companies. It
// depends on a sql.DB connection which should be configured elsewhere.
type CompanyRepo struct {
    db *sql.DB // db is the underlying database connection pool
}

// NewCompanyRepo constructs a CompanyRepo with the provided DB handle. This
// function allows dependency injection of the database in tests and at
// startup. There is no initialization logic beyond assigning the field.
func NewCompanyRepo(db *sql.DB) *CompanyRepo {
    return &CompanyRepo{db: db}
}

// Create inserts a new company into the database. On success the company's
// ID field will be populated with the auto-generated value. After the
// insert, a SELECT is executed to populate the CreatedAt and UpdatedAt
// fields so that callers receive a fully populated record. A duplicate
// name surfaces as ErrConflict.
func (r *CompanyRepo) Create(ctx context.Context, c *model.Company) error {
    const qInsert = "INSERT INTO companies (name, contact) VALUES (?, ?)"
    res, err := r.db.ExecContext(ctx, qInsert, c.Name, c.Contact)
    if err != nil {
        if isDuplicateEntry(err) {
            return ErrConflict
        }
        return err // propagate DB errors to the caller
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    c.ID = uint64(id)

    // Follow-up SELECT to populate default timestamp fields (created_at, updated_at).
    const qSelect = "SELECT name, contact, created_at, updated_at FROM companies WHERE id = ?"
    if err := r.db.QueryRowContext(ctx, qSelect, c.ID).Scan(&c.Name, &c.Contact, &c.CreatedAt, &c.UpdatedAt); err != nil {
        return err
    }
    return nil
}

// GetByID fetches a company by its ID. It returns ErrCompanyNotFound if
// no row is found.
func (r *CompanyRepo) GetByID(ctx context.Context, id uint64) (*model.Company, error) {
    const q = "SELECT id, name, contact, created_at, updated_at FROM companies WHERE id = ?"
    var c model.Company
    if err := r.db.QueryRowContext(ctx, q, id).Scan(&c.ID, &c.Name, &c.Contact, &c.CreatedAt, &c.UpdatedAt); err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrCompanyNotFound
        }
        return nil, err
    }
    return &c, nil
}

// ListAll returns all companies ordered by id. It is used for public
// browsing endpoints, so only ID and Name are selected.
func (r *CompanyRepo) ListAll(ctx context.Context) ([]*model.Company, error) {
    const q = `SELECT id, name FROM companies ORDER BY id`
    rows, err := r.db.QueryContext(ctx, q)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    var out []*model.Company
    for rows.Next() {
        c := &model.Company{}
        if err := rows.Scan(&c.ID, &c.Name); err != nil {
            return nil, err
        }
        out = append(out, c)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return out, nil
}

// Update changes the name and contact of a company. It returns
// sql.ErrNoRows when no row is affected (not found) and ErrConflict
// when the new name collides with another company.
func (r *CompanyRepo) Update(ctx context.Context, id uint64, name, contact string) error {
    const q = `UPDATE companies
               SET name = ?, contact = ?, updated_at = CURRENT_TIMESTAMP
               WHERE id = ?`
    res, err := r.db.ExecContext(ctx, q, name, contact, id)
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

// DeleteByID removes a company together with its buses, routes and
// schedules, provided none of those schedules has a booking. Bookings
// are an immutable financial record and are never deleted, so a company
// with any booking under it cannot be removed and ErrConflict is
// returned. If the company does not exist, sql.ErrNoRows is returned.
// The deletion occurs within a transaction to maintain integrity.
func (r *CompanyRepo) DeleteByID(ctx context.Context, id uint64) error {
    tx, err := r.db.BeginTx(ctx, nil)
    if err != nil {
        return err
    }
    defer func() {
        if err != nil {
            _ = tx.Rollback()
        } else {
            _ = tx.Commit()
        }
    }()
    // Verify the company exists.
    var exists uint64
    if err = tx.QueryRowContext(ctx, `SELECT id FROM companies WHERE id = ?`, id).Scan(&exists); err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return sql.ErrNoRows
        }
        return err
    }
    // Refuse to delete when bookings reference any of the company's schedules.
    var bookings int64
    if err = tx.QueryRowContext(ctx,
        `SELECT COUNT(*) FROM bookings bk
         JOIN schedules s ON s.id = bk.schedule_id
         JOIN routes rt ON rt.id = s.route_id
         WHERE rt.company_id = ?`, id).Scan(&bookings); err != nil {
        return err
    }
    if bookings > 0 {
        err = ErrConflict
        return err
    }
    // Cascade delete: schedules on the company's routes first.
    if _, err = tx.ExecContext(ctx,
        `DELETE s FROM schedules s
         JOIN routes rt ON rt.id = s.route_id
         WHERE rt.company_id = ?`, id); err != nil {
        return err
    }
    // Delete routes for this company.
    if _, err = tx.ExecContext(ctx, `DELETE FROM routes WHERE company_id = ?`, id); err != nil {
        return err
    }
    // Delete buses for this company.
    if _, err = tx.ExecContext(ctx, `DELETE FROM buses WHERE company_id = ?`, id); err != nil {
        return err
    }
    // Finally delete the company.
    if _, err = tx.ExecContext(ctx, `DELETE FROM companies WHERE id = ?`, id); err != nil {
        return err
    }
    return nil
}
