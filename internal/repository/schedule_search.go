package repository

import (
    "context"
    "strings"
)

// ScheduleSearchQuery defines filters & pagination for searching departures.
type ScheduleSearchQuery struct {
    Origin      string
    Destination string
    Date        string // "YYYY-MM-DD"; empty matches any day
    Company     string
    Page        int
    PageSize    int
}

type PublicScheduleRow struct {
    ID             uint64  `json:"id"`
    RouteID        uint64  `json:"route_id"`
    Origin         string  `json:"origin"`
    Destination    string  `json:"destination"`
    CompanyID      uint64  `json:"company_id"`
    Company        string  `json:"company"`
    BusModel       string  `json:"bus_model"`
    DepartureTime  string  `json:"departure_time"`
    ArrivalTime    string  `json:"arrival_time"`
    AvailableSeats uint32  `json:"available_seats"`
    PriceCents     int64   `json:"price_cents"`
    Price          float64 `json:"price"`
}

// SearchUpcoming returns ACTIVE future departures matching the query,
// newest-departing last, plus the total row count for pagination.
func (r *ScheduleRepo) SearchUpcoming(ctx context.Context, q ScheduleSearchQuery) ([]PublicScheduleRow, int64, error) {
    where := []string{"s.status = 'ACTIVE'", "s.departure_time >= NOW()"}
    args := []any{}

    if q.Origin != "" {
        where = append(where, "LOWER(rt.origin) LIKE ?")
        args = append(args, "%"+strings.ToLower(q.Origin)+"%")
    }
    if q.Destination != "" {
        where = append(where, "LOWER(rt.destination) LIKE ?")
        args = append(args, "%"+strings.ToLower(q.Destination)+"%")
    }
    if q.Date != "" {
        where = append(where, "DATE(s.departure_time) = ?")
        args = append(args, q.Date)
    }
    if q.Company != "" {
        where = append(where, "LOWER(c.name) LIKE ?")
        args = append(args, "%"+strings.ToLower(q.Company)+"%")
    }

    cond := strings.Join(where, " AND ")

    var total int64
    countSQL := `SELECT COUNT(*)
        FROM schedules s
        JOIN routes rt   ON rt.id = s.route_id
        JOIN companies c ON c.id = rt.company_id
        WHERE ` + cond
    if err := r.db.QueryRowContext(ctx, countSQL, args...).Scan(&total); err != nil {
        return nil, 0, err
    }

    limit := q.PageSize
    offset := (q.Page - 1) * q.PageSize

    dataSQL := `SELECT
            s.id,
            rt.id   AS route_id,
            rt.origin,
            rt.destination,
            c.id    AS company_id,
            c.name  AS company_name,
            b.model AS bus_model,
            DATE_FORMAT(s.departure_time, '%Y-%m-%d %T') AS departure_time,
            DATE_FORMAT(s.arrival_time,   '%Y-%m-%d %T') AS arrival_time,
            s.available_seats,
            rt.price_cents
        FROM schedules s
        JOIN routes rt   ON rt.id = s.route_id
        JOIN companies c ON c.id = rt.company_id
        JOIN buses b     ON b.id = s.bus_id
        WHERE ` + cond + `
        ORDER BY s.departure_time ASC
        LIMIT ? OFFSET ?`

    argsData := append(append([]any{}, args...), limit, offset)

    rows, err := r.db.QueryContext(ctx, dataSQL, argsData...)
    if err != nil {
        return nil, 0, err
    }
    defer rows.Close()

    out := make([]PublicScheduleRow, 0, limit)
    for rows.Next() {
        var d PublicScheduleRow
        if err := rows.Scan(
            &d.ID,
            &d.RouteID,
            &d.Origin,
            &d.Destination,
            &d.CompanyID,
            &d.Company,
            &d.BusModel,
            &d.DepartureTime,
            &d.ArrivalTime,
            &d.AvailableSeats,
            &d.PriceCents,
        ); err != nil {
            return nil, 0, err
        }
        d.Price = float64(d.PriceCents) / 100.0
        out = append(out, d)
    }
    if err := rows.Err(); err != nil {
        return nil, 0, err
    }
    return out, total, nil
}
