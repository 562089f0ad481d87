package model

import "time"

// Route represents an origin/destination pair served by one
// company at a flat price per seat.  The combination of origin,
// destination and company is unique.  This struct corresponds to
// a row in the `routes` table.
//
// Fields:
//  ID              – primary key identifier.
//  CompanyID       – company operating the route.
//  Origin          – departure city.
//  Destination     – arrival city.
//  PriceCents      – flat price per seat in cents.  Bookings freeze
//                    this value at creation time; later changes never
//                    affect existing bookings.
//  DurationMinutes – scheduled travel time in minutes.
//  CreatedAt       – creation timestamp.
//  UpdatedAt       – last update timestamp.
type Route struct {
    ID              uint64    // routes.id
    CompanyID       uint64    // routes.company_id
    Origin          string    // routes.origin
    Destination     string    // routes.destination
    PriceCents      int64     // routes.price_cents
    DurationMinutes uint32    // routes.duration_minutes
    CreatedAt       time.Time // routes.created_at
    UpdatedAt       time.Time // routes.updated_at
}
