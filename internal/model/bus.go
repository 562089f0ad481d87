package model

import "time"

// Bus represents a physical vehicle belonging to a transport
// company.  TotalSeats is the fixed physical capacity and is the
// upper bound for a schedule's available seats.  This struct
// corresponds to a row in the `buses` table.
//
// Fields:
//  ID          – primary key identifier.
//  CompanyID   – owning transport company.
//  PlateNumber – unique registration plate.
//  Model       – vehicle model label (e.g. "Mercedes Sprinter").
//  TotalSeats  – physical seat capacity; never changes per schedule.
//  CreatedAt   – creation timestamp.
//  UpdatedAt   – last update timestamp.
type Bus struct {
    ID          uint64    // buses.id
    CompanyID   uint64    // buses.company_id
    PlateNumber string    // buses.plate_number
    Model       string    // buses.model
    TotalSeats  uint32    // buses.total_seats
    CreatedAt   time.Time // buses.created_at
    UpdatedAt   time.Time // buses.updated_at
}
