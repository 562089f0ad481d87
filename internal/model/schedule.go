package model

import "time"

// Schedule statuses.  Only ACTIVE schedules accept reservations.
const (
    ScheduleActive    = "ACTIVE"
    ScheduleCancelled = "CANCELLED"
    ScheduleCompleted = "COMPLETED"
)

// Schedule represents one concrete, dated departure of a bus on a
// route.  AvailableSeats is the authoritative seat counter for the
// departure: it starts at the bus capacity and is decremented, under
// a row lock, every time a booking is created.  It never goes
// negative and is never cached outside the database.
//
// Fields:
//  ID             – primary key identifier.
//  RouteID        – route being driven.
//  BusID          – bus assigned to the departure.
//  DepartureTime  – when the bus leaves.
//  ArrivalTime    – when the bus is expected to arrive.
//  AvailableSeats – remaining unsold seats (0 ≤ n ≤ bus.TotalSeats).
//  Status         – ACTIVE, CANCELLED or COMPLETED.
//  CreatedAt      – creation timestamp.
//  UpdatedAt      – last update timestamp.
type Schedule struct {
    ID             uint64    // schedules.id
    RouteID        uint64    // schedules.route_id
    BusID          uint64    // schedules.bus_id
    DepartureTime  time.Time // schedules.departure_time
    ArrivalTime    time.Time // schedules.arrival_time
    AvailableSeats uint32    // schedules.available_seats
    Status         string    // schedules.status
    CreatedAt      time.Time // schedules.created_at
    UpdatedAt      time.Time // schedules.updated_at
}
