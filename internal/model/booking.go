package model

import "time"

// Booking statuses.  A booking is created PENDING with its seats
// already taken from the schedule, and becomes CONFIRMED only when
// its payment succeeds.  There is no cancelled or expired state:
// a pending booking keeps its seats indefinitely.
const (
    BookingPending   = "PENDING"
    BookingConfirmed = "CONFIRMED"
)

// Booking represents a user's claim on N seats of one schedule.
// TotalPriceCents is computed as route price × seats at creation,
// inside the same transaction that decrements the seat counter, and
// is never recomputed afterwards.  Bookings are never deleted.
//
// Fields:
//  ID              – primary key identifier.
//  UserID          – user who made the booking.
//  ScheduleID      – departure being booked.
//  SeatsBooked     – number of seats claimed (≥ 1).
//  TotalPriceCents – frozen total price in cents.
//  Status          – PENDING or CONFIRMED.
//  CreatedAt       – creation timestamp.
//  UpdatedAt       – last update timestamp.
type Booking struct {
    ID              uint64    // bookings.id
    UserID          uint64    // bookings.user_id
    ScheduleID      uint64    // bookings.schedule_id
    SeatsBooked     uint32    // bookings.seats_booked
    TotalPriceCents int64     // bookings.total_price_cents
    Status          string    // bookings.status
    CreatedAt       time.Time // bookings.created_at
    UpdatedAt       time.Time // bookings.updated_at
}
