// Package queue defines message payloads exchanged over the message broker.
package queue

// BookingConfirmedEvent is published when a booking is paid and
// confirmed. It carries enough information for downstream consumers to
// log, notify, or trigger analytics without querying the primary
// database.
type BookingConfirmedEvent struct {
    BookingID       uint64 `json:"booking_id"`
    UserID          uint64 `json:"user_id"`
    ScheduleID      uint64 `json:"schedule_id"`
    Origin          string `json:"origin"`
    Destination     string `json:"destination"`
    CompanyName     string `json:"company_name"`
    PlateNumber     string `json:"plate_number"`
    DepartureTime   string `json:"departure_time"`
    SeatsBooked     uint32 `json:"seats_booked"`
    TotalPriceCents int64  `json:"total_price_cents"`
    TransactionRef  string `json:"transaction_ref"`
    Method          string `json:"method"`
    ConfirmedAt     string `json:"confirmed_at"`
}
