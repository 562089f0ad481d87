package model

import "time"

// Payment statuses.  SUCCESS and FAILED are terminal; a payment
// never leaves a terminal state.
const (
    PaymentPending = "PENDING"
    PaymentSuccess = "SUCCESS"
    PaymentFailed  = "FAILED"
)

// Mobile-money providers accepted for settlement.
const (
    MethodMPesa       = "MPESA"
    MethodAirtelMoney = "AIRTEL_MONEY"
    MethodOrangeMoney = "ORANGE_MONEY"
    MethodAfriMoney   = "AFRI_MONEY"
)

// ValidPaymentMethod reports whether m is one of the accepted
// mobile-money providers.
func ValidPaymentMethod(m string) bool {
    switch m {
    case MethodMPesa, MethodAirtelMoney, MethodOrangeMoney, MethodAfriMoney:
        return true
    }
    return false
}

// Payment represents the settlement attempt attached to a booking.
// At most one payment exists per booking, enforced by a unique key
// on booking_id.  AmountCents is copied from the booking's frozen
// total.  TransactionRef is globally unique and used for audit and
// idempotent gateway callbacks.
//
// Fields:
//  ID             – primary key identifier.
//  BookingID      – booking being settled (unique).
//  AmountCents    – amount charged, copied from the booking.
//  Method         – mobile-money provider.
//  PhoneNumber    – subscriber number charged.
//  TransactionRef – globally unique settlement reference.
//  Status         – PENDING, SUCCESS or FAILED.
//  PaidAt         – set only when the payment succeeds.
//  CreatedAt      – creation timestamp.
//  UpdatedAt      – last update timestamp.
type Payment struct {
    ID             uint64     // payments.id
    BookingID      uint64     // payments.booking_id
    AmountCents    int64      // payments.amount_cents
    Method         string     // payments.method
    PhoneNumber    string     // payments.phone_number
    TransactionRef string     // payments.transaction_ref
    Status         string     // payments.status
    PaidAt         *time.Time // payments.paid_at (nullable)
    CreatedAt      time.Time  // payments.created_at
    UpdatedAt      time.Time  // payments.updated_at
}
