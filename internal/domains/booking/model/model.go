package model

import (
	"fleetrent/shared/interval"
	"fleetrent/shared/model"
	"time"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID          = "id"
	FieldCarID       = "car_id"
	FieldCustomerID  = "customer_id"
	FieldStartDate   = "start_date"
	FieldEndDate     = "end_date"
	FieldTotalAmount = "total_amount"
	FieldAdvance     = "advance_amount"
	FieldPaymentMode = "payment_mode"
	FieldStatus      = "status"
	FieldNotes       = "notes"
)

const (
	StatusPending   = "pending"
	StatusActive    = "active"
	StatusReturned  = "returned"
	StatusCancelled = "cancelled"
)

// transitions holds the allowed status moves. Returned and cancelled are
// terminal states with no outgoing edges.
var transitions = map[string][]string{
	StatusPending:   {StatusActive, StatusReturned, StatusCancelled},
	StatusActive:    {StatusReturned, StatusCancelled},
	StatusReturned:  {},
	StatusCancelled: {},
}

// CanTransition reports whether a booking may move from one status to
// another.
func CanTransition(from, to string) bool {
	allowed, ok := transitions[from]
	if !ok {
		return false
	}

	for _, status := range allowed {
		if status == to {
			return true
		}
	}

	return false
}

// IsTerminal reports whether the status admits no further transitions.
func IsTerminal(status string) bool {
	allowed, ok := transitions[status]

	return ok && len(allowed) == 0
}

// OccupyingStatuses are the statuses that hold a car for their date range.
// Returned and cancelled bookings release the car and never conflict.
func OccupyingStatuses() []string {
	return []string{StatusPending, StatusActive}
}

type Booking struct {
	ID            string    `db:"id"`
	CarID         string    `db:"car_id"`
	CustomerID    string    `db:"customer_id"`
	StartDate     time.Time `db:"start_date"`
	EndDate       time.Time `db:"end_date"`
	TotalAmount   float64   `db:"total_amount"`
	AdvanceAmount float64   `db:"advance_amount"`
	PaymentMode   string    `db:"payment_mode"`
	Status        string    `db:"status"`
	Notes         string    `db:"notes"`
	model.Metadata
}

// Interval returns the booking's rental period as a closed date interval.
func (b *Booking) Interval() (interval.Interval, error) {
	return interval.New(b.StartDate, b.EndDate)
}
