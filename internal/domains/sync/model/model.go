package model

const (
	EntityName = "sync"
)

// Entities an offline operation may target.
const (
	EntityCar      = "car"
	EntityCustomer = "customer"
	EntityBooking  = "booking"
)

// Actions an offline operation may carry.
const (
	ActionCreate = "create"
	ActionUpdate = "update"
)

// Per-operation outcomes. A skipped operation was understood and rejected
// by a business rule; a failed one hit a malformed payload or a store
// error and may succeed on a later replay.
const (
	OutcomeApplied = "applied"
	OutcomeSkipped = "skipped"
	OutcomeFailed  = "failed"
)

const (
	ReasonBookingConflict     = "booking_conflict"
	ReasonRecordNotFound      = "record_not_found"
	ReasonDuplicateRecord     = "duplicate_record"
	ReasonInvalidPayload      = "invalid_payload"
	ReasonStoreError          = "store_error"
	ReasonAllocationExhausted = "allocation_exhausted"
)
