package dto

import (
	"encoding/json"
)

// PendingOperation is one entry of a client's offline write queue. TargetID
// names the record an update applies to; for creates it optionally carries
// the id the client minted offline, which makes replays idempotent.
type PendingOperation struct {
	OperationID string          `json:"operation_id" validate:"omitempty,max=64"`
	Entity      string          `json:"entity"       validate:"required,oneof=car customer booking"`
	Action      string          `json:"action"       validate:"required,oneof=create update"`
	TargetID    string          `json:"target_id"    validate:"omitempty,max=64"`
	Payload     json.RawMessage `json:"payload"      validate:"required"`
	QueuedAt    string          `json:"queued_at"    validate:"omitempty"`
}

type ReconcileRequest struct {
	Operations []PendingOperation `json:"operations" validate:"required,min=1,dive"`
}

// OperationOutcome reports what happened to a single queued operation.
type OperationOutcome struct {
	OperationID string `json:"operation_id"`
	Entity      string `json:"entity"`
	Action      string `json:"action"`
	RecordID    string `json:"record_id,omitempty"`
	Outcome     string `json:"outcome"`
	Reason      string `json:"reason,omitempty"`
}

// ReconcileResponse is the per-batch report. Outcomes follow queue order
// and cover processed operations only: when Completed is false the pass
// was cancelled mid-batch and the client should requeue the rest.
type ReconcileResponse struct {
	Total     int                `json:"total"`
	Processed int                `json:"processed"`
	Applied   int                `json:"applied"`
	Skipped   int                `json:"skipped"`
	Failed    int                `json:"failed"`
	Completed bool               `json:"completed"`
	Outcomes  []OperationOutcome `json:"outcomes"`
}
