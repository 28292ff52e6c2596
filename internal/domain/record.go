package domain

import "time"

type RecordStatus string

const (
	RecordPending  RecordStatus = "pending"
	RecordApproved RecordStatus = "approved"
	RecordRejected RecordStatus = "rejected"
)

// Record is one claimed sustainable purchase. GreenCoins is stamped by
// the gamification handler when the record is approved and stays 0 on
// pending or rejected records; a stale stamp on a non-approved record is
// never counted towards a balance.
type Record struct {
	ID            uint         `json:"id"`
	UserID        uint         `json:"user_id"`
	ClientID      *uint        `json:"client_id,omitempty"`
	ComercioID    *uint        `json:"comercio_id,omitempty"`
	Fecha         string       `json:"fecha"`
	Monto         float64      `json:"monto"`
	Descripcion   string       `json:"descripcion"`
	Rubro         string       `json:"rubro"`
	CUIT          string       `json:"cuit,omitempty"`
	Status        RecordStatus `json:"status"`
	GreenCoins    int          `json:"green_coins"`
	IsSustainable bool         `json:"is_sustainable"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

// IsApproved reports whether the record contributes to its owner's balance.
func (r *Record) IsApproved() bool {
	return r.Status == RecordApproved
}

// CanTransitionTo limits status changes to the operator-driven
// pending→approved and pending→rejected paths. Re-approving an already
// approved record is allowed; the gamification handler is idempotent.
func (r *Record) CanTransitionTo(next RecordStatus) bool {
	switch next {
	case RecordApproved:
		return r.Status == RecordPending || r.Status == RecordApproved
	case RecordRejected:
		return r.Status == RecordPending
	case RecordPending:
		return r.Status == RecordPending
	default:
		return false
	}
}
