package messages

import "time"

const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// ShipperChanged is published after a successful mutation.
// ShipperID is zero for "created": the insert does not report the new id.
type ShipperChanged struct {
	Action      string    `json:"action"`
	ShipperID   int       `json:"shipper_id,omitempty"`
	CompanyName string    `json:"company_name,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
}
