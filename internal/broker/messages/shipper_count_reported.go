package messages

import "time"

type ShipperCountReported struct {
	Total      int       `json:"total"`
	ReportedAt time.Time `json:"reported_at"`
}
