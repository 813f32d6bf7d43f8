package models

// Shipper is a row of the shippers table.
type Shipper struct {
	ShipperID   int
	CompanyName string
	Phone       string
}

// Result describes the outcome of a create/update/delete.
// Message is set only when Success is false.
type Result struct {
	Success    bool   `json:"success"`
	AffectRows int    `json:"affectRows"`
	Message    string `json:"message,omitempty"`
}

func Succeeded(affected int) Result {
	return Result{Success: true, AffectRows: affected}
}

func Failed(affected int, message string) Result {
	return Result{Success: false, AffectRows: affected, Message: message}
}
