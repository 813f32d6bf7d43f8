package messages

type ShipperImport struct {
	CompanyName string `json:"company_name"`
	Phone       string `json:"phone"`
}
