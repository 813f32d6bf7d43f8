package shippers_api

type pageParameter struct {
	From int `validate:"gte=1"`
	Size int `validate:"gte=1,lte=100"`
}

type searchParameter struct {
	CompanyName string `validate:"required_without=Phone,max=40"`
	Phone       string `validate:"required_without=CompanyName,max=24"`
}

type idParameter struct {
	ShipperID int `json:"shipperId" validate:"gt=0"`
}

type shipperParameter struct {
	CompanyName string `json:"companyName" validate:"notblank,max=40"`
	Phone       string `json:"phone" validate:"notblank,max=24"`
}

type shipperUpdateParameter struct {
	ShipperID   int    `json:"shipperId" validate:"gt=0"`
	CompanyName string `json:"companyName" validate:"notblank,max=40"`
	Phone       string `json:"phone" validate:"notblank,max=24"`
}
