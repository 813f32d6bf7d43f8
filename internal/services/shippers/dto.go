package shippers

import "github.com/BearBump/ShipperBox/internal/models"

// ShipperDTO is what callers outside the service see.
type ShipperDTO struct {
	ShipperID   int    `json:"shipperId"`
	CompanyName string `json:"companyName" validate:"notblank,max=40"`
	Phone       string `json:"phone" validate:"notblank,max=24"`
}

func toRecord(d *ShipperDTO) *models.Shipper {
	return &models.Shipper{
		ShipperID:   d.ShipperID,
		CompanyName: d.CompanyName,
		Phone:       d.Phone,
	}
}

func toDTO(m *models.Shipper) *ShipperDTO {
	return &ShipperDTO{
		ShipperID:   m.ShipperID,
		CompanyName: m.CompanyName,
		Phone:       m.Phone,
	}
}

func toDTOs(ms []*models.Shipper) []*ShipperDTO {
	out := make([]*ShipperDTO, 0, len(ms))
	for _, m := range ms {
		out = append(out, toDTO(m))
	}
	return out
}
