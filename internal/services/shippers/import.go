package shippers

import (
	"context"

	"github.com/BearBump/ShipperBox/internal/broker/messages"
	"github.com/BearBump/ShipperBox/internal/models"
)

// Import creates a shipper from a shipper.import message. It goes through the
// same validation as Create.
func (s *Service) Import(ctx context.Context, msg messages.ShipperImport) (models.Result, error) {
	return s.Create(ctx, &ShipperDTO{
		CompanyName: msg.CompanyName,
		Phone:       msg.Phone,
	})
}
