package bootstrap

import (
	"time"

	"coworking-backend/internal/domain/booking"
	"coworking-backend/internal/pkg/config"
	"coworking-backend/internal/pkg/permission"

	"go.uber.org/fx"
)

var PolicyModule = fx.Module("policy",
	fx.Provide(
		NewBookingPolicy,
		permission.NewMatrix,
	),
)

func NewBookingPolicy(cfg config.Config) (*booking.Policy, error) {
	location, err := time.LoadLocation(cfg.Booking.Timezone)
	if err != nil {
		return nil, err
	}

	return booking.NewPolicy(
		location,
		cfg.Booking.OpeningHour,
		cfg.Booking.ClosingHour,
		cfg.Booking.MaxDurationHours,
		cfg.Booking.MaxActivePerUser,
		cfg.Booking.CancelLeadHours,
	), nil
}
