// Package conflict decides whether a rental period collides with the
// bookings already holding a car.
package conflict

//go:generate go run go.uber.org/mock/mockgen -source=./conflict.go -destination=./mocks/conflict_mock.go -package=mocks

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"fleetrent/infras/otel"
	"fleetrent/internal/domains/booking/repository"
	"fleetrent/shared/constant"
	gDto "fleetrent/shared/dto"
	"fleetrent/shared/interval"
)

type Detector interface {
	HasConflict(ctx context.Context, carID string, iv interval.Interval, excludeBookingID string) (bool, error)
}

type detectorImpl struct {
	repo repository.Booking
	otel otel.Otel
}

func New(repo repository.Booking, otel otel.Otel) Detector {
	return &detectorImpl{
		repo: repo,
		otel: otel,
	}
}

// HasConflict reports whether any pending or active booking for the car
// overlaps the given interval. excludeBookingID removes one booking from
// consideration so an edited reservation never conflicts with itself.
//
// A fetch failure propagates as an error; it is never reported as "no
// conflict".
func (d *detectorImpl) HasConflict(ctx context.Context, carID string, iv interval.Interval, excludeBookingID string) (conflicted bool, err error) {
	ctx, scope := d.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".HasConflict")
	defer scope.End()
	defer scope.TraceIfError(err)

	occupying, err := d.repo.GetAll(ctx, gDto.QueryParams{}, repository.FilterOccupying(carID, excludeBookingID))
	if err != nil {
		log.Error().Err(err).Str("carID", carID).Msg("failed to fetch occupying bookings")

		return false, fmt.Errorf("failed to fetch occupying bookings: %w", err)
	}

	for i := range occupying {
		existing, err := occupying[i].Interval()
		if err != nil {
			log.Error().Err(err).Str("bookingID", occupying[i].ID).Msg("stored booking has malformed interval")

			return false, fmt.Errorf("stored booking has malformed interval: %w", err)
		}

		if iv.Overlaps(existing) {
			log.Info().
				Str("carID", carID).
				Str("bookingID", occupying[i].ID).
				Str("requested", iv.String()).
				Str("existing", existing.String()).
				Msg("booking conflict detected")

			return true, nil
		}
	}

	return false, nil
}
