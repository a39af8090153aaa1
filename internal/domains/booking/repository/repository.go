package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fleetrent/infras/otel"
	"fleetrent/infras/postgres"
	"fleetrent/internal/domains/booking/model"
	gDto "fleetrent/shared/dto"
	gRepo "fleetrent/shared/repository"
)

type Booking interface {
	Insert(ctx context.Context, model model.Booking) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// FilterOccupying selects the bookings that hold the given car for any date
// range: pending and active ones, optionally excluding a booking id so a
// reservation does not conflict with itself during edits.
func FilterOccupying(carID, excludeBookingID string) gDto.FilterGroup {
	filters := []any{
		gDto.Filter{
			Field:    model.FieldCarID,
			Value:    carID,
			Operator: gDto.FilterOperatorEq,
			Table:    model.TableName,
		},
		gDto.Filter{
			Field:    model.FieldStatus,
			Value:    model.OccupyingStatuses(),
			Operator: gDto.FilterOperatorIn,
			Table:    model.TableName,
		},
	}

	if excludeBookingID != "" {
		filters = append(filters, gDto.Filter{
			Field:    model.FieldID,
			Value:    excludeBookingID,
			Operator: gDto.FilterOperatorNotEq,
			ArgName:  "exclude_id",
			Table:    model.TableName,
		})
	}

	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  filters,
	}
}
