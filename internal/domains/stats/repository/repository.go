package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"fleetrent/infras/otel"
	"fleetrent/infras/postgres"
	bookingModel "fleetrent/internal/domains/booking/model"
	"fleetrent/shared/constant"
	"fleetrent/shared/logger"
)

type Stats interface {
	Revenue(ctx context.Context, from, to time.Time) (float64, error)
}

type repositoryImpl struct {
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Stats {
	return &repositoryImpl{
		db:   db,
		otel: otel,
	}
}

// Revenue sums booking amounts for rentals starting inside [from, to).
// Cancelled bookings never earn.
func (repo *repositoryImpl) Revenue(ctx context.Context, from, to time.Time) (float64, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".stats.Revenue")
	defer scope.End()

	query := fmt.Sprintf(
		"SELECT COALESCE(SUM(%s), 0) FROM %s WHERE %s >= :from AND %s < :to AND %s != :excluded_status",
		bookingModel.FieldTotalAmount,
		bookingModel.TableName,
		bookingModel.FieldStartDate,
		bookingModel.FieldStartDate,
		bookingModel.FieldStatus,
	)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	args := map[string]any{
		"from":            from,
		"to":              to,
		"excluded_status": bookingModel.StatusCancelled,
	}

	var revenue float64

	prepare, err := repo.db.Read.PrepareNamedContext(ctx, query)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return 0, fmt.Errorf("failed to prepare statement (stats): %w", err)
	}
	defer prepare.Close()

	err = prepare.GetContext(ctx, &revenue, args)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return 0, fmt.Errorf("failed to sum booking revenue: %w", err)
	}

	return revenue, nil
}
