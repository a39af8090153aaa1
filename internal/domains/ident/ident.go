// Package ident allocates the human-readable identifiers handed out to
// bookings (RNT-YYYYMMDD-NNN) and customers (CUST-NNNN).
//
// Allocation is count-then-increment: the next sequence number is derived
// from how many identifiers already exist in the scope, plus the caller's
// attempt offset. Two concurrent writers can still pick the same number;
// the identifier is the primary key, so the losing insert fails with a
// unique violation and the caller retries with the next attempt, up to
// MaxAttempts.
package ident

//go:generate go run go.uber.org/mock/mockgen -source=./ident.go -destination=./mocks/ident_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"fleetrent/infras/otel"
	bookingModel "fleetrent/internal/domains/booking/model"
	bookingRepo "fleetrent/internal/domains/booking/repository"
	customerRepo "fleetrent/internal/domains/customer/repository"
	"fleetrent/shared/constant"
	gDto "fleetrent/shared/dto"
)

// MaxAttempts bounds the allocate-insert retry loop. Exhausting it means
// sustained contention on the sequence scope, reported as a conflict.
const MaxAttempts = 5

const (
	BookingIDPrefix  = "RNT"
	CustomerIDPrefix = "CUST"
)

type Allocator interface {
	BookingID(ctx context.Context, ref time.Time, attempt int) (string, error)
	CustomerID(ctx context.Context, attempt int) (string, error)
}

type allocatorImpl struct {
	bookings  bookingRepo.Booking
	customers customerRepo.Customer
	otel      otel.Otel
}

func New(bookings bookingRepo.Booking, customers customerRepo.Customer, otel otel.Otel) Allocator {
	return &allocatorImpl{
		bookings:  bookings,
		customers: customers,
		otel:      otel,
	}
}

// BookingID derives the next booking identifier for the given reference
// date. The sequence restarts each day; it counts existing identifiers
// sharing the date prefix and adds the attempt offset.
func (a *allocatorImpl) BookingID(ctx context.Context, ref time.Time, attempt int) (id string, err error) {
	ctx, scope := a.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".BookingID")
	defer scope.End()
	defer scope.TraceIfError(err)

	prefix := fmt.Sprintf("%s-%s-", BookingIDPrefix, ref.Format(constant.BookingIDDayFormat))

	count, err := a.bookings.Count(ctx, gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    bookingModel.FieldID,
				Value:    prefix,
				Operator: gDto.FilterOperatorLike,
				Table:    bookingModel.TableName,
			},
		},
	})
	if err != nil {
		log.Error().Err(err).Str("prefix", prefix).Msg("failed to count bookings for id allocation")

		return "", fmt.Errorf("failed to count bookings for id allocation: %w", err)
	}

	return fmt.Sprintf("%s%03d", prefix, count+1+attempt), nil
}

// CustomerID derives the next customer identifier from the global customer
// count plus the attempt offset.
func (a *allocatorImpl) CustomerID(ctx context.Context, attempt int) (id string, err error) {
	ctx, scope := a.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CustomerID")
	defer scope.End()
	defer scope.TraceIfError(err)

	count, err := a.customers.Count(ctx, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to count customers for id allocation")

		return "", fmt.Errorf("failed to count customers for id allocation: %w", err)
	}

	return fmt.Sprintf("%s-%04d", CustomerIDPrefix, count+1+attempt), nil
}
