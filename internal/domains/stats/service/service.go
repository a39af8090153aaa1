package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"fleetrent/config"
	"fleetrent/infras/otel"
	bookingModel "fleetrent/internal/domains/booking/model"
	bookingRepo "fleetrent/internal/domains/booking/repository"
	carModel "fleetrent/internal/domains/car/model"
	carRepo "fleetrent/internal/domains/car/repository"
	customerRepo "fleetrent/internal/domains/customer/repository"
	"fleetrent/internal/domains/stats/model/dto"
	statsRepo "fleetrent/internal/domains/stats/repository"
	"fleetrent/shared/cache"
	"fleetrent/shared/constant"
	gDto "fleetrent/shared/dto"
	"fleetrent/shared/timezone"
)

const cacheDashboard = "stats:dashboard"

type Stats interface {
	Dashboard(ctx context.Context) (dto.DashboardResponse, error)
}

type serviceImpl struct {
	stats     statsRepo.Stats
	bookings  bookingRepo.Booking
	cars      carRepo.Car
	customers customerRepo.Customer
	cfg       *config.Config
	cache     cache.RedisCache
	otel      otel.Otel
}

func New(
	stats statsRepo.Stats,
	bookings bookingRepo.Booking,
	cars carRepo.Car,
	customers customerRepo.Customer,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Stats {
	return &serviceImpl{
		stats:     stats,
		bookings:  bookings,
		cars:      cars,
		customers: customers,
		cfg:       cfg,
		cache:     cache,
		otel:      otel,
	}
}

// Dashboard aggregates the fleet, customer and booking counters shown on
// the landing screen, plus bookings and revenue for the current month.
func (s *serviceImpl) Dashboard(ctx context.Context) (res dto.DashboardResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Dashboard")
	defer scope.End()
	defer scope.TraceIfError(err)

	err = s.cache.Get(ctx, cacheDashboard, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheDashboard).Msg("cache hit for dashboard stats")

		return res, nil
	}

	if res.TotalCars, err = s.cars.Count(ctx, gDto.FilterGroup{}); err != nil {
		log.Error().Err(err).Msg("failed to count cars")

		return res, fmt.Errorf("failed to count cars: %w", err)
	}

	if res.AvailableCars, err = s.cars.Count(ctx, filterEq(carModel.TableName, carModel.FieldStatus, carModel.StatusAvailable)); err != nil {
		log.Error().Err(err).Msg("failed to count available cars")

		return res, fmt.Errorf("failed to count available cars: %w", err)
	}

	if res.TotalCustomers, err = s.customers.Count(ctx, gDto.FilterGroup{}); err != nil {
		log.Error().Err(err).Msg("failed to count customers")

		return res, fmt.Errorf("failed to count customers: %w", err)
	}

	if res.ActiveBookings, err = s.bookings.Count(ctx, filterEq(bookingModel.TableName, bookingModel.FieldStatus, bookingModel.StatusActive)); err != nil {
		log.Error().Err(err).Msg("failed to count active bookings")

		return res, fmt.Errorf("failed to count active bookings: %w", err)
	}

	monthStart, monthEnd := monthBounds(timezone.Now())

	if res.MonthBookings, err = s.bookings.Count(ctx, filterMonth(monthStart, monthEnd)); err != nil {
		log.Error().Err(err).Msg("failed to count bookings for the month")

		return res, fmt.Errorf("failed to count bookings for the month: %w", err)
	}

	if res.MonthRevenue, err = s.stats.Revenue(ctx, monthStart, monthEnd); err != nil {
		log.Error().Err(err).Msg("failed to sum revenue for the month")

		return res, fmt.Errorf("failed to sum revenue for the month: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheDashboard, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save dashboard stats to cache")
		}
	}()

	return res, nil
}

func filterEq(table, field string, value any) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    field,
				Value:    value,
				Operator: gDto.FilterOperatorEq,
				Table:    table,
			},
		},
	}
}

func filterMonth(from, to time.Time) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    bookingModel.FieldStartDate,
				ArgName:  "month_start",
				Value:    from,
				Operator: gDto.FilterOperatorGreaterEq,
				Table:    bookingModel.TableName,
			},
			gDto.Filter{
				Field:    bookingModel.FieldStartDate,
				ArgName:  "month_end",
				Value:    to.Add(-time.Nanosecond),
				Operator: gDto.FilterOperatorLessEq,
				Table:    bookingModel.TableName,
			},
		},
	}
}

func monthBounds(now time.Time) (time.Time, time.Time) {
	loc := timezone.GetLocation()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)

	return start, start.AddDate(0, 1, 0)
}
