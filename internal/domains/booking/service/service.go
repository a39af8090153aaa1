package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"fleetrent/config"
	"fleetrent/infras/otel"
	"fleetrent/internal/domains/booking/conflict"
	"fleetrent/internal/domains/booking/model"
	"fleetrent/internal/domains/booking/model/dto"
	"fleetrent/internal/domains/booking/repository"
	carModel "fleetrent/internal/domains/car/model"
	carRepo "fleetrent/internal/domains/car/repository"
	customerModel "fleetrent/internal/domains/customer/model"
	customerRepo "fleetrent/internal/domains/customer/repository"
	"fleetrent/internal/domains/ident"
	"fleetrent/internal/events"
	"fleetrent/shared"
	"fleetrent/shared/cache"
	"fleetrent/shared/constant"
	gDto "fleetrent/shared/dto"
	"fleetrent/shared/failure"
	"fleetrent/shared/interval"
	gRepo "fleetrent/shared/repository"
	"fleetrent/shared/timezone"
)

const (
	cacheGetBooking    = "booking:get"
	cacheGetAllBooking = "booking:gets"
	cacheCountBooking  = "booking:count"
	cacheCarPrefix     = "car:"
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (string, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	Update(ctx context.Context, req dto.UpdateBookingRequest, id string) error
	Cancel(ctx context.Context, id string) error
	Return(ctx context.Context, id string) error
	CheckAvailability(ctx context.Context, req dto.AvailabilityRequest) (dto.AvailabilityResponse, error)
}

type serviceImpl struct {
	repo      repository.Booking
	carRepo   carRepo.Car
	custRepo  customerRepo.Customer
	detector  conflict.Detector
	allocator ident.Allocator
	events    events.Publisher
	cfg       *config.Config
	cache     cache.RedisCache
	otel      otel.Otel
}

func New(
	repo repository.Booking,
	carRepo carRepo.Car,
	custRepo customerRepo.Customer,
	detector conflict.Detector,
	allocator ident.Allocator,
	events events.Publisher,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Booking {
	return &serviceImpl{
		repo:      repo,
		carRepo:   carRepo,
		custRepo:  custRepo,
		detector:  detector,
		allocator: allocator,
		events:    events,
		cfg:       cfg,
		cache:     cache,
		otel:      otel,
	}
}

// Create reserves a car for the requested period. The conflict check runs
// before any identifier is allocated; a conflicting request never inserts.
// The allocated identifier is the primary key, so a concurrent claim of the
// same sequence number fails the insert and the allocation retries.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (id string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	iv, err := req.Interval()
	if err != nil {
		return "", err // nolint:wrapcheck
	}

	if err = s.ensureCarExists(ctx, req.CarID); err != nil {
		return "", err
	}

	if err = s.ensureCustomerExists(ctx, req.CustomerID); err != nil {
		return "", err
	}

	conflicted, err := s.detector.HasConflict(ctx, req.CarID, iv, constant.Empty)
	if err != nil {
		log.Error().Err(err).Msg("failed to check booking conflict")

		return "", fmt.Errorf("failed to check booking conflict: %w", err)
	}

	if conflicted {
		return "", failure.Conflict("car is already booked for the requested dates") // nolint:wrapcheck
	}

	var booking model.Booking

	inserted := false

	for attempt := range ident.MaxAttempts {
		id, err = s.allocator.BookingID(ctx, iv.Start, attempt)
		if err != nil {
			log.Error().Err(err).Msg("failed to allocate booking id")

			return "", fmt.Errorf("failed to allocate booking id: %w", err)
		}

		booking = req.ToModel(id, user, iv)

		err = s.repo.Insert(ctx, booking)
		if err == nil {
			inserted = true

			break
		}

		if !gRepo.IsUniqueViolation(err) {
			log.Error().Err(err).Msg("failed to create booking")

			return "", fmt.Errorf("failed to create booking: %w", err)
		}

		log.Warn().Str("id", id).Int("attempt", attempt).Msg("booking id already claimed, retrying allocation")
	}

	if !inserted {
		return "", failure.AllocationExhausted(model.EntityName) // nolint:wrapcheck
	}

	s.events.BookingCreated(ctx, booking)

	go func() {
		c := context.WithoutCancel(ctx)

		if booking.Status == model.StatusActive {
			s.markCarStatus(c, booking.CarID, carModel.StatusRented)
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)
	}()

	return id, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetBooking, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking")

		return res, nil
	}

	booking, err := s.getBooking(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(booking)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking to cache")
		}
	}()

	return res, nil
}

// Update edits a reservation. A terminal booking rejects every edit. When
// the car or the rental period changes while the booking still occupies the
// car, the conflict check reruns with the booking itself excluded; a
// conflicting edit is rejected with no partial update applied.
func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateBookingRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req == (dto.UpdateBookingRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	existing, err := s.getBooking(ctx, id)
	if err != nil {
		return err
	}

	if model.IsTerminal(existing.Status) {
		return failure.Conflict(fmt.Sprintf("booking is %s and can no longer change", existing.Status)) // nolint:wrapcheck
	}

	newStatus := existing.Status
	if req.Status != "" && req.Status != existing.Status {
		if !model.CanTransition(existing.Status, req.Status) {
			return failure.Conflict(fmt.Sprintf("cannot transition booking from %s to %s", existing.Status, req.Status)) // nolint:wrapcheck
		}

		newStatus = req.Status
	}

	newCarID := existing.CarID
	if req.CarID != "" {
		newCarID = req.CarID
	}

	startDate := existing.StartDate.Format(constant.RentalDateFormat)
	if req.StartDate != "" {
		startDate = req.StartDate
	}

	endDate := existing.EndDate.Format(constant.RentalDateFormat)
	if req.EndDate != "" {
		endDate = req.EndDate
	}

	iv, err := interval.Parse(startDate, endDate)
	if err != nil {
		return err // nolint:wrapcheck
	}

	existingIv, err := existing.Interval()
	if err != nil {
		log.Error().Err(err).Msg("stored booking has malformed interval")

		return fmt.Errorf("stored booking has malformed interval: %w", err)
	}

	carChanged := newCarID != existing.CarID
	datesChanged := !iv.Start.Equal(existingIv.Start) || !iv.End.Equal(existingIv.End)

	if carChanged {
		if err = s.ensureCarExists(ctx, newCarID); err != nil {
			return err
		}
	}

	occupying := newStatus == model.StatusPending || newStatus == model.StatusActive
	if occupying && (carChanged || datesChanged) {
		conflicted, err := s.detector.HasConflict(ctx, newCarID, iv, id)
		if err != nil {
			log.Error().Err(err).Msg("failed to check booking conflict")

			return fmt.Errorf("failed to check booking conflict: %w", err)
		}

		if conflicted {
			return failure.Conflict("car is already booked for the requested dates") // nolint:wrapcheck
		}
	}

	updatedFields := shared.TransformFields(req, user)
	if datesChanged {
		updatedFields[model.FieldStartDate] = iv.Start
		updatedFields[model.FieldEndDate] = iv.End
	}

	if newStatus != existing.Status {
		updatedFields[model.FieldStatus] = newStatus
	}

	filter := shared.FilterByID(id, model.FieldID, model.TableName)
	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update booking")

		return fmt.Errorf("failed to update booking: %w", err)
	}

	updated := existing
	updated.CarID = newCarID
	updated.StartDate = iv.Start
	updated.EndDate = iv.End
	updated.Status = newStatus

	switch newStatus {
	case model.StatusCancelled:
		s.events.BookingCancelled(ctx, updated)
	case model.StatusReturned:
		s.events.BookingReturned(ctx, updated)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		s.syncCarStatus(c, existing, updated)
		s.invalidateBookingCaches(c, id)
	}()

	return nil
}

// Cancel moves the booking to its cancelled terminal state.
func (s *serviceImpl) Cancel(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Cancel")
	defer scope.End()
	defer scope.TraceIfError(err)

	return s.finish(ctx, id, model.StatusCancelled)
}

// Return moves the booking to its returned terminal state.
func (s *serviceImpl) Return(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Return")
	defer scope.End()
	defer scope.TraceIfError(err)

	return s.finish(ctx, id, model.StatusReturned)
}

func (s *serviceImpl) CheckAvailability(ctx context.Context, req dto.AvailabilityRequest) (res dto.AvailabilityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CheckAvailability")
	defer scope.End()
	defer scope.TraceIfError(err)

	iv, err := interval.Parse(req.StartDate, req.EndDate)
	if err != nil {
		return res, err // nolint:wrapcheck
	}

	if err = s.ensureCarExists(ctx, req.CarID); err != nil {
		return res, err
	}

	conflicted, err := s.detector.HasConflict(ctx, req.CarID, iv, constant.Empty)
	if err != nil {
		log.Error().Err(err).Msg("failed to check booking conflict")

		return res, fmt.Errorf("failed to check booking conflict: %w", err)
	}

	return dto.AvailabilityResponse{
		CarID:     req.CarID,
		StartDate: iv.Start.Format(constant.RentalDateFormat),
		EndDate:   iv.End.Format(constant.RentalDateFormat),
		Available: !conflicted,
	}, nil
}

func (s *serviceImpl) finish(ctx context.Context, id, target string) error {
	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	existing, err := s.getBooking(ctx, id)
	if err != nil {
		return err
	}

	if !model.CanTransition(existing.Status, target) {
		return failure.Conflict(fmt.Sprintf("cannot transition booking from %s to %s", existing.Status, target)) // nolint:wrapcheck
	}

	updatedFields := map[string]any{
		model.FieldStatus:        target,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	filter := shared.FilterByID(id, model.FieldID, model.TableName)
	if err := s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update booking status")

		return fmt.Errorf("failed to update booking status: %w", err)
	}

	updated := existing
	updated.Status = target

	switch target {
	case model.StatusCancelled:
		s.events.BookingCancelled(ctx, updated)
	case model.StatusReturned:
		s.events.BookingReturned(ctx, updated)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		s.syncCarStatus(c, existing, updated)
		s.invalidateBookingCaches(c, id)
	}()

	return nil
}

func (s *serviceImpl) getBooking(ctx context.Context, id string) (model.Booking, error) {
	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return booking, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return booking, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	return booking, nil
}

func (s *serviceImpl) ensureCarExists(ctx context.Context, carID string) error {
	exist, err := s.carRepo.Exist(ctx, shared.FilterByID(carID, carModel.FieldID, carModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if car exists")

		return fmt.Errorf("failed to check if car exists: %w", err)
	}

	if !exist {
		return failure.NotFound("car not found") // nolint:wrapcheck
	}

	return nil
}

func (s *serviceImpl) ensureCustomerExists(ctx context.Context, customerID string) error {
	exist, err := s.custRepo.Exist(ctx, shared.FilterByID(customerID, customerModel.FieldID, customerModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if customer exists")

		return fmt.Errorf("failed to check if customer exists: %w", err)
	}

	if !exist {
		return failure.NotFound("customer not found") // nolint:wrapcheck
	}

	return nil
}

// syncCarStatus keeps the car's cached status roughly in line with its
// bookings. Advisory only: the conflict detector stays authoritative, so a
// failed update is logged and dropped.
func (s *serviceImpl) syncCarStatus(ctx context.Context, before, after model.Booking) {
	switch {
	case after.Status == model.StatusActive && before.Status != model.StatusActive:
		s.markCarStatus(ctx, after.CarID, carModel.StatusRented)
	case before.Status == model.StatusActive && model.IsTerminal(after.Status):
		s.markCarStatus(ctx, after.CarID, carModel.StatusAvailable)
	}
}

func (s *serviceImpl) markCarStatus(ctx context.Context, carID, status string) {
	updatedFields := map[string]any{
		carModel.FieldStatus:     status,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: constant.ContextSystem,
	}

	err := s.carRepo.Update(ctx, updatedFields, shared.FilterByID(carID, carModel.FieldID, carModel.TableName))
	if err != nil {
		log.Warn().Err(err).Str("carID", carID).Str("status", status).Msg("failed to sync car status")

		return
	}

	shared.InvalidateCaches(ctx, s.cache, cacheCarPrefix)
}

func (s *serviceImpl) invalidateBookingCaches(ctx context.Context, id string) {
	if err := s.cache.Delete(ctx, shared.BuildCacheKey(cacheGetBooking, id)); err != nil {
		log.Error().Err(err).Msg("failed to delete booking from cache")
	}

	shared.InvalidateCaches(ctx, s.cache, cacheGetAllBooking)
	shared.InvalidateCaches(ctx, s.cache, cacheCountBooking)
}
