// Package service reconciles offline write queues against the live store.
//
// A batch is processed as one pass: booking operations run strictly
// sequentially in queue order, since each one's conflict check depends on
// the bookings applied before it. Car and customer operations carry no
// ordering dependency and run concurrently. Every operation gets its own
// outcome; a rejected or failed item never aborts the rest of the batch.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"fleetrent/infras/otel"
	"fleetrent/internal/domains/booking/conflict"
	bookingDto "fleetrent/internal/domains/booking/model/dto"
	bookingRepo "fleetrent/internal/domains/booking/repository"
	bookingSvc "fleetrent/internal/domains/booking/service"
	carModel "fleetrent/internal/domains/car/model"
	carDto "fleetrent/internal/domains/car/model/dto"
	carRepo "fleetrent/internal/domains/car/repository"
	customerModel "fleetrent/internal/domains/customer/model"
	customerDto "fleetrent/internal/domains/customer/model/dto"
	customerRepo "fleetrent/internal/domains/customer/repository"
	"fleetrent/internal/domains/ident"
	"fleetrent/internal/domains/sync/model"
	"fleetrent/internal/domains/sync/model/dto"
	"fleetrent/internal/events"
	"fleetrent/shared"
	"fleetrent/shared/cache"
	"fleetrent/shared/constant"
	"fleetrent/shared/failure"
	gRepo "fleetrent/shared/repository"
	"fleetrent/shared/timezone"
)

var (
	errDuplicateRecord     = errors.New("record already exists")
	errAllocationExhausted = errors.New("identifier allocation exhausted")
)

type Sync interface {
	Reconcile(ctx context.Context, req dto.ReconcileRequest) (dto.ReconcileResponse, error)
}

type serviceImpl struct {
	bookings   bookingRepo.Booking
	cars       carRepo.Car
	customers  customerRepo.Customer
	bookingSvc bookingSvc.Booking
	detector   conflict.Detector
	allocator  ident.Allocator
	events     events.Publisher
	cache      cache.RedisCache
	otel       otel.Otel
}

func New(
	bookings bookingRepo.Booking,
	cars carRepo.Car,
	customers customerRepo.Customer,
	bookingSvc bookingSvc.Booking,
	detector conflict.Detector,
	allocator ident.Allocator,
	events events.Publisher,
	cache cache.RedisCache,
	otel otel.Otel,
) Sync {
	return &serviceImpl{
		bookings:   bookings,
		cars:       cars,
		customers:  customers,
		bookingSvc: bookingSvc,
		detector:   detector,
		allocator:  allocator,
		events:     events,
		cache:      cache,
		otel:       otel,
	}
}

// Reconcile applies a client's queued offline operations. When the context
// is cancelled between items the pass stops and reports the outcomes of
// the operations processed so far; the client requeues the remainder.
func (s *serviceImpl) Reconcile(ctx context.Context, req dto.ReconcileRequest) (res dto.ReconcileResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelSyncScopeName, constant.OtelSyncScopeName+".Reconcile")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	if user == constant.Empty {
		user = constant.ContextSync
		ctx = context.WithValue(ctx, constant.ContextKeyUserID, user)
	}

	outcomes := make([]*dto.OperationOutcome, len(req.Operations))

	var cancelled atomic.Bool

	var wg sync.WaitGroup

	for i := range req.Operations {
		op := req.Operations[i]
		if op.Entity == model.EntityBooking {
			continue
		}

		wg.Add(1)

		go func(i int, op dto.PendingOperation) {
			defer wg.Done()

			if ctx.Err() != nil {
				cancelled.Store(true)

				return
			}

			outcome := s.apply(ctx, op, user)
			outcomes[i] = &outcome
		}(i, op)
	}

	for i := range req.Operations {
		op := req.Operations[i]
		if op.Entity != model.EntityBooking {
			continue
		}

		if ctx.Err() != nil {
			cancelled.Store(true)

			break
		}

		outcome := s.apply(ctx, op, user)
		outcomes[i] = &outcome
	}

	wg.Wait()

	res.Total = len(req.Operations)
	res.Completed = !cancelled.Load()

	for _, outcome := range outcomes {
		if outcome == nil {
			continue
		}

		res.Processed++
		res.Outcomes = append(res.Outcomes, *outcome)

		switch outcome.Outcome {
		case model.OutcomeApplied:
			res.Applied++
		case model.OutcomeSkipped:
			res.Skipped++
		case model.OutcomeFailed:
			res.Failed++
		}
	}

	log.Info().
		Int("total", res.Total).
		Int("processed", res.Processed).
		Int("applied", res.Applied).
		Int("skipped", res.Skipped).
		Int("failed", res.Failed).
		Bool("completed", res.Completed).
		Msg("reconcile pass finished")

	c := context.WithoutCancel(ctx)

	s.events.ReconcileCompleted(c, events.ReconcileSummary{
		Total:      res.Total,
		Applied:    res.Applied,
		Skipped:    res.Skipped,
		Failed:     res.Failed,
		OccurredAt: timezone.Now(),
	})

	if res.Applied > 0 {
		go func() {
			shared.InvalidateCaches(c, s.cache, "booking:")
			shared.InvalidateCaches(c, s.cache, "car:")
			shared.InvalidateCaches(c, s.cache, "customer:")
		}()
	}

	return res, nil
}

func (s *serviceImpl) apply(ctx context.Context, op dto.PendingOperation, user string) dto.OperationOutcome {
	outcome := dto.OperationOutcome{
		OperationID: op.OperationID,
		Entity:      op.Entity,
		Action:      op.Action,
		RecordID:    op.TargetID,
	}
	if outcome.OperationID == constant.Empty {
		outcome.OperationID = uuid.NewString()
	}

	var (
		recordID string
		err      error
	)

	switch {
	case op.Entity == model.EntityBooking && op.Action == model.ActionCreate:
		recordID, err = s.applyBookingCreate(ctx, op, user)
	case op.Entity == model.EntityBooking && op.Action == model.ActionUpdate:
		err = s.applyBookingUpdate(ctx, op)
	case op.Entity == model.EntityCar && op.Action == model.ActionCreate:
		recordID, err = s.applyCarCreate(ctx, op, user)
	case op.Entity == model.EntityCar && op.Action == model.ActionUpdate:
		err = s.applyCarUpdate(ctx, op, user)
	case op.Entity == model.EntityCustomer && op.Action == model.ActionCreate:
		recordID, err = s.applyCustomerCreate(ctx, op, user)
	case op.Entity == model.EntityCustomer && op.Action == model.ActionUpdate:
		err = s.applyCustomerUpdate(ctx, op, user)
	default:
		err = failure.BadRequestFromString("unsupported offline operation")
	}

	if recordID != constant.Empty {
		outcome.RecordID = recordID
	}

	if err == nil {
		outcome.Outcome = model.OutcomeApplied

		return outcome
	}

	outcome.Outcome, outcome.Reason = classify(err)

	log.Warn().
		Err(err).
		Str("operationID", outcome.OperationID).
		Str("entity", op.Entity).
		Str("action", op.Action).
		Str("outcome", outcome.Outcome).
		Str("reason", outcome.Reason).
		Msg("offline operation not applied")

	return outcome
}

// classify maps an application error onto a per-item outcome. Skipped means
// a business rule rejected an understood operation; failed covers malformed
// payloads and store errors.
func classify(err error) (outcome, reason string) {
	switch {
	case errors.Is(err, errDuplicateRecord):
		return model.OutcomeSkipped, model.ReasonDuplicateRecord
	case errors.Is(err, errAllocationExhausted):
		return model.OutcomeFailed, model.ReasonAllocationExhausted
	}

	switch failure.GetCode(err) {
	case http.StatusNotFound:
		return model.OutcomeSkipped, model.ReasonRecordNotFound
	case http.StatusConflict:
		return model.OutcomeSkipped, model.ReasonBookingConflict
	case http.StatusBadRequest:
		return model.OutcomeFailed, model.ReasonInvalidPayload
	default:
		return model.OutcomeFailed, model.ReasonStoreError
	}
}

func (s *serviceImpl) applyBookingCreate(ctx context.Context, op dto.PendingOperation, user string) (string, error) {
	var req bookingDto.CreateBookingRequest
	if err := json.Unmarshal(op.Payload, &req); err != nil {
		return "", failure.BadRequestFromString("malformed booking payload") // nolint:wrapcheck
	}

	iv, err := req.Interval()
	if err != nil {
		return "", err // nolint:wrapcheck
	}

	carExists, err := s.cars.Exist(ctx, shared.FilterByID(req.CarID, carModel.FieldID, carModel.TableName))
	if err != nil {
		return "", fmt.Errorf("failed to check if car exists: %w", err)
	}

	if !carExists {
		return "", failure.NotFound("car not found") // nolint:wrapcheck
	}

	customerExists, err := s.customers.Exist(ctx, shared.FilterByID(req.CustomerID, customerModel.FieldID, customerModel.TableName))
	if err != nil {
		return "", fmt.Errorf("failed to check if customer exists: %w", err)
	}

	if !customerExists {
		return "", failure.NotFound("customer not found") // nolint:wrapcheck
	}

	conflicted, err := s.detector.HasConflict(ctx, req.CarID, iv, constant.Empty)
	if err != nil {
		return "", fmt.Errorf("failed to check booking conflict: %w", err)
	}

	if conflicted {
		return "", failure.Conflict("car is already booked for the requested dates") // nolint:wrapcheck
	}

	// A client-minted id makes the replay idempotent: the second attempt
	// trips the primary key and is skipped instead of double-booking.
	if op.TargetID != constant.Empty {
		booking := req.ToModel(op.TargetID, user, iv)

		if err := s.bookings.Insert(ctx, booking); err != nil {
			if gRepo.IsUniqueViolation(err) {
				return "", errDuplicateRecord
			}

			return "", fmt.Errorf("failed to insert booking: %w", err)
		}

		s.events.BookingCreated(ctx, booking)

		return op.TargetID, nil
	}

	for attempt := range ident.MaxAttempts {
		id, err := s.allocator.BookingID(ctx, iv.Start, attempt)
		if err != nil {
			return "", fmt.Errorf("failed to allocate booking id: %w", err)
		}

		booking := req.ToModel(id, user, iv)

		err = s.bookings.Insert(ctx, booking)
		if err == nil {
			s.events.BookingCreated(ctx, booking)

			return id, nil
		}

		if !gRepo.IsUniqueViolation(err) {
			return "", fmt.Errorf("failed to insert booking: %w", err)
		}
	}

	return "", errAllocationExhausted
}

// applyBookingUpdate delegates to the booking service so reconciled edits
// obey the same transition and conflict rules as online ones.
func (s *serviceImpl) applyBookingUpdate(ctx context.Context, op dto.PendingOperation) error {
	if op.TargetID == constant.Empty {
		return failure.BadRequestFromString("booking update requires a target id") // nolint:wrapcheck
	}

	var req bookingDto.UpdateBookingRequest
	if err := json.Unmarshal(op.Payload, &req); err != nil {
		return failure.BadRequestFromString("malformed booking payload") // nolint:wrapcheck
	}

	return s.bookingSvc.Update(ctx, req, op.TargetID) // nolint:wrapcheck
}

func (s *serviceImpl) applyCarCreate(ctx context.Context, op dto.PendingOperation, user string) (string, error) {
	var req carDto.CreateCarRequest
	if err := json.Unmarshal(op.Payload, &req); err != nil {
		return "", failure.BadRequestFromString("malformed car payload") // nolint:wrapcheck
	}

	car := req.ToModel(user)
	if op.TargetID != constant.Empty {
		car.ID = op.TargetID
	}

	if err := s.cars.Insert(ctx, car); err != nil {
		if gRepo.IsUniqueViolation(err) {
			return "", errDuplicateRecord
		}

		return "", fmt.Errorf("failed to insert car: %w", err)
	}

	return car.ID, nil
}

func (s *serviceImpl) applyCarUpdate(ctx context.Context, op dto.PendingOperation, user string) error {
	if op.TargetID == constant.Empty {
		return failure.BadRequestFromString("car update requires a target id") // nolint:wrapcheck
	}

	var req carDto.UpdateCarRequest
	if err := json.Unmarshal(op.Payload, &req); err != nil {
		return failure.BadRequestFromString("malformed car payload") // nolint:wrapcheck
	}

	filter := shared.FilterByID(op.TargetID, carModel.FieldID, carModel.TableName)

	exist, err := s.cars.Exist(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to check if car exists: %w", err)
	}

	if !exist {
		return failure.NotFound("car not found") // nolint:wrapcheck
	}

	if err := s.cars.Update(ctx, shared.TransformFields(req, user), filter); err != nil {
		return fmt.Errorf("failed to update car: %w", err)
	}

	return nil
}

func (s *serviceImpl) applyCustomerCreate(ctx context.Context, op dto.PendingOperation, user string) (string, error) {
	var req customerDto.CreateCustomerRequest
	if err := json.Unmarshal(op.Payload, &req); err != nil {
		return "", failure.BadRequestFromString("malformed customer payload") // nolint:wrapcheck
	}

	if op.TargetID != constant.Empty {
		if err := s.customers.Insert(ctx, req.ToModel(op.TargetID, user)); err != nil {
			if gRepo.IsUniqueViolation(err) {
				return "", errDuplicateRecord
			}

			return "", fmt.Errorf("failed to insert customer: %w", err)
		}

		return op.TargetID, nil
	}

	for attempt := range ident.MaxAttempts {
		id, err := s.allocator.CustomerID(ctx, attempt)
		if err != nil {
			return "", fmt.Errorf("failed to allocate customer id: %w", err)
		}

		err = s.customers.Insert(ctx, req.ToModel(id, user))
		if err == nil {
			return id, nil
		}

		if !gRepo.IsUniqueViolation(err) {
			return "", fmt.Errorf("failed to insert customer: %w", err)
		}
	}

	return "", errAllocationExhausted
}

func (s *serviceImpl) applyCustomerUpdate(ctx context.Context, op dto.PendingOperation, user string) error {
	if op.TargetID == constant.Empty {
		return failure.BadRequestFromString("customer update requires a target id") // nolint:wrapcheck
	}

	var req customerDto.UpdateCustomerRequest
	if err := json.Unmarshal(op.Payload, &req); err != nil {
		return failure.BadRequestFromString("malformed customer payload") // nolint:wrapcheck
	}

	filter := shared.FilterByID(op.TargetID, customerModel.FieldID, customerModel.TableName)

	exist, err := s.customers.Exist(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to check if customer exists: %w", err)
	}

	if !exist {
		return failure.NotFound("customer not found") // nolint:wrapcheck
	}

	if err := s.customers.Update(ctx, shared.TransformFields(req, user), filter); err != nil {
		return fmt.Errorf("failed to update customer: %w", err)
	}

	return nil
}
