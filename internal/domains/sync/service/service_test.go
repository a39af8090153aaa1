package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"fleetrent/infras/otel/mocks"
	conflictMocks "fleetrent/internal/domains/booking/conflict/mocks"
	bookingMocks "fleetrent/internal/domains/booking/mocks"
	bookingDto "fleetrent/internal/domains/booking/model/dto"
	carMocks "fleetrent/internal/domains/car/mocks"
	carDto "fleetrent/internal/domains/car/model/dto"
	customerMocks "fleetrent/internal/domains/customer/mocks"
	identMocks "fleetrent/internal/domains/ident/mocks"
	"fleetrent/internal/domains/sync/model"
	"fleetrent/internal/domains/sync/model/dto"
	"fleetrent/internal/domains/sync/service"
	eventMocks "fleetrent/internal/events/mocks"
	cacheMocks "fleetrent/shared/cache/mocks"
	"fleetrent/shared/failure"
	"fleetrent/shared/interval"
)

type fixture struct {
	bookings   *bookingMocks.MockBooking
	cars       *carMocks.MockCar
	customers  *customerMocks.MockCustomer
	bookingSvc *bookingMocks.MockBookingService
	detector   *conflictMocks.MockDetector
	allocator  *identMocks.MockAllocator
	events     *eventMocks.MockPublisher
	cache      *cacheMocks.MockRedisCache
	svc        service.Sync
}

func newFixture(ctrl *gomock.Controller) *fixture {
	f := &fixture{
		bookings:   bookingMocks.NewMockBooking(ctrl),
		cars:       carMocks.NewMockCar(ctrl),
		customers:  customerMocks.NewMockCustomer(ctrl),
		bookingSvc: bookingMocks.NewMockBookingService(ctrl),
		detector:   conflictMocks.NewMockDetector(ctrl),
		allocator:  identMocks.NewMockAllocator(ctrl),
		events:     eventMocks.NewMockPublisher(ctrl),
		cache:      cacheMocks.NewMockRedisCache(ctrl),
	}

	f.events.EXPECT().ReconcileCompleted(gomock.Any(), gomock.Any()).AnyTimes()
	f.events.EXPECT().BookingCreated(gomock.Any(), gomock.Any()).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	f.svc = service.New(f.bookings, f.cars, f.customers, f.bookingSvc, f.detector, f.allocator, f.events, f.cache, mocks.NewOtel())

	return f
}

func payload(t *testing.T, v any) json.RawMessage {
	t.Helper()

	raw, err := json.Marshal(v)
	require.NoError(t, err)

	return raw
}

func bookingCreatePayload(t *testing.T, start, end string) json.RawMessage {
	return payload(t, bookingDto.CreateBookingRequest{
		CarID:      "car-1",
		CustomerID: "CUST-0001",
		StartDate:  start,
		EndDate:    end,
	})
}

func uniqueViolation() error {
	return &pq.Error{Code: pq.ErrorCode("23505")}
}

func TestSyncService_Reconcile_OverlappingBookingsInQueueOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(ctrl)

	f.cars.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil).Times(3)
	f.customers.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil).Times(3)

	// The first booking wins; once it is applied the other two collide.
	gomock.InOrder(
		f.detector.EXPECT().HasConflict(gomock.Any(), "car-1", gomock.Any(), "").Return(false, nil),
		f.detector.EXPECT().HasConflict(gomock.Any(), "car-1", gomock.Any(), "").Return(true, nil),
		f.detector.EXPECT().HasConflict(gomock.Any(), "car-1", gomock.Any(), "").Return(true, nil),
	)

	f.allocator.EXPECT().BookingID(gomock.Any(), gomock.Any(), 0).Return("RNT-20250310-001", nil)
	f.bookings.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)

	res, err := f.svc.Reconcile(context.Background(), dto.ReconcileRequest{
		Operations: []dto.PendingOperation{
			{OperationID: "op-1", Entity: model.EntityBooking, Action: model.ActionCreate, Payload: bookingCreatePayload(t, "2025-03-10", "2025-03-12")},
			{OperationID: "op-2", Entity: model.EntityBooking, Action: model.ActionCreate, Payload: bookingCreatePayload(t, "2025-03-12", "2025-03-14")},
			{OperationID: "op-3", Entity: model.EntityBooking, Action: model.ActionCreate, Payload: bookingCreatePayload(t, "2025-03-11", "2025-03-13")},
		},
	})

	assert.NoError(t, err)
	assert.True(t, res.Completed)
	assert.Equal(t, 3, res.Total)
	assert.Equal(t, 3, res.Processed)
	assert.Equal(t, 1, res.Applied)
	assert.Equal(t, 2, res.Skipped)
	assert.Equal(t, 0, res.Failed)

	require.Len(t, res.Outcomes, 3)
	assert.Equal(t, model.OutcomeApplied, res.Outcomes[0].Outcome)
	assert.Equal(t, "RNT-20250310-001", res.Outcomes[0].RecordID)
	assert.Equal(t, model.OutcomeSkipped, res.Outcomes[1].Outcome)
	assert.Equal(t, model.ReasonBookingConflict, res.Outcomes[1].Reason)
	assert.Equal(t, model.OutcomeSkipped, res.Outcomes[2].Outcome)
	assert.Equal(t, model.ReasonBookingConflict, res.Outcomes[2].Reason)
}

func TestSyncService_Reconcile_PerOperationOutcomes(t *testing.T) {
	tests := []struct {
		name       string
		op         dto.PendingOperation
		setupMock  func(f *fixture)
		wantResult string
		wantReason string
	}{
		{
			name: "booking update for a missing record is skipped",
			op: dto.PendingOperation{
				Entity:   model.EntityBooking,
				Action:   model.ActionUpdate,
				TargetID: "RNT-20250310-099",
				Payload:  json.RawMessage(`{"notes":"edited offline"}`),
			},
			setupMock: func(f *fixture) {
				f.bookingSvc.EXPECT().
					Update(gomock.Any(), gomock.Any(), "RNT-20250310-099").
					Return(failure.NotFound("booking not found"))
			},
			wantResult: model.OutcomeSkipped,
			wantReason: model.ReasonRecordNotFound,
		},
		{
			name: "booking update without a target id is rejected",
			op: dto.PendingOperation{
				Entity:  model.EntityBooking,
				Action:  model.ActionUpdate,
				Payload: json.RawMessage(`{"notes":"edited offline"}`),
			},
			setupMock:  func(f *fixture) {},
			wantResult: model.OutcomeFailed,
			wantReason: model.ReasonInvalidPayload,
		},
		{
			name: "malformed payload fails without reaching the store",
			op: dto.PendingOperation{
				Entity:  model.EntityCar,
				Action:  model.ActionCreate,
				Payload: json.RawMessage(`{not json`),
			},
			setupMock:  func(f *fixture) {},
			wantResult: model.OutcomeFailed,
			wantReason: model.ReasonInvalidPayload,
		},
		{
			name: "replayed create with a client-minted id is skipped as duplicate",
			op: dto.PendingOperation{
				Entity:   model.EntityCar,
				Action:   model.ActionCreate,
				TargetID: "car-9",
				Payload: payload(t, carDto.CreateCarRequest{
					Make:        "Toyota",
					Model:       "Avanza",
					Year:        2022,
					PlateNumber: "B 1234 XYZ",
				}),
			},
			setupMock: func(f *fixture) {
				f.cars.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(uniqueViolation())
			},
			wantResult: model.OutcomeSkipped,
			wantReason: model.ReasonDuplicateRecord,
		},
		{
			name: "store error surfaces as failed",
			op: dto.PendingOperation{
				Entity:   model.EntityCustomer,
				Action:   model.ActionUpdate,
				TargetID: "CUST-0001",
				Payload:  json.RawMessage(`{"phone":"0811111111"}`),
			},
			setupMock: func(f *fixture) {
				f.customers.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, errors.New("database error"))
			},
			wantResult: model.OutcomeFailed,
			wantReason: model.ReasonStoreError,
		},
		{
			name: "allocation exhaustion is reported as such",
			op: dto.PendingOperation{
				Entity:  model.EntityCustomer,
				Action:  model.ActionCreate,
				Payload: json.RawMessage(`{"name":"Budi","phone":"0811111111"}`),
			},
			setupMock: func(f *fixture) {
				f.allocator.EXPECT().CustomerID(gomock.Any(), gomock.Any()).Return("CUST-0001", nil).Times(5)
				f.customers.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(uniqueViolation()).Times(5)
			},
			wantResult: model.OutcomeFailed,
			wantReason: model.ReasonAllocationExhausted,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			f := newFixture(ctrl)
			tt.setupMock(f)

			res, err := f.svc.Reconcile(context.Background(), dto.ReconcileRequest{
				Operations: []dto.PendingOperation{tt.op},
			})

			assert.NoError(t, err)
			assert.True(t, res.Completed)
			require.Len(t, res.Outcomes, 1)
			assert.Equal(t, tt.wantResult, res.Outcomes[0].Outcome)
			assert.Equal(t, tt.wantReason, res.Outcomes[0].Reason)
		})
	}
}

func TestSyncService_Reconcile_FailureDoesNotAbortBatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(ctrl)

	f.cars.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, errors.New("database error"))
	f.customers.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
	f.customers.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	res, err := f.svc.Reconcile(context.Background(), dto.ReconcileRequest{
		Operations: []dto.PendingOperation{
			{Entity: model.EntityCar, Action: model.ActionUpdate, TargetID: "car-1", Payload: json.RawMessage(`{"status":"maintenance"}`)},
			{Entity: model.EntityCustomer, Action: model.ActionUpdate, TargetID: "CUST-0001", Payload: json.RawMessage(`{"phone":"0811111111"}`)},
		},
	})

	assert.NoError(t, err)
	assert.True(t, res.Completed)
	assert.Equal(t, 2, res.Processed)
	assert.Equal(t, 1, res.Applied)
	assert.Equal(t, 1, res.Failed)
}

func TestSyncService_Reconcile_CancellationYieldsPartialReport(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(ctrl)

	ctx, cancel := context.WithCancel(context.Background())

	f.cars.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
	f.customers.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)

	// Cancel while the first booking is in flight; the second never starts.
	f.detector.EXPECT().
		HasConflict(gomock.Any(), "car-1", gomock.Any(), "").
		DoAndReturn(func(context.Context, string, interval.Interval, string) (bool, error) {
			cancel()

			return false, nil
		})

	f.allocator.EXPECT().BookingID(gomock.Any(), gomock.Any(), 0).Return("RNT-20250310-001", nil)
	f.bookings.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)

	res, err := f.svc.Reconcile(ctx, dto.ReconcileRequest{
		Operations: []dto.PendingOperation{
			{OperationID: "op-1", Entity: model.EntityBooking, Action: model.ActionCreate, Payload: bookingCreatePayload(t, "2025-03-10", "2025-03-12")},
			{OperationID: "op-2", Entity: model.EntityBooking, Action: model.ActionCreate, Payload: bookingCreatePayload(t, "2025-03-15", "2025-03-17")},
		},
	})

	assert.NoError(t, err)
	assert.False(t, res.Completed)
	assert.Equal(t, 2, res.Total)
	assert.Equal(t, 1, res.Processed)
	assert.Equal(t, 1, res.Applied)
	require.Len(t, res.Outcomes, 1)
	assert.Equal(t, "op-1", res.Outcomes[0].OperationID)
}
