package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"fleetrent/config"
	"fleetrent/infras/otel/mocks"
	conflictMocks "fleetrent/internal/domains/booking/conflict/mocks"
	bookingMocks "fleetrent/internal/domains/booking/mocks"
	"fleetrent/internal/domains/booking/model"
	"fleetrent/internal/domains/booking/model/dto"
	"fleetrent/internal/domains/booking/service"
	carMocks "fleetrent/internal/domains/car/mocks"
	customerMocks "fleetrent/internal/domains/customer/mocks"
	identMocks "fleetrent/internal/domains/ident/mocks"
	eventMocks "fleetrent/internal/events/mocks"
	cacheMocks "fleetrent/shared/cache/mocks"
	"fleetrent/shared/constant"
	"fleetrent/shared/failure"
	gModel "fleetrent/shared/model"
	"fleetrent/shared/timezone"
)

type fixture struct {
	repo      *bookingMocks.MockBooking
	carRepo   *carMocks.MockCar
	custRepo  *customerMocks.MockCustomer
	detector  *conflictMocks.MockDetector
	allocator *identMocks.MockAllocator
	events    *eventMocks.MockPublisher
	cache     *cacheMocks.MockRedisCache
	svc       service.Booking
}

func newFixture(ctrl *gomock.Controller) *fixture {
	f := &fixture{
		repo:      bookingMocks.NewMockBooking(ctrl),
		carRepo:   carMocks.NewMockCar(ctrl),
		custRepo:  customerMocks.NewMockCustomer(ctrl),
		detector:  conflictMocks.NewMockDetector(ctrl),
		allocator: identMocks.NewMockAllocator(ctrl),
		events:    eventMocks.NewMockPublisher(ctrl),
		cache:     cacheMocks.NewMockRedisCache(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	// Cache invalidation and advisory car status updates run asynchronously
	// after the write commits.
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	f.svc = service.New(f.repo, f.carRepo, f.custRepo, f.detector, f.allocator, f.events, cfg, f.cache, mocks.NewOtel())

	return f
}

func uniqueViolation() error {
	return &pq.Error{Code: pq.ErrorCode("23505")}
}

func storedBooking(id, status string) model.Booking {
	start, _ := timezone.Parse(constant.RentalDateFormat, "2025-03-10")
	end, _ := timezone.Parse(constant.RentalDateFormat, "2025-03-12")

	return model.Booking{
		ID:         id,
		CarID:      "car-1",
		CustomerID: "CUST-0001",
		StartDate:  start,
		EndDate:    end,
		Status:     status,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  "tester",
			ModifiedBy: "tester",
		},
	}
}

func TestBookingService_Create(t *testing.T) {
	validReq := dto.CreateBookingRequest{
		CarID:      "car-1",
		CustomerID: "CUST-0001",
		StartDate:  "2025-03-10",
		EndDate:    "2025-03-12",
	}

	tests := []struct {
		name      string
		req       dto.CreateBookingRequest
		setupMock func(f *fixture)
		wantID    string
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful creation",
			req:  validReq,
			setupMock: func(f *fixture) {
				f.carRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.custRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.detector.EXPECT().HasConflict(gomock.Any(), "car-1", gomock.Any(), "").Return(false, nil)
				f.allocator.EXPECT().BookingID(gomock.Any(), gomock.Any(), 0).Return("RNT-20250310-001", nil)
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
				f.events.EXPECT().BookingCreated(gomock.Any(), gomock.Any())
			},
			wantID: "RNT-20250310-001",
		},
		{
			name: "start after end rejected before any store access",
			req: dto.CreateBookingRequest{
				CarID:      "car-1",
				CustomerID: "CUST-0001",
				StartDate:  "2025-03-12",
				EndDate:    "2025-03-10",
			},
			setupMock: func(f *fixture) {},
			wantErr:   true,
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "unknown car",
			req:  validReq,
			setupMock: func(f *fixture) {
				f.carRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name: "conflicting booking never inserts",
			req:  validReq,
			setupMock: func(f *fixture) {
				f.carRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.custRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.detector.EXPECT().HasConflict(gomock.Any(), "car-1", gomock.Any(), "").Return(true, nil)
			},
			wantErr:  true,
			wantCode: http.StatusConflict,
		},
		{
			name: "conflict check error propagates",
			req:  validReq,
			setupMock: func(f *fixture) {
				f.carRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.custRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.detector.EXPECT().HasConflict(gomock.Any(), "car-1", gomock.Any(), "").Return(false, errors.New("database error"))
			},
			wantErr:  true,
			wantCode: http.StatusInternalServerError,
		},
		{
			name: "claimed id retries with next attempt",
			req:  validReq,
			setupMock: func(f *fixture) {
				f.carRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.custRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.detector.EXPECT().HasConflict(gomock.Any(), "car-1", gomock.Any(), "").Return(false, nil)
				f.allocator.EXPECT().BookingID(gomock.Any(), gomock.Any(), 0).Return("RNT-20250310-001", nil)
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(uniqueViolation())
				f.allocator.EXPECT().BookingID(gomock.Any(), gomock.Any(), 1).Return("RNT-20250310-002", nil)
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
				f.events.EXPECT().BookingCreated(gomock.Any(), gomock.Any())
			},
			wantID: "RNT-20250310-002",
		},
		{
			name: "allocation exhausted after bounded retries",
			req:  validReq,
			setupMock: func(f *fixture) {
				f.carRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.custRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.detector.EXPECT().HasConflict(gomock.Any(), "car-1", gomock.Any(), "").Return(false, nil)
				f.allocator.EXPECT().BookingID(gomock.Any(), gomock.Any(), gomock.Any()).Return("RNT-20250310-001", nil).Times(5)
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(uniqueViolation()).Times(5)
			},
			wantErr:  true,
			wantCode: http.StatusConflict,
		},
		{
			name: "non-duplicate insert error stops retrying",
			req:  validReq,
			setupMock: func(f *fixture) {
				f.carRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.custRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.detector.EXPECT().HasConflict(gomock.Any(), "car-1", gomock.Any(), "").Return(false, nil)
				f.allocator.EXPECT().BookingID(gomock.Any(), gomock.Any(), 0).Return("RNT-20250310-001", nil)
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("database error"))
			},
			wantErr:  true,
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			f := newFixture(ctrl)
			tt.setupMock(f)

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "tester")
			id, err := f.svc.Create(ctx, tt.req)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.wantID, id)
		})
	}
}

func TestBookingService_Update(t *testing.T) {
	tests := []struct {
		name      string
		req       dto.UpdateBookingRequest
		setupMock func(f *fixture)
		wantErr   bool
		wantCode  int
	}{
		{
			name: "date change re-checks conflict excluding itself",
			req:  dto.UpdateBookingRequest{StartDate: "2025-03-11", EndDate: "2025-03-14"},
			setupMock: func(f *fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(storedBooking("RNT-20250310-001", model.StatusPending), nil)
				f.detector.EXPECT().HasConflict(gomock.Any(), "car-1", gomock.Any(), "RNT-20250310-001").Return(false, nil)
				f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name: "conflicting date change rejected without partial update",
			req:  dto.UpdateBookingRequest{StartDate: "2025-03-11", EndDate: "2025-03-14"},
			setupMock: func(f *fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(storedBooking("RNT-20250310-001", model.StatusPending), nil)
				f.detector.EXPECT().HasConflict(gomock.Any(), "car-1", gomock.Any(), "RNT-20250310-001").Return(true, nil)
			},
			wantErr:  true,
			wantCode: http.StatusConflict,
		},
		{
			name: "notes-only edit skips the conflict check",
			req:  dto.UpdateBookingRequest{Notes: "picked up late"},
			setupMock: func(f *fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(storedBooking("RNT-20250310-001", model.StatusActive), nil)
				f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name: "terminal booking rejects every edit",
			req:  dto.UpdateBookingRequest{Notes: "late"},
			setupMock: func(f *fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(storedBooking("RNT-20250310-001", model.StatusReturned), nil)
			},
			wantErr:  true,
			wantCode: http.StatusConflict,
		},
		{
			name: "invalid transition rejected",
			req:  dto.UpdateBookingRequest{Status: model.StatusPending},
			setupMock: func(f *fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(storedBooking("RNT-20250310-001", model.StatusActive), nil)
			},
			wantErr:  true,
			wantCode: http.StatusConflict,
		},
		{
			name:      "empty update request",
			req:       dto.UpdateBookingRequest{},
			setupMock: func(f *fixture) {},
			wantErr:   true,
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "unknown booking",
			req:  dto.UpdateBookingRequest{Notes: "late"},
			setupMock: func(f *fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			f := newFixture(ctrl)
			f.carRepo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
			tt.setupMock(f)

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "tester")
			err := f.svc.Update(ctx, tt.req, "RNT-20250310-001")

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestBookingService_CancelAndReturn(t *testing.T) {
	tests := []struct {
		name      string
		action    func(f *fixture, ctx context.Context) error
		setupMock func(f *fixture)
		wantErr   bool
		wantCode  int
	}{
		{
			name:   "cancel pending booking",
			action: func(f *fixture, ctx context.Context) error { return f.svc.Cancel(ctx, "RNT-20250310-001") },
			setupMock: func(f *fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(storedBooking("RNT-20250310-001", model.StatusPending), nil)
				f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				f.events.EXPECT().BookingCancelled(gomock.Any(), gomock.Any())
			},
		},
		{
			name:   "return active booking",
			action: func(f *fixture, ctx context.Context) error { return f.svc.Return(ctx, "RNT-20250310-001") },
			setupMock: func(f *fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(storedBooking("RNT-20250310-001", model.StatusActive), nil)
				f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				f.events.EXPECT().BookingReturned(gomock.Any(), gomock.Any())
			},
		},
		{
			name:   "cancel is terminal",
			action: func(f *fixture, ctx context.Context) error { return f.svc.Cancel(ctx, "RNT-20250310-001") },
			setupMock: func(f *fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(storedBooking("RNT-20250310-001", model.StatusCancelled), nil)
			},
			wantErr:  true,
			wantCode: http.StatusConflict,
		},
		{
			name:   "returned booking cannot return again",
			action: func(f *fixture, ctx context.Context) error { return f.svc.Return(ctx, "RNT-20250310-001") },
			setupMock: func(f *fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(storedBooking("RNT-20250310-001", model.StatusReturned), nil)
			},
			wantErr:  true,
			wantCode: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			f := newFixture(ctrl)
			f.carRepo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
			tt.setupMock(f)

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "tester")
			err := tt.action(f, ctx)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestBookingService_CheckAvailability(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(f *fixture)
		want      bool
		wantErr   bool
	}{
		{
			name: "available",
			setupMock: func(f *fixture) {
				f.carRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.detector.EXPECT().HasConflict(gomock.Any(), "car-1", gomock.Any(), "").Return(false, nil)
			},
			want: true,
		},
		{
			name: "occupied",
			setupMock: func(f *fixture) {
				f.carRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.detector.EXPECT().HasConflict(gomock.Any(), "car-1", gomock.Any(), "").Return(true, nil)
			},
			want: false,
		},
		{
			name: "unknown car",
			setupMock: func(f *fixture) {
				f.carRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			f := newFixture(ctrl)
			tt.setupMock(f)

			res, err := f.svc.CheckAvailability(context.Background(), dto.AvailabilityRequest{
				CarID:     "car-1",
				StartDate: "2025-03-10",
				EndDate:   "2025-03-12",
			})

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.want, res.Available)
		})
	}
}
