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
	customerMocks "fleetrent/internal/domains/customer/mocks"
	"fleetrent/internal/domains/customer/model/dto"
	"fleetrent/internal/domains/customer/service"
	identMocks "fleetrent/internal/domains/ident/mocks"
	cacheMocks "fleetrent/shared/cache/mocks"
	"fleetrent/shared/constant"
	"fleetrent/shared/failure"
)

func TestCustomerService_Create(t *testing.T) {
	req := dto.CreateCustomerRequest{
		Name:  "Budi Santoso",
		Phone: "081234567890",
	}

	tests := []struct {
		name      string
		setupMock func(repo *customerMocks.MockCustomer, allocator *identMocks.MockAllocator)
		wantID    string
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful creation",
			setupMock: func(repo *customerMocks.MockCustomer, allocator *identMocks.MockAllocator) {
				allocator.EXPECT().CustomerID(gomock.Any(), 0).Return("CUST-0001", nil)
				repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
			},
			wantID: "CUST-0001",
		},
		{
			name: "claimed id retries with next attempt",
			setupMock: func(repo *customerMocks.MockCustomer, allocator *identMocks.MockAllocator) {
				allocator.EXPECT().CustomerID(gomock.Any(), 0).Return("CUST-0001", nil)
				repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(&pq.Error{Code: pq.ErrorCode("23505")})
				allocator.EXPECT().CustomerID(gomock.Any(), 1).Return("CUST-0002", nil)
				repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
			},
			wantID: "CUST-0002",
		},
		{
			name: "allocation exhausted after bounded retries",
			setupMock: func(repo *customerMocks.MockCustomer, allocator *identMocks.MockAllocator) {
				allocator.EXPECT().CustomerID(gomock.Any(), gomock.Any()).Return("CUST-0001", nil).Times(5)
				repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(&pq.Error{Code: pq.ErrorCode("23505")}).Times(5)
			},
			wantErr:  true,
			wantCode: http.StatusConflict,
		},
		{
			name: "allocator error propagates",
			setupMock: func(repo *customerMocks.MockCustomer, allocator *identMocks.MockAllocator) {
				allocator.EXPECT().CustomerID(gomock.Any(), 0).Return("", errors.New("database error"))
			},
			wantErr:  true,
			wantCode: http.StatusInternalServerError,
		},
		{
			name: "non-duplicate insert error stops retrying",
			setupMock: func(repo *customerMocks.MockCustomer, allocator *identMocks.MockAllocator) {
				allocator.EXPECT().CustomerID(gomock.Any(), 0).Return("CUST-0001", nil)
				repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("database error"))
			},
			wantErr:  true,
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockRepo := customerMocks.NewMockCustomer(ctrl)
			mockAllocator := identMocks.NewMockAllocator(ctrl)
			mockCache := cacheMocks.NewMockRedisCache(ctrl)
			mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

			cfg := &config.Config{}
			cfg.Cache.TTL = 3600

			svc := service.New(mockRepo, mockAllocator, cfg, mockCache, mocks.NewOtel())
			tt.setupMock(mockRepo, mockAllocator)

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "tester")
			id, err := svc.Create(ctx, req)

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
