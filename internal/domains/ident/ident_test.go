package ident_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"fleetrent/infras/otel/mocks"
	bookingMocks "fleetrent/internal/domains/booking/mocks"
	customerMocks "fleetrent/internal/domains/customer/mocks"
	"fleetrent/internal/domains/ident"
)

func TestAllocator_BookingID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockBookings := bookingMocks.NewMockBooking(ctrl)
	mockCustomers := customerMocks.NewMockCustomer(ctrl)
	mockOtel := mocks.NewOtel()

	allocator := ident.New(mockBookings, mockCustomers, mockOtel)

	ref := time.Date(2025, 3, 10, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		name      string
		attempt   int
		setupMock func()
		want      string
		wantErr   bool
	}{
		{
			name:    "first id of the day",
			attempt: 0,
			setupMock: func() {
				mockBookings.EXPECT().
					Count(gomock.Any(), gomock.Any()).
					Return(0, nil)
			},
			want: "RNT-20250310-001",
		},
		{
			name:    "sequence continues from existing count",
			attempt: 0,
			setupMock: func() {
				mockBookings.EXPECT().
					Count(gomock.Any(), gomock.Any()).
					Return(41, nil)
			},
			want: "RNT-20250310-042",
		},
		{
			name:    "attempt offset skips claimed numbers",
			attempt: 2,
			setupMock: func() {
				mockBookings.EXPECT().
					Count(gomock.Any(), gomock.Any()).
					Return(41, nil)
			},
			want: "RNT-20250310-044",
		},
		{
			name:    "count error propagates",
			attempt: 0,
			setupMock: func() {
				mockBookings.EXPECT().
					Count(gomock.Any(), gomock.Any()).
					Return(0, errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			got, err := allocator.BookingID(context.Background(), ref, tt.attempt)

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAllocator_CustomerID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockBookings := bookingMocks.NewMockBooking(ctrl)
	mockCustomers := customerMocks.NewMockCustomer(ctrl)
	mockOtel := mocks.NewOtel()

	allocator := ident.New(mockBookings, mockCustomers, mockOtel)

	tests := []struct {
		name      string
		attempt   int
		setupMock func()
		want      string
		wantErr   bool
	}{
		{
			name:    "first customer",
			attempt: 0,
			setupMock: func() {
				mockCustomers.EXPECT().
					Count(gomock.Any(), gomock.Any()).
					Return(0, nil)
			},
			want: "CUST-0001",
		},
		{
			name:    "sequence continues with attempt offset",
			attempt: 1,
			setupMock: func() {
				mockCustomers.EXPECT().
					Count(gomock.Any(), gomock.Any()).
					Return(12, nil)
			},
			want: "CUST-0014",
		},
		{
			name:    "count error propagates",
			attempt: 0,
			setupMock: func() {
				mockCustomers.EXPECT().
					Count(gomock.Any(), gomock.Any()).
					Return(0, errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			got, err := allocator.CustomerID(context.Background(), tt.attempt)

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
