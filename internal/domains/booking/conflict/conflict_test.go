package conflict_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"fleetrent/infras/otel/mocks"
	"fleetrent/internal/domains/booking/conflict"
	bookingMocks "fleetrent/internal/domains/booking/mocks"
	"fleetrent/internal/domains/booking/model"
	"fleetrent/shared/interval"
	"fleetrent/shared/timezone"
)

func day(value string) time.Time {
	parsed, err := time.ParseInLocation("2006-01-02", value, timezone.GetLocation())
	if err != nil {
		panic(err)
	}

	return parsed
}

func booking(id string, start, end string) model.Booking {
	return model.Booking{
		ID:        id,
		CarID:     "car-1",
		StartDate: day(start),
		EndDate:   day(end),
		Status:    model.StatusPending,
	}
}

func TestDetector_HasConflict(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := bookingMocks.NewMockBooking(ctrl)
	mockOtel := mocks.NewOtel()

	detector := conflict.New(mockRepo, mockOtel)

	requested, err := interval.Parse("2025-03-10", "2025-03-12")
	require.NoError(t, err)

	tests := []struct {
		name      string
		setupMock func()
		want      bool
		wantErr   bool
	}{
		{
			name: "no occupying bookings",
			setupMock: func() {
				mockRepo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]model.Booking{}, nil)
			},
			want: false,
		},
		{
			name: "fetch error propagates instead of reporting no conflict",
			setupMock: func() {
				mockRepo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, errors.New("database error"))
			},
			wantErr: true,
		},
		{
			name: "disjoint booking",
			setupMock: func() {
				mockRepo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]model.Booking{booking("RNT-20250301-001", "2025-03-01", "2025-03-05")}, nil)
			},
			want: false,
		},
		{
			name: "shared boundary day conflicts",
			setupMock: func() {
				mockRepo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]model.Booking{booking("RNT-20250305-001", "2025-03-05", "2025-03-10")}, nil)
			},
			want: true,
		},
		{
			name: "containing booking conflicts",
			setupMock: func() {
				mockRepo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]model.Booking{booking("RNT-20250301-001", "2025-03-01", "2025-03-20")}, nil)
			},
			want: true,
		},
		{
			name: "first overlap wins among several bookings",
			setupMock: func() {
				mockRepo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]model.Booking{
						booking("RNT-20250301-001", "2025-03-01", "2025-03-03"),
						booking("RNT-20250311-001", "2025-03-11", "2025-03-15"),
					}, nil)
			},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			got, err := detector.HasConflict(context.Background(), "car-1", requested, "")

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
