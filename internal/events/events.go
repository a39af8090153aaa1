// Package events publishes domain events to Kafka after state changes
// commit. Publishing is fire and forget: a broker failure is logged and
// never rolls back or delays the originating request.
package events

//go:generate go run go.uber.org/mock/mockgen -source=./events.go -destination=./mocks/events_mock.go -package=mocks

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"fleetrent/config"
	"fleetrent/infras/kafka"
	"fleetrent/infras/otel"
	"fleetrent/internal/domains/booking/model"
	"fleetrent/shared/constant"
	"fleetrent/shared/timezone"
)

const (
	KeyBookingCreated   = "booking.created"
	KeyBookingCancelled = "booking.cancelled"
	KeyBookingReturned  = "booking.returned"
	KeyReconcileDone    = "sync.reconciled"
)

type BookingEvent struct {
	BookingID  string    `json:"booking_id"`
	CarID      string    `json:"car_id"`
	CustomerID string    `json:"customer_id"`
	Status     string    `json:"status"`
	StartDate  string    `json:"start_date"`
	EndDate    string    `json:"end_date"`
	OccurredAt time.Time `json:"occurred_at"`
}

type ReconcileSummary struct {
	Total      int       `json:"total"`
	Applied    int       `json:"applied"`
	Skipped    int       `json:"skipped"`
	Failed     int       `json:"failed"`
	OccurredAt time.Time `json:"occurred_at"`
}

type Publisher interface {
	BookingCreated(ctx context.Context, booking model.Booking)
	BookingCancelled(ctx context.Context, booking model.Booking)
	BookingReturned(ctx context.Context, booking model.Booking)
	ReconcileCompleted(ctx context.Context, summary ReconcileSummary)
}

type publisherImpl struct {
	client kafka.Client
	cfg    *config.Config
	otel   otel.Otel
}

func New(client kafka.Client, cfg *config.Config, otel otel.Otel) Publisher {
	return &publisherImpl{
		client: client,
		cfg:    cfg,
		otel:   otel,
	}
}

func (p *publisherImpl) BookingCreated(ctx context.Context, booking model.Booking) {
	p.publishBooking(ctx, KeyBookingCreated, booking)
}

func (p *publisherImpl) BookingCancelled(ctx context.Context, booking model.Booking) {
	p.publishBooking(ctx, KeyBookingCancelled, booking)
}

func (p *publisherImpl) BookingReturned(ctx context.Context, booking model.Booking) {
	p.publishBooking(ctx, KeyBookingReturned, booking)
}

func (p *publisherImpl) ReconcileCompleted(ctx context.Context, summary ReconcileSummary) {
	ctx, scope := p.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".ReconcileCompleted")
	defer scope.End()

	if summary.OccurredAt.IsZero() {
		summary.OccurredAt = timezone.Now()
	}

	err := p.client.SendMessages(ctx, p.cfg.Kafka.SyncTopic, kafka.Message{
		Key:   KeyReconcileDone,
		Value: summary,
	})
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to publish reconcile summary")
	}
}

func (p *publisherImpl) publishBooking(ctx context.Context, key string, booking model.Booking) {
	ctx, scope := p.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".publishBooking")
	defer scope.End()

	event := BookingEvent{
		BookingID:  booking.ID,
		CarID:      booking.CarID,
		CustomerID: booking.CustomerID,
		Status:     booking.Status,
		StartDate:  booking.StartDate.Format(constant.RentalDateFormat),
		EndDate:    booking.EndDate.Format(constant.RentalDateFormat),
		OccurredAt: timezone.Now(),
	}

	err := p.client.SendMessages(ctx, p.cfg.Kafka.BookingTopic, kafka.Message{
		Key:   key,
		Value: event,
	})
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("key", key).Str("bookingID", booking.ID).Msg("failed to publish booking event")
	}
}
