package dto

import (
	"fleetrent/internal/domains/booking/model"
	"fleetrent/shared"
	"fleetrent/shared/constant"
	gDto "fleetrent/shared/dto"
	"fleetrent/shared/interval"
	gModel "fleetrent/shared/model"
	"fleetrent/shared/timezone"
)

type CreateBookingRequest struct {
	CarID         string  `json:"car_id"         validate:"required"`
	CustomerID    string  `json:"customer_id"    validate:"required"`
	StartDate     string  `json:"start_date"     validate:"required"`
	EndDate       string  `json:"end_date"       validate:"required"`
	TotalAmount   float64 `json:"total_amount"   validate:"omitempty,min=0"`
	AdvanceAmount float64 `json:"advance_amount" validate:"omitempty,min=0"`
	PaymentMode   string  `json:"payment_mode"   validate:"omitempty,oneof=cash card upi transfer"`
	Status        string  `json:"status"         validate:"omitempty,oneof=pending active"`
	Notes         string  `json:"notes"          validate:"omitempty"`
}

// Interval parses and validates the requested rental period.
func (c *CreateBookingRequest) Interval() (interval.Interval, error) {
	return interval.Parse(c.StartDate, c.EndDate)
}

// ToModel builds a booking around an allocator-assigned identifier and an
// already validated interval.
func (c *CreateBookingRequest) ToModel(id, user string, iv interval.Interval) model.Booking {
	status := model.StatusPending
	if c.Status != "" {
		status = c.Status
	}

	return model.Booking{
		ID:            id,
		CarID:         c.CarID,
		CustomerID:    c.CustomerID,
		StartDate:     iv.Start,
		EndDate:       iv.End,
		TotalAmount:   c.TotalAmount,
		AdvanceAmount: c.AdvanceAmount,
		PaymentMode:   c.PaymentMode,
		Status:        status,
		Notes:         c.Notes,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

// UpdateBookingRequest edits reservation attributes. Date and status fields
// carry no db tag: the service resolves them against the stored booking
// before they reach the update statement.
type UpdateBookingRequest struct {
	CarID         string  `db:"car_id"         json:"car_id"         validate:"omitempty"`
	StartDate     string  `json:"start_date"    validate:"omitempty"`
	EndDate       string  `json:"end_date"      validate:"omitempty"`
	TotalAmount   float64 `db:"total_amount"   json:"total_amount"   validate:"omitempty,min=0"`
	AdvanceAmount float64 `db:"advance_amount" json:"advance_amount" validate:"omitempty,min=0"`
	PaymentMode   string  `db:"payment_mode"   json:"payment_mode"   validate:"omitempty,oneof=cash card upi transfer"`
	Status        string  `json:"status"        validate:"omitempty,oneof=pending active returned cancelled"`
	Notes         string  `db:"notes"          json:"notes"          validate:"omitempty"`
}

type AvailabilityRequest struct {
	CarID     string `json:"car_id"     validate:"required"`
	StartDate string `json:"start_date" validate:"required"`
	EndDate   string `json:"end_date"   validate:"required"`
}

type AvailabilityResponse struct {
	CarID     string `json:"car_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Available bool   `json:"available"`
}

type BookingResponse struct {
	ID            string  `json:"id"`
	CarID         string  `json:"car_id"`
	CustomerID    string  `json:"customer_id"`
	StartDate     string  `json:"start_date"`
	EndDate       string  `json:"end_date"`
	Duration      int     `json:"duration_days"`
	TotalAmount   float64 `json:"total_amount"`
	AdvanceAmount float64 `json:"advance_amount"`
	PaymentMode   string  `json:"payment_mode"`
	Status        string  `json:"status"`
	Notes         string  `json:"notes"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(mod model.Booking) {
	r.ID = mod.ID
	r.CarID = mod.CarID
	r.CustomerID = mod.CustomerID
	r.StartDate = mod.StartDate.Format(constant.RentalDateFormat)
	r.EndDate = mod.EndDate.Format(constant.RentalDateFormat)
	r.TotalAmount = mod.TotalAmount
	r.AdvanceAmount = mod.AdvanceAmount
	r.PaymentMode = mod.PaymentMode
	r.Status = mod.Status
	r.Notes = mod.Notes
	r.Metadata.FromModel(mod.Metadata)

	if iv, err := mod.Interval(); err == nil {
		r.Duration = iv.Days()
	}
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}
