package dto

import (
	"fleetrent/internal/domains/car/model"
	"fleetrent/shared"
	gDto "fleetrent/shared/dto"
	gModel "fleetrent/shared/model"
	"fleetrent/shared/timezone"

	"github.com/google/uuid"
)

type CreateCarRequest struct {
	Make         string `json:"make"          validate:"required,max=100"`
	Model        string `json:"model"         validate:"required,max=100"`
	Year         int    `json:"year"          validate:"required,min=1950,max=2100"`
	FuelType     string `json:"fuel_type"     validate:"omitempty,oneof=petrol diesel electric hybrid"`
	Transmission string `json:"transmission"  validate:"omitempty,oneof=manual automatic"`
	PlateNumber  string `json:"plate_number"  validate:"required,max=20"`
	Status       string `json:"status"        validate:"omitempty,oneof=available rented maintenance"`
}

func (c *CreateCarRequest) ToModel(user string) model.Car {
	status := model.StatusAvailable
	if c.Status != "" {
		status = c.Status
	}

	return model.Car{
		ID:           uuid.NewString(),
		Make:         c.Make,
		Model:        c.Model,
		Year:         c.Year,
		FuelType:     c.FuelType,
		Transmission: c.Transmission,
		PlateNumber:  c.PlateNumber,
		Status:       status,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateCarRequest struct {
	Make         string `db:"make"          json:"make"          validate:"omitempty,max=100"`
	Model        string `db:"model"         json:"model"         validate:"omitempty,max=100"`
	Year         int    `db:"year"          json:"year"          validate:"omitempty,min=1950,max=2100"`
	FuelType     string `db:"fuel_type"     json:"fuel_type"     validate:"omitempty,oneof=petrol diesel electric hybrid"`
	Transmission string `db:"transmission"  json:"transmission"  validate:"omitempty,oneof=manual automatic"`
	PlateNumber  string `db:"plate_number"  json:"plate_number"  validate:"omitempty,max=20"`
	Status       string `db:"status"        json:"status"        validate:"omitempty,oneof=available rented maintenance"`
}

type CarResponse struct {
	ID           string `json:"id"`
	Make         string `json:"make"`
	Model        string `json:"model"`
	Year         int    `json:"year"`
	FuelType     string `json:"fuel_type"`
	Transmission string `json:"transmission"`
	PlateNumber  string `json:"plate_number"`
	Status       string `json:"status"`
	PhotoURL     string `json:"photo_url"`
	gDto.Metadata
}

func (r *CarResponse) FromModel(model model.Car) {
	r.ID = model.ID
	r.Make = model.Make
	r.Model = model.Model
	r.Year = model.Year
	r.FuelType = model.FuelType
	r.Transmission = model.Transmission
	r.PlateNumber = model.PlateNumber
	r.Status = model.Status
	r.PhotoURL = model.PhotoURL
	r.Metadata.FromModel(model.Metadata)
}

type GetCarsResponse struct {
	Cars      []CarResponse `json:"cars"`
	TotalPage int           `json:"total_page"`
	TotalData int           `json:"total_data"`
}

func (r *GetCarsResponse) FromModels(models []model.Car, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Cars = make([]CarResponse, len(models))
	for i, mod := range models {
		r.Cars[i].FromModel(mod)
	}
}
