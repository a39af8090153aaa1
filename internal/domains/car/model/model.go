package model

import (
	"fleetrent/shared/model"
)

const (
	TableName  = "cars"
	EntityName = "car"

	FieldID           = "id"
	FieldMake         = "make"
	FieldModel        = "model"
	FieldYear         = "year"
	FieldFuelType     = "fuel_type"
	FieldTransmission = "transmission"
	FieldPlateNumber  = "plate_number"
	FieldStatus       = "status"
	FieldPhotoURL     = "photo_url"
)

const (
	StatusAvailable   = "available"
	StatusRented      = "rented"
	StatusMaintenance = "maintenance"
)

type Car struct {
	ID           string `db:"id"`
	Make         string `db:"make"`
	Model        string `db:"model"`
	Year         int    `db:"year"`
	FuelType     string `db:"fuel_type"`
	Transmission string `db:"transmission"`
	PlateNumber  string `db:"plate_number"`
	Status       string `db:"status"`
	PhotoURL     string `db:"photo_url"`
	model.Metadata
}
