package model

import (
	"fleetrent/shared/model"
)

const (
	TableName  = "customers"
	EntityName = "customer"

	FieldID            = "id"
	FieldName          = "name"
	FieldPhone         = "phone"
	FieldEmail         = "email"
	FieldAddress       = "address"
	FieldLicenseNumber = "license_number"
	FieldDocumentURL   = "document_url"
	FieldPhotoURL      = "photo_url"
)

// Customer carries an allocator-assigned identifier (CUST-NNNN) as its
// primary key, so a duplicate insert surfaces as a unique violation.
type Customer struct {
	ID            string `db:"id"`
	Name          string `db:"name"`
	Phone         string `db:"phone"`
	Email         string `db:"email"`
	Address       string `db:"address"`
	LicenseNumber string `db:"license_number"`
	DocumentURL   string `db:"document_url"`
	PhotoURL      string `db:"photo_url"`
	model.Metadata
}
