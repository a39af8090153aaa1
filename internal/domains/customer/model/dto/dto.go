package dto

import (
	"fleetrent/internal/domains/customer/model"
	"fleetrent/shared"
	gDto "fleetrent/shared/dto"
	gModel "fleetrent/shared/model"
	"fleetrent/shared/timezone"
)

type CreateCustomerRequest struct {
	Name          string `json:"name"           validate:"required,max=100"`
	Phone         string `json:"phone"          validate:"required,max=20"`
	Email         string `json:"email"          validate:"omitempty,email,max=100"`
	Address       string `json:"address"        validate:"omitempty,max=255"`
	LicenseNumber string `json:"license_number" validate:"omitempty,max=50"`
}

// ToModel builds a customer around an allocator-assigned identifier.
func (c *CreateCustomerRequest) ToModel(id, user string) model.Customer {
	return model.Customer{
		ID:            id,
		Name:          c.Name,
		Phone:         c.Phone,
		Email:         c.Email,
		Address:       c.Address,
		LicenseNumber: c.LicenseNumber,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateCustomerRequest struct {
	Name          string `db:"name"           json:"name"           validate:"omitempty,max=100"`
	Phone         string `db:"phone"          json:"phone"          validate:"omitempty,max=20"`
	Email         string `db:"email"          json:"email"          validate:"omitempty,email,max=100"`
	Address       string `db:"address"        json:"address"        validate:"omitempty,max=255"`
	LicenseNumber string `db:"license_number" json:"license_number" validate:"omitempty,max=50"`
}

type CustomerResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	Address       string `json:"address"`
	LicenseNumber string `json:"license_number"`
	DocumentURL   string `json:"document_url"`
	PhotoURL      string `json:"photo_url"`
	gDto.Metadata
}

func (r *CustomerResponse) FromModel(model model.Customer) {
	r.ID = model.ID
	r.Name = model.Name
	r.Phone = model.Phone
	r.Email = model.Email
	r.Address = model.Address
	r.LicenseNumber = model.LicenseNumber
	r.DocumentURL = model.DocumentURL
	r.PhotoURL = model.PhotoURL
	r.Metadata.FromModel(model.Metadata)
}

type GetCustomersResponse struct {
	Customers []CustomerResponse `json:"customers"`
	TotalPage int                `json:"total_page"`
	TotalData int                `json:"total_data"`
}

func (r *GetCustomersResponse) FromModels(models []model.Customer, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Customers = make([]CustomerResponse, len(models))
	for i, mod := range models {
		r.Customers[i].FromModel(mod)
	}
}
