package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type CreateProductRequest struct {
	Name          string `json:"name"`
	Description   string `json:"description"`
	Rubro         string `json:"rubro"`
	CoinsRequired int    `json:"coins_required"`
	Stock         int    `json:"stock"`
	Status        string `json:"status"`
	ValidFrom     string `json:"valid_from" format:"YYYY-MM-DD"`
	ValidTo       string `json:"valid_to" format:"YYYY-MM-DD"`
}

func (req *CreateProductRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(2, 100)),
		validation.Field(&req.Description, validation.Length(0, 500)),
		validation.Field(&req.Rubro, validation.Length(0, 50)),
		validation.Field(&req.CoinsRequired, validation.Required, validation.Min(1)),
		validation.Field(&req.Stock, validation.Min(0)),
		validation.Field(&req.Status, validation.In("active", "inactive")),
	)
}

type UpdateProductRequest struct {
	Name          string `json:"name"`
	Description   string `json:"description"`
	Rubro         string `json:"rubro"`
	CoinsRequired int    `json:"coins_required"`
	Stock         int    `json:"stock"`
	Status        string `json:"status"`
	ValidFrom     string `json:"valid_from" format:"YYYY-MM-DD"`
	ValidTo       string `json:"valid_to" format:"YYYY-MM-DD"`
}

func (req *UpdateProductRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(2, 100)),
		validation.Field(&req.Description, validation.Length(0, 500)),
		validation.Field(&req.Rubro, validation.Length(0, 50)),
		validation.Field(&req.CoinsRequired, validation.Required, validation.Min(1)),
		validation.Field(&req.Stock, validation.Min(0)),
		validation.Field(&req.Status, validation.Required, validation.In("active", "inactive")),
	)
}
