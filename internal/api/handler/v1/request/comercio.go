package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type CreateComercioRequest struct {
	Name          string   `json:"name"`
	Address       string   `json:"address"`
	Phone         string   `json:"phone"`
	Description   string   `json:"description"`
	Tags          []string `json:"tags"`
	Rubro         string   `json:"rubro"`
	Lat           float64  `json:"lat"`
	Lng           float64  `json:"lng"`
	IsSustainable bool     `json:"is_sustainable"`
	CUIT          string   `json:"cuit"`
}

func (req *CreateComercioRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(2, 100)),
		validation.Field(&req.Address, validation.Length(0, 200)),
		validation.Field(&req.Phone, validation.Length(0, 30)),
		validation.Field(&req.Description, validation.Length(0, 500)),
		validation.Field(&req.Rubro, validation.Length(0, 50)),
		validation.Field(&req.Lat, validation.Min(-90.0), validation.Max(90.0)),
		validation.Field(&req.Lng, validation.Min(-180.0), validation.Max(180.0)),
		validation.Field(&req.CUIT, validation.Length(0, 13)),
	)
}

type UpdateComercioRequest struct {
	Name          string   `json:"name"`
	Address       string   `json:"address"`
	Phone         string   `json:"phone"`
	Description   string   `json:"description"`
	Tags          []string `json:"tags"`
	Rubro         string   `json:"rubro"`
	Lat           float64  `json:"lat"`
	Lng           float64  `json:"lng"`
	IsSustainable bool     `json:"is_sustainable"`
	CUIT          string   `json:"cuit"`
}

func (req *UpdateComercioRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(2, 100)),
		validation.Field(&req.Address, validation.Length(0, 200)),
		validation.Field(&req.Phone, validation.Length(0, 30)),
		validation.Field(&req.Description, validation.Length(0, 500)),
		validation.Field(&req.Rubro, validation.Length(0, 50)),
		validation.Field(&req.Lat, validation.Min(-90.0), validation.Max(90.0)),
		validation.Field(&req.Lng, validation.Min(-180.0), validation.Max(180.0)),
		validation.Field(&req.CUIT, validation.Length(0, 13)),
	)
}
