package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type CreateRecordRequest struct {
	Fecha         string  `json:"fecha" format:"YYYY-MM-DD"`
	Monto         float64 `json:"monto"`
	Descripcion   string  `json:"descripcion"`
	Rubro         string  `json:"rubro"`
	CUIT          string  `json:"cuit"`
	ComercioID    *uint   `json:"comercio_id"`
	IsSustainable bool    `json:"is_sustainable"`
}

func (req *CreateRecordRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Fecha, validation.Required, validation.Date("2006-01-02")),
		validation.Field(&req.Monto, validation.Required, validation.Min(0.01)),
		validation.Field(&req.Descripcion, validation.Length(0, 200)),
		validation.Field(&req.Rubro, validation.Length(0, 50)),
		validation.Field(&req.CUIT, validation.Length(0, 13)),
	)
}

type UpdateRecordRequest struct {
	Fecha         string  `json:"fecha" format:"YYYY-MM-DD"`
	Monto         float64 `json:"monto"`
	Descripcion   string  `json:"descripcion"`
	Rubro         string  `json:"rubro"`
	CUIT          string  `json:"cuit"`
	ComercioID    *uint   `json:"comercio_id"`
	IsSustainable bool    `json:"is_sustainable"`
}

func (req *UpdateRecordRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Fecha, validation.Required, validation.Date("2006-01-02")),
		validation.Field(&req.Monto, validation.Required, validation.Min(0.01)),
		validation.Field(&req.Descripcion, validation.Length(0, 200)),
		validation.Field(&req.Rubro, validation.Length(0, 50)),
		validation.Field(&req.CUIT, validation.Length(0, 13)),
	)
}

type UpdateRecordStatusRequest struct {
	Status string `json:"status"`
}

func (req *UpdateRecordStatusRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Status, validation.Required, validation.In("pending", "approved", "rejected")),
	)
}
