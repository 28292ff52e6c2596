package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

// IntegrationRecordRequest is what the n8n receipt pipeline posts after
// parsing an invoice. The record arrives pre-approved; the pipeline is
// trusted to have verified the receipt.
type IntegrationRecordRequest struct {
	UserID        uint    `json:"user_id"`
	Fecha         string  `json:"fecha" format:"YYYY-MM-DD"`
	Monto         float64 `json:"monto"`
	Descripcion   string  `json:"descripcion"`
	Rubro         string  `json:"rubro"`
	CUIT          string  `json:"cuit"`
	IsSustainable bool    `json:"is_sustainable"`
}

func (req *IntegrationRecordRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.UserID, validation.Required, validation.Min(uint(1))),
		validation.Field(&req.Fecha, validation.Required, validation.Date("2006-01-02")),
		validation.Field(&req.Monto, validation.Required, validation.Min(0.01)),
		validation.Field(&req.Descripcion, validation.Length(0, 200)),
		validation.Field(&req.Rubro, validation.Length(0, 50)),
		validation.Field(&req.CUIT, validation.Length(0, 13)),
	)
}
