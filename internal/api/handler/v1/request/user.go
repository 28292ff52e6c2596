package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

type CreateUserRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
	IsAdmin     bool   `json:"is_admin"`
	Nombre      string `json:"nombre"`
	Apellido    string `json:"apellido"`
	Telefono    string `json:"telefono"`
	Direccion   string `json:"direccion"`
	Documento   string `json:"documento"`
}

func (req *CreateUserRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Email, validation.Required, is.Email),
		validation.Field(&req.Password, validation.Required, validation.Length(8, 72)),
		validation.Field(&req.DisplayName, validation.Length(0, 100)),
		validation.Field(&req.Nombre, validation.Required, validation.Length(1, 50)),
		validation.Field(&req.Apellido, validation.Required, validation.Length(1, 50)),
		validation.Field(&req.Telefono, validation.Length(0, 30)),
		validation.Field(&req.Direccion, validation.Length(0, 200)),
		validation.Field(&req.Documento, validation.Length(0, 20)),
	)
}

type UpdateUserStatusRequest struct {
	Status string `json:"status"`
}

func (req *UpdateUserStatusRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Status, validation.Required, validation.In("active", "inactive")),
	)
}
