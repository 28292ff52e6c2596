package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type LevelRequest struct {
	Level     int    `json:"level"`
	Title     string `json:"title"`
	MinPoints int    `json:"minPoints"`
	Icon      string `json:"icon"`
	Color     string `json:"color"`
}

func (req *LevelRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Level, validation.Required, validation.Min(1)),
		validation.Field(&req.Title, validation.Required, validation.Length(2, 100)),
		validation.Field(&req.MinPoints, validation.Min(0)),
		validation.Field(&req.Icon, validation.Length(0, 50)),
		validation.Field(&req.Color, validation.Length(0, 50)),
	)
}
