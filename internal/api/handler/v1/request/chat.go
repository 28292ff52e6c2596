package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type ChatMessage struct {
	Sender string `json:"sender"`
	Text   string `json:"text"`
}

type ChatRequest struct {
	Message string        `json:"message"`
	History []ChatMessage `json:"history"`
}

func (req *ChatRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Message, validation.Required, validation.Length(1, 2000)),
		validation.Field(&req.History, validation.Length(0, 50)),
	)
}
