package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gea-verde/gea-api/internal/api/handler/v1/request"
	"github.com/gea-verde/gea-api/internal/api/handler/v1/response"
	"github.com/gea-verde/gea-api/internal/domain"
	"github.com/gea-verde/gea-api/internal/service"
)

type ChatService interface {
	Ask(ctx context.Context, userID uint, history []domain.ChatMessage, question string) (string, error)
}

type ChatHandler struct {
	svc ChatService
}

func NewChatHandler(svc ChatService) *ChatHandler {
	return &ChatHandler{
		svc: svc,
	}
}

// HandleChat godoc
// @Summary      Ask the Eco-Guía assistant
// @Tags         chat
// @Produce      json
// @Param        request   body      request.ChatRequest true "request body"
// @Success      200      {object}   map[string]string
// @Failure      400      {object}   response.Err
// @Failure      503      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /chat [post]
func (h *ChatHandler) HandleChat(ctx *gin.Context) {
	authID, err := getAuthUserID(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrUnauthorized(err))

		return
	}

	var req request.ChatRequest
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	history := make([]domain.ChatMessage, len(req.History))
	for i, msg := range req.History {
		history[i] = domain.ChatMessage{
			Sender: msg.Sender,
			Text:   msg.Text,
		}
	}

	reply, err := h.svc.Ask(ctx.Request.Context(), authID, history, req.Message)
	if err != nil {
		if errors.Is(err, service.ErrChatUnavailable) {
			response.RenderErr(ctx, response.ErrServiceUnavailable(service.ErrChatUnavailable))

			return
		}

		err = fmt.Errorf("v1.HandleChat -> h.svc.Ask -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, gin.H{"reply": reply})
}
