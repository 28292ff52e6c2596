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
	"github.com/gea-verde/gea-api/internal/pkg/greencoins"
	"github.com/gea-verde/gea-api/internal/service"
)

type GamificationService interface {
	ListLevels(ctx context.Context) ([]greencoins.Level, error)
	CreateLevel(ctx context.Context, level greencoins.Level) (greencoins.Level, error)
	UpdateLevel(ctx context.Context, level greencoins.Level) (greencoins.Level, error)
	DeleteLevel(ctx context.Context, levelNumber int) error
}

type GamificationUserService interface {
	GetUser(ctx context.Context, id uint) (domain.User, error)
}

type GamificationHandler struct {
	svc     GamificationService
	userSvc GamificationUserService
	table   greencoins.Table
}

func NewGamificationHandler(svc GamificationService, userSvc GamificationUserService, table greencoins.Table) *GamificationHandler {
	return &GamificationHandler{
		svc:     svc,
		userSvc: userSvc,
		table:   table,
	}
}

// HandleGetMyGamification godoc
// @Summary      Get the caller's progression and the level ladder
// @Tags         gamification
// @Produce      json
// @Success      200      {object}   response.MyGamificationResponse
// @Failure      401      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /gamification/me [get]
func (h *GamificationHandler) HandleGetMyGamification(ctx *gin.Context) {
	userID, err := getAuthUserID(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrUnauthorized(err))

		return
	}

	user, err := h.userSvc.GetUser(ctx.Request.Context(), userID)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetMyGamification -> h.userSvc.GetUser -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.MyGamificationResponse{
		GreenCoins:   user.GreenCoins,
		Gamification: user.Gamification,
		Levels:       h.table.Levels(),
	})
}

// HandleListLevels godoc
// @Summary      List the gamification levels
// @Tags         gamification
// @Produce      json
// @Success      200      {array}    greencoins.Level
// @Failure      500      {object}   response.Err
// @Router       /gamification/levels [get]
func (h *GamificationHandler) HandleListLevels(ctx *gin.Context) {
	levels, err := h.svc.ListLevels(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListLevels -> h.svc.ListLevels -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, levels)
}

// HandleCreateLevel godoc
// @Summary      Add a gamification level (admin)
// @Tags         gamification
// @Produce      json
// @Param        request   body      request.LevelRequest true "request body"
// @Success      201      {object}   greencoins.Level
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /gamification/levels [post]
func (h *GamificationHandler) HandleCreateLevel(ctx *gin.Context) {
	if !isAdmin(ctx) {
		response.RenderErr(ctx, response.ErrPermissionDenied())

		return
	}

	var req request.LevelRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	level, err := h.svc.CreateLevel(ctx.Request.Context(), greencoins.Level{
		Level:     req.Level,
		Title:     req.Title,
		MinPoints: req.MinPoints,
		Icon:      req.Icon,
		Color:     req.Color,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidLevel) {
			response.RenderErr(ctx, response.ErrBadRequest(err))

			return
		}

		err = fmt.Errorf("v1.HandleCreateLevel -> h.svc.CreateLevel -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusCreated, level)
}

// HandleUpdateLevel godoc
// @Summary      Update a gamification level (admin)
// @Tags         gamification
// @Produce      json
// @Param        level   path        int  true "level number"
// @Param        request   body      request.LevelRequest true "request body"
// @Success      200      {object}   greencoins.Level
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /gamification/levels/{level} [put]
func (h *GamificationHandler) HandleUpdateLevel(ctx *gin.Context) {
	if !isAdmin(ctx) {
		response.RenderErr(ctx, response.ErrPermissionDenied())

		return
	}

	levelNumber, err := parseIDParam(ctx, "level")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	var req request.LevelRequest
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	level, err := h.svc.UpdateLevel(ctx.Request.Context(), greencoins.Level{
		Level:     int(levelNumber),
		Title:     req.Title,
		MinPoints: req.MinPoints,
		Icon:      req.Icon,
		Color:     req.Color,
	})
	if err != nil {
		if errors.Is(err, service.ErrLevelNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("level", "number", levelNumber))

			return
		}
		if errors.Is(err, service.ErrInvalidLevel) {
			response.RenderErr(ctx, response.ErrBadRequest(err))

			return
		}

		err = fmt.Errorf("v1.HandleUpdateLevel -> h.svc.UpdateLevel -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, level)
}

// HandleDeleteLevel godoc
// @Summary      Delete a gamification level (admin)
// @Tags         gamification
// @Produce      json
// @Param        level   path        int  true "level number"
// @Success      204
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /gamification/levels/{level} [delete]
func (h *GamificationHandler) HandleDeleteLevel(ctx *gin.Context) {
	if !isAdmin(ctx) {
		response.RenderErr(ctx, response.ErrPermissionDenied())

		return
	}

	levelNumber, err := parseIDParam(ctx, "level")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = h.svc.DeleteLevel(ctx.Request.Context(), int(levelNumber)); err != nil {
		if errors.Is(err, service.ErrLevelNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("level", "number", levelNumber))

			return
		}
		if errors.Is(err, service.ErrInvalidLevel) {
			response.RenderErr(ctx, response.ErrBadRequest(err))

			return
		}

		err = fmt.Errorf("v1.HandleDeleteLevel -> h.svc.DeleteLevel -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.Status(http.StatusNoContent)
}
