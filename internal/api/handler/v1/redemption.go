package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gea-verde/gea-api/internal/api/handler/v1/response"
	"github.com/gea-verde/gea-api/internal/domain"
	"github.com/gea-verde/gea-api/internal/service"
)

type RedemptionService interface {
	Redeem(ctx context.Context, userID, productID uint) (domain.Redemption, error)
	FindUserRedemptions(ctx context.Context, userID uint) ([]domain.Redemption, error)
	FindAllRedemptions(ctx context.Context) ([]domain.Redemption, error)
}

type RedemptionHandler struct {
	svc RedemptionService
}

func NewRedemptionHandler(svc RedemptionService) *RedemptionHandler {
	return &RedemptionHandler{
		svc: svc,
	}
}

// HandleRedeemProduct godoc
// @Summary      Redeem a product for green coins
// @Tags         redemptions
// @Produce      json
// @Param        productID   path    int  true "product ID"
// @Success      201      {object}   domain.Redemption
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      422      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /products/{productID}/redeem [post]
func (h *RedemptionHandler) HandleRedeemProduct(ctx *gin.Context) {
	productID, err := parseIDParam(ctx, "productID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	authID, err := getAuthUserID(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrUnauthorized(err))

		return
	}

	receipt, err := h.svc.Redeem(ctx.Request.Context(), authID, productID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProductNotFound):
			response.RenderErr(ctx, response.ErrNotFound("product", "ID", productID))
		case errors.Is(err, service.ErrProductInactive):
			response.RenderErr(ctx, response.ErrUnprocessable(service.ErrProductInactive))
		case errors.Is(err, service.ErrProductNotInWindow):
			response.RenderErr(ctx, response.ErrUnprocessable(service.ErrProductNotInWindow))
		case errors.Is(err, service.ErrInsufficientCoins):
			response.RenderErr(ctx, response.ErrUnprocessable(service.ErrInsufficientCoins))
		case errors.Is(err, service.ErrOutOfStock):
			response.RenderErr(ctx, response.ErrUnprocessable(service.ErrOutOfStock))
		case errors.Is(err, service.ErrConcurrencyConflict):
			response.RenderErr(ctx, response.ErrConflict(service.ErrConcurrencyConflict))
		default:
			err = fmt.Errorf("v1.HandleRedeemProduct -> h.svc.Redeem -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusCreated, receipt)
}

// HandleListUserRedemptions godoc
// @Summary      List a user's redemption receipts
// @Tags         redemptions
// @Produce      json
// @Param        userID   path       int  true "user ID"
// @Success      200      {array}    domain.Redemption
// @Failure      403      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /users/{userID}/redemptions [get]
func (h *RedemptionHandler) HandleListUserRedemptions(ctx *gin.Context) {
	userID, err := parseIDParam(ctx, "userID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	authID, err := getAuthUserID(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrUnauthorized(err))

		return
	}
	if authID != userID && !isAdmin(ctx) {
		response.RenderErr(ctx, response.ErrPermissionDenied())

		return
	}

	redemptions, err := h.svc.FindUserRedemptions(ctx.Request.Context(), userID)
	if err != nil {
		err = fmt.Errorf("v1.HandleListUserRedemptions -> h.svc.FindUserRedemptions -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, redemptions)
}

// HandleListRedemptions godoc
// @Summary      List all redemption receipts (admin)
// @Tags         redemptions
// @Produce      json
// @Success      200      {array}    domain.Redemption
// @Failure      403      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /redemptions [get]
func (h *RedemptionHandler) HandleListRedemptions(ctx *gin.Context) {
	if !isAdmin(ctx) {
		response.RenderErr(ctx, response.ErrPermissionDenied())

		return
	}

	redemptions, err := h.svc.FindAllRedemptions(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListRedemptions -> h.svc.FindAllRedemptions -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, redemptions)
}
