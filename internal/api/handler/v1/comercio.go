package v1

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gea-verde/gea-api/internal/api/handler/v1/request"
	"github.com/gea-verde/gea-api/internal/api/handler/v1/response"
	"github.com/gea-verde/gea-api/internal/domain"
	"github.com/gea-verde/gea-api/internal/service"
)

type ComercioService interface {
	CreateComercio(ctx context.Context, comercio domain.Comercio) (domain.Comercio, error)
	GetComercio(ctx context.Context, id uint) (domain.Comercio, error)
	FindAllComercios(ctx context.Context) ([]domain.Comercio, error)
	UpdateComercio(ctx context.Context, comercio domain.Comercio) (domain.Comercio, error)
	DeleteComercio(ctx context.Context, id uint) error
	UploadComercioImage(ctx context.Context, comercioID uint, file multipart.File, header *multipart.FileHeader) (domain.Comercio, error)
}

type ComercioHandler struct {
	svc ComercioService
}

func NewComercioHandler(svc ComercioService) *ComercioHandler {
	return &ComercioHandler{
		svc: svc,
	}
}

// HandleListComercios godoc
// @Summary      List registered businesses
// @Tags         comercios
// @Produce      json
// @Success      200      {array}    domain.Comercio
// @Failure      500      {object}   response.Err
// @Router       /comercios [get]
func (h *ComercioHandler) HandleListComercios(ctx *gin.Context) {
	comercios, err := h.svc.FindAllComercios(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListComercios -> h.svc.FindAllComercios -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, comercios)
}

// HandleGetComercio godoc
// @Summary      Get a business by ID
// @Tags         comercios
// @Produce      json
// @Param        comercioID   path   int  true "comercio ID"
// @Success      200      {object}   domain.Comercio
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /comercios/{comercioID} [get]
func (h *ComercioHandler) HandleGetComercio(ctx *gin.Context) {
	comercioID, err := parseIDParam(ctx, "comercioID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	comercio, err := h.svc.GetComercio(ctx.Request.Context(), comercioID)
	if err != nil {
		if errors.Is(err, service.ErrComercioNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("comercio", "ID", comercioID))

			return
		}

		err = fmt.Errorf("v1.HandleGetComercio -> h.svc.GetComercio -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, comercio)
}

// HandleCreateComercio godoc
// @Summary      Register a business (admin)
// @Tags         comercios
// @Produce      json
// @Param        request   body      request.CreateComercioRequest true "request body"
// @Success      201      {object}   domain.Comercio
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /comercios [post]
func (h *ComercioHandler) HandleCreateComercio(ctx *gin.Context) {
	if !isAdmin(ctx) {
		response.RenderErr(ctx, response.ErrPermissionDenied())

		return
	}

	var req request.CreateComercioRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	comercio, err := h.svc.CreateComercio(ctx.Request.Context(), domain.Comercio{
		Name:          req.Name,
		Address:       req.Address,
		Phone:         req.Phone,
		Description:   req.Description,
		Tags:          req.Tags,
		Rubro:         req.Rubro,
		Lat:           req.Lat,
		Lng:           req.Lng,
		IsSustainable: req.IsSustainable,
		CUIT:          req.CUIT,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidCUIT) {
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrInvalidCUIT))

			return
		}

		err = fmt.Errorf("v1.HandleCreateComercio -> h.svc.CreateComercio -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusCreated, comercio)
}

// HandleUpdateComercio godoc
// @Summary      Update a business (admin)
// @Tags         comercios
// @Produce      json
// @Param        comercioID   path   int  true "comercio ID"
// @Param        request   body      request.UpdateComercioRequest true "request body"
// @Success      200      {object}   domain.Comercio
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /comercios/{comercioID} [put]
func (h *ComercioHandler) HandleUpdateComercio(ctx *gin.Context) {
	if !isAdmin(ctx) {
		response.RenderErr(ctx, response.ErrPermissionDenied())

		return
	}

	comercioID, err := parseIDParam(ctx, "comercioID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	var req request.UpdateComercioRequest
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	comercio, err := h.svc.UpdateComercio(ctx.Request.Context(), domain.Comercio{
		ID:            comercioID,
		Name:          req.Name,
		Address:       req.Address,
		Phone:         req.Phone,
		Description:   req.Description,
		Tags:          req.Tags,
		Rubro:         req.Rubro,
		Lat:           req.Lat,
		Lng:           req.Lng,
		IsSustainable: req.IsSustainable,
		CUIT:          req.CUIT,
	})
	if err != nil {
		if errors.Is(err, service.ErrComercioNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("comercio", "ID", comercioID))

			return
		}
		if errors.Is(err, service.ErrInvalidCUIT) {
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrInvalidCUIT))

			return
		}

		err = fmt.Errorf("v1.HandleUpdateComercio -> h.svc.UpdateComercio -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, comercio)
}

// HandleDeleteComercio godoc
// @Summary      Delete a business (admin)
// @Tags         comercios
// @Produce      json
// @Param        comercioID   path   int  true "comercio ID"
// @Success      204
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /comercios/{comercioID} [delete]
func (h *ComercioHandler) HandleDeleteComercio(ctx *gin.Context) {
	if !isAdmin(ctx) {
		response.RenderErr(ctx, response.ErrPermissionDenied())

		return
	}

	comercioID, err := parseIDParam(ctx, "comercioID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = h.svc.DeleteComercio(ctx.Request.Context(), comercioID); err != nil {
		if errors.Is(err, service.ErrComercioNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("comercio", "ID", comercioID))

			return
		}

		err = fmt.Errorf("v1.HandleDeleteComercio -> h.svc.DeleteComercio -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleUploadComercioImage godoc
// @Summary      Upload a business image (admin)
// @Tags         comercios
// @Accept       multipart/form-data
// @Produce      json
// @Param        comercioID   path   int  true "comercio ID"
// @Param        image   formData    file true "image file"
// @Success      200      {object}   domain.Comercio
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /comercios/{comercioID}/image [post]
func (h *ComercioHandler) HandleUploadComercioImage(ctx *gin.Context) {
	if !isAdmin(ctx) {
		response.RenderErr(ctx, response.ErrPermissionDenied())

		return
	}

	comercioID, err := parseIDParam(ctx, "comercioID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	header, err := ctx.FormFile("image")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	file, err := header.Open()
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}
	defer file.Close()

	comercio, err := h.svc.UploadComercioImage(ctx.Request.Context(), comercioID, file, header)
	if err != nil {
		if errors.Is(err, service.ErrComercioNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("comercio", "ID", comercioID))

			return
		}

		err = fmt.Errorf("v1.HandleUploadComercioImage -> h.svc.UploadComercioImage -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, comercio)
}
