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

type RecordService interface {
	CreateRecord(ctx context.Context, record domain.Record) (domain.Record, error)
	GetRecord(ctx context.Context, id uint) (domain.Record, error)
	FindAllRecords(ctx context.Context) ([]domain.Record, error)
	FindUserRecords(ctx context.Context, userID uint) ([]domain.Record, error)
	UpdateRecord(ctx context.Context, record domain.Record) (domain.Record, error)
	UpdateRecordStatus(ctx context.Context, id uint, next domain.RecordStatus) (domain.Record, error)
	DeleteRecord(ctx context.Context, id uint) error
}

type RecordHandler struct {
	svc RecordService
}

func NewRecordHandler(svc RecordService) *RecordHandler {
	return &RecordHandler{
		svc: svc,
	}
}

// HandleCreateRecord godoc
// @Summary      Submit a purchase record
// @Tags         records
// @Produce      json
// @Param        request   body      request.CreateRecordRequest true "request body"
// @Success      201      {object}   domain.Record
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /records [post]
func (h *RecordHandler) HandleCreateRecord(ctx *gin.Context) {
	authID, err := getAuthUserID(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrUnauthorized(err))

		return
	}

	var req request.CreateRecordRequest
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	record, err := h.svc.CreateRecord(ctx.Request.Context(), domain.Record{
		UserID:        authID,
		Fecha:         req.Fecha,
		Monto:         req.Monto,
		Descripcion:   req.Descripcion,
		Rubro:         req.Rubro,
		CUIT:          req.CUIT,
		ComercioID:    req.ComercioID,
		IsSustainable: req.IsSustainable,
	})
	if err != nil {
		if errors.Is(err, service.ErrComercioNotFound) {
			response.RenderErr(ctx, response.ErrUnprocessable(service.ErrComercioNotFound))

			return
		}

		err = fmt.Errorf("v1.HandleCreateRecord -> h.svc.CreateRecord -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusCreated, record)
}

// HandleListRecords godoc
// @Summary      List all records (admin)
// @Tags         records
// @Produce      json
// @Success      200      {array}    domain.Record
// @Failure      403      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /records [get]
func (h *RecordHandler) HandleListRecords(ctx *gin.Context) {
	if !isAdmin(ctx) {
		response.RenderErr(ctx, response.ErrPermissionDenied())

		return
	}

	records, err := h.svc.FindAllRecords(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListRecords -> h.svc.FindAllRecords -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, records)
}

// HandleListUserRecords godoc
// @Summary      List a user's records
// @Tags         records
// @Produce      json
// @Param        userID   path       int  true "user ID"
// @Success      200      {array}    domain.Record
// @Failure      403      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /users/{userID}/records [get]
func (h *RecordHandler) HandleListUserRecords(ctx *gin.Context) {
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

	records, err := h.svc.FindUserRecords(ctx.Request.Context(), userID)
	if err != nil {
		err = fmt.Errorf("v1.HandleListUserRecords -> h.svc.FindUserRecords -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, records)
}

// HandleGetRecord godoc
// @Summary      Get a record by ID
// @Tags         records
// @Produce      json
// @Param        recordID   path     int  true "record ID"
// @Success      200      {object}   domain.Record
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /records/{recordID} [get]
func (h *RecordHandler) HandleGetRecord(ctx *gin.Context) {
	recordID, err := parseIDParam(ctx, "recordID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	record, err := h.svc.GetRecord(ctx.Request.Context(), recordID)
	if err != nil {
		if errors.Is(err, service.ErrRecordNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("record", "ID", recordID))

			return
		}

		err = fmt.Errorf("v1.HandleGetRecord -> h.svc.GetRecord -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	authID, err := getAuthUserID(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrUnauthorized(err))

		return
	}
	if record.UserID != authID && !isAdmin(ctx) {
		response.RenderErr(ctx, response.ErrPermissionDenied())

		return
	}

	ctx.JSON(http.StatusOK, record)
}

// HandleUpdateRecord godoc
// @Summary      Edit a record's fields (admin)
// @Tags         records
// @Produce      json
// @Param        recordID   path     int  true "record ID"
// @Param        request   body      request.UpdateRecordRequest true "request body"
// @Success      200      {object}   domain.Record
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /records/{recordID} [put]
func (h *RecordHandler) HandleUpdateRecord(ctx *gin.Context) {
	if !isAdmin(ctx) {
		response.RenderErr(ctx, response.ErrPermissionDenied())

		return
	}

	recordID, err := parseIDParam(ctx, "recordID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	var req request.UpdateRecordRequest
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	updated, err := h.svc.UpdateRecord(ctx.Request.Context(), domain.Record{
		ID:            recordID,
		Fecha:         req.Fecha,
		Monto:         req.Monto,
		Descripcion:   req.Descripcion,
		Rubro:         req.Rubro,
		CUIT:          req.CUIT,
		ComercioID:    req.ComercioID,
		IsSustainable: req.IsSustainable,
	})
	if err != nil {
		if errors.Is(err, service.ErrRecordNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("record", "ID", recordID))

			return
		}
		if errors.Is(err, service.ErrComercioNotFound) {
			response.RenderErr(ctx, response.ErrUnprocessable(service.ErrComercioNotFound))

			return
		}

		err = fmt.Errorf("v1.HandleUpdateRecord -> h.svc.UpdateRecord -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, updated)
}

// HandleUpdateRecordStatus godoc
// @Summary      Approve or reject a record (admin)
// @Tags         records
// @Produce      json
// @Param        recordID   path     int  true "record ID"
// @Param        request   body      request.UpdateRecordStatusRequest true "request body"
// @Success      200      {object}   domain.Record
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      422      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /records/{recordID}/status [patch]
func (h *RecordHandler) HandleUpdateRecordStatus(ctx *gin.Context) {
	if !isAdmin(ctx) {
		response.RenderErr(ctx, response.ErrPermissionDenied())

		return
	}

	recordID, err := parseIDParam(ctx, "recordID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	var req request.UpdateRecordStatusRequest
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	updated, err := h.svc.UpdateRecordStatus(ctx.Request.Context(), recordID, domain.RecordStatus(req.Status))
	if err != nil {
		if errors.Is(err, service.ErrRecordNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("record", "ID", recordID))

			return
		}
		if errors.Is(err, service.ErrInvalidStatusTransition) {
			response.RenderErr(ctx, response.ErrUnprocessable(service.ErrInvalidStatusTransition))

			return
		}

		err = fmt.Errorf("v1.HandleUpdateRecordStatus -> h.svc.UpdateRecordStatus -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, updated)
}

// HandleDeleteRecord godoc
// @Summary      Delete a record (admin)
// @Tags         records
// @Produce      json
// @Param        recordID   path     int  true "record ID"
// @Success      204
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /records/{recordID} [delete]
func (h *RecordHandler) HandleDeleteRecord(ctx *gin.Context) {
	if !isAdmin(ctx) {
		response.RenderErr(ctx, response.ErrPermissionDenied())

		return
	}

	recordID, err := parseIDParam(ctx, "recordID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = h.svc.DeleteRecord(ctx.Request.Context(), recordID); err != nil {
		if errors.Is(err, service.ErrRecordNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("record", "ID", recordID))

			return
		}

		err = fmt.Errorf("v1.HandleDeleteRecord -> h.svc.DeleteRecord -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.Status(http.StatusNoContent)
}
