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

var errMissingLookupParam = errors.New("either email or telefono is required")

type IntegrationUserService interface {
	LookupClient(ctx context.Context, email, telefono string) (domain.Client, error)
}

type IntegrationComercioService interface {
	FindComercioByCUIT(ctx context.Context, cuitNumber string) (domain.Comercio, error)
	FindAllComercios(ctx context.Context) ([]domain.Comercio, error)
}

type IntegrationRecordService interface {
	CreateRecord(ctx context.Context, record domain.Record) (domain.Record, error)
	FindAllRecords(ctx context.Context) ([]domain.Record, error)
	UpdateRecord(ctx context.Context, record domain.Record) (domain.Record, error)
	DeleteRecord(ctx context.Context, id uint) error
}

// IntegrationHandler serves the API-key guarded endpoints used by the
// automated receipt pipeline: profile lookup, business resolution by
// CUIT, and pre-approved record ingestion.
type IntegrationHandler struct {
	userSvc     IntegrationUserService
	comercioSvc IntegrationComercioService
	recordSvc   IntegrationRecordService
}

func NewIntegrationHandler(userSvc IntegrationUserService, comercioSvc IntegrationComercioService, recordSvc IntegrationRecordService) *IntegrationHandler {
	return &IntegrationHandler{
		userSvc:     userSvc,
		comercioSvc: comercioSvc,
		recordSvc:   recordSvc,
	}
}

// HandleLookupClient godoc
// @Summary      Resolve a client profile by email or phone
// @Tags         integration
// @Produce      json
// @Param        email      query     string false "client email"
// @Param        telefono   query     string false "client phone"
// @Success      200      {object}   domain.Client
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /integration/clients/lookup [get]
func (h *IntegrationHandler) HandleLookupClient(ctx *gin.Context) {
	email := ctx.Query("email")
	telefono := ctx.Query("telefono")
	if email == "" && telefono == "" {
		response.RenderErr(ctx, response.ErrBadRequest(errMissingLookupParam))

		return
	}

	client, err := h.userSvc.LookupClient(ctx.Request.Context(), email, telefono)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) || errors.Is(err, service.ErrClientNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("client", "email/telefono", email+telefono))

			return
		}

		err = fmt.Errorf("v1.HandleLookupClient -> h.userSvc.LookupClient -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, client)
}

// HandleGetComercioByCUIT godoc
// @Summary      Resolve a business by CUIT
// @Tags         integration
// @Produce      json
// @Param        cuit   path         string true "CUIT number"
// @Success      200      {object}   domain.Comercio
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /integration/comercios/{cuit} [get]
func (h *IntegrationHandler) HandleGetComercioByCUIT(ctx *gin.Context) {
	cuitNumber := ctx.Param("cuit")

	comercio, err := h.comercioSvc.FindComercioByCUIT(ctx.Request.Context(), cuitNumber)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCUIT) {
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrInvalidCUIT))

			return
		}
		if errors.Is(err, service.ErrComercioNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("comercio", "CUIT", cuitNumber))

			return
		}

		err = fmt.Errorf("v1.HandleGetComercioByCUIT -> h.comercioSvc.FindComercioByCUIT -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, comercio)
}

// HandleCreateIntegrationRecord godoc
// @Summary      Ingest a pre-approved record from the receipt pipeline
// @Tags         integration
// @Produce      json
// @Param        request   body      request.IntegrationRecordRequest true "request body"
// @Success      201      {object}   domain.Record
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /integration/records [post]
func (h *IntegrationHandler) HandleCreateIntegrationRecord(ctx *gin.Context) {
	var req request.IntegrationRecordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	record, err := h.recordSvc.CreateRecord(ctx.Request.Context(), domain.Record{
		UserID:        req.UserID,
		Fecha:         req.Fecha,
		Monto:         req.Monto,
		Descripcion:   req.Descripcion,
		Rubro:         req.Rubro,
		CUIT:          req.CUIT,
		IsSustainable: req.IsSustainable,
		Status:        domain.RecordApproved,
	})
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("user", "ID", req.UserID))

			return
		}

		err = fmt.Errorf("v1.HandleCreateIntegrationRecord -> h.recordSvc.CreateRecord -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusCreated, record)
}

// HandleListIntegrationRecords godoc
// @Summary      List all records for the receipt pipeline
// @Tags         integration
// @Produce      json
// @Success      200      {array}    domain.Record
// @Failure      500      {object}   response.Err
// @Router       /integration/records [get]
func (h *IntegrationHandler) HandleListIntegrationRecords(ctx *gin.Context) {
	records, err := h.recordSvc.FindAllRecords(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListIntegrationRecords -> h.recordSvc.FindAllRecords -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, records)
}

// HandleUpdateIntegrationRecord godoc
// @Summary      Correct a record ingested by the receipt pipeline
// @Tags         integration
// @Produce      json
// @Param        recordID   path      int true "record ID"
// @Param        request   body      request.UpdateRecordRequest true "request body"
// @Success      200      {object}   domain.Record
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /integration/records/{recordID} [put]
func (h *IntegrationHandler) HandleUpdateIntegrationRecord(ctx *gin.Context) {
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

	record, err := h.recordSvc.UpdateRecord(ctx.Request.Context(), domain.Record{
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

		err = fmt.Errorf("v1.HandleUpdateIntegrationRecord -> h.recordSvc.UpdateRecord -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, record)
}

// HandleDeleteIntegrationRecord godoc
// @Summary      Remove a record ingested by the receipt pipeline
// @Tags         integration
// @Produce      json
// @Param        recordID   path      int true "record ID"
// @Success      204
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /integration/records/{recordID} [delete]
func (h *IntegrationHandler) HandleDeleteIntegrationRecord(ctx *gin.Context) {
	recordID, err := parseIDParam(ctx, "recordID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = h.recordSvc.DeleteRecord(ctx.Request.Context(), recordID); err != nil {
		if errors.Is(err, service.ErrRecordNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("record", "ID", recordID))

			return
		}

		err = fmt.Errorf("v1.HandleDeleteIntegrationRecord -> h.recordSvc.DeleteRecord -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleListIntegrationComercios godoc
// @Summary      List green businesses for the receipt pipeline
// @Tags         integration
// @Produce      json
// @Success      200      {array}    domain.Comercio
// @Failure      500      {object}   response.Err
// @Router       /integration/comercios [get]
func (h *IntegrationHandler) HandleListIntegrationComercios(ctx *gin.Context) {
	comercios, err := h.comercioSvc.FindAllComercios(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListIntegrationComercios -> h.comercioSvc.FindAllComercios -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, comercios)
}
