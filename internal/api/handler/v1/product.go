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

type ProductService interface {
	CreateProduct(ctx context.Context, product domain.Product) (domain.Product, error)
	GetProduct(ctx context.Context, id uint) (domain.Product, error)
	FindProducts(ctx context.Context, includeInactive bool) ([]domain.Product, error)
	UpdateProduct(ctx context.Context, product domain.Product) (domain.Product, error)
	DeleteProduct(ctx context.Context, id uint) error
	UploadProductImage(ctx context.Context, productID uint, file multipart.File, header *multipart.FileHeader) (domain.Product, error)
}

type ProductHandler struct {
	svc ProductService
}

func NewProductHandler(svc ProductService) *ProductHandler {
	return &ProductHandler{
		svc: svc,
	}
}

// HandleListProducts godoc
// @Summary      List redeemable products
// @Tags         products
// @Produce      json
// @Success      200      {array}    domain.Product
// @Failure      500      {object}   response.Err
// @Router       /products [get]
func (h *ProductHandler) HandleListProducts(ctx *gin.Context) {
	// Only admins see inactive catalog entries.
	includeInactive := isAdmin(ctx) && ctx.Query("include_inactive") == "true"

	products, err := h.svc.FindProducts(ctx.Request.Context(), includeInactive)
	if err != nil {
		err = fmt.Errorf("v1.HandleListProducts -> h.svc.FindProducts -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, products)
}

// HandleGetProduct godoc
// @Summary      Get a product by ID
// @Tags         products
// @Produce      json
// @Param        productID   path    int  true "product ID"
// @Success      200      {object}   domain.Product
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /products/{productID} [get]
func (h *ProductHandler) HandleGetProduct(ctx *gin.Context) {
	productID, err := parseIDParam(ctx, "productID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	product, err := h.svc.GetProduct(ctx.Request.Context(), productID)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("product", "ID", productID))

			return
		}

		err = fmt.Errorf("v1.HandleGetProduct -> h.svc.GetProduct -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, product)
}

// HandleCreateProduct godoc
// @Summary      Create a product (admin)
// @Tags         products
// @Produce      json
// @Param        request   body      request.CreateProductRequest true "request body"
// @Success      201      {object}   domain.Product
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /products [post]
func (h *ProductHandler) HandleCreateProduct(ctx *gin.Context) {
	if !isAdmin(ctx) {
		response.RenderErr(ctx, response.ErrPermissionDenied())

		return
	}

	var req request.CreateProductRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	product, err := h.svc.CreateProduct(ctx.Request.Context(), domain.Product{
		Name:          req.Name,
		Description:   req.Description,
		Rubro:         req.Rubro,
		CoinsRequired: req.CoinsRequired,
		Stock:         req.Stock,
		Status:        domain.ProductStatus(req.Status),
		ValidFrom:     req.ValidFrom,
		ValidTo:       req.ValidTo,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidProduct) {
			response.RenderErr(ctx, response.ErrBadRequest(err))

			return
		}

		err = fmt.Errorf("v1.HandleCreateProduct -> h.svc.CreateProduct -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusCreated, product)
}

// HandleUpdateProduct godoc
// @Summary      Update a product (admin)
// @Tags         products
// @Produce      json
// @Param        productID   path    int  true "product ID"
// @Param        request   body      request.UpdateProductRequest true "request body"
// @Success      200      {object}   domain.Product
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /products/{productID} [put]
func (h *ProductHandler) HandleUpdateProduct(ctx *gin.Context) {
	if !isAdmin(ctx) {
		response.RenderErr(ctx, response.ErrPermissionDenied())

		return
	}

	productID, err := parseIDParam(ctx, "productID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	var req request.UpdateProductRequest
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	product, err := h.svc.UpdateProduct(ctx.Request.Context(), domain.Product{
		ID:            productID,
		Name:          req.Name,
		Description:   req.Description,
		Rubro:         req.Rubro,
		CoinsRequired: req.CoinsRequired,
		Stock:         req.Stock,
		Status:        domain.ProductStatus(req.Status),
		ValidFrom:     req.ValidFrom,
		ValidTo:       req.ValidTo,
	})
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("product", "ID", productID))

			return
		}
		if errors.Is(err, service.ErrInvalidProduct) {
			response.RenderErr(ctx, response.ErrBadRequest(err))

			return
		}

		err = fmt.Errorf("v1.HandleUpdateProduct -> h.svc.UpdateProduct -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, product)
}

// HandleDeleteProduct godoc
// @Summary      Delete a product (admin)
// @Tags         products
// @Produce      json
// @Param        productID   path    int  true "product ID"
// @Success      204
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /products/{productID} [delete]
func (h *ProductHandler) HandleDeleteProduct(ctx *gin.Context) {
	if !isAdmin(ctx) {
		response.RenderErr(ctx, response.ErrPermissionDenied())

		return
	}

	productID, err := parseIDParam(ctx, "productID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = h.svc.DeleteProduct(ctx.Request.Context(), productID); err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("product", "ID", productID))

			return
		}

		err = fmt.Errorf("v1.HandleDeleteProduct -> h.svc.DeleteProduct -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleUploadProductImage godoc
// @Summary      Upload a product image (admin)
// @Tags         products
// @Accept       multipart/form-data
// @Produce      json
// @Param        productID   path    int  true "product ID"
// @Param        image   formData    file true "image file"
// @Success      200      {object}   domain.Product
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /products/{productID}/image [post]
func (h *ProductHandler) HandleUploadProductImage(ctx *gin.Context) {
	if !isAdmin(ctx) {
		response.RenderErr(ctx, response.ErrPermissionDenied())

		return
	}

	productID, err := parseIDParam(ctx, "productID")
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

	product, err := h.svc.UploadProductImage(ctx.Request.Context(), productID, file, header)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("product", "ID", productID))

			return
		}

		err = fmt.Errorf("v1.HandleUploadProductImage -> h.svc.UploadProductImage -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, product)
}
