package service

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/gea-verde/gea-api/internal/domain"
	"github.com/gea-verde/gea-api/internal/repository"
)

var (
	ErrProductNotFound = repository.ErrProductNotFound
	ErrInvalidProduct  = errors.New("invalid product definition")
)

type ProductRepository interface {
	Create(ctx context.Context, product domain.Product) (domain.Product, error)
	FindByID(ctx context.Context, id uint) (domain.Product, error)
	FindAll(ctx context.Context) ([]domain.Product, error)
	FindActive(ctx context.Context) ([]domain.Product, error)
	Update(ctx context.Context, product domain.Product) (domain.Product, error)
	Delete(ctx context.Context, id uint) error
}

type ImageUploader interface {
	Upload(key string, file multipart.File, contentType string) (string, error)
}

type ProductService struct {
	repo     ProductRepository
	uploader ImageUploader
}

func NewProductService(repo ProductRepository, uploader ImageUploader) *ProductService {
	return &ProductService{
		repo:     repo,
		uploader: uploader,
	}
}

func (s *ProductService) CreateProduct(ctx context.Context, product domain.Product) (domain.Product, error) {
	if err := validateProduct(product); err != nil {
		return domain.Product{}, err
	}
	if product.Status == "" {
		product.Status = domain.ProductActive
	}

	created, err := s.repo.Create(ctx, product)
	if err != nil {
		return domain.Product{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *ProductService) GetProduct(ctx context.Context, id uint) (domain.Product, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Product{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return product, nil
}

// FindProducts lists the catalog. Non-admin callers only see active
// products.
func (s *ProductService) FindProducts(ctx context.Context, includeInactive bool) ([]domain.Product, error) {
	var (
		products []domain.Product
		err      error
	)
	if includeInactive {
		products, err = s.repo.FindAll(ctx)
	} else {
		products, err = s.repo.FindActive(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("s.repo.Find -> %w", err)
	}

	return products, nil
}

func (s *ProductService) UpdateProduct(ctx context.Context, product domain.Product) (domain.Product, error) {
	if err := validateProduct(product); err != nil {
		return domain.Product{}, err
	}

	updated, err := s.repo.Update(ctx, product)
	if err != nil {
		return domain.Product{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

func (s *ProductService) DeleteProduct(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}

// UploadProductImage stores the image and persists the resulting URL on
// the product.
func (s *ProductService) UploadProductImage(ctx context.Context, productID uint, file multipart.File, header *multipart.FileHeader) (domain.Product, error) {
	product, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		return domain.Product{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	key := fmt.Sprintf("products/%d/%s%s", productID, uuid.NewString(), filepath.Ext(header.Filename))
	url, err := s.uploader.Upload(key, file, header.Header.Get("Content-Type"))
	if err != nil {
		return domain.Product{}, fmt.Errorf("s.uploader.Upload -> %w", err)
	}

	product.ImageURL = url
	updated, err := s.repo.Update(ctx, product)
	if err != nil {
		return domain.Product{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

func validateProduct(product domain.Product) error {
	if product.Name == "" || product.CoinsRequired <= 0 || product.Stock < 0 {
		return ErrInvalidProduct
	}

	return nil
}
