package service

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/gea-verde/gea-api/internal/domain"
	"github.com/gea-verde/gea-api/internal/pkg/cuit"
	"github.com/gea-verde/gea-api/internal/repository"
)

var (
	ErrComercioNotFound = repository.ErrComercioNotFound
	ErrInvalidCUIT      = errors.New("invalid cuit")
)

type ComercioRepository interface {
	Create(ctx context.Context, comercio domain.Comercio) (domain.Comercio, error)
	FindByID(ctx context.Context, id uint) (domain.Comercio, error)
	FindByCUIT(ctx context.Context, cuitNumber string) (domain.Comercio, error)
	FindAll(ctx context.Context) ([]domain.Comercio, error)
	Update(ctx context.Context, comercio domain.Comercio) (domain.Comercio, error)
	Delete(ctx context.Context, id uint) error
}

type ComercioService struct {
	repo     ComercioRepository
	uploader ImageUploader
}

func NewComercioService(repo ComercioRepository, uploader ImageUploader) *ComercioService {
	return &ComercioService{
		repo:     repo,
		uploader: uploader,
	}
}

func (s *ComercioService) CreateComercio(ctx context.Context, comercio domain.Comercio) (domain.Comercio, error) {
	if comercio.CUIT != "" && !cuit.IsValid(comercio.CUIT) {
		return domain.Comercio{}, ErrInvalidCUIT
	}

	created, err := s.repo.Create(ctx, comercio)
	if err != nil {
		return domain.Comercio{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *ComercioService) GetComercio(ctx context.Context, id uint) (domain.Comercio, error) {
	comercio, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Comercio{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return comercio, nil
}

// FindComercioByCUIT is how the receipt pipeline maps an invoice back to
// a registered business.
func (s *ComercioService) FindComercioByCUIT(ctx context.Context, cuitNumber string) (domain.Comercio, error) {
	if !cuit.IsValid(cuitNumber) {
		return domain.Comercio{}, ErrInvalidCUIT
	}

	comercio, err := s.repo.FindByCUIT(ctx, cuitNumber)
	if err != nil {
		return domain.Comercio{}, fmt.Errorf("s.repo.FindByCUIT -> %w", err)
	}

	return comercio, nil
}

func (s *ComercioService) FindAllComercios(ctx context.Context) ([]domain.Comercio, error) {
	comercios, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return comercios, nil
}

func (s *ComercioService) UpdateComercio(ctx context.Context, comercio domain.Comercio) (domain.Comercio, error) {
	if comercio.CUIT != "" && !cuit.IsValid(comercio.CUIT) {
		return domain.Comercio{}, ErrInvalidCUIT
	}

	updated, err := s.repo.Update(ctx, comercio)
	if err != nil {
		return domain.Comercio{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

func (s *ComercioService) DeleteComercio(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}

func (s *ComercioService) UploadComercioImage(ctx context.Context, comercioID uint, file multipart.File, header *multipart.FileHeader) (domain.Comercio, error) {
	comercio, err := s.repo.FindByID(ctx, comercioID)
	if err != nil {
		return domain.Comercio{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	key := fmt.Sprintf("comercios/%d/%s%s", comercioID, uuid.NewString(), filepath.Ext(header.Filename))
	url, err := s.uploader.Upload(key, file, header.Header.Get("Content-Type"))
	if err != nil {
		return domain.Comercio{}, fmt.Errorf("s.uploader.Upload -> %w", err)
	}

	comercio.ImageURL = url
	updated, err := s.repo.Update(ctx, comercio)
	if err != nil {
		return domain.Comercio{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}
