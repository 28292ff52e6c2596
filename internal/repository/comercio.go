package repository

import (
	"context"
	"fmt"

	"github.com/gea-verde/gea-api/internal/domain"
	"github.com/gea-verde/gea-api/internal/repository/dao"
)

var ErrComercioNotFound = dao.ErrComercioNotFound

type ComercioDAO interface {
	Insert(ctx context.Context, comercio dao.Comercio) (dao.Comercio, error)
	FindByID(ctx context.Context, id uint) (dao.Comercio, error)
	FindByCUIT(ctx context.Context, cuit string) (dao.Comercio, error)
	FindAll(ctx context.Context) ([]dao.Comercio, error)
	Update(ctx context.Context, comercio dao.Comercio) (dao.Comercio, error)
	Delete(ctx context.Context, id uint) error
}

type ComercioRepository struct {
	dao ComercioDAO
}

func NewComercioRepository(dao ComercioDAO) *ComercioRepository {
	return &ComercioRepository{
		dao: dao,
	}
}

func (r *ComercioRepository) Create(ctx context.Context, comercio domain.Comercio) (domain.Comercio, error) {
	created, err := r.dao.Insert(ctx, r.domainToDao(comercio))
	if err != nil {
		return domain.Comercio{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *ComercioRepository) FindByID(ctx context.Context, id uint) (domain.Comercio, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Comercio{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *ComercioRepository) FindByCUIT(ctx context.Context, cuit string) (domain.Comercio, error) {
	found, err := r.dao.FindByCUIT(ctx, cuit)
	if err != nil {
		return domain.Comercio{}, fmt.Errorf("r.dao.FindByCUIT -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *ComercioRepository) FindAll(ctx context.Context) ([]domain.Comercio, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	comercios := make([]domain.Comercio, len(found))
	for i, c := range found {
		comercios[i] = r.daoToDomain(c)
	}

	return comercios, nil
}

func (r *ComercioRepository) Update(ctx context.Context, comercio domain.Comercio) (domain.Comercio, error) {
	updated, err := r.dao.Update(ctx, r.domainToDao(comercio))
	if err != nil {
		return domain.Comercio{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *ComercioRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *ComercioRepository) domainToDao(c domain.Comercio) dao.Comercio {
	return dao.Comercio{
		ID:            c.ID,
		Name:          c.Name,
		Address:       c.Address,
		Phone:         c.Phone,
		Description:   c.Description,
		ImageURL:      c.ImageURL,
		Tags:          c.Tags,
		Rubro:         c.Rubro,
		Lat:           c.Lat,
		Lng:           c.Lng,
		IsSustainable: c.IsSustainable,
		CUIT:          c.CUIT,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

func (r *ComercioRepository) daoToDomain(c dao.Comercio) domain.Comercio {
	return domain.Comercio{
		ID:            c.ID,
		Name:          c.Name,
		Address:       c.Address,
		Phone:         c.Phone,
		Description:   c.Description,
		ImageURL:      c.ImageURL,
		Tags:          c.Tags,
		Rubro:         c.Rubro,
		Lat:           c.Lat,
		Lng:           c.Lng,
		IsSustainable: c.IsSustainable,
		CUIT:          c.CUIT,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}
