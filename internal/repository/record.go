package repository

import (
	"context"
	"fmt"

	"github.com/gea-verde/gea-api/internal/domain"
	"github.com/gea-verde/gea-api/internal/repository/dao"
)

var ErrRecordNotFound = dao.ErrRecordNotFound

type RecordDAO interface {
	Insert(ctx context.Context, record dao.Record) (dao.Record, error)
	FindByID(ctx context.Context, id uint) (dao.Record, error)
	FindAll(ctx context.Context) ([]dao.Record, error)
	FindByUserID(ctx context.Context, userID uint) ([]dao.Record, error)
	FindApprovedByUserID(ctx context.Context, userID uint) ([]dao.Record, error)
	Update(ctx context.Context, record dao.Record) (dao.Record, error)
	StampGreenCoins(ctx context.Context, recordID uint, coins int) error
	Delete(ctx context.Context, id uint) error
}

type RecordRepository struct {
	dao RecordDAO
}

func NewRecordRepository(dao RecordDAO) *RecordRepository {
	return &RecordRepository{
		dao: dao,
	}
}

func (r *RecordRepository) Create(ctx context.Context, record domain.Record) (domain.Record, error) {
	created, err := r.dao.Insert(ctx, r.domainToDao(record))
	if err != nil {
		return domain.Record{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *RecordRepository) FindByID(ctx context.Context, id uint) (domain.Record, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Record{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *RecordRepository) FindAll(ctx context.Context) ([]domain.Record, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	return r.daosToDomain(found), nil
}

func (r *RecordRepository) FindByUserID(ctx context.Context, userID uint) ([]domain.Record, error) {
	found, err := r.dao.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByUserID -> %w", err)
	}

	return r.daosToDomain(found), nil
}

func (r *RecordRepository) FindApprovedByUserID(ctx context.Context, userID uint) ([]domain.Record, error) {
	found, err := r.dao.FindApprovedByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindApprovedByUserID -> %w", err)
	}

	return r.daosToDomain(found), nil
}

func (r *RecordRepository) Update(ctx context.Context, record domain.Record) (domain.Record, error) {
	updated, err := r.dao.Update(ctx, r.domainToDao(record))
	if err != nil {
		return domain.Record{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *RecordRepository) StampGreenCoins(ctx context.Context, recordID uint, coins int) error {
	if err := r.dao.StampGreenCoins(ctx, recordID, coins); err != nil {
		return fmt.Errorf("r.dao.StampGreenCoins -> %w", err)
	}

	return nil
}

func (r *RecordRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *RecordRepository) domainToDao(record domain.Record) dao.Record {
	return dao.Record{
		ID:            record.ID,
		UserID:        record.UserID,
		ClientID:      record.ClientID,
		ComercioID:    record.ComercioID,
		Fecha:         record.Fecha,
		Monto:         record.Monto,
		Descripcion:   record.Descripcion,
		Rubro:         record.Rubro,
		CUIT:          record.CUIT,
		Status:        string(record.Status),
		GreenCoins:    record.GreenCoins,
		IsSustainable: record.IsSustainable,
		CreatedAt:     record.CreatedAt,
		UpdatedAt:     record.UpdatedAt,
	}
}

func (r *RecordRepository) daoToDomain(record dao.Record) domain.Record {
	return domain.Record{
		ID:            record.ID,
		UserID:        record.UserID,
		ClientID:      record.ClientID,
		ComercioID:    record.ComercioID,
		Fecha:         record.Fecha,
		Monto:         record.Monto,
		Descripcion:   record.Descripcion,
		Rubro:         record.Rubro,
		CUIT:          record.CUIT,
		Status:        domain.RecordStatus(record.Status),
		GreenCoins:    record.GreenCoins,
		IsSustainable: record.IsSustainable,
		CreatedAt:     record.CreatedAt,
		UpdatedAt:     record.UpdatedAt,
	}
}

func (r *RecordRepository) daosToDomain(records []dao.Record) []domain.Record {
	result := make([]domain.Record, len(records))
	for i, record := range records {
		result[i] = r.daoToDomain(record)
	}

	return result
}
