package repository

import (
	"context"
	"fmt"

	"github.com/gea-verde/gea-api/internal/domain"
	"github.com/gea-verde/gea-api/internal/repository/dao"
)

var (
	ErrInsufficientCoins   = dao.ErrInsufficientCoins
	ErrOutOfStock          = dao.ErrOutOfStock
	ErrConcurrencyConflict = dao.ErrConcurrencyConflict
)

type RedemptionDAO interface {
	RedeemProduct(ctx context.Context, userID, productID uint, attemptKey string) (dao.Redemption, error)
	FindByUserID(ctx context.Context, userID uint) ([]dao.Redemption, error)
	FindAll(ctx context.Context) ([]dao.Redemption, error)
}

type RedemptionRepository struct {
	dao RedemptionDAO
}

func NewRedemptionRepository(dao RedemptionDAO) *RedemptionRepository {
	return &RedemptionRepository{
		dao: dao,
	}
}

// RedeemProduct runs the whole read-check-write unit atomically in the
// store. Sentinel errors pass through unwrapped so the service can
// branch on them.
func (r *RedemptionRepository) RedeemProduct(ctx context.Context, userID, productID uint, attemptKey string) (domain.Redemption, error) {
	receipt, err := r.dao.RedeemProduct(ctx, userID, productID, attemptKey)
	if err != nil {
		return domain.Redemption{}, fmt.Errorf("r.dao.RedeemProduct -> %w", err)
	}

	return r.daoToDomain(receipt), nil
}

func (r *RedemptionRepository) FindByUserID(ctx context.Context, userID uint) ([]domain.Redemption, error) {
	found, err := r.dao.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByUserID -> %w", err)
	}

	return r.daosToDomain(found), nil
}

func (r *RedemptionRepository) FindAll(ctx context.Context) ([]domain.Redemption, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	return r.daosToDomain(found), nil
}

func (r *RedemptionRepository) daoToDomain(red dao.Redemption) domain.Redemption {
	return domain.Redemption{
		ID:          red.ID,
		UserID:      red.UserID,
		ProductID:   red.ProductID,
		ProductName: red.ProductName,
		CoinsSpent:  red.CoinsSpent,
		AttemptKey:  red.AttemptKey,
		RedeemedAt:  red.RedeemedAt,
	}
}

func (r *RedemptionRepository) daosToDomain(redemptions []dao.Redemption) []domain.Redemption {
	result := make([]domain.Redemption, len(redemptions))
	for i, red := range redemptions {
		result[i] = r.daoToDomain(red)
	}

	return result
}
