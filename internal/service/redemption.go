package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gea-verde/gea-api/internal/domain"
	"github.com/gea-verde/gea-api/internal/pkg/greencoins"
	"github.com/gea-verde/gea-api/internal/repository"
)

var (
	ErrInsufficientCoins   = repository.ErrInsufficientCoins
	ErrOutOfStock          = repository.ErrOutOfStock
	ErrConcurrencyConflict = repository.ErrConcurrencyConflict
	ErrProductInactive     = errors.New("product is not redeemable")
	ErrProductNotInWindow  = errors.New("product is outside its validity window")
)

const redeemMaxAttempts = 3

type RedemptionRepository interface {
	RedeemProduct(ctx context.Context, userID, productID uint, attemptKey string) (domain.Redemption, error)
	FindByUserID(ctx context.Context, userID uint) ([]domain.Redemption, error)
	FindAll(ctx context.Context) ([]domain.Redemption, error)
}

type RedemptionProductRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Product, error)
}

type RedemptionUserRepository interface {
	FindByID(ctx context.Context, id uint) (domain.User, error)
	UpdateGamification(ctx context.Context, userID uint, greenCoins int, snapshot greencoins.Snapshot) error
}

type RedemptionService struct {
	repo        RedemptionRepository
	productRepo RedemptionProductRepository
	userRepo    RedemptionUserRepository
	table       greencoins.Table
}

func NewRedemptionService(
	repo RedemptionRepository,
	productRepo RedemptionProductRepository,
	userRepo RedemptionUserRepository,
	table greencoins.Table,
) *RedemptionService {
	return &RedemptionService{
		repo:        repo,
		productRepo: productRepo,
		userRepo:    userRepo,
		table:       table,
	}
}

// Redeem exchanges coins for one unit of a product. The debit, stock
// decrement and receipt happen in a single storage transaction; a
// serialization conflict is retried under the same attempt key, so a
// retry that races its own earlier attempt finds the existing receipt
// instead of charging twice.
func (s *RedemptionService) Redeem(ctx context.Context, userID, productID uint) (domain.Redemption, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return domain.Redemption{}, fmt.Errorf("s.productRepo.FindByID -> %w", err)
	}
	if product.Status != domain.ProductActive {
		return domain.Redemption{}, ErrProductInactive
	}
	if !product.RedeemableAt(time.Now()) {
		return domain.Redemption{}, ErrProductNotInWindow
	}

	attemptKey := uuid.NewString()

	var receipt domain.Redemption
	for attempt := 1; attempt <= redeemMaxAttempts; attempt++ {
		receipt, err = s.repo.RedeemProduct(ctx, userID, productID, attemptKey)
		if err == nil {
			break
		}
		if !errors.Is(err, ErrConcurrencyConflict) {
			return domain.Redemption{}, fmt.Errorf("s.repo.RedeemProduct -> %w", err)
		}

		zap.L().Warn("redemption hit a concurrency conflict, retrying",
			zap.Uint("user_id", userID),
			zap.Uint("product_id", productID),
			zap.Int("attempt", attempt),
		)

		select {
		case <-ctx.Done():
			return domain.Redemption{}, ctx.Err()
		case <-time.After(time.Duration(attempt) * 50 * time.Millisecond):
		}
	}
	if err != nil {
		return domain.Redemption{}, fmt.Errorf("s.repo.RedeemProduct -> %w", err)
	}

	s.refreshSnapshot(ctx, userID)

	return receipt, nil
}

func (s *RedemptionService) FindUserRedemptions(ctx context.Context, userID uint) ([]domain.Redemption, error) {
	redemptions, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByUserID -> %w", err)
	}

	return redemptions, nil
}

func (s *RedemptionService) FindAllRedemptions(ctx context.Context) ([]domain.Redemption, error) {
	redemptions, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return redemptions, nil
}

// refreshSnapshot realigns the cached gamification state with the
// post-debit balance. The debit itself already committed, so a failure
// here only leaves a stale snapshot that the next recompute repairs.
func (s *RedemptionService) refreshSnapshot(ctx context.Context, userID uint) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		zap.L().Error("failed to reload user after redemption", zap.Uint("user_id", userID), zap.Error(err))
		return
	}

	snapshot := s.table.SnapshotFor(user.GreenCoins)
	if err = s.userRepo.UpdateGamification(ctx, userID, user.GreenCoins, snapshot); err != nil {
		zap.L().Error("failed to refresh gamification snapshot", zap.Uint("user_id", userID), zap.Error(err))
	}
}
