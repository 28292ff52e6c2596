package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/gea-verde/gea-api/internal/domain"
	"github.com/gea-verde/gea-api/internal/pkg/greencoins"
	"github.com/gea-verde/gea-api/internal/repository"
)

var (
	ErrRecordNotFound          = repository.ErrRecordNotFound
	ErrInvalidStatusTransition = errors.New("invalid record status transition")
)

type RecordRepository interface {
	Create(ctx context.Context, record domain.Record) (domain.Record, error)
	FindByID(ctx context.Context, id uint) (domain.Record, error)
	FindAll(ctx context.Context) ([]domain.Record, error)
	FindByUserID(ctx context.Context, userID uint) ([]domain.Record, error)
	FindApprovedByUserID(ctx context.Context, userID uint) ([]domain.Record, error)
	Update(ctx context.Context, record domain.Record) (domain.Record, error)
	StampGreenCoins(ctx context.Context, recordID uint, coins int) error
	Delete(ctx context.Context, id uint) error
}

type RecordUserRepository interface {
	FindByID(ctx context.Context, id uint) (domain.User, error)
	FindAllIDs(ctx context.Context) ([]uint, error)
	UpdateGamification(ctx context.Context, userID uint, greenCoins int, snapshot greencoins.Snapshot) error
}

type RecordRedemptionRepository interface {
	FindByUserID(ctx context.Context, userID uint) ([]domain.Redemption, error)
}

type RecordComercioRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Comercio, error)
}

// RecordService owns purchase records and the balance that hangs off
// them. Every write that can move a balance ends with a full recompute
// of the owner's coins and gamification snapshot, so the cached values
// never drift from the record set no matter how a record got there.
type RecordService struct {
	repo        RecordRepository
	userRepo    RecordUserRepository
	redemptions RecordRedemptionRepository
	comercios   RecordComercioRepository
	table       greencoins.Table
}

func NewRecordService(
	repo RecordRepository,
	userRepo RecordUserRepository,
	redemptions RecordRedemptionRepository,
	comercios RecordComercioRepository,
	table greencoins.Table,
) *RecordService {
	return &RecordService{
		repo:        repo,
		userRepo:    userRepo,
		redemptions: redemptions,
		comercios:   comercios,
		table:       table,
	}
}

// deriveSustainability copies the flag from the linked business. The
// award rule never trusts the claimant's own word when a comercio is
// referenced.
func (s *RecordService) deriveSustainability(ctx context.Context, record *domain.Record) error {
	if record.ComercioID == nil {
		return nil
	}

	comercio, err := s.comercios.FindByID(ctx, *record.ComercioID)
	if err != nil {
		return fmt.Errorf("s.comercios.FindByID -> %w", err)
	}

	record.IsSustainable = comercio.IsSustainable

	return nil
}

func (s *RecordService) CreateRecord(ctx context.Context, record domain.Record) (domain.Record, error) {
	if record.Status == "" {
		record.Status = domain.RecordPending
	}
	if record.Status != domain.RecordPending && record.Status != domain.RecordApproved {
		return domain.Record{}, ErrInvalidStatusTransition
	}

	if err := s.deriveSustainability(ctx, &record); err != nil {
		return domain.Record{}, err
	}

	// Coins are stamped at approval time, never speculatively.
	record.GreenCoins = 0
	if record.IsApproved() {
		record.GreenCoins = greencoins.CoinsFor(record.Monto, record.IsSustainable)
	}

	created, err := s.repo.Create(ctx, record)
	if err != nil {
		return domain.Record{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	if created.IsApproved() {
		if _, err = s.RecomputeUser(ctx, created.UserID); err != nil {
			return domain.Record{}, fmt.Errorf("s.RecomputeUser -> %w", err)
		}
	}

	return created, nil
}

func (s *RecordService) GetRecord(ctx context.Context, id uint) (domain.Record, error) {
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Record{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return record, nil
}

func (s *RecordService) FindAllRecords(ctx context.Context) ([]domain.Record, error) {
	records, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return records, nil
}

func (s *RecordService) FindUserRecords(ctx context.Context, userID uint) ([]domain.Record, error) {
	records, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByUserID -> %w", err)
	}

	return records, nil
}

// UpdateRecordStatus drives the review flow. Approval stamps the earned
// coins onto the record and recomputes the owner's balance; re-approving
// an approved record recomputes to the same totals. Approved records can
// never be rejected, the correction path is deleting the record.
func (s *RecordService) UpdateRecordStatus(ctx context.Context, id uint, next domain.RecordStatus) (domain.Record, error) {
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Record{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if !record.CanTransitionTo(next) {
		return domain.Record{}, ErrInvalidStatusTransition
	}

	record.Status = next
	updated, err := s.repo.Update(ctx, record)
	if err != nil {
		return domain.Record{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	if next == domain.RecordApproved {
		coins := greencoins.CoinsFor(updated.Monto, updated.IsSustainable)
		if err = s.repo.StampGreenCoins(ctx, updated.ID, coins); err != nil {
			return domain.Record{}, fmt.Errorf("s.repo.StampGreenCoins -> %w", err)
		}
		updated.GreenCoins = coins
	}

	if _, err = s.RecomputeUser(ctx, updated.UserID); err != nil {
		return domain.Record{}, fmt.Errorf("s.RecomputeUser -> %w", err)
	}

	return updated, nil
}

// UpdateRecord edits the record's fields. When the record is approved,
// the amount may have changed, so the stamp is refreshed and the owner
// recomputed.
func (s *RecordService) UpdateRecord(ctx context.Context, record domain.Record) (domain.Record, error) {
	existing, err := s.repo.FindByID(ctx, record.ID)
	if err != nil {
		return domain.Record{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	record.UserID = existing.UserID
	record.Status = existing.Status
	if err = s.deriveSustainability(ctx, &record); err != nil {
		return domain.Record{}, err
	}

	updated, err := s.repo.Update(ctx, record)
	if err != nil {
		return domain.Record{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	if updated.IsApproved() {
		coins := greencoins.CoinsFor(updated.Monto, updated.IsSustainable)
		if err = s.repo.StampGreenCoins(ctx, updated.ID, coins); err != nil {
			return domain.Record{}, fmt.Errorf("s.repo.StampGreenCoins -> %w", err)
		}
		updated.GreenCoins = coins
	}

	if _, err = s.RecomputeUser(ctx, updated.UserID); err != nil {
		return domain.Record{}, fmt.Errorf("s.RecomputeUser -> %w", err)
	}

	return updated, nil
}

// DeleteRecord removes a record and recomputes the owner, so deleting an
// approved record takes its coins back out of the balance.
func (s *RecordService) DeleteRecord(ctx context.Context, id uint) error {
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if err = s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	if _, err = s.RecomputeUser(ctx, record.UserID); err != nil {
		return fmt.Errorf("s.RecomputeUser -> %w", err)
	}

	return nil
}

// RecomputeUser rebuilds the user's balance and gamification snapshot
// from scratch: earned coins from approved records minus coins spent on
// redemptions. Stale stamps found along the way are repaired. The
// recompute is idempotent, running it twice lands on the same totals.
func (s *RecordService) RecomputeUser(ctx context.Context, userID uint) (domain.User, error) {
	approved, err := s.repo.FindApprovedByUserID(ctx, userID)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.FindApprovedByUserID -> %w", err)
	}

	earned := 0
	for _, record := range approved {
		coins := greencoins.CoinsFor(record.Monto, record.IsSustainable)
		if coins != record.GreenCoins {
			if err = s.repo.StampGreenCoins(ctx, record.ID, coins); err != nil {
				return domain.User{}, fmt.Errorf("s.repo.StampGreenCoins -> %w", err)
			}
		}
		earned += coins
	}

	redemptions, err := s.redemptions.FindByUserID(ctx, userID)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.redemptions.FindByUserID -> %w", err)
	}

	spent := 0
	for _, redemption := range redemptions {
		spent += redemption.CoinsSpent
	}

	balance := earned - spent
	if balance < 0 {
		zap.L().Warn("recompute found negative balance, clamping to zero",
			zap.Uint("user_id", userID),
			zap.Int("earned", earned),
			zap.Int("spent", spent),
		)
		balance = 0
	}

	snapshot := s.table.SnapshotFor(balance)
	if err = s.userRepo.UpdateGamification(ctx, userID, balance, snapshot); err != nil {
		return domain.User{}, fmt.Errorf("s.userRepo.UpdateGamification -> %w", err)
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.userRepo.FindByID -> %w", err)
	}

	return user, nil
}

// RecomputeAll walks every user and recomputes them. It backs the
// offline repair tool and keeps going past individual failures.
func (s *RecordService) RecomputeAll(ctx context.Context) (int, error) {
	ids, err := s.userRepo.FindAllIDs(ctx)
	if err != nil {
		return 0, fmt.Errorf("s.userRepo.FindAllIDs -> %w", err)
	}

	repaired := 0
	for _, id := range ids {
		if _, err := s.RecomputeUser(ctx, id); err != nil {
			zap.L().Error("failed to recompute user", zap.Uint("user_id", id), zap.Error(err))
			continue
		}
		repaired++
	}

	return repaired, nil
}
