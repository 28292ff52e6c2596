package dao

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrInsufficientCoins   = errors.New("insufficient green coins")
	ErrOutOfStock          = errors.New("product out of stock")
	ErrConcurrencyConflict = errors.New("conflicting concurrent redemption")
)

type Redemption struct {
	ID          uint      `gorm:"primaryKey"`
	UserID      uint      `gorm:"index;not null"`
	ProductID   uint      `gorm:"index;not null"`
	ProductName string    `gorm:"not null"`
	CoinsSpent  int       `gorm:"not null"`
	AttemptKey  string    `gorm:"uniqueIndex;not null"`
	RedeemedAt  time.Time `gorm:"not null"`
}

type RedemptionDAO struct {
	db *gorm.DB
}

func NewRedemptionDAO(db *gorm.DB) *RedemptionDAO {
	return &RedemptionDAO{
		db: db,
	}
}

// RedeemProduct validates and applies a redemption as one database
// transaction. The user and product rows are locked for its duration,
// so the precondition checks and the three writes (debit, stock
// decrement, receipt) see a single consistent snapshot and commit
// together or not at all.
func (d *RedemptionDAO) RedeemProduct(ctx context.Context, userID, productID uint, attemptKey string) (Redemption, error) {
	var receipt Redemption

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// A retry of an attempt whose outcome was unknown must not
		// charge twice: return the receipt already written, if any.
		var existing Redemption
		err := tx.First(&existing, "attempt_key = ?", attemptKey).Error
		if err == nil {
			receipt = existing
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		var user User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		var product Product
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&product, productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductNotFound
			}
			return err
		}

		// Balance before stock, matching the reference precedence.
		if user.GreenCoins < product.CoinsRequired {
			return ErrInsufficientCoins
		}
		if product.Stock <= 0 {
			return ErrOutOfStock
		}

		if err := tx.Model(&User{}).Where("id = ?", user.ID).
			Update("green_coins", gorm.Expr("green_coins - ?", product.CoinsRequired)).Error; err != nil {
			return err
		}

		if err := tx.Model(&Product{}).Where("id = ?", product.ID).
			Update("stock", gorm.Expr("stock - 1")).Error; err != nil {
			return err
		}

		receipt = Redemption{
			UserID:      user.ID,
			ProductID:   product.ID,
			ProductName: product.Name,
			CoinsSpent:  product.CoinsRequired,
			AttemptKey:  attemptKey,
			RedeemedAt:  time.Now().UTC(),
		}

		return tx.Create(&receipt).Error
	})
	if err != nil {
		return Redemption{}, mapConflictErr(err)
	}

	return receipt, nil
}

func (d *RedemptionDAO) FindByUserID(ctx context.Context, userID uint) ([]Redemption, error) {
	var redemptions []Redemption

	result := d.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("redeemed_at DESC").
		Find(&redemptions)
	if result.Error != nil {
		return nil, result.Error
	}

	return redemptions, nil
}

func (d *RedemptionDAO) FindAll(ctx context.Context) ([]Redemption, error) {
	var redemptions []Redemption

	result := d.db.WithContext(ctx).Order("redeemed_at DESC").Find(&redemptions)
	if result.Error != nil {
		return nil, result.Error
	}

	return redemptions, nil
}

func mapConflictErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.SerializationFailure, pgerrcode.DeadlockDetected, pgerrcode.LockNotAvailable:
			return ErrConcurrencyConflict
		}
	}

	return err
}
