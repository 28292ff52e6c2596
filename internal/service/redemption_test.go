package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gea-verde/gea-api/internal/domain"
	"github.com/gea-verde/gea-api/internal/pkg/greencoins"
	"github.com/gea-verde/gea-api/internal/repository"
)

type fakeRedemptionStore struct {
	conflictsLeft int
	failWith      error
	attemptKeys   []string
	redeemed      []domain.Redemption
}

func (f *fakeRedemptionStore) RedeemProduct(_ context.Context, userID, productID uint, attemptKey string) (domain.Redemption, error) {
	f.attemptKeys = append(f.attemptKeys, attemptKey)

	if f.failWith != nil {
		return domain.Redemption{}, f.failWith
	}
	if f.conflictsLeft > 0 {
		f.conflictsLeft--
		return domain.Redemption{}, repository.ErrConcurrencyConflict
	}

	receipt := domain.Redemption{
		ID:         uint(len(f.redeemed) + 1),
		UserID:     userID,
		ProductID:  productID,
		CoinsSpent: 5,
		AttemptKey: attemptKey,
		RedeemedAt: time.Now().UTC(),
	}
	f.redeemed = append(f.redeemed, receipt)
	return receipt, nil
}

func (f *fakeRedemptionStore) FindByUserID(_ context.Context, userID uint) ([]domain.Redemption, error) {
	var result []domain.Redemption
	for _, r := range f.redeemed {
		if r.UserID == userID {
			result = append(result, r)
		}
	}
	return result, nil
}

func (f *fakeRedemptionStore) FindAll(_ context.Context) ([]domain.Redemption, error) {
	return f.redeemed, nil
}

type fakeProductReader struct {
	products map[uint]domain.Product
}

func (f *fakeProductReader) FindByID(_ context.Context, id uint) (domain.Product, error) {
	product, ok := f.products[id]
	if !ok {
		return domain.Product{}, repository.ErrProductNotFound
	}
	return product, nil
}

func newRedemptionService(store *fakeRedemptionStore, users *fakeUserRepo) (*RedemptionService, *fakeProductReader) {
	yesterday := time.Now().AddDate(0, 0, -1).Format("2006-01-02")
	nextWeek := time.Now().AddDate(0, 0, 7).Format("2006-01-02")

	products := &fakeProductReader{products: map[uint]domain.Product{
		1: {ID: 1, Name: "Bolsa reutilizable", CoinsRequired: 5, Stock: 3, Status: domain.ProductActive},
		2: {ID: 2, Name: "Descuento vencido", CoinsRequired: 5, Stock: 3, Status: domain.ProductInactive},
		3: {ID: 3, Name: "Promo terminada", CoinsRequired: 5, Stock: 3, Status: domain.ProductActive,
			ValidTo: yesterday},
		4: {ID: 4, Name: "Promo futura", CoinsRequired: 5, Stock: 3, Status: domain.ProductActive,
			ValidFrom: nextWeek},
	}}

	return NewRedemptionService(store, products, users, greencoins.DefaultTable()), products
}

func TestRedemptionService_Redeem(t *testing.T) {
	ctx := context.Background()
	store := &fakeRedemptionStore{}
	users := newFakeUserRepo(1)
	svc, _ := newRedemptionService(store, users)

	receipt, err := svc.Redeem(ctx, 1, 1)
	require.NoError(t, err)

	assert.Equal(t, uint(1), receipt.UserID)
	assert.Equal(t, uint(1), receipt.ProductID)
	assert.Equal(t, 5, receipt.CoinsSpent)
	assert.Len(t, store.attemptKeys, 1)
	assert.NotEmpty(t, store.attemptKeys[0])
}

func TestRedemptionService_RedeemInactiveProduct(t *testing.T) {
	ctx := context.Background()
	store := &fakeRedemptionStore{}
	users := newFakeUserRepo(1)
	svc, _ := newRedemptionService(store, users)

	_, err := svc.Redeem(ctx, 1, 2)
	assert.ErrorIs(t, err, ErrProductInactive)
	assert.Empty(t, store.attemptKeys, "inactive products must never reach the store")
}

func TestRedemptionService_RedeemOutsideValidityWindow(t *testing.T) {
	tests := []struct {
		name      string
		productID uint
	}{
		{"window already closed", 3},
		{"window not yet open", 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeRedemptionStore{}
			users := newFakeUserRepo(1)
			svc, _ := newRedemptionService(store, users)

			_, err := svc.Redeem(context.Background(), 1, tt.productID)
			assert.ErrorIs(t, err, ErrProductNotInWindow)
			assert.Empty(t, store.attemptKeys, "out-of-window products must never reach the store")
		})
	}
}

func TestRedemptionService_RedeemInsideValidityWindow(t *testing.T) {
	store := &fakeRedemptionStore{}
	users := newFakeUserRepo(1)
	svc, products := newRedemptionService(store, users)

	today := time.Now().Format("2006-01-02")
	products.products[5] = domain.Product{
		ID: 5, Name: "Promo de hoy", CoinsRequired: 5, Stock: 3, Status: domain.ProductActive,
		ValidFrom: today, ValidTo: today,
	}

	_, err := svc.Redeem(context.Background(), 1, 5)
	require.NoError(t, err, "the last valid day is still redeemable")
}

func TestRedemptionService_RedeemRetriesConflicts(t *testing.T) {
	ctx := context.Background()
	store := &fakeRedemptionStore{conflictsLeft: 2}
	users := newFakeUserRepo(1)
	svc, _ := newRedemptionService(store, users)

	receipt, err := svc.Redeem(ctx, 1, 1)
	require.NoError(t, err)
	assert.Len(t, store.attemptKeys, 3)

	// Retries reuse the attempt key so a racing duplicate resolves to
	// the same receipt instead of a second charge.
	assert.Equal(t, store.attemptKeys[0], store.attemptKeys[1])
	assert.Equal(t, store.attemptKeys[0], store.attemptKeys[2])
	assert.Equal(t, store.attemptKeys[0], receipt.AttemptKey)
}

func TestRedemptionService_RedeemGivesUpAfterMaxAttempts(t *testing.T) {
	ctx := context.Background()
	store := &fakeRedemptionStore{conflictsLeft: 10}
	users := newFakeUserRepo(1)
	svc, _ := newRedemptionService(store, users)

	_, err := svc.Redeem(ctx, 1, 1)
	assert.ErrorIs(t, err, ErrConcurrencyConflict)
	assert.Len(t, store.attemptKeys, redeemMaxAttempts)
}

func TestRedemptionService_RedeemBusinessErrorsAreNotRetried(t *testing.T) {
	tests := []struct {
		name     string
		failWith error
	}{
		{"insufficient coins", repository.ErrInsufficientCoins},
		{"out of stock", repository.ErrOutOfStock},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeRedemptionStore{failWith: tt.failWith}
			users := newFakeUserRepo(1)
			svc, _ := newRedemptionService(store, users)

			_, err := svc.Redeem(context.Background(), 1, 1)
			assert.ErrorIs(t, err, tt.failWith)
			assert.Len(t, store.attemptKeys, 1, "business rejections must not retry")
		})
	}
}

func TestRedemptionService_RedeemRefreshesSnapshot(t *testing.T) {
	ctx := context.Background()
	store := &fakeRedemptionStore{}
	users := newFakeUserRepo(1)

	// Balance after the store-side debit.
	user := users.users[1]
	user.GreenCoins = 600
	users.users[1] = user

	svc, _ := newRedemptionService(store, users)

	_, err := svc.Redeem(ctx, 1, 1)
	require.NoError(t, err)

	refreshed, err := users.FindByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, refreshed.Gamification.Level)
	assert.Equal(t, 600, refreshed.Gamification.Points)
}
