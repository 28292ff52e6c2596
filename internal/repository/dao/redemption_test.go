package dao

import (
	"context"
	"fmt"
	"log"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	testPostgresTag = "16-alpine"
	testDBName      = "test"
	testDBUser      = "test"
	testDBPassword  = "test"
)

var testDB *gorm.DB

func TestMain(m *testing.M) {
	code, err := runMain(m)
	if err != nil {
		log.Fatal(err)
	}
	os.Exit(code)
}

func runMain(m *testing.M) (int, error) {
	dockerPool, err := dockertest.NewPool("")
	if err != nil {
		return 1, fmt.Errorf("failed to initialize a docker pool: %w", err)
	}

	const pgPort = "5432/tcp"
	pgContainer, err := dockerPool.RunWithOptions(
		&dockertest.RunOptions{
			Repository: "postgres",
			Tag:        testPostgresTag,
			Env: []string{
				"POSTGRES_USER=" + testDBUser,
				"POSTGRES_PASSWORD=" + testDBPassword,
				"POSTGRES_DB=" + testDBName,
			},
			ExposedPorts: []string{pgPort},
		},
		func(config *docker.HostConfig) {
			config.AutoRemove = true
			config.RestartPolicy = docker.RestartPolicy{Name: "no"}
		},
	)
	if err != nil {
		return 1, fmt.Errorf("failed to run postgres container: %w", err)
	}
	defer func() {
		if err := dockerPool.Purge(pgContainer); err != nil {
			log.Printf("failed to purge the postgres container: %v", err)
		}
	}()

	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s/%s?sslmode=disable",
		testDBUser,
		testDBPassword,
		pgContainer.GetHostPort(pgPort),
		testDBName,
	)

	dockerPool.MaxWait = 30 * time.Second
	if err := dockerPool.Retry(func() error {
		testDB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		if err != nil {
			return fmt.Errorf("failed to open the DB: %w", err)
		}

		sqlDB, err := testDB.DB()
		if err != nil {
			return err
		}
		return sqlDB.Ping()
	}); err != nil {
		return 1, fmt.Errorf("retry failed: %w", err)
	}

	if err := InitTables(testDB); err != nil {
		return 1, fmt.Errorf("failed to migrate test tables: %w", err)
	}

	return m.Run(), nil
}

func seedRedeemFixtures(t *testing.T, coins, cost, stock int) (User, Product) {
	t.Helper()

	user := User{
		Email:      fmt.Sprintf("redeem-%d@test.local", time.Now().UnixNano()),
		Password:   "irrelevant",
		GreenCoins: coins,
	}
	require.NoError(t, testDB.Create(&user).Error)

	product := Product{
		Name:          "Bolsa reutilizable",
		CoinsRequired: cost,
		Stock:         stock,
		Status:        "active",
	}
	require.NoError(t, testDB.Create(&product).Error)

	t.Cleanup(func() {
		testDB.Where("user_id = ?", user.ID).Delete(&Redemption{})
		testDB.Delete(&Product{}, product.ID)
		testDB.Delete(&User{}, user.ID)
	})

	return user, product
}

func countReceipts(t *testing.T, userID uint) int64 {
	t.Helper()

	var count int64
	require.NoError(t, testDB.Model(&Redemption{}).Where("user_id = ?", userID).Count(&count).Error)

	return count
}

func TestRedemptionDAO_RedeemProduct(t *testing.T) {
	ctx := context.Background()
	d := NewRedemptionDAO(testDB)
	user, product := seedRedeemFixtures(t, 10, 3, 5)

	receipt, err := d.RedeemProduct(ctx, user.ID, product.ID, "attempt-happy-path")
	require.NoError(t, err)

	assert.Equal(t, user.ID, receipt.UserID)
	assert.Equal(t, product.ID, receipt.ProductID)
	assert.Equal(t, product.Name, receipt.ProductName)
	assert.Equal(t, 3, receipt.CoinsSpent)

	var reloadedUser User
	require.NoError(t, testDB.First(&reloadedUser, user.ID).Error)
	assert.Equal(t, 7, reloadedUser.GreenCoins)

	var reloadedProduct Product
	require.NoError(t, testDB.First(&reloadedProduct, product.ID).Error)
	assert.Equal(t, 4, reloadedProduct.Stock)

	assert.EqualValues(t, 1, countReceipts(t, user.ID))
}

func TestRedemptionDAO_ConcurrentRedemptionsSingleWinner(t *testing.T) {
	ctx := context.Background()
	d := NewRedemptionDAO(testDB)

	// Exactly enough coins and stock for one redemption.
	user, product := seedRedeemFixtures(t, 5, 5, 1)

	errs := make(chan error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(attempt int) {
			defer wg.Done()
			_, err := d.RedeemProduct(ctx, user.ID, product.ID, fmt.Sprintf("attempt-race-%d", attempt))
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)

	var succeeded, failed int
	for err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		failed++
		// The loser runs after the winner committed, so it sees the
		// drained balance first.
		assert.ErrorIs(t, err, ErrInsufficientCoins)
	}
	assert.Equal(t, 1, succeeded, "exactly one of two racing redemptions may win")
	assert.Equal(t, 1, failed)

	var reloadedUser User
	require.NoError(t, testDB.First(&reloadedUser, user.ID).Error)
	assert.Equal(t, 0, reloadedUser.GreenCoins)

	var reloadedProduct Product
	require.NoError(t, testDB.First(&reloadedProduct, product.ID).Error)
	assert.Equal(t, 0, reloadedProduct.Stock)

	assert.EqualValues(t, 1, countReceipts(t, user.ID))
}

func TestRedemptionDAO_BalanceCheckedBeforeStock(t *testing.T) {
	ctx := context.Background()
	d := NewRedemptionDAO(testDB)

	// Both preconditions fail; the balance check must win.
	user, product := seedRedeemFixtures(t, 0, 5, 0)

	_, err := d.RedeemProduct(ctx, user.ID, product.ID, "attempt-broke-and-empty")
	assert.ErrorIs(t, err, ErrInsufficientCoins)

	var reloadedUser User
	require.NoError(t, testDB.First(&reloadedUser, user.ID).Error)
	assert.Equal(t, 0, reloadedUser.GreenCoins)

	var reloadedProduct Product
	require.NoError(t, testDB.First(&reloadedProduct, product.ID).Error)
	assert.Equal(t, 0, reloadedProduct.Stock)

	assert.EqualValues(t, 0, countReceipts(t, user.ID), "a rejected redemption must write nothing")
}

func TestRedemptionDAO_OutOfStock(t *testing.T) {
	ctx := context.Background()
	d := NewRedemptionDAO(testDB)
	user, product := seedRedeemFixtures(t, 100, 5, 0)

	_, err := d.RedeemProduct(ctx, user.ID, product.ID, "attempt-no-stock")
	assert.ErrorIs(t, err, ErrOutOfStock)

	var reloadedUser User
	require.NoError(t, testDB.First(&reloadedUser, user.ID).Error)
	assert.Equal(t, 100, reloadedUser.GreenCoins, "a failed redemption must not debit")

	assert.EqualValues(t, 0, countReceipts(t, user.ID))
}

func TestRedemptionDAO_ReplaysAttemptKey(t *testing.T) {
	ctx := context.Background()
	d := NewRedemptionDAO(testDB)
	user, product := seedRedeemFixtures(t, 10, 3, 5)

	first, err := d.RedeemProduct(ctx, user.ID, product.ID, "attempt-replayed")
	require.NoError(t, err)

	second, err := d.RedeemProduct(ctx, user.ID, product.ID, "attempt-replayed")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID, "the same attempt must resolve to the same receipt")

	var reloadedUser User
	require.NoError(t, testDB.First(&reloadedUser, user.ID).Error)
	assert.Equal(t, 7, reloadedUser.GreenCoins, "a replay must not charge twice")

	var reloadedProduct Product
	require.NoError(t, testDB.First(&reloadedProduct, product.ID).Error)
	assert.Equal(t, 4, reloadedProduct.Stock)

	assert.EqualValues(t, 1, countReceipts(t, user.ID))
}

func TestRedemptionDAO_UnknownRows(t *testing.T) {
	ctx := context.Background()
	d := NewRedemptionDAO(testDB)
	user, _ := seedRedeemFixtures(t, 10, 3, 5)

	_, err := d.RedeemProduct(ctx, 999999, 999999, "attempt-no-user")
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = d.RedeemProduct(ctx, user.ID, 999999, "attempt-no-product")
	assert.ErrorIs(t, err, ErrProductNotFound)
}
