package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gea-verde/gea-api/internal/domain"
	"github.com/gea-verde/gea-api/internal/pkg/greencoins"
	"github.com/gea-verde/gea-api/internal/repository"
)

type fakeRecordRepo struct {
	records map[uint]domain.Record
	nextID  uint
}

func newFakeRecordRepo() *fakeRecordRepo {
	return &fakeRecordRepo{records: make(map[uint]domain.Record), nextID: 1}
}

func (f *fakeRecordRepo) Create(_ context.Context, record domain.Record) (domain.Record, error) {
	record.ID = f.nextID
	f.nextID++
	f.records[record.ID] = record
	return record, nil
}

func (f *fakeRecordRepo) FindByID(_ context.Context, id uint) (domain.Record, error) {
	record, ok := f.records[id]
	if !ok {
		return domain.Record{}, repository.ErrRecordNotFound
	}
	return record, nil
}

func (f *fakeRecordRepo) FindAll(_ context.Context) ([]domain.Record, error) {
	var all []domain.Record
	for _, r := range f.records {
		all = append(all, r)
	}
	return all, nil
}

func (f *fakeRecordRepo) FindByUserID(_ context.Context, userID uint) ([]domain.Record, error) {
	var result []domain.Record
	for _, r := range f.records {
		if r.UserID == userID {
			result = append(result, r)
		}
	}
	return result, nil
}

func (f *fakeRecordRepo) FindApprovedByUserID(_ context.Context, userID uint) ([]domain.Record, error) {
	var result []domain.Record
	for _, r := range f.records {
		if r.UserID == userID && r.Status == domain.RecordApproved {
			result = append(result, r)
		}
	}
	return result, nil
}

func (f *fakeRecordRepo) Update(_ context.Context, record domain.Record) (domain.Record, error) {
	existing, ok := f.records[record.ID]
	if !ok {
		return domain.Record{}, repository.ErrRecordNotFound
	}
	record.GreenCoins = existing.GreenCoins
	f.records[record.ID] = record
	return record, nil
}

func (f *fakeRecordRepo) StampGreenCoins(_ context.Context, recordID uint, coins int) error {
	record, ok := f.records[recordID]
	if !ok {
		return repository.ErrRecordNotFound
	}
	record.GreenCoins = coins
	f.records[recordID] = record
	return nil
}

func (f *fakeRecordRepo) Delete(_ context.Context, id uint) error {
	if _, ok := f.records[id]; !ok {
		return repository.ErrRecordNotFound
	}
	delete(f.records, id)
	return nil
}

type fakeUserRepo struct {
	users map[uint]domain.User
}

func newFakeUserRepo(ids ...uint) *fakeUserRepo {
	users := make(map[uint]domain.User)
	for _, id := range ids {
		users[id] = domain.User{ID: id, Status: domain.UserActive}
	}
	return &fakeUserRepo{users: users}
}

func (f *fakeUserRepo) FindByID(_ context.Context, id uint) (domain.User, error) {
	user, ok := f.users[id]
	if !ok {
		return domain.User{}, repository.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) FindAllIDs(_ context.Context) ([]uint, error) {
	var ids []uint
	for id := range f.users {
		ids = append(ids, id)
	}
	return ids, nil
}

func (f *fakeUserRepo) UpdateGamification(_ context.Context, userID uint, greenCoins int, snapshot greencoins.Snapshot) error {
	user, ok := f.users[userID]
	if !ok {
		return repository.ErrUserNotFound
	}
	user.GreenCoins = greenCoins
	user.Gamification = snapshot
	f.users[userID] = user
	return nil
}

type fakeRedemptionReader struct {
	redemptions []domain.Redemption
}

func (f *fakeRedemptionReader) FindByUserID(_ context.Context, userID uint) ([]domain.Redemption, error) {
	var result []domain.Redemption
	for _, r := range f.redemptions {
		if r.UserID == userID {
			result = append(result, r)
		}
	}
	return result, nil
}

type fakeComercioReader struct {
	comercios map[uint]domain.Comercio
}

func (f *fakeComercioReader) FindByID(_ context.Context, id uint) (domain.Comercio, error) {
	comercio, ok := f.comercios[id]
	if !ok {
		return domain.Comercio{}, repository.ErrComercioNotFound
	}
	return comercio, nil
}

func newRecordService(records *fakeRecordRepo, users *fakeUserRepo, redemptions *fakeRedemptionReader) *RecordService {
	return NewRecordService(records, users, redemptions, &fakeComercioReader{}, greencoins.DefaultTable())
}

func newRecordServiceWithComercios(records *fakeRecordRepo, users *fakeUserRepo, comercios *fakeComercioReader) *RecordService {
	return NewRecordService(records, users, &fakeRedemptionReader{}, comercios, greencoins.DefaultTable())
}

func TestRecordService_CreateRecord(t *testing.T) {
	ctx := context.Background()
	records := newFakeRecordRepo()
	users := newFakeUserRepo(1)
	svc := newRecordService(records, users, &fakeRedemptionReader{})

	created, err := svc.CreateRecord(ctx, domain.Record{
		UserID:        1,
		Monto:         1000,
		IsSustainable: true,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.RecordPending, created.Status)
	assert.Zero(t, created.GreenCoins, "pending records must not carry coins")

	user, err := users.FindByID(ctx, 1)
	require.NoError(t, err)
	assert.Zero(t, user.GreenCoins, "pending records must not move the balance")
}

func TestRecordService_ApprovalAggregatesBalance(t *testing.T) {
	ctx := context.Background()
	records := newFakeRecordRepo()
	users := newFakeUserRepo(1)
	svc := newRecordService(records, users, &fakeRedemptionReader{})

	first, err := svc.CreateRecord(ctx, domain.Record{UserID: 1, Monto: 1000, IsSustainable: true})
	require.NoError(t, err)
	second, err := svc.CreateRecord(ctx, domain.Record{UserID: 1, Monto: 400, IsSustainable: true})
	require.NoError(t, err)

	approved, err := svc.UpdateRecordStatus(ctx, first.ID, domain.RecordApproved)
	require.NoError(t, err)
	assert.Equal(t, 2, approved.GreenCoins)

	user, err := users.FindByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, user.GreenCoins)

	_, err = svc.UpdateRecordStatus(ctx, second.ID, domain.RecordApproved)
	require.NoError(t, err)

	user, err = users.FindByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, user.GreenCoins)
	assert.Equal(t, 1, user.Gamification.Level)
	assert.Equal(t, "Explorador Ecológico", user.Gamification.Title)
	assert.Equal(t, 500, user.Gamification.NextLevelPoints)
}

func TestRecordService_SustainabilityComesFromComercio(t *testing.T) {
	ctx := context.Background()
	records := newFakeRecordRepo()
	users := newFakeUserRepo(1)
	comercios := &fakeComercioReader{comercios: map[uint]domain.Comercio{
		10: {ID: 10, Name: "Verdulería La Huerta", IsSustainable: true},
		11: {ID: 11, Name: "Kiosco 24", IsSustainable: false},
	}}
	svc := newRecordServiceWithComercios(records, users, comercios)

	sustainableID := uint(10)
	created, err := svc.CreateRecord(ctx, domain.Record{
		UserID:        1,
		Monto:         1000,
		ComercioID:    &sustainableID,
		IsSustainable: false, // the claimant's word does not count
	})
	require.NoError(t, err)
	assert.True(t, created.IsSustainable)

	_, err = svc.UpdateRecordStatus(ctx, created.ID, domain.RecordApproved)
	require.NoError(t, err)

	user, err := users.FindByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, user.GreenCoins)

	nonSustainableID := uint(11)
	inflated, err := svc.CreateRecord(ctx, domain.Record{
		UserID:        1,
		Monto:         50000,
		ComercioID:    &nonSustainableID,
		IsSustainable: true,
	})
	require.NoError(t, err)
	assert.False(t, inflated.IsSustainable)

	_, err = svc.UpdateRecordStatus(ctx, inflated.ID, domain.RecordApproved)
	require.NoError(t, err)

	user, err = users.FindByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, user.GreenCoins, "a claim against a non-sustainable business earns nothing")
}

func TestRecordService_CreateRecordUnknownComercio(t *testing.T) {
	ctx := context.Background()
	svc := newRecordServiceWithComercios(newFakeRecordRepo(), newFakeUserRepo(1), &fakeComercioReader{})

	missingID := uint(404)
	_, err := svc.CreateRecord(ctx, domain.Record{
		UserID:     1,
		Monto:      1000,
		ComercioID: &missingID,
	})
	assert.ErrorIs(t, err, ErrComercioNotFound)
}

func TestRecordService_NonSustainableEarnsNothing(t *testing.T) {
	ctx := context.Background()
	records := newFakeRecordRepo()
	users := newFakeUserRepo(1)
	svc := newRecordService(records, users, &fakeRedemptionReader{})

	created, err := svc.CreateRecord(ctx, domain.Record{UserID: 1, Monto: 10000, IsSustainable: false})
	require.NoError(t, err)

	approved, err := svc.UpdateRecordStatus(ctx, created.ID, domain.RecordApproved)
	require.NoError(t, err)
	assert.Zero(t, approved.GreenCoins)

	user, err := users.FindByID(ctx, 1)
	require.NoError(t, err)
	assert.Zero(t, user.GreenCoins)
}

func TestRecordService_ApprovalLevelsUp(t *testing.T) {
	ctx := context.Background()
	records := newFakeRecordRepo()
	users := newFakeUserRepo(1)
	svc := newRecordService(records, users, &fakeRedemptionReader{})

	// 301000 / 500 rounded up is 602 coins, past the 500 threshold.
	created, err := svc.CreateRecord(ctx, domain.Record{UserID: 1, Monto: 301000, IsSustainable: true})
	require.NoError(t, err)

	_, err = svc.UpdateRecordStatus(ctx, created.ID, domain.RecordApproved)
	require.NoError(t, err)

	user, err := users.FindByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 602, user.GreenCoins)
	assert.Equal(t, 2, user.Gamification.Level)
	assert.Equal(t, "Guardián Verde", user.Gamification.Title)
	assert.Equal(t, 602, user.Gamification.Points)
	assert.Equal(t, 1500, user.Gamification.NextLevelPoints)
}

func TestRecordService_ReapproveIsIdempotent(t *testing.T) {
	ctx := context.Background()
	records := newFakeRecordRepo()
	users := newFakeUserRepo(1)
	svc := newRecordService(records, users, &fakeRedemptionReader{})

	created, err := svc.CreateRecord(ctx, domain.Record{UserID: 1, Monto: 1000, IsSustainable: true})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err = svc.UpdateRecordStatus(ctx, created.ID, domain.RecordApproved)
		require.NoError(t, err)
	}

	user, err := users.FindByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, user.GreenCoins, "re-approving must not double count")
}

func TestRecordService_ApprovedCannotBeRejected(t *testing.T) {
	ctx := context.Background()
	records := newFakeRecordRepo()
	users := newFakeUserRepo(1)
	svc := newRecordService(records, users, &fakeRedemptionReader{})

	created, err := svc.CreateRecord(ctx, domain.Record{UserID: 1, Monto: 1000, IsSustainable: true})
	require.NoError(t, err)

	_, err = svc.UpdateRecordStatus(ctx, created.ID, domain.RecordApproved)
	require.NoError(t, err)

	_, err = svc.UpdateRecordStatus(ctx, created.ID, domain.RecordRejected)
	assert.ErrorIs(t, err, ErrInvalidStatusTransition)
}

func TestRecordService_DeleteRecomputesBalance(t *testing.T) {
	ctx := context.Background()
	records := newFakeRecordRepo()
	users := newFakeUserRepo(1)
	svc := newRecordService(records, users, &fakeRedemptionReader{})

	first, err := svc.CreateRecord(ctx, domain.Record{UserID: 1, Monto: 1000, IsSustainable: true})
	require.NoError(t, err)
	second, err := svc.CreateRecord(ctx, domain.Record{UserID: 1, Monto: 2500, IsSustainable: true})
	require.NoError(t, err)

	_, err = svc.UpdateRecordStatus(ctx, first.ID, domain.RecordApproved)
	require.NoError(t, err)
	_, err = svc.UpdateRecordStatus(ctx, second.ID, domain.RecordApproved)
	require.NoError(t, err)

	user, err := users.FindByID(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, 7, user.GreenCoins)

	err = svc.DeleteRecord(ctx, second.ID)
	require.NoError(t, err)

	user, err = users.FindByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, user.GreenCoins)
}

func TestRecordService_RecomputeSubtractsRedemptions(t *testing.T) {
	ctx := context.Background()
	records := newFakeRecordRepo()
	users := newFakeUserRepo(1)
	redemptions := &fakeRedemptionReader{redemptions: []domain.Redemption{
		{UserID: 1, CoinsSpent: 5},
	}}
	svc := newRecordService(records, users, redemptions)

	created, err := svc.CreateRecord(ctx, domain.Record{UserID: 1, Monto: 5000, IsSustainable: true})
	require.NoError(t, err)

	_, err = svc.UpdateRecordStatus(ctx, created.ID, domain.RecordApproved)
	require.NoError(t, err)

	user, err := users.FindByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 5, user.GreenCoins, "10 earned minus 5 redeemed")
}

func TestRecordService_RecomputeRepairsStaleStamps(t *testing.T) {
	ctx := context.Background()
	records := newFakeRecordRepo()
	users := newFakeUserRepo(1)
	svc := newRecordService(records, users, &fakeRedemptionReader{})

	// Simulate a row written before the stamp existed.
	records.records[99] = domain.Record{
		ID:            99,
		UserID:        1,
		Monto:         1500,
		IsSustainable: true,
		Status:        domain.RecordApproved,
		GreenCoins:    0,
	}

	user, err := svc.RecomputeUser(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, user.GreenCoins)

	repaired, err := records.FindByID(ctx, 99)
	require.NoError(t, err)
	assert.Equal(t, 3, repaired.GreenCoins)
}

func TestRecordService_RecomputeAll(t *testing.T) {
	ctx := context.Background()
	records := newFakeRecordRepo()
	users := newFakeUserRepo(1, 2)
	svc := newRecordService(records, users, &fakeRedemptionReader{})

	records.records[1] = domain.Record{ID: 1, UserID: 1, Monto: 1000, IsSustainable: true, Status: domain.RecordApproved}
	records.records[2] = domain.Record{ID: 2, UserID: 2, Monto: 500, IsSustainable: true, Status: domain.RecordApproved}

	repaired, err := svc.RecomputeAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, repaired)

	first, _ := users.FindByID(ctx, 1)
	second, _ := users.FindByID(ctx, 2)
	assert.Equal(t, 2, first.GreenCoins)
	assert.Equal(t, 1, second.GreenCoins)
}
