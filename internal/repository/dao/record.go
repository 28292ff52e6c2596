package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrRecordNotFound = errors.New("record not found")

type Record struct {
	ID         uint  `gorm:"primaryKey"`
	UserID     uint  `gorm:"index;not null"`
	ClientID   *uint `gorm:"index"`
	ComercioID *uint `gorm:"index"`

	Fecha       string
	Monto       float64 `gorm:"not null"`
	Descripcion string
	Rubro       string
	CUIT        string `gorm:"column:cuit"`

	Status        string `gorm:"index;not null;default:'pending'"`
	GreenCoins    int    `gorm:"not null;default:0"`
	IsSustainable bool   `gorm:"not null;default:false"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type RecordDAO struct {
	db *gorm.DB
}

func NewRecordDAO(db *gorm.DB) *RecordDAO {
	return &RecordDAO{
		db: db,
	}
}

func (d *RecordDAO) Insert(ctx context.Context, record Record) (Record, error) {
	result := d.db.WithContext(ctx).Create(&record)
	if result.Error != nil {
		return Record{}, result.Error
	}

	return record, nil
}

func (d *RecordDAO) FindByID(ctx context.Context, id uint) (Record, error) {
	var record Record

	result := d.db.WithContext(ctx).First(&record, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Record{}, ErrRecordNotFound
		}

		return Record{}, result.Error
	}

	return record, nil
}

func (d *RecordDAO) FindAll(ctx context.Context) ([]Record, error) {
	var records []Record

	result := d.db.WithContext(ctx).Order("id").Find(&records)
	if result.Error != nil {
		return nil, result.Error
	}

	return records, nil
}

func (d *RecordDAO) FindByUserID(ctx context.Context, userID uint) ([]Record, error) {
	var records []Record

	result := d.db.WithContext(ctx).Where("user_id = ?", userID).Order("id").Find(&records)
	if result.Error != nil {
		return nil, result.Error
	}

	return records, nil
}

// FindApprovedByUserID returns the records that count towards the
// user's balance.
func (d *RecordDAO) FindApprovedByUserID(ctx context.Context, userID uint) ([]Record, error) {
	var records []Record

	result := d.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, "approved").
		Order("id").
		Find(&records)
	if result.Error != nil {
		return nil, result.Error
	}

	return records, nil
}

func (d *RecordDAO) Update(ctx context.Context, record Record) (Record, error) {
	result := d.db.WithContext(ctx).Model(&Record{}).Where("id = ?", record.ID).Updates(map[string]any{
		"user_id":        record.UserID,
		"client_id":      record.ClientID,
		"comercio_id":    record.ComercioID,
		"fecha":          record.Fecha,
		"monto":          record.Monto,
		"descripcion":    record.Descripcion,
		"rubro":          record.Rubro,
		"cuit":           record.CUIT,
		"status":         record.Status,
		"is_sustainable": record.IsSustainable,
	})
	if result.Error != nil {
		return Record{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Record{}, ErrRecordNotFound
	}

	return d.FindByID(ctx, record.ID)
}

// StampGreenCoins writes the computed award onto the record. An
// idempotent overwrite: re-running the handler writes the same value.
func (d *RecordDAO) StampGreenCoins(ctx context.Context, recordID uint, coins int) error {
	result := d.db.WithContext(ctx).Model(&Record{}).Where("id = ?", recordID).Update("green_coins", coins)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRecordNotFound
	}

	return nil
}

func (d *RecordDAO) Delete(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&Record{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRecordNotFound
	}

	return nil
}
