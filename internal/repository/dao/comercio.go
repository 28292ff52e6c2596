package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrComercioNotFound = errors.New("comercio not found")

type Comercio struct {
	ID uint `gorm:"primaryKey"`

	Name        string `gorm:"not null"`
	Address     string
	Phone       string
	Description string
	ImageURL    string
	Tags        []string `gorm:"serializer:json"`
	Rubro       string

	Lat float64
	Lng float64

	IsSustainable bool   `gorm:"not null;default:false"`
	CUIT          string `gorm:"column:cuit;index"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type ComercioDAO struct {
	db *gorm.DB
}

func NewComercioDAO(db *gorm.DB) *ComercioDAO {
	return &ComercioDAO{
		db: db,
	}
}

func (d *ComercioDAO) Insert(ctx context.Context, comercio Comercio) (Comercio, error) {
	result := d.db.WithContext(ctx).Create(&comercio)
	if result.Error != nil {
		return Comercio{}, result.Error
	}

	return comercio, nil
}

func (d *ComercioDAO) FindByID(ctx context.Context, id uint) (Comercio, error) {
	var comercio Comercio

	result := d.db.WithContext(ctx).First(&comercio, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Comercio{}, ErrComercioNotFound
		}

		return Comercio{}, result.Error
	}

	return comercio, nil
}

func (d *ComercioDAO) FindByCUIT(ctx context.Context, cuit string) (Comercio, error) {
	var comercio Comercio

	result := d.db.WithContext(ctx).First(&comercio, "cuit = ?", cuit)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Comercio{}, ErrComercioNotFound
		}

		return Comercio{}, result.Error
	}

	return comercio, nil
}

func (d *ComercioDAO) FindAll(ctx context.Context) ([]Comercio, error) {
	var comercios []Comercio

	result := d.db.WithContext(ctx).Order("id").Find(&comercios)
	if result.Error != nil {
		return nil, result.Error
	}

	return comercios, nil
}

func (d *ComercioDAO) Update(ctx context.Context, comercio Comercio) (Comercio, error) {
	result := d.db.WithContext(ctx).Model(&Comercio{}).Where("id = ?", comercio.ID).
		Select("name", "address", "phone", "description", "image_url", "tags",
			"rubro", "lat", "lng", "is_sustainable", "cuit").
		Updates(&comercio)
	if result.Error != nil {
		return Comercio{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Comercio{}, ErrComercioNotFound
	}

	return d.FindByID(ctx, comercio.ID)
}

func (d *ComercioDAO) Delete(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&Comercio{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrComercioNotFound
	}

	return nil
}
