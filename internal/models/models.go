package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Username string `gorm:"uniqueIndex;not null" json:"username"`
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Password string `gorm:"not null" json:"-"`
	Role     string `gorm:"type:varchar(32);default:'admin'" json:"role"`
}

type Product struct {
	ID        uint           `gorm:"primarykey" json:"-"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	PublicID    string     `gorm:"uniqueIndex;not null" json:"id"`
	Name        string     `gorm:"not null" json:"name"`
	Brand       string     `json:"brand"`
	Description string     `gorm:"type:text" json:"description"`
	PriceCents  int64      `gorm:"not null" json:"price_cents"`
	ImageURL    string     `json:"image_url"`
	Volume      string     `json:"volume"`
	Notes       StringList `gorm:"type:jsonb" json:"notes"`
	InStock     bool       `gorm:"default:true" json:"in_stock"`
}

// StringList stores a flat string slice as a JSONB column.
type StringList []string

func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = StringList{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to scan StringList")
	}

	return json.Unmarshal(bytes, l)
}

func (l StringList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return nil, nil
	}
	return json.Marshal(l)
}

// ResolvedProduct is the display projection of a product reference used by
// the storefront renderer.
type ResolvedProduct struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Brand      string `json:"brand,omitempty"`
	PriceCents int64  `json:"price_cents"`
	ImageURL   string `json:"image_url,omitempty"`
	InStock    bool   `json:"in_stock"`
}

func (p *Product) Resolved() ResolvedProduct {
	return ResolvedProduct{
		ID:         p.PublicID,
		Name:       p.Name,
		Brand:      p.Brand,
		PriceCents: p.PriceCents,
		ImageURL:   p.ImageURL,
		InStock:    p.InStock,
	}
}
