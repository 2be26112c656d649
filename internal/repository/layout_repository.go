package repository

import (
	"time"

	"perfume-shop-backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LayoutRepository interface {
	GetAll() ([]models.Layout, error)
	GetByPageID(pageID string) (*models.Layout, error)
	GetByPagePath(path string) (*models.Layout, error)
	Upsert(layout *models.Layout) error
}

type layoutRepository struct {
	db *gorm.DB
}

func NewLayoutRepository(db *gorm.DB) LayoutRepository {
	return &layoutRepository{db: db}
}

func (r *layoutRepository) GetAll() ([]models.Layout, error) {
	var layouts []models.Layout
	if err := r.db.Order("page_name ASC").Find(&layouts).Error; err != nil {
		return nil, err
	}
	return layouts, nil
}

func (r *layoutRepository) GetByPageID(pageID string) (*models.Layout, error) {
	var layout models.Layout
	if err := r.db.Where("page_id = ?", pageID).First(&layout).Error; err != nil {
		return nil, err
	}
	return &layout, nil
}

func (r *layoutRepository) GetByPagePath(path string) (*models.Layout, error) {
	var layout models.Layout
	if err := r.db.Where("page_path = ?", path).First(&layout).Error; err != nil {
		return nil, err
	}
	return &layout, nil
}

// Upsert replaces the stored layout for layout.PageID in a single atomic
// write, creating the row when absent. The whole sections column is
// overwritten; there is no partial update of individual sections.
func (r *layoutRepository) Upsert(layout *models.Layout) error {
	layout.UpdatedAt = time.Now().UTC()
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "page_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"page_name", "page_path", "sections", "updated_at"}),
	}).Create(layout).Error
}
