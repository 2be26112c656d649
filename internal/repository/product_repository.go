package repository

import (
	"perfume-shop-backend/internal/models"

	"gorm.io/gorm"
)

type ProductRepository interface {
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id uint) error
	GetByID(id uint) (*models.Product, error)
	GetByPublicID(publicID string) (*models.Product, error)
	GetByPublicIDs(publicIDs []string) ([]models.Product, error)
	GetAll() ([]models.Product, error)
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(product *models.Product) error {
	return r.db.Create(product).Error
}

func (r *productRepository) Update(product *models.Product) error {
	return r.db.Save(product).Error
}

func (r *productRepository) Delete(id uint) error {
	return r.db.Delete(&models.Product{}, id).Error
}

func (r *productRepository) GetByID(id uint) (*models.Product, error) {
	var product models.Product
	if err := r.db.First(&product, id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) GetByPublicID(publicID string) (*models.Product, error) {
	var product models.Product
	if err := r.db.Where("public_id = ?", publicID).First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// GetByPublicIDs returns whatever subset of the requested ids exists.
// Callers must tolerate missing ids.
func (r *productRepository) GetByPublicIDs(publicIDs []string) ([]models.Product, error) {
	if len(publicIDs) == 0 {
		return []models.Product{}, nil
	}

	var products []models.Product
	if err := r.db.Where("public_id IN ?", publicIDs).Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *productRepository) GetAll() ([]models.Product, error) {
	var products []models.Product
	if err := r.db.Order("name ASC").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}
