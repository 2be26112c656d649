package service

import (
	"errors"
	"fmt"
	"strings"

	"perfume-shop-backend/internal/models"
	"perfume-shop-backend/internal/repository"
	"perfume-shop-backend/pkg/cache"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductService struct {
	productRepo repository.ProductRepository
	cache       *cache.Cache
}

func NewProductService(productRepo repository.ProductRepository, c *cache.Cache) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		cache:       c,
	}
}

func (s *ProductService) Create(req models.CreateProductRequest) (*models.Product, error) {
	product := &models.Product{
		PublicID:    uuid.New().String(),
		Name:        strings.TrimSpace(req.Name),
		Brand:       strings.TrimSpace(req.Brand),
		Description: req.Description,
		PriceCents:  req.PriceCents,
		ImageURL:    req.ImageURL,
		Volume:      req.Volume,
		Notes:       req.Notes,
		InStock:     true,
	}
	if req.InStock != nil {
		product.InStock = *req.InStock
	}

	if err := s.productRepo.Create(product); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	s.invalidate()
	return product, nil
}

func (s *ProductService) Update(publicID string, req models.UpdateProductRequest) (*models.Product, error) {
	product, err := s.getByPublicID(publicID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		product.Name = strings.TrimSpace(*req.Name)
	}
	if req.Brand != nil {
		product.Brand = strings.TrimSpace(*req.Brand)
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.PriceCents != nil {
		product.PriceCents = *req.PriceCents
	}
	if req.ImageURL != nil {
		product.ImageURL = *req.ImageURL
	}
	if req.Volume != nil {
		product.Volume = *req.Volume
	}
	if req.Notes != nil {
		product.Notes = *req.Notes
	}
	if req.InStock != nil {
		product.InStock = *req.InStock
	}

	if err := s.productRepo.Update(product); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	s.invalidate()
	return product, nil
}

func (s *ProductService) Delete(publicID string) error {
	product, err := s.getByPublicID(publicID)
	if err != nil {
		return err
	}

	if err := s.productRepo.Delete(product.ID); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	s.invalidate()
	return nil
}

func (s *ProductService) GetByPublicID(publicID string) (*models.Product, error) {
	return s.getByPublicID(publicID)
}

func (s *ProductService) GetAll() ([]models.Product, error) {
	products, err := s.productRepo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return products, nil
}

// ResolveByIDs expands product references into display data. The mapping is
// intentionally partial: ids with no backing product are simply absent and
// callers render around the gap.
func (s *ProductService) ResolveByIDs(ids []string) (map[string]models.ResolvedProduct, error) {
	products, err := s.productRepo.GetByPublicIDs(dedupe(ids))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	resolved := make(map[string]models.ResolvedProduct, len(products))
	for i := range products {
		resolved[products[i].PublicID] = products[i].Resolved()
	}
	return resolved, nil
}

func (s *ProductService) getByPublicID(publicID string) (*models.Product, error) {
	product, err := s.productRepo.GetByPublicID(publicID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return product, nil
}

func (s *ProductService) invalidate() {
	_ = s.cache.DeletePattern(storefrontCachePrefix + "*")
	_ = s.cache.Delete("products:all")
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
