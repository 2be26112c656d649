package service

import (
	"errors"
	"fmt"

	"perfume-shop-backend/internal/models"
	"perfume-shop-backend/internal/pages"
	"perfume-shop-backend/internal/repository"
	"perfume-shop-backend/pkg/cache"
	"perfume-shop-backend/pkg/logger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const storefrontCachePrefix = "storefront:"

// LayoutService owns the editing workflow for page layouts: loading or
// synthesizing the layout for a page, mutating its section list and
// persisting the result. Concurrent saves for the same page are not
// guarded; the store's atomic upsert makes the last writer win.
type LayoutService struct {
	layoutRepo repository.LayoutRepository
	cache      *cache.Cache
}

func NewLayoutService(layoutRepo repository.LayoutRepository, c *cache.Cache) *LayoutService {
	return &LayoutService{
		layoutRepo: layoutRepo,
		cache:      c,
	}
}

func (s *LayoutService) GetAllLayouts() ([]models.Layout, error) {
	layouts, err := s.layoutRepo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return layouts, nil
}

func (s *LayoutService) GetPages() []pages.PageInfo {
	return pages.All()
}

// GetLayoutForEdit returns the persisted layout for a registered page, or a
// synthesized empty template when none exists yet. A missing layout is an
// expected state, not an error; only unregistered pages are rejected.
func (s *LayoutService) GetLayoutForEdit(pageID string) (*models.Layout, error) {
	info, ok := pages.Lookup(pageID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPageUnknown, pageID)
	}

	layout, err := s.layoutRepo.GetByPageID(pageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pages.SynthesizeTemplate(info), nil
		}
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return layout, nil
}

// GetLayoutByPath fetches the persisted layout backing a storefront path.
// Returns ErrLayoutNotFound when the page has not been customized yet.
func (s *LayoutService) GetLayoutByPath(path string) (*models.Layout, error) {
	layout, err := s.layoutRepo.GetByPagePath(path)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLayoutNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return layout, nil
}

// SaveLayout validates and persists a full-overwrite save of one page's
// layout. Either the whole document is replaced or nothing is written.
func (s *LayoutService) SaveLayout(req models.SaveLayoutRequest) (*models.Layout, error) {
	if req.PageID == "" {
		return nil, fmt.Errorf("%w: page_id is required", ErrValidation)
	}
	if req.Sections == nil {
		return nil, fmt.Errorf("%w: sections is required", ErrValidation)
	}

	info, ok := pages.Lookup(req.PageID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPageUnknown, req.PageID)
	}

	layout, err := s.loadOrTemplate(info)
	if err != nil {
		return nil, err
	}

	sections := make([]models.Section, len(*req.Sections))
	copy(sections, *req.Sections)
	for i := range sections {
		if sections[i].ID == "" {
			sections[i].ID = uuid.New().String()
		}
	}
	renumberSections(sections)

	layout.PageName = info.PageName
	layout.PagePath = info.PagePath
	if req.PageName != "" {
		layout.PageName = req.PageName
	}
	layout.Sections = sections

	return s.persist(layout)
}

// AddSection appends a new section of the given type with a freshly decoded
// payload. The type must belong to the closed set; forward-compatible
// unknown types are only tolerated when reading, never when authoring.
func (s *LayoutService) AddSection(pageID string, req models.AddSectionRequest) (*models.Layout, error) {
	layout, err := s.GetLayoutForEdit(pageID)
	if err != nil {
		return nil, err
	}

	content, known := models.NewContentForType(req.Type)
	if !known {
		return nil, fmt.Errorf("%w: %s", ErrUnknownType, req.Type)
	}
	if err := mergeSectionContent(&models.Section{Type: req.Type, Content: content}, req.Content); err != nil {
		return nil, err
	}

	layout.Sections = appendSection(layout.Sections, req.Type, content)
	return s.persist(layout)
}

// UpdateSection applies a partial content patch to one section. The
// section's id, type and position are immutable here; changing type is
// modeled as remove plus add.
func (s *LayoutService) UpdateSection(pageID, sectionID string, req models.UpdateSectionRequest) (*models.Layout, error) {
	layout, err := s.GetLayoutForEdit(pageID)
	if err != nil {
		return nil, err
	}

	idx := findSectionIndex(layout.Sections, sectionID)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %s", ErrSectionNotFound, sectionID)
	}

	if err := mergeSectionContent(&layout.Sections[idx], req.Content); err != nil {
		return nil, err
	}

	return s.persist(layout)
}

// MoveSection shifts a section one place up or down. Moves past either end
// of the list are accepted and leave the layout unchanged.
func (s *LayoutService) MoveSection(pageID, sectionID, direction string) (*models.Layout, error) {
	layout, err := s.GetLayoutForEdit(pageID)
	if err != nil {
		return nil, err
	}

	idx := findSectionIndex(layout.Sections, sectionID)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %s", ErrSectionNotFound, sectionID)
	}

	moveSection(layout.Sections, idx, direction == "up")
	return s.persist(layout)
}

// RemoveSection deletes a section by id and renumbers the remainder. An
// absent id is a no-op so repeated deletes are safe.
func (s *LayoutService) RemoveSection(pageID, sectionID string) (*models.Layout, error) {
	layout, err := s.GetLayoutForEdit(pageID)
	if err != nil {
		return nil, err
	}

	layout.Sections = removeSectionByID(layout.Sections, sectionID)
	return s.persist(layout)
}

func (s *LayoutService) loadOrTemplate(info pages.PageInfo) (*models.Layout, error) {
	layout, err := s.layoutRepo.GetByPageID(info.PageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pages.SynthesizeTemplate(info), nil
		}
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return layout, nil
}

func (s *LayoutService) persist(layout *models.Layout) (*models.Layout, error) {
	if layout.Sections == nil {
		layout.Sections = models.LayoutSections{}
	}

	if err := s.layoutRepo.Upsert(layout); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	if err := s.cache.DeletePattern(storefrontCachePrefix + "*"); err != nil {
		logger.Warn("Failed to invalidate storefront cache", map[string]interface{}{
			"page_id": layout.PageID,
			"error":   err.Error(),
		})
	}

	return layout, nil
}
