package render

import (
	"fmt"
	"strings"
	"sync"

	"perfume-shop-backend/internal/models"
)

// BlockRenderer turns one section into a rendered block. Returning false
// drops the section from the page without failing the render.
type BlockRenderer func(section models.Section, products map[string]models.ResolvedProduct) (Block, bool)

// Registry maps section type tags to their renderers. Rendering a type the
// registry does not know skips that section, so a page written by a newer
// editor never crashes an older storefront.
type Registry struct {
	mu        sync.RWMutex
	renderers map[models.SectionType]BlockRenderer
}

func NewRegistry() *Registry {
	return &Registry{renderers: make(map[models.SectionType]BlockRenderer)}
}

func (r *Registry) Register(sectionType models.SectionType, renderer BlockRenderer) error {
	if r == nil {
		return fmt.Errorf("registry is nil")
	}

	sectionType = models.SectionType(strings.TrimSpace(strings.ToLower(string(sectionType))))
	if sectionType == "" {
		return fmt.Errorf("section type is empty")
	}
	if renderer == nil {
		return fmt.Errorf("renderer is nil for type %s", sectionType)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.renderers[sectionType] = renderer
	return nil
}

func (r *Registry) MustRegister(sectionType models.SectionType, renderer BlockRenderer) {
	if err := r.Register(sectionType, renderer); err != nil {
		panic(err)
	}
}

func (r *Registry) Get(sectionType models.SectionType) (BlockRenderer, bool) {
	if r == nil {
		return nil, false
	}

	sectionType = models.SectionType(strings.TrimSpace(strings.ToLower(string(sectionType))))

	r.mu.RLock()
	defer r.mu.RUnlock()
	renderer, ok := r.renderers[sectionType]
	return renderer, ok
}
