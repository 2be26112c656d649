package service

import (
	"encoding/json"
	"errors"
	"sort"
	"testing"
	"time"

	"perfume-shop-backend/internal/models"
	"perfume-shop-backend/pkg/cache"

	"gorm.io/gorm"
)

// fakeLayoutRepo persists layouts through a JSON round-trip so tests
// exercise the same (de)serialization path as the real JSONB column.
type fakeLayoutRepo struct {
	layouts map[string][]byte
	down    bool
}

func newFakeLayoutRepo() *fakeLayoutRepo {
	return &fakeLayoutRepo{layouts: make(map[string][]byte)}
}

var errRepoDown = errors.New("connection refused")

func (r *fakeLayoutRepo) GetAll() ([]models.Layout, error) {
	if r.down {
		return nil, errRepoDown
	}

	out := make([]models.Layout, 0, len(r.layouts))
	for _, data := range r.layouts {
		var l models.Layout
		if err := json.Unmarshal(data, &l); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PageName < out[j].PageName })
	return out, nil
}

func (r *fakeLayoutRepo) GetByPageID(pageID string) (*models.Layout, error) {
	if r.down {
		return nil, errRepoDown
	}

	data, ok := r.layouts[pageID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	var l models.Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *fakeLayoutRepo) GetByPagePath(path string) (*models.Layout, error) {
	if r.down {
		return nil, errRepoDown
	}

	for _, data := range r.layouts {
		var l models.Layout
		if err := json.Unmarshal(data, &l); err != nil {
			return nil, err
		}
		if l.PagePath == path {
			return &l, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeLayoutRepo) Upsert(layout *models.Layout) error {
	if r.down {
		return errRepoDown
	}

	layout.UpdatedAt = time.Now().UTC()
	data, err := json.Marshal(layout)
	if err != nil {
		return err
	}
	r.layouts[layout.PageID] = data
	return nil
}

func newTestLayoutService(repo *fakeLayoutRepo) *LayoutService {
	c, _ := cache.NewCache("", false)
	return NewLayoutService(repo, c)
}

func sectionsOf(req ...models.Section) *[]models.Section {
	s := make([]models.Section, len(req))
	copy(s, req)
	return &s
}

func TestSaveLayout_RequiresPageIDAndSections(t *testing.T) {
	svc := newTestLayoutService(newFakeLayoutRepo())

	if _, err := svc.SaveLayout(models.SaveLayoutRequest{Sections: sectionsOf()}); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for missing page_id, got %v", err)
	}

	if _, err := svc.SaveLayout(models.SaveLayoutRequest{PageID: "home"}); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for nil sections, got %v", err)
	}
}

func TestSaveLayout_RejectsUnregisteredPage(t *testing.T) {
	svc := newTestLayoutService(newFakeLayoutRepo())

	_, err := svc.SaveLayout(models.SaveLayoutRequest{PageID: "not-a-page", Sections: sectionsOf()})
	if !errors.Is(err, ErrPageUnknown) {
		t.Fatalf("expected ErrPageUnknown, got %v", err)
	}
}

func TestSaveLayout_RoundTrip(t *testing.T) {
	repo := newFakeLayoutRepo()
	svc := newTestLayoutService(repo)

	saved, err := svc.SaveLayout(models.SaveLayoutRequest{
		PageID: "home",
		Sections: sectionsOf(
			models.Section{Type: models.SectionTypeBanner, Content: &models.ImageContent{Title: "Welcome", ImageURL: "/uploads/hero.jpg"}},
			models.Section{Type: models.SectionTypeProduct, Content: &models.ProductContent{ProductIDs: []string{"p1", "p2"}}},
		),
	})
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := svc.GetLayoutForEdit("home")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	savedJSON, _ := json.Marshal(saved.Sections)
	loadedJSON, _ := json.Marshal(loaded.Sections)
	if string(savedJSON) != string(loadedJSON) {
		t.Fatalf("round-trip mismatch:\nsaved  %s\nloaded %s", savedJSON, loadedJSON)
	}
	if loaded.PageName != "Home" || loaded.PagePath != "/" {
		t.Fatalf("page metadata not filled from registry: %+v", loaded)
	}
}

func TestSaveLayout_IdempotentUpsert(t *testing.T) {
	repo := newFakeLayoutRepo()
	svc := newTestLayoutService(repo)

	first, err := svc.SaveLayout(models.SaveLayoutRequest{
		PageID: "home",
		Sections: sectionsOf(
			models.Section{ID: "s1", Type: models.SectionTypeText, Content: &models.TextContent{Body: "hello"}},
		),
	})
	if err != nil {
		t.Fatalf("first save failed: %v", err)
	}

	second, err := svc.SaveLayout(models.SaveLayoutRequest{
		PageID: "home",
		Sections: sectionsOf(
			models.Section{ID: "s1", Type: models.SectionTypeText, Content: &models.TextContent{Body: "hello"}},
		),
	})
	if err != nil {
		t.Fatalf("second save failed: %v", err)
	}

	firstJSON, _ := json.Marshal(first.Sections)
	secondJSON, _ := json.Marshal(second.Sections)
	if string(firstJSON) != string(secondJSON) {
		t.Fatalf("repeated save changed stored sections")
	}
	if len(repo.layouts) != 1 {
		t.Fatalf("expected one stored layout, got %d", len(repo.layouts))
	}
}

func TestSaveLayout_RenumbersSparsePositions(t *testing.T) {
	svc := newTestLayoutService(newFakeLayoutRepo())

	saved, err := svc.SaveLayout(models.SaveLayoutRequest{
		PageID: "store",
		Sections: sectionsOf(
			models.Section{ID: "a", Type: models.SectionTypeText, Position: 4, Content: &models.TextContent{Body: "a"}},
			models.Section{ID: "b", Type: models.SectionTypeText, Position: 9, Content: &models.TextContent{Body: "b"}},
		),
	})
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	for i, s := range saved.Sections {
		if s.Position != i {
			t.Fatalf("positions not renumbered on save: %+v", saved.Sections)
		}
	}
}

func TestAddAndMoveSection_Scenario(t *testing.T) {
	svc := newTestLayoutService(newFakeLayoutRepo())

	layout, err := svc.AddSection("home", models.AddSectionRequest{
		Type:    models.SectionTypeBanner,
		Content: json.RawMessage(`{"title":"Welcome"}`),
	})
	if err != nil {
		t.Fatalf("add banner failed: %v", err)
	}

	layout, err = svc.AddSection("home", models.AddSectionRequest{
		Type:    models.SectionTypeProduct,
		Content: json.RawMessage(`{"productIds":["p1","p2"]}`),
	})
	if err != nil {
		t.Fatalf("add product section failed: %v", err)
	}

	if layout.Sections[0].Position != 0 || layout.Sections[1].Position != 1 {
		t.Fatalf("expected positions [0,1], got %+v", layout.Sections)
	}

	productID := layout.Sections[1].ID
	layout, err = svc.MoveSection("home", productID, "up")
	if err != nil {
		t.Fatalf("move failed: %v", err)
	}

	if layout.Sections[0].ID != productID {
		t.Fatalf("expected product section first after move up")
	}
	if layout.Sections[0].Type != models.SectionTypeProduct || layout.Sections[1].Type != models.SectionTypeBanner {
		t.Fatalf("unexpected order after move: %+v", layout.Sections)
	}
	if layout.Sections[0].Position != 0 || layout.Sections[1].Position != 1 {
		t.Fatalf("positions not re-derived after move: %+v", layout.Sections)
	}
}

func TestAddSection_RejectsUnknownType(t *testing.T) {
	svc := newTestLayoutService(newFakeLayoutRepo())

	_, err := svc.AddSection("home", models.AddSectionRequest{Type: "carousel3d"})
	if !errors.Is(err, ErrUnknownType) {
		t.Fatalf("expected ErrUnknownType, got %v", err)
	}
}

func TestUpdateSection_NotFound(t *testing.T) {
	svc := newTestLayoutService(newFakeLayoutRepo())

	_, err := svc.UpdateSection("home", "ghost", models.UpdateSectionRequest{
		Content: json.RawMessage(`{"title":"x"}`),
	})
	if !errors.Is(err, ErrSectionNotFound) {
		t.Fatalf("expected ErrSectionNotFound, got %v", err)
	}
}

func TestRemoveSection_RenumbersAndPersists(t *testing.T) {
	svc := newTestLayoutService(newFakeLayoutRepo())

	layout, err := svc.SaveLayout(models.SaveLayoutRequest{
		PageID: "home",
		Sections: sectionsOf(
			models.Section{ID: "a", Type: models.SectionTypeText, Content: &models.TextContent{Body: "a"}},
			models.Section{ID: "b", Type: models.SectionTypeText, Content: &models.TextContent{Body: "b"}},
			models.Section{ID: "c", Type: models.SectionTypeText, Content: &models.TextContent{Body: "c"}},
		),
	})
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	layout, err = svc.RemoveSection("home", "b")
	if err != nil {
		t.Fatalf("remove failed: %v", err)
	}

	if len(layout.Sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(layout.Sections))
	}
	if layout.Sections[0].ID != "a" || layout.Sections[1].ID != "c" {
		t.Fatalf("unexpected survivors: %+v", layout.Sections)
	}
	if layout.Sections[0].Position != 0 || layout.Sections[1].Position != 1 {
		t.Fatalf("positions not renumbered: %+v", layout.Sections)
	}

	reloaded, err := svc.GetLayoutForEdit("home")
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if len(reloaded.Sections) != 2 {
		t.Fatalf("removal not persisted")
	}
}

func TestGetLayoutForEdit_SynthesizesTemplate(t *testing.T) {
	svc := newTestLayoutService(newFakeLayoutRepo())

	layout, err := svc.GetLayoutForEdit("about")
	if err != nil {
		t.Fatalf("expected synthesized template, got %v", err)
	}
	if layout.PageID != "about" || layout.PagePath != "/about" {
		t.Fatalf("template metadata wrong: %+v", layout)
	}
	if len(layout.Sections) != 0 {
		t.Fatalf("template should start empty")
	}

	if _, err := svc.GetLayoutForEdit("nope"); !errors.Is(err, ErrPageUnknown) {
		t.Fatalf("expected ErrPageUnknown for unregistered page, got %v", err)
	}
}

func TestLayoutService_StoreFailuresAreRetryable(t *testing.T) {
	repo := newFakeLayoutRepo()
	repo.down = true
	svc := newTestLayoutService(repo)

	if _, err := svc.GetAllLayouts(); !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}

	_, err := svc.SaveLayout(models.SaveLayoutRequest{PageID: "home", Sections: sectionsOf()})
	if !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable on save, got %v", err)
	}

	// The store coming back makes the same call succeed unchanged.
	repo.down = false
	if _, err := svc.SaveLayout(models.SaveLayoutRequest{PageID: "home", Sections: sectionsOf()}); err != nil {
		t.Fatalf("retry after recovery failed: %v", err)
	}
}
