package pages

import "perfume-shop-backend/internal/models"

// PageInfo describes one storefront page an admin can customize.
type PageInfo struct {
	PageID   string `json:"page_id"`
	PageName string `json:"page_name"`
	PagePath string `json:"page_path"`
}

// registry is the fixed set of customizable pages. Layouts for pages
// outside this list are never synthesized.
var registry = []PageInfo{
	{PageID: "home", PageName: "Home", PagePath: "/"},
	{PageID: "store", PageName: "Store", PagePath: "/store"},
	{PageID: "about", PageName: "About Us", PagePath: "/about"},
	{PageID: "contact", PageName: "Contact", PagePath: "/contact"},
}

func All() []PageInfo {
	out := make([]PageInfo, len(registry))
	copy(out, registry)
	return out
}

func Lookup(pageID string) (PageInfo, bool) {
	for _, p := range registry {
		if p.PageID == pageID {
			return p, true
		}
	}
	return PageInfo{}, false
}

func LookupByPath(path string) (PageInfo, bool) {
	for _, p := range registry {
		if p.PagePath == path {
			return p, true
		}
	}
	return PageInfo{}, false
}

// SynthesizeTemplate builds the empty layout an admin starts from when a
// page has no persisted layout yet. It is the single place where a missing
// layout turns into an editable one.
func SynthesizeTemplate(info PageInfo) *models.Layout {
	return &models.Layout{
		PageID:   info.PageID,
		PageName: info.PageName,
		PagePath: info.PagePath,
		Sections: models.LayoutSections{},
	}
}
