package pages

import "testing"

func TestLookup(t *testing.T) {
	info, ok := Lookup("home")
	if !ok {
		t.Fatalf("home should be registered")
	}
	if info.PageName != "Home" || info.PagePath != "/" {
		t.Fatalf("unexpected page info: %+v", info)
	}

	if _, ok := Lookup("checkout"); ok {
		t.Fatalf("unregistered page should not resolve")
	}
}

func TestLookupByPath(t *testing.T) {
	info, ok := LookupByPath("/about")
	if !ok || info.PageID != "about" {
		t.Fatalf("path lookup failed: %+v ok=%v", info, ok)
	}

	if _, ok := LookupByPath("/missing"); ok {
		t.Fatalf("unknown path should not resolve")
	}
}

func TestSynthesizeTemplate(t *testing.T) {
	info, _ := Lookup("store")
	layout := SynthesizeTemplate(info)

	if layout.PageID != "store" || layout.PageName != "Store" || layout.PagePath != "/store" {
		t.Fatalf("template metadata wrong: %+v", layout)
	}
	if layout.Sections == nil || len(layout.Sections) != 0 {
		t.Fatalf("template should start with an empty section list, got %#v", layout.Sections)
	}
	if layout.ID != 0 {
		t.Fatalf("template must not carry a store id")
	}
}

func TestAll_ReturnsCopy(t *testing.T) {
	pages := All()
	if len(pages) == 0 {
		t.Fatalf("registry should not be empty")
	}

	pages[0].PageName = "mutated"
	if fresh := All(); fresh[0].PageName == "mutated" {
		t.Fatalf("All must not expose the backing registry")
	}
}
