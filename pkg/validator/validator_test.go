package validator

import "testing"

func TestValidatePageID(t *testing.T) {
	for _, id := range []string{"home", "store", "about-us", "page-2"} {
		if !ValidatePageID(id) {
			t.Fatalf("expected %q to be a valid page id", id)
		}
	}

	for _, id := range []string{"", "Home", "home page", "home/1", "../etc"} {
		if ValidatePageID(id) {
			t.Fatalf("expected %q to be rejected", id)
		}
	}
}

func TestNoHTMLValidation(t *testing.T) {
	Init()

	type form struct {
		Name string `validate:"required,no_html"`
	}

	if err := Validate(form{Name: "Rose Absolue"}); err != nil {
		t.Fatalf("plain name should pass: %v", err)
	}
	if err := Validate(form{Name: "<script>alert(1)</script>"}); err == nil {
		t.Fatalf("markup in name should be rejected")
	}
}

func TestSanitizeHTMLStripsScripts(t *testing.T) {
	Init()

	out := SanitizeHTML(`<p>hello</p><script>alert(1)</script>`)
	if out != "<p>hello</p>" {
		t.Fatalf("unexpected sanitizer output: %q", out)
	}
}
