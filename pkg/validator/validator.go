package validator

import (
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
)

var (
	validate  *validator.Validate
	sanitizer *bluemonday.Policy
)

func Init() {
	validate = validator.New()

	sanitizer = bluemonday.UGCPolicy()

	registerCustomValidations(validate)

	if engine, ok := binding.Validator.Engine().(*validator.Validate); ok {
		registerCustomValidations(engine)
	}
}

func registerCustomValidations(v *validator.Validate) {
	v.RegisterValidation("no_html", validateNoHTML)
}

func Validate(s interface{}) error {
	return validate.Struct(s)
}

// SanitizeHTML cleans user-authored markup (text section bodies) with the
// same policy the storefront renderer applies, so preview and live output
// cannot diverge.
func SanitizeHTML(html string) string {
	return sanitizer.Sanitize(html)
}

var pageIDPattern = regexp.MustCompile(`^[a-z0-9-]+$`)

// ValidatePageID reports whether id is a well-formed page identifier:
// lowercase alphanumerics and hyphens, never empty. Route handlers check
// the URL parameter with this before it reaches the service layer.
func ValidatePageID(id string) bool {
	return pageIDPattern.MatchString(id)
}

func validateNoHTML(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return !strings.Contains(value, "<") && !strings.Contains(value, ">")
}
