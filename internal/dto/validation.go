package dto

import (
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// voiceParts are the sections a member can register under.
var voiceParts = map[string]bool{
	"soprano": true,
	"alto":    true,
	"tenor":   true,
	"bass":    true,
}

// voicePart validates that a field holds a known choir section.
func voicePart(fl validator.FieldLevel) bool {
	return voiceParts[strings.ToLower(fl.Field().String())]
}

// RegisterCustomValidations installs custom binding validators on gin's
// validator engine. Must be called once before routes are served.
func RegisterCustomValidations() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("voicepart", voicePart)
	}
}
