package core

import (
	"reflect"
	"regexp"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

var (
	// custom validation tags & texts
	indexNumTag   = "indexnum"
	indexNumText  = "invalid index number format; should be like BC/ITS/24/001"
	indexNumRegex = regexp.MustCompile(`^BC/(IT[SND])/\d{2}/\d{3}$`)

	ghPhoneTag  = "ghphone"
	ghPhoneText = "invalid Ghana phone number"
	// 10 digits (e.g. 0241234567) or +233 followed by 9 digits
	ghPhoneRegex = regexp.MustCompile(`^(\+233|0)([2-3]|[5]|[7-9])[0-9]{8}$`)

	requiredTag     = "required"
	requiredWithTag = "required_with"
	requiredText    = "this field is required"
)

// InitValidators instantiates the validator for use.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = en_translations.RegisterDefaultTranslations(validate, translator)

	// Use JSON tag names for errors instead of Go struct names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// register custom validators
	_ = validate.RegisterValidation(indexNumTag, indexNumValidation)
	RegisterCustomTranslation(validate, translator, indexNumTag, indexNumText)

	_ = validate.RegisterValidation(ghPhoneTag, ghPhoneValidation)
	RegisterCustomTranslation(validate, translator, ghPhoneTag, ghPhoneText)

	RegisterCustomTranslation(validate, translator, requiredTag, requiredText, true)
	RegisterCustomTranslation(validate, translator, requiredWithTag, requiredText, true)
}

// RegisterCustomTranslation registers a custom translation for the specified validation tag.
func RegisterCustomTranslation(validate *validator.Validate, translator ut.Translator, tag, text string, override ...bool) {
	var ovrd bool
	if len(override) > 0 {
		ovrd = override[0]
	}
	_ = validate.RegisterTranslation(
		tag, translator,
		func(t ut.Translator) error { return t.Add(tag, text, ovrd) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Field())
			return s
		},
	)
}

// Custom Global Validators

// indexNumValidation enforces the department index number format, e.g. BC/ITS/24/001.
func indexNumValidation(fl validator.FieldLevel) bool {
	return indexNumRegex.MatchString(fl.Field().String())
}

// ghPhoneValidation allows Ghanaian phone numbers in local or +233 form.
func ghPhoneValidation(fl validator.FieldLevel) bool {
	return ghPhoneRegex.MatchString(fl.Field().String())
}
