package validation

import (
	"errors"
	"reflect"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"

	"github.com/yigit/studentdesk/internal/app/models"
	"github.com/yigit/studentdesk/internal/pkg/apperrors"
)

// custom validation tags & texts
const (
	trimMinTag  = "trimmin"
	trimMinText = "{0} must be at least {1} characters"
	trimMaxTag  = "trimmax"
	trimMaxText = "{0} must be at most {1} characters"
	oneOfTag    = "oneof"
	oneOfText   = "{0} must be one of: {1}"
)

// Schema validates candidate records without touching the store
type Schema struct {
	validate   *validator.Validate
	translator ut.Translator
}

// Default is the schema used by the services
var Default = NewSchema()

// NewSchema builds a validator with json field names, trimmed-length rules and
// English messages.
func NewSchema() *Schema {
	locale := en.New()
	uni := ut.New(locale, locale)
	translator, _ := uni.GetTranslator("en")

	validate := validator.New()
	_ = en_translations.RegisterDefaultTranslations(validate, translator)

	// Use JSON tag names for errors instead of Go struct names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = validate.RegisterValidation(trimMinTag, trimmedLength(func(n, limit int) bool { return n >= limit }))
	_ = validate.RegisterValidation(trimMaxTag, trimmedLength(func(n, limit int) bool { return n <= limit }))

	registerTranslation(validate, translator, trimMinTag, trimMinText)
	registerTranslation(validate, translator, trimMaxTag, trimMaxText)
	registerTranslation(validate, translator, oneOfTag, oneOfText)

	return &Schema{validate: validate, translator: translator}
}

// trimmedLength compares the rune count of the trimmed value against the tag parameter.
func trimmedLength(cmp func(n, limit int) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		limit, err := strconv.Atoi(fl.Param())
		if err != nil {
			return false
		}
		n := utf8.RuneCountInString(strings.TrimSpace(fl.Field().String()))
		return cmp(n, limit)
	}
}

// registerTranslation registers a message with {0} = field and {1} = tag parameter.
func registerTranslation(validate *validator.Validate, translator ut.Translator, tag, text string) {
	_ = validate.RegisterTranslation(
		tag, translator,
		func(t ut.Translator) error { return t.Add(tag, text, true) },
		func(t ut.Translator, fe validator.FieldError) string {
			param := strings.ReplaceAll(fe.Param(), " ", ", ")
			s, _ := t.T(tag, fe.Field(), param)
			return s
		},
	)
}

// ValidateStudent checks every rule and returns all field errors at once.
// A nil map means the candidate is valid.
func (s *Schema) ValidateStudent(in models.StudentInput) map[string]string {
	return s.Fields(in)
}

// Fields validates any tagged struct and returns the translated reason per json field
func (s *Schema) Fields(v any) map[string]string {
	err := s.validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return map[string]string{"": err.Error()}
	}

	out := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		out[fe.Field()] = fe.Translate(s.translator)
	}
	return out
}

// Struct is Fields wrapped as a *apperrors.ValidationError
func (s *Schema) Struct(v any) error {
	if fields := s.Fields(v); fields != nil {
		return apperrors.NewValidationError(fields)
	}
	return nil
}

// Student returns a *apperrors.ValidationError when the candidate is invalid
func (s *Schema) Student(in models.StudentInput) error {
	return s.Struct(in)
}

// ValidateStudent validates with the Default schema
func ValidateStudent(in models.StudentInput) map[string]string {
	return Default.ValidateStudent(in)
}
