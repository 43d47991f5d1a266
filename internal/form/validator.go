// Package form turns submitted form values into validated, typed input.
// Handlers parse a submission into one of the *Form structs, call
// Validate, and only then build a model record from it.
package form

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/iliyamo/venue-directory/internal/model"
)

var (
	formValidator *validator.Validate
	validatorOnce sync.Once
)

// phonePattern accepts North-American numbers with an optional country
// code, optional parentheses and ".", "-" or space separators.
var phonePattern = regexp.MustCompile(`^(\+\d{1,2}\s)?\(?\d{3}\)?[\s.-]\d{3}[\s.-]\d{4}$`)

// V returns the shared validator with the directory's custom tags
// registered.  Field errors are reported under their json names.
func V() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			return strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		})
		mustRegister(v, "state", stateValidator)
		mustRegister(v, "genres", genresValidator)
		mustRegister(v, "phone", phoneValidator)
		formValidator = v
	})
	return formValidator
}

// mustRegister panics when a custom tag cannot be registered; the tag
// names are fixed at compile time.
func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("form: register %q validation: %v", tag, err))
	}
}

func stateValidator(fl validator.FieldLevel) bool {
	return model.IsValidState(fl.Field().String())
}

// genresValidator checks the whole selection: a single unknown value
// rejects the field.
func genresValidator(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.Slice {
		return false
	}
	for i := 0; i < field.Len(); i++ {
		if !model.IsValidGenre(field.Index(i).String()) {
			return false
		}
	}
	return true
}

func phoneValidator(fl validator.FieldLevel) bool {
	return phonePattern.MatchString(fl.Field().String())
}

// Errors maps a field's json name to its messages.
type Errors map[string][]string

// Add appends a message for field.
func (e Errors) Add(field, msg string) {
	e[field] = append(e[field], msg)
}

// Has reports whether field has at least one message.
func (e Errors) Has(field string) bool {
	return len(e[field]) > 0
}

// Error implements error so a failed validation can travel as one.
func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	return "invalid fields: " + strings.Join(fields, ", ")
}

// check runs the struct validator and merges its findings into errs.
// Fields that already carry a parse error are skipped.
func check(s any, errs Errors) Errors {
	err := V().Struct(s)
	if err == nil {
		return errs
	}
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		errs.Add("form", err.Error())
		return errs
	}
	for _, fe := range ves {
		if errs.Has(fe.Field()) {
			continue
		}
		errs.Add(fe.Field(), message(fe))
	}
	return errs
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "min":
		return "Select at least one value."
	case "phone":
		return "Invalid phone number"
	case "url":
		return "Invalid URL."
	case "state":
		return "Invalid value, must be one of: " + strings.Join(model.States, ", ") + "."
	case "genres":
		return "Invalid value(s): " + strings.Join(unknownGenres(fe.Value()), ", ") + "."
	}
	return "Invalid value."
}

func unknownGenres(v any) []string {
	names, _ := v.([]string)
	var out []string
	for _, n := range names {
		if !model.IsValidGenre(n) {
			out = append(out, n)
		}
	}
	return out
}

// Choices lists the enumerations a client needs to render selects.
type Choices struct {
	States []string `json:"states"`
	Genres []string `json:"genres"`
}

// DefaultChoices returns the state and genre enumerations.
func DefaultChoices() Choices {
	return Choices{States: model.States, Genres: model.GenreNames}
}
