package forms

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	MinRating = 0.0
	MaxRating = 10.0
)

// AddInput is the "add movie" form: a title to search for.
type AddInput struct {
	Title string `form:"title" binding:"required"`
}

// editForm is the raw edit form as submitted; rating is still text.
type editForm struct {
	Rating string `form:"rating" binding:"required"`
	Review string `form:"review" binding:"required"`
}

// EditInput is a validated edit with the rating coerced to a number.
type EditInput struct {
	Rating float64
	Review string
}

// ValidationError maps form field names to a message for the user.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Field returns the message for one field, or "".
func (e *ValidationError) Field(name string) string {
	if e == nil {
		return ""
	}
	return e.Fields[name]
}

func (e *ValidationError) add(field, msg string) {
	if _, exists := e.Fields[field]; !exists {
		e.Fields[field] = msg
	}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.SetTagName("binding")
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("form"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

// ParseAdd trims and validates the submitted title.
func ParseAdd(title string) (AddInput, error) {
	in := AddInput{Title: strings.TrimSpace(title)}
	if err := check(in); err != nil {
		return AddInput{}, err
	}
	return in, nil
}

// ParseEdit validates the submitted rating and review and converts the rating to a float.
func ParseEdit(rating, review string) (EditInput, error) {
	raw := editForm{
		Rating: strings.TrimSpace(rating),
		Review: strings.TrimSpace(review),
	}
	var ve *ValidationError
	if err := check(raw); err != nil && !errors.As(err, &ve) {
		return EditInput{}, err
	}
	if ve == nil {
		ve = &ValidationError{Fields: map[string]string{}}
	}

	value, problem := parseRating(raw.Rating)
	if raw.Rating != "" && problem != "" {
		ve.add("rating", messageFor(problem))
	}
	if len(ve.Fields) > 0 {
		return EditInput{}, ve
	}

	return EditInput{Rating: value, Review: raw.Review}, nil
}

// parseRating accepts any decimal real number, e.g. "7", "7.", ".5" or "1e0",
// and reports "numeric" or "range" when the text is unusable.
func parseRating(s string) (float64, string) {
	if strings.ContainsAny(s, "xX_") {
		return 0, "numeric"
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) {
		return 0, "numeric"
	}
	if v < MinRating || v > MaxRating {
		return 0, "range"
	}
	return v, ""
}

func check(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	ve := &ValidationError{Fields: map[string]string{}}
	for _, fe := range verrs {
		ve.add(fe.Field(), messageFor(fe.Tag()))
	}
	return ve
}

func messageFor(tag string) string {
	switch tag {
	case "required":
		return "This field is required."
	case "numeric":
		return "Must be a number, e.g. 7.5."
	case "range":
		return fmt.Sprintf("Must be between %g and %g.", MinRating, MaxRating)
	default:
		return "Invalid value."
	}
}
