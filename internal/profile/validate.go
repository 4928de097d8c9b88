package profile

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/pavandive/tinderlite-api/internal/user"
)

var (
	ErrNoEditFields      = errors.New("no fields to update")
	ErrFirstNameRequired = errors.New("first name cannot be empty")
	ErrAgeTooLow         = errors.New("age must be at least 18")
	ErrInvalidGender     = errors.New("gender must be one of male, female, others")
	ErrInvalidPhotoURL   = errors.New("photo url is not a valid URL")
	ErrTooManySkills     = errors.New("skills cannot be more than 10")
)

// editableFields is the static allow-list for profile editing. Anything
// outside it, notably emailId and password, is rejected up front rather
// than silently dropped.
var editableFields = map[string]bool{
	"firstName": true,
	"lastName":  true,
	"age":       true,
	"gender":    true,
	"photoUrl":  true,
	"about":     true,
	"skills":    true,
}

var validGenders = map[string]bool{
	"male":   true,
	"female": true,
	"others": true,
}

// FieldNotEditableError reports an edit request touching a field outside
// the allow-list.
type FieldNotEditableError struct {
	Field string
}

func (e *FieldNotEditableError) Error() string {
	return fmt.Sprintf("field %q is not editable", e.Field)
}

// ApplyEdit validates the requested field changes against the allow-list
// and the per-field rules, then applies them to u. The user is only
// mutated if every field passes; the caller persists the result.
func ApplyEdit(u *user.User, fields map[string]any) error {
	if len(fields) == 0 {
		return ErrNoEditFields
	}

	for key := range fields {
		if !editableFields[key] {
			return &FieldNotEditableError{Field: key}
		}
	}

	updated := *u

	for key, value := range fields {
		if err := setField(&updated, key, value); err != nil {
			return err
		}
	}

	*u = updated
	return nil
}

func setField(u *user.User, key string, value any) error {
	switch key {
	case "firstName":
		s, ok := value.(string)
		if !ok || s == "" {
			return ErrFirstNameRequired
		}
		u.FirstName = s
	case "lastName":
		s, ok := value.(string)
		if !ok {
			return fieldTypeError(key, "string")
		}
		u.LastName = s
	case "age":
		// JSON numbers decode as float64
		n, ok := value.(float64)
		if !ok || n != float64(int(n)) {
			return fieldTypeError(key, "integer")
		}
		if int(n) < 18 {
			return ErrAgeTooLow
		}
		u.Age = int(n)
	case "gender":
		s, ok := value.(string)
		if !ok || !validGenders[s] {
			return ErrInvalidGender
		}
		u.Gender = s
	case "photoUrl":
		s, ok := value.(string)
		if !ok {
			return fieldTypeError(key, "string")
		}
		parsed, err := url.Parse(s)
		if err != nil || parsed.Scheme == "" || parsed.Host == "" {
			return ErrInvalidPhotoURL
		}
		u.PhotoURL = s
	case "about":
		s, ok := value.(string)
		if !ok {
			return fieldTypeError(key, "string")
		}
		u.About = s
	case "skills":
		items, ok := value.([]any)
		if !ok {
			return fieldTypeError(key, "array of strings")
		}
		if len(items) > 10 {
			return ErrTooManySkills
		}
		skills := make([]string, 0, len(items))
		for _, item := range items {
			s, ok := item.(string)
			if !ok {
				return fieldTypeError(key, "array of strings")
			}
			skills = append(skills, s)
		}
		u.Skills = skills
	}
	return nil
}

func fieldTypeError(field, want string) error {
	return fmt.Errorf("field %q must be a %s", field, want)
}
