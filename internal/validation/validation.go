// Package validation checks inbound payloads with go-playground/validator and
// reports failures as a map from JSON field name to message.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Field rules shared by create and update.
const (
	nameRule  = "required,max=255"
	emailRule = "required,email,max=255"
	ageRule   = "gte=0,lte=150"
	gradeRule = "required,max=50"
)

// Pagination bounds for list endpoints.
const (
	DefaultLimit = 100
	MaxLimit     = 1000
)

// validate is safe for concurrent use and caches struct metadata.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// CreateStudentRequest is the payload accepted when creating a student.
type CreateStudentRequest struct {
	Name  string `json:"name" validate:"required,max=255"`
	Email string `json:"email" validate:"required,email,max=255"`
	Age   *int   `json:"age" validate:"required,gte=0,lte=150"`
	Grade string `json:"grade" validate:"required,max=50"`
}

// Normalize trims surrounding spaces and lower-cases the email.
func (r *CreateStudentRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Grade = strings.TrimSpace(r.Grade)
}

// Validate normalizes r and returns the failing fields, or nil.
func (r *CreateStudentRequest) Validate() map[string]string {
	r.Normalize()
	return fieldErrors(validate.Struct(r))
}

// UpdateStudentRequest is a partial update. Nil fields are left unchanged.
type UpdateStudentRequest struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
	Age   *int    `json:"age,omitempty"`
	Grade *string `json:"grade,omitempty"`
}

// Empty reports whether no field was provided.
func (r *UpdateStudentRequest) Empty() bool {
	return r.Name == nil && r.Email == nil && r.Age == nil && r.Grade == nil
}

// Normalize applies the same trimming as CreateStudentRequest.Normalize.
func (r *UpdateStudentRequest) Normalize() {
	if r.Name != nil {
		v := strings.TrimSpace(*r.Name)
		r.Name = &v
	}
	if r.Email != nil {
		v := strings.ToLower(strings.TrimSpace(*r.Email))
		r.Email = &v
	}
	if r.Grade != nil {
		v := strings.TrimSpace(*r.Grade)
		r.Grade = &v
	}
}

// Validate normalizes r and checks only the provided fields.
func (r *UpdateStudentRequest) Validate() map[string]string {
	if r.Empty() {
		return map[string]string{"body": "at least one field must be provided"}
	}
	r.Normalize()

	errs := map[string]string{}
	if r.Name != nil {
		varError(errs, "name", *r.Name, nameRule)
	}
	if r.Email != nil {
		varError(errs, "email", *r.Email, emailRule)
	}
	if r.Age != nil {
		varError(errs, "age", *r.Age, ageRule)
	}
	if r.Grade != nil {
		varError(errs, "grade", *r.Grade, gradeRule)
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Page checks skip/limit query parameters.
func Page(skip, limit int) map[string]string {
	errs := map[string]string{}
	varError(errs, "skip", skip, "gte=0")
	varError(errs, "limit", limit, fmt.Sprintf("gte=1,lte=%d", MaxLimit))
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// ParseID parses a positive integer path id.
func ParseID(raw string) (int64, map[string]string) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, map[string]string{"id": "must be a positive integer"}
	}
	return id, nil
}

func varError(errs map[string]string, field string, value any, rule string) {
	var ves validator.ValidationErrors
	if err := validate.Var(value, rule); errors.As(err, &ves) && len(ves) > 0 {
		errs[field] = message(ves[0])
	}
}

func fieldErrors(err error) map[string]string {
	if err == nil {
		return nil
	}
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return map[string]string{"body": err.Error()}
	}
	errs := make(map[string]string, len(ves))
	for _, fe := range ves {
		errs[fe.Field()] = message(fe)
	}
	return errs
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field required"
	case "email":
		return "value is not a valid email address"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be less than or equal to %s", fe.Param())
	default:
		return fmt.Sprintf("failed on the %q rule", fe.Tag())
	}
}
