package validator

import (
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/TutorPal-F-2025/tutorpal-service/internal/models"
)

// Validator handles struct and business rule validation for requests.
type Validator struct {
	validate *validator.Validate
}

// New creates a validator with all custom rules registered.
func New() *Validator {
	validate := validator.New()

	v := &Validator{validate: validate}
	v.registerBusinessRules()

	return v
}

// Validate validates business rules for any struct.
func (v *Validator) Validate(s interface{}) ValidationErrors {
	if err := v.validate.Struct(s); err != nil {
		return ToValidationErrors(err)
	}
	return nil
}

// ValidateTutorRegistration validates the tutor signup, including the
// CGPA eligibility gate on the parsed form value.
func (v *Validator) ValidateTutorRegistration(req *RegisterTutorRequest) (float64, ValidationErrors) {
	errors := v.Validate(req)

	cgpa, err := strconv.ParseFloat(strings.TrimSpace(req.CGPA), 64)
	if err != nil {
		errors = append(errors, *NewValidationError("cgpa", "must be a number", req.CGPA))
		return 0, errors
	}
	if cgpa < models.TutorMinCGPA || cgpa > models.TutorMaxCGPA {
		errors = append(errors, ValidationError{
			Field:   "cgpa",
			Message: "must be between 4.5 and 5.0 to become a tutor",
			Value:   cgpa,
			Rule:    "tutor_cgpa",
		})
	}

	return cgpa, errors
}

// SplitSpecializations turns the comma-separated form field into a
// trimmed list, dropping empty entries.
func SplitSpecializations(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// registerBusinessRules registers custom rule validators.
func (v *Validator) registerBusinessRules() {
	// Year levels offered at the university (1-4)
	v.validate.RegisterValidation("academic_year", func(fl validator.FieldLevel) bool {
		year := fl.Field().Int()
		return year >= 1 && year <= 4
	})

	// Tutor CGPA eligibility window on the 5.0 scale
	v.validate.RegisterValidation("tutor_cgpa", func(fl validator.FieldLevel) bool {
		cgpa := fl.Field().Float()
		return cgpa >= models.TutorMinCGPA && cgpa <= models.TutorMaxCGPA
	})

	// Faculty must be one of the two offered faculties
	v.validate.RegisterValidation("faculty", func(fl validator.FieldLevel) bool {
		faculty := strings.ToLower(fl.Field().String())
		return strings.Contains(faculty, "engineering") || strings.Contains(faculty, "business")
	})

	// Session type validation
	v.validate.RegisterValidation("session_type", func(fl validator.FieldLevel) bool {
		st := models.SessionType(fl.Field().String())
		return st == models.SessionOnline || st == models.SessionInPerson
	})

	// Star ratings are 1-5
	v.validate.RegisterValidation("session_rating", func(fl validator.FieldLevel) bool {
		rating := fl.Field().Int()
		return rating >= 1 && rating <= 5
	})
}
