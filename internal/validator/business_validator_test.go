package validator

import (
	"reflect"
	"testing"
)

func validTutorRequest() *RegisterTutorRequest {
	return &RegisterTutorRequest{
		Name:            "Chinwe Adebayo",
		Email:           "chinwe@ucu.ac.ug",
		Password:        "password",
		CGPA:            "4.85",
		Year:            4,
		Major:           "Computer Science",
		Faculty:         "Engineering & Technology",
		Specializations: "Data Structures, Algorithms",
	}
}

func TestValidateTutorRegistration_CGPAGate(t *testing.T) {
	v := New()

	tests := []struct {
		name     string
		cgpa     string
		wantErrs int
		wantRule string
	}{
		{"lower bound accepted", "4.5", 0, ""},
		{"upper bound accepted", "5.0", 0, ""},
		{"mid range accepted", "4.85", 0, ""},
		{"just below threshold", "4.49", 1, "tutor_cgpa"},
		{"above scale", "5.01", 1, "tutor_cgpa"},
		{"well below threshold", "3.2", 1, "tutor_cgpa"},
		{"not a number", "four point five", 1, "business_logic"},
		{"whitespace trimmed", " 4.7 ", 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validTutorRequest()
			req.CGPA = tt.cgpa

			_, errs := v.ValidateTutorRegistration(req)
			if len(errs) != tt.wantErrs {
				t.Fatalf("Expected %d errors, got %d: %v", tt.wantErrs, len(errs), errs)
			}
			if tt.wantErrs > 0 {
				if errs[0].Field != "cgpa" {
					t.Errorf("Expected error on cgpa field, got %s", errs[0].Field)
				}
				if errs[0].Rule != tt.wantRule {
					t.Errorf("Expected rule %s, got %s", tt.wantRule, errs[0].Rule)
				}
			}
		})
	}
}

func TestValidate_StudentRegistration(t *testing.T) {
	v := New()

	tests := []struct {
		name      string
		mutate    func(*RegisterStudentRequest)
		wantField string
	}{
		{"valid request", func(r *RegisterStudentRequest) {}, ""},
		{"password too short", func(r *RegisterStudentRequest) { r.Password = "12345" }, "Password"},
		{"invalid email", func(r *RegisterStudentRequest) { r.Email = "not-an-email" }, "Email"},
		{"year out of range", func(r *RegisterStudentRequest) { r.Year = 5 }, "Year"},
		{"unknown faculty", func(r *RegisterStudentRequest) { r.Faculty = "Medicine" }, "Faculty"},
		{"missing name", func(r *RegisterStudentRequest) { r.Name = "" }, "Name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := &RegisterStudentRequest{
				Name:     "Amara Okafor",
				Email:    "amara@ucu.ac.ug",
				Password: "password",
				Year:     3,
				Major:    "Software Engineering",
				Faculty:  "Engineering & Technology",
			}
			tt.mutate(req)

			errs := v.Validate(req)
			if tt.wantField == "" {
				if len(errs) != 0 {
					t.Fatalf("Expected no errors, got %v", errs)
				}
				return
			}
			if len(errs) == 0 {
				t.Fatal("Expected validation errors, got none")
			}
			if errs[0].Field != tt.wantField {
				t.Errorf("Expected error on %s, got %s", tt.wantField, errs[0].Field)
			}
		})
	}
}

func TestValidate_BookSessionRequest(t *testing.T) {
	v := New()

	req := &BookSessionRequest{
		TutorID:  "listing-1",
		Course:   "ENG201",
		Date:     "2025-10-03",
		TimeSlot: "02:00 PM",
		Type:     "online",
	}
	if errs := v.Validate(req); len(errs) != 0 {
		t.Fatalf("Expected valid request, got %v", errs)
	}

	req.Type = "hybrid"
	errs := v.Validate(req)
	if len(errs) != 1 || errs[0].Rule != "session_type" {
		t.Fatalf("Expected session_type error, got %v", errs)
	}

	req.Type = "in-person"
	req.Date = "03-10-2025"
	errs = v.Validate(req)
	if len(errs) != 1 || errs[0].Field != "Date" {
		t.Fatalf("Expected date format error, got %v", errs)
	}
}

func TestValidate_RateSessionRequest(t *testing.T) {
	v := New()

	for rating := 1; rating <= 5; rating++ {
		if errs := v.Validate(&RateSessionRequest{Rating: rating}); len(errs) != 0 {
			t.Errorf("Rating %d should be valid, got %v", rating, errs)
		}
	}

	for _, rating := range []int{0, 6, -1} {
		errs := v.Validate(&RateSessionRequest{Rating: rating})
		if len(errs) == 0 {
			t.Errorf("Rating %d should be rejected", rating)
		}
	}
}

func TestSplitSpecializations(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"simple list", "Data Structures, Algorithms", []string{"Data Structures", "Algorithms"}},
		{"extra whitespace", "  Calculus ,  Linear Algebra  ", []string{"Calculus", "Linear Algebra"}},
		{"empty entries dropped", "Physics,,Chemistry,", []string{"Physics", "Chemistry"}},
		{"single entry", "Accounting", []string{"Accounting"}},
		{"empty string", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitSpecializations(tt.raw)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitSpecializations(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}
