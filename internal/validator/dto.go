package validator

// RegisterStudentRequest carries the student signup form.
type RegisterStudentRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	Year     int    `json:"year" validate:"required,academic_year"`
	Major    string `json:"major" validate:"required,max=100"`
	Faculty  string `json:"faculty" validate:"required,faculty"`
	Bio      string `json:"bio" validate:"omitempty,max=1000"`
}

// RegisterTutorRequest carries the tutor signup form. CGPA arrives as
// the raw form string and is parsed and range-checked by the business
// validator.
type RegisterTutorRequest struct {
	Name            string `json:"name" validate:"required,max=100"`
	Email           string `json:"email" validate:"required,email,max=255"`
	Password        string `json:"password" validate:"required,min=6,max=72"`
	CGPA            string `json:"cgpa" validate:"required"`
	Year            int    `json:"year" validate:"required,academic_year"`
	Major           string `json:"major" validate:"required,max=100"`
	Faculty         string `json:"faculty" validate:"required,faculty"`
	Specializations string `json:"specializations" validate:"required,max=500"`
	Bio             string `json:"bio" validate:"omitempty,max=1000"`
}

// LoginRequest carries login credentials.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// BookSessionRequest creates a confirmed booking with a tutor.
type BookSessionRequest struct {
	TutorID  string `json:"tutor_id" validate:"required"`
	Course   string `json:"course" validate:"required,max=100"`
	Date     string `json:"date" validate:"required,datetime=2006-01-02"`
	TimeSlot string `json:"time_slot" validate:"required"`
	Type     string `json:"type" validate:"required,session_type"`
	Notes    string `json:"notes" validate:"omitempty,max=1000"`
}

// RateSessionRequest rates a completed session.
type RateSessionRequest struct {
	Rating   int    `json:"rating" validate:"required,session_rating"`
	Feedback string `json:"feedback" validate:"omitempty,max=1000"`
}

// SendMessageRequest appends a message to a chat.
type SendMessageRequest struct {
	Text string `json:"text" validate:"required,max=2000"`
}
