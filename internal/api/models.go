package api

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Holiday type values understood by the backend
const (
	HolidayTypeWeekly     = "weekly"
	HolidayTypeGovernment = "government"
)

// FlexibleID handles both string and number IDs from the backend.
// The API returns ID fields inconsistently (numeric for older records,
// hex strings for newer ones); this type normalizes both to string.
type FlexibleID string

// UnmarshalJSON implements json.Unmarshaler for FlexibleID
func (f *FlexibleID) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*f = FlexibleID(s)
		return nil
	}

	var n int64
	if err := json.Unmarshal(b, &n); err == nil {
		*f = FlexibleID(strconv.FormatInt(n, 10))
		return nil
	}

	return fmt.Errorf("FlexibleID: cannot unmarshal %s", string(b))
}

// MarshalJSON implements json.Marshaler for FlexibleID
func (f FlexibleID) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(f))
}

// String returns string representation
func (f FlexibleID) String() string {
	return string(f)
}

// APITime handles the backend's timestamp formats. The backend emits
// RFC 3339 for most records but +0000 offsets without a colon for
// records migrated from the legacy system.
type APITime struct {
	time.Time
}

// UnmarshalJSON implements json.Unmarshaler for APITime
func (t *APITime) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		t.Time = time.Time{}
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}

	if s == "" {
		t.Time = time.Time{}
		return nil
	}

	formats := []string{
		time.RFC3339,
		"2006-01-02T15:04:05.000-0700",
		"2006-01-02T15:04:05-0700",
		"2006-01-02 15:04:05",
		"2006-01-02",
	}

	var lastErr error
	for _, format := range formats {
		parsed, err := time.Parse(format, s)
		if err == nil {
			t.Time = parsed
			return nil
		}
		lastErr = err
	}

	return fmt.Errorf("APITime: cannot parse %q: %w", s, lastErr)
}

// MarshalJSON implements json.Marshaler for APITime
func (t APITime) MarshalJSON() ([]byte, error) {
	if t.Time.IsZero() {
		return json.Marshal("")
	}
	return json.Marshal(t.Time.Format(time.RFC3339))
}

// Holiday represents a single non-working-day record
type Holiday struct {
	ID          FlexibleID `json:"id,omitempty"`
	Date        string     `json:"date"` // YYYY-MM-DD
	Type        string     `json:"type"` // weekly | government
	Description string     `json:"description,omitempty"`
	CreatedAt   APITime    `json:"createdAt,omitempty"`
}

// HolidayPayload is the create/update request body for a holiday
type HolidayPayload struct {
	Date        string `json:"date"`
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
}

// holidayList accepts both response shapes the backend uses for
// GET /holidays/all: a bare array or an envelope { "data": [...] }
type holidayList []Holiday

func (hl *holidayList) UnmarshalJSON(b []byte) error {
	var bare []Holiday
	if err := json.Unmarshal(b, &bare); err == nil {
		*hl = bare
		return nil
	}

	var envelope struct {
		Data []Holiday `json:"data"`
	}
	if err := json.Unmarshal(b, &envelope); err != nil {
		return fmt.Errorf("holiday list: unrecognized response shape: %w", err)
	}

	*hl = envelope.Data
	return nil
}

// Employee represents an employee profile
type Employee struct {
	ID          FlexibleID `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Designation string     `json:"designation,omitempty"`
	Supervisor  string     `json:"supervisor,omitempty"`
	HourlyRate  float64    `json:"hourlyRate,omitempty"`
	JoinedAt    APITime    `json:"joinedAt,omitempty"`
}

// Project represents a project an employee can book time against
type Project struct {
	ID     FlexibleID `json:"id"`
	Name   string     `json:"name"`
	Client string     `json:"client,omitempty"`
	Active bool       `json:"active"`
}

// Designation represents a job title configured in settings
type Designation struct {
	ID    FlexibleID `json:"id"`
	Title string     `json:"title"`
}

// TimesheetEntry represents one logged day of work
type TimesheetEntry struct {
	ID         FlexibleID `json:"id"`
	EmployeeID FlexibleID `json:"employeeId"`
	Employee   string     `json:"employee,omitempty"`
	ProjectID  FlexibleID `json:"projectId,omitempty"`
	Project    string     `json:"project,omitempty"`
	Date       string     `json:"date"` // YYYY-MM-DD
	Hours      float64    `json:"hours"`
	HourlyRate float64    `json:"hourlyRate,omitempty"`
	Note       string     `json:"note,omitempty"`
}

// VacationRequest represents a vacation request
type VacationRequest struct {
	ID         FlexibleID `json:"id,omitempty"`
	EmployeeID FlexibleID `json:"employeeId,omitempty"`
	Employee   string     `json:"employee,omitempty"`
	FromDate   string     `json:"fromDate"`
	ToDate     string     `json:"toDate"`
	Reason     string     `json:"reason,omitempty"`
	Status     string     `json:"status,omitempty"` // pending | approved | rejected
	CreatedAt  APITime    `json:"createdAt,omitempty"`
}

// LoginRequest is the credential payload for POST /auth/login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the bearer token and the signed-in profile
type LoginResponse struct {
	Token     string   `json:"token"`
	ExpiresAt APITime  `json:"expiresAt,omitempty"`
	User      Employee `json:"user"`
}

// ForgotPasswordRequest asks the backend to send a reset token
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// ResetPasswordRequest redeems a reset token for a new password
type ResetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}
