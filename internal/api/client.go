package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const defaultTimeout = 30 * time.Second

// StatusError represents a non-2xx response from the backend
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("API request failed with status %d: %s", e.Code, e.Body)
}

// Client represents the workforce backend API client
type Client struct {
	baseURL    string
	sessions   *SessionManager
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a new backend API client. A non-positive timeout
// falls back to the default.
func NewClient(baseURL string, timeout time.Duration, sessions *SessionManager, logger *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:  baseURL,
		sessions: sessions,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// Login authenticates with the backend and persists the session
func (c *Client) Login(email, password string) (*LoginResponse, error) {
	req := LoginRequest{Email: email, Password: password}

	var resp LoginResponse
	if err := c.doUnauthenticated("POST", "/auth/login", req, &resp); err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}

	session := &Session{
		Token:     resp.Token,
		Email:     email,
		User:      resp.User.Name,
		ExpiresAt: resp.ExpiresAt.Time,
		CreatedAt: time.Now(),
	}
	if err := c.sessions.SetSession(session); err != nil {
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}

	c.logger.Info("Logged in",
		zap.String("email", email),
		zap.String("user", resp.User.Name))

	return &resp, nil
}

// ForgotPassword asks the backend to issue a password reset token
func (c *Client) ForgotPassword(email string) error {
	req := ForgotPasswordRequest{Email: email}
	if err := c.doUnauthenticated("POST", "/auth/forgot-password", req, nil); err != nil {
		return fmt.Errorf("forgot-password request failed: %w", err)
	}

	c.logger.Info("Password reset requested", zap.String("email", email))
	return nil
}

// ResetPassword redeems a reset token for a new password
func (c *Client) ResetPassword(token, newPassword string) error {
	req := ResetPasswordRequest{Token: token, NewPassword: newPassword}
	if err := c.doUnauthenticated("POST", "/auth/reset-password", req, nil); err != nil {
		return fmt.Errorf("reset-password request failed: %w", err)
	}

	c.logger.Info("Password reset completed")
	return nil
}

// FetchHolidays fetches the full holiday list
func (c *Client) FetchHolidays() ([]Holiday, error) {
	var list holidayList
	if err := c.doRequest("GET", "/holidays/all", nil, &list); err != nil {
		return nil, fmt.Errorf("failed to fetch holidays: %w", err)
	}

	c.logger.Info("Holidays fetched", zap.Int("count", len(list)))
	return list, nil
}

// CreateHoliday creates a single holiday record. Each create carries a
// client-generated Idempotency-Key so a duplicate submission of the
// same logical create cannot produce two records.
func (c *Client) CreateHoliday(payload HolidayPayload) (*Holiday, error) {
	var created Holiday
	headers := map[string]string{"Idempotency-Key": uuid.NewString()}
	if err := c.doRequestHeaders("POST", "/holidays/create", payload, &created, headers); err != nil {
		return nil, fmt.Errorf("failed to create holiday for %s: %w", payload.Date, err)
	}

	c.logger.Info("Holiday created",
		zap.String("id", created.ID.String()),
		zap.String("date", payload.Date),
		zap.String("type", payload.Type))

	return &created, nil
}

// UpdateHoliday updates a single holiday record by id with the full payload
func (c *Client) UpdateHoliday(id string, payload HolidayPayload) (*Holiday, error) {
	var updated Holiday
	path := fmt.Sprintf("/holidays/update/%s", url.PathEscape(id))
	if err := c.doRequest("PUT", path, payload, &updated); err != nil {
		return nil, fmt.Errorf("failed to update holiday %s: %w", id, err)
	}

	c.logger.Info("Holiday updated",
		zap.String("id", id),
		zap.String("date", payload.Date),
		zap.String("type", payload.Type))

	return &updated, nil
}

// DeleteHoliday deletes a single holiday record by id
func (c *Client) DeleteHoliday(id string) error {
	path := fmt.Sprintf("/holidays/delete/%s", url.PathEscape(id))
	if err := c.doRequest("DELETE", path, nil, nil); err != nil {
		return fmt.Errorf("failed to delete holiday %s: %w", id, err)
	}

	c.logger.Info("Holiday deleted", zap.String("id", id))
	return nil
}

// FetchEmployees fetches all employee profiles
func (c *Client) FetchEmployees() ([]Employee, error) {
	var employees []Employee
	if err := c.doRequest("GET", "/employees/all", nil, &employees); err != nil {
		return nil, fmt.Errorf("failed to fetch employees: %w", err)
	}

	c.logger.Info("Employees fetched", zap.Int("count", len(employees)))
	return employees, nil
}

// FetchProjects fetches all projects
func (c *Client) FetchProjects() ([]Project, error) {
	var projects []Project
	if err := c.doRequest("GET", "/projects/all", nil, &projects); err != nil {
		return nil, fmt.Errorf("failed to fetch projects: %w", err)
	}

	c.logger.Info("Projects fetched", zap.Int("count", len(projects)))
	return projects, nil
}

// FetchDesignations fetches the configured designations
func (c *Client) FetchDesignations() ([]Designation, error) {
	var designations []Designation
	if err := c.doRequest("GET", "/designations/all", nil, &designations); err != nil {
		return nil, fmt.Errorf("failed to fetch designations: %w", err)
	}

	return designations, nil
}

// FetchTimesheets fetches timesheet entries for an inclusive date range
func (c *Client) FetchTimesheets(from, to time.Time) ([]TimesheetEntry, error) {
	path := fmt.Sprintf("/timesheets/range?from=%s&to=%s",
		from.Format("2006-01-02"), to.Format("2006-01-02"))

	var entries []TimesheetEntry
	if err := c.doRequest("GET", path, nil, &entries); err != nil {
		return nil, fmt.Errorf("failed to fetch timesheets: %w", err)
	}

	c.logger.Info("Timesheets fetched",
		zap.Time("from", from),
		zap.Time("to", to),
		zap.Int("count", len(entries)))

	return entries, nil
}

// FetchVacations fetches all vacation requests
func (c *Client) FetchVacations() ([]VacationRequest, error) {
	var vacations []VacationRequest
	if err := c.doRequest("GET", "/vacations/all", nil, &vacations); err != nil {
		return nil, fmt.Errorf("failed to fetch vacations: %w", err)
	}

	return vacations, nil
}

// CreateVacation submits a new vacation request
func (c *Client) CreateVacation(req VacationRequest) (*VacationRequest, error) {
	var created VacationRequest
	if err := c.doRequest("POST", "/vacations/create", req, &created); err != nil {
		return nil, fmt.Errorf("failed to create vacation request: %w", err)
	}

	c.logger.Info("Vacation request created",
		zap.String("from", req.FromDate),
		zap.String("to", req.ToDate))

	return &created, nil
}

// doRequest performs an authenticated request. The session token is a
// precondition: its absence fails the call before anything is sent.
func (c *Client) doRequest(method, path string, body interface{}, result interface{}) error {
	return c.doRequestHeaders(method, path, body, result, nil)
}

func (c *Client) doRequestHeaders(method, path string, body interface{}, result interface{}, headers map[string]string) error {
	token, err := c.sessions.Token()
	if err != nil {
		return err
	}

	if headers == nil {
		headers = map[string]string{}
	}
	headers["Authorization"] = "Bearer " + token

	return c.doRequestOnce(method, path, body, result, headers)
}

// doUnauthenticated performs a request without a bearer token (auth endpoints)
func (c *Client) doUnauthenticated(method, path string, body interface{}, result interface{}) error {
	return c.doRequestOnce(method, path, body, result, nil)
}

// doRequestOnce performs a single HTTP request. Errors are terminal for
// the triggering action; there is no automatic retry.
func (c *Client) doRequestOnce(method, path string, body interface{}, result interface{}, headers map[string]string) error {
	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequest(method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{Code: resp.StatusCode, Body: string(respBody)}
	}

	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
	}

	return nil
}
