package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"
)

func newTestSessions(t *testing.T, token string) *SessionManager {
	t.Helper()
	logger := zap.NewNop()
	sm := NewSessionManager(filepath.Join(t.TempDir(), "session.json"), logger)
	if token != "" {
		if err := sm.SetSession(&Session{
			Token:     token,
			Email:     "admin@example.com",
			CreatedAt: time.Now(),
		}); err != nil {
			t.Fatalf("SetSession() error = %v", err)
		}
	}
	return sm
}

func TestFetchHolidaysAcceptsBothShapes(t *testing.T) {
	tests := []struct {
		name      string
		response  string
		wantCount int
	}{
		{"bare array", `[{"id":"1","date":"2024-06-14","type":"government"}]`, 1},
		{"data envelope", `{"data":[{"id":"1","date":"2024-06-14","type":"government"},{"id":"2","date":"2024-06-14","type":"weekly"}]}`, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/holidays/all" {
					t.Errorf("unexpected path %s", r.URL.Path)
				}
				if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
					t.Errorf("Authorization = %q, want bearer token", got)
				}
				w.Write([]byte(tt.response))
			}))
			defer server.Close()

			client := NewClient(server.URL, 0, newTestSessions(t, "test-token"), zap.NewNop())

			holidays, err := client.FetchHolidays()
			if err != nil {
				t.Fatalf("FetchHolidays() error = %v", err)
			}
			if len(holidays) != tt.wantCount {
				t.Errorf("FetchHolidays() count = %d, want %d", len(holidays), tt.wantCount)
			}
		})
	}
}

func TestMissingSessionFailsBeforeNetworkCall(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	client := NewClient(server.URL, 0, newTestSessions(t, ""), zap.NewNop())

	_, err := client.FetchHolidays()
	if !errors.Is(err, ErrNoSession) {
		t.Errorf("FetchHolidays() error = %v, want ErrNoSession", err)
	}
	if called {
		t.Error("request was sent despite missing session token")
	}
}

func TestCreateHolidayCarriesIdempotencyKey(t *testing.T) {
	var gotKey string
	var gotPayload HolidayPayload

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("Idempotency-Key")
		if err := json.NewDecoder(r.Body).Decode(&gotPayload); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		json.NewEncoder(w).Encode(Holiday{ID: "42", Date: gotPayload.Date, Type: gotPayload.Type})
	}))
	defer server.Close()

	client := NewClient(server.URL, 0, newTestSessions(t, "test-token"), zap.NewNop())

	created, err := client.CreateHoliday(HolidayPayload{
		Date:        "2024-06-14",
		Type:        HolidayTypeGovernment,
		Description: "Test",
	})
	if err != nil {
		t.Fatalf("CreateHoliday() error = %v", err)
	}

	if gotKey == "" {
		t.Error("Idempotency-Key header missing on create")
	}
	if gotPayload.Date != "2024-06-14" || gotPayload.Type != HolidayTypeGovernment {
		t.Errorf("payload = %+v", gotPayload)
	}
	if created.ID.String() != "42" {
		t.Errorf("created.ID = %q, want %q", created.ID, "42")
	}
}

func TestNonOKStatusReturnsStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"date already taken"}`, http.StatusConflict)
	}))
	defer server.Close()

	client := NewClient(server.URL, 0, newTestSessions(t, "test-token"), zap.NewNop())

	_, err := client.CreateHoliday(HolidayPayload{Date: "2024-06-14", Type: HolidayTypeWeekly})
	if err == nil {
		t.Fatal("CreateHoliday() error = nil, want StatusError")
	}

	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("error %v is not a StatusError", err)
	}
	if statusErr.Code != http.StatusConflict {
		t.Errorf("StatusError.Code = %d, want %d", statusErr.Code, http.StatusConflict)
	}
}

func TestUpdateAndDeleteAddressSingleRecord(t *testing.T) {
	var gotMethod, gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.Write([]byte(`{"id":"7","date":"2024-01-01","type":"government"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 0, newTestSessions(t, "test-token"), zap.NewNop())

	if _, err := client.UpdateHoliday("7", HolidayPayload{Date: "2024-01-01", Type: HolidayTypeGovernment}); err != nil {
		t.Fatalf("UpdateHoliday() error = %v", err)
	}
	if gotMethod != "PUT" || gotPath != "/holidays/update/7" {
		t.Errorf("update used %s %s", gotMethod, gotPath)
	}

	if err := client.DeleteHoliday("7"); err != nil {
		t.Fatalf("DeleteHoliday() error = %v", err)
	}
	if gotMethod != "DELETE" || gotPath != "/holidays/delete/7" {
		t.Errorf("delete used %s %s", gotMethod, gotPath)
	}
}

func TestLoginPersistsSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "" {
			t.Error("login must not carry a bearer token")
		}
		w.Write([]byte(`{"token":"fresh-token","user":{"id":"1","name":"Admin","email":"admin@example.com"}}`))
	}))
	defer server.Close()

	sessions := newTestSessions(t, "")
	client := NewClient(server.URL, 0, sessions, zap.NewNop())

	resp, err := client.Login("admin@example.com", "secret")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if resp.Token != "fresh-token" {
		t.Errorf("Login() token = %q", resp.Token)
	}

	token, err := sessions.Token()
	if err != nil {
		t.Fatalf("Token() after login error = %v", err)
	}
	if token != "fresh-token" {
		t.Errorf("stored token = %q, want %q", token, "fresh-token")
	}
}
