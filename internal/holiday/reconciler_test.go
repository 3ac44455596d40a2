package holiday

import (
	"errors"
	"fmt"
	"strconv"
	"testing"
	"time"

	"github.com/username/timesheet-console/internal/api"
	"go.uber.org/zap"
)

// fakeBackend records mutations and serves fetches from its in-memory list
type fakeBackend struct {
	holidays []api.Holiday
	nextID   int

	creates []api.HolidayPayload
	updates map[string]api.HolidayPayload
	deletes []string

	failFetch      bool
	failCreateDate string // create for this date fails
	failDeleteIDs  map[string]bool
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		nextID:        1,
		updates:       make(map[string]api.HolidayPayload),
		failDeleteIDs: make(map[string]bool),
	}
}

func (f *fakeBackend) FetchHolidays() ([]api.Holiday, error) {
	if f.failFetch {
		return nil, errors.New("backend unreachable")
	}
	return append([]api.Holiday(nil), f.holidays...), nil
}

func (f *fakeBackend) CreateHoliday(payload api.HolidayPayload) (*api.Holiday, error) {
	f.creates = append(f.creates, payload)
	if payload.Date == f.failCreateDate {
		return nil, errors.New("create rejected")
	}

	created := api.Holiday{
		ID:          api.FlexibleID(strconv.Itoa(f.nextID)),
		Date:        payload.Date,
		Type:        payload.Type,
		Description: payload.Description,
	}
	f.nextID++
	f.holidays = append(f.holidays, created)
	return &created, nil
}

func (f *fakeBackend) UpdateHoliday(id string, payload api.HolidayPayload) (*api.Holiday, error) {
	f.updates[id] = payload
	for i := range f.holidays {
		if f.holidays[i].ID.String() == id {
			f.holidays[i].Date = payload.Date
			f.holidays[i].Type = payload.Type
			f.holidays[i].Description = payload.Description
			return &f.holidays[i], nil
		}
	}
	return nil, fmt.Errorf("holiday %s not found", id)
}

func (f *fakeBackend) DeleteHoliday(id string) error {
	if f.failDeleteIDs[id] {
		return errors.New("delete rejected")
	}
	f.deletes = append(f.deletes, id)
	for i := range f.holidays {
		if f.holidays[i].ID.String() == id {
			f.holidays = append(f.holidays[:i], f.holidays[i+1:]...)
			break
		}
	}
	return nil
}

// fakeNotifier captures toast-equivalent messages
type fakeNotifier struct {
	successes []string
	errors    []string
}

func (n *fakeNotifier) Success(msg string) { n.successes = append(n.successes, msg) }
func (n *fakeNotifier) Error(msg string)   { n.errors = append(n.errors, msg) }

func newTestReconciler(backend *fakeBackend) (*Reconciler, *Store, *fakeNotifier) {
	notifier := &fakeNotifier{}
	store := NewStore(backend, notifier, zap.NewNop())
	return NewReconciler(backend, store, notifier, zap.NewNop()), store, notifier
}

func TestSubmitWithoutFormFails(t *testing.T) {
	rec, _, _ := newTestReconciler(newFakeBackend())

	if err := rec.Submit(); !errors.Is(err, ErrNoFormOpen) {
		t.Errorf("Submit() with no form error = %v, want ErrNoFormOpen", err)
	}
}

func TestSingleCreateRoundTrip(t *testing.T) {
	backend := newFakeBackend()
	rec, store, notifier := newTestReconciler(backend)

	form := rec.OpenCreateForm("2024-06-14")
	form.Type = api.HolidayTypeGovernment
	form.Description = "Test"

	if err := rec.Submit(); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	if rec.State() != StateIdle {
		t.Errorf("state after success = %v, want StateIdle", rec.State())
	}
	if len(backend.creates) != 1 {
		t.Fatalf("create calls = %d, want 1", len(backend.creates))
	}

	// Refetch is the consistency mechanism: the store must hold exactly
	// the created record with its server id
	matches := store.ByDate("2024-06-14")
	if len(matches) != 1 {
		t.Fatalf("store has %d records for 2024-06-14, want 1", len(matches))
	}
	got := matches[0]
	if got.ID == "" || got.Type != api.HolidayTypeGovernment || got.Description != "Test" {
		t.Errorf("stored record = %+v", got)
	}

	if len(notifier.successes) != 1 || len(notifier.errors) != 0 {
		t.Errorf("notifications = %d success, %d error; want exactly one success",
			len(notifier.successes), len(notifier.errors))
	}
}

func TestValidationFailureKeepsFormOpen(t *testing.T) {
	backend := newFakeBackend()
	rec, _, notifier := newTestReconciler(backend)

	form := rec.OpenCreateForm("")
	form.Type = "" // missing required type and date

	err := rec.Submit()
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("Submit() error = %v, want ValidationError", err)
	}

	if rec.State() != StateFormOpen {
		t.Errorf("state after validation failure = %v, want StateFormOpen", rec.State())
	}
	if len(backend.creates) != 0 {
		t.Errorf("create calls = %d, want 0 (no partial effect before validation)", len(backend.creates))
	}
	if _, ok := vErr.Fields["type"]; !ok {
		t.Errorf("error map missing 'type': %v", vErr.Fields)
	}
	if _, ok := vErr.Fields["date"]; !ok {
		t.Errorf("error map missing 'date': %v", vErr.Fields)
	}
	if len(notifier.errors) != 1 {
		t.Errorf("error notifications = %d, want 1", len(notifier.errors))
	}
}

func TestBulkWeeklyCreatesEveryFridayAscending(t *testing.T) {
	backend := newFakeBackend()
	rec, store, notifier := newTestReconciler(backend)

	form := rec.OpenCreateForm("")
	form.SetType(api.HolidayTypeWeekly, time.June, 2024) // 4 Fridays
	form.Description = "weekend"

	if err := rec.Submit(); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	want := []string{"2024-06-07", "2024-06-14", "2024-06-21", "2024-06-28"}
	if len(backend.creates) != len(want) {
		t.Fatalf("create calls = %d, want %d", len(backend.creates), len(want))
	}
	for i, payload := range backend.creates {
		if payload.Date != want[i] {
			t.Errorf("create[%d].Date = %q, want %q (ascending order)", i, payload.Date, want[i])
		}
		if payload.Type != api.HolidayTypeWeekly || payload.Description != "weekend" {
			t.Errorf("create[%d] payload = %+v", i, payload)
		}
	}

	if len(store.All()) != 4 {
		t.Errorf("store size after refetch = %d, want 4", len(store.All()))
	}
	if len(notifier.successes) != 1 {
		t.Errorf("success notifications = %d, want 1", len(notifier.successes))
	}
}

func TestBulkWeeklyFailureCompensatesPriorCreates(t *testing.T) {
	backend := newFakeBackend()
	backend.failCreateDate = "2024-06-21" // third Friday fails
	rec, store, notifier := newTestReconciler(backend)

	form := rec.OpenCreateForm("")
	form.SetType(api.HolidayTypeWeekly, time.June, 2024)

	if err := rec.Submit(); err == nil {
		t.Fatal("Submit() error = nil, want bulk failure")
	}

	if rec.State() != StateFormOpen {
		t.Errorf("state after bulk failure = %v, want StateFormOpen", rec.State())
	}

	// Attempts stop at the failure: 3 create calls, not 4
	if len(backend.creates) != 3 {
		t.Errorf("create calls = %d, want 3 (abort after failure)", len(backend.creates))
	}

	// The two successful creates are rolled back
	if len(backend.deletes) != 2 {
		t.Errorf("compensating deletes = %d, want 2", len(backend.deletes))
	}
	if len(backend.holidays) != 0 {
		t.Errorf("backend still holds %d records after compensation", len(backend.holidays))
	}
	if len(store.All()) != 0 {
		t.Errorf("store holds %d records after compensated failure", len(store.All()))
	}

	if len(notifier.errors) != 1 {
		t.Fatalf("error notifications = %d, want 1", len(notifier.errors))
	}
}

func TestEditChangesOnlyDescription(t *testing.T) {
	backend := newFakeBackend()
	backend.holidays = []api.Holiday{
		{ID: "10", Date: "2024-01-01", Type: api.HolidayTypeGovernment, Description: "New Year"},
	}
	rec, _, _ := newTestReconciler(backend)

	form := rec.OpenEditForm(backend.holidays[0])
	form.Description = "New Year's Day"

	if err := rec.Submit(); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	payload, ok := backend.updates["10"]
	if !ok {
		t.Fatal("update-by-id was not called for record 10")
	}
	if payload.Date != "2024-01-01" || payload.Type != api.HolidayTypeGovernment {
		t.Errorf("update carried date=%q type=%q, want original values", payload.Date, payload.Type)
	}
	if payload.Description != "New Year's Day" {
		t.Errorf("update description = %q", payload.Description)
	}
	if len(backend.creates) != 0 {
		t.Errorf("edit issued %d create calls, want 0", len(backend.creates))
	}
}

func TestEditWithWeeklyTypeStaysSingleRecord(t *testing.T) {
	backend := newFakeBackend()
	backend.holidays = []api.Holiday{
		{ID: "5", Date: "2024-06-07", Type: api.HolidayTypeGovernment},
	}
	rec, _, _ := newTestReconciler(backend)

	form := rec.OpenEditForm(backend.holidays[0])
	form.SetType(api.HolidayTypeWeekly, time.June, 2024)

	if len(form.SelectedFridays) != 0 {
		t.Errorf("edit form derived %d Fridays, want none (edit is single-record)", len(form.SelectedFridays))
	}

	if err := rec.Submit(); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if len(backend.creates) != 0 {
		t.Errorf("edit with weekly type issued %d creates, want 0", len(backend.creates))
	}
	if _, ok := backend.updates["5"]; !ok {
		t.Error("expected single update-by-id")
	}
}

func TestDeleteRemovesOnlyTargetRecord(t *testing.T) {
	backend := newFakeBackend()
	backend.holidays = []api.Holiday{
		{ID: "1", Date: "2024-06-07", Type: api.HolidayTypeWeekly},
		{ID: "2", Date: "2024-06-14", Type: api.HolidayTypeGovernment},
	}
	rec, store, notifier := newTestReconciler(backend)

	if err := rec.Delete("1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	if len(backend.deletes) != 1 || backend.deletes[0] != "1" {
		t.Errorf("deletes = %v, want just record 1", backend.deletes)
	}
	if len(backend.updates) != 0 || len(backend.creates) != 0 {
		t.Error("delete triggered unrelated mutations")
	}

	remaining := store.All()
	if len(remaining) != 1 || remaining[0].ID.String() != "2" {
		t.Errorf("store after delete = %+v, want only record 2", remaining)
	}
	if len(notifier.successes) != 1 {
		t.Errorf("success notifications = %d, want 1", len(notifier.successes))
	}
}

func TestCancelResetsToIdle(t *testing.T) {
	rec, _, _ := newTestReconciler(newFakeBackend())

	rec.OpenCreateForm("2024-06-14")
	rec.Cancel()

	if rec.State() != StateIdle {
		t.Errorf("state after cancel = %v, want StateIdle", rec.State())
	}
	if rec.Form() != nil {
		t.Error("form not cleared by cancel")
	}
}
