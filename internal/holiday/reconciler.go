package holiday

import (
	"errors"
	"fmt"
	"sort"

	"github.com/username/timesheet-console/internal/api"
	"go.uber.org/zap"
)

// State of the mutation reconciler
type State int

const (
	StateIdle State = iota
	StateFormOpen
	StateSubmitting
)

// ErrNoFormOpen is returned when Submit is called outside a form session
var ErrNoFormOpen = errors.New("no form open")

// ErrSubmitInFlight is returned when a submission is already running
var ErrSubmitInFlight = errors.New("submission already in flight")

// MutationAPI is the slice of the backend client the reconciler drives
type MutationAPI interface {
	CreateHoliday(payload api.HolidayPayload) (*api.Holiday, error)
	UpdateHoliday(id string, payload api.HolidayPayload) (*api.Holiday, error)
	DeleteHoliday(id string) error
}

// Notifier is the single user-visible completion channel: every
// terminal mutation outcome produces exactly one message
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// BulkResult reports the outcome of a weekly bulk create
type BulkResult struct {
	Attempted   int
	Created     int
	Compensated int    // creates rolled back after a later failure
	FailedDate  string // date whose create failed, "" on full success
}

// Reconciler translates form submissions into backend mutations and
// keeps the store consistent by awaiting a full refetch after every
// success. State machine:
//
//	Idle -> FormOpen{create|edit} -> Submitting -> Idle     (success)
//	                              \-> Submitting -> FormOpen (failure)
type Reconciler struct {
	backend  MutationAPI
	store    *Store
	notifier Notifier
	logger   *zap.Logger

	state State
	form  *Form
}

// NewReconciler creates a new mutation reconciler
func NewReconciler(backend MutationAPI, store *Store, notifier Notifier, logger *zap.Logger) *Reconciler {
	return &Reconciler{
		backend:  backend,
		store:    store,
		notifier: notifier,
		logger:   logger,
		state:    StateIdle,
	}
}

// State returns the reconciler state
func (r *Reconciler) State() State {
	return r.state
}

// Form returns the open form, or nil when idle
func (r *Reconciler) Form() *Form {
	return r.form
}

// OpenCreateForm opens a create form, pre-populated with the clicked
// cell's date when one was given
func (r *Reconciler) OpenCreateForm(dateKey string) *Form {
	r.form = &Form{Date: dateKey}
	r.state = StateFormOpen
	return r.form
}

// OpenEditForm opens an edit form pre-populated from an existing record.
// Edit always commits as a single update-by-id.
func (r *Reconciler) OpenEditForm(h api.Holiday) *Form {
	r.form = &Form{
		Date:        h.Date,
		Type:        h.Type,
		Description: h.Description,
		EditingID:   h.ID.String(),
	}
	r.state = StateFormOpen
	return r.form
}

// Cancel abandons the open form
func (r *Reconciler) Cancel() {
	r.form = nil
	r.state = StateIdle
}

// Submit validates and commits the open form. Validation failures and
// backend errors leave the form open for another attempt; success
// refreshes the store and returns to idle.
func (r *Reconciler) Submit() error {
	switch r.state {
	case StateIdle:
		return ErrNoFormOpen
	case StateSubmitting:
		return ErrSubmitInFlight
	}

	form := r.form

	if err := form.Validate(); err != nil {
		r.notifier.Error(err.Error())
		return err
	}

	r.state = StateSubmitting

	var err error
	switch {
	case form.IsEditing():
		err = r.submitEdit(form)
	case form.IsBulkWeekly():
		err = r.submitBulkWeekly(form)
	default:
		err = r.submitCreate(form)
	}

	if err != nil {
		r.state = StateFormOpen
		return err
	}

	r.refreshStore()
	r.form = nil
	r.state = StateIdle
	return nil
}

// Delete removes a single record by id. Confirmation is the caller's
// concern; the reconciler itself is non-interactive.
func (r *Reconciler) Delete(id string) error {
	if r.state == StateSubmitting {
		return ErrSubmitInFlight
	}

	if err := r.backend.DeleteHoliday(id); err != nil {
		r.notifier.Error("Failed to delete holiday: " + err.Error())
		return err
	}

	r.refreshStore()
	r.notifier.Success("Holiday deleted")
	return nil
}

func (r *Reconciler) submitCreate(form *Form) error {
	created, err := r.backend.CreateHoliday(api.HolidayPayload{
		Date:        form.Date,
		Type:        form.Type,
		Description: form.Description,
	})
	if err != nil {
		r.notifier.Error("Failed to create holiday: " + err.Error())
		return err
	}

	r.notifier.Success(fmt.Sprintf("Holiday created for %s", created.Date))
	return nil
}

func (r *Reconciler) submitEdit(form *Form) error {
	updated, err := r.backend.UpdateHoliday(form.EditingID, api.HolidayPayload{
		Date:        form.Date,
		Type:        form.Type,
		Description: form.Description,
	})
	if err != nil {
		r.notifier.Error("Failed to update holiday: " + err.Error())
		return err
	}

	r.notifier.Success(fmt.Sprintf("Holiday %s updated", updated.ID))
	return nil
}

// submitBulkWeekly creates one record per selected Friday, sequentially
// and in ascending date order. The loop is not transactional on the
// backend, so a mid-loop failure triggers compensating deletes of the
// records already created, and the outcome reports counts either way.
func (r *Reconciler) submitBulkWeekly(form *Form) error {
	dates := append([]string(nil), form.SelectedFridays...)
	sort.Strings(dates)

	result := BulkResult{Attempted: len(dates)}
	var createdIDs []string

	for _, date := range dates {
		created, err := r.backend.CreateHoliday(api.HolidayPayload{
			Date:        date,
			Type:        api.HolidayTypeWeekly,
			Description: form.Description,
		})
		if err != nil {
			result.FailedDate = date
			result.Compensated = r.compensate(createdIDs)
			r.logger.Error("Bulk weekly create failed",
				zap.String("failed_date", date),
				zap.Int("created_before_failure", result.Created),
				zap.Int("compensated", result.Compensated),
				zap.Error(err))
			r.notifier.Error(fmt.Sprintf(
				"Weekly holidays failed at %s: %d of %d created, %d rolled back: %v",
				date, result.Created, result.Attempted, result.Compensated, err))
			r.refreshStore()
			return fmt.Errorf("bulk weekly create failed at %s: %w", date, err)
		}

		createdIDs = append(createdIDs, created.ID.String())
		result.Created++
	}

	r.notifier.Success(fmt.Sprintf("Marked %d Fridays as weekly holidays", result.Created))
	return nil
}

// compensate deletes the records created before a bulk failure,
// restoring the pre-submit state as far as the backend allows. Deletes
// that fail themselves are logged and skipped; the refetch will show
// whatever truly remains.
func (r *Reconciler) compensate(createdIDs []string) int {
	compensated := 0
	for _, id := range createdIDs {
		if err := r.backend.DeleteHoliday(id); err != nil {
			r.logger.Warn("Compensating delete failed",
				zap.String("id", id),
				zap.Error(err))
			continue
		}
		compensated++
	}
	return compensated
}

// refreshStore awaits the post-mutation refetch. A refresh failure is
// not a mutation failure: the store notifies on its own and empties.
func (r *Reconciler) refreshStore() {
	if err := r.store.Refresh(); err != nil {
		r.logger.Warn("Post-mutation refresh failed", zap.Error(err))
	}
}
