package holiday

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/username/timesheet-console/internal/api"
	"github.com/username/timesheet-console/pkg/dateutil"
)

const maxDescriptionLen = 512

// Form holds the pending holiday input. SelectedFridays is populated
// only while the type is weekly in create mode and is cleared whenever
// the type changes or the form resets.
type Form struct {
	Date            string
	Type            string
	Description     string
	SelectedFridays []string
	EditingID       string // non-empty switches submission to update-by-id
}

// IsEditing reports whether the form commits via update instead of create
func (f *Form) IsEditing() bool {
	return f.EditingID != ""
}

// IsBulkWeekly reports whether submission fans out over SelectedFridays.
// Editing is always single-record, even with type weekly.
func (f *Form) IsBulkWeekly() bool {
	return !f.IsEditing() && f.Type == api.HolidayTypeWeekly && len(f.SelectedFridays) > 0
}

// SetType changes the holiday type. Choosing weekly in create mode
// derives the selected-Friday set from the visible month; any other
// transition clears it.
func (f *Form) SetType(holidayType string, month time.Month, year int) {
	f.Type = holidayType

	if holidayType == api.HolidayTypeWeekly && !f.IsEditing() {
		f.SelectedFridays = FridaysInMonth(month, year)
		return
	}
	f.SelectedFridays = nil
}

// Reset clears the form back to its empty state
func (f *Form) Reset() {
	*f = Form{}
}

// FieldRule is one declarative constraint of the form schema
type FieldRule struct {
	Field   string
	Applies func(f *Form) bool
	Check   func(f *Form) string // returns a message, or "" when satisfied
}

// formSchema is evaluated once before submission, producing a
// structured field error map instead of scattered inline checks.
var formSchema = []FieldRule{
	{
		Field:   "type",
		Applies: func(*Form) bool { return true },
		Check: func(f *Form) string {
			switch f.Type {
			case "":
				return "holiday type is required"
			case api.HolidayTypeWeekly, api.HolidayTypeGovernment:
				return ""
			default:
				return fmt.Sprintf("unknown holiday type %q", f.Type)
			}
		},
	},
	{
		Field: "date",
		// The bulk weekly path derives its dates; only single
		// create and edit need an explicit date.
		Applies: func(f *Form) bool { return !f.IsBulkWeekly() },
		Check: func(f *Form) string {
			if f.Date == "" {
				return "date is required"
			}
			if _, err := dateutil.ParseDateKey(f.Date); err != nil {
				return "date must be in YYYY-MM-DD form"
			}
			return ""
		},
	},
	{
		Field:   "selectedFridays",
		Applies: func(f *Form) bool { return f.IsBulkWeekly() },
		Check: func(f *Form) string {
			for _, d := range f.SelectedFridays {
				if _, err := dateutil.ParseDateKey(d); err != nil {
					return fmt.Sprintf("invalid date %q in selection", d)
				}
			}
			return ""
		},
	},
	{
		Field:   "description",
		Applies: func(*Form) bool { return true },
		Check: func(f *Form) string {
			if len(f.Description) > maxDescriptionLen {
				return fmt.Sprintf("description exceeds %d characters", maxDescriptionLen)
			}
			return ""
		},
	},
}

// ValidationError carries the per-field messages of a failed validation
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+": "+e.Fields[field])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Validate evaluates the schema and returns nil or a *ValidationError
func (f *Form) Validate() error {
	errs := make(map[string]string)
	for _, rule := range formSchema {
		if !rule.Applies(f) {
			continue
		}
		if msg := rule.Check(f); msg != "" {
			errs[rule.Field] = msg
		}
	}

	if len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}
	return nil
}
