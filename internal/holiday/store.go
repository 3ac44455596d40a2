package holiday

import (
	"fmt"

	"github.com/username/timesheet-console/internal/api"
	"go.uber.org/zap"
)

// Fetcher fetches the full holiday list from the backend
type Fetcher interface {
	FetchHolidays() ([]api.Holiday, error)
}

// Store is the client-held holiday list. It has no incremental
// patching: after every successful mutation the whole list is fetched
// again, which is the only consistency mechanism with the server.
type Store struct {
	fetcher  Fetcher
	notifier Notifier
	holidays []api.Holiday
	logger   *zap.Logger
}

// NewStore creates a new holiday store
func NewStore(fetcher Fetcher, notifier Notifier, logger *zap.Logger) *Store {
	return &Store{
		fetcher:  fetcher,
		notifier: notifier,
		logger:   logger,
	}
}

// Refresh replaces the cached list with the server's. On failure the
// store resets to empty and the error is surfaced through the notifier;
// the calendar stays usable, just blank.
func (s *Store) Refresh() error {
	holidays, err := s.fetcher.FetchHolidays()
	if err != nil {
		s.holidays = nil
		s.logger.Warn("Holiday refresh failed, store emptied", zap.Error(err))
		if s.notifier != nil {
			s.notifier.Error("Failed to load holidays: " + err.Error())
		}
		return fmt.Errorf("holiday refresh failed: %w", err)
	}

	s.holidays = holidays
	s.logger.Info("Holiday store refreshed", zap.Int("count", len(holidays)))
	return nil
}

// All returns the cached holiday list in server order
func (s *Store) All() []api.Holiday {
	return s.holidays
}

// ByDate returns every record matching the YYYY-MM-DD key. Linear scan:
// the list is at most a few hundred records per year.
func (s *Store) ByDate(dateKey string) []api.Holiday {
	var matches []api.Holiday
	for _, h := range s.holidays {
		if h.Date == dateKey {
			matches = append(matches, h)
		}
	}
	return matches
}

// ByID returns the record with the given id, if cached
func (s *Store) ByID(id string) (*api.Holiday, bool) {
	for i := range s.holidays {
		if s.holidays[i].ID.String() == id {
			return &s.holidays[i], true
		}
	}
	return nil, false
}
