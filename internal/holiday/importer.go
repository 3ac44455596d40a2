package holiday

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/username/timesheet-console/internal/api"
	"github.com/username/timesheet-console/pkg/dateutil"
	"go.uber.org/zap"
)

// ImportResult reports the outcome of a file import
type ImportResult struct {
	Created int
	Skipped int // malformed lines
	Failed  int // lines whose create call failed
}

// Importer seeds the holiday calendar from a local text file, one
// record per line:
//
//	YYYY-MM-DD type [description]
//
// Lines starting with '#' and blank lines are ignored. Malformed lines
// are logged and skipped rather than aborting the import.
type Importer struct {
	backend MutationAPI
	logger  *zap.Logger
}

// NewImporter creates a new holiday file importer
func NewImporter(backend MutationAPI, logger *zap.Logger) *Importer {
	return &Importer{backend: backend, logger: logger}
}

// ImportFile parses the file and creates one holiday per valid line
func (imp *Importer) ImportFile(filePath string) (*ImportResult, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open import file: %w", err)
	}
	defer file.Close()

	result := &ImportResult{}
	scanner := bufio.NewScanner(file)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		payload, ok := imp.parseLine(line)
		if !ok {
			result.Skipped++
			continue
		}

		if _, err := imp.backend.CreateHoliday(payload); err != nil {
			imp.logger.Warn("Import create failed",
				zap.String("date", payload.Date),
				zap.Error(err))
			result.Failed++
			continue
		}
		result.Created++
	}

	if err := scanner.Err(); err != nil {
		return result, fmt.Errorf("error reading import file: %w", err)
	}

	imp.logger.Info("Holiday import finished",
		zap.String("file", filePath),
		zap.Int("created", result.Created),
		zap.Int("skipped", result.Skipped),
		zap.Int("failed", result.Failed))

	return result, nil
}

func (imp *Importer) parseLine(line string) (api.HolidayPayload, bool) {
	parts := strings.SplitN(line, " ", 3)
	if len(parts) < 2 {
		imp.logger.Warn("Invalid import line format", zap.String("line", line))
		return api.HolidayPayload{}, false
	}

	dateStr := parts[0]
	typeStr := parts[1]
	description := ""
	if len(parts) == 3 {
		description = parts[2]
	}

	if _, err := dateutil.ParseDateKey(dateStr); err != nil {
		imp.logger.Warn("Failed to parse import date",
			zap.String("date", dateStr),
			zap.Error(err))
		return api.HolidayPayload{}, false
	}

	if typeStr != api.HolidayTypeWeekly && typeStr != api.HolidayTypeGovernment {
		imp.logger.Warn("Unknown holiday type in import",
			zap.String("type", typeStr))
		return api.HolidayPayload{}, false
	}

	return api.HolidayPayload{
		Date:        dateStr,
		Type:        typeStr,
		Description: description,
	}, true
}
