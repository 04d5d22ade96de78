package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/leo9226/zhs-crawler/internal/court"
)

// Report is the artifact written at the end of a run: what was requested,
// what the final cycle found, and how the run ended. It is an output record
// only and is never read back as a cache of court state.
type Report struct {
	GeneratedAt time.Time            `json:"generated_at"`
	Date        string               `json:"date"`
	StartHour   int                  `json:"start_hour"`
	EndHour     int                  `json:"end_hour"`
	Receiver    string               `json:"receiver"`
	Outcome     string               `json:"outcome"` // booked | match_found | failed
	Booked      *court.FreeInterval  `json:"booked,omitempty"`
	BookedStart string               `json:"booked_start,omitempty"` // HH:MM
	Relevant    []court.FreeInterval `json:"relevant"`
}

// Storage persists run artifacts (report JSON, calendar invite) in a data
// directory.
type Storage struct {
	dataDir string
}

// New creates a Storage instance, expanding ~ and creating the directory if
// needed.
func New(dataDir string) (*Storage, error) {
	if strings.HasPrefix(dataDir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, dataDir[2:])
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	return &Storage{
		dataDir: dataDir,
	}, nil
}

// WriteReport writes the run report as pretty-printed JSON and returns the
// file path.
func (s *Storage) WriteReport(rep Report) (string, error) {
	path := filepath.Join(s.dataDir, fmt.Sprintf("report_%s.json", rep.Date))

	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding report: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing report: %w", err)
	}
	return path, nil
}

// WriteCalendar writes an .ics confirmation next to the report and returns
// the file path.
func (s *Storage) WriteCalendar(date string, content string) (string, error) {
	path := filepath.Join(s.dataDir, fmt.Sprintf("booking_%s.ics", date))

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("writing calendar file: %w", err)
	}
	return path, nil
}
