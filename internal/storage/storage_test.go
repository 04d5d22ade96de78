package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/leo9226/zhs-crawler/internal/court"
)

func TestWriteReport(t *testing.T) {
	dir := t.TempDir()
	s, err := New(dir)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	booked := court.FreeInterval{Court: 3, Start: 16 * 60, End: 18 * 60}
	rep := Report{
		GeneratedAt: time.Now().UTC(),
		Date:        "2022-10-15",
		StartHour:   16,
		EndHour:     18,
		Receiver:    "dalai.lama@tibet.com",
		Outcome:     "booked",
		Booked:      &booked,
		BookedStart: "16:00",
		Relevant:    []court.FreeInterval{booked},
	}

	path, err := s.WriteReport(rep)
	if err != nil {
		t.Fatalf("WriteReport() error = %v", err)
	}
	if filepath.Base(path) != "report_2022-10-15.json" {
		t.Errorf("report path = %q", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var decoded Report
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("report is not valid JSON: %v", err)
	}
	if decoded.Outcome != "booked" {
		t.Errorf("outcome = %q, want booked", decoded.Outcome)
	}
	if decoded.Booked == nil || decoded.Booked.Court != 3 {
		t.Errorf("booked = %+v", decoded.Booked)
	}
	if len(decoded.Relevant) != 1 {
		t.Errorf("relevant = %+v", decoded.Relevant)
	}
}

func TestWriteCalendar(t *testing.T) {
	dir := t.TempDir()
	s, err := New(dir)
	if err != nil {
		t.Fatal(err)
	}

	path, err := s.WriteCalendar("2022-10-15", "BEGIN:VCALENDAR\r\nEND:VCALENDAR\r\n")
	if err != nil {
		t.Fatalf("WriteCalendar() error = %v", err)
	}
	if filepath.Base(path) != "booking_2022-10-15.ics" {
		t.Errorf("calendar path = %q", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "BEGIN:VCALENDAR") {
		t.Errorf("calendar content = %q", data)
	}
}

func TestNewCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")

	if _, err := New(dir); err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("data directory was not created: %v", err)
	}
}
