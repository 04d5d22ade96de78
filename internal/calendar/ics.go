// Package calendar generates an iCalendar confirmation for a booked court so
// the requester can drop the reservation straight into their calendar.
package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/leo9226/zhs-crawler/internal/court"
)

// GenerateICS renders a single-VEVENT iCalendar file for a booked one-hour
// slot starting at startMinutes on the request's date.
func GenerateICS(req court.Request, iv court.FreeInterval, startMinutes int) (string, error) {
	day, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return "", fmt.Errorf("parsing booking date: %w", err)
	}

	// Court times are local Munich times; the listing publishes no zone, so
	// the event is written as floating local time.
	start := day.Add(time.Duration(startMinutes) * time.Minute)
	end := start.Add(time.Hour)

	var ics strings.Builder

	ics.WriteString("BEGIN:VCALENDAR\r\n")
	ics.WriteString("VERSION:2.0\r\n")
	ics.WriteString("PRODID:-//zhs-crawler//zhs-crawler//EN\r\n")
	ics.WriteString("CALSCALE:GREGORIAN\r\n")
	ics.WriteString("METHOD:PUBLISH\r\n")
	ics.WriteString("BEGIN:VEVENT\r\n")

	ics.WriteString(fmt.Sprintf("UID:court-%d-%s-%s@zhs-courtbuchung.de\r\n",
		iv.Court, req.Date, court.Clock(startMinutes)))
	ics.WriteString(fmt.Sprintf("DTSTAMP:%s\r\n", time.Now().UTC().Format("20060102T150405Z")))
	ics.WriteString(fmt.Sprintf("DTSTART:%s\r\n", formatICSTime(start)))
	ics.WriteString(fmt.Sprintf("DTEND:%s\r\n", formatICSTime(end)))

	summary := fmt.Sprintf("Tennis - Court %d (ZHS)", iv.Court)
	ics.WriteString(fmt.Sprintf("SUMMARY:%s\r\n", escapeICS(summary)))

	description := fmt.Sprintf("Court %d booked from %s to %s.",
		iv.Court, court.Clock(startMinutes), court.Clock(startMinutes+60))
	ics.WriteString(fmt.Sprintf("DESCRIPTION:%s\r\n", escapeICS(description)))

	ics.WriteString("LOCATION:ZHS Sportanlage\\, München\r\n")
	ics.WriteString("STATUS:CONFIRMED\r\n")
	ics.WriteString("SEQUENCE:0\r\n")
	ics.WriteString("TRANSP:OPAQUE\r\n")

	ics.WriteString("END:VEVENT\r\n")
	ics.WriteString("END:VCALENDAR\r\n")

	return ics.String(), nil
}

// formatICSTime formats a floating local time as an iCalendar datetime.
func formatICSTime(t time.Time) string {
	return t.Format("20060102T150405")
}

// escapeICS escapes special characters according to RFC 5545.
func escapeICS(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, ",", "\\,")
	s = strings.ReplaceAll(s, ";", "\\;")
	s = strings.ReplaceAll(s, "\n", "\\n")
	return s
}
