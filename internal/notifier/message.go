package notifier

import (
	"fmt"
	"strings"

	"github.com/leo9226/zhs-crawler/internal/court"
)

// Subject is the subject line of every court alert.
const Subject = "Court Alert! Court's Booked!"

// ComposeMessage builds the plain-text notification body: a booked-court line
// when a booking was made, followed by the overview of every free interval
// touching the requested window.
func ComposeMessage(res Result) string {
	var sb strings.Builder

	sb.WriteString("Dear Roger,\n\n")

	if res.Booked != nil {
		sb.WriteString(fmt.Sprintf("Court number %d was booked on %s at %s!\n\n\n",
			res.Booked.Court, res.Request.Date, court.Clock(res.BookedStart)))
	}

	sb.WriteString(fmt.Sprintf(
		"Here is an overview of all available courts on %s between %d:00 and %d:00:\n\n",
		res.Request.Date, res.Request.StartHour, res.Request.EndHour))

	for _, iv := range res.Relevant {
		sb.WriteString(fmt.Sprintf("  -> Court %d: %s - %s\n",
			iv.Court, court.Clock(iv.Start), court.Clock(iv.End)))
	}

	return strings.TrimRight(sb.String(), "\n")
}

func typeName(n Notifier) string {
	return fmt.Sprintf("%T", n)
}
