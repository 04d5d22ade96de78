package notifier

import (
	"errors"

	"github.com/leo9226/zhs-crawler/internal/court"
	"github.com/leo9226/zhs-crawler/internal/logger"
)

// Result is the outcome handed to notifiers at the end of a successful search:
// the booked interval (nil in report-only mode) plus the full overview of
// relevant free intervals found in the final cycle.
type Result struct {
	Request     court.Request
	Booked      *court.FreeInterval
	BookedStart int // minutes from midnight, start of the booked hour
	Relevant    []court.FreeInterval
}

// Notifier delivers a human-readable confirmation to the requester. Delivery
// is best-effort: a failed notification never invalidates the booking itself.
type Notifier interface {
	Notify(res Result) error
}

// Multi fans a result out to several notifiers. Individual failures are
// logged and collected; the remaining notifiers still run.
type Multi []Notifier

func (m Multi) Notify(res Result) error {
	var errs []error
	for _, n := range m {
		if err := n.Notify(res); err != nil {
			logger.Error("notification failed", logger.Fields{
				"notifier": typeName(n),
			}, err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
