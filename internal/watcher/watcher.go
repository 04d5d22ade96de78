package watcher

import (
	"errors"
	"fmt"
	"time"

	"github.com/leo9226/zhs-crawler/internal/booker"
	"github.com/leo9226/zhs-crawler/internal/calendar"
	"github.com/leo9226/zhs-crawler/internal/court"
	"github.com/leo9226/zhs-crawler/internal/logger"
	"github.com/leo9226/zhs-crawler/internal/notifier"
	"github.com/leo9226/zhs-crawler/internal/storage"
)

// State of the polling loop. Done is terminal.
type State string

const (
	StatePolling  State = "polling"
	StateMatching State = "matching"
	StateBooking  State = "booking"
	StateDone     State = "done"
)

// Outcome of a completed run.
type Outcome string

const (
	OutcomeBooked     Outcome = "booked"
	OutcomeMatchFound Outcome = "match_found" // report-only mode
	OutcomeFailed     Outcome = "failed"
)

// PageSource fetches one listing page worth of raw slots. lastPage signals
// the end of the pagination.
type PageSource interface {
	FetchPage(date string, page int) (slots []court.Slot, lastPage bool, err error)
}

// Booker claims one matched slot. Implementations must treat the call as the
// single externally visible mutation of a run.
type Booker interface {
	Book(date string, iv court.FreeInterval, startMinutes int) error
}

// Watcher owns the fetch, reconcile, match and book loop. All collaborators
// are injected so the loop is testable without network or real time.
type Watcher struct {
	Source    PageSource
	Booker    Booker // nil in report-only mode
	Notifier  notifier.Notifier
	Store     *storage.Storage // optional run artifacts
	FirstPage int
	MaxPages  int

	// Sleep suspends between cycles; defaults to time.Sleep.
	Sleep func(time.Duration)

	state State
}

// Result describes how a run ended.
type Result struct {
	Outcome     Outcome
	Booked      *court.FreeInterval
	BookedStart int // minutes from midnight
	Relevant    []court.FreeInterval
}

// Run polls the listing until the request is satisfied or a fatal failure
// occurs. It blocks for the whole run; there is no built-in deadline, the
// loop ends only on a match (and booking, when requested) or a fatal error.
func (w *Watcher) Run(req court.Request) (Result, error) {
	sleep := w.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}

	w.transition(StatePolling)
	for {
		cycleStart := time.Now()
		logger.IncrCounter("cycles.run")

		slots, err := w.collect(req)
		if err != nil {
			// Transport failures are retryable: log, skip this cycle,
			// poll again at the next scheduled time.
			logger.Error("fetch cycle failed", logger.Fields{"date": req.Date}, err)
			sleep(req.Interval)
			continue
		}

		w.transition(StateMatching)
		match, ok := court.Reconcile(slots, req)
		relevant := court.Relevant(slots, req)
		logger.RecordTiming("cycle", time.Since(cycleStart))
		logger.Info(fmt.Sprintf("%d relevant courts were found", len(relevant)), logger.Fields{
			"date":   req.Date,
			"window": fmt.Sprintf("%d:00 - %d:00", req.StartHour, req.EndHour),
		})

		if !ok {
			logger.Info("no bookable court, crawling again", logger.Fields{
				"interval_seconds": req.Interval.Seconds(),
			})
			w.transition(StatePolling)
			sleep(req.Interval)
			continue
		}

		logger.Info("found a bookable court", logger.Fields{
			"court": match.Court,
			"from":  court.Clock(match.Start),
			"to":    court.Clock(match.End),
		})

		if !req.BookCourt {
			w.transition(StateDone)
			res := Result{Outcome: OutcomeMatchFound, Booked: nil, Relevant: relevant}
			w.finish(req, res)
			return res, nil
		}

		w.transition(StateBooking)
		bookedStart := req.WindowStart()
		err = w.Booker.Book(req.Date, match, bookedStart)
		switch {
		case err == nil:
			w.transition(StateDone)
			res := Result{
				Outcome:     OutcomeBooked,
				Booked:      &match,
				BookedStart: bookedStart,
				Relevant:    relevant,
			}
			w.finish(req, res)
			return res, nil
		case errors.Is(err, booker.ErrSlotTaken):
			// Lost the race to another booker; resume searching.
			logger.Warn("slot was claimed by someone else, resuming search", logger.Fields{
				"court": match.Court,
			})
			w.transition(StatePolling)
			sleep(req.Interval)
			continue
		default:
			w.transition(StateDone)
			res := Result{Outcome: OutcomeFailed, Relevant: relevant}
			w.writeReport(req, res)
			return res, fmt.Errorf("booking court %d: %w", match.Court, err)
		}
	}
}

// collect fetches listing pages sequentially until the pagination ends or the
// page cap is reached, accumulating all raw slots of one cycle.
func (w *Watcher) collect(req court.Request) ([]court.Slot, error) {
	var all []court.Slot
	for page := w.FirstPage; page <= w.MaxPages; page++ {
		logger.Info("crawling page", logger.Fields{"page": page, "date": req.Date})
		logger.IncrCounter("pages.fetched")

		slots, lastPage, err := w.Source.FetchPage(req.Date, page)
		if err != nil {
			return nil, err
		}
		all = append(all, slots...)
		if lastPage {
			break
		}
	}
	return all, nil
}

// finish handles the success-side bookkeeping of Done: notification, report,
// calendar invite. Everything here is best-effort; the outcome stands even
// when a notifier or the filesystem misbehaves.
func (w *Watcher) finish(req court.Request, res Result) {
	if w.Notifier != nil {
		nres := notifier.Result{
			Request:     req,
			Booked:      res.Booked,
			BookedStart: res.BookedStart,
			Relevant:    res.Relevant,
		}
		if err := w.Notifier.Notify(nres); err != nil {
			logger.Error("notification failed, booking outcome unaffected", nil, err)
		}
	}

	w.writeReport(req, res)

	if res.Booked != nil && w.Store != nil {
		ics, err := calendar.GenerateICS(req, *res.Booked, res.BookedStart)
		if err != nil {
			logger.Error("calendar invite generation failed", nil, err)
			return
		}
		path, err := w.Store.WriteCalendar(req.Date, ics)
		if err != nil {
			logger.Error("calendar invite write failed", nil, err)
			return
		}
		logger.Info("calendar invite written", logger.Fields{"path": path})
	}
}

func (w *Watcher) writeReport(req court.Request, res Result) {
	if w.Store == nil {
		return
	}
	rep := storage.Report{
		GeneratedAt: time.Now().UTC(),
		Date:        req.Date,
		StartHour:   req.StartHour,
		EndHour:     req.EndHour,
		Receiver:    req.ReceiverEmail,
		Outcome:     string(res.Outcome),
		Booked:      res.Booked,
		Relevant:    res.Relevant,
	}
	if res.Booked != nil {
		rep.BookedStart = court.Clock(res.BookedStart)
	}
	path, err := w.Store.WriteReport(rep)
	if err != nil {
		logger.Error("report write failed", nil, err)
		return
	}
	logger.Info("report written", logger.Fields{"path": path})
}

func (w *Watcher) transition(next State) {
	if w.state == next {
		return
	}
	logger.Info("state transition", logger.Fields{
		"from": string(w.state),
		"to":   string(next),
	})
	w.state = next
}
