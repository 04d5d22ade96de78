package booker

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/leo9226/zhs-crawler/internal/court"
	"github.com/leo9226/zhs-crawler/internal/logger"
)

const timeout = 30 * time.Second

// Booking failure categories. ErrSlotTaken means another booker won the race
// and the watcher should resume polling; ErrUnexpectedResponse means the
// provider's page shape changed and the run cannot safely continue.
var (
	ErrSlotTaken          = errors.New("slot no longer available")
	ErrUnexpectedResponse = errors.New("unexpected booking response")
)

// Response markers of the German booking pages.
const (
	markerLoggedIn = "logout"
	markerConfirm  = "Bestätigen"
	markerBooked   = "erfolgreich"
	markerTaken    = "belegt"
	markerNotAvail = "nicht mehr verfügbar"
)

// Booker submits the HTTP form sequence that claims one court slot: session
// login, reservation submit, final confirmation. The session cookie lives in
// the client's jar for the duration of one booking attempt.
type Booker struct {
	client        *http.Client
	baseURL       string
	loginName     string
	loginPassword string
}

// New creates a Booker for the given reservations base URL and account.
func New(baseURL, loginName, loginPassword string) (*Booker, error) {
	if loginName == "" || loginPassword == "" {
		return nil, fmt.Errorf("booking requires LOGIN_NAME and LOGIN_PASSWORD")
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("creating cookie jar: %w", err)
	}

	return &Booker{
		client: &http.Client{
			Timeout: timeout,
			Jar:     jar,
		},
		baseURL:       baseURL,
		loginName:     loginName,
		loginPassword: loginPassword,
	}, nil
}

// Book claims one hour on the matched court starting at startMinutes. The
// provider books fixed one-hour slots keyed by court number and start time
// (the order_el_<court>_<HH:MM> form element of the listing page).
//
// This is the only externally visible mutation in the system; callers must
// invoke it at most once per successful match.
func (b *Booker) Book(date string, iv court.FreeInterval, startMinutes int) error {
	if err := b.login(date); err != nil {
		return err
	}

	startClock := court.Clock(startMinutes)
	logger.Info("submitting booking", logger.Fields{
		"court": iv.Court,
		"date":  date,
		"start": startClock,
	})

	body, err := b.postForm(url.Values{
		"action":  {"makeReservation"},
		"type_id": {"1"},
		"date":    {date},
		fmt.Sprintf("order_el_%d_%s", iv.Court, startClock): {"on"},
	})
	if err != nil {
		return err
	}
	if isTaken(body) {
		return ErrSlotTaken
	}
	if !strings.Contains(body, markerConfirm) {
		return fmt.Errorf("%w: no confirmation form in reservation response", ErrUnexpectedResponse)
	}

	// Second submit mirrors the site's extra "Bestätigen" step
	body, err = b.postForm(url.Values{
		"action":  {"confirmReservation"},
		"type_id": {"1"},
		"date":    {date},
		"court":   {strconv.Itoa(iv.Court)},
		"time":    {startClock},
	})
	if err != nil {
		return err
	}
	if isTaken(body) {
		return ErrSlotTaken
	}
	if !strings.Contains(body, markerBooked) {
		return fmt.Errorf("%w: confirmation response lacks success marker", ErrUnexpectedResponse)
	}

	logger.Info("booking confirmed", logger.Fields{
		"court": iv.Court,
		"date":  date,
		"start": startClock,
	})
	return nil
}

// login establishes the session the reservation forms require.
func (b *Booker) login(date string) error {
	body, err := b.postForm(url.Values{
		"action":   {"login"},
		"type_id":  {"1"},
		"date":     {date},
		"login":    {b.loginName},
		"password": {b.loginPassword},
	})
	if err != nil {
		return err
	}
	if !strings.Contains(strings.ToLower(body), markerLoggedIn) {
		return fmt.Errorf("%w: login was not accepted", ErrUnexpectedResponse)
	}
	return nil
}

func (b *Booker) postForm(form url.Values) (string, error) {
	resp, err := b.client.PostForm(b.baseURL, form)
	if err != nil {
		return "", fmt.Errorf("posting %s: %w", form.Get("action"), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("posting %s: unexpected status code %d", form.Get("action"), resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading %s response: %w", form.Get("action"), err)
	}
	return string(data), nil
}

func isTaken(body string) bool {
	return strings.Contains(body, markerTaken) || strings.Contains(body, markerNotAvail)
}
