package cli

import (
	"fmt"
	"os"
	"regexp"
	"time"

	"github.com/spf13/cobra"

	"github.com/leo9226/zhs-crawler/internal/booker"
	"github.com/leo9226/zhs-crawler/internal/config"
	"github.com/leo9226/zhs-crawler/internal/court"
	"github.com/leo9226/zhs-crawler/internal/logger"
	"github.com/leo9226/zhs-crawler/internal/notifier"
	"github.com/leo9226/zhs-crawler/internal/scraper"
	"github.com/leo9226/zhs-crawler/internal/storage"
	"github.com/leo9226/zhs-crawler/internal/watcher"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

// Booking window limits of the ZHS listing.
const (
	MinHour = 8
	MaxHour = 20

	MinIntervalSeconds     = 5
	DefaultIntervalSeconds = 60

	MaxDaysAhead = 8 // the listing only publishes slots 8 days out
)

var emailPattern = regexp.MustCompile(`(?i)\b[A-Z0-9._%+-]+@[A-Z0-9.-]+\.[A-Z]{2,}\b`)

var (
	flagDate          string
	flagTimeWindow    []int
	flagReceiverEmail string
	flagBookCourt     bool
	flagInterval      int
	flagDryRun        bool
	flagConfig        string
	flagDataDir       string
	flagVerbose       bool
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "zhs-crawler",
		Short: "Find and book a free ZHS tennis court",
		Long: `Polls the ZHS court listing for a free court on the requested date and
time window. When a court covering the whole window turns up, it is booked
(unless --book-court=false) and a confirmation is sent to the receiver email.
The crawler polls until it succeeds or is interrupted.`,
		SilenceUsage: true,
		RunE:         runWatch,
	}

	cmd.Flags().StringVar(&flagDate, "date", "", "Date to play on, format YYYY-MM-DD (required)")
	cmd.Flags().IntSliceVar(&flagTimeWindow, "time-window", nil,
		fmt.Sprintf("Desired window as start,end hours between %d and %d, e.g. 17,20 (required)", MinHour, MaxHour))
	cmd.Flags().StringVar(&flagReceiverEmail, "receiver-email", "", "Email address notified about the result (required)")
	cmd.Flags().BoolVar(&flagBookCourt, "book-court", true, "Book the court automatically, or just report")
	cmd.Flags().IntVar(&flagInterval, "interval", DefaultIntervalSeconds,
		fmt.Sprintf("Seconds between polls when no court is free (minimum %d)", MinIntervalSeconds))
	cmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "Print notifications instead of sending them")
	cmd.Flags().StringVar(&flagConfig, "config", "", "Path to a YAML config file")
	cmd.Flags().StringVar(&flagDataDir, "data-dir", "~/.local/share/zhs-crawler", "Directory for run reports and calendar invites")
	cmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Enable debug logging")

	cmd.MarkFlagRequired("date")
	cmd.MarkFlagRequired("time-window")
	cmd.MarkFlagRequired("receiver-email")

	return cmd
}

// runWatch validates the input, assembles the collaborators, and runs the
// polling loop until it terminates.
func runWatch(cmd *cobra.Command, args []string) error {
	req, err := buildRequest(time.Now())
	if err != nil {
		return err
	}

	if flagVerbose {
		logger.SetDefault(logger.New(logger.LevelDebug, os.Stdout))
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}

	w := &watcher.Watcher{
		Source:    scraper.New(cfg.BaseURL),
		FirstPage: cfg.FirstPage,
		MaxPages:  cfg.MaxPages,
	}

	if w.Notifier, err = buildNotifier(cfg); err != nil {
		return err
	}

	if req.BookCourt {
		b, err := booker.New(cfg.BaseURL, cfg.Credentials.LoginName, cfg.Credentials.LoginPassword)
		if err != nil {
			return err
		}
		w.Booker = b
	}

	if w.Store, err = storage.New(flagDataDir); err != nil {
		return err
	}

	res, err := w.Run(req)
	if err != nil {
		return err
	}

	switch res.Outcome {
	case watcher.OutcomeBooked:
		fmt.Printf("Booked court %d on %s at %s.\n",
			res.Booked.Court, req.Date, court.Clock(res.BookedStart))
	case watcher.OutcomeMatchFound:
		fmt.Printf("Found %d free court(s) on %s, booking was not requested.\n",
			len(res.Relevant), req.Date)
	}
	return nil
}

// buildRequest validates all flags and produces the immutable request the
// watcher runs on. Invalid input never reaches the polling loop.
func buildRequest(now time.Time) (court.Request, error) {
	if err := validateDate(flagDate, now); err != nil {
		return court.Request{}, err
	}

	if len(flagTimeWindow) != 2 {
		return court.Request{}, fmt.Errorf("invalid --time-window: need start,end hours, got %v", flagTimeWindow)
	}
	start, end := flagTimeWindow[0], flagTimeWindow[1]
	if err := validateWindow(start, end); err != nil {
		return court.Request{}, err
	}

	if !emailPattern.MatchString(flagReceiverEmail) {
		return court.Request{}, fmt.Errorf("invalid --receiver-email: %q is not an email address", flagReceiverEmail)
	}

	if flagInterval < MinIntervalSeconds {
		return court.Request{}, fmt.Errorf("invalid --interval: minimum is %d seconds, got %d", MinIntervalSeconds, flagInterval)
	}

	return court.Request{
		Date:          flagDate,
		StartHour:     start,
		EndHour:       end,
		ReceiverEmail: flagReceiverEmail,
		BookCourt:     flagBookCourt,
		Interval:      time.Duration(flagInterval) * time.Second,
	}, nil
}

// validateDate checks format, that the date is not in the past, and that it
// is within the horizon the listing publishes.
func validateDate(value string, now time.Time) error {
	date, err := time.Parse("2006-01-02", value)
	if err != nil {
		return fmt.Errorf("invalid --date: %q must be a valid YYYY-MM-DD date", value)
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if date.Before(today) {
		return fmt.Errorf("invalid --date: %s is in the past", value)
	}
	if date.After(today.AddDate(0, 0, MaxDaysAhead)) {
		return fmt.Errorf("invalid --date: %s is more than %d days ahead", value, MaxDaysAhead)
	}
	return nil
}

func validateWindow(start, end int) error {
	if start < MinHour || start > MaxHour || end < MinHour || end > MaxHour {
		return fmt.Errorf("invalid --time-window: hours must be between %d and %d, got %d,%d",
			MinHour, MaxHour, start, end)
	}
	if start >= end {
		return fmt.Errorf("invalid --time-window: start hour %d must be smaller than end hour %d", start, end)
	}
	return nil
}

// buildNotifier assembles the notification fan-out: dry-run printing, or
// email (SendGrid preferred, SMTP fallback) plus Telegram when configured.
func buildNotifier(cfg config.Config) (notifier.Notifier, error) {
	if flagDryRun {
		return notifier.NewDryRunNotifier(), nil
	}

	var ns notifier.Multi

	if cfg.Credentials.SendGridAPIKey != "" {
		n, err := notifier.NewSendGridNotifier(cfg.Credentials.SendGridAPIKey, cfg.Credentials.SenderEmail)
		if err != nil {
			return nil, err
		}
		ns = append(ns, n)
	} else {
		n, err := notifier.NewSMTPNotifier(cfg.SMTP, cfg.Credentials.SenderEmail, cfg.Credentials.SenderPassword)
		if err != nil {
			return nil, err
		}
		ns = append(ns, n)
	}

	if cfg.Credentials.TelegramBotToken != "" && cfg.Credentials.TelegramChatID != "" {
		n, err := notifier.NewTelegramNotifier(cfg.Credentials.TelegramBotToken, cfg.Credentials.TelegramChatID)
		if err != nil {
			return nil, err
		}
		ns = append(ns, n)
	}

	return ns, nil
}
