package scraper

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/leo9226/zhs-crawler/internal/court"
	"github.com/leo9226/zhs-crawler/internal/logger"
)

const (
	UserAgent = "zhs-crawler/1.0 (github.com/leo9226/zhs-crawler)"
	Timeout   = 30 * time.Second
)

// Scraper fetches and parses ZHS court listing pages
type Scraper struct {
	client  *http.Client
	baseURL string
}

// New creates a new Scraper against the given reservations base URL.
func New(baseURL string) *Scraper {
	return &Scraper{
		client: &http.Client{
			Timeout: Timeout,
		},
		baseURL: baseURL,
	}
}

// FetchPage fetches one listing page for the given date and returns the raw
// slots it holds. lastPage is true when the markup carries no court tables at
// all, which signals the end of the pagination.
func (s *Scraper) FetchPage(date string, page int) (slots []court.Slot, lastPage bool, err error) {
	if page < 1 {
		return nil, false, fmt.Errorf("page number must be >= 1, got %d", page)
	}

	req, err := http.NewRequest("GET", s.pageURL(date, page), nil)
	if err != nil {
		return nil, false, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, false, fmt.Errorf("fetching page %d: %w", page, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, false, fmt.Errorf("fetching page %d: unexpected status code %d", page, resp.StatusCode)
	}

	return s.parseSlots(resp.Body, date)
}

// pageURL assembles the listing URL the way the booking site expects it:
// action=showReservations&type_id=1&date=YYYY-MM-DD&page=N.
func (s *Scraper) pageURL(date string, page int) string {
	params := url.Values{}
	params.Set("action", "showReservations")
	params.Set("type_id", "1")
	params.Set("date", date)
	params.Set("page", strconv.Itoa(page))
	return s.baseURL + "?" + params.Encode()
}

// parseSlots extracts raw slots from one page's markup. Court tables live
// under #main-content-tabs as table.areaPeriods, one table per court, with a
// th header like "Platz 7" and one td per half-hour row. Cells with class
// "avaliable" (the site's own spelling) are free; any other cell carrying a
// time range is taken. Unparsable rows are dropped and logged, never fatal.
func (s *Scraper) parseSlots(r io.Reader, date string) ([]court.Slot, bool, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, false, fmt.Errorf("parsing HTML: %w", err)
	}

	tables := doc.Find("#main-content-tabs table.areaPeriods")
	if tables.Length() == 0 {
		return nil, true, nil
	}

	slots := make([]court.Slot, 0)
	tables.Each(func(i int, table *goquery.Selection) {
		courtNumber, err := parseCourtNumber(table.Find("th").First().Text())
		if err != nil {
			logger.Warn("dropping court table with unparsable header", logger.Fields{
				"header": table.Find("th").First().Text(),
			})
			return
		}

		table.Find("td").Each(func(j int, cell *goquery.Selection) {
			text := strings.TrimSpace(cell.Text())
			if a := cell.Find("a").First(); a.Length() > 0 {
				text = strings.TrimSpace(a.Text())
			}

			start, end, err := parseTimeRange(text)
			if err != nil {
				// Cells without a time range are padding, not records
				return
			}

			status := court.StatusTaken
			if cell.HasClass("avaliable") {
				status = court.StatusFree
			}

			slots = append(slots, court.Slot{
				Court:  courtNumber,
				Date:   date,
				Start:  start,
				End:    end,
				Status: status,
			})
		})
	})

	return slots, false, nil
}

// parseCourtNumber extracts the number from a court header like "Platz 7".
func parseCourtNumber(header string) (int, error) {
	fields := strings.Fields(strings.TrimSpace(header))
	if len(fields) == 0 {
		return 0, fmt.Errorf("empty court header")
	}
	n, err := strconv.Atoi(fields[len(fields)-1])
	if err != nil {
		return 0, fmt.Errorf("parsing court header %q: %w", header, err)
	}
	return n, nil
}

// parseTimeRange parses a listing cell like "08:00 - 08:30".
func parseTimeRange(text string) (start, end int, err error) {
	parts := strings.Split(text, " - ")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("no time range in %q", text)
	}
	start, err = court.ParseClock(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, err
	}
	end, err = court.ParseClock(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, err
	}
	if end <= start {
		return 0, 0, fmt.Errorf("inverted time range %q", text)
	}
	return start, end, nil
}
