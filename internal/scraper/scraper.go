package scraper

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/pfrederiksen/race-calendar/internal/logger"
	"github.com/pfrederiksen/race-calendar/internal/race"
)

const (
	UserAgent = "race-calendar/1.0 (github.com/pfrederiksen/race-calendar)"
	Timeout   = 30 * time.Second

	// PageTitle is the text of div.page-title on a calendar page
	PageTitle = "Calendar"

	titleSelector  = "div.page-title"
	yearSelector   = `select[name="year"]`
	tableSelector  = "table.basic"
	minDataColumns = 5
)

// Header is the required sequence of table.basic header cells
var Header = []string{"Date", "Date", "Race", "Winner", "Class"}

// Column positions inside a data row. Column 1 holds the end date of
// multi-day races, which the range in column 0 already covers.
const (
	colDate   = 0
	colName   = 2
	colWinner = 3
	colClass  = 4
)

// Scraper handles fetching and parsing race calendar pages
type Scraper struct {
	client    *http.Client
	userAgent string
	log       *logger.Logger
}

// Option configures a Scraper
type Option func(*Scraper)

// WithTimeout sets the HTTP client timeout
func WithTimeout(d time.Duration) Option {
	return func(s *Scraper) {
		s.client.Timeout = d
	}
}

// WithUserAgent overrides the User-Agent header
func WithUserAgent(ua string) Option {
	return func(s *Scraper) {
		if ua != "" {
			s.userAgent = ua
		}
	}
}

// WithLogger sets the logger used for fetch diagnostics and data warnings
func WithLogger(l *logger.Logger) Option {
	return func(s *Scraper) {
		if l != nil {
			s.log = l.Named("scraper")
		}
	}
}

// New creates a new Scraper instance
func New(opts ...Option) *Scraper {
	s := &Scraper{
		client: &http.Client{
			Timeout: Timeout,
		},
		userAgent: UserAgent,
		log:       logger.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FetchRaces fetches the calendar page at url and extracts its races
func (s *Scraper) FetchRaces(ctx context.Context, url string) ([]*race.Race, error) {
	body, err := s.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	return s.ParseRaces(bytes.NewReader(body))
}

// Fetch retrieves the raw page content for url
func (s *Scraper) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, wrap(ErrNetwork, err, "creating request")
	}
	req.Header.Set("User-Agent", s.userAgent)

	s.log.Debug("Fetching calendar page", logger.Fields{"url": url})

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, wrap(ErrNetwork, err, "fetching page")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, failf(ErrNetwork, "unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, wrap(ErrNetwork, err, "reading response body")
	}

	s.log.Debug("Fetched calendar page", logger.Fields{
		"url":    url,
		"status": resp.StatusCode,
		"bytes":  len(body),
	})

	return body, nil
}

// ParseRaces extracts races from a calendar page in table row order
func (s *Scraper) ParseRaces(r io.Reader) ([]*race.Race, error) {
	doc, err := newDocument(r)
	if err != nil {
		return nil, err
	}

	if err := checkTitle(doc); err != nil {
		return nil, err
	}

	year, err := selectedYear(doc)
	if err != nil {
		return nil, err
	}

	table, err := doc.one(tableSelector)
	if err != nil {
		return nil, wrap(ErrUnexpectedTableFormat, err, "locating race table")
	}

	if err := checkHeader(headerCells(table)); err != nil {
		return nil, err
	}

	races := make([]*race.Race, 0)

	var rowErr error
	table.Find("tr").EachWithBreak(func(i int, row *goquery.Selection) bool {
		cells := texts(row, "td")

		// Header and spacer rows carry no data cells
		if len(cells) == 0 {
			return true
		}

		parsed, err := parseRow(i, cells, year)
		if err != nil {
			rowErr = err
			return false
		}

		if len(parsed) == 2 && race.EndsBeforeStart(parsed[0], parsed[1]) {
			s.log.Warn("Race ends before it starts; range may cross New Year", logger.Fields{
				"row":   i,
				"race":  cells[colName],
				"dates": cells[colDate],
				"year":  year,
			})
		}

		races = append(races, parsed...)
		return true
	})
	if rowErr != nil {
		return nil, rowErr
	}

	s.log.Debug("Parsed race table", logger.Fields{"year": year, "races": len(races)})

	return races, nil
}

// checkTitle verifies that the page is a calendar page
func checkTitle(doc *document) error {
	title, err := doc.text(titleSelector)
	if err != nil {
		return wrap(ErrUnexpectedPage, err, "locating page title")
	}
	if title != PageTitle {
		return failf(ErrUnexpectedPage, "page title is %q, expected %q", title, PageTitle)
	}
	return nil
}

// selectedYear returns the text of the selected option of the year control
func selectedYear(doc *document) (string, error) {
	control, err := doc.one(yearSelector)
	if err != nil {
		return "", wrap(ErrMissingYear, err, "locating year selector")
	}

	var year string
	found := false
	control.Find("option").EachWithBreak(func(_ int, opt *goquery.Selection) bool {
		if _, err := attr(opt, "selected"); err != nil {
			return true
		}
		year = cellText(opt)
		found = true
		return false
	})

	if !found {
		return "", failf(ErrMissingYear, "no year option is selected")
	}
	if year == "" {
		return "", failf(ErrMissingYear, "selected year option is empty")
	}
	return year, nil
}

// headerCells returns the th cells of the first row that has any
func headerCells(table *goquery.Selection) []string {
	header, err := first(table, "tr:has(th)")
	if err != nil {
		return nil
	}
	return texts(header, "th")
}

// checkHeader compares header cells with Header by position
func checkHeader(cells []string) error {
	if len(cells) != len(Header) {
		return failf(ErrUnexpectedTableFormat, "expected %d header cells %v, got %d %v",
			len(Header), Header, len(cells), cells)
	}
	for i, want := range Header {
		if cells[i] != want {
			return failf(ErrUnexpectedTableFormat, "header cell %d is %q, expected %q", i, cells[i], want)
		}
	}
	return nil
}

// parseRow converts one data row into one or two races
func parseRow(index int, cells []string, year string) ([]*race.Race, error) {
	if len(cells) < minDataColumns {
		return nil, failf(ErrUnexpectedTableFormat, "row %d has %d cells, expected %d",
			index, len(cells), minDataColumns)
	}

	races, err := race.FromRow(cells[colDate], cells[colName], cells[colWinner], cells[colClass], year)
	if err != nil {
		return nil, wrap(ErrDateParse, err, "row %d (%s)", index, cells[colName])
	}
	return races, nil
}
