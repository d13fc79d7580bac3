package cli

import (
	"errors"
	"fmt"

	"github.com/pfrederiksen/race-calendar/internal/prompt"
	"github.com/pfrederiksen/race-calendar/internal/scraper"
)

// errDeclined ends the run when the user does not want to proceed with the races found
var errDeclined = errors.New("declined to proceed")

// exitCodeError carries a non-zero exit status through cobra without a message
type exitCodeError int

func (e exitCodeError) Error() string { return fmt.Sprintf("exit status %d", int(e)) }

var errorKinds = []struct {
	err  error
	kind string
}{
	{scraper.ErrUnexpectedPage, "UnexpectedPageError"},
	{scraper.ErrMissingYear, "MissingYearError"},
	{scraper.ErrUnexpectedTableFormat, "UnexpectedTableFormatError"},
	{scraper.ErrDateParse, "DateParseError"},
	{scraper.ErrNetwork, "NetworkError"},
	{prompt.ErrUserCancelled, "UserCancelledError"},
}

// errorKind names the failure class reported on the one-line error summary
func errorKind(err error) string {
	for _, k := range errorKinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}
	return "Error"
}

// errorMessage strips the kind prefix from scraper errors
func errorMessage(err error) string {
	var scrapeErr *scraper.Error
	if errors.As(err, &scrapeErr) {
		return scrapeErr.Message()
	}
	return err.Error()
}
