package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/pfrederiksen/race-calendar/internal/calendar"
	"github.com/pfrederiksen/race-calendar/internal/logger"
	"github.com/pfrederiksen/race-calendar/internal/prompt"
	"github.com/pfrederiksen/race-calendar/internal/race"
	"github.com/pfrederiksen/race-calendar/internal/storage"
)

const proceedQuestion = "Proceed with these races? [Y/n] "

// Config holds the settings of one run
type Config struct {
	URL       string
	File      string
	AssumeYes bool
	Debug     bool // return failures to the caller instead of printing the summary line
	Verbose   bool
	Timeout   time.Duration
	UserAgent string
}

// RaceFetcher retrieves and extracts the races of a calendar page
type RaceFetcher interface {
	FetchRaces(ctx context.Context, url string) ([]*race.Race, error)
}

// Deps are the collaborators of Run
type Deps struct {
	Fetcher RaceFetcher
	Confirm prompt.Confirmer
	Ask     prompt.Asker
	Stdout  io.Writer
	Stderr  io.Writer
	Log     *logger.Logger
	Now     func() time.Time
}

func (d Deps) withDefaults() Deps {
	if d.Stdout == nil {
		d.Stdout = os.Stdout
	}
	if d.Stderr == nil {
		d.Stderr = os.Stderr
	}
	if d.Log == nil {
		d.Log = logger.Discard()
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	return d
}

// Run executes the pipeline and returns the process exit status.
// Failures are reported as "Error occurred (<Kind>): <message>" on Stderr;
// with cfg.Debug set they are returned instead.
func Run(ctx context.Context, cfg Config, deps Deps) (int, error) {
	deps = deps.withDefaults()

	err := run(ctx, cfg, deps)
	switch {
	case err == nil:
		return ExitSuccess, nil
	case errors.Is(err, errDeclined):
		deps.Log.Info("Run aborted by user", nil)
		return ExitError, nil
	case cfg.Debug:
		return ExitError, err
	}

	deps.Log.Debug("Run failed", logger.Fields{"kind": errorKind(err), "error": err.Error()})
	fmt.Fprintf(deps.Stderr, "Error occurred (%s): %s\n", errorKind(err), errorMessage(err))
	return ExitError, nil
}

func run(ctx context.Context, cfg Config, deps Deps) error {
	url, err := valueOrAsk(cfg.URL, "URL", deps.Ask)
	if err != nil {
		return err
	}
	file, err := valueOrAsk(cfg.File, "FILE", deps.Ask)
	if err != nil {
		return err
	}

	races, err := deps.Fetcher.FetchRaces(ctx, url)
	if err != nil {
		return fmt.Errorf("getting races: %w", err)
	}

	if err := WriteRaceList(deps.Stdout, races); err != nil {
		return fmt.Errorf("writing race list: %w", err)
	}

	ok, err := deps.Confirm.Confirm(proceedQuestion)
	if err != nil {
		return fmt.Errorf("confirming races: %w", err)
	}
	if !ok {
		return errDeclined
	}

	cal := calendar.Build(races, deps.Now())

	store := storage.New(deps.Confirm, deps.Log)
	if err := store.SaveCalendar(file, calendar.Serialize(cal)); err != nil {
		return err
	}

	fmt.Fprintf(deps.Stdout, "Wrote %d events to %s\n", len(races), file)
	return nil
}

// valueOrAsk returns value, or asks for it with a "NAME: " prompt when empty
func valueOrAsk(value, name string, ask prompt.Asker) (string, error) {
	if value != "" {
		return value, nil
	}
	if ask == nil {
		return "", fmt.Errorf("%s not configured", name)
	}
	answer, err := ask.Ask(name + ": ")
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", name, err)
	}
	return answer, nil
}
