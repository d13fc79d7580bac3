package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pfrederiksen/race-calendar/internal/prompt"
	"github.com/pfrederiksen/race-calendar/internal/race"
	"github.com/pfrederiksen/race-calendar/internal/scraper"
)

type fakeFetcher struct {
	races []*race.Race
	err   error
	urls  []string
}

func (f *fakeFetcher) FetchRaces(_ context.Context, url string) ([]*race.Race, error) {
	f.urls = append(f.urls, url)
	return f.races, f.err
}

// scriptedPrompt answers questions from a fixed list, in order
type scriptedPrompt struct {
	answers []string
	asked   []string
}

func (s *scriptedPrompt) Ask(question string) (string, error) {
	s.asked = append(s.asked, question)
	if len(s.answers) == 0 {
		return "", errors.New("no scripted answer")
	}
	answer := s.answers[0]
	s.answers = s.answers[1:]
	return answer, nil
}

func (s *scriptedPrompt) Confirm(question string) (bool, error) {
	answer, err := s.Ask(question)
	if err != nil {
		return false, err
	}
	return prompt.IsAffirmative(answer), nil
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func sampleRaces() []*race.Race {
	return []*race.Race{
		race.New(day(2024, time.March, 1), "Spring Classic", "Road", ""),
		race.New(day(2024, time.March, 1), "X (START)", "Stage", "Jane Doe"),
		race.New(day(2024, time.March, 3), "X (END)", "Stage", "Jane Doe"),
	}
}

func fixedNow() time.Time {
	return time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
}

func TestRun_WritesCalendar(t *testing.T) {
	file := filepath.Join(t.TempDir(), "races.ics")
	fetcher := &fakeFetcher{races: sampleRaces()}
	answers := &scriptedPrompt{answers: []string{""}}
	var stdout, stderr bytes.Buffer

	code, err := Run(context.Background(), Config{URL: "https://example.com/calendar", File: file}, Deps{
		Fetcher: fetcher,
		Confirm: answers,
		Ask:     answers,
		Stdout:  &stdout,
		Stderr:  &stderr,
		Now:     fixedNow,
	})
	if err != nil || code != ExitSuccess {
		t.Fatalf("Run() = %d, %v; stderr %q", code, err, stderr.String())
	}

	if len(fetcher.urls) != 1 || fetcher.urls[0] != "https://example.com/calendar" {
		t.Errorf("fetched %v", fetcher.urls)
	}
	if len(answers.asked) != 1 || answers.asked[0] != "Proceed with these races? [Y/n] " {
		t.Errorf("questions asked = %q", answers.asked)
	}

	wantList := "Found 3 races:\n" +
		"  1. [Road] Spring Classic (2024-03-01) Winner: \n" +
		"  2. [Stage] X (START) (2024-03-01) Winner: Jane Doe\n" +
		"  3. [Stage] X (END) (2024-03-03) Winner: Jane Doe\n"
	if !strings.HasPrefix(stdout.String(), wantList) {
		t.Errorf("stdout = %q, want prefix %q", stdout.String(), wantList)
	}

	data, err := os.ReadFile(file)
	if err != nil {
		t.Fatalf("calendar not written: %v", err)
	}
	if got := strings.Count(string(data), "BEGIN:VEVENT"); got != 3 {
		t.Errorf("expected 3 events, got %d", got)
	}
	for _, name := range []string{"Spring Classic", "X (START)", "X (END)"} {
		if !strings.Contains(string(data), "SUMMARY:Race: "+name) {
			t.Errorf("calendar missing event for %s", name)
		}
	}
}

func TestRun_DeclineProceed(t *testing.T) {
	file := filepath.Join(t.TempDir(), "races.ics")
	answers := &scriptedPrompt{answers: []string{"n"}}
	var stderr bytes.Buffer

	code, err := Run(context.Background(), Config{URL: "u", File: file}, Deps{
		Fetcher: &fakeFetcher{races: sampleRaces()},
		Confirm: answers,
		Ask:     answers,
		Stdout:  &bytes.Buffer{},
		Stderr:  &stderr,
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if code == ExitSuccess {
		t.Error("declining to proceed should yield a non-zero status")
	}
	if _, err := os.Stat(file); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("no file should be written, stat err = %v", err)
	}
	if stderr.Len() != 0 {
		t.Errorf("declining is not an error, stderr = %q", stderr.String())
	}
}

func TestRun_DeclineOverwrite(t *testing.T) {
	file := filepath.Join(t.TempDir(), "races.ics")
	if err := os.WriteFile(file, []byte("keep me"), 0644); err != nil {
		t.Fatal(err)
	}

	answers := &scriptedPrompt{answers: []string{"y", "no"}}
	var stderr bytes.Buffer

	code, err := Run(context.Background(), Config{URL: "u", File: file}, Deps{
		Fetcher: &fakeFetcher{races: sampleRaces()},
		Confirm: answers,
		Ask:     answers,
		Stdout:  &bytes.Buffer{},
		Stderr:  &stderr,
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if code == ExitSuccess {
		t.Error("declining to overwrite should yield a non-zero status")
	}
	if len(answers.asked) != 2 || answers.asked[1] != file+" exists. Overwrite? [Y/n] " {
		t.Errorf("questions asked = %q", answers.asked)
	}
	if !strings.HasPrefix(stderr.String(), "Error occurred (UserCancelledError): ") {
		t.Errorf("stderr = %q", stderr.String())
	}

	data, _ := os.ReadFile(file)
	if string(data) != "keep me" {
		t.Errorf("existing file modified: %q", data)
	}
}

func TestRun_ConfirmOverwrite(t *testing.T) {
	file := filepath.Join(t.TempDir(), "races.ics")
	if err := os.WriteFile(file, []byte("old"), 0644); err != nil {
		t.Fatal(err)
	}

	answers := &scriptedPrompt{answers: []string{"yes", "ye"}}
	code, err := Run(context.Background(), Config{URL: "u", File: file}, Deps{
		Fetcher: &fakeFetcher{races: sampleRaces()},
		Confirm: answers,
		Ask:     answers,
		Stdout:  &bytes.Buffer{},
		Stderr:  &bytes.Buffer{},
	})
	if err != nil || code != ExitSuccess {
		t.Fatalf("Run() = %d, %v", code, err)
	}

	data, _ := os.ReadFile(file)
	if !strings.HasPrefix(string(data), "BEGIN:VCALENDAR") {
		t.Errorf("file not replaced: %q", data)
	}
}

func TestRun_AsksForMissingURLAndFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "races.ics")
	fetcher := &fakeFetcher{races: sampleRaces()[:1]}
	answers := &scriptedPrompt{answers: []string{"https://example.com/calendar", file, "Y"}}

	code, err := Run(context.Background(), Config{}, Deps{
		Fetcher: fetcher,
		Confirm: answers,
		Ask:     answers,
		Stdout:  &bytes.Buffer{},
		Stderr:  &bytes.Buffer{},
	})
	if err != nil || code != ExitSuccess {
		t.Fatalf("Run() = %d, %v", code, err)
	}

	wantAsked := []string{"URL: ", "FILE: ", "Proceed with these races? [Y/n] "}
	if strings.Join(answers.asked, "|") != strings.Join(wantAsked, "|") {
		t.Errorf("questions asked = %q, want %q", answers.asked, wantAsked)
	}
	if fetcher.urls[0] != "https://example.com/calendar" {
		t.Errorf("fetched %v", fetcher.urls)
	}
	if _, err := os.Stat(file); err != nil {
		t.Errorf("calendar not written: %v", err)
	}
}

func TestRun_ErrorSummary(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantLine string
	}{
		{
			name:     "unexpected page",
			err:      &scraper.Error{Kind: scraper.ErrUnexpectedPage, Msg: `page title is "Results", expected "Calendar"`},
			wantLine: `Error occurred (UnexpectedPageError): page title is "Results", expected "Calendar"`,
		},
		{
			name:     "missing year",
			err:      &scraper.Error{Kind: scraper.ErrMissingYear, Msg: "no year option is selected"},
			wantLine: "Error occurred (MissingYearError): no year option is selected",
		},
		{
			name:     "table format",
			err:      &scraper.Error{Kind: scraper.ErrUnexpectedTableFormat, Msg: "header cell 2 is \"Event\", expected \"Race\""},
			wantLine: "Error occurred (UnexpectedTableFormatError): header cell 2 is \"Event\", expected \"Race\"",
		},
		{
			name:     "date parse",
			err:      &scraper.Error{Kind: scraper.ErrDateParse, Msg: "row 3 (X)", Err: errors.New("bad date")},
			wantLine: "Error occurred (DateParseError): row 3 (X): bad date",
		},
		{
			name:     "network",
			err:      &scraper.Error{Kind: scraper.ErrNetwork, Msg: "unexpected status code: 404"},
			wantLine: "Error occurred (NetworkError): unexpected status code: 404",
		},
		{
			name:     "other",
			err:      errors.New("disk on fire"),
			wantLine: "Error occurred (Error): getting races: disk on fire",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file := filepath.Join(t.TempDir(), "races.ics")
			var stdout, stderr bytes.Buffer

			code, err := Run(context.Background(), Config{URL: "u", File: file}, Deps{
				Fetcher: &fakeFetcher{err: tt.err},
				Confirm: prompt.Static(true),
				Stdout:  &stdout,
				Stderr:  &stderr,
			})
			if err != nil {
				t.Fatalf("Run() error = %v", err)
			}
			if code != ExitError {
				t.Errorf("Run() = %d, want %d", code, ExitError)
			}
			if got := strings.TrimSuffix(stderr.String(), "\n"); got != tt.wantLine {
				t.Errorf("stderr = %q, want %q", got, tt.wantLine)
			}
			if stdout.Len() != 0 {
				t.Errorf("nothing should be listed on failure, stdout = %q", stdout.String())
			}
			if _, err := os.Stat(file); !errors.Is(err, os.ErrNotExist) {
				t.Errorf("no file should be written, stat err = %v", err)
			}
		})
	}
}

func TestRun_DebugReturnsError(t *testing.T) {
	fetchErr := &scraper.Error{Kind: scraper.ErrMissingYear, Msg: "no year option is selected"}
	var stderr bytes.Buffer

	code, err := Run(context.Background(), Config{URL: "u", File: "f", Debug: true}, Deps{
		Fetcher: &fakeFetcher{err: fetchErr},
		Confirm: prompt.Static(true),
		Stdout:  &bytes.Buffer{},
		Stderr:  &stderr,
	})
	if code != ExitError {
		t.Errorf("Run() = %d, want %d", code, ExitError)
	}
	if !errors.Is(err, scraper.ErrMissingYear) {
		t.Errorf("Run() error = %v, want ErrMissingYear", err)
	}
	if stderr.Len() != 0 {
		t.Errorf("debug mode should not print the summary, stderr = %q", stderr.String())
	}
}

func TestRun_MissingURLWithoutAsker(t *testing.T) {
	var stderr bytes.Buffer
	code, _ := Run(context.Background(), Config{File: "f"}, Deps{
		Fetcher: &fakeFetcher{},
		Confirm: prompt.Static(true),
		Stdout:  &bytes.Buffer{},
		Stderr:  &stderr,
	})
	if code != ExitError {
		t.Errorf("Run() = %d, want %d", code, ExitError)
	}
	if !strings.Contains(stderr.String(), "URL not configured") {
		t.Errorf("stderr = %q", stderr.String())
	}
}

func TestWriteRaceList_Alignment(t *testing.T) {
	races := make([]*race.Race, 0, 12)
	for i := 0; i < 12; i++ {
		races = append(races, race.New(day(2024, time.May, i+1), "R", "C", ""))
	}

	var buf bytes.Buffer
	if err := WriteRaceList(&buf, races); err != nil {
		t.Fatalf("WriteRaceList() error = %v", err)
	}

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if lines[0] != "Found 12 races:" {
		t.Errorf("header = %q", lines[0])
	}
	if lines[1] != "  1. [C] R (2024-05-01) Winner: " {
		t.Errorf("first line = %q", lines[1])
	}
	if lines[12] != " 12. [C] R (2024-05-12) Winner: " {
		t.Errorf("last line = %q", lines[12])
	}
}
