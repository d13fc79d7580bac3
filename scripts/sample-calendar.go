package main

import (
	"fmt"
	"os"
	"time"

	"github.com/pfrederiksen/race-calendar/internal/calendar"
	"github.com/pfrederiksen/race-calendar/internal/scraper"
)

func main() {
	// Parse the fixture page used by the scraper tests
	f, err := os.Open("internal/scraper/testdata/calendar.html")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening fixture: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	races, err := scraper.New().ParseRaces(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing fixture: %v\n", err)
		os.Exit(1)
	}

	icsContent := calendar.Serialize(calendar.Build(races, time.Now()))

	filename := "sample-races.ics"
	if err := os.WriteFile(filename, []byte(icsContent), 0600); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing file: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Generated calendar file with %d events: %s\n\n", len(races), filename)
	fmt.Println("Test it by importing it into Google Calendar, Apple Calendar, or Outlook.")
	fmt.Println("\nFile contents preview:")
	fmt.Println("---")
	fmt.Println(icsContent)
}
