package cli

import (
	"fmt"
	"io"

	"github.com/pfrederiksen/race-calendar/internal/race"
)

// WriteRaceList prints the numbered list of races shown before confirmation
func WriteRaceList(w io.Writer, races []*race.Race) error {
	if _, err := fmt.Fprintf(w, "Found %d races:\n", len(races)); err != nil {
		return err
	}
	for i, r := range races {
		if _, err := fmt.Fprintf(w, "%3d. %s\n", i+1, r); err != nil {
			return err
		}
	}
	return nil
}
