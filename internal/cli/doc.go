// Package cli implements the command-line interface for race-calendar.
//
// The cli package provides the Cobra-based root command, loads configuration from
// flags, RACECAL_* environment variables and an optional config file through Viper,
// and drives the pipeline: fetch the calendar page, list the races found, ask for
// confirmation, then build and save the .ics file.
package cli
