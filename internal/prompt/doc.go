// Package prompt provides the interactive questions asked by race-calendar.
//
// Confirmations are modeled as a Confirmer capability so the driver and the
// storage layer never touch the console directly. Console answers questions
// over any reader/writer pair, Static answers every confirmation the same way.
package prompt
