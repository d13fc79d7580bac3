// Package storage writes generated calendars to disk.
//
// Existing files are only replaced after the user confirms the overwrite.
// Writes truncate the destination in place; there is no backup or atomic rename.
package storage
