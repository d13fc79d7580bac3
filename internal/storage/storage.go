package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pfrederiksen/race-calendar/internal/logger"
	"github.com/pfrederiksen/race-calendar/internal/prompt"
)

// Storage handles persistence of calendar files
type Storage struct {
	confirm prompt.Confirmer
	log     *logger.Logger
}

// New creates a new Storage instance that asks confirm before overwriting files
func New(confirm prompt.Confirmer, log *logger.Logger) *Storage {
	if log == nil {
		log = logger.Discard()
	}
	return &Storage{
		confirm: confirm,
		log:     log.Named("storage"),
	}
}

// ExpandPath expands a leading ~/ to the home directory
func ExpandPath(path string) (string, error) {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("getting home directory: %w", err)
		}
		return filepath.Join(home, path[2:]), nil
	}
	return path, nil
}

// SaveCalendar writes content to path. If path already exists the user is asked
// to confirm; declining returns prompt.ErrUserCancelled and leaves the file as it was.
func (s *Storage) SaveCalendar(path, content string) error {
	path, err := ExpandPath(path)
	if err != nil {
		return err
	}

	exists, err := fileExists(path)
	if err != nil {
		return err
	}

	if exists {
		ok, err := s.confirm.Confirm(fmt.Sprintf("%s exists. Overwrite? [Y/n] ", path))
		if err != nil {
			return fmt.Errorf("confirming overwrite: %w", err)
		}
		if !ok {
			return fmt.Errorf("overwrite of %s declined: %w", path, prompt.ErrUserCancelled)
		}
	}

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("writing calendar: %w", err)
	}

	s.log.Debug("Wrote calendar", logger.Fields{
		"path":        path,
		"bytes":       len(content),
		"overwritten": exists,
	})

	return nil
}

func fileExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("checking %s: %w", path, err)
}
