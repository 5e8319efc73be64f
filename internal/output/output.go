// Package output hands a picked entry to the caller through a file.
//
// A caller runs the picker with a fresh path, then reads the result back in
// remove mode, which prints the file and deletes it.
package output

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
)

var (
	// ErrExists is returned when the output path is already taken
	ErrExists = errors.New("file already exists")
	// ErrNotExist is returned by Remove when there is nothing to read back
	ErrNotExist = errors.New("file does not exist")
)

// FileMode for a newly written output file
const FileMode = 0o644

// CheckWritable fails with ErrExists if path is taken. Runs before the picker
// starts so the user never browses for a result that cannot be saved.
func CheckWritable(path string) error {
	_, err := os.Lstat(path)
	switch {
	case err == nil:
		return fmt.Errorf("%s: %w", path, ErrExists)
	case errors.Is(err, fs.ErrNotExist):
		return nil
	default:
		return fmt.Errorf("failed to check output file: %w", err)
	}
}

// Write creates path and stores value in it without a trailing newline.
// An existing file is never overwritten.
func Write(path, value string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, FileMode)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("%s: %w", path, ErrExists)
		}
		return fmt.Errorf("failed to create output file: %w", err)
	}

	if _, err := io.WriteString(f, value); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write output file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

// Remove copies the contents of path to w, then deletes path
func Remove(path string, w io.Writer) error {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%s: %w", path, ErrNotExist)
		}
		return fmt.Errorf("failed to open output file: %w", err)
	}

	_, err = io.Copy(w, f)
	_ = f.Close()
	if err != nil {
		return fmt.Errorf("failed to read output file: %w", err)
	}

	if err := os.Remove(path); err != nil {
		return fmt.Errorf("failed to remove output file: %w", err)
	}
	return nil
}
