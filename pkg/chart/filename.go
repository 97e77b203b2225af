package chart

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// FileLayout is the timestamp format of chart file names.
const FileLayout = "2006-01-02_15-04-05"

// maxNameAttempts bounds the search for a free file name.
const maxNameAttempts = 3600

// TimestampName returns the chart file name for a render at t.
func TimestampName(t time.Time) string {
	return t.Format(FileLayout) + ".png"
}

// createFree creates a new file in dir named after t. When the name is taken
// the timestamp is advanced one second at a time, so an existing chart is
// never overwritten.
func createFree(dir string, t time.Time) (*os.File, error) {
	for i := 0; i < maxNameAttempts; i++ {
		path := filepath.Join(dir, TimestampName(t.Add(time.Duration(i)*time.Second)))

		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err == nil {
			return f, nil
		}

		if !errors.Is(err, fs.ErrExist) {
			return nil, err
		}
	}

	return nil, fs.ErrExist
}
