// Package snapshot loads Wantedly profile-view exports from disk and derives
// the instant each export was captured from its file name.
package snapshot

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

// stampLayout is the file name stem of an export, e.g. 20251123132822.json,
// written in the exporter's local time zone.
const stampLayout = "20060102150405"

const archivePrefix = "snapshots/wantedly/"

var (
	ErrInvalidName = errors.New("snapshot file name is not a timestamp")
	ErrInvalidJSON = errors.New("snapshot is not valid JSON")
)

// Snapshot is one export document and the UTC instant it was captured.
type Snapshot struct {
	Name    string
	TakenAt time.Time
	Data    []byte
}

// ParseTime reads the capture instant from a snapshot file name or path,
// interpreting the stamp in loc, and returns it in UTC.
func ParseTime(name string, loc *time.Location) (time.Time, error) {
	base := path.Base(filepath.ToSlash(name))
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if len(stem) != len(stampLayout) {
		return time.Time{}, fmt.Errorf("%w: %s", ErrInvalidName, base)
	}
	t, err := time.ParseInLocation(stampLayout, stem, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s", ErrInvalidName, base)
	}
	return t.UTC(), nil
}

// New validates data and stamps it with the instant encoded in name.
func New(name string, data []byte, loc *time.Location) (*Snapshot, error) {
	takenAt, err := ParseTime(name, loc)
	if err != nil {
		return nil, err
	}
	if !json.Valid(data) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidJSON, name)
	}
	return &Snapshot{Name: path.Base(filepath.ToSlash(name)), TakenAt: takenAt, Data: data}, nil
}

// Load reads a snapshot file.
func Load(p string, loc *time.Location) (*Snapshot, error) {
	data, err := os.ReadFile(p)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return New(p, data, loc)
}

// List returns the snapshot files in dir, oldest first. Entries whose names
// are not timestamps are skipped.
func List(dir string, loc *time.Location) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read snapshot dir: %w", err)
	}

	type stamped struct {
		path string
		at   time.Time
	}
	var found []stamped
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		at, err := ParseTime(e.Name(), loc)
		if err != nil {
			continue
		}
		found = append(found, stamped{path: filepath.Join(dir, e.Name()), at: at})
	}
	sort.Slice(found, func(i, j int) bool { return found[i].at.Before(found[j].at) })

	paths := make([]string, 0, len(found))
	for _, f := range found {
		paths = append(paths, f.path)
	}
	return paths, nil
}

// ArchiveKey is the object key a snapshot is archived under. ParseTime on the
// key yields takenAt again when given the same loc.
func ArchiveKey(takenAt time.Time, loc *time.Location) string {
	return archivePrefix + takenAt.In(loc).Format(stampLayout) + ".json"
}
