// Package feed supplies raw calendar events from exported source files.
package feed

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cadencehq/cadence/internal/contract"
	"github.com/cadencehq/cadence/schema"
)

// Open returns the event feed for the given source path. With AutoSource
// the flavor is detected from the file extension, or from the file set
// when path is a directory. Explicit kinds skip detection entirely.
func Open(kind schema.SourceKind, path string) (contract.EventFeed, error) {
	if path == "" {
		return nil, fmt.Errorf("source path is required")
	}

	if kind == schema.AutoSource {
		detected, err := DetectKind(path)
		if err != nil {
			return nil, err
		}
		kind = detected
	}

	switch kind {
	case schema.GraphSource, schema.GcalSource:
		return NewJSONFeed(kind, path), nil
	case schema.ICSSource:
		return NewICSFeed(path), nil
	default:
		return nil, fmt.Errorf("unsupported source kind: %s. Must be auto, graph, gcal, or ics", kind)
	}
}

// DetectKind inspects the path and resolves the source flavor. ICS files
// win on extension alone; JSON files are sniffed for the wrapper shape
// that distinguishes Graph exports from Google exports.
func DetectKind(path string) (schema.SourceKind, error) {
	info, err := os.Stat(path)
	if err != nil {
		return schema.AutoSource, fmt.Errorf("cannot read source path %q: %w", path, err)
	}

	if info.IsDir() {
		entries, err := os.ReadDir(path)
		if err != nil {
			return schema.AutoSource, fmt.Errorf("cannot list source directory %q: %w", path, err)
		}
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			switch strings.ToLower(filepath.Ext(e.Name())) {
			case ".ics":
				return schema.ICSSource, nil
			case ".json":
				return sniffJSONKind(filepath.Join(path, e.Name()))
			}
		}
		return schema.AutoSource, fmt.Errorf("no calendar export files found in %q", path)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".ics":
		return schema.ICSSource, nil
	case ".json":
		return sniffJSONKind(path)
	default:
		return schema.AutoSource, fmt.Errorf("cannot detect source kind for %q: expected a .json or .ics file", path)
	}
}

// collectFiles resolves path to the list of export files to read. A file
// path yields itself; a directory yields its files with the extension, in
// lexical order.
func collectFiles(path, ext string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read source path %q: %w", path, err)
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("cannot list source directory %q: %w", path, err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(e.Name()), ext) {
			files = append(files, filepath.Join(path, e.Name()))
		}
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no %s files found in %q", ext, path)
	}
	return files, nil
}
