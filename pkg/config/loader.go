package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"

	"github.com/mockharness/mockharness/pkg/mock"
)

// Common errors for manifest loading.
var (
	ErrFileNotFound = errors.New("manifest file not found")
	ErrInvalidJSON  = errors.New("invalid JSON syntax")
	ErrInvalidYAML  = errors.New("invalid YAML syntax")
	ErrEmptyFile    = errors.New("manifest file is empty")
)

// Manifest is a parsed mock-suite manifest: declared entries without
// implementations. Implementations attach when the entries are registered.
type Manifest struct {
	// Version is the manifest format version
	Version string `json:"version,omitempty" yaml:"version,omitempty"`

	// Mocks are the declared entries
	Mocks []*mock.Entry `json:"mocks" yaml:"mocks"`
}

// LoadError records a non-fatal failure loading one source.
type LoadError struct {
	Path    string
	Message string
	Err     error
}

func (e *LoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Path, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

func (e *LoadError) Unwrap() error { return e.Err }

// LoadResult is the outcome of loading one or more manifest sources.
type LoadResult struct {
	// Manifest is the merged manifest
	Manifest *Manifest

	// FileCount is the number of files processed
	FileCount int

	// Errors are non-fatal per-file failures
	Errors []LoadError
}

// LoadFromFile reads a Manifest from a JSON or YAML file. The format is
// detected by extension (.yaml/.yml for YAML, otherwise JSON).
func LoadFromFile(path string) (*Manifest, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("path is a directory, not a file: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyFile, path)
	}

	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".yaml" || ext == ".yml" {
		return ParseYAML(data)
	}

	if !json.Valid(data) {
		return nil, fmt.Errorf("%w in file: %s", ErrInvalidJSON, path)
	}
	return ParseJSON(data)
}

// ParseJSON parses a Manifest from JSON bytes.
func ParseJSON(data []byte) (*Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	return &m, nil
}

// ParseYAML parses a Manifest from YAML bytes.
func ParseYAML(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidYAML, err)
	}
	return &m, nil
}

// LoadSources loads every source (a file path or glob pattern), merging the
// declared entries with the given strategy. Per-file failures accumulate in
// the result rather than aborting the load, so one bad manifest does not
// take down the suite setup.
func LoadSources(sources []string, strategy MergeStrategy) (*LoadResult, error) {
	if strategy == "" {
		strategy = MergeOverride
	}

	result := &LoadResult{Manifest: &Manifest{}}
	byName := make(map[string]int)

	for _, source := range sources {
		matches, err := expandGlob(source)
		if err != nil {
			return nil, fmt.Errorf("expanding glob pattern %q: %w", source, err)
		}
		if len(matches) == 0 && !hasGlobMeta(source) {
			// A literal path that matched nothing is worth reporting.
			result.Errors = append(result.Errors, LoadError{
				Path:    source,
				Message: "no such manifest",
				Err:     ErrFileNotFound,
			})
			continue
		}

		// Sort matches for deterministic ordering
		sort.Strings(matches)

		for _, path := range matches {
			m, err := LoadFromFile(path)
			if err != nil {
				result.Errors = append(result.Errors, LoadError{
					Path:    path,
					Message: "failed to load manifest",
					Err:     err,
				})
				continue
			}
			result.FileCount++
			mergeManifest(result.Manifest, m, strategy, byName)
		}
	}

	return result, nil
}

// mergeManifest folds src into dst under the given strategy, tracking entry
// positions by name.
func mergeManifest(dst, src *Manifest, strategy MergeStrategy, byName map[string]int) {
	if dst.Version == "" {
		dst.Version = src.Version
	}
	for _, e := range src.Mocks {
		if e == nil || e.Name == "" {
			continue
		}
		idx, seen := byName[e.Name]
		if !seen {
			byName[e.Name] = len(dst.Mocks)
			dst.Mocks = append(dst.Mocks, e)
			continue
		}
		switch strategy {
		case MergeAppend:
			// First declaration wins; later duplicates are skipped.
		case MergeMerge:
			dst.Mocks[idx] = mergeEntries(dst.Mocks[idx], e)
		default: // MergeOverride
			dst.Mocks[idx] = e
		}
	}
}

// mergeEntries keeps base and fills its zero-valued fields from next.
func mergeEntries(base, next *mock.Entry) *mock.Entry {
	if base.Metadata.Version == "" {
		base.Metadata.Version = next.Metadata.Version
	}
	if base.Metadata.Type == "" {
		base.Metadata.Type = next.Metadata.Type
	}
	if len(base.Metadata.Dependencies) == 0 {
		base.Metadata.Dependencies = next.Metadata.Dependencies
	}
	if len(base.Metadata.CompatibleVersions) == 0 {
		base.Metadata.CompatibleVersions = next.Metadata.CompatibleVersions
	}
	if base.Metadata.Description == "" {
		base.Metadata.Description = next.Metadata.Description
	}
	if len(base.Metadata.Tags) == 0 {
		base.Metadata.Tags = next.Metadata.Tags
	}
	if base.Metadata.Priority == 0 {
		base.Metadata.Priority = next.Metadata.Priority
	}
	if base.Configuration.Enabled == nil {
		base.Configuration.Enabled = next.Configuration.Enabled
	}
	if len(base.Configuration.Options) == 0 {
		base.Configuration.Options = next.Configuration.Options
	}
	return base
}

// expandGlob expands a glob pattern to matching file paths. Uses doublestar
// for ** support, falls back to filepath.Glob for simple patterns.
func expandGlob(pattern string) ([]string, error) {
	if strings.Contains(pattern, "**") {
		return doublestar.FilepathGlob(pattern)
	}
	return filepath.Glob(pattern)
}

func hasGlobMeta(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[")
}
