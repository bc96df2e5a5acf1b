package reconcile

import (
	"fmt"

	"github.com/ajxudir/zigdeps/pkg/constants"
)

// Result is the outcome of reconciling one dependency declaration.
//
// Fields:
//   - Dir: Directory whose manifest declares the dependency
//   - URL: Declared URL, revision fragment included
//   - Base: URL without the fragment; empty when it could not be computed
//   - Status: One of the constants.Status* values
//   - Current: Hash of the pinned revision
//   - Latest: Hash of the latest revision
//   - Err: Cause of a StatusFailed result
type Result struct {
	Dir     string
	URL     string
	Base    string
	Status  string
	Current string
	Latest  string
	Err     error
}

// Name returns the base URL, or the declared URL when no base is known.
func (r Result) Name() string {
	if r.Base != "" {
		return r.Base
	}
	return r.URL
}

// Line renders the report line for the result, without a trailing newline.
func (r Result) Line() string {
	switch r.Status {
	case constants.StatusUpToDate:
		return fmt.Sprintf("[%s] already up to date", r.Name())
	case constants.StatusUpdated:
		return fmt.Sprintf("[%s] updated %s -> %s", r.Name(), ShortHash(r.Current), ShortHash(r.Latest))
	case constants.StatusOutOfDate:
		return fmt.Sprintf("[%s] out of date", r.Name())
	default:
		return fmt.Sprintf("[%s] failed: %v", r.Name(), r.Err)
	}
}

// ShortHash truncates a content hash to its display prefix.
func ShortHash(hash string) string {
	if len(hash) > constants.HashDisplayLen {
		return hash[:constants.HashDisplayLen]
	}
	return hash
}

// Summary counts results by status.
type Summary struct {
	Checked   int
	UpToDate  int
	OutOfDate int
	Updated   int
	Failed    int
}

// Summarize counts results by status.
func Summarize(results []Result) Summary {
	s := Summary{Checked: len(results)}
	for _, r := range results {
		switch r.Status {
		case constants.StatusUpToDate:
			s.UpToDate++
		case constants.StatusOutOfDate:
			s.OutOfDate++
		case constants.StatusUpdated:
			s.Updated++
		case constants.StatusFailed:
			s.Failed++
		}
	}
	return s
}
