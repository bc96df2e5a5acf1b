// Package manifest extracts dependency URLs from build.zig.zon files.
//
// Extraction is a line-oriented heuristic, not a .zon parser. Each line is
// trimmed; lines starting with "//" are skipped; lines starting with ".url"
// contribute the text between the first pair of double quotes. Known
// limitations, kept on purpose so results match other tools using the same
// heuristic:
//   - an escaped quote inside the value truncates it (.url = "a\"b" yields `a\`)
//   - a declaration split across lines (.url =\n "...") is not seen
//   - any field whose name starts with ".url" (e.g. .urls) is treated as .url
//   - ".url" not at the start of the trimmed line (.dep = .{ .url = ... }) is missed
package manifest

import (
	"os"
	"strings"

	"github.com/ajxudir/zigdeps/pkg/errors"
)

const (
	commentMarker = "//"
	urlField      = ".url"
	fragmentSep   = "#"
)

// ParseURLs returns the dependency URLs declared in manifest content, in line order.
//
// Parameters:
//   - content: Raw manifest bytes
//
// Returns:
//   - []string: URLs in file order; empty when the manifest declares none
//   - error: *errors.FormatError when a .url line carries no quoted value
func ParseURLs(content []byte) ([]string, error) {
	text := strings.ReplaceAll(string(content), "\r\n", "\n")

	urls := []string{}
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if strings.HasPrefix(line, commentMarker) {
			continue
		}
		if !strings.HasPrefix(line, urlField) {
			continue
		}

		value, ok := quotedValue(line)
		if !ok {
			return nil, errors.NewFormatError(line, "no quoted value in .url declaration")
		}
		urls = append(urls, value)
	}

	return urls, nil
}

// quotedValue returns the text after the first double quote up to the next
// one, or to the end of the line when the quote is never closed.
func quotedValue(line string) (string, bool) {
	_, rest, found := strings.Cut(line, `"`)
	if !found {
		return "", false
	}
	value, _, _ := strings.Cut(rest, `"`)
	return value, true
}

// ExtractURLs reads the manifest at path and returns its dependency URLs.
//
// I/O errors are returned unchanged so callers can abort the run.
func ExtractURLs(path string) ([]string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseURLs(content)
}

// BaseURL strips the revision fragment from a dependency URL.
//
// The base is everything before the first '#'. A URL without any '#' is
// rejected with a FormatError.
//
// Example:
//
//	BaseURL("https://example.com/pkg.tar.gz#abcdef1234") // "https://example.com/pkg.tar.gz"
func BaseURL(url string) (string, error) {
	base, _, found := strings.Cut(url, fragmentSep)
	if !found {
		return "", errors.NewFormatError(url, "Unsupported URL format")
	}
	return base, nil
}
