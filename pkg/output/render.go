package output

import (
	"bytes"
	"encoding/json"
	"io"
	"path/filepath"
	"strings"

	"github.com/ajxudir/zigdeps/pkg/constants"
	"github.com/ajxudir/zigdeps/pkg/reconcile"
	"github.com/iancoleman/orderedmap"
)

// Render writes results in format f. Streaming formats are written by the
// reconciler itself, so Render is a no-op for them.
func Render(w io.Writer, f Format, root string, results []reconcile.Result) error {
	switch f {
	case FormatTable:
		return WriteTable(w, root, results)
	case FormatJSON:
		return WriteJSON(w, root, results)
	default:
		return nil
	}
}

// WriteTable renders one row per result. Directories are shown relative to root.
func WriteTable(w io.Writer, root string, results []reconcile.Result) error {
	t := NewTable("", "DIRECTORY", "DEPENDENCY", "STATUS", "CURRENT", "LATEST")
	for _, r := range results {
		t.AddRow(
			constants.StatusIcon(r.Status),
			relDir(root, r.Dir),
			r.Name(),
			r.Status,
			displayHash(r.Current),
			displayHash(r.Latest),
		)
	}
	return t.Fprint(w)
}

// WriteJSON renders results grouped by directory, keeping walk order, plus a
// summary object.
func WriteJSON(w io.Writer, root string, results []reconcile.Result) error {
	dirs := orderedmap.New()
	dirs.SetEscapeHTML(false)
	for _, r := range results {
		key := relDir(root, r.Dir)
		var list []*orderedmap.OrderedMap
		if existing, ok := dirs.Get(key); ok {
			list = existing.([]*orderedmap.OrderedMap)
		}
		dirs.Set(key, append(list, resultEntry(r)))
	}

	s := reconcile.Summarize(results)
	summary := orderedmap.New()
	summary.Set("checked", s.Checked)
	summary.Set("up_to_date", s.UpToDate)
	summary.Set("out_of_date", s.OutOfDate)
	summary.Set("updated", s.Updated)
	summary.Set("failed", s.Failed)

	doc := orderedmap.New()
	doc.SetEscapeHTML(false)
	doc.Set("root", root)
	doc.Set("directories", dirs)
	doc.Set("summary", summary)

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return err
	}
	_, err := w.Write(buf.Bytes())
	return err
}

func resultEntry(r reconcile.Result) *orderedmap.OrderedMap {
	entry := orderedmap.New()
	entry.SetEscapeHTML(false)
	entry.Set("url", r.URL)
	entry.Set("base", r.Base)
	entry.Set("status", r.Status)
	entry.Set("current", strings.TrimSpace(r.Current))
	entry.Set("latest", strings.TrimSpace(r.Latest))
	if r.Err != nil {
		entry.Set("error", r.Err.Error())
	}
	return entry
}

func displayHash(h string) string {
	h = strings.TrimSpace(h)
	if h == "" {
		return constants.PlaceholderNA
	}
	return reconcile.ShortHash(h)
}

func relDir(root, dir string) string {
	rel, err := filepath.Rel(root, dir)
	if err != nil {
		return dir
	}
	return filepath.ToSlash(rel)
}
