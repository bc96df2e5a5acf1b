// Package reconcile compares pinned and latest revisions of every collected
// dependency and optionally updates the pins.
//
// Processing is sequential: groups in walk order, URLs in manifest order,
// and every declaration gets fresh oracle calls. Nothing is cached, so a URL
// repeated across groups is resolved again.
package reconcile

import (
	"context"
	"fmt"
	"io"

	"github.com/ajxudir/zigdeps/pkg/constants"
	"github.com/ajxudir/zigdeps/pkg/errors"
	"github.com/ajxudir/zigdeps/pkg/manifest"
	"github.com/ajxudir/zigdeps/pkg/oracle"
	"github.com/ajxudir/zigdeps/pkg/verbose"
	"github.com/ajxudir/zigdeps/pkg/walker"
)

// Options controls a reconciliation run.
//
// Fields:
//   - Update: Persist the latest revision for out of date dependencies
//   - ContinueOnFail: Record a failed result and carry on instead of
//     aborting on the first format or oracle error
type Options struct {
	Update         bool
	ContinueOnFail bool
}

// Reconciler drives the oracle over collected dependency groups.
type Reconciler struct {
	oracle oracle.Oracle
	out    io.Writer
	opts   Options
}

// New creates a Reconciler. Report lines go to out; nil discards them.
func New(o oracle.Oracle, out io.Writer, opts Options) *Reconciler {
	if out == nil {
		out = io.Discard
	}
	return &Reconciler{oracle: o, out: out, opts: opts}
}

// Run reconciles every declaration of groups and writes one line per
// declaration as it goes.
//
// By default the first error aborts the run and is returned together with
// the results gathered so far. With ContinueOnFail, failures become
// StatusFailed results and a *errors.PartialSuccessError is returned at the
// end when at least one declaration failed.
func (r *Reconciler) Run(ctx context.Context, groups *walker.Groups) ([]Result, error) {
	var results []Result
	var failures []error

	for _, grp := range groups.All() {
		for _, url := range grp.URLs {
			if err := ctx.Err(); err != nil {
				return results, err
			}

			res, err := r.Reconcile(ctx, grp.Dir, url)
			if err != nil {
				if !r.opts.ContinueOnFail {
					return results, err
				}
				res.Status = constants.StatusFailed
				res.Err = err
				failures = append(failures, err)
			}

			results = append(results, res)
			if _, werr := fmt.Fprintln(r.out, res.Line()); werr != nil {
				return results, werr
			}
		}
	}

	s := Summarize(results)
	verbose.Debug("reconcile finished",
		"checked", s.Checked, "up_to_date", s.UpToDate, "out_of_date", s.OutOfDate,
		"updated", s.Updated, "failed", s.Failed)

	if len(failures) > 0 {
		return results, errors.NewPartialSuccessError(len(results)-len(failures), len(failures), failures)
	}
	return results, nil
}

// Reconcile compares the pinned and latest hash of url, declared in dir, and
// persists the latest revision when it differs and updating is enabled.
//
// The returned Result is filled as far as processing got, also on error.
func (r *Reconciler) Reconcile(ctx context.Context, dir, url string) (Result, error) {
	res := Result{Dir: dir, URL: url}

	base, err := manifest.BaseURL(url)
	if err != nil {
		return res, err
	}
	res.Base = base

	current, err := oracle.CurrentHash(ctx, r.oracle, url)
	if err != nil {
		return res, err
	}
	res.Current = current

	latest, err := oracle.LatestHash(ctx, r.oracle, base)
	if err != nil {
		return res, err
	}
	res.Latest = latest

	verbose.Debug("hashes", "base", base, "current", ShortHash(current), "latest", ShortHash(latest))

	switch {
	case current == latest:
		res.Status = constants.StatusUpToDate
	case r.opts.Update:
		if err := r.oracle.Persist(ctx, dir, base); err != nil {
			return res, err
		}
		res.Status = constants.StatusUpdated
	default:
		res.Status = constants.StatusOutOfDate
	}
	return res, nil
}
