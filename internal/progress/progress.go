// Package progress logs how far along a run through a dump is.
package progress

import (
	"time"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"

	"github.com/dustin/go-wikinode"
)

// A Reporter logs page counts and rates as a run goes.
type Reporter struct {
	log   zerolog.Logger
	now   func() time.Time
	start time.Time
	prev  time.Time
	pages int64
}

// New gets a Reporter starting its clock now.
func New(l zerolog.Logger) *Reporter {
	return newReporter(l, time.Now)
}

func newReporter(l zerolog.Logger, now func() time.Time) *Reporter {
	t := now()
	return &Reporter{log: l, now: now, start: t, prev: t}
}

// Report logs the pages processed since the previous report.  It
// fits wikinode.Options.Progress.
func (r *Reporter) Report(st wikinode.Stats) {
	now := r.now()
	d := now.Sub(r.prev)
	rate := 0.0
	if d > 0 {
		rate = float64(st.Pages-r.pages) / d.Seconds()
	}
	r.log.Info().
		Str("accepted", humanize.Comma(st.Accepted)).
		Msgf("Processed %s pages total (%.2f/s)", humanize.Comma(st.Pages), rate)
	r.prev = now
	r.pages = st.Pages
}

// Done logs the totals of a finished run, including why pages were
// turned down.
func (r *Reporter) Done(st wikinode.Stats, err error) {
	d := r.now().Sub(r.start)
	rate := 0.0
	if d > 0 {
		rate = float64(st.Pages) / d.Seconds()
	}

	ev := r.log.Info()
	if err != nil {
		ev = r.log.Error().Err(err)
	}
	for reason, n := range st.Rejected {
		if n > 0 {
			ev = ev.Str(wikinode.Reason(reason).String(), humanize.Comma(n))
		}
	}
	ev.Str("accepted", humanize.Comma(st.Accepted)).
		Msgf("Ended after %v: %s pages (%.2f p/s)",
			d.Round(time.Millisecond), humanize.Comma(st.Pages), rate)
}
