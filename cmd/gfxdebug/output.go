package main

import (
	"io"
	"os"
	"strings"

	"github.com/muesli/termenv"
	"golang.org/x/term"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/gfx/debug"
	"github.com/gogpu/gfx/profile"
)

// printer writes the scenario summary. Counts are grouped by thousands and
// reports are colored by severity when the output supports it.
type printer struct {
	w   io.Writer
	out *termenv.Output
	msg *message.Printer
}

func newPrinter(w io.Writer, mode string) *printer {
	var opts []termenv.OutputOption
	switch strings.ToLower(mode) {
	case "always":
		opts = append(opts, termenv.WithProfile(termenv.ANSI))
	case "never":
		opts = append(opts, termenv.WithProfile(termenv.Ascii))
	default:
		if f, ok := w.(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
			opts = append(opts, termenv.WithProfile(termenv.Ascii))
		}
	}
	return &printer{
		w:   w,
		out: termenv.NewOutput(w, opts...),
		msg: message.NewPrinter(language.English),
	}
}

func (p *printer) Printf(format string, args ...any) {
	_, _ = p.msg.Fprintf(p.w, format, args...)
}

// Frame prints one profiler snapshot.
func (p *printer) Frame(s profile.Snapshot) {
	p.Printf("frame %d: %d calls, %d draws, %d submits (%v)\n",
		s.Frame, s.Total(), s.Draws(), s.Calls[debug.OpSubmit], s.Duration)
}

// Reports prints the recorded reports, errors in red and warnings in yellow.
func (p *printer) Reports(rec *debug.Recorder) {
	p.Printf("reports: %d errors, %d warnings\n", len(rec.Errors()), len(rec.Warnings()))
	for _, rp := range rec.Reports() {
		color := termenv.ANSIYellow
		if rp.Severity() == debug.SeverityError {
			color = termenv.ANSIRed
		}
		p.Printf("  %s\n", p.out.String(rp.String()).Foreground(color))
	}
}
