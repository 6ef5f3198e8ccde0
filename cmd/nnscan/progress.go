package main

import (
	"io"
	"os"
	"time"

	"github.com/hupe1980/nnscan"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"
)

const progressThrottle = 65 * time.Millisecond

// scanProgress renders launch progress as a terminal bar.
type scanProgress struct {
	w   io.Writer
	bar *progressbar.ProgressBar
}

func newScanProgress(w io.Writer) nnscan.ProgressReporter {
	return &scanProgress{w: w}
}

func (p *scanProgress) Start(total int) {
	if total <= 0 {
		return
	}
	p.bar = progressbar.NewOptions(total,
		progressbar.OptionSetWriter(p.w),
		progressbar.OptionSetDescription("scanning"),
		progressbar.OptionSetWidth(32),
		progressbar.OptionShowCount(),
		progressbar.OptionThrottle(progressThrottle),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
}

func (p *scanProgress) Add(n int) {
	if p.bar == nil {
		return
	}
	_ = p.bar.Add(n)
}

func (p *scanProgress) Finish() {
	if p.bar == nil {
		return
	}
	_ = p.bar.Finish()
}

// progressEnabled reports whether w is an interactive terminal.
func progressEnabled(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
