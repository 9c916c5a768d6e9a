package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/schollz/progressbar/v3"
)

// ProgressBar renders batch progress as processed/total on a terminal.
// It satisfies service.ProgressReporter.
type ProgressBar struct {
	writer io.Writer
	bar    *progressbar.ProgressBar
	total  int
}

// NewProgressBar creates a progress bar for total claims. A nil writer means stderr.
func NewProgressBar(writer io.Writer, total int) *ProgressBar {
	if writer == nil {
		writer = os.Stderr
	}
	p := &ProgressBar{writer: writer, total: total}
	p.bar = progressbar.NewOptions(total,
		progressbar.OptionSetWriter(writer),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("[cyan][bold]Classifying claims...[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			if _, err := fmt.Fprintln(writer); err != nil {
				slog.Warn("Failed to write newline after progress bar", "error", err)
			}
		}),
	)
	return p
}

// Report moves the bar to processed.
func (p *ProgressBar) Report(processed, _ int) {
	if err := p.bar.Set(processed); err != nil {
		slog.Warn("Failed to update progress bar", "error", err)
	}
}

// Finish completes the bar if the run ended early or had no claims.
func (p *ProgressBar) Finish() {
	if p.bar.IsFinished() {
		return
	}
	if err := p.bar.Finish(); err != nil {
		slog.Warn("Failed to finish progress bar", "error", err)
	}
}
