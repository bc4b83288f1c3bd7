package main

import (
	"io"
	"log/slog"

	"github.com/maddsua/loginprobe/report"
)

// newReportWriter always prints the text report;
// debug runs also get every outcome as a log record
func newReportWriter(output io.Writer, debug bool) report.Writer {

	text := &report.TextWriter{Output: output}

	if !debug {
		return text
	}

	return report.MultiWriter{
		text,
		&report.LogWriter{Logger: slog.Default()},
	}
}
