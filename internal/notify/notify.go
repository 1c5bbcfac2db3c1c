// Package notify shows transient success and error banners.
package notify

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
)

// Console prints colored banners, green for success and red for errors.
type Console struct {
	out     io.Writer
	success *color.Color
	failure *color.Color
}

func NewConsole(out io.Writer) *Console {
	return &Console{
		out:     out,
		success: color.New(color.FgGreen, color.Bold),
		failure: color.New(color.FgRed, color.Bold),
	}
}

func (c *Console) Success(msg string) {
	c.success.Fprintln(c.out, "✔ "+msg)
}

func (c *Console) Error(msg string) {
	c.failure.Fprintln(c.out, "✘ "+msg)
}

// Log writes banners as log lines.
type Log struct {
	log *logrus.Entry
}

func NewLog(log *logrus.Entry) *Log {
	return &Log{log: log}
}

func (l *Log) Success(msg string) {
	l.log.Info(fmt.Sprintf("notify: %s", msg))
}

func (l *Log) Error(msg string) {
	l.log.Error(fmt.Sprintf("notify: %s", msg))
}
