package logging

import (
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

// New returns a JSON logger writing one object per line to w.
// Timestamps are rendered as RFC3339Nano in loc under the "ts" key.
func New(w io.Writer, loc *time.Location) *logrus.Logger {
	if loc == nil {
		loc = time.UTC
	}
	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(logrus.InfoLevel)
	l.SetFormatter(&locFormatter{
		loc: loc,
		inner: &logrus.JSONFormatter{
			TimestampFormat: time.RFC3339Nano,
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime: "ts",
				logrus.FieldKeyMsg:  "msg",
			},
		},
	})
	return l
}

// Default is New(os.Stdout, loc).
func Default(loc *time.Location) *logrus.Logger {
	return New(os.Stdout, loc)
}

// Discard returns a logger that drops everything. Used by tests and
// by components constructed without a logger.
func Discard() *logrus.Logger {
	return New(io.Discard, time.UTC)
}

// LoadLocation resolves name, falling back to UTC when it is unknown.
func LoadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

type locFormatter struct {
	loc   *time.Location
	inner logrus.Formatter
}

func (f *locFormatter) Format(e *logrus.Entry) ([]byte, error) {
	e.Time = e.Time.In(f.loc)
	return f.inner.Format(e)
}
