// Package logger builds per-component loggers on top of logrus.
//
// Every line starts with the component name in its color followed by the
// level, e.g. "[SESSION] [INFO] created session", and any fields in key=value form.
package logger

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/beka-birhanu/vinom-sweeper/config"
	"github.com/sirupsen/logrus"
)

const componentKey = "component"

var ErrNilWriter = errors.New("logger output writer is nil")

// New creates a logger for component that writes to out.
func New(component, color string, out io.Writer) (*logrus.Entry, error) {
	if out == nil {
		return nil, ErrNilWriter
	}

	l := logrus.New()
	l.SetOutput(out)
	l.SetLevel(logrus.InfoLevel)
	l.SetFormatter(&componentFormatter{color: color})

	return l.WithField(componentKey, component), nil
}

// componentFormatter writes entries in the "[COMPONENT] [LEVEL] message" layout.
type componentFormatter struct {
	color string
}

// Format implements logrus.Formatter.
func (f *componentFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var b bytes.Buffer

	component, _ := entry.Data[componentKey].(string)
	levelColor := config.LogInfoColor
	switch entry.Level {
	case logrus.WarnLevel:
		levelColor = config.LogWarnColor
	case logrus.ErrorLevel, logrus.FatalLevel, logrus.PanicLevel:
		levelColor = config.LogErrorColor
	}

	fmt.Fprintf(&b, "%s %s[%s]%s %s[%s]%s %s",
		entry.Time.Format("2006/01/02 15:04:05"),
		f.color, component, config.ColorReset,
		levelColor, strings.ToUpper(entry.Level.String()), config.LogColorReset,
		entry.Message,
	)

	keys := make([]string, 0, len(entry.Data))
	for k := range entry.Data {
		if k != componentKey {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, entry.Data[k])
	}

	b.WriteByte('\n')
	return b.Bytes(), nil
}
