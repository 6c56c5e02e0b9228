package logger

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
)

func isConsole(format string) bool {
	f := strings.ToLower(format)
	return f == "console" || f == FormatPretty
}

var levelStyles = map[string]struct {
	tag  string
	attr color.Attribute
}{
	"trace": {"TRC", color.FgHiBlack},
	"debug": {"DBG", color.FgCyan},
	"info":  {"INF", color.FgGreen},
	"warn":  {"WRN", color.FgYellow},
	"error": {"ERR", color.FgRed},
	"fatal": {"FTL", color.FgMagenta},
}

// paint colours s unless noColor is set. fatih/color also stays plain when
// the output is not a terminal.
func paint(s string, attr color.Attribute, noColor bool) string {
	if noColor {
		return s
	}
	return color.New(attr).Sprint(s)
}

// consoleLogger renders "15:04:05 [SVC][INF] message key:value" lines,
// where SVC is the first three letters of the service name.
func consoleLogger(cfg *Config, serviceName string, w io.Writer) zerolog.Logger {
	prefix := ""
	if len(serviceName) >= 3 {
		prefix = paint("["+strings.ToUpper(serviceName[:3])+"]", color.FgBlue, cfg.NoColor)
	}

	cw := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: "15:04:05",
		NoColor:    cfg.NoColor,
		FormatLevel: func(i interface{}) string {
			level := fmt.Sprint(i)
			style, ok := levelStyles[level]
			if !ok {
				return prefix + "[" + strings.ToUpper(level) + "]"
			}
			return prefix + paint("["+style.tag+"]", style.attr, cfg.NoColor)
		},
		FormatMessage: func(i interface{}) string {
			if i == nil {
				return ""
			}
			return fmt.Sprint(i)
		},
		FormatFieldName: func(i interface{}) string { return fmt.Sprint(i) + ":" },
		FormatFieldValue: func(i interface{}) string {
			if i == nil {
				return ""
			}
			return fmt.Sprint(i)
		},
	}
	return zerolog.New(cw).With().Timestamp().Logger()
}
