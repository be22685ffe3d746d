package report

import (
	"io"
	"sort"

	"github.com/zeebo/errs/v2"
)

// Error is the class of rendering errors.
const Error = errs.Tag("report")

// Formatter renders a report.
type Formatter interface {
	Format(w io.Writer, r *Report) error
}

// Formats lists the built-in formatters by name.
var Formats = map[string]Formatter{
	"html":  HTML{},
	"text":  Text{},
	"color": Color{},
	"json":  JSON{},
}

// FormatterFor returns the named formatter.
func FormatterFor(name string) (Formatter, error) {
	if f, ok := Formats[name]; ok {
		return f, nil
	}
	return nil, Error.Errorf("unknown format %q, expected one of %v", name, FormatNames())
}

// FormatNames returns the sorted formatter names.
func FormatNames() []string {
	names := make([]string, 0, len(Formats))
	for name := range Formats {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
