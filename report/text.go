package report

import (
	"bufio"
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Text renders a plain text report.
type Text struct{}

func (Text) Format(w io.Writer, r *Report) error {
	return writeText(w, r, plain)
}

// Color renders a text report with terminal colors.
type Color struct{}

func (Color) Format(w io.Writer, r *Report) error {
	return writeText(w, r, colored())
}

type styles struct {
	header  func(a ...interface{}) string
	flagged func(a ...interface{}) string
	css     func(a ...interface{}) string
	link    func(a ...interface{}) string
}

var plain = styles{
	header:  fmt.Sprint,
	flagged: fmt.Sprint,
	css:     fmt.Sprint,
	link:    fmt.Sprint,
}

func colored() styles {
	style := func(attrs ...color.Attribute) func(a ...interface{}) string {
		c := color.New(attrs...)
		c.EnableColor()
		return c.SprintFunc()
	}
	return styles{
		header:  style(color.Bold),
		flagged: style(color.FgRed, color.Bold),
		css:     style(color.FgCyan),
		link:    style(color.Faint, color.Underline),
	}
}

func writeText(w io.Writer, r *Report, s styles) error {
	out := bufio.NewWriter(w)

	fmt.Fprintf(out, "%s using %d HTML/JS and %d CSS features.\n",
		s.header("Page is"), r.HTMLJSCount, r.CSSCount)
	if r.Target.Label != "" {
		fmt.Fprintf(out, "%s runs %s %s.\n", r.Target.Label, r.Target.EngineName(), r.Target.Version)
	} else {
		fmt.Fprintf(out, "Checked against %s.\n", r.Target.Consumer())
	}
	if r.Target.InfoURL != "" {
		fmt.Fprintf(out, "More info at %s\n", s.link(r.Target.InfoURL))
	}

	notSupportedBy := r.Target.Consumer()
	if r.Target.Label != "" {
		notSupportedBy = "the " + r.Target.Label
	}
	fmt.Fprintf(out, "\n%s\n", s.header("Features not supported by ", notSupportedBy, ":"))
	if len(r.Flagged) == 0 {
		fmt.Fprintln(out, "  (none)")
	}
	for i, entry := range r.Flagged {
		name := s.flagged(entry.Label())
		if entry.IsCSS() {
			name = s.css("CSS ") + name
		}
		fmt.Fprintf(out, "%3d. %s: %s\n", i+1, name, s.link(entry.DocsURL))
	}

	fmt.Fprintf(out, "\n%s\n", s.header("All features used:"))
	if len(r.All) == 0 {
		fmt.Fprintln(out, "  (none)")
	}
	for i, entry := range r.All {
		name := entry.Label()
		if entry.Flagged() {
			name = s.flagged(name)
		}
		if entry.IsCSS() {
			name = s.css("CSS ") + name
		}
		fmt.Fprintf(out, "%3d. %s\n", i+1, name)
	}

	return Error.Wrap(out.Flush())
}
