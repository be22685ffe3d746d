package report

import (
	"html/template"
	"io"
)

// HTML renders markup fragments for embedding in a page.
type HTML struct{}

var htmlTemplate = template.Must(template.New("report").Parse(
	`<p class="summary"><b class="red">CAREFUL</b>: using {{.HTMLJSCount}} HTML/JS and {{.CSSCount}} CSS features. ` +
		`Some features are <u>not</u> supported by {{with .Target.Label}}the {{.}}{{else}}{{.Target.Consumer}}{{end}}. ` +
		`The bot runs <u>{{.Target.EngineName}} {{.Target.Version}}</u>, which may not render your page correctly when it's being indexed.` +
		`{{with .Target.InfoURL}}More info at <a href="{{.}}" target="_blank">{{.}}</a>.{{end}}` +
		`</p>` +
		`Features not supported by {{with .Target.Label}}the {{.}}{{else}}{{.Target.Consumer}}{{end}}:<br>` +
		`<ol>` +
		`{{range .Flagged}}<li>{{if .IsCSS}}CSS <code>{{.Label}}</code>{{else}}{{.Label}}{{end}}: <a href="{{.DocsURL}}" target="_blank">{{.DocsURL}}</a></li>{{end}}` +
		`</ol>` +
		`<div>All features used:</div>` +
		`<ol>` +
		`{{range .All}}<li>{{if .IsCSS}}CSS <code>{{.Label}}</code>{{else}}{{.Label}}{{end}}</li>{{end}}` +
		`</ol>`,
))

func (HTML) Format(w io.Writer, r *Report) error {
	return Error.Wrap(htmlTemplate.Execute(w, r))
}
