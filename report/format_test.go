package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loov.dev/featurecheck/usage"
)

func sampleReport() *Report {
	u := usage.Usage{
		HTMLJS: []usage.Feature{
			resolved(usage.HTMLJS, 42, "Fetch", 10),
			resolved(usage.HTMLJS, 1, "PromiseConstructor", 11),
			{Identity: usage.Identity{Kind: usage.HTMLJS, ID: 9000}, Timestamp: 12},
		},
		CSS: []usage.Feature{
			resolved(usage.CSS, 7, "CSSGridLayout", 13),
		},
	}
	return testReporter().Build(&u)
}

func TestHTML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, HTML{}.Format(&buf, sampleReport()))

	assert.Equal(t, ``+
		`<p class="summary"><b class="red">CAREFUL</b>: using 3 HTML/JS and 1 CSS features. `+
		`Some features are <u>not</u> supported by the Google Search crawler. `+
		`The bot runs <u>Chrome 41</u>, which may not render your page correctly when it's being indexed.`+
		`More info at <a href="https://developers.google.com/search/docs/guides/rendering" target="_blank">https://developers.google.com/search/docs/guides/rendering</a>.</p>`+
		`Features not supported by the Google Search crawler:<br>`+
		`<ol>`+
		`<li>CSS <code>CSSGridLayout</code>: <a href="https://caniuse.com/#feat=css-grid" target="_blank">https://caniuse.com/#feat=css-grid</a></li>`+
		`<li>Fetch: <a href="https://caniuse.com/#feat=fetch" target="_blank">https://caniuse.com/#feat=fetch</a></li>`+
		`</ol>`+
		`<div>All features used:</div>`+
		`<ol>`+
		`<li>CSS <code>CSSGridLayout</code></li>`+
		`<li>Fetch</li>`+
		`<li>PromiseConstructor</li>`+
		`<li>(unknown html_js feature 9000)</li>`+
		`</ol>`, buf.String())
}

func TestHTMLEscapesNames(t *testing.T) {
	u := usage.Usage{HTMLJS: []usage.Feature{resolved(usage.HTMLJS, 1, "<script>alert(1)</script>", 1)}}
	r := testReporter().Build(&u)

	var buf bytes.Buffer
	require.NoError(t, HTML{}.Format(&buf, r))
	assert.NotContains(t, buf.String(), "<script>")
	assert.Contains(t, buf.String(), "&lt;script&gt;")
}

func TestHTMLEmpty(t *testing.T) {
	r := testReporter().Build(&usage.Usage{})

	var buf bytes.Buffer
	require.NoError(t, HTML{}.Format(&buf, r))
	assert.Contains(t, buf.String(), "using 0 HTML/JS and 0 CSS features")
	assert.Contains(t, buf.String(), "<br><ol></ol><div>All features used:</div><ol></ol>")
}

func TestText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Text{}.Format(&buf, sampleReport()))

	assert.Equal(t, strings.Join([]string{
		"Page is using 3 HTML/JS and 1 CSS features.",
		"Google Search crawler runs Chrome 41.",
		"More info at https://developers.google.com/search/docs/guides/rendering",
		"",
		"Features not supported by the Google Search crawler:",
		"  1. CSS CSSGridLayout: https://caniuse.com/#feat=css-grid",
		"  2. Fetch: https://caniuse.com/#feat=fetch",
		"",
		"All features used:",
		"  1. CSS CSSGridLayout",
		"  2. Fetch",
		"  3. PromiseConstructor",
		"  4. (unknown html_js feature 9000)",
		"",
	}, "\n"), buf.String())
}

func TestTextEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Text{}.Format(&buf, testReporter().Build(&usage.Usage{})))
	assert.Equal(t, 2, strings.Count(buf.String(), "(none)"))
}

func TestColor(t *testing.T) {
	var plain, colored bytes.Buffer
	require.NoError(t, Text{}.Format(&plain, sampleReport()))
	require.NoError(t, Color{}.Format(&colored, sampleReport()))

	assert.Contains(t, colored.String(), "\x1b[")
	assert.NotContains(t, plain.String(), "\x1b[")
	assert.Contains(t, colored.String(), "Fetch")
}

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, JSON{}.Format(&buf, sampleReport()))

	var out struct {
		Engine  string
		Version string
		Counts  struct {
			HTMLJS int `json:"html_js"`
			CSS    int `json:"css"`
		}
		Flagged []map[string]any
		All     []map[string]any
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))

	assert.Equal(t, "chrome", out.Engine)
	assert.Equal(t, "41", out.Version)
	assert.Equal(t, 3, out.Counts.HTMLJS)
	assert.Equal(t, 1, out.Counts.CSS)
	require.Len(t, out.Flagged, 2)
	assert.Equal(t, "css", out.Flagged[0]["kind"])
	assert.Equal(t, "unsupported", out.Flagged[0]["verdict"])
	require.Len(t, out.All, 4)
	assert.Equal(t, "supported", out.All[2]["verdict"])
	assert.NotContains(t, out.All[3], "name")
	assert.NotContains(t, out.All[3], "verdict")
}

func TestJSONEmptyListsAreArrays(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, JSON{}.Format(&buf, testReporter().Build(&usage.Usage{})))
	assert.Contains(t, buf.String(), `"flagged": []`)
	assert.Contains(t, buf.String(), `"all": []`)
}

func TestFormatterFor(t *testing.T) {
	for _, name := range FormatNames() {
		f, err := FormatterFor(name)
		require.NoError(t, err)
		assert.NotNil(t, f)
	}
	_, err := FormatterFor("pdf")
	assert.ErrorIs(t, err, Error)
}

func TestUnlabeledTarget(t *testing.T) {
	reporter := testReporter()
	reporter.Target = Target{Engine: "chrome", Version: "41"}
	r := reporter.Build(&usage.Usage{HTMLJS: []usage.Feature{resolved(usage.HTMLJS, 42, "Fetch", 1)}})

	var html bytes.Buffer
	require.NoError(t, HTML{}.Format(&html, r))
	assert.Contains(t, html.String(), "supported by Chrome 41. ")
	assert.Contains(t, html.String(), "Features not supported by Chrome 41:<br>")
	assert.NotContains(t, html.String(), "by the .")
	assert.NotContains(t, html.String(), "More info at")

	var text bytes.Buffer
	require.NoError(t, Text{}.Format(&text, r))
	assert.Contains(t, text.String(), "Checked against Chrome 41.\n")
	assert.Contains(t, text.String(), "Features not supported by Chrome 41:\n")
	assert.NotContains(t, text.String(), " runs ")
}
