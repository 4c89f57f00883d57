package baseline

import (
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"time"
)

// Report renders one or more baseline runs for comparison.
type Report struct {
	Title       string
	GeneratedAt time.Time
	Results     []*Result
}

// NewReport builds a report over the given runs.
func NewReport(results []*Result) *Report {
	return &Report{
		Title:       "XQA Baseline Evaluation",
		GeneratedAt: time.Now(),
		Results:     results,
	}
}

// WriteJSON writes the runs as indented JSON.
func (r *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(r.Results)
}

// WriteHTML renders the report as a self-contained HTML page.
func (r *Report) WriteHTML(w io.Writer) error {
	return reportTmpl.Execute(w, r)
}

var funcMap = template.FuncMap{
	"pct": func(v float64) string {
		return fmt.Sprintf("%.1f%%", v*100)
	},
	"f3": func(v float64) string {
		return fmt.Sprintf("%.3f", v)
	},
	"durSec": func(d time.Duration) string {
		return fmt.Sprintf("%.1fs", d.Seconds())
	},
}

var reportTmpl = template.Must(template.New("report").Funcs(funcMap).Parse(reportHTML))

const reportHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
  :root {
    --bg: #0d1117; --fg: #c9d1d9; --card: #161b22;
    --border: #30363d; --accent: #58a6ff;
  }
  * { box-sizing: border-box; margin: 0; padding: 0; }
  body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', sans-serif;
    background: var(--bg); color: var(--fg); line-height: 1.6; padding: 2rem; }
  h1 { color: var(--accent); margin-bottom: 0.5rem; }
  h2 { color: var(--fg); margin: 2rem 0 1rem; border-bottom: 1px solid var(--border); padding-bottom: 0.5rem; }
  .meta { color: #8b949e; font-size: 0.875rem; margin-bottom: 2rem; }
  table { border-collapse: collapse; width: 100%; margin-bottom: 1.5rem; }
  th, td { padding: 0.5rem 0.75rem; text-align: left; border: 1px solid var(--border); }
  th { background: var(--card); font-weight: 600; font-size: 0.8125rem; text-transform: uppercase;
    letter-spacing: 0.05em; color: #8b949e; }
  td { font-family: 'SF Mono', 'Cascadia Code', monospace; font-size: 0.875rem; }
  tr:hover td { background: rgba(88,166,255,0.04); }
</style>
</head>
<body>

<h1>{{.Title}}</h1>
<p class="meta">Generated {{.GeneratedAt.Format "2006-01-02 15:04:05 MST"}}</p>

<h2>Summary</h2>
<table>
  <thead>
    <tr><th>Run</th><th>Model</th><th>Questions</th><th>Accuracy</th><th>EM</th><th>F1</th><th>Time</th></tr>
  </thead>
  <tbody>
  {{range .Results}}
    <tr>
      <td>{{.RunID}}</td>
      <td>{{.Model}}</td>
      <td>{{.Total}}</td>
      <td>{{pct .Accuracy}}</td>
      <td>{{f3 .MeanEM}}</td>
      <td>{{f3 .MeanF1}}</td>
      <td>{{durSec .Duration}}</td>
    </tr>
  {{end}}
  </tbody>
</table>

{{range .Results}}{{if .PerQuestion}}
<h2>{{.Model}} per question</h2>
<table>
  <thead>
    <tr><th>Question</th><th>Prediction</th><th>EM</th><th>F1</th></tr>
  </thead>
  <tbody>
  {{range .PerQuestion}}
    <tr>
      <td>{{.Question}}</td>
      <td>{{.Prediction}}</td>
      <td>{{f3 .EM}}</td>
      <td>{{f3 .F1}}</td>
    </tr>
  {{end}}
  </tbody>
</table>
{{end}}{{end}}

</body>
</html>`
