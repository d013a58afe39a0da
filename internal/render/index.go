package render

import (
	"bytes"
	"fmt"
	"html/template"
	"sort"
)

// indexTemplate is the entry page template. Each active plugin gets its
// stylesheet link and script tag; the pane markup is filled in by the
// plugin's own bootstrap script.
const indexTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>Allure Report</title>
  <link rel="stylesheet" href="plugins/opensansfont/opensans.css">
{{- range .Plugins}}
  <link rel="stylesheet" href="plugins/{{.}}/styles.css">
{{- end}}
</head>
<body>
  <header class="allure-header">
    <h1>Allure Report</h1>
  </header>
  <nav class="allure-nav">
    <ul>
{{- range .Plugins}}
      <li><a href="#{{.}}">{{.}}</a></li>
{{- end}}
    </ul>
  </nav>
  <main>
{{- range .Plugins}}
    <section id="{{.}}" class="allure-pane allure-{{.}}"></section>
{{- end}}
  </main>
{{- range .Plugins}}
  <script src="plugins/{{.}}/index.js"></script>
{{- end}}
</body>
</html>
`

// IndexRenderer renders the entry page from the active plugin name set.
type IndexRenderer struct {
	tmpl *template.Template
}

// NewIndexRenderer parses the entry page template.
func NewIndexRenderer() (*IndexRenderer, error) {
	tmpl, err := template.New("index.html").Parse(indexTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse entry page template: %w", err)
	}
	return &IndexRenderer{tmpl: tmpl}, nil
}

// Render produces the entry page bytes for the given active plugin
// names. The input is not mutated; a sorted copy drives the template.
func (r *IndexRenderer) Render(activePluginNames []string) ([]byte, error) {
	names := make([]string, len(activePluginNames))
	copy(names, activePluginNames)
	sort.Strings(names)

	var buf bytes.Buffer
	data := struct{ Plugins []string }{Plugins: names}
	if err := r.tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render entry page: %w", err)
	}
	return buf.Bytes(), nil
}
