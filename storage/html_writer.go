package storage

import (
	"bufio"
	"fmt"
	"html/template"
	"os"

	"zillow-scraper/models"
)

const reportTitle = "Zillow Listings"

var (
	tableTemplate = template.Must(template.New("table").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>{{.Title}}</title></head>
<body>
<h1>{{.Title}}</h1>
<table border="1" cellspacing="0" cellpadding="4">
<thead><tr>{{range .Headers}}<th>{{.}}</th>{{end}}</tr></thead>
<tbody>
{{range .Rows}}<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>
{{end}}</tbody>
</table>
</body>
</html>
`))

	emptyTemplate = template.Must(template.New("empty").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>{{.Title}}</title></head>
<body><p>No listings available.</p></body>
</html>
`))
)

type htmlReport struct {
	Title   string
	Headers []string
	Rows    [][]string
}

// HTMLWriter exports listings as a standalone HTML document with one table.
type HTMLWriter struct{}

func (HTMLWriter) Format() string   { return "html" }
func (HTMLWriter) FileName() string { return HTMLFileName }

// Export always creates the file; zero listings produce a short
// "No listings available." page instead of an empty table.
func (HTMLWriter) Export(listings []*models.Listing, path string) (bool, error) {
	report := htmlReport{Title: reportTitle, Headers: models.FieldNames}
	tmpl := emptyTemplate
	if len(listings) > 0 {
		tmpl = tableTemplate
		report.Rows = make([][]string, 0, len(listings))
		for _, l := range listings {
			report.Rows = append(report.Rows, l.Values())
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return false, fmt.Errorf("html: create file %q: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if err := tmpl.Execute(w, report); err != nil {
		return false, fmt.Errorf("html: render: %w", err)
	}
	if err := w.Flush(); err != nil {
		return false, fmt.Errorf("html: write %q: %w", path, err)
	}
	return true, f.Close()
}
