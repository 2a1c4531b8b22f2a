package templates

import (
	"context"
	"html/template"
	"io"
	"time"

	"github.com/a-h/templ"
	"github.com/pulsefit/models"
)

var funcs = template.FuncMap{
	"clock": func(t time.Time) string { return t.Format("2006-01-02 15:04") },
	"bpm":   formatBPM,
	"inc":   func(i int) int { return i + 1 },
}

var pages = template.Must(template.New("layout").Funcs(funcs).Parse(layoutHTML))

func init() {
	template.Must(pages.New("index").Parse(indexHTML))
	template.Must(pages.New("intervals").Parse(intervalsHTML))
	template.Must(pages.New("latest").Parse(latestHTML))
	template.Must(pages.New("message").Parse(messageHTML))
}

// page wraps a named template into a templ component
func page(name string, data any) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return pages.ExecuteTemplate(w, name, data)
	})
}

// Index renders the upload form and the stored uploads
func Index(uploads []models.Upload) templ.Component {
	return page("index", struct {
		Title   string
		Uploads []models.Upload
	}{"Heart Rate Windows", uploads})
}

// Intervals lists every dense window found in an upload
func Intervals(report *models.Report) templ.Component {
	return page("intervals", struct {
		Title  string
		Report *models.Report
	}{"Dense Intervals", report})
}

// Latest shows the statistics and chart for the most recent window
func Latest(upload models.Upload, stats *models.IntervalStats, chart template.HTML) templ.Component {
	return page("latest", struct {
		Title  string
		Upload models.Upload
		Stats  *models.IntervalStats
		Chart  template.HTML
	}{"Latest Interval", upload, stats, chart})
}

// Message renders an informational outcome such as "no data"
func Message(message string) templ.Component {
	return page("message", struct {
		Title   string
		Message string
		IsError bool
	}{"Heart Rate Windows", message, false})
}

// Error renders a failure message
func Error(message string) templ.Component {
	return page("message", struct {
		Title   string
		Message string
		IsError bool
	}{"Error", message, true})
}
