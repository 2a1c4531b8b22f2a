package templates

import "strconv"

func formatBPM(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

const layoutHTML = `{{define "header"}}<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>{{.Title}}</title>
  <style>
    body { font-family: sans-serif; margin: 2rem; }
    table { border-collapse: collapse; }
    td, th { padding: 0.25rem 0.75rem; border-bottom: 1px solid #ddd; text-align: left; }
    .error { color: #b00020; }
  </style>
</head>
<body>
<nav><a href="/">Upload</a> | <a href="/data">Intervals</a> | <a href="/latest">Latest</a></nav>
<h1>{{.Title}}</h1>
{{end}}
{{define "footer"}}</body>
</html>
{{end}}`

const indexHTML = `{{template "header" .}}
<form method="post" action="/" enctype="multipart/form-data">
  <input type="file" name="file" accept=".csv,.json,.xlsx">
  <button type="submit">Upload</button>
</form>
<h2>Uploads</h2>
{{if .Uploads}}
<table>
  <tr><th>File</th><th>Format</th><th>Uploaded</th></tr>
  {{range .Uploads}}<tr><td>{{.Filename}}</td><td>{{.Format}}</td><td>{{if .UploadedAt.IsZero}}-{{else}}{{clock .UploadedAt}}{{end}}</td></tr>
  {{end}}
</table>
{{else}}
<p>No files uploaded yet.</p>
{{end}}
{{template "footer" .}}`

const intervalsHTML = `{{template "header" .}}
<p>{{.Report.Upload.Filename}}: {{.Report.Series.Len}} buckets of {{.Report.Series.Step}}</p>
{{if .Report.Intervals}}
<table>
  <tr><th>#</th><th>Start</th><th>End</th></tr>
  {{range $i, $iv := .Report.Intervals}}<tr><td>{{inc $i}}</td><td>{{clock $iv.Start}}</td><td>{{clock $iv.End}}</td></tr>
  {{end}}
</table>
{{else}}
<p>No valid intervals found.</p>
{{end}}
{{template "footer" .}}`

const latestHTML = `{{template "header" .}}
<p>{{.Upload.Filename}}: {{clock .Stats.Interval.Start}} - {{clock .Stats.Interval.End}}</p>
<table>
  <tr><th>Min heart rate</th><td>{{bpm .Stats.Min}} bpm</td></tr>
  <tr><th>Max heart rate</th><td>{{bpm .Stats.Max}} bpm</td></tr>
  <tr><th>Average heart rate</th><td>{{bpm .Stats.Mean}} bpm</td></tr>
</table>
<h2>Zones</h2>
<table>
  <tr><th>Zone</th><th>Range</th><th>Minutes</th></tr>
  {{range .Stats.Zones}}<tr><td>{{.Name}}</td><td>{{.Low}} - {{.High}} bpm</td><td>{{.Minutes}}</td></tr>
  {{end}}
</table>
<div>{{.Chart}}</div>
{{template "footer" .}}`

const messageHTML = `{{template "header" .}}
<p{{if .IsError}} class="error"{{end}}>{{.Message}}</p>
{{template "footer" .}}`
