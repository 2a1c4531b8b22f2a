package server

import (
	"bytes"
	"html/template"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/pulsefit/models"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// renderSeries turns an interval slice into an embeddable line chart
func renderSeries(buckets []models.Bucket, title string) (template.HTML, error) {
	line := generateHeartRateLineChart(buckets, title)

	var buf bytes.Buffer
	if err := line.Render(&buf); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

// renderZones renders the minutes spent per zone as a bar chart
func renderZones(zones []models.ZoneDuration) (template.HTML, error) {
	bar := generateZoneChart(zones)

	var buf bytes.Buffer
	if err := bar.Render(&buf); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

func generateHeartRateLineChart(buckets []models.Bucket, title string) *charts.Line {
	line := charts.NewLine()

	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Theme: "macarons"}),
		charts.WithTitleOpts(opts.Title{
			Title: title,
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: "Time",
			AxisLabel: &opts.AxisLabel{
				Rotate: 45,
			},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name:         "Heart Rate (bpm)",
			NameLocation: "middle",
			NameGap:      50,
			Scale:        opts.Bool(true),
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
	)

	x, items := generateHeartRateItems(buckets)
	line.SetXAxis(x)
	line.AddSeries(seriesName("heart rate"), items)
	line.SetSeriesOptions(charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}))

	return line
}

// generateHeartRateItems builds the x axis labels and line points; missing
// buckets become gaps in the line.
func generateHeartRateItems(buckets []models.Bucket) ([]string, []opts.LineData) {
	x := make([]string, 0, len(buckets))
	items := make([]opts.LineData, 0, len(buckets))
	for _, b := range buckets {
		x = append(x, b.Start.Format("15:04"))
		if b.Missing {
			items = append(items, opts.LineData{Value: "-"})
			continue
		}
		items = append(items, opts.LineData{Value: b.HeartRate})
	}
	return x, items
}

func generateZoneChart(zones []models.ZoneDuration) *charts.Bar {
	bar := charts.NewBar()

	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Theme: "macarons"}),
		charts.WithTitleOpts(opts.Title{
			Title: "Time in Heart Rate Zones",
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name:         "Minutes",
			NameLocation: "middle",
			NameGap:      40,
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Trigger: "axis",
			AxisPointer: &opts.AxisPointer{
				Type: "shadow",
			},
		}),
	)

	x := make([]string, len(zones))
	items := make([]opts.BarData, len(zones))
	for i, z := range zones {
		x[i] = z.Name + " (" + strconv.Itoa(z.Low) + " - " + strconv.Itoa(z.High) + " bpm)"
		items[i] = opts.BarData{Value: z.Minutes}
	}
	bar.SetXAxis(x)
	bar.AddSeries(seriesName("minutes"), items)

	return bar
}

func seriesName(name string) string {
	return cases.Title(language.English).String(name)
}
