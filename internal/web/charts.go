package web

import (
	"fmt"
	"html/template"
	"strings"
)

// Point is one labelled value of a chart series.
type Point struct {
	Label string
	Value float64
}

const (
	chartWidth   = 560
	chartHeight  = 240
	chartPadding = 36
)

// BarChart renders a vertical bar chart as inline SVG.
func BarChart(title string, points []Point) template.HTML {
	var b strings.Builder
	openSVG(&b, title)
	if len(points) == 0 {
		emptyChart(&b)
		return template.HTML(b.String())
	}

	maxValue := maxOf(points)
	plotW := float64(chartWidth - 2*chartPadding)
	plotH := float64(chartHeight - 2*chartPadding)
	slot := plotW / float64(len(points))
	barW := slot * 0.6

	for i, p := range points {
		h := 0.0
		if maxValue > 0 {
			h = p.Value / maxValue * plotH
		}
		x := float64(chartPadding) + float64(i)*slot + (slot-barW)/2
		y := float64(chartPadding) + plotH - h
		fmt.Fprintf(&b, `<rect class="bar" x="%.1f" y="%.1f" width="%.1f" height="%.1f"><title>%s: %s</title></rect>`,
			x, y, barW, h, esc(p.Label), formatValue(p.Value))
		fmt.Fprintf(&b, `<text class="value" x="%.1f" y="%.1f" text-anchor="middle">%s</text>`, x+barW/2, y-4, formatValue(p.Value))
		fmt.Fprintf(&b, `<text class="label" x="%.1f" y="%d" text-anchor="middle">%s</text>`, x+barW/2, chartHeight-chartPadding+16, esc(p.Label))
	}
	b.WriteString(`</svg>`)
	return template.HTML(b.String())
}

// LineChart renders a percentage series (0..100) as an inline SVG polyline.
func LineChart(title string, points []Point) template.HTML {
	var b strings.Builder
	openSVG(&b, title)
	if len(points) == 0 {
		emptyChart(&b)
		return template.HTML(b.String())
	}

	plotW := float64(chartWidth - 2*chartPadding)
	plotH := float64(chartHeight - 2*chartPadding)
	step := 0.0
	if len(points) > 1 {
		step = plotW / float64(len(points)-1)
	}

	coords := make([]string, 0, len(points))
	for i, p := range points {
		x := float64(chartPadding) + float64(i)*step
		if len(points) == 1 {
			x = float64(chartPadding) + plotW/2
		}
		y := float64(chartPadding) + plotH - clamp(p.Value, 0, 100)/100*plotH
		coords = append(coords, fmt.Sprintf("%.1f,%.1f", x, y))
		fmt.Fprintf(&b, `<circle class="dot" cx="%.1f" cy="%.1f" r="4"><title>%s: %s%%</title></circle>`, x, y, esc(p.Label), formatValue(p.Value))
		fmt.Fprintf(&b, `<text class="label" x="%.1f" y="%d" text-anchor="middle">%s</text>`, x, chartHeight-chartPadding+16, esc(p.Label))
	}
	fmt.Fprintf(&b, `<polyline class="line" fill="none" points="%s"/>`, strings.Join(coords, " "))
	b.WriteString(`</svg>`)
	return template.HTML(b.String())
}

func openSVG(b *strings.Builder, title string) {
	fmt.Fprintf(b, `<svg class="chart" xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" role="img" aria-label="%s">`, chartWidth, chartHeight, esc(title))
	fmt.Fprintf(b, `<line class="axis" x1="%d" y1="%d" x2="%d" y2="%d"/>`, chartPadding, chartHeight-chartPadding, chartWidth-chartPadding, chartHeight-chartPadding)
}

func emptyChart(b *strings.Builder) {
	fmt.Fprintf(b, `<text class="empty" x="%d" y="%d" text-anchor="middle">Sin datos</text></svg>`, chartWidth/2, chartHeight/2)
}

func maxOf(points []Point) float64 {
	m := 0.0
	for _, p := range points {
		if p.Value > m {
			m = p.Value
		}
	}
	return m
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func formatValue(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.2f", v)
}

func esc(s string) string { return template.HTMLEscapeString(s) }
