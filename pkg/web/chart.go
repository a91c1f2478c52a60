package web

import (
	"fmt"
	"html"
	"html/template"
	"math"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/aifirst/llmdemos/pkg/models"
)

const (
	chartWidth  = 800
	chartHeight = 400

	marginLeft   = 70
	marginRight  = 80
	marginTop    = 40
	marginBottom = 40

	axisTicks = 5
)

// ChartSeries is one line of a Chart. Offset shifts the first value right
// by that many points so a forecast can continue a historical series.
type ChartSeries struct {
	Name      string
	Values    []float64
	Color     string
	Dashed    bool
	RightAxis bool
	Offset    int
}

// Chart is a line chart with independent left and right value axes.
type Chart struct {
	Title      string
	XLabel     string
	LeftLabel  string
	RightLabel string
	Series     []ChartSeries
}

// PriceChart plots the price columns on the left axis and the volume,
// dashed, on the right axis. Forecast values, if any, continue the closing
// price.
func PriceChart(series models.PriceSeries, forecast []float64) *Chart {
	n := len(series.Rows)
	closes := make([]float64, n)
	opens := make([]float64, n)
	highs := make([]float64, n)
	lows := make([]float64, n)
	volumes := make([]float64, n)
	for i, r := range series.Rows {
		closes[i], opens[i], highs[i], lows[i], volumes[i] = r.Close, r.Open, r.High, r.Low, r.Volume
	}

	names := models.DefaultPriceColumns
	if len(series.Columns) == len(names) {
		names = series.Columns
	}

	c := &Chart{
		Title:      "Stock Price Data",
		XLabel:     "Period",
		LeftLabel:  "Price",
		RightLabel: "Volume",
		Series: []ChartSeries{
			{Name: names[0], Values: closes, Color: "#2563eb"},
			{Name: names[1], Values: opens, Color: "#f97316"},
			{Name: names[2], Values: highs, Color: "#16a34a"},
			{Name: names[3], Values: lows, Color: "#dc2626"},
			{Name: names[4], Values: volumes, Color: "#6b7280", Dashed: true, RightAxis: true},
		},
	}

	if len(forecast) > 0 && n > 0 {
		// start the forecast line at the last close so the two lines join
		values := append([]float64{closes[n-1]}, forecast...)
		c.Series = append(c.Series, ChartSeries{
			Name:   "Forecast",
			Values: values,
			Color:  "#9333ea",
			Offset: n - 1,
		})
	}

	return c
}

type axisRange struct {
	min, max float64
}

func (a axisRange) scale(v float64, top, bottom float64) float64 {
	return bottom - (v-a.min)/(a.max-a.min)*(bottom-top)
}

func (c *Chart) ranges() (left, right axisRange, leftUsed, rightUsed bool) {
	left = axisRange{math.Inf(1), math.Inf(-1)}
	right = axisRange{math.Inf(1), math.Inf(-1)}
	for _, s := range c.Series {
		r := &left
		if s.RightAxis {
			r = &right
			rightUsed = rightUsed || len(s.Values) > 0
		} else {
			leftUsed = leftUsed || len(s.Values) > 0
		}
		for _, v := range s.Values {
			r.min = math.Min(r.min, v)
			r.max = math.Max(r.max, v)
		}
	}
	return pad(left), pad(right), leftUsed, rightUsed
}

// pad widens a range by 5% on each side. A flat range is widened by 1.
func pad(r axisRange) axisRange {
	if math.IsInf(r.min, 0) || math.IsInf(r.max, 0) {
		return axisRange{0, 1}
	}
	if r.max == r.min {
		return axisRange{r.min - 1, r.max + 1}
	}
	margin := (r.max - r.min) * 0.05
	return axisRange{r.min - margin, r.max + margin}
}

func (c *Chart) points() int {
	n := 0
	for _, s := range c.Series {
		n = max(n, s.Offset+len(s.Values))
	}
	return n
}

// SVG renders the chart as an inline SVG element.
func (c *Chart) SVG() template.HTML {
	left, right, leftUsed, rightUsed := c.ranges()
	n := c.points()

	plotLeft, plotRight := float64(marginLeft), float64(chartWidth-marginRight)
	plotTop, plotBottom := float64(marginTop), float64(chartHeight-marginBottom)

	x := func(i int) float64 {
		if n <= 1 {
			return (plotLeft + plotRight) / 2
		}
		return plotLeft + float64(i)*(plotRight-plotLeft)/float64(n-1)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, `<svg class="chart" xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" role="img">`,
		chartWidth, chartHeight)
	fmt.Fprintf(&sb, `<text x="%d" y="20" text-anchor="middle" class="chart-title">%s</text>`,
		chartWidth/2, html.EscapeString(c.Title))

	// axes
	fmt.Fprintf(&sb, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#9ca3af"/>`,
		plotLeft, plotBottom, plotRight, plotBottom)
	if leftUsed {
		fmt.Fprintf(&sb, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#9ca3af"/>`,
			plotLeft, plotTop, plotLeft, plotBottom)
		writeTicks(&sb, left, plotLeft-6, "end", plotTop, plotBottom, price)
		fmt.Fprintf(&sb, `<text x="14" y="%.1f" transform="rotate(-90 14 %.1f)" text-anchor="middle">%s</text>`,
			(plotTop+plotBottom)/2, (plotTop+plotBottom)/2, html.EscapeString(c.LeftLabel))
	}
	if rightUsed {
		fmt.Fprintf(&sb, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#9ca3af"/>`,
			plotRight, plotTop, plotRight, plotBottom)
		writeTicks(&sb, right, plotRight+6, "start", plotTop, plotBottom, compact)
		fmt.Fprintf(&sb, `<text x="%d" y="%.1f" transform="rotate(90 %d %.1f)" text-anchor="middle">%s</text>`,
			chartWidth-14, (plotTop+plotBottom)/2, chartWidth-14, (plotTop+plotBottom)/2,
			html.EscapeString(c.RightLabel))
	}
	fmt.Fprintf(&sb, `<text x="%.1f" y="%d" text-anchor="middle">%s</text>`,
		(plotLeft+plotRight)/2, chartHeight-8, html.EscapeString(c.XLabel))

	for i, s := range c.Series {
		if len(s.Values) == 0 {
			continue
		}
		axis := left
		if s.RightAxis {
			axis = right
		}

		pts := make([]string, len(s.Values))
		for j, v := range s.Values {
			pts[j] = fmt.Sprintf("%.1f,%.1f", x(s.Offset+j), axis.scale(v, plotTop, plotBottom))
		}

		dash := ""
		if s.Dashed {
			dash = ` stroke-dasharray="6 4"`
		}
		fmt.Fprintf(&sb, `<polyline data-series="%s" fill="none" stroke="%s" stroke-width="2"%s points="%s"/>`,
			html.EscapeString(s.Name), s.Color, dash, strings.Join(pts, " "))

		// legend
		ly := plotTop + 4 + float64(i)*16
		fmt.Fprintf(&sb, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="2"%s/>`,
			plotLeft+10, ly, plotLeft+28, ly, s.Color, dash)
		fmt.Fprintf(&sb, `<text x="%.1f" y="%.1f" class="legend">%s</text>`,
			plotLeft+32, ly+4, html.EscapeString(s.Name))
	}

	sb.WriteString(`</svg>`)

	return template.HTML(sb.String()) //nolint:gosec // every interpolated string is escaped
}

func writeTicks(
	sb *strings.Builder,
	r axisRange,
	x float64,
	anchor string,
	top, bottom float64,
	format func(float64) string,
) {
	for i := 0; i < axisTicks; i++ {
		v := r.min + float64(i)*(r.max-r.min)/float64(axisTicks-1)
		fmt.Fprintf(sb, `<text x="%.1f" y="%.1f" text-anchor="%s" class="tick">%s</text>`,
			x, r.scale(v, top, bottom)+4, anchor, html.EscapeString(format(v)))
	}
}

// compact formats large numbers with an SI suffix, e.g. 36.8M.
func compact(v float64) string {
	return strings.ReplaceAll(humanize.SIWithDigits(v, 1, ""), " ", "")
}
