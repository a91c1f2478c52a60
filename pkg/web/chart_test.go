package web

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aifirst/llmdemos/pkg/models"
)

func testSeries() models.PriceSeries {
	return models.PriceSeries{
		Columns: []string{"Close", "Open", "High", "Low", "Volume"},
		Rows: []models.PriceRow{
			{Close: 10, Open: 9, High: 11, Low: 8, Volume: 1000},
			{Close: 15, Open: 14, High: 16, Low: 13, Volume: 1500},
			{Close: 20, Open: 19, High: 21, Low: 18, Volume: 2000},
		},
	}
}

func TestPriceChart(t *testing.T) {
	c := PriceChart(testSeries(), nil)

	assert.Len(t, c.Series, 5)
	volume := c.Series[4]
	assert.Equal(t, "Volume", volume.Name)
	assert.True(t, volume.RightAxis)
	assert.True(t, volume.Dashed)
	for _, s := range c.Series[:4] {
		assert.False(t, s.RightAxis, s.Name)
	}

	svg := string(c.SVG())
	assert.True(t, strings.HasPrefix(svg, "<svg"))
	assert.Equal(t, 5, strings.Count(svg, "<polyline"))
	assert.Equal(t, 2, strings.Count(svg, `stroke-dasharray="6 4"`))
	assert.Contains(t, svg, "Stock Price Data")
}

func TestPriceChart_Forecast(t *testing.T) {
	c := PriceChart(testSeries(), []float64{22, 24})

	assert.Len(t, c.Series, 6)
	fc := c.Series[5]
	assert.Equal(t, 2, fc.Offset)
	assert.Equal(t, []float64{20, 22, 24}, fc.Values)
	assert.Equal(t, 5, c.points())
}

func TestChartScalesAxesIndependently(t *testing.T) {
	left, right, leftUsed, rightUsed := PriceChart(testSeries(), nil).ranges()
	assert.True(t, leftUsed)
	assert.True(t, rightUsed)

	assert.Less(t, left.min, 8.0)
	assert.Greater(t, left.max, 21.0)
	assert.Less(t, right.min, 1000.0)
	assert.Greater(t, right.max, 2000.0)

	// the lowest low sits near the bottom of the plot, the highest high near the top
	assert.Greater(t, left.scale(8, 0, 100), left.scale(21, 0, 100))
	assert.InDelta(t, 100, right.scale(right.min, 0, 100), 1e-9)
	assert.InDelta(t, 0, right.scale(right.max, 0, 100), 1e-9)
}

func TestPad(t *testing.T) {
	assert.Equal(t, axisRange{4, 6}, pad(axisRange{5, 5}))
	assert.Equal(t, axisRange{0, 1}, pad(axisRange{math.Inf(1), math.Inf(-1)}))
}

func TestChartEscapesNames(t *testing.T) {
	c := &Chart{Title: "<b>", Series: []ChartSeries{{Name: "a<b", Values: []float64{1}}}}
	svg := string(c.SVG())
	assert.NotContains(t, svg, "<b>")
	assert.Contains(t, svg, "a&lt;b")
}

func TestCompact(t *testing.T) {
	assert.Equal(t, "36.8M", compact(36766620))
	assert.Equal(t, "1.5k", compact(1500))
}
