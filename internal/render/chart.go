package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
)

// Chart colors follow the original history panel: best in green, average
// in orange.
var (
	chartBackground = color.NRGBA{255, 255, 255, 255}
	chartAxis       = color.NRGBA{60, 60, 60, 255}
	chartBest       = color.NRGBA{0, 150, 0, 255}
	chartAvg        = color.NRGBA{230, 140, 0, 255}
)

const chartMargin = 10

// HistoryChart draws the best and average fitness histories as polylines
// onto a fresh canvas.
func HistoryChart(best, avg []float64, width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, chartBackground)
		}
	}

	lo, hi := seriesRange(best, avg)
	if hi == lo {
		hi = lo + 1 // flat series still renders
	}

	plotW := width - 2*chartMargin
	plotH := height - 2*chartMargin

	// Axes along the plot edges.
	for x := chartMargin; x <= chartMargin+plotW; x++ {
		img.Set(x, chartMargin+plotH, chartAxis)
	}
	for y := chartMargin; y <= chartMargin+plotH; y++ {
		img.Set(chartMargin, y, chartAxis)
	}

	drawSeries(img, avg, lo, hi, plotW, plotH, chartAvg)
	drawSeries(img, best, lo, hi, plotW, plotH, chartBest)

	return img
}

// WriteHistoryPNG encodes the history chart to a PNG file.
func WriteHistoryPNG(path string, best, avg []float64, width, height int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create chart file: %w", err)
	}
	defer f.Close()

	if err := png.Encode(f, HistoryChart(best, avg, width, height)); err != nil {
		return fmt.Errorf("failed to encode chart: %w", err)
	}
	return nil
}

func seriesRange(series ...[]float64) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, s := range series {
		for _, v := range s {
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	if math.IsInf(lo, 1) {
		return 0, 0
	}
	return lo, hi
}

// drawSeries connects consecutive generation values with line segments.
func drawSeries(img *image.NRGBA, series []float64, lo, hi float64, plotW, plotH int, c color.NRGBA) {
	if len(series) < 2 {
		return
	}

	toX := func(i int) int {
		return chartMargin + i*plotW/(len(series)-1)
	}
	toY := func(v float64) int {
		return chartMargin + plotH - int(float64(plotH)*(v-lo)/(hi-lo))
	}

	for i := 1; i < len(series); i++ {
		drawLine(img, toX(i-1), toY(series[i-1]), toX(i), toY(series[i]), c)
	}
}

// drawLine rasterizes a segment by stepping its longer axis.
func drawLine(img *image.NRGBA, x0, y0, x1, y1 int, c color.NRGBA) {
	dx := x1 - x0
	dy := y1 - y0
	steps := max(abs(dx), abs(dy))
	if steps == 0 {
		img.Set(x0, y0, c)
		return
	}
	for s := 0; s <= steps; s++ {
		x := x0 + dx*s/steps
		y := y0 + dy*s/steps
		img.Set(x, y, c)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
