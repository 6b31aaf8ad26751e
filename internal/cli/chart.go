package cli

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"strings"

	"github.com/edgedesk/edgedesk/internal/format"
	"github.com/edgedesk/edgedesk/internal/models"
)

var sparkRunes = []rune("▁▂▃▄▅▆▇█")

// DisplaySparkline prints a one-line terminal chart of the session's
// price history.
func DisplaySparkline(ticker string, points []models.ChartPoint) {
	if len(points) == 0 {
		return
	}

	lo, hi := points[0].Price, points[0].Price
	for _, p := range points {
		if p.Price < lo {
			lo = p.Price
		}
		if p.Price > hi {
			hi = p.Price
		}
	}

	// Downsample to terminal width.
	const width = 60
	step := 1
	if len(points) > width {
		step = len(points) / width
	}

	var b strings.Builder
	for i := 0; i < len(points); i += step {
		idx := 0
		if hi > lo {
			idx = int((points[i].Price - lo) / (hi - lo) * float64(len(sparkRunes)-1))
		}
		b.WriteRune(sparkRunes[idx])
	}

	change := format.PercentChange(points[0].Price, points[len(points)-1].Price)
	fmt.Printf("📉 %s  %s  %.2f–%.2f (%s)\n",
		ticker, b.String(), lo, hi,
		format.EdgeStyle(change).Render(format.SignedPercent(change)))
}

// RenderChartPNG draws the price history as a PNG line chart for the
// multimodal analysis upload.
func RenderChartPNG(points []models.ChartPoint, width, height int) ([]byte, error) {
	if len(points) < 2 {
		return nil, fmt.Errorf("not enough points for a chart: %d", len(points))
	}

	lo, hi := points[0].Price, points[0].Price
	for _, p := range points {
		if p.Price < lo {
			lo = p.Price
		}
		if p.Price > hi {
			hi = p.Price
		}
	}
	if hi == lo {
		hi = lo + 1
	}

	const margin = 20
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	bg := color.RGBA{R: 17, G: 24, B: 39, A: 255}
	line := color.RGBA{R: 59, G: 130, B: 246, A: 255}

	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, bg)
		}
	}

	plotW := width - 2*margin
	plotH := height - 2*margin
	toXY := func(i int) (int, int) {
		x := margin + i*plotW/(len(points)-1)
		y := margin + plotH - int((points[i].Price-lo)/(hi-lo)*float64(plotH))
		return x, y
	}

	x0, y0 := toXY(0)
	for i := 1; i < len(points); i++ {
		x1, y1 := toXY(i)
		drawLine(img, x0, y0, x1, y1, line)
		x0, y0 = x1, y1
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode chart png: %w", err)
	}
	return buf.Bytes(), nil
}

// drawLine draws a 1px segment using Bresenham's algorithm.
func drawLine(img *image.RGBA, x0, y0, x1, y1 int, c color.Color) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		img.Set(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
