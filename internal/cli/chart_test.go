package cli

import (
	"bytes"
	"image/png"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/require"

	"github.com/edgedesk/edgedesk/internal/models"
)

func TestRenderChartPNG(t *testing.T) {
	points := []models.ChartPoint{
		{Time: "09:30", Price: 100},
		{Time: "09:35", Price: 102},
		{Time: "09:40", Price: 99},
		{Time: "09:45", Price: 104},
	}

	data, err := RenderChartPNG(points, 200, 100)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, 200, img.Bounds().Dx())
	require.Equal(t, 100, img.Bounds().Dy())
}

func TestRenderChartPNGRejectsTooFewPoints(t *testing.T) {
	_, err := RenderChartPNG([]models.ChartPoint{{Price: 1}}, 200, 100)
	require.Error(t, err)
}

func TestRenderChartPNGFlatSeries(t *testing.T) {
	points := []models.ChartPoint{
		{Price: 50}, {Price: 50}, {Price: 50},
	}
	_, err := RenderChartPNG(points, 120, 60)
	require.NoError(t, err)
}

func TestTruncateString(t *testing.T) {
	require.Equal(t, "short", truncateString("short", 10))
	require.Equal(t, "longer ...", truncateString("longer string here", 10))

	// Multibyte titles must cut on rune boundaries, never mid-character.
	require.Equal(t, "日本銀行は金利...", truncateString("日本銀行は金利を引き上げる", 10))
	got := truncateString("Üble Überraschung für Händler überall", 20)
	require.True(t, utf8.ValidString(got))
	require.Equal(t, 20, utf8.RuneCountInString(got))
}
