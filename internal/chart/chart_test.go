package chart

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"docreport/internal/model"
)

func series(pendencies ...int) []model.MonthlyHistoryPoint {
	periods := []string{"2024-11", "2024-12", "2025-01", "2025-02", "2025-03"}
	out := make([]model.MonthlyHistoryPoint, 0, len(pendencies))
	for i, p := range pendencies {
		out = append(out, model.MonthlyHistoryPoint{Period: periods[i], TotalPendencies: p})
	}
	return out
}

func TestRenderTrend_Empty(t *testing.T) {
	assert.Nil(t, RenderTrend(nil))
	assert.Nil(t, RenderTrend([]model.MonthlyHistoryPoint{}))
}

func TestRenderTrend_Geometry(t *testing.T) {
	c := RenderTrend(series(0, 2, 4, 1, 3))
	require.NotNil(t, c)

	assert.Equal(t, 520.0, c.Width)
	assert.Equal(t, 220.0, c.Height)
	assert.Equal(t, Title, c.Title)
	assert.Equal(t, []float64{40, 75, 110, 145, 180}, c.GridLines)

	require.Len(t, c.Points, 5)
	xs := make([]float64, 0, 5)
	ys := make([]float64, 0, 5)
	for _, p := range c.Points {
		xs = append(xs, p.X)
		ys = append(ys, p.Y)
	}
	assert.Equal(t, []float64{40, 155, 270, 385, 500}, xs)
	assert.Equal(t, []float64{180, 110, 40, 145, 75}, ys)
	assert.Equal(t, "2025-01", c.Points[2].Label)
	assert.Equal(t, 4, c.Points[2].Value)
}

func TestRenderTrend_FlatZeroSeries(t *testing.T) {
	c := RenderTrend(series(0, 0, 0, 0, 0))
	require.NotNil(t, c)
	for _, p := range c.Points {
		assert.Equal(t, 180.0, p.Y)
	}
}

func TestRenderTrend_Paths(t *testing.T) {
	c := RenderTrend(series(0, 1))
	require.NotNil(t, c)

	assert.Equal(t, "M 40 180 Q 270 180, 270 110 Q 270 40, 500 40", c.LinePath)
	assert.Equal(t, c.LinePath+" L 500 180 L 40 180 Z", c.FillPath)
}

func TestRenderTrend_SinglePoint(t *testing.T) {
	c := RenderTrend(series(7))
	require.NotNil(t, c)
	require.Len(t, c.Points, 1)
	assert.Equal(t, 40.0, c.Points[0].X)
	assert.Equal(t, 40.0, c.Points[0].Y)
	assert.Equal(t, "M 40 40", c.LinePath)
}

func TestRenderTrend_KeepsInputOrder(t *testing.T) {
	in := []model.MonthlyHistoryPoint{
		{Period: "2025-03", TotalPendencies: 1},
		{Period: "2025-01", TotalPendencies: 2},
	}
	c := RenderTrend(in)
	require.NotNil(t, c)
	assert.Equal(t, "2025-03", c.Points[0].Label)
	assert.Equal(t, "2025-01", c.Points[1].Label)
}

func TestSVG(t *testing.T) {
	svg := RenderTrend(series(0, 2, 4, 1, 3)).SVG()

	assert.True(t, strings.HasPrefix(svg, `<svg width="520" height="220"`))
	assert.True(t, strings.HasSuffix(svg, "</svg>"))
	assert.Contains(t, svg, "Pendências nas últimas competências")
	assert.Equal(t, 5, strings.Count(svg, "<circle"))
	assert.Equal(t, 6, strings.Count(svg, "<line"))
	assert.Contains(t, svg, `<text x="270" y="28" text-anchor="middle" font-size="11" font-weight="600" fill="#001847">4</text>`)
	assert.Contains(t, svg, `<text x="500" y="205" text-anchor="middle" font-size="11" fill="#374151">2025-03</text>`)
	assert.Contains(t, svg, `fill="#93C5FD" opacity="0.2"`)
}

func TestImage(t *testing.T) {
	img := &Image{ContentType: "image/png", Data: []byte{1, 2, 3}}
	assert.Equal(t, "AQID", img.Base64())
	assert.Equal(t, "data:image/png;base64,AQID", img.DataURI())
}

func TestSVGRasterizer(t *testing.T) {
	c := RenderTrend(series(1, 2))
	img, err := SVGRasterizer{}.Rasterize(context.Background(), c)
	require.NoError(t, err)
	assert.Equal(t, "image/svg+xml", img.ContentType)
	assert.Equal(t, c.SVG(), string(img.Data))

	_, err = SVGRasterizer{}.Rasterize(context.Background(), nil)
	var rerr *RasterError
	assert.ErrorAs(t, err, &rerr)
}

type failingRasterizer struct{ err error }

func (f failingRasterizer) Rasterize(context.Context, *VectorChart) (*Image, error) {
	return nil, &RasterError{Message: "boom", Cause: f.err}
}

func TestRender(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	log := zap.New(core)

	img := Render(context.Background(), SVGRasterizer{}, series(1, 2, 3), log)
	require.NotNil(t, img)
	assert.Equal(t, "image/svg+xml", img.ContentType)

	assert.Nil(t, Render(context.Background(), SVGRasterizer{}, nil, log))
	assert.Nil(t, Render(context.Background(), nil, series(1), log))
	assert.Equal(t, 0, logs.Len())

	cause := errors.New("chrome not found")
	assert.Nil(t, Render(context.Background(), failingRasterizer{err: cause}, series(1), log))
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "chart rasterization failed", logs.All()[0].Message)
}

func TestRasterError(t *testing.T) {
	cause := errors.New("timeout")
	err := error(&RasterError{Message: "chromedp execution failed", Cause: cause})
	assert.Equal(t, "chromedp execution failed: timeout", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "chart is nil", (&RasterError{Message: "chart is nil"}).Error())
}

func TestNewChromedpRasterizer_Defaults(t *testing.T) {
	r := NewChromedpRasterizer(ChromedpConfig{})
	defer r.Close()

	assert.Equal(t, 20*time.Second, r.config.Timeout)
	assert.Equal(t, 2.0, r.config.Scale)
	assert.NotNil(t, r.logger)
	assert.NotNil(t, r.allocCtx)

	_, err := r.Rasterize(context.Background(), nil)
	assert.Error(t, err)
}

func TestPageHTML(t *testing.T) {
	c := RenderTrend(series(1))
	html := pageHTML(c)
	assert.True(t, strings.HasPrefix(html, "<!DOCTYPE html>"))
	assert.Contains(t, html, c.SVG())
}
