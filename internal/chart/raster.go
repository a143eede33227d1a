package chart

import (
	"context"
	"encoding/base64"

	"go.uber.org/zap"

	"docreport/internal/model"
)

// Image is a rasterised (or pass-through) chart ready to embed.
type Image struct {
	ContentType string
	Data        []byte
}

// Base64 returns the image bytes base64 encoded.
func (i *Image) Base64() string {
	return base64.StdEncoding.EncodeToString(i.Data)
}

// DataURI returns the image as an inline data URI.
func (i *Image) DataURI() string {
	return "data:" + i.ContentType + ";base64," + i.Base64()
}

// Rasterizer turns a vector chart into an embeddable image.
type Rasterizer interface {
	Rasterize(ctx context.Context, c *VectorChart) (*Image, error)
}

// RasterError is returned when a chart cannot be converted.
type RasterError struct {
	Message string
	Cause   error
}

func (e *RasterError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *RasterError) Unwrap() error {
	return e.Cause
}

// SVGRasterizer embeds the SVG markup itself. Useful where no browser is available.
type SVGRasterizer struct{}

func (SVGRasterizer) Rasterize(_ context.Context, c *VectorChart) (*Image, error) {
	if c == nil {
		return nil, &RasterError{Message: "chart is nil"}
	}
	return &Image{ContentType: "image/svg+xml", Data: []byte(c.SVG())}, nil
}

// Render plots series and rasterises it. Any failure yields nil so the report falls
// back to its placeholder; the failure is logged at warn level.
func Render(ctx context.Context, r Rasterizer, series []model.MonthlyHistoryPoint, log *zap.Logger) *Image {
	c := RenderTrend(series)
	if c == nil || r == nil {
		return nil
	}
	img, err := r.Rasterize(ctx, c)
	if err != nil {
		if log != nil {
			log.Warn("chart rasterization failed", zap.Error(err))
		}
		return nil
	}
	return img
}
