package chart

import (
	"strconv"
	"strings"

	"docreport/internal/model"
)

// Title is drawn above every trend chart.
const Title = "Pendências nas últimas competências"

// Palette of the trend chart.
const (
	ColorPrimary    = "#001847"
	ColorLineStrong = "#1E3A8A"
	ColorLineSoft   = "#93C5FD"
)

const gridIntervals = 4

// Padding is the space between the canvas edge and the plot area.
type Padding struct {
	Top, Right, Bottom, Left float64
}

// Point is one plotted series entry.
type Point struct {
	X     float64
	Y     float64
	Value int
	Label string
}

// VectorChart is a resolution independent description of the pendency trend line.
type VectorChart struct {
	Width     float64
	Height    float64
	Padding   Padding
	Title     string
	Points    []Point
	LinePath  string
	FillPath  string
	GridLines []float64
}

// PlotWidth is the usable horizontal extent.
func (c *VectorChart) PlotWidth() float64 {
	return c.Width - c.Padding.Left - c.Padding.Right
}

// PlotHeight is the usable vertical extent.
func (c *VectorChart) PlotHeight() float64 {
	return c.Height - c.Padding.Top - c.Padding.Bottom
}

// Baseline is the y coordinate of the x axis.
func (c *VectorChart) Baseline() float64 {
	return c.Padding.Top + c.PlotHeight()
}

// RenderTrend plots the pendency count of each series entry in the order given.
// Callers sort chronologically beforehand. It returns nil for an empty series.
func RenderTrend(series []model.MonthlyHistoryPoint) *VectorChart {
	if len(series) == 0 {
		return nil
	}

	c := &VectorChart{
		Width:   520,
		Height:  220,
		Padding: Padding{Top: 40, Right: 20, Bottom: 40, Left: 40},
		Title:   Title,
	}
	plotW, plotH := c.PlotWidth(), c.PlotHeight()

	maxValue, minValue := 1, 0
	for _, p := range series {
		maxValue = max(maxValue, p.TotalPendencies)
		minValue = min(minValue, p.TotalPendencies)
	}
	valueRange := float64(maxValue - minValue)
	if valueRange == 0 {
		valueRange = 1
	}

	steps := float64(len(series) - 1)
	if steps == 0 {
		steps = 1
	}

	c.Points = make([]Point, 0, len(series))
	for i, p := range series {
		c.Points = append(c.Points, Point{
			X:     c.Padding.Left + (plotW/steps)*float64(i),
			Y:     c.Padding.Top + plotH - (float64(p.TotalPendencies-minValue)/valueRange)*plotH,
			Value: p.TotalPendencies,
			Label: p.Period,
		})
	}

	c.LinePath = smoothPath(c.Points)
	first, last := c.Points[0], c.Points[len(c.Points)-1]
	c.FillPath = c.LinePath +
		" L " + num(last.X) + " " + num(c.Baseline()) +
		" L " + num(first.X) + " " + num(c.Baseline()) + " Z"

	for i := 0; i <= gridIntervals; i++ {
		c.GridLines = append(c.GridLines, c.Padding.Top+(plotH/gridIntervals)*float64(i))
	}
	return c
}

// smoothPath joins consecutive points with two quadratic segments that meet halfway
// between them horizontally.
func smoothPath(points []Point) string {
	var b strings.Builder
	b.WriteString("M " + num(points[0].X) + " " + num(points[0].Y))
	for i := 1; i < len(points); i++ {
		prev, curr := points[i-1], points[i]
		cpx := prev.X + (curr.X-prev.X)/2
		b.WriteString(" Q " + num(cpx) + " " + num(prev.Y) + ", " + num(cpx) + " " + num((prev.Y+curr.Y)/2))
		b.WriteString(" Q " + num(cpx) + " " + num(curr.Y) + ", " + num(curr.X) + " " + num(curr.Y))
	}
	return b.String()
}

func num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
