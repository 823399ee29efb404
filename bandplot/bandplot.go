/*
 * bandplot.go, part of goavo.
 *
 *
 * Copyright 2024 Raul Mera <rmeraatusachdotcl>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 *
 */
/***Dedicated to the long life of the Ven. Khenpo Phuntzok Tenzin Rinpoche***/

//Package bandplot draws several lines sharing an x axis, as needed for band
//structures, using gonum/plot.
package bandplot

import (
	"fmt"
	"image/color"
	"io"
	"path/filepath"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

//RGBA is a colour with components between 0 and 1.
type RGBA [4]float64

func (c RGBA) color() color.Color {
	conv := func(f float64) uint8 {
		switch {
		case f <= 0:
			return 0
		case f >= 1:
			return 255
		}
		return uint8(f*255 + 0.5)
	}
	return color.NRGBA{R: conv(c[0]), G: conv(c[1]), B: conv(c[2]), A: conv(c[3])}
}

type hline struct {
	y     float64
	label string
	color RGBA
}

//Plot collects the data and decorations for a multi-line plot.
//data[0] holds the x values and data[i], for i>0, the y values of line i-1.
type Plot struct {
	data   [][]float64
	title  string
	xTitle string
	yTitle string
	labels []string
	colors []RGBA
	limitY bool
	yMin   float64
	yMax   float64
	hlines []hline
	ticks  []plot.Tick
}

//New returns an empty plot.
func New() *Plot {
	return new(Plot)
}

//SetData sets the data to be plotted. It returns an error if there are
//no lines or if the slices have different lengths.
func (P *Plot) SetData(data [][]float64) error {
	if len(data) < 2 {
		return fmt.Errorf("bandplot: need x values and at least one line, got %d slices", len(data))
	}
	n := len(data[0])
	if n == 0 {
		return fmt.Errorf("bandplot: no points to plot")
	}
	for i, d := range data[1:] {
		if len(d) != n {
			return fmt.Errorf("bandplot: line %d has %d points, expected %d", i, len(d), n)
		}
	}
	P.data = data
	return nil
}

//SetTitle sets the title shown on top of the plot.
func (P *Plot) SetTitle(t string) { P.title = t }

func (P *Plot) SetXTitle(t string) { P.xTitle = t }

func (P *Plot) SetYTitle(t string) { P.yTitle = t }

//SetLineLabels sets the legend entry of each line. If there isn't one label per
//line, no legend is drawn.
func (P *Plot) SetLineLabels(labels []string) { P.labels = labels }

//SetLineColors sets the colour of each line. If there isn't one colour per line,
//the default palette is used.
func (P *Plot) SetLineColors(colors []RGBA) { P.colors = colors }

//SetYRange fixes the y axis limits. An empty range (lo == hi) removes
//any limit, so the axis fits the data.
func (P *Plot) SetYRange(lo, hi float64) {
	if lo > hi {
		lo, hi = hi, lo
	}
	P.limitY, P.yMin, P.yMax = lo != hi, lo, hi
}

//AddHLine adds a horizontal line across the whole x range, for instance to
//mark the Fermi level.
func (P *Plot) AddHLine(y float64, label string, c RGBA) {
	P.hlines = append(P.hlines, hline{y: y, label: label, color: c})
}

//SetXTicks replaces the x axis ticks with labels at the given positions.
func (P *Plot) SetXTicks(positions []float64, labels []string) error {
	if len(positions) != len(labels) {
		return fmt.Errorf("bandplot: %d tick positions but %d labels", len(positions), len(labels))
	}
	P.ticks = make([]plot.Tick, len(positions))
	for i := range positions {
		P.ticks[i] = plot.Tick{Value: positions[i], Label: labels[i]}
	}
	return nil
}

//Build returns the gonum plot for the current data.
func (P *Plot) Build() (*plot.Plot, error) {
	if P.data == nil {
		return nil, fmt.Errorf("bandplot: no data set")
	}
	p := plot.New()
	p.Title.Text = P.title
	p.X.Label.Text = P.xTitle
	p.Y.Label.Text = P.yTitle
	p.Add(plotter.NewGrid())
	nlines := len(P.data) - 1
	legend := len(P.labels) == nlines
	x := P.data[0]
	for i, y := range P.data[1:] {
		pts := make(plotter.XYs, len(x))
		for j := range x {
			pts[j].X = x[j]
			pts[j].Y = y[j]
		}
		l, err := plotter.NewLine(pts)
		if err != nil {
			return nil, fmt.Errorf("bandplot: line %d: %w", i, err)
		}
		if len(P.colors) == nlines {
			l.LineStyle.Color = P.colors[i].color()
		} else {
			l.LineStyle.Color = plotutil.Color(i)
		}
		l.LineStyle.Width = vg.Points(1)
		p.Add(l)
		if legend && P.labels[i] != "" {
			p.Legend.Add(P.labels[i], l)
		}
	}
	xmin, xmax := floats.Min(x), floats.Max(x)
	for _, h := range P.hlines {
		l, err := plotter.NewLine(plotter.XYs{{X: xmin, Y: h.y}, {X: xmax, Y: h.y}})
		if err != nil {
			return nil, fmt.Errorf("bandplot: horizontal line: %w", err)
		}
		l.LineStyle.Color = h.color.color()
		l.LineStyle.Width = vg.Points(1)
		l.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
		p.Add(l)
		if h.label != "" {
			p.Legend.Add(h.label, l)
		}
	}
	if P.limitY {
		p.Y.Min, p.Y.Max = P.yMin, P.yMax
	}
	p.X.Min, p.X.Max = xmin, xmax
	if P.ticks != nil {
		p.X.Tick.Marker = plot.ConstantTicks(P.ticks)
	}
	return p, nil
}

//Save writes the plot to path, width and height given in inches. The format
//is taken from the file extension (png, svg, pdf, eps, jpg, tif).
func (P *Plot) Save(path string, width, height float64) error {
	p, err := P.Build()
	if err != nil {
		return err
	}
	return p.Save(vg.Length(width)*vg.Inch, vg.Length(height)*vg.Inch, path)
}

//WriteTo writes the plot in the given format to w.
func (P *Plot) WriteTo(w io.Writer, format string, width, height float64) error {
	p, err := P.Build()
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(vg.Length(width)*vg.Inch, vg.Length(height)*vg.Inch, strings.ToLower(format))
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}

//Generate plots data in a single call and saves it to path, with the default size.
func Generate(data [][]float64, labels []string, colors []RGBA, xTitle, yTitle, title, path string) error {
	P := New()
	if err := P.SetData(data); err != nil {
		return err
	}
	P.SetLineLabels(labels)
	P.SetLineColors(colors)
	P.SetXTitle(xTitle)
	P.SetYTitle(yTitle)
	P.SetTitle(title)
	if filepath.Ext(path) == "" {
		path += ".png"
	}
	return P.Save(path, DefaultWidth, DefaultHeight)
}

//Default size, in inches.
const (
	DefaultWidth  = 6
	DefaultHeight = 5
)
