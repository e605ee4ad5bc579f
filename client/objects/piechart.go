package objects

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/vladcenuse/roster/client/fonts"
	"github.com/vladcenuse/roster/pkg/stats"
)

var (
	whiteImage    = ebiten.NewImage(3, 3)
	whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
)

func init() {
	whiteImage.Fill(color.White)
}

// PieChartObject draws a four-slice stat breakdown with a legend. With no
// breakdown set, nothing is drawn.
type PieChartObject struct {
	*BaseObject

	x, y, radius float32
	breakdown    *stats.Breakdown
}

func NewPieChartObject(id string, x, y, radius float32) *PieChartObject {
	return &PieChartObject{
		BaseObject: NewBaseObject(id),
		x:          x,
		y:          y,
		radius:     radius,
	}
}

// SetBreakdown replaces the chart data. A nil breakdown hides the chart.
func (o *PieChartObject) SetBreakdown(breakdown *stats.Breakdown) {
	o.breakdown = breakdown
}

func (o *PieChartObject) Draw(screen *ebiten.Image) {
	if o.breakdown == nil {
		return
	}

	slices := []struct {
		label string
		value float64
		clr   color.NRGBA
	}{
		{"HP", o.breakdown.HP, color.NRGBA{R: 80, G: 170, B: 80, A: 255}},
		{"Damage", o.breakdown.Damage, color.NRGBA{R: 170, G: 80, B: 80, A: 255}},
		{"Speed", o.breakdown.Speed, color.NRGBA{R: 80, G: 120, B: 190, A: 255}},
		{"Armor", o.breakdown.Armor, color.NRGBA{R: 170, G: 170, B: 180, A: 255}},
	}

	start := float32(-math.Pi / 2)
	for _, s := range slices {
		sweep := float32(s.value / 100 * 2 * math.Pi)
		o.drawSlice(screen, start, start+sweep, s.clr)
		start += sweep
	}

	legendX := int(o.x + o.radius + 20)
	legendY := int(o.y - o.radius + 10)
	for i, s := range slices {
		label := fmt.Sprintf("%s %.2f%%", s.label, s.value)
		text.Draw(screen, label, fonts.TTFSmallFont, legendX, legendY+i*22, s.clr)
	}
}

func (o *PieChartObject) drawSlice(screen *ebiten.Image, start, end float32, clr color.NRGBA) {
	path := vector.Path{}
	path.MoveTo(o.x, o.y)
	path.Arc(o.x, o.y, o.radius, start, end, vector.Clockwise)
	path.Close()

	vs, is := path.AppendVerticesAndIndicesForFilling(nil, nil)
	for i := range vs {
		vs[i].SrcX = 1
		vs[i].SrcY = 1
		vs[i].ColorR = float32(clr.R) / 255
		vs[i].ColorG = float32(clr.G) / 255
		vs[i].ColorB = float32(clr.B) / 255
		vs[i].ColorA = float32(clr.A) / 255
	}

	op := &ebiten.DrawTrianglesOptions{
		AntiAlias: true,
	}
	screen.DrawTriangles(vs, is, whiteSubImage, op)
}
