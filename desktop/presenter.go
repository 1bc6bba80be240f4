package desktop

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/lucasb-eyer/go-colorful"
)

var (
	colorBackground = color.RGBA{0x10, 0x10, 0x18, 0xff}
	colorGrid       = color.RGBA{0x22, 0x22, 0x33, 0xff}
	colorBorder     = color.RGBA{0xff, 0x00, 0x55, 0xff}
)

const gridSpacing = 100.0

// Presenter 在 ebiten 图像上实现 sim.Screen；每帧由 Begin 指定绘制目标
type Presenter struct {
	dst        *ebiten.Image
	camX, camY float64
	camera     bool
	colors     map[string]color.RGBA
}

func NewPresenter() *Presenter {
	return &Presenter{colors: make(map[string]color.RGBA)}
}

func (p *Presenter) Begin(dst *ebiten.Image) { p.dst = dst }

// toScreen 世界坐标 → 屏幕像素
func (p *Presenter) toScreen(x, y float64) (float32, float32) {
	if !p.camera {
		return float32(x), float32(y)
	}
	b := p.dst.Bounds()
	return float32(x - p.camX + float64(b.Dx())/2), float32(y - p.camY + float64(b.Dy())/2)
}

func (p *Presenter) Clear() { p.dst.Fill(colorBackground) }

func (p *Presenter) Camera(x, y float64) {
	p.camX, p.camY = x, y
	p.camera = true
}

func (p *Presenter) ResetCamera() { p.camera = false }

// DrawGrid 只画视野内的网格线，再描出世界边界
func (p *Presenter) DrawGrid(width, height float64) {
	b := p.dst.Bounds()
	left, top := p.camX-float64(b.Dx())/2, p.camY-float64(b.Dy())/2
	if !p.camera {
		left, top = 0, 0
	}
	right, bottom := left+float64(b.Dx()), top+float64(b.Dy())

	for x := math.Max(0, math.Ceil(left/gridSpacing)*gridSpacing); x <= math.Min(width, right); x += gridSpacing {
		x0, y0 := p.toScreen(x, math.Max(0, top))
		x1, y1 := p.toScreen(x, math.Min(height, bottom))
		vector.StrokeLine(p.dst, x0, y0, x1, y1, 1, colorGrid, false)
	}
	for y := math.Max(0, math.Ceil(top/gridSpacing)*gridSpacing); y <= math.Min(height, bottom); y += gridSpacing {
		x0, y0 := p.toScreen(math.Max(0, left), y)
		x1, y1 := p.toScreen(math.Min(width, right), y)
		vector.StrokeLine(p.dst, x0, y0, x1, y1, 1, colorGrid, false)
	}

	x0, y0 := p.toScreen(0, 0)
	x1, y1 := p.toScreen(width, height)
	vector.StrokeRect(p.dst, x0, y0, x1-x0, y1-y0, 4, colorBorder, true)
}

func (p *Presenter) DrawCircle(x, y, r float64, name string, glow bool) {
	sx, sy := p.toScreen(x, y)
	c := p.color(name)
	if glow {
		halo := c
		halo.A = 0x50
		vector.DrawFilledCircle(p.dst, sx, sy, float32(r*1.6), halo, true)
	}
	vector.DrawFilledCircle(p.dst, sx, sy, float32(r), c, true)
}

// DrawLabel 调试字体每字符 6px 宽
func (p *Presenter) DrawLabel(x, y float64, text string) {
	sx, sy := p.toScreen(x, y)
	ebitenutil.DebugPrintAt(p.dst, text, int(sx)-len(text)*3, int(sy)-8)
}

func (p *Presenter) color(name string) color.RGBA {
	if c, ok := p.colors[name]; ok {
		return c
	}
	var out color.RGBA
	switch name {
	case "white":
		out = color.RGBA{0xff, 0xff, 0xff, 0xff}
	case "black":
		out = color.RGBA{0, 0, 0, 0xff}
	default:
		c, err := colorful.Hex(name)
		if err != nil {
			c = colorful.Color{R: 0.5, G: 0.5, B: 0.5}
		}
		r, g, b := c.RGB255()
		out = color.RGBA{r, g, b, 0xff}
	}
	p.colors[name] = out
	return out
}
