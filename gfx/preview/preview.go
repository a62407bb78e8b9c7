// Package preview shows CPU-rendered frames in an ebiten window.
package preview

import (
	"fmt"
	"image"

	"github.com/golang/glog"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/peragwin/camfx/compositor"
)

// Renderer produces one composed frame per Tick and can be switched between effects.
type Renderer interface {
	Tick() (compositor.Outcome, error)
	State() *compositor.FilterState
}

// Game is an ebiten.Game that ticks a Renderer and blits its surface output.
type Game struct {
	r      Renderer
	surf   compositor.Surface
	width  int
	height int

	screen *ebiten.Image
}

// New returns a Game drawing surf, which r must draw into.
func New(r Renderer, surf compositor.Surface, width, height int) *Game {
	return &Game{r: r, surf: surf, width: width, height: height}
}

// Update implements ebiten.Game. The arrow keys cycle through the effect catalog and
// Escape quits.
func (g *Game) Update() error {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		return ebiten.Termination
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowRight):
		glog.Infof("preview: effect %s", g.r.State().Next())
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft):
		glog.Infof("preview: effect %s", g.r.State().Prev())
	}

	outcome, err := g.r.Tick()
	if err != nil {
		glog.Errorf("preview: tick: %v", err)
		return nil
	}
	glog.V(2).Infof("preview: %v", outcome)
	return nil
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	out, err := g.surf.Output()
	if err != nil {
		return
	}
	size := out.Rect.Size()
	if g.screen == nil || g.screen.Bounds().Size() != size {
		if g.screen != nil {
			g.screen.Deallocate()
		}
		g.screen = ebiten.NewImage(size.X, size.Y)
	}
	g.screen.WritePixels(pixels(out))

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(g.width)/float64(size.X), float64(g.height)/float64(size.Y))
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(g.screen, op)
}

// Layout implements ebiten.Game.
func (g *Game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}

// Run opens the window and blocks until it is closed.
func Run(g *Game, title string, fps int) error {
	ebiten.SetWindowSize(g.width, g.height)
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(fps)
	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("preview: %w", err)
	}
	return nil
}

// pixels returns img's pixels as one tight buffer.
func pixels(img *image.RGBA) []byte {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	if img.Stride == 4*w && img.Rect.Min == (image.Point{}) {
		return img.Pix[:4*w*h]
	}
	buf := make([]byte, 0, 4*w*h)
	for y := img.Rect.Min.Y; y < img.Rect.Max.Y; y++ {
		i := img.PixOffset(img.Rect.Min.X, y)
		buf = append(buf, img.Pix[i:i+4*w]...)
	}
	return buf
}
