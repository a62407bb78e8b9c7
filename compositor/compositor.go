// Package compositor runs the per-frame effect pipeline: it picks between the direct
// pixel-transform path and the mask composition path, fills in the frame uniforms and
// issues exactly one draw per tick.
package compositor

import (
	"context"
	"errors"
	"fmt"
	"image"
	"math"
	"sync"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/golang/glog"

	"github.com/peragwin/camfx/audio/sensors/levelsensor"
	"github.com/peragwin/camfx/camera"
	"github.com/peragwin/camfx/effects"
	"github.com/peragwin/camfx/mask"
	"github.com/peragwin/camfx/segment"
)

// Outcome says which path a tick took.
type Outcome int

const (
	// Skipped means no frame was ready and nothing was drawn.
	Skipped Outcome = iota
	// Direct drew the camera frame through the selected transform.
	Direct
	// Masked drew a mask composition.
	Masked
	// Fallback drew the plain camera frame because a mask effect had no segmentation.
	Fallback
)

func (o Outcome) String() string {
	switch o {
	case Direct:
		return "direct"
	case Masked:
		return "masked"
	case Fallback:
		return "fallback"
	}
	return "skipped"
}

// Config wires a Compositor to its collaborators. Segmenter and Spectrum may be nil; mask
// effects then always fall back and the audio palette never moves.
type Config struct {
	Source    camera.Source
	Surface   Surface
	Segmenter segment.Segmenter
	Spectrum  levelsensor.Spectrum
	Params    Parameters
}

// Compositor owns the render context. Tick must be called from a single goroutine; the
// other methods may be called concurrently with it.
type Compositor struct {
	src   camera.Source
	surf  Surface
	state *FilterState
	pump  *segment.Pump

	monitor *levelsensor.Monitor
	masks   *mask.Compositor
	canvas  *image.RGBA
	u       effects.Uniforms
	facing  camera.Facing
	post    effects.ID

	mu     sync.Mutex
	params Parameters
	dirty  bool
}

// New validates cfg and returns a compositor. Segmentation requests are canceled with ctx.
func New(ctx context.Context, cfg Config) (*Compositor, error) {
	if cfg.Source == nil || cfg.Surface == nil {
		return nil, errors.New("compositor: source and surface are required")
	}
	if err := cfg.Params.Validate(); err != nil {
		return nil, fmt.Errorf("compositor: %w", err)
	}
	c := &Compositor{
		src:     cfg.Source,
		surf:    cfg.Surface,
		state:   NewFilterState(cfg.Params.Effect),
		monitor: levelsensor.NewMonitor(cfg.Spectrum),
		params:  cfg.Params,
	}
	if cfg.Segmenter != nil {
		c.pump = segment.NewPump(ctx, cfg.Segmenter)
	}
	if err := c.apply(cfg.Params); err != nil {
		return nil, err
	}
	return c, nil
}

// State is the shared filter state.
func (c *Compositor) State() *FilterState { return c.state }

// Params returns the current parameters with the selected effect filled in.
func (c *Compositor) Params() Parameters {
	c.mu.Lock()
	p := c.params
	c.mu.Unlock()
	p.Effect = c.state.Effect()
	return p
}

// SetParams validates p and applies it before the next tick. A non-empty p.Effect also
// selects that effect.
func (c *Compositor) SetParams(p Parameters) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if p.Effect != "" && p.Effect != c.state.Effect() {
		if err := c.state.Select(p.Effect); err != nil {
			return err
		}
	}
	c.mu.Lock()
	c.params = p
	c.dirty = true
	c.mu.Unlock()
	return nil
}

func (c *Compositor) apply(p Parameters) error {
	opts, err := p.MaskOptions()
	if err != nil {
		return err
	}
	if c.masks == nil {
		c.masks = mask.New(opts)
	} else {
		c.masks.SetOptions(opts)
	}
	c.facing, _ = camera.ParseFacing(p.Facing)
	c.monitor.Threshold = p.AudioThreshold
	c.post = effects.Lookup(p.MaskPost).ID
	return nil
}

// Wait blocks until any in-flight segmentation has finished.
func (c *Compositor) Wait() {
	if c.pump != nil {
		c.pump.Wait()
	}
}

// Tick renders one frame.
func (c *Compositor) Tick() (Outcome, error) {
	c.mu.Lock()
	if c.dirty {
		c.dirty = false
		if err := c.apply(c.params); err != nil {
			glog.Errorf("compositor: applying parameters: %v", err)
		}
	}
	c.mu.Unlock()

	frame, err := c.src.Frame()
	if errors.Is(err, camera.ErrNotReady) {
		return Skipped, nil
	}
	if err != nil {
		return Skipped, fmt.Errorf("reading frame: %w", err)
	}

	key := c.state.Effect()
	entry := effects.Lookup(key)
	mirror := c.facing.Mirrored()
	w, h := frame.Rect.Dx(), frame.Rect.Dy()
	if c.u.Resolution != (mgl32.Vec2{float32(w), float32(h)}) {
		c.u.SetResolution(w, h)
	}
	t := c.state.Elapsed()
	c.u.Time = float32(t)

	var (
		outcome Outcome
		id      effects.ID
	)
	if entry.Masked {
		outcome, id, err = c.masked(frame, entry.Key, mirror)
	} else {
		outcome, id, err = Direct, entry.ID, c.surf.Upload(frame)
		c.u.FlipX = flipSign(mirror)
		switch id {
		case effects.AudioColorShift:
			c.monitor.Sample()
			c.state.setPalette(c.monitor.Index())
			col := c.monitor.Color()
			c.u.ColorShift = mgl32.Vec3{float32(col.R), float32(col.G), float32(col.B)}
		case effects.ModularColorShift:
			c.u.BassAmp, c.u.MidAmp, c.u.HighAmp = BandAmplitudes(t)
		}
	}
	if err != nil {
		return outcome, err
	}

	glog.V(2).Infof("compositor: %s %s id=%d flip=%v", outcome, key, id, c.u.FlipX)
	if err := c.surf.Draw(id, &c.u); err != nil {
		return outcome, fmt.Errorf("drawing %s: %w", key, err)
	}
	return outcome, nil
}

// masked handles a mask effect: offer the frame for segmentation and, if a complete result
// is available, draw the composition. Mirroring happens while compositing, so the transform
// runs unflipped. Without a result the raw frame is drawn as on the direct path.
func (c *Compositor) masked(frame *image.RGBA, key string, mirror bool) (Outcome, effects.ID, error) {
	var res *segment.Result
	if c.pump != nil {
		c.pump.Offer(frame)
		res = c.pump.Latest()
	}
	if res.Complete() {
		r := image.Rect(0, 0, frame.Rect.Dx(), frame.Rect.Dy())
		if c.canvas == nil || c.canvas.Rect != r {
			c.canvas = image.NewRGBA(r)
		}
		err := c.masks.Compose(c.canvas, res, key, mirror)
		if err == nil {
			c.u.FlipX = 1
			return Masked, c.post, c.surf.Upload(c.canvas)
		}
		glog.Warningf("compositor: %s composition failed, drawing plain frame: %v", key, err)
	}
	c.u.FlipX = flipSign(mirror)
	return Fallback, effects.None, c.surf.Upload(frame)
}

// Run ticks at the given rate until ctx is done. Tick errors are logged and the loop
// carries on with the next frame.
func (c *Compositor) Run(ctx context.Context, fps float64) error {
	if !(fps > 0) {
		return fmt.Errorf("compositor: frame rate must be positive, got %v", fps)
	}
	ticker := time.NewTicker(time.Duration(float64(time.Second) / fps))
	defer ticker.Stop()
	defer c.Wait()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if _, err := c.Tick(); err != nil {
				glog.Errorf("compositor: %v", err)
			}
		}
	}
}

func flipSign(mirror bool) float32 {
	if mirror {
		return -1
	}
	return 1
}

// BandAmplitudes are the three slowly oscillating weights of modular-color-shift at time
// t: bass in [0,2], mid in [0,1.5] and high in [0,2.5].
func BandAmplitudes(t float64) (bass, mid, high float32) {
	bass = mapRange(math.Sin(t*0.8), 2)
	mid = mapRange(math.Sin(t*1.2+math.Pi/3), 1.5)
	high = mapRange(math.Sin(t*1.5+2*math.Pi/3), 2.5)
	return
}

// mapRange maps v from [-1,1] onto [0,max].
func mapRange(v, max float64) float32 {
	return float32((v + 1) / 2 * max)
}
