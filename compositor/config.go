package compositor

import (
	"encoding/json"
	"errors"
	"fmt"
	"image/color"
	"io/fs"
	"os"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/peragwin/camfx/audio/sensors/levelsensor"
	"github.com/peragwin/camfx/camera"
	"github.com/peragwin/camfx/effects"
	"github.com/peragwin/camfx/mask"
)

// Parameters is the persisted and remotely tunable configuration of the compositor.
type Parameters struct {
	Effect string `json:"effect"`
	Facing string `json:"facing"`
	// MaskPost is the key of a pixel transform applied to mask compositions.
	MaskPost       string  `json:"maskPost"`
	EchoShadow     bool    `json:"echoShadow"`
	EchoCount      int     `json:"echoCount"`
	BlurSigma      float64 `json:"blurSigma"`
	AudioThreshold float64 `json:"audioThreshold"`
	// Fill is the silhouette color of whiteGlow as a hex string.
	Fill string `json:"fill"`
}

// DefaultParameters is the configuration used when no file is given.
var DefaultParameters = Parameters{
	Effect:         "none",
	Facing:         "front",
	MaskPost:       "none",
	EchoCount:      7,
	BlurSigma:      18,
	AudioThreshold: levelsensor.DefaultThreshold,
	Fill:           "#ff0000",
}

// Validate checks that every field is usable. Unknown effect keys are allowed and render
// as "none".
func (p *Parameters) Validate() error {
	if _, err := camera.ParseFacing(p.Facing); err != nil {
		return err
	}
	if p.MaskPost != "" {
		if e, ok := effects.Find(p.MaskPost); !ok || e.Masked {
			return fmt.Errorf("maskPost %q is not a pixel transform", p.MaskPost)
		}
	}
	if p.EchoCount < 1 {
		return fmt.Errorf("echoCount must be at least 1, got %d", p.EchoCount)
	}
	if !(p.AudioThreshold >= 0 && p.AudioThreshold <= 1) {
		return fmt.Errorf("audioThreshold must be within [0,1], got %v", p.AudioThreshold)
	}
	if p.BlurSigma < 0 {
		return fmt.Errorf("blurSigma must not be negative, got %v", p.BlurSigma)
	}
	if _, err := colorful.Hex(p.Fill); err != nil {
		return fmt.Errorf("fill: %w", err)
	}
	return nil
}

// MaskOptions derives the mask compositor options.
func (p *Parameters) MaskOptions() (mask.Options, error) {
	opts := mask.DefaultOptions()
	fill, err := colorful.Hex(p.Fill)
	if err != nil {
		return opts, fmt.Errorf("fill: %w", err)
	}
	r, g, b := fill.RGB255()
	opts.Fill[effects.KeyWhiteGlow] = color.RGBA{r, g, b, 0xff}
	opts.BlurSigma = float32(p.BlurSigma)
	opts.EchoCount = p.EchoCount
	opts.EchoShadow = p.EchoShadow
	return opts, nil
}

// SaveConfig writes p to the given file as JSON.
func SaveConfig(conf string, p *Parameters) error {
	fp, err := os.Create(conf)
	if err != nil {
		return err
	}
	defer fp.Close()
	enc := json.NewEncoder(fp)
	enc.SetIndent("", "  ")
	return enc.Encode(p)
}

// LoadConfig reads the given file over p. A missing file leaves p untouched.
func LoadConfig(conf string, p *Parameters) error {
	fp, err := os.Open(conf)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	defer fp.Close()

	next := *p
	if err := json.NewDecoder(fp).Decode(&next); err != nil {
		return fmt.Errorf("decoding %s: %w", conf, err)
	}
	if err := next.Validate(); err != nil {
		return fmt.Errorf("%s: %w", conf, err)
	}
	*p = next
	return nil
}
