// Package audio captures microphone input for the audio-reactive effects.
package audio

import (
	"context"
	"fmt"

	"github.com/golang/glog"
	"github.com/gordonklaus/portaudio"
)

// Config represents a config that is used to open a new Stream.
type Config struct {
	// BlockSize refers to the buffer size for each block
	BlockSize int
	// Channels is the number of input channels
	Channels int
	// SampleRate is the sample rate (Fs).
	SampleRate float64
}

// DefaultConfig is a mono microphone read in blocks of one analyser window.
var DefaultConfig = Config{
	BlockSize:  256,
	Channels:   1,
	SampleRate: 44100,
}

// NewSource opens the default input device and returns a channel of sample blocks. Each
// block is a fresh slice owned by the receiver. Both channels are closed when ctx is done
// or the stream fails.
func NewSource(ctx context.Context, cfg *Config) (<-chan []float32, <-chan error) {
	out := make(chan []float32, 4)
	errc := make(chan error, 1)

	go func() {
		defer close(out)
		defer close(errc)

		if err := portaudio.Initialize(); err != nil {
			errc <- fmt.Errorf("initializing portaudio: %w", err)
			return
		}
		defer portaudio.Terminate()

		in := make([]float32, cfg.BlockSize*cfg.Channels)
		stream, err := portaudio.OpenDefaultStream(
			cfg.Channels, 0, cfg.SampleRate, cfg.BlockSize, in)
		if err != nil {
			errc <- fmt.Errorf("opening stream: %w", err)
			return
		}
		defer stream.Close()
		if err := stream.Start(); err != nil {
			errc <- fmt.Errorf("starting stream: %w", err)
			return
		}
		defer stream.Stop()
		glog.Infof("audio: capturing %d channel(s) at %.0f Hz", cfg.Channels, cfg.SampleRate)

		for {
			if err := stream.Read(); err != nil {
				errc <- fmt.Errorf("reading from stream: %w", err)
				return
			}
			block := downmix(in, cfg.Channels)

			select {
			case <-ctx.Done():
				return
			case out <- block:
			default:
				glog.V(3).Info("audio: consumer is behind, block dropped")
			}
		}
	}()

	return out, errc
}

// downmix averages interleaved channels into a new mono slice.
func downmix(in []float32, channels int) []float32 {
	if channels <= 1 {
		return append([]float32(nil), in...)
	}
	out := make([]float32, len(in)/channels)
	for i := range out {
		var s float32
		for c := 0; c < channels; c++ {
			s += in[i*channels+c]
		}
		out[i] = s / float32(channels)
	}
	return out
}
