package audio

import (
	"strings"
	"testing"
	"time"

	"github.com/gordonklaus/portaudio"
)

func TestWriteDevices(t *testing.T) {
	mic := &portaudio.DeviceInfo{
		Name:                    "Built-in Microphone",
		MaxInputChannels:        2,
		DefaultSampleRate:       44100,
		DefaultLowInputLatency:  3 * time.Millisecond,
		DefaultHighInputLatency: 12 * time.Millisecond,
	}
	speaker := &portaudio.DeviceInfo{Name: "Built-in Output", MaxOutputChannels: 2}
	hs := []*portaudio.HostApiInfo{{
		Name:               "Core Audio",
		DefaultInputDevice: mic,
		Devices:            []*portaudio.DeviceInfo{mic, speaker},
	}}

	var b strings.Builder
	if err := writeDevices(&b, hs); err != nil {
		t.Fatal(err)
	}
	out := b.String()
	for _, want := range []string{"Core Audio", "default input: Built-in Microphone", "channels:     2", "44100"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Built-in Output") {
		t.Errorf("output lists a playback-only device:\n%s", out)
	}
}
