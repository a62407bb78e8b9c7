package audio

import (
	"fmt"
	"io"
	"text/template"

	"github.com/gordonklaus/portaudio"
)

var deviceTmpl = template.Must(template.New("").Parse(
	`{{range .}}{{.Name}}{{if .DefaultInputDevice}} (default input: {{.DefaultInputDevice.Name}}){{end}}
{{range .Devices}}{{if gt .MaxInputChannels 0}}	{{.Name}}
		channels:     {{.MaxInputChannels}}
		sample rate:  {{.DefaultSampleRate}}
		latency:      {{.DefaultLowInputLatency}} - {{.DefaultHighInputLatency}}
{{end}}{{end}}{{end}}`,
))

// ListInputDevices writes every capture device of every host API to w.
func ListInputDevices(w io.Writer) error {
	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("initializing portaudio: %w", err)
	}
	defer portaudio.Terminate()

	hs, err := portaudio.HostApis()
	if err != nil {
		return fmt.Errorf("listing host apis: %w", err)
	}
	return writeDevices(w, hs)
}

func writeDevices(w io.Writer, hs []*portaudio.HostApiInfo) error {
	return deviceTmpl.Execute(w, hs)
}
