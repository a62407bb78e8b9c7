package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"time"

	"github.com/golang/glog"

	"github.com/peragwin/camfx/audio"
	"github.com/peragwin/camfx/audio/fft"
	"github.com/peragwin/camfx/audio/util"
	"github.com/peragwin/camfx/camera"
	"github.com/peragwin/camfx/compositor"
	"github.com/peragwin/camfx/control"
	"github.com/peragwin/camfx/gfx"
	"github.com/peragwin/camfx/gfx/preview"
	"github.com/peragwin/camfx/gfx/quad"
	"github.com/peragwin/camfx/segment"
)

var (
	width  = flag.Int("width", 640, "width of the camera frame and window")
	height = flag.Int("height", 480, "height of the camera frame and window")

	backend   = flag.String("backend", "cpu", "renderer: cpu or gl")
	source    = flag.String("source", "pattern", "camera source: pattern, or the path of a still image")
	conf      = flag.String("config", "", "json parameters file, written back on exit")
	segmenter = flag.String("segment", "otsu", "segmenter: otsu or none")
	effect    = flag.String("effect", "", "initial effect key, overrides the config file")
	listen    = flag.Bool("audio", true, "listen to the default microphone")
	agc       = flag.Bool("agc", false, "level the microphone with an automatic gain stage")
	devices   = flag.Bool("list-devices", false, "list audio input devices and exit")
	fps       = flag.Int("fps", 30, "frame rate")
	addr      = flag.String("http", ":8080", "address of the control api, empty to disable")
	headless  = flag.Bool("headless", false, "run without a visible window")
)

func init() {
	// glfw and ebiten both need the main thread
	runtime.LockOSThread()
}

func main() {
	flag.Parse()
	defer glog.Flush()

	if *devices {
		if err := audio.ListInputDevices(os.Stdout); err != nil {
			glog.Fatalf("listing devices: %v", err)
		}
		return
	}

	if *fps <= 0 {
		glog.Fatalf("-fps must be positive, got %d", *fps)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	params := compositor.DefaultParameters
	if *conf != "" {
		if err := compositor.LoadConfig(*conf, &params); err != nil {
			glog.Fatalf("loading config: %v", err)
		}
	}
	if *effect != "" {
		params.Effect = *effect
	}

	src, err := newSource()
	if err != nil {
		glog.Fatalf("opening source: %v", err)
	}

	cfg := compositor.Config{Source: src, Params: params}
	switch *segmenter {
	case "otsu":
		cfg.Segmenter = segment.Otsu{Softness: 2}
	case "none":
	default:
		glog.Fatalf("unknown segmenter %q", *segmenter)
	}
	if *listen {
		cfg.Spectrum = startAudio(ctx)
	}

	var gl *quad.Surface
	switch *backend {
	case "gl":
		gl, err = quad.New(ctx, &quad.Config{
			Width: *width, Height: *height, Title: "camfx", Hidden: *headless,
		})
		if errors.Is(err, gfx.ErrBuild) {
			glog.Fatalf("building transform program: %v", err)
		} else if err != nil {
			glog.Fatalf("opening gl surface: %v", err)
		}
		defer gl.Close()
		cfg.Surface = gl
	case "cpu":
		cfg.Surface = compositor.NewCPUSurface(ctx)
	default:
		glog.Fatalf("unknown backend %q", *backend)
	}

	comp, err := compositor.New(ctx, cfg)
	if err != nil {
		glog.Fatalf("creating compositor: %v", err)
	}
	defer comp.Wait()
	loop := newFrameLoop(comp, cfg.Surface)

	if *addr != "" {
		if err := serve(ctx, comp, loop); err != nil {
			glog.Fatalf("control api: %v", err)
		}
	}

	glog.Infof("camfx: %dx%d %s backend, effect %s", *width, *height, *backend, params.Effect)
	switch {
	case gl != nil:
		interval := time.Second / time.Duration(*fps)
		last := time.Now()
		gl.Gfx.EventLoop(func(*gfx.Context) bool {
			if d := time.Since(last); d < interval {
				time.Sleep(interval - d)
			}
			last = time.Now()
			if _, err := loop.Tick(); err != nil {
				glog.Errorf("tick: %v", err)
			}
			return true
		})
	case *headless:
		loop.run(ctx, ticker(ctx, *fps))
	default:
		g := preview.New(loop, cfg.Surface, *width, *height)
		if err := preview.Run(g, "camfx", *fps); err != nil {
			glog.Errorf("preview: %v", err)
		}
	}

	if *conf != "" {
		p := comp.Params()
		if err := compositor.SaveConfig(*conf, &p); err != nil {
			glog.Errorf("saving config: %v", err)
		}
	}
}

func newSource() (camera.Source, error) {
	if *source == "pattern" {
		return camera.NewTestPattern(*width, *height), nil
	}
	return camera.OpenStill(*source, *width, *height)
}

func startAudio(ctx context.Context) *fft.Analyser {
	acfg := audio.DefaultConfig
	acfg.BlockSize = fft.DefaultSize
	samples, errc := audio.NewSource(ctx, &acfg)
	an := fft.NewAnalyser(fft.DefaultSize)
	if *agc {
		an.PreGain = util.NewPreGain(0.05)
	}
	go func() {
		if err := an.Run(ctx, samples); err != nil && !errors.Is(err, context.Canceled) {
			glog.Errorf("analyser: %v", err)
		}
	}()
	go func() {
		// the palette just stops moving if the microphone goes away
		if err, ok := <-errc; ok && err != nil {
			glog.Errorf("audio: %v", err)
		}
	}()
	return an
}

func serve(ctx context.Context, comp *compositor.Compositor, loop *frameLoop) error {
	api, err := control.New(comp)
	if err != nil {
		return err
	}
	mux := http.NewServeMux()
	mux.Handle("/api/", api.Handler())
	mux.HandleFunc("/snapshot.png", loop.serveSnapshot)

	srv := &http.Server{Addr: *addr, Handler: mux}
	go func() {
		<-ctx.Done()
		srv.Close()
	}()
	go func() {
		glog.Infof("control api listening on %s", *addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			glog.Errorf("http: %v", err)
		}
	}()
	return nil
}

func ticker(ctx context.Context, fps int) <-chan struct{} {
	ticks := make(chan struct{})
	go func() {
		t := time.NewTicker(time.Second / time.Duration(fps))
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				select {
				case ticks <- struct{}{}:
				default:
				}
			}
		}
	}()
	return ticks
}
