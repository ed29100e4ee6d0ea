// Command spatialnav renders an HTML page with data-rect geometry in the
// terminal and navigates it with the arrow keys.
package main

import (
	"context"
	_ "embed"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/odvcencio/spatialnav/pkg/events"
	"github.com/odvcencio/spatialnav/pkg/host/dom"
	"github.com/odvcencio/spatialnav/pkg/host/term"
	"github.com/odvcencio/spatialnav/pkg/logging"
	"github.com/odvcencio/spatialnav/pkg/section"
	"github.com/odvcencio/spatialnav/pkg/spatial"
	"github.com/odvcencio/spatialnav/pkg/telemetry"
)

//go:embed demo.html
var demoHTML string

//go:embed demo.yaml
var demoLayout []byte

type options struct {
	htmlPath    string
	layoutPath  string
	logPath     string
	metricsAddr string
	scaleX      float64
	scaleY      float64
}

func parseOptions(args []string) (options, error) {
	var opts options
	fs := flag.NewFlagSet("spatialnav", flag.ContinueOnError)
	fs.StringVar(&opts.htmlPath, "html", "", "HTML page to navigate (default: built-in demo)")
	fs.StringVar(&opts.layoutPath, "layout", "", "YAML section layout (default: built-in demo)")
	fs.StringVar(&opts.logPath, "log", "", "write JSON logs to this file")
	fs.StringVar(&opts.metricsAddr, "metrics", "", "serve Prometheus metrics on this address")
	fs.Float64Var(&opts.scaleX, "scale-x", 1, "terminal columns per layout unit")
	fs.Float64Var(&opts.scaleY, "scale-y", 1, "terminal rows per layout unit")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if fs.NArg() > 0 {
		return options{}, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	return opts, nil
}

func main() {
	opts, err := parseOptions(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(opts options) error {
	logOut := io.Discard
	if opts.logPath != "" {
		f, err := os.OpenFile(opts.logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	logger := logging.NewWithWriter(logOut, "cli", logging.ParseLevel(os.Getenv("SPATIALNAV_LOG_LEVEL")))

	reg := prometheus.NewRegistry()
	if opts.metricsAddr != "" {
		srv := serveMetrics(opts.metricsAddr, reg, logger)
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = srv.Shutdown(ctx)
		}()
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse()

	a, err := newApp(screen, opts, logger, telemetry.NewMetrics(reg))
	if err != nil {
		return err
	}
	defer a.engine.Uninit()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a.renderer.Run(ctx)
	return nil
}

func serveMetrics(addr string, reg *prometheus.Registry, logger *logging.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server stopped", slog.String("addr", addr), slog.String("error", err.Error()))
		}
	}()
	return srv
}

type app struct {
	doc      *dom.Document
	engine   *spatial.Engine
	renderer *term.Renderer
}

func newApp(screen tcell.Screen, opts options, logger *logging.Logger, metrics *telemetry.Metrics) (*app, error) {
	doc, err := loadDocument(opts.htmlPath)
	if err != nil {
		return nil, err
	}
	layout, err := loadLayout(opts.layoutPath)
	if err != nil {
		return nil, err
	}

	engine := spatial.New(doc,
		spatial.WithLogger(logger),
		spatial.WithMetrics(metrics),
	)
	engine.Init()
	if err := engine.Apply(layout); err != nil {
		engine.Uninit()
		return nil, err
	}
	if err := engine.MakeFocusable(""); err != nil {
		engine.Uninit()
		return nil, err
	}

	renderer := term.New(screen, doc, term.WithScale(opts.scaleX, opts.scaleY))
	a := &app{doc: doc, engine: engine, renderer: renderer}
	engine.Events().OnAny(a.describe)

	engine.Focus(section.Selector{}, false)
	if renderer.Status() == "" {
		renderer.SetStatus("arrows/hjkl move, enter activates, q quits")
	}
	return a, nil
}

// describe mirrors interesting lifecycle events onto the status line.
func (a *app) describe(ev *events.Event) {
	switch ev.Name {
	case events.Focused:
		a.renderer.SetStatus(fmt.Sprintf("%s [%s]", a.doc.Label(ev.Target), ev.Detail.SectionID))
	case events.NavigateFailed:
		a.renderer.SetStatus(fmt.Sprintf("nothing %s of %s", ev.Detail.Direction, a.doc.Label(ev.Target)))
	case events.EnterDown:
		a.renderer.SetStatus("activated " + a.doc.Label(ev.Target))
	}
}

func loadDocument(path string) (*dom.Document, error) {
	if path == "" {
		return dom.ParseString(demoHTML)
	}
	return dom.Load(path)
}

func loadLayout(path string) (*section.Layout, error) {
	if path == "" {
		return section.ParseLayout(demoLayout)
	}
	return section.LoadLayout(path)
}
