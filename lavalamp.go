package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"lautenbacher.net/lavalamp/config"
	"lautenbacher.net/lavalamp/lamp"
	"lautenbacher.net/lavalamp/logging"
	"lautenbacher.net/lavalamp/platform"
	"lautenbacher.net/lavalamp/schedule"
	"lautenbacher.net/lavalamp/web"
)

var (
	startupLed = lamp.Led{Green: 128, Brightness: 15}
	resetLed   = lamp.Led{Red: 128, Brightness: 15}
	networkLed = lamp.Led{Blue: 128, Brightness: 15}
)

type App struct {
	ossignal    chan os.Signal
	conf        *config.Config
	platform    platform.Platform
	// provisioner overrides the credentials file of the configuration
	provisioner platform.Provisioner
	engine      *lamp.Engine
	remote      *lamp.Remote
	web         *web.Server
	dimmer      *schedule.NightDimmer
	watcher     *config.Watcher
	clock       lamp.Clock
	stopsignal  chan struct{}
	shutdownWg  sync.WaitGroup
	newPlatform func(conf *config.Config) platform.Platform
}

func NewApp(ossignal chan os.Signal) *App {
	app := &App{
		ossignal: ossignal,
		clock:    lamp.SystemClock{},
	}
	app.newPlatform = func(conf *config.Config) platform.Platform {
		if conf.RealHW {
			return platform.NewRaspberryPiPlatform(conf)
		}
		return platform.NewTUIPlatform(conf, app.ossignal)
	}
	return app
}

func main() {
	realp := flag.Bool("real", false, "Set to true if program runs on the real hardware")
	cfile := flag.String("config", config.CONFILE, "Path of the configuration file")
	flag.Parse()

	ossignal := make(chan os.Signal, 1)
	signal.Notify(ossignal, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)

	os.Exit(NewApp(ossignal).Run(*cfile, *realp))
}

// Run starts the lamp and serves signals until asked to exit. SIGHUP reloads
// the configuration; a broken file keeps the running configuration.
func (a *App) Run(cfile string, realp bool) int {
	conf, err := config.ReadConfig(cfile, realp)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading configuration: %v\n", err)
		return 1
	}

	for {
		if err := a.initialise(conf); err != nil {
			slog.Error("Startup failed", "error", err)
			a.shutdown()
			return 1
		}

		for {
			sig := <-a.ossignal
			if sig != syscall.SIGHUP {
				slog.Info("Received signal, shutting down", "signal", sig.String())
				a.shutdown()
				return 0
			}
			next, err := config.ReadConfig(cfile, realp)
			if err != nil {
				slog.Error("Not reloading, configuration is invalid", "error", err)
				continue
			}
			slog.Info("Reloading configuration", "file", cfile)
			conf = next
			break
		}
		a.shutdown()
	}
}

func (a *App) initialise(conf *config.Config) error {
	a.conf = conf
	logcfg := conf.Logging.TUI
	if conf.RealHW {
		logcfg = conf.Logging.HW
	}
	if err := logging.Init(logcfg, !conf.RealHW); err != nil {
		return err
	}
	slog.Info("Starting lava lamp", "variant", conf.Lamp.Variant, "leds", conf.Lamp.LedsTotal, "realHW", conf.RealHW)

	profile, err := lamp.ProfileFromConfig(conf.Lamp)
	if err != nil {
		return err
	}
	engine, err := lamp.NewEngine(profile, conf.Lamp.LedsTotal,
		lamp.CyclesFor(conf.Lamp.ShortPress, conf.Lamp.CycleDelay),
		lamp.CyclesFor(conf.Lamp.LongPress, conf.Lamp.CycleDelay))
	if err != nil {
		return err
	}
	a.engine = engine
	a.remote = lamp.NewRemote()
	a.remote.Publish(engine)

	a.platform = a.newPlatform(conf)
	if err := a.platform.Start(); err != nil {
		a.platform = nil
		return fmt.Errorf("failed to start platform: %w", err)
	}
	<-a.platform.Ready()

	if conf.Network.Enabled {
		if err := a.startNetwork(); err != nil {
			return err
		}
	}

	if conf.NightDim.Enabled {
		a.dimmer = schedule.NewNightDimmer(conf.NightDim, a.remote)
		a.dimmer.Start()
	}

	if w, err := config.Watch(conf.Configfile, a.requestReload); err != nil {
		slog.Warn("Config file is not watched", "error", err)
	} else {
		a.watcher = w
	}

	a.stopsignal = make(chan struct{})
	a.shutdownWg.Add(1)
	go a.runLoop()
	return nil
}

func (a *App) requestReload() {
	select {
	case a.ossignal <- syscall.SIGHUP:
	default:
		// a signal is already pending
	}
}

// startNetwork runs the factory reset window and brings up the web server.
func (a *App) startNetwork() error {
	prov := a.provisioner
	if prov == nil {
		prov = platform.FileProvisioner{Path: a.conf.Network.CredentialsFile}
	}
	reset, err := a.resetWindow(prov)
	if err != nil {
		return err
	}
	if reset {
		a.requestReload()
	}

	a.web = web.NewServer(a.remote, a.conf.Network.CommandTimeout)
	return a.web.Start(a.conf.Network.Listen)
}

// resetWindow shows a green LED in the middle of the strip and watches the
// button for the configured window. A press erases the network credentials (red LED);
// otherwise the LED turns blue while the network comes up.
func (a *App) resetWindow(prov platform.Provisioner) (bool, error) {
	n := a.conf.Lamp.LedsTotal
	mid := n / 2
	a.platform.DisplayLeds(lamp.Single(n, mid, startupLed))

	polls := int(a.conf.Network.ResetWindow / a.conf.Network.ResetPoll)
	for i := 0; i < polls; i++ {
		if a.platform.ButtonPressed() {
			slog.Warn("Button held at startup, factory reset")
			a.platform.DisplayLeds(lamp.Single(n, mid, resetLed))
			if err := prov.Reset(); err != nil {
				return true, fmt.Errorf("factory reset failed: %w", err)
			}
			return true, nil
		}
		a.clock.Sleep(a.conf.Network.ResetPoll)
	}
	a.platform.DisplayLeds(lamp.Single(n, mid, networkLed))
	return false, nil
}

// runLoop owns the engine. Every poll it applies queued commands; once per
// cycle it samples the button, renders and publishes the state.
func (a *App) runLoop() {
	defer a.shutdownWg.Done()
	ticker := time.NewTicker(a.conf.Lamp.PollDelay)
	defer ticker.Stop()
	gate := lamp.NewGate(a.conf.Lamp.CycleDelay, a.clock.Now())

	for {
		select {
		case <-a.stopsignal:
			slog.Info("Ending cycle loop go-routine")
			return
		case <-ticker.C:
			a.remote.Apply(a.engine)
			if !gate.Ready(a.clock.Now()) {
				continue
			}
			a.platform.DisplayLeds(a.engine.Step(a.platform.ButtonPressed()))
			a.remote.Publish(a.engine)
		}
	}
}

func (a *App) shutdown() {
	if a.watcher != nil {
		if err := a.watcher.Close(); err != nil {
			slog.Error("Error closing config watcher", "error", err)
		}
		a.watcher = nil
	}
	if a.dimmer != nil {
		a.dimmer.Stop()
		a.dimmer = nil
	}
	if a.web != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		if err := a.web.Shutdown(ctx); err != nil {
			slog.Error("Error shutting down web server", "error", err)
		}
		cancel()
		a.web = nil
	}
	if a.stopsignal != nil {
		close(a.stopsignal)
		a.shutdownWg.Wait()
		a.stopsignal = nil
	}
	if a.platform != nil {
		a.platform.DisplayLeds(lamp.Blank(a.conf.Lamp.LedsTotal))
		a.platform.Stop()
		a.platform = nil
	}
	if err := logging.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Error closing log: %v\n", err)
	}
}
