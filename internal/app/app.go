// Package app wires the sensor, panel, tray and window together and runs
// them.
package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime/debug"
	"sync"
	"syscall"

	"github.com/edgeshelf/edgeshelf/internal/clip"
	"github.com/edgeshelf/edgeshelf/internal/config"
	"github.com/edgeshelf/edgeshelf/internal/models"
	"github.com/edgeshelf/edgeshelf/internal/payload"
	"github.com/edgeshelf/edgeshelf/internal/platform"
	"github.com/edgeshelf/edgeshelf/internal/registry"
	"github.com/edgeshelf/edgeshelf/internal/sensor"
	"github.com/edgeshelf/edgeshelf/internal/shelf"
	"github.com/edgeshelf/edgeshelf/internal/tray"
	"github.com/edgeshelf/edgeshelf/internal/ui"
	"github.com/edgeshelf/edgeshelf/internal/watcher"
)

// ErrElevated is returned when the process runs as Administrator, where
// Explorer cannot drop onto the shelf.
var ErrElevated = errors.New("running as Administrator")

const elevatedMessage = "You are running as Administrator.\n\n" +
	"Windows blocks Explorer drag & drop into elevated apps.\n" +
	"Please start EdgeShelf without Administrator rights."

// Commands accepted on the command line and from a second instance.
const (
	CommandRun  = "run"
	CommandShow = "show"
	CommandHide = "hide"
)

// Options configures a run.
type Options struct {
	Paths config.Paths
	// Dock overrides and saves the dock side when set.
	Dock string
	// NoSensor starts with edge detection suspended.
	NoSensor bool
	// Command runs once the window is up.
	Command string
}

// Autostarter registers the application to start at sign-in.
type Autostarter interface {
	SetAutostart(enabled bool) error
	AutostartEnabled() (bool, error)
}

// App is a running EdgeShelf instance.
type App struct {
	opts      Options
	loop      *Loop
	store     *config.Store
	tuning    *models.Tuning
	desktop   *platform.Desktop
	view      *ui.View
	panel     *shelf.Panel
	sensor    *sensor.Sensor
	ctrl      *tray.Controller
	tray      *tray.Tray
	watcher   *watcher.Watcher
	autostart Autostarter

	cancel    context.CancelFunc
	startOnce sync.Once
	stopOnce  sync.Once
	loopErr   chan error
}

// Run starts EdgeShelf and blocks until it exits. Startup failures,
// including panics, are shown in a message box as well as returned.
func Run(opts Options) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v\n\n%s", r, debug.Stack())
		}
		if err != nil && !errors.Is(err, ErrElevated) {
			log.Printf("[app] Failed: %v", err)
			platform.ShowError(config.AppName+" failed", err.Error())
		}
	}()

	if platform.IsElevated() {
		log.Println("[app] Refusing to start elevated")
		platform.ShowError(config.AppName+" - Drag & Drop disabled", elevatedMessage)
		return ErrElevated
	}

	a, err := New(opts, platform.NewDesktop(), platform.Autostart{})
	if err != nil {
		return err
	}
	return a.Run()
}

// New builds an App without starting it.
func New(opts Options, desktop *platform.Desktop, autostart Autostarter) (*App, error) {
	p := opts.Paths
	if err := p.EnsureAppDir(); err != nil {
		return nil, fmt.Errorf("failed to create app dir: %w", err)
	}

	store := config.OpenStore(p.SettingsFile())
	if opts.Dock != "" {
		side, ok := models.ParseDockSide(opts.Dock)
		if !ok {
			return nil, fmt.Errorf("invalid dock side %q (want left or right)", opts.Dock)
		}
		if err := store.Update(func(s *models.Settings) { s.DockSide = side }); err != nil {
			return nil, err
		}
	}

	syncAutostart(store, autostart)

	tuning, err := config.LoadTuning(p.TuningFile())
	if err != nil {
		log.Printf("[config] Ignoring %s: %v", p.TuningFile(), err)
		tuning = models.NewTuning()
	}

	a := &App{
		opts:      opts,
		loop:      NewLoop(),
		store:     store,
		tuning:    tuning,
		desktop:   desktop,
		view:      ui.NewView(),
		autostart: autostart,
		loopErr:   make(chan error, 1),
	}

	settings := store.Current()
	a.ctrl = tray.NewController(a, tray.State{DockSide: settings.DockSide, Autostart: settings.Autostart})
	a.tray = tray.New(a.ctrl)

	a.panel = shelf.New(shelf.Deps{
		View:      &trackingView{View: a.view, ctrl: a.ctrl},
		Screen:    desktop,
		Shell:     desktop,
		Clipboard: clip.New(),
		Drag:      desktop,
		Settings:  store,
		Registry:  registry.New(),
		Temp:      payload.NewMaterializer(p.TempDir),
	}, tuning.Panel)

	a.sensor = sensor.New(desktop, store, tuning.Sensor)
	a.sensor.OnDetect(a.panel.ShowFromSensor)
	if opts.NoSensor {
		a.sensor.Suspend()
	}

	a.loop.Every(tuning.Sensor.PollInterval, a.tickFrame)
	a.loop.Every(tuning.Panel.WatchdogInterval, a.tickWatchdog)

	if w, err := watcher.New(p.SettingsFile(), p.TuningFile()); err != nil {
		log.Printf("[watcher] Disabled: %v", err)
	} else {
		a.watcher = w
	}

	return a, nil
}

// syncAutostart makes the saved flag follow the Run key, which the user can
// also change from Task Manager.
func syncAutostart(store *config.Store, autostart Autostarter) {
	enabled, err := autostart.AutostartEnabled()
	if err != nil {
		if !errors.Is(err, platform.ErrUnsupported) {
			log.Printf("[config] Cannot read autostart entry: %v", err)
		}
		return
	}
	if enabled == store.Current().Autostart {
		return
	}
	log.Printf("[config] Autostart entry is %t, updating settings", enabled)
	if err := store.Update(func(s *models.Settings) { s.Autostart = enabled }); err != nil {
		log.Printf("[config] Failed to save autostart: %v", err)
	}
}

func (a *App) tickFrame() {
	a.sensor.Tick()
	if a.panel.Animating() {
		a.panel.TickFrame()
	}
}

func (a *App) tickWatchdog() {
	if a.panel.WatchdogActive() {
		a.panel.TickWatchdog()
	}
}

// Run opens the window and blocks until it closes. The loop, tray and
// watcher start once the page has loaded.
func (a *App) Run() error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	a.cancel = cancel
	defer cancel()

	proxy := &shelfProxy{loop: a.loop, panel: a.panel}
	err := ui.Run(ui.Options{
		Bridge:     ui.NewBridge(proxy, ui.Config{DragOutDistance: a.tuning.Panel.DragOutDistance}),
		View:       a.view,
		Thumbnails: ui.NewThumbnailHandler(proxy.thumbnail),
		Panel:      a.tuning.Panel,
		OnStartup: func(context.Context) {
			a.startOnce.Do(func() { a.start(ctx) })
		},
		OnShutdown:       a.stop,
		OnSecondInstance: a.handleArgs,
	})
	a.stop()
	if err != nil {
		return fmt.Errorf("window: %w", err)
	}

	select {
	case err := <-a.loopErr:
		return err
	default:
		return nil
	}
}

func (a *App) start(ctx context.Context) {
	a.desktop.Owner = a.view.Handle()

	go func() {
		err := a.loop.Run(ctx, platform.InitOLE)
		if err != nil {
			log.Printf("[app] Event loop failed: %v", err)
			a.loopErr <- err
		}
		a.view.Quit()
	}()

	a.tray.Start(func() {
		log.Println("[tray] Ready")
		if a.opts.Command != CommandRun {
			return
		}
		if err := tray.Announce(); err != nil {
			log.Printf("[tray] Startup notification failed: %v", err)
		}
	})

	if a.watcher != nil {
		if err := a.watcher.Start(); err != nil {
			log.Printf("[watcher] Failed to start: %v", err)
		} else {
			go a.watchConfig()
		}
	}

	log.Printf("[app] Started (dock=%s, sensor=%t)", a.ctrl.State().DockSide, !a.opts.NoSensor)
	a.runCommand(a.opts.Command)
}

// stop tears everything down. Safe to call more than once.
func (a *App) stop() {
	a.stopOnce.Do(func() {
		if a.watcher != nil {
			a.watcher.Stop()
		}
		a.tray.Stop()
		if a.cancel != nil {
			a.cancel()
		}
		log.Println("[app] Stopped")
	})
}

func (a *App) watchConfig() {
	for {
		select {
		case <-a.loop.Done():
			return
		case ev := <-a.watcher.Events():
			switch ev.Type {
			case watcher.EventSettingsChanged:
				a.loop.Post(a.reloadSettings)
			case watcher.EventTuningChanged:
				log.Printf("[config] %s changed; restart EdgeShelf to apply", ev.Path)
			}
		}
	}
}

// reloadSettings applies an external edit of settings.json. Runs on the
// loop.
func (a *App) reloadSettings() {
	before := a.store.Current()
	changed, err := a.store.Reload()
	if err != nil {
		log.Printf("[config] Keeping current settings: %v", err)
		return
	}
	if !changed {
		return
	}
	after := a.store.Current()
	log.Printf("[config] Settings reloaded (dock=%s, remove_after_drag_out=%t, autostart=%t)",
		after.DockSide, after.RemoveAfterDragOut, after.Autostart)

	if after.Autostart != before.Autostart {
		if err := a.autostart.SetAutostart(after.Autostart); err != nil {
			log.Printf("[config] Failed to mirror autostart: %v", err)
		}
	}
	a.ctrl.Update(func(s *tray.State) {
		s.DockSide = after.DockSide
		s.Autostart = after.Autostart
	})
	if a.panel.Visible() {
		a.panel.Reposition()
	}
}

// handleArgs receives the command line of a second launch.
func (a *App) handleArgs(args []string) {
	cmd := CommandShow
	for _, arg := range args {
		switch arg {
		case CommandShow, CommandHide:
			cmd = arg
		}
	}
	log.Printf("[app] Second instance asked to %s", cmd)
	a.runCommand(cmd)
}

func (a *App) runCommand(cmd string) {
	switch cmd {
	case CommandShow:
		a.ShowShelf()
	case CommandHide:
		a.HideShelf()
	}
}

// ShowShelf shows and focuses the panel.
func (a *App) ShowShelf() {
	a.loop.Post(a.panel.ShowExplicit)
}

// HideShelf fades the panel out.
func (a *App) HideShelf() {
	a.loop.Post(a.panel.HideSoft)
}

// SetDockSide saves the dock side and moves a visible panel. The sensor
// reads the new side on its next tick.
func (a *App) SetDockSide(side models.DockSide) error {
	var err error
	if loopErr := a.loop.Do(func() {
		err = a.store.Update(func(s *models.Settings) { s.DockSide = side })
		if err == nil && a.panel.Visible() {
			a.panel.Reposition()
		}
	}); loopErr != nil {
		return loopErr
	}
	return err
}

// SetAutostart registers or unregisters autostart and saves the flag. The
// flag is only saved once the registration succeeded.
func (a *App) SetAutostart(enabled bool) error {
	var err error
	if loopErr := a.loop.Do(func() {
		if err = a.autostart.SetAutostart(enabled); err != nil {
			return
		}
		err = a.store.Update(func(s *models.Settings) { s.Autostart = enabled })
	}); loopErr != nil {
		return loopErr
	}
	return err
}

// Exit quits the application.
func (a *App) Exit() {
	log.Println("[app] Exit requested")
	a.view.Quit()
}

// trackingView keeps the tray tooltip in step with the item count.
type trackingView struct {
	shelf.View
	ctrl *tray.Controller
}

func (v *trackingView) Render(items []models.ShelfItem) {
	v.View.Render(items)
	n := len(items)
	v.ctrl.Update(func(s *tray.State) { s.Items = n })
}
