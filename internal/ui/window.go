package ui

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"net/http"

	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"
	winopts "github.com/wailsapp/wails/v2/pkg/options/windows"
	"github.com/wailsapp/wails/v2/pkg/runtime"

	"github.com/edgeshelf/edgeshelf/internal/config"
	"github.com/edgeshelf/edgeshelf/internal/models"
)

//go:embed all:frontend/dist
var assets embed.FS

// instanceID keys the single-instance lock.
const instanceID = "io.edgeshelf.shelf.3f6c2a1e"

// Options configures the panel window.
type Options struct {
	Bridge     *Bridge
	View       *View
	Thumbnails http.Handler
	Panel      models.PanelTuning

	// OnStartup runs once the window exists.
	OnStartup func(ctx context.Context)
	// OnShutdown runs after the window closed for good.
	OnShutdown func()
	// OnSecondInstance receives the arguments of a later launch.
	OnSecondInstance func(args []string)
}

// Run opens the panel window and blocks until the application quits. A
// later launch forwards its arguments to the running instance and exits
// inside Run.
func Run(opts Options) error {
	dist, err := fs.Sub(assets, "frontend/dist")
	if err != nil {
		return fmt.Errorf("frontend assets: %w", err)
	}

	return wails.Run(&options.App{
		Title:             config.AppName,
		Width:             opts.Panel.Width,
		Height:            opts.Panel.Height,
		MinWidth:          opts.Panel.MinWidth,
		MinHeight:         opts.Panel.MinHeight,
		Frameless:         true,
		AlwaysOnTop:       true,
		StartHidden:       true,
		HideWindowOnClose: true,
		BackgroundColour:  &options.RGBA{R: 0, G: 0, B: 0, A: 0},
		AssetServer: &assetserver.Options{
			Assets:  dist,
			Handler: opts.Thumbnails,
		},
		DragAndDrop: &options.DragAndDrop{
			EnableFileDrop:  true,
			CSSDropProperty: "--wails-drop-target",
			CSSDropValue:    "drop",
		},
		SingleInstanceLock: &options.SingleInstanceLock{
			UniqueId: instanceID,
			OnSecondInstanceLaunch: func(data options.SecondInstanceData) {
				if opts.OnSecondInstance != nil {
					opts.OnSecondInstance(data.Args)
				}
			},
		},
		Windows: &winopts.Options{
			WebviewIsTransparent: true,
			WindowIsTranslucent:  false,
			DisableWindowIcon:    true,
		},
		OnStartup: func(ctx context.Context) {
			opts.Bridge.startup(ctx)
			runtime.OnFileDrop(ctx, opts.Bridge.onFileDrop)
		},
		OnDomReady: func(ctx context.Context) {
			opts.View.Attach(ctx)
			if opts.OnStartup != nil {
				opts.OnStartup(ctx)
			}
		},
		OnShutdown: func(context.Context) {
			if opts.OnShutdown != nil {
				opts.OnShutdown()
			}
		},
		Bind: []interface{}{
			opts.Bridge,
		},
	})
}

// Quit closes the window and makes Run return.
func (v *View) Quit() {
	ctx, _ := v.attached()
	if ctx != nil {
		runtime.Quit(ctx)
	}
}
