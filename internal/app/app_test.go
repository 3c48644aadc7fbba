package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edgeshelf/edgeshelf/internal/config"
	"github.com/edgeshelf/edgeshelf/internal/models"
	"github.com/edgeshelf/edgeshelf/internal/payload"
	"github.com/edgeshelf/edgeshelf/internal/platform"
)

type fakeAutostart struct {
	calls      []bool
	err        error
	enabled    bool
	enabledErr error
}

func (f *fakeAutostart) SetAutostart(enabled bool) error {
	f.calls = append(f.calls, enabled)
	if f.err == nil {
		f.enabled = enabled
	}
	return f.err
}

func (f *fakeAutostart) AutostartEnabled() (bool, error) {
	return f.enabled, f.enabledErr
}

func newTestApp(t *testing.T, opts Options) (*App, *fakeAutostart) {
	t.Helper()
	root := t.TempDir()
	opts.Paths = config.NewPaths(filepath.Join(root, "app"), filepath.Join(root, "tmp"))

	auto := &fakeAutostart{}
	a, err := New(opts, platform.NewDesktop(), auto)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		assert.NoError(t, a.loop.Run(ctx, nil))
	}()
	t.Cleanup(func() {
		cancel()
		<-done
		if a.watcher != nil {
			a.watcher.Stop()
		}
	})
	return a, auto
}

func readSettings(t *testing.T, a *App) models.Settings {
	t.Helper()
	var s models.Settings
	require.NoError(t, config.LoadJSON(a.opts.Paths.SettingsFile(), &s))
	return s
}

func TestNewWritesDefaultsAndAppliesDockFlag(t *testing.T) {
	a, _ := newTestApp(t, Options{Dock: "left"})

	assert.Equal(t, models.DockLeft, readSettings(t, a).DockSide)
	assert.Equal(t, models.DockLeft, a.ctrl.State().DockSide)
}

func TestNewRejectsBadDock(t *testing.T) {
	root := t.TempDir()
	_, err := New(Options{
		Paths: config.NewPaths(filepath.Join(root, "app"), filepath.Join(root, "tmp")),
		Dock:  "top",
	}, platform.NewDesktop(), &fakeAutostart{})
	assert.ErrorContains(t, err, "invalid dock side")
}

func TestNewFollowsAutostartEntry(t *testing.T) {
	root := t.TempDir()
	paths := config.NewPaths(filepath.Join(root, "app"), filepath.Join(root, "tmp"))

	newApp := func(auto *fakeAutostart) (*App, error) {
		a, err := New(Options{Paths: paths}, platform.NewDesktop(), auto)
		if a != nil && a.watcher != nil {
			t.Cleanup(a.watcher.Stop)
		}
		return a, err
	}

	a, err := newApp(&fakeAutostart{enabled: true})
	require.NoError(t, err)
	assert.True(t, a.ctrl.State().Autostart)
	assert.True(t, readSettings(t, a).Autostart)

	// The entry was removed outside EdgeShelf.
	a, err = newApp(&fakeAutostart{})
	require.NoError(t, err)
	assert.False(t, a.ctrl.State().Autostart)
	assert.False(t, readSettings(t, a).Autostart)

	// An unreadable entry leaves the saved flag alone.
	require.NoError(t, a.store.Update(func(s *models.Settings) { s.Autostart = true }))
	a, err = newApp(&fakeAutostart{enabledErr: errors.New("access denied")})
	require.NoError(t, err)
	assert.True(t, a.ctrl.State().Autostart)
}

func TestNoSensorSuspends(t *testing.T) {
	a, _ := newTestApp(t, Options{NoSensor: true})
	var suspended bool
	require.NoError(t, a.loop.Do(func() { suspended = a.sensor.Suspended() }))
	assert.True(t, suspended)
}

func TestSetDockSideSaves(t *testing.T) {
	a, _ := newTestApp(t, Options{})

	require.NoError(t, a.SetDockSide(models.DockLeft))
	assert.Equal(t, models.DockLeft, readSettings(t, a).DockSide)
}

func TestSetAutostart(t *testing.T) {
	a, auto := newTestApp(t, Options{})

	require.NoError(t, a.SetAutostart(true))
	assert.Equal(t, []bool{true}, auto.calls)
	assert.True(t, readSettings(t, a).Autostart)

	auto.err = errors.New("access denied")
	assert.Error(t, a.SetAutostart(false))
	assert.True(t, readSettings(t, a).Autostart, "flag must not change when registration fails")
}

func TestReloadSettingsMirrorsExternalEdit(t *testing.T) {
	a, auto := newTestApp(t, Options{})

	path := a.opts.Paths.SettingsFile()
	require.NoError(t, os.WriteFile(path, []byte(`{"dock_side":"left","autostart":true}`), 0o644))
	require.NoError(t, a.loop.Do(a.reloadSettings))

	state := a.ctrl.State()
	assert.Equal(t, models.DockLeft, state.DockSide)
	assert.True(t, state.Autostart)
	assert.Equal(t, []bool{true}, auto.calls)

	// A broken edit keeps the last good settings.
	require.NoError(t, os.WriteFile(path, []byte(`{"dock_side":`), 0o644))
	require.NoError(t, a.loop.Do(a.reloadSettings))
	assert.Equal(t, models.DockLeft, a.ctrl.State().DockSide)
	assert.Len(t, auto.calls, 1)
}

func TestCommandsShowAndHide(t *testing.T) {
	a, _ := newTestApp(t, Options{})

	visible := func() bool {
		var v bool
		require.NoError(t, a.loop.Do(func() { v = a.panel.Visible() }))
		return v
	}

	a.handleArgs([]string{`C:\edgeshelf.exe`, "show"})
	assert.True(t, visible())

	a.handleArgs([]string{`C:\edgeshelf.exe`, "hide"})
	require.Eventually(t, func() bool { return !visible() }, 2*time.Second, 10*time.Millisecond)

	a.handleArgs(nil)
	assert.True(t, visible())
}

func TestDropUpdatesTrayCount(t *testing.T) {
	a, _ := newTestApp(t, Options{})
	proxy := &shelfProxy{loop: a.loop, panel: a.panel}

	assert.Equal(t, 1, proxy.Drop(payload.Payload{Text: "note"}))
	assert.Equal(t, 1, a.ctrl.State().Items)

	items := proxy.Items()
	require.Len(t, items, 1)
	assert.Equal(t, models.KindTextTemp, items[0].Kind)

	_, ok := proxy.thumbnail(items[0].ID)
	assert.False(t, ok)

	assert.Equal(t, 1, proxy.ClearUnlocked())
	assert.Equal(t, 0, a.ctrl.State().Items)
}
