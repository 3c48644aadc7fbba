package shelf

import (
	"errors"
	"image"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edgeshelf/edgeshelf/internal/models"
	"github.com/edgeshelf/edgeshelf/internal/payload"
	"github.com/edgeshelf/edgeshelf/internal/registry"
)

type fakeView struct {
	shown     int
	activated bool
	hidden    int
	opacity   float64
	bounds    models.Rect
	rendered  []models.ShelfItem
}

func (v *fakeView) Show(activate bool)              { v.shown++; v.activated = activate }
func (v *fakeView) Hide()                           { v.hidden++ }
func (v *fakeView) SetOpacity(o float64)            { v.opacity = o }
func (v *fakeView) SetBounds(b models.Rect)         { v.bounds = b }
func (v *fakeView) Render(items []models.ShelfItem) { v.rendered = items }

type fakeScreen struct {
	down    bool
	area    models.Rect
	primary models.Rect
	noMon   bool
}

func (s *fakeScreen) PrimaryButtonDown() (bool, error) { return s.down, nil }
func (s *fakeScreen) CursorPos() (models.Point, error) { return models.Point{X: 100, Y: 100}, nil }
func (s *fakeScreen) MonitorWorkArea(models.Point) (models.Rect, error) {
	if s.noMon {
		return models.Rect{}, errors.New("no monitor")
	}
	return s.area, nil
}
func (s *fakeScreen) PrimaryWorkArea() (models.Rect, error) { return s.primary, nil }

type fakeShell struct {
	opened, revealed []string
}

func (s *fakeShell) OpenDefault(path string) error { s.opened = append(s.opened, path); return nil }
func (s *fakeShell) Reveal(path string) error      { s.revealed = append(s.revealed, path); return nil }

type fakeClipboard struct {
	content payload.Payload
	text    string
	files   []string
}

func (c *fakeClipboard) Read() (payload.Payload, error)  { return c.content, nil }
func (c *fakeClipboard) WriteText(text string) error     { c.text = text; return nil }
func (c *fakeClipboard) WriteFiles(paths []string) error { c.files = paths; return nil }

type fakeDrag struct {
	dropped bool
	paths   []string
}

func (d *fakeDrag) DragFiles(paths []string) (bool, error) {
	d.paths = paths
	return d.dropped, nil
}

type fakeSettings struct {
	side         models.DockSide
	removeOnDrag bool
}

func (s *fakeSettings) DockSide() models.DockSide { return s.side }
func (s *fakeSettings) RemoveAfterDragOut() bool  { return s.removeOnDrag }

type fixture struct {
	panel    *Panel
	view     *fakeView
	screen   *fakeScreen
	shell    *fakeShell
	clip     *fakeClipboard
	drag     *fakeDrag
	settings *fakeSettings
	now      time.Time
	dir      string
}

func newFixture(t *testing.T) *fixture {
	f := &fixture{
		view:     &fakeView{},
		screen:   &fakeScreen{area: models.Rect{X: 0, Y: 0, Width: 1920, Height: 1040}, primary: models.Rect{Width: 1280, Height: 720}},
		shell:    &fakeShell{},
		clip:     &fakeClipboard{},
		drag:     &fakeDrag{},
		settings: &fakeSettings{side: models.DockRight, removeOnDrag: true},
		now:      time.Unix(1700000000, 0),
		dir:      t.TempDir(),
	}
	f.panel = New(Deps{
		View:      f.view,
		Screen:    f.screen,
		Shell:     f.shell,
		Clipboard: f.clip,
		Drag:      f.drag,
		Settings:  f.settings,
		Registry:  registry.New(),
		Temp:      payload.NewMaterializer(filepath.Join(f.dir, "temp")),
	}, models.NewTuning().Panel)
	f.panel.SetClock(func() time.Time { return f.now })
	return f
}

// finishFade runs frame ticks until the running fade completes.
func (f *fixture) finishFade() {
	for i := 0; i < 100 && f.panel.Animating(); i++ {
		f.now = f.now.Add(16 * time.Millisecond)
		f.panel.TickFrame()
	}
}

func (f *fixture) file(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(f.dir, name)
	require.NoError(t, os.WriteFile(path, []byte(name), 0o644))
	return path
}

func (f *fixture) addFiles(t *testing.T, names ...string) []string {
	t.Helper()
	var paths []string
	for _, n := range names {
		paths = append(paths, f.file(t, n))
	}
	require.Equal(t, len(names), f.panel.Drop(payload.Payload{Paths: paths}))
	f.finishFade()
	var ids []string
	for _, it := range f.panel.Items() {
		ids = append(ids, it.ID)
	}
	return ids
}

func TestExplicitShowFadesIn(t *testing.T) {
	f := newFixture(t)
	f.panel.ShowExplicit()

	assert.True(t, f.panel.Visible())
	assert.True(t, f.view.activated)
	assert.False(t, f.panel.WatchdogActive())
	assert.Equal(t, models.Rect{X: 1920 - 380 - 8, Y: 8, Width: 380, Height: 640}, f.view.bounds)

	f.now = f.now.Add(90 * time.Millisecond)
	f.panel.TickFrame()
	assert.InDelta(t, 0.5, f.view.opacity, 0.01)

	f.finishFade()
	assert.Equal(t, 1.0, f.view.opacity)
	assert.False(t, f.panel.Animating())
}

func TestHideSoftHidesAfterFade(t *testing.T) {
	f := newFixture(t)
	f.panel.ShowExplicit()
	f.finishFade()

	f.panel.HideSoft()
	assert.True(t, f.panel.Visible(), "still visible while fading")
	assert.Equal(t, 0, f.view.hidden)

	f.finishFade()
	assert.False(t, f.panel.Visible())
	assert.Equal(t, 1, f.view.hidden)
	assert.Equal(t, 0.0, f.view.opacity)
}

func TestShowInterruptsHide(t *testing.T) {
	f := newFixture(t)
	f.panel.ShowExplicit()
	f.finishFade()
	f.panel.HideSoft()
	f.now = f.now.Add(90 * time.Millisecond)
	f.panel.TickFrame()

	f.panel.ShowExplicit()
	f.finishFade()
	assert.True(t, f.panel.Visible())
	assert.Equal(t, 0, f.view.hidden)
	assert.Equal(t, 1.0, f.view.opacity)
}

func TestSensorShowEmptyReleaseAutoHides(t *testing.T) {
	f := newFixture(t)
	f.screen.down = true
	f.panel.ShowFromSensor()
	f.finishFade()

	assert.True(t, f.panel.SensorShown())
	assert.False(t, f.view.activated)
	require.True(t, f.panel.WatchdogActive())

	// Button still held: nothing happens.
	f.panel.TickWatchdog()
	assert.True(t, f.panel.WatchdogActive())

	f.screen.down = false
	f.panel.TickWatchdog()
	assert.False(t, f.panel.WatchdogActive())
	assert.False(t, f.panel.SensorShown())

	f.finishFade()
	assert.False(t, f.panel.Visible())
	assert.Equal(t, 1, f.view.hidden)
}

func TestSensorShowWithDropStaysVisible(t *testing.T) {
	f := newFixture(t)
	f.screen.down = true
	f.panel.ShowFromSensor()

	path := f.file(t, "report.pdf")
	require.Equal(t, 1, f.panel.Drop(payload.Payload{Paths: []string{path}}))
	assert.False(t, f.panel.SensorShown(), "drop clears the sensor flag")
	assert.False(t, f.panel.WatchdogActive())

	f.screen.down = false
	f.panel.TickWatchdog()
	f.finishFade()
	assert.True(t, f.panel.Visible())
	assert.Equal(t, 0, f.view.hidden)
}

func TestSensorShowWithExistingItemsStaysVisible(t *testing.T) {
	f := newFixture(t)
	f.addFiles(t, "a.txt")
	f.panel.HideSoft()
	f.finishFade()

	f.screen.down = true
	f.panel.ShowFromSensor()
	f.screen.down = false
	f.panel.TickWatchdog()
	f.finishFade()

	assert.True(t, f.panel.Visible())
	assert.False(t, f.panel.WatchdogActive())
}

func TestDropFilesSkipsMissing(t *testing.T) {
	f := newFixture(t)
	img := f.file(t, "photo.JPG")
	doc := f.file(t, "notes.md")

	n := f.panel.Drop(payload.Payload{
		Paths: []string{img, filepath.Join(f.dir, "gone.txt"), doc},
		Text:  "ignored because files win",
	})
	require.Equal(t, 2, n)

	items := f.panel.Items()
	require.Len(t, items, 2)
	assert.Equal(t, models.KindFile, items[0].Kind)
	assert.Equal(t, "photo.JPG", items[0].DisplayName)
	assert.Equal(t, img, items[0].ThumbnailPath)
	assert.Equal(t, "", items[1].ThumbnailPath)
	assert.Equal(t, items, f.view.rendered)
	assert.True(t, f.panel.Visible())
	assert.True(t, f.view.activated)
}

func TestDropOnlyMissingFilesAddsNothing(t *testing.T) {
	f := newFixture(t)
	n := f.panel.Drop(payload.Payload{Paths: []string{filepath.Join(f.dir, "gone.txt")}, Text: "text"})
	assert.Equal(t, 0, n)
	assert.False(t, f.panel.Visible())
}

func TestSensorShowFailedDropStillAutoHides(t *testing.T) {
	f := newFixture(t)
	f.screen.down = true
	f.panel.ShowFromSensor()

	assert.Equal(t, 0, f.panel.Drop(payload.Payload{Paths: []string{filepath.Join(f.dir, "gone.txt")}}))
	assert.True(t, f.panel.SensorShown())
	assert.True(t, f.panel.WatchdogActive())

	f.screen.down = false
	f.panel.TickWatchdog()
	f.finishFade()
	assert.False(t, f.panel.Visible())
}

func TestDropTextAndImage(t *testing.T) {
	f := newFixture(t)

	require.Equal(t, 1, f.panel.Drop(payload.Payload{Text: "remember this"}))
	require.Equal(t, 1, f.panel.Drop(payload.Payload{Image: image.NewRGBA(image.Rect(0, 0, 2, 2))}))

	items := f.panel.Items()
	require.Len(t, items, 2)

	assert.Equal(t, models.KindTextTemp, items[0].Kind)
	data, err := os.ReadFile(items[0].SourcePath)
	require.NoError(t, err)
	assert.Equal(t, "remember this", string(data))
	assert.Empty(t, items[0].ThumbnailPath)

	assert.Equal(t, models.KindImageTemp, items[1].Kind)
	assert.Equal(t, ".png", filepath.Ext(items[1].SourcePath))
	assert.Equal(t, items[1].SourcePath, items[1].ThumbnailPath)
}

func TestPasteUsesClipboard(t *testing.T) {
	f := newFixture(t)
	f.clip.content = payload.Payload{Text: "from clipboard"}
	assert.Equal(t, 1, f.panel.Paste())
	assert.True(t, f.panel.Visible())

	f.clip.content = payload.Payload{Text: "   "}
	assert.Equal(t, 0, f.panel.Paste())
}

func TestClearUnlockedLeavesPinned(t *testing.T) {
	f := newFixture(t)
	ids := f.addFiles(t, "1.txt", "2.txt", "3.txt", "4.txt")
	f.panel.TogglePin(ids[2])

	assert.Equal(t, 3, f.panel.ClearUnlocked())
	items := f.panel.Items()
	require.Len(t, items, 1)
	assert.Equal(t, ids[2], items[0].ID)
	assert.True(t, f.panel.Visible())
}

func TestRemovingLastItemHides(t *testing.T) {
	f := newFixture(t)
	ids := f.addFiles(t, "only.txt")

	assert.True(t, f.panel.Remove(ids[0], registry.RemoveAuto))
	f.finishFade()
	assert.False(t, f.panel.Visible())
	assert.Empty(t, f.view.rendered)
}

func TestDispatchRemoveRespectsPin(t *testing.T) {
	f := newFixture(t)
	ids := f.addFiles(t, "a.txt", "b.txt")
	require.NoError(t, f.panel.Dispatch(ids[0], ActionTogglePin))

	require.NoError(t, f.panel.Dispatch(ids[0], ActionRemove))
	assert.Len(t, f.panel.Items(), 2, "pinned item survives automatic removal")

	require.NoError(t, f.panel.Dispatch(ids[0], ActionForceRemove))
	assert.Len(t, f.panel.Items(), 1, "force removal ignores the pin")

	// Actions against removed items are ignored.
	assert.NoError(t, f.panel.Dispatch(ids[0], ActionOpen))
	assert.Empty(t, f.shell.opened)
}

func TestDispatchShellActions(t *testing.T) {
	f := newFixture(t)
	ids := f.addFiles(t, "a.txt")
	item, _ := f.panel.Item(ids[0])

	require.NoError(t, f.panel.Dispatch(ids[0], ActionOpen))
	require.NoError(t, f.panel.Dispatch(ids[0], ActionReveal))
	require.NoError(t, f.panel.Dispatch(ids[0], ActionCopyPath))

	assert.Equal(t, []string{item.SourcePath}, f.shell.opened)
	assert.Equal(t, []string{item.SourcePath}, f.shell.revealed)
	assert.Equal(t, item.SourcePath, f.clip.text)

	// Reveal of a vanished file does nothing.
	require.NoError(t, os.Remove(item.SourcePath))
	require.NoError(t, f.panel.Dispatch(ids[0], ActionReveal))
	assert.Len(t, f.shell.revealed, 1)

	assert.Error(t, f.panel.Dispatch(ids[0], Action("explode")))
}

func TestDragOutRemovesUnpinned(t *testing.T) {
	f := newFixture(t)
	ids := f.addFiles(t, "one.txt", "two.txt", "pinned.txt")
	f.panel.TogglePin(ids[2])
	f.drag.dropped = true

	f.panel.DragOut(ids)
	assert.Len(t, f.drag.paths, 3)

	items := f.panel.Items()
	require.Len(t, items, 1)
	assert.Equal(t, ids[2], items[0].ID)
	assert.True(t, f.panel.Visible())
}

func TestDragOutPolicy(t *testing.T) {
	tests := []struct {
		name         string
		dropped      bool
		removeOnDrag bool
		wantLeft     int
	}{
		{"cancelled drag keeps items", false, true, 2},
		{"setting disabled keeps items", true, false, 2},
		{"accepted drop removes items", true, true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.settings.removeOnDrag = tt.removeOnDrag
			ids := f.addFiles(t, "a.txt", "b.txt")
			f.drag.dropped = tt.dropped

			f.panel.DragOut(ids)
			assert.Len(t, f.panel.Items(), tt.wantLeft)
			f.finishFade()
			assert.Equal(t, tt.wantLeft > 0, f.panel.Visible())
		})
	}
}

func TestDragOutSkipsVanishedFiles(t *testing.T) {
	f := newFixture(t)
	ids := f.addFiles(t, "a.txt", "b.txt")
	item, _ := f.panel.Item(ids[0])
	require.NoError(t, os.Remove(item.SourcePath))
	f.drag.dropped = true

	f.panel.DragOut(ids)
	require.Len(t, f.drag.paths, 1)
	items := f.panel.Items()
	require.Len(t, items, 1)
	assert.Equal(t, ids[0], items[0].ID, "a vanished file is not dragged, so it is not removed")
}

func TestCopySelectionAndPreview(t *testing.T) {
	f := newFixture(t)
	ids := f.addFiles(t, "a.txt", "b.txt")

	f.panel.CopySelection([]string{ids[1], "missing", ids[0]})
	a, _ := f.panel.Item(ids[0])
	b, _ := f.panel.Item(ids[1])
	assert.Equal(t, []string{b.SourcePath, a.SourcePath}, f.clip.files)

	f.panel.Preview([]string{ids[1], ids[0]})
	assert.Equal(t, []string{b.SourcePath}, f.shell.opened)
}

func TestRepositionFallsBackToPrimary(t *testing.T) {
	f := newFixture(t)
	f.screen.noMon = true
	f.settings.side = models.DockLeft
	f.panel.Reposition()
	assert.Equal(t, models.Rect{X: 8, Y: 8, Width: 380, Height: 640}, f.view.bounds)
}
