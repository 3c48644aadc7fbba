// Package shelf implements the shelf panel: the list of parked items, its
// show/hide behaviour and the rules for adding and removing items.
package shelf

import (
	"log"
	"os"
	"time"

	"github.com/edgeshelf/edgeshelf/internal/models"
	"github.com/edgeshelf/edgeshelf/internal/payload"
	"github.com/edgeshelf/edgeshelf/internal/registry"
)

// Deps bundles the collaborators of a Panel.
type Deps struct {
	View      View
	Screen    Screen
	Shell     Shell
	Clipboard Clipboard
	Drag      DragSource
	Settings  Settings
	Registry  *registry.Registry
	Temp      *payload.Materializer
}

// Panel is the shelf window controller. All methods must be called from the
// goroutine that owns the registry.
type Panel struct {
	Deps
	tuning models.PanelTuning
	now    func() time.Time

	visible     bool
	opacity     float64
	fade        *fade
	hideOnFaded bool

	// sensorShown is set while the panel is open only because the edge
	// sensor fired; the watchdog hides it again if nothing gets dropped.
	sensorShown bool
	watchdog    bool
}

// New creates a hidden panel.
func New(deps Deps, tuning models.PanelTuning) *Panel {
	p := &Panel{Deps: deps, tuning: tuning, now: time.Now}
	p.View.SetOpacity(0)
	return p
}

// SetClock replaces the time source.
func (p *Panel) SetClock(now func() time.Time) {
	p.now = now
}

// Visible reports whether the panel is shown (including while fading out).
func (p *Panel) Visible() bool { return p.visible }

// Opacity returns the current window opacity.
func (p *Panel) Opacity() float64 { return p.opacity }

// SensorShown reports whether the panel is open as an edge-drag drop target.
func (p *Panel) SensorShown() bool { return p.sensorShown }

// Animating reports whether a fade needs frame ticks.
func (p *Panel) Animating() bool { return p.fade != nil }

// WatchdogActive reports whether the drag-cancel watchdog needs ticks.
func (p *Panel) WatchdogActive() bool { return p.watchdog }

// WatchdogInterval returns the watchdog tick period.
func (p *Panel) WatchdogInterval() time.Duration { return p.tuning.WatchdogInterval }

// Items returns the items in display order.
func (p *Panel) Items() []models.ShelfItem { return p.Registry.Items() }

// Item looks up one item.
func (p *Panel) Item(id string) (models.ShelfItem, bool) {
	item, ok := p.Registry.Get(id)
	if !ok {
		return models.ShelfItem{}, false
	}
	return *item, true
}

// ShowExplicit shows and focuses the panel on user request. No watchdog.
func (p *Panel) ShowExplicit() {
	p.sensorShown = false
	p.watchdog = false
	p.show(true)
}

// ShowFromSensor shows the panel as a drop target for an edge drag without
// taking focus from the drag source, and arms the drag-cancel watchdog.
func (p *Panel) ShowFromSensor() {
	p.sensorShown = true
	p.watchdog = true
	p.show(false)
}

func (p *Panel) show(activate bool) {
	p.Reposition()
	p.visible = true
	p.View.Show(activate)
	p.startFade(1, false)
}

// HideSoft fades the panel out and hides it when the fade completes.
func (p *Panel) HideSoft() {
	if !p.visible {
		return
	}
	p.startFade(0, true)
}

// hideNow hides the window and stops every timer the panel drives.
func (p *Panel) hideNow() {
	p.fade = nil
	p.hideOnFaded = false
	p.watchdog = false
	p.sensorShown = false
	p.visible = false
	p.View.Hide()
}

func (p *Panel) startFade(to float64, hide bool) {
	p.fade = &fade{from: p.opacity, to: to, start: p.now(), duration: p.tuning.FadeDuration}
	p.hideOnFaded = hide
}

// TickFrame advances a running fade.
func (p *Panel) TickFrame() {
	if p.fade == nil {
		return
	}
	now := p.now()
	p.opacity = p.fade.at(now)
	p.View.SetOpacity(p.opacity)
	if !p.fade.done(now) {
		return
	}
	p.fade = nil
	if p.hideOnFaded && p.opacity <= 0.01 {
		p.hideNow()
	}
}

// TickWatchdog checks whether an edge drag ended without a drop. Once the
// button is up the panel hides if it is still empty; either way the panel
// stops being a sensor-triggered drop target.
func (p *Panel) TickWatchdog() {
	if !p.sensorShown {
		p.watchdog = false
		return
	}
	down, err := p.Screen.PrimaryButtonDown()
	if err != nil || down {
		return
	}
	if p.Registry.Len() == 0 {
		p.HideSoft()
	}
	p.sensorShown = false
	p.watchdog = false
}

// Reposition moves the panel against the dock edge of the monitor under the
// cursor, falling back to the primary monitor.
func (p *Panel) Reposition() {
	area, err := p.workArea()
	if err != nil {
		log.Printf("[shelf] No monitor to place the panel on: %v", err)
		return
	}
	p.View.SetBounds(PanelBounds(area, p.Settings.DockSide(), p.tuning))
}

func (p *Panel) workArea() (models.Rect, error) {
	if pt, err := p.Screen.CursorPos(); err == nil {
		if area, err := p.Screen.MonitorWorkArea(pt); err == nil && !area.Empty() {
			return area, nil
		}
	}
	return p.Screen.PrimaryWorkArea()
}

// Drop imports a drag payload or clipboard content and returns the number
// of items added. Any import switches the panel to an explicit show.
func (p *Panel) Drop(pl payload.Payload) int {
	var added []*models.ShelfItem

	switch kind := pl.Resolve(); kind {
	case payload.Files:
		for _, path := range pl.Paths {
			if _, err := os.Stat(path); err != nil {
				log.Printf("[shelf] Skipping dropped path %s: %v", path, err)
				continue
			}
			added = append(added, models.NewFileItem(path))
		}
	case payload.Text:
		path, err := p.Temp.WriteText(pl.Text)
		if err != nil {
			log.Printf("[shelf] Failed to store dropped text: %v", err)
			break
		}
		added = append(added, models.NewShelfItem(models.KindTextTemp, path, ""))
	case payload.Image:
		path, err := p.Temp.WriteImage(pl.Image)
		if err != nil {
			log.Printf("[shelf] Failed to store dropped image: %v", err)
			break
		}
		added = append(added, models.NewShelfItem(models.KindImageTemp, path, path))
	}

	count := 0
	for _, item := range added {
		if p.Registry.Append(item) {
			count++
		}
	}
	// A drop that added nothing leaves a sensor-triggered show armed, so the
	// watchdog still hides the empty panel on release.
	if count == 0 {
		return 0
	}

	p.render()
	p.ShowExplicit()
	return count
}

// Paste imports the clipboard.
func (p *Panel) Paste() int {
	pl, err := p.Clipboard.Read()
	if err != nil {
		log.Printf("[shelf] Failed to read clipboard: %v", err)
		return 0
	}
	return p.Drop(pl)
}

// Remove deletes one item. RemoveAuto keeps pinned items.
func (p *Panel) Remove(id string, mode registry.RemoveMode) bool {
	if !p.Registry.Remove(id, mode) {
		return false
	}
	p.afterRemoval()
	return true
}

// ClearUnlocked removes every unpinned item.
func (p *Panel) ClearUnlocked() int {
	removed := p.Registry.RemoveUnpinned()
	if len(removed) > 0 {
		p.afterRemoval()
	}
	return len(removed)
}

func (p *Panel) afterRemoval() {
	p.render()
	if p.Registry.Len() == 0 {
		p.HideSoft()
	}
}

// TogglePin flips the pin of an item.
func (p *Panel) TogglePin(id string) {
	if _, ok := p.Registry.TogglePin(id); ok {
		p.render()
	}
}

// DragOut starts an OS drag of the given items and applies the drag-out
// removal policy to the result.
func (p *Panel) DragOut(ids []string) {
	dragged, paths := p.existing(ids)
	if len(paths) == 0 {
		return
	}
	dropped, err := p.Drag.DragFiles(paths)
	if err != nil {
		log.Printf("[shelf] Drag out failed: %v", err)
		return
	}
	p.FinishDragOut(dragged, dropped)
}

// FinishDragOut removes the unpinned dragged items after an accepted drop
// when the settings ask for it. A cancelled drag changes nothing.
func (p *Panel) FinishDragOut(ids []string, dropped bool) int {
	if !dropped || !p.Settings.RemoveAfterDragOut() {
		return 0
	}
	removed := 0
	for _, id := range ids {
		if p.Registry.Remove(id, registry.RemoveAuto) {
			removed++
		}
	}
	if removed > 0 {
		p.afterRemoval()
	}
	return removed
}

// CopySelection puts the given items on the clipboard as a file list.
func (p *Panel) CopySelection(ids []string) {
	_, paths := p.existing(ids)
	if len(paths) == 0 {
		return
	}
	if err := p.Clipboard.WriteFiles(paths); err != nil {
		log.Printf("[shelf] Failed to copy files to clipboard: %v", err)
	}
}

// Preview opens the first of the given items with its default application.
func (p *Panel) Preview(ids []string) {
	if len(ids) == 0 {
		return
	}
	if err := p.Dispatch(ids[0], ActionOpen); err != nil {
		log.Printf("[shelf] Preview failed: %v", err)
	}
}

// Dispatch runs a per-item action. Unknown item IDs are ignored, which
// covers actions racing with a removal.
func (p *Panel) Dispatch(id string, action Action) error {
	item, ok := p.Registry.Get(id)
	if !ok {
		return nil
	}

	switch action {
	case ActionOpen:
		return p.Shell.OpenDefault(item.SourcePath)
	case ActionReveal:
		if _, err := os.Stat(item.SourcePath); err != nil {
			return nil
		}
		return p.Shell.Reveal(item.SourcePath)
	case ActionCopyPath:
		return p.Clipboard.WriteText(item.SourcePath)
	case ActionTogglePin:
		p.TogglePin(id)
	case ActionRemove:
		p.Remove(id, registry.RemoveAuto)
	case ActionForceRemove:
		p.Remove(id, registry.RemoveForce)
	default:
		_, err := ParseAction(string(action))
		return err
	}
	return nil
}

// existing returns the IDs and paths of the given items whose files still
// exist, in the order given.
func (p *Panel) existing(ids []string) ([]string, []string) {
	var keptIDs, paths []string
	for _, id := range ids {
		item, ok := p.Registry.Get(id)
		if !ok {
			continue
		}
		if _, err := os.Stat(item.SourcePath); err != nil {
			continue
		}
		keptIDs = append(keptIDs, id)
		paths = append(paths, item.SourcePath)
	}
	return keptIDs, paths
}

func (p *Panel) render() {
	p.View.Render(p.Registry.Items())
}
