package shelf

import "github.com/edgeshelf/edgeshelf/internal/models"

// PanelBounds places the panel against the dock edge of area. The panel
// keeps a margin on every side and never exceeds the work area, though it
// never shrinks below the configured minimum size either.
func PanelBounds(area models.Rect, side models.DockSide, t models.PanelTuning) models.Rect {
	margin := t.Margin

	maxW := max(t.MinWidth, area.Width-margin*2)
	maxH := max(t.MinHeight, area.Height-margin*2)
	w := min(t.Width, maxW)
	h := min(t.Height, maxH)

	x := area.Right() - w - margin
	if side == models.DockLeft {
		x = area.X + margin
	}
	y := area.Y + margin

	x = max(area.X+margin, min(x, area.Right()-w-margin))
	y = max(area.Y+margin, min(y, area.Bottom()-h-margin))

	return models.Rect{X: x, Y: y, Width: w, Height: h}
}
