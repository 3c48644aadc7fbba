package sensor

// Window classes that host a file list: the Explorer item view and the
// classic list view used by the desktop.
var viewClasses = map[string]bool{
	"DirectUIHWND":     true,
	"SysListView32":    true,
	"SHELLDLL_DefView": true,
}

// Top-level classes of File Explorer windows.
var explorerFrames = map[string]bool{
	"CabinetWClass": true,
	"ExploreWClass": true,
}

// Top-level classes hosting the desktop icon layer.
var desktopFrames = map[string]bool{
	"Progman": true,
	"WorkerW": true,
}

// IsFileBrowsingSurface reports whether a window sits on a file browsing
// view. chain lists the class names from the window under the cursor up
// through its parents; root is the class of the top-level ancestor.
func IsFileBrowsingSurface(chain []string, root string) bool {
	if !explorerFrames[root] && !desktopFrames[root] {
		return false
	}
	for _, class := range chain {
		if viewClasses[class] {
			return true
		}
	}
	return false
}
