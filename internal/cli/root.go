// Package cli implements the edgeshelf commands.
package cli

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/edgeshelf/edgeshelf/internal/config"
)

var appDir string

var rootCmd = &cobra.Command{
	Use:   "edgeshelf",
	Short: "A drop shelf that slides in at the screen edge",
	Long: `EdgeShelf parks files, text snippets and images on a shelf docked to
the left or right screen edge. Drag something from Explorer to the dock edge
and the shelf opens; drag items back out when you need them.

Without a subcommand, EdgeShelf starts in the notification area.`,
	SilenceUsage: true,
	RunE:         runRun,
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&appDir, "app-dir", "", "settings directory (default: %APPDATA%\\EdgeShelf)")
	_ = rootCmd.PersistentFlags().MarkHidden("app-dir")
	addRunFlags(rootCmd)

	// Add subcommands (alphabetical)
	rootCmd.AddCommand(hideCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(versionCmd)
}

func resolvePaths() (config.Paths, error) {
	p, err := config.DefaultPaths()
	if err != nil {
		return config.Paths{}, err
	}
	if appDir != "" {
		p = config.NewPaths(appDir, p.TempDir)
	}
	return p, nil
}

// isTerminal reports whether f is attached to a terminal. Output meant for
// people is styled only then; piped output stays plain.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
