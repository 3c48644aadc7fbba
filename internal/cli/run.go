package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/edgeshelf/edgeshelf/internal/app"
	"github.com/edgeshelf/edgeshelf/internal/config"
)

var (
	runDock     string
	runNoSensor bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start EdgeShelf",
	Long: `Start EdgeShelf in the notification area.

If EdgeShelf is already running, the running instance shows its shelf and
this process exits.`,
	Args: cobra.NoArgs,
	RunE: runRun,
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the shelf (starting EdgeShelf if needed)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return startApp(app.CommandShow)
	},
}

var hideCmd = &cobra.Command{
	Use:   "hide",
	Short: "Hide the shelf of the running instance",
	Long: `Hide the shelf of the running instance.

If EdgeShelf is not running yet, it starts in the notification area with the
shelf hidden.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return startApp(app.CommandHide)
	},
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&runDock, "dock", "", "dock side to use and save (left or right)")
	cmd.Flags().BoolVar(&runNoSensor, "no-sensor", false, "start with edge-drag detection off")
}

func init() {
	addRunFlags(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	return startApp(app.CommandRun)
}

func startApp(command string) error {
	paths, err := resolvePaths()
	if err != nil {
		return fmt.Errorf("failed to resolve app directory: %w", err)
	}

	closer, err := config.SetupLogging(paths, isTerminal(os.Stderr))
	if err != nil {
		fmt.Fprintln(os.Stderr, styleWarning.Render("Logging to stderr only: "+err.Error()))
	}
	defer closer.Close()

	err = app.Run(app.Options{
		Paths:    paths,
		Dock:     runDock,
		NoSensor: runNoSensor,
		Command:  command,
	})
	if errors.Is(err, app.ErrElevated) {
		fmt.Fprintln(os.Stderr, styleError.Render("EdgeShelf cannot run as Administrator."))
	}
	return err
}
