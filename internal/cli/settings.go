package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/edgeshelf/edgeshelf/internal/config"
	"github.com/edgeshelf/edgeshelf/internal/models"
	"github.com/edgeshelf/edgeshelf/internal/platform"
)

// Setting keys as they appear in settings.json.
const (
	keyDockSide           = "dock_side"
	keyRemoveAfterDragOut = "remove_after_drag_out"
	keyAutostart          = "autostart"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change settings",
	Long: `Show or change the settings stored in settings.json.

A running EdgeShelf picks up changes made here within a moment.`,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the current settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		paths, err := resolvePaths()
		if err != nil {
			return err
		}
		store := config.OpenStore(paths.SettingsFile())
		return printSettings(cmd.OutOrStdout(), store, isTerminal(os.Stdout))
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a setting",
	Long: `Change a setting.

Keys:
  dock_side              left | right
  remove_after_drag_out  true | false
  autostart              true | false (also updates the Windows Run entry)`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var tuningWrite bool

var settingsTuningCmd = &cobra.Command{
	Use:   "tuning",
	Short: "Print the effective tuning values",
	Long: `Print the sensor and panel tuning in effect, as YAML.

With --write the values are saved to tuning.yaml, giving a complete file to
edit. Tuning changes apply the next time EdgeShelf starts.`,
	Args: cobra.NoArgs,
	RunE: runSettingsTuning,
}

func init() {
	settingsTuningCmd.Flags().BoolVar(&tuningWrite, "write", false, "save the values to tuning.yaml")

	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsTuningCmd)
}

func runSettingsTuning(cmd *cobra.Command, args []string) error {
	paths, err := resolvePaths()
	if err != nil {
		return err
	}
	tuning, err := config.LoadTuning(paths.TuningFile())
	if err != nil {
		return fmt.Errorf("failed to load tuning: %w", err)
	}

	out := cmd.OutOrStdout()
	if tuningWrite {
		if err := config.SaveTuning(paths.TuningFile(), tuning); err != nil {
			return fmt.Errorf("failed to save tuning: %w", err)
		}
		fmt.Fprintln(out, styleSuccess.Render("Wrote "+paths.TuningFile()))
		return nil
	}

	data, err := yaml.Marshal(tuning)
	if err != nil {
		return fmt.Errorf("failed to encode tuning: %w", err)
	}
	_, err = out.Write(data)
	return err
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]
	paths, err := resolvePaths()
	if err != nil {
		return err
	}
	if err := paths.EnsureAppDir(); err != nil {
		return fmt.Errorf("failed to create app dir: %w", err)
	}
	store := config.OpenStore(paths.SettingsFile())

	next := store.Current()
	if err := applySetting(&next, key, value); err != nil {
		return err
	}

	if key == keyAutostart && next.Autostart != store.Current().Autostart {
		if err := (platform.Autostart{}).SetAutostart(next.Autostart); err != nil {
			return fmt.Errorf("failed to update autostart entry: %w", err)
		}
	}

	if err := store.Update(func(s *models.Settings) { *s = next }); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), styleSuccess.Render(fmt.Sprintf("%s = %s", key, value)))
	return nil
}

// applySetting parses value and stores it under key.
func applySetting(s *models.Settings, key, value string) error {
	switch key {
	case keyDockSide:
		side, ok := models.ParseDockSide(strings.ToLower(value))
		if !ok {
			return fmt.Errorf("invalid %s %q (want left or right)", key, value)
		}
		s.DockSide = side
	case keyRemoveAfterDragOut, keyAutostart:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid %s %q (want true or false)", key, value)
		}
		if key == keyAutostart {
			s.Autostart = b
		} else {
			s.RemoveAfterDragOut = b
		}
	default:
		return fmt.Errorf("unknown setting %q (want %s, %s or %s)", key, keyDockSide, keyRemoveAfterDragOut, keyAutostart)
	}
	return nil
}

// printSettings writes a styled listing to a terminal and JSON otherwise.
func printSettings(w io.Writer, store *config.Store, styled bool) error {
	s := store.Current()
	if !styled {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	}

	fmt.Fprintf(w, "  %s\n", styleBrand.Render("EdgeShelf settings"))
	fmt.Fprintf(w, "    %s  %s\n", styleLabel.Render(keyDockSide+"            "), styleValue.Render(string(s.DockSide)))
	fmt.Fprintf(w, "    %s  %s\n", styleLabel.Render(keyRemoveAfterDragOut), styleValue.Render(strconv.FormatBool(s.RemoveAfterDragOut)))
	fmt.Fprintf(w, "    %s  %s\n", styleLabel.Render(keyAutostart+"            "), styleValue.Render(strconv.FormatBool(s.Autostart)))
	fmt.Fprintf(w, "    %s\n", styleHint.Render(store.Path()))
	return nil
}
