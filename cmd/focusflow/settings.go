package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/focusflow/internal/settings"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change saved settings",
	Long: `Saved settings override the config files. Flags override both.

Keys:
  ` + strings.Join(settings.Keys(), ", ") + `

Examples:
  focusflow settings show
  focusflow settings set focus 50
  focusflow settings set preset easy
  focusflow settings set focus ""    # unset
  focusflow settings reset`,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show saved settings",
	Args:  cobra.NoArgs,
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a setting (empty value unsets it)",
	Args:  cobra.ExactArgs(2),
	RunE:  runSettingsSet,
}

var settingsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all saved settings",
	Args:  cobra.NoArgs,
	RunE:  runSettingsReset,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsResetCmd)
}

func openSettings() (*settings.Store, error) {
	store, err := settings.Open(appName)
	if err != nil {
		return nil, err
	}
	return store, nil
}

func runSettingsShow(_ *cobra.Command, _ []string) error {
	store, err := openSettings()
	if err != nil {
		return err
	}
	st, err := store.Load()
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(settings.Keys()))
	for _, k := range settings.Keys() {
		v, err := st.Get(k)
		if err != nil {
			return err
		}
		if v == "" {
			v = dimStyle.Render("(unset)")
		}
		rows = append(rows, []string{k, v})
	}
	fmt.Println(renderTable([]string{"Key", "Value"}, rows))
	return nil
}

func runSettingsSet(_ *cobra.Command, args []string) error {
	store, err := openSettings()
	if err != nil {
		return err
	}
	st, err := store.Load()
	if err != nil {
		return err
	}

	if err := st.Set(args[0], args[1]); err != nil {
		if errors.Is(err, settings.ErrUnknownKey) {
			return fmt.Errorf("%w (known keys: %s)", err, strings.Join(settings.Keys(), ", "))
		}
		return err
	}
	if err := store.Save(st); err != nil {
		return err
	}

	v, _ := st.Get(args[0])
	if v == "" {
		fmt.Printf("%s unset\n", args[0])
	} else {
		fmt.Printf("%s = %s\n", args[0], v)
	}
	return nil
}

func runSettingsReset(_ *cobra.Command, _ []string) error {
	store, err := openSettings()
	if err != nil {
		return err
	}
	if err := store.Reset(); err != nil {
		return err
	}
	fmt.Println("Settings reset.")
	return nil
}
