package cli

import (
	"fmt"
	"slices"
	"strings"

	"github.com/maizzle/cli/internal/config"
	"github.com/spf13/cobra"
)

var settingKeys = []string{
	config.KeyStarter,
	config.KeyBin,
	config.KeyUpdateCheck,
	config.KeyRegistry,
}

func newSettingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Manage user settings",
		Long: fmt.Sprintf(`Read and write settings stored at %s.

Keys: %s`, config.FilePath(), strings.Join(settingKeys, ", ")),
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "get <key>",
		Short: "Get a setting value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkSettingKey(args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), config.Get(args[0]))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a setting value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, value := args[0], args[1]
			if err := checkSettingKey(key); err != nil {
				return err
			}
			if err := config.Set(key, value); err != nil {
				return fmt.Errorf("setting %q: %w", key, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", key, value)
			return nil
		},
	})

	return cmd
}

func checkSettingKey(key string) error {
	if !slices.Contains(settingKeys, key) {
		return fmt.Errorf("unknown setting %q (known: %s)", key, strings.Join(settingKeys, ", "))
	}
	return nil
}
