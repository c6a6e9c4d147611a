package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

const maskedKey = "bot_token"

func newConfigCmd(app *app) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage notification settings",
	}

	configCmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Show all config values",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				sections, err := app.config.Sections(cmd.Context())
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				for _, section := range sections {
					if _, err := fmt.Fprintf(out, "[%s]\n", section.Name); err != nil {
						return err
					}
					for _, value := range section.Values {
						display := value.Value
						if value.Key == maskedKey {
							display = maskSecret(display)
						}
						if _, err := fmt.Fprintf(out, "  %s = %s\n", value.Key, display); err != nil {
							return err
						}
					}
					if _, err := fmt.Fprintln(out); err != nil {
						return err
					}
				}

				return nil
			},
		},
		&cobra.Command{
			Use:   "get KEY",
			Short: "Get a config value",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				value, err := app.config.Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}

				_, err = fmt.Fprintln(cmd.OutOrStdout(), value)
				return err
			},
		},
		&cobra.Command{
			Use:   "set KEY VALUE",
			Short: "Set a config value",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := app.config.Set(cmd.Context(), args[0], args[1]); err != nil {
					return err
				}

				_, err := fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", args[0], args[1])
				return err
			},
		},
		&cobra.Command{
			Use:   "path",
			Short: "Print config file path",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), app.config.Path())
				return err
			},
		},
	)

	return configCmd
}

// maskSecret keeps the first and last four characters of long values.
func maskSecret(value string) string {
	if len(value) <= 8 {
		return value
	}

	return value[:4] + "***" + value[len(value)-4:]
}
