package cmd

import (
	"fmt"
	"strings"

	"github.com/bnema/rural-health-connect/internal/domain"
	"github.com/bnema/rural-health-connect/internal/i18n"
	"github.com/spf13/cobra"
)

func newLocaleCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "locale",
		Short: "Show or change the display language",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "get",
			Short: "Print the current language",
			RunE: func(cmd *cobra.Command, _ []string) error {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), app.locales.Current(cmd.Context()))
				return err
			},
		},
		&cobra.Command{
			Use:   "set <en|hi|pa>",
			Short: "Change the language; kept across logout",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				locale, err := domain.ParseLocale(args[0])
				if err != nil {
					return err
				}
				if err := app.locales.Set(cmd.Context(), locale); err != nil {
					return fmt.Errorf("set locale: %w", err)
				}

				_, err = fmt.Fprintf(cmd.OutOrStdout(), "Language set to %s\n", locale)
				return err
			},
		},
	)

	return cmd
}

func newTranslateCmd() *cobra.Command {
	var (
		localeName string
		vars       []string
	)

	cmd := &cobra.Command{
		Use:   "translate <key>",
		Short: "Look up a translation key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			values := make(map[string]string, len(vars))
			for _, v := range vars {
				name, value, ok := strings.Cut(v, "=")
				if !ok || name == "" {
					return fmt.Errorf("invalid --var %q, want name=value", v)
				}
				values[name] = value
			}

			_, err := fmt.Fprintln(cmd.OutOrStdout(), i18n.TranslateWith(domain.Locale(localeName), args[0], values))
			return err
		},
	}

	cmd.Flags().StringVar(&localeName, "locale", string(domain.DefaultLocale), "Locale (en, hi, pa)")
	cmd.Flags().StringArrayVar(&vars, "var", nil, "Interpolation variable as name=value (repeatable)")

	return cmd
}
