package cmd

import (
	"github.com/spf13/cobra"
)

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "rhc",
		Short:         "Rural Health Connect (rhc): telemedicine portal from the terminal",
		Long:          "rhc signs you in as a patient, doctor, pharmacy or administrator, opens the portal views for that role, books consultations with online doctors, and can serve the same portal over HTTP.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp(errWriter{cmd: rootCmd})
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		return app.requireView(cmd)
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newLoginCmd(app),
		newLogoutCmd(app),
		newWhoamiCmd(app),
		newRoleCmd(app),
		newOpenCmd(app),
		newDoctorsCmd(app),
		newBookCmd(app),
		newBookingsCmd(app),
		newLocaleCmd(app),
		newTranslateCmd(),
		newServeCmd(app),
	)

	return rootCmd
}
