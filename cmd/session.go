package cmd

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/bnema/rural-health-connect/internal/application"
	"github.com/bnema/rural-health-connect/internal/domain"
	"github.com/spf13/cobra"
)

var errLoginRejected = errors.New("login rejected")

func newLoginCmd(app *app) *cobra.Command {
	var (
		roleName string
		phone    string
		code     string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in with a phone number and a 4-digit code",
		RunE: func(cmd *cobra.Command, _ []string) error {
			role, err := domain.ParseRole(roleName)
			if err != nil {
				return err
			}
			if !application.ValidContactHandle(phone) {
				return fmt.Errorf("%w: phone number needs at least 10 characters", errLoginRejected)
			}

			ok, err := app.sessions.Login(cmd.Context(), phone, code, role)
			if err != nil {
				return fmt.Errorf("login: %w", err)
			}
			if !ok {
				return fmt.Errorf("%w: code must be exactly 4 digits", errLoginRejected)
			}

			identity, _ := app.sessions.Current().Identity()
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s (%s)\nhome: %s\n", identity.DisplayName, identity.Role, domain.HomePath(identity.Role))
			return nil
		},
	}

	cmd.Flags().StringVar(&roleName, "role", string(domain.RolePatient), "Role to sign in as (patient, doctor, pharmacy, admin)")
	cmd.Flags().StringVar(&phone, "phone", "", "Phone number")
	cmd.Flags().StringVar(&code, "code", "", "4-digit verification code")
	_ = cmd.MarkFlagRequired("phone")
	_ = cmd.MarkFlagRequired("code")

	return cmd
}

func newLogoutCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and forget the stored identity",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.sessions.Logout(cmd.Context()); err != nil {
				return fmt.Errorf("logout: %w", err)
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Signed out")
			return nil
		},
	}
}

type whoamiOutput struct {
	Authenticated bool   `json:"authenticated"`
	ID            string `json:"id,omitempty"`
	Name          string `json:"name,omitempty"`
	Role          string `json:"role,omitempty"`
	Phone         string `json:"phone,omitempty"`
	Email         string `json:"email,omitempty"`
}

func newWhoamiCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in identity",
		RunE: func(cmd *cobra.Command, _ []string) error {
			identity, ok := app.sessions.Current().Identity()

			if asJSON {
				out := whoamiOutput{Authenticated: ok}
				if ok {
					out.ID = string(identity.ID)
					out.Name = identity.DisplayName
					out.Role = string(identity.Role)
					out.Phone = identity.ContactHandle
					out.Email = identity.Email
				}
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(out)
			}

			if !ok {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Not signed in")
				return nil
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\nrole: %s\n", identity.DisplayName, identity.ID, identity.Role)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")

	return cmd
}

func newRoleCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "role",
		Short: "Inspect or change the acting role",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "switch <role>",
		Short: "Act as another role without signing in again (demo)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			role, err := domain.ParseRole(args[0])
			if err != nil {
				return err
			}

			if err := app.sessions.SwitchRole(cmd.Context(), role); err != nil {
				return fmt.Errorf("switch role: %w", err)
			}

			identity, _ := app.sessions.Current().Identity()
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Now acting as %s (%s)\nhome: %s\n", identity.DisplayName, identity.Role, domain.HomePath(identity.Role))
			return nil
		},
	})

	return cmd
}
