package cmd

import (
	"errors"
	"fmt"

	"github.com/bnema/rural-health-connect/internal/application"
	"github.com/spf13/cobra"
)

// viewAnnotation marks a command as showing the portal view at that path.
const viewAnnotation = "rhc/view"

var (
	errLoginRequired = errors.New("login required")
	errForbidden     = errors.New("forbidden")
)

func withView(cmd *cobra.Command, path string) *cobra.Command {
	if cmd.Annotations == nil {
		cmd.Annotations = map[string]string{}
	}
	cmd.Annotations[viewAnnotation] = path
	return cmd
}

func (a *app) requireView(cmd *cobra.Command) error {
	path, ok := cmd.Annotations[viewAnnotation]
	if !ok {
		return nil
	}

	decision := a.guard.Decide(path)
	switch decision.Outcome {
	case application.OutcomeRender:
		return nil
	case application.OutcomeForbidden:
		return fmt.Errorf("%s: %w for role %s (home: %s)", path, errForbidden, a.sessions.Current().Role(), decision.Location)
	case application.OutcomeRedirectLogin:
		return fmt.Errorf("%s: %w, run `rhc login --role <role>`", path, errLoginRequired)
	default:
		return fmt.Errorf("%s: unknown view", path)
	}
}
