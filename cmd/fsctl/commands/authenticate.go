package commands

import (
	"fmt"
	"os"

	"github.com/fivetwenty-io/formsynergy-client/internal/constants"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// NewAuthenticateCommand creates the authenticate command.
func NewAuthenticateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "authenticate",
		Short: "Authenticate and obtain an access point",
		Long:  "Run the shared-secret handshake now and store the access point in the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()

			if config.SecretKey == "" {
				secret, err := promptSecret()
				if err != nil {
					return err
				}

				config.SecretKey = secret
			}

			ctx := commandContext(cmd)

			app, err := newApp(ctx, config)
			if err != nil {
				return err
			}

			defer func() { _ = app.Close() }()

			err = app.API().Authenticate(ctx)
			if err != nil {
				return fmt.Errorf("authentication failed: %w", err)
			}

			accessPoint, _ := app.Session().Get(ctx, constants.SessionKeyAccessPoint)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Authenticated, access point %s\n", accessPoint)

			return nil
		},
	}
}

func promptSecret() (string, error) {
	fd := int(os.Stdin.Fd()) //nolint:gosec // file descriptors fit in int

	if !term.IsTerminal(fd) {
		return "", ErrNoTerminal
	}

	_, _ = fmt.Fprint(os.Stderr, "Secret key: ")

	secret, err := term.ReadPassword(fd)
	if err != nil {
		return "", fmt.Errorf("failed to read secret key: %w", err)
	}

	_, _ = fmt.Fprintln(os.Stderr)

	return string(secret), nil
}
