package main

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"crewmap/internal/auth"
	"crewmap/internal/config"
	"crewmap/internal/ui"
)

func hashPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password [PASSWORD]",
		Short: "Print a bcrypt hash for the admin password",
		Long: `Hash a password for auth.admin_password_hash in the config file.

The password is read from the first line of stdin when not given as an
argument, which keeps it out of shell history.

  echo 'correct horse' | crewmap hash-password`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var password string
			if len(args) == 1 {
				password = args[0]
			} else {
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return errors.New("no password given")
				}
				password = strings.TrimRight(line, "\r\n")
			}

			hash, err := auth.HashPassword(password)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), hash)
			fmt.Fprintln(cmd.ErrOrStderr(), ui.Subtle.Sprintf("set auth.admin_password_hash, or export %s to use a plain password", config.EnvAdminPassword))
			return nil
		},
	}
}
