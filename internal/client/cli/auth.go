package cli

import (
	"bufio"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophtodo/internal/shared"
	"github.com/spf13/cobra"
)

// credentialsFlags collects the email (flag or prompt) and the password.
type credentialsFlags struct {
	Email string
}

func (f *credentialsFlags) read(cmd *cobra.Command) (string, []byte, error) {
	reader := bufio.NewReader(cmd.InOrStdin())

	email := f.Email
	if email == "" {
		var err error
		email, err = GetSimpleText(reader, "Enter email", cmd.ErrOrStderr())
		if err != nil {
			return "", nil, err
		}
	}

	password, err := GetPassword(cmd.InOrStdin(), reader, cmd.ErrOrStderr())
	if err != nil {
		return "", nil, err
	}
	if len(password) == 0 {
		return "", nil, errors.New("password must not be empty")
	}
	return email, password, nil
}

func newSignupCommand(opts *RootOptions) *cobra.Command {
	f := &credentialsFlags{}

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			email, password, err := f.read(cmd)
			if err != nil {
				return err
			}
			defer shared.WipeByteArray(password)

			if err := opts.api.Signup(cmd.Context(), email, string(password)); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "User created")
			return nil
		},
	}

	cmd.Flags().StringVarP(&f.Email, "email", "e", "", "account email (prompted when omitted)")
	return cmd
}

func newLoginCommand(opts *RootOptions) *cobra.Command {
	f := &credentialsFlags{}

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and remember the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			email, password, err := f.read(cmd)
			if err != nil {
				return err
			}
			defer shared.WipeByteArray(password)

			if err := opts.api.Login(cmd.Context(), email, string(password)); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", email)
			return nil
		},
	}

	cmd.Flags().StringVarP(&f.Email, "email", "e", "", "account email (prompted when omitted)")
	return cmd
}

func newLogoutCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.api.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out successfully")
			return nil
		},
	}
}

func newWhoamiCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Print the email of the logged-in account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			email, err := opts.api.Email(cmd.Context())
			if err != nil {
				return explain(err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), email)
			return nil
		},
	}
}

func newPingCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check that the server is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.api.Ping(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ok")
			return nil
		},
	}
}
