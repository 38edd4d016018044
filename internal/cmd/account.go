package cmd

import (
	"errors"
	"fmt"

	"github.com/Egor213/LogKeeper/internal/controller/validators"
	"github.com/Egor213/LogKeeper/internal/service"
	"github.com/Egor213/LogKeeper/internal/session"
	"github.com/spf13/cobra"
)

func firstArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return ""
}

func newRegisterCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "register [name]",
		Short: "Create an account",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := newPrompter(cmd.InOrStdin(), cmd.ErrOrStderr())

			name, err := p.askIfEmpty(firstArg(args), "Login: ")
			if err != nil {
				return err
			}
			password, err := p.ask("Password: ")
			if err != nil {
				return err
			}
			confirm, err := p.ask("Confirm password: ")
			if err != nil {
				return err
			}
			if err := validators.ValidateRegistration(name, password, confirm); err != nil {
				return err
			}

			svc, closeFn, err := c.services(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			if err := svc.Register(cmd.Context(), name, password); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Account %s created.\n", name)
			return nil
		},
	}
}

func newLoginCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "login [name]",
		Short: "Log in; later commands act on this account",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if user, err := c.currentUser(); err == nil && len(args) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "Already logged in as %s.\n", user)
				return nil
			} else if err != nil && !errors.Is(err, session.ErrNotLoggedIn) {
				return err
			}

			p := newPrompter(cmd.InOrStdin(), cmd.ErrOrStderr())
			name, err := p.askIfEmpty(firstArg(args), "Login: ")
			if err != nil {
				return err
			}
			password, err := p.ask("Password: ")
			if err != nil {
				return err
			}

			svc, closeFn, err := c.services(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			user, err := svc.Authenticate(cmd.Context(), name, password)
			switch {
			case errors.Is(err, service.ErrUnknownUser):
				return fmt.Errorf("account %q not found, create it with `logkeeper register`", name)
			case errors.Is(err, service.ErrInvalidCredentials):
				return errors.New("wrong password")
			case err != nil:
				return err
			}

			if err := c.sessions.Save(user.Name); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Welcome, %s!\n", user.Name)
			return nil
		},
	}
}

func newLeaveCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "leave",
		Short: "Log out",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.sessions.Clear(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
			return nil
		},
	}
}
