package commands

import (
	"errors"
	"fmt"

	"bookstore-client/cmd/bookstore-cli/globals"
	"bookstore-client/internal/actions"
	"bookstore-client/internal/bookstore"
	"bookstore-client/internal/termui"

	"github.com/spf13/cobra"
)

const report_cli_logout = "cli.logout"

var loginCmd = &cobra.Command{
	Use:   "login <username> <password>",
	Short: "Sign in, the session is kept until you log out.",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		g := globals.Get(cmd.Context())
		user, err := g.Client.Login(cmd.Context(), args[0], args[1])
		if errors.Is(err, bookstore.ErrAuthRequired) {
			g.Notifier.Fail("Invalid username or password.")
			return globals.ErrReported
		}
		err = globals.Report(cmd.Context(), err, actions.Messages{
			Success: fmt.Sprintf("Welcome, %s!", user.UserName),
			Failure: "Login failed",
		})
		if err != nil {
			return err
		}
		return g.Sessions.Save(cmd.Context(), g.Config.BaseUrl, g.Client.Cookies())
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "End the current session.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		g := globals.Get(cmd.Context())

		// the local session is dropped even if the server could not be told
		err := g.Client.Logout(cmd.Context())
		if err != nil && !errors.Is(err, bookstore.ErrAuthRequired) {
			g.Tel.ReportWarning(report_cli_logout, err)
		}
		err = g.Client.ClearCookies()
		if err != nil {
			return err
		}
		err = g.Sessions.Clear(cmd.Context(), g.Config.BaseUrl)
		if err != nil {
			return err
		}
		g.Notifier.Notify("Logged out.")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show who is signed in and what they can do.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		g := globals.Get(cmd.Context())
		user, err := g.Client.Me(cmd.Context())
		if errors.Is(err, bookstore.ErrAuthRequired) {
			termui.RenderSession(g.Out, nil, cmd.Root().Name())
			return nil
		}
		if err != nil {
			return globals.Report(cmd.Context(), err, actions.Messages{Failure: "Failed to load profile"})
		}
		termui.RenderSession(g.Out, &user, cmd.Root().Name())
		return nil
	},
}

var registerEmail string

func init() {
	registerCmd.Flags().StringVar(&registerEmail, "email", "", "email address of the new account")
	registerCmd.MarkFlagRequired("email")
}

var registerCmd = &cobra.Command{
	Use:   "register <username> <password>",
	Short: "Create a new account.",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		g := globals.Get(cmd.Context())
		user, err := g.Client.Register(cmd.Context(), bookstore.RegisterRequest{
			UserName: args[0],
			Email:    registerEmail,
			Password: args[1],
		})
		return globals.Report(cmd.Context(), err, actions.Messages{
			Success: fmt.Sprintf("Account %s created, you can now log in.", user.UserName),
			Failure: "Registration failed",
		})
	},
}
