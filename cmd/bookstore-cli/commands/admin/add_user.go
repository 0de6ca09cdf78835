package admin

import (
	"fmt"

	"bookstore-client/cmd/bookstore-cli/globals"
	"bookstore-client/internal/actions"
	"bookstore-client/internal/bookstore"

	"github.com/spf13/cobra"
)

var newUser struct {
	email string
	admin bool
}

func init() {
	addUserCmd.Flags().StringVar(&newUser.email, "email", "", "email address of the new account")
	addUserCmd.Flags().BoolVar(&newUser.admin, "admin", false, "grant the admin role")
	addUserCmd.MarkFlagRequired("email")
}

var addUserCmd = &cobra.Command{
	Use:   "add-user <username> <password>",
	Short: "Create an account with an explicit role.",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		role := bookstore.RoleUser
		if newUser.admin {
			role = bookstore.RoleAdmin
		}

		user, err := globals.Get(cmd.Context()).Client.RegisterUser(cmd.Context(), bookstore.RegisterRequest{
			UserName: args[0],
			Email:    newUser.email,
			Password: args[1],
			Role:     role,
		})
		return globals.Report(cmd.Context(), err, actions.Messages{
			Success: fmt.Sprintf("Created %s with role %s.", user.UserName, user.Role),
			Failure: "Failed to create user",
		})
	},
}
