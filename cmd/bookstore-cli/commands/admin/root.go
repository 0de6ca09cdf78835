package admin

import (
	"github.com/spf13/cobra"
)

var RootCmd = &cobra.Command{
	Use:   "admin",
	Short: "The 'admin' subcommand manages the catalog and users, it requires an admin session.",
}

func init() {
	RootCmd.AddCommand(addBookCmd)
	RootCmd.AddCommand(addUserCmd)
}
