package commands

import (
	"context"
	"os"

	"bookstore-client/cmd/bookstore-cli/globals"
	"bookstore-client/internal/actions"
	"bookstore-client/internal/bookstore"
	"bookstore-client/internal/browse"
	"bookstore-client/internal/catalog"
	"bookstore-client/internal/termui"

	"github.com/spf13/cobra"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse the catalog interactively, type 'help' once inside for a list of commands.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		g := globals.Get(cmd.Context())

		// inside a session the user signs in with the session's own login command
		policy := actions.NewPolicy(g.Notifier, browse.LoginEntry, g.Tel)
		controller := catalog.NewController(
			g.Client,
			g.Client,
			termui.NewCatalogView(g.Out),
			policy,
			g.Tel,
			catalog.Options{
				PageSize: g.Config.PageSize,
				Timeout:  g.Config.Timeout(),
			},
		)

		session := browse.NewSession(browse.Options{
			Controller: controller,
			Auth:       g.Client,
			Policy:     policy,
			Out:        g.Out,
			OnLogin: func(ctx context.Context, _ bookstore.User) error {
				return g.Sessions.Save(ctx, g.Config.BaseUrl, g.Client.Cookies())
			},
		}, g.Tel)
		return session.Run(cmd.Context(), os.Stdin)
	},
}
