package cmd

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/patchstorage/patchbot/internal/cmdutil"
)

func newTargetsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "targets",
		Short: "List the build targets registered for the platform",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app := MustApp()

			ctx, cancel := cmdutil.ContextWithTimeout(cmd.Context(), cmdutil.DefaultTimeout)
			defer cancel()

			platform, err := app.API.GetPlatform(ctx, app.Config.PlatformID)
			if err != nil {
				return err
			}

			if app.Out.IsJSON() {
				return app.Out.JSON(platform)
			}

			rows := make([]table.Row, 0, len(platform.Targets))
			for _, t := range platform.Targets {
				rows = append(rows, table.Row{t.ID, t.Slug, t.Name})
			}

			app.Out.Println(renderTable(table.Row{"ID", "SLUG", "NAME"}, rows, 1))
			return nil
		},
	}
}
