package cmd

import (
	"os"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/patchstorage/patchbot/internal/output"
	"github.com/patchstorage/patchbot/internal/uploader"
	"github.com/patchstorage/patchbot/internal/util"
)

func newListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list [target|all]",
		Short: "List prepared archives and manifests in the dist directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			selector := "all"
			if len(args) == 1 {
				selector = args[0]
			}

			app := MustApp()

			items, err := uploader.Collect(app.Config.DistDir, selector)
			if err != nil {
				return err
			}
			if len(items) == 0 {
				app.Out.Info("dist directory is empty; run prepare first")
				return nil
			}

			if app.Out.IsJSON() {
				records := make([]interface{}, 0, len(items))
				for _, item := range items {
					records = append(records, item.Record)
				}
				return app.Out.JSON(records)
			}

			rows := make([]table.Row, 0, len(items))
			for _, item := range items {
				rec := item.Record

				size := "missing"
				if stat, err := os.Stat(item.ArchivePath); err == nil {
					size = humanize.Bytes(uint64(stat.Size()))
				}

				status := "ready"
				if rec.Incomplete {
					status = "incomplete"
				}

				rows = append(rows, table.Row{
					rec.Slug,
					rec.Target,
					util.TruncateString(rec.Title, 32),
					rec.Revision,
					rec.License.ID,
					size,
					output.StatusColor(status),
				})
			}

			app.Out.Println(renderTable(
				table.Row{"SLUG", "TARGET", "TITLE", "REVISION", "LICENSE", "SIZE", "STATUS"},
				rows, 6))
			return nil
		},
	}
}
