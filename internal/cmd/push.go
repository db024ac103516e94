package cmd

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/patchstorage/patchbot/internal/cmdutil"
	"github.com/patchstorage/patchbot/internal/uploader"
	"github.com/patchstorage/patchbot/internal/util"
)

func newPushCommand() *cobra.Command {
	var (
		username   string
		password   string
		noProgress bool
		assumeYes  bool
	)

	cmd := &cobra.Command{
		Use:   "push [target|all]",
		Short: "Upload prepared archives and manifests to Patchstorage",
		Long: `Authenticate against the Patchstorage API, then upload every prepared
archive under the dist directory together with its manifest. A failure
on one plugin is reported and the rest of the batch continues.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			selector := "all"
			if len(args) == 1 {
				selector = args[0]
			}

			app := MustApp()

			// The API decides on its own whether a re-submitted plugin
			// updates the existing entry or creates a duplicate.
			app.Out.Warning("re-pushing a plugin that already exists on %s may create a duplicate entry",
				app.API.BasePublicURL())

			items, err := uploader.Collect(app.Config.DistDir, selector)
			if err != nil {
				return err
			}
			if len(items) == 0 {
				app.Out.Info("nothing to push; run prepare first")
				return nil
			}

			var incomplete int
			for _, item := range items {
				if item.Record.Incomplete {
					incomplete++
					app.Out.Warning("%s: manifest is incomplete (missing %s)",
						item.Record.Basename(), strings.Join(item.Record.Missing, ", "))
				}
			}
			if incomplete > 0 && !assumeYes {
				ok, err := util.PromptConfirm("Push incomplete manifests as-is?", true)
				if err != nil {
					return err
				}
				if !ok {
					app.Out.Info("aborted; edit the manifests in %s and re-run", app.Config.DistDir)
					return nil
				}
			}

			if username == "" {
				username, err = util.PromptInput("Username")
				if err != nil {
					return err
				}
			}
			username = strings.TrimSpace(username)
			if username == "" {
				return errors.New("username is required")
			}

			if password == "" {
				password, err = util.PromptPassword("Password")
				if err != nil {
					return err
				}
			}

			authCtx, cancelAuth := cmdutil.ContextWithTimeout(cmd.Context(), cmdutil.DefaultTimeout)
			defer cancelAuth()

			if err := app.API.Authenticate(authCtx, username, password); err != nil {
				return err
			}
			printDebug("Authenticated as %s", username)

			// Target ids tag uploaded files server-side. Losing them is
			// not fatal; the files just go up untagged.
			var targets map[string]int
			platform, err := app.API.GetPlatform(authCtx, app.Config.PlatformID)
			if err != nil {
				app.Out.Warning("could not resolve platform targets: %v", err)
			} else {
				targets = platform.TargetMap()
			}

			ctx, cancel := cmdutil.ContextWithTimeout(cmd.Context(), cmdutil.UploadTimeout)
			defer cancel()

			u := uploader.New(app.API, uploader.Options{
				Targets:      targets,
				ShowProgress: !noProgress && !app.Out.IsJSON(),
				Out:          app.Out,
				Debug:        app.Debug,
			})
			summary := u.Run(ctx, items)

			if app.Out.IsJSON() {
				return app.Out.JSON(items)
			}

			app.Out.Info("%s", uploader.FormatSummary(summary))
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "Patchstorage username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "password (not recommended to use via flag)")
	cmd.Flags().BoolVar(&noProgress, "no-progress", false, "disable upload progress bars")
	cmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "push incomplete manifests without asking")

	return cmd
}
