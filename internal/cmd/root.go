// Package cmd wires the patchbot commands together.
package cmd

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/patchstorage/patchbot/internal/api"
	"github.com/patchstorage/patchbot/internal/config"
	"github.com/patchstorage/patchbot/internal/output"
)

var (
	rootCmd = &cobra.Command{
		Use:           "patchbot",
		Short:         "Package and publish LV2 plugin builds to Patchstorage",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return initApp(cmd)
		},
	}

	cfgFile         string
	overrideAPI     string
	overridePlugins string
	overrideDist    string
	overrideFormat  string
	debugEnabled    bool
	insecureTLS     bool

	appOnce sync.Once
	app     *App
)

var version = "dev"

// App carries global CLI state shared across commands.
type App struct {
	Config *config.Config
	API    *api.Client
	Out    *output.Writer
	Debug  bool
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// MustApp returns the initialized application context.
func MustApp() *App {
	if app == nil {
		panic("cli not initialized")
	}
	return app
}

func init() {
	cobra.OnInitialize(func() {
		color.NoColor = false
	})

	rootCmd.Version = version
	rootCmd.SetVersionTemplate("{{.Name}} version {{.Version}}\n")

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./patchbot.yaml)")
	rootCmd.PersistentFlags().StringVar(&overrideAPI, "api-url", "", "override API base URL")
	rootCmd.PersistentFlags().StringVar(&overridePlugins, "plugins-dir", "", "override plugin builds directory")
	rootCmd.PersistentFlags().StringVar(&overrideDist, "dist-dir", "", "override dist output directory")
	rootCmd.PersistentFlags().StringVar(&overrideFormat, "format", "", "set output format (table, json, quiet)")
	rootCmd.PersistentFlags().BoolVar(&debugEnabled, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&insecureTLS, "insecure", false, "skip TLS certificate verification when connecting to the API")

	rootCmd.AddCommand(
		newCompletionCommand(),
		newPrepareCommand(),
		newPushCommand(),
		newListCommand(),
		newTargetsCommand(),
		newConfigCommand(),
	)
}

func newCompletionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh]",
		Short: "Generate shell completion script",
		Long: `Generate shell completion code for bash or zsh.

To load in current session:
  . <(patchbot completion bash)   # bash
  . <(patchbot completion zsh)    # zsh`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh"},
		Args:                  cobra.ExactValidArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			default:
				return fmt.Errorf("unsupported shell: %s", args[0])
			}
		},
	}
}

// isCompletionCommand returns true if the user is running a shell completion
// subcommand. We skip app init for completion since it's not needed.
func isCompletionCommand() bool {
	for _, arg := range os.Args[1:] {
		if arg == "completion" {
			return true
		}
		if len(arg) > 0 && arg[0] != '-' {
			return false // first non-flag is the command name; not completion
		}
	}
	return false
}

func initApp(_ *cobra.Command) error {
	if isCompletionCommand() {
		return nil
	}
	var initErr error
	appOnce.Do(func() {
		cfgPath := cfgFile
		if cfgPath == "" {
			cfgPath = config.DefaultConfigFile
		}

		cfg, err := config.Load(cfgPath)
		if err != nil {
			initErr = err
			return
		}

		if overrideAPI != "" {
			cfg.APIBaseURL = strings.TrimRight(overrideAPI, "/")
		}
		if overridePlugins != "" {
			cfg.PluginsDir = overridePlugins
		}
		if overrideDist != "" {
			cfg.DistDir = overrideDist
		}
		if overrideFormat != "" {
			cfg.OutputFormat = overrideFormat
		}

		apiClient := api.NewClient(cfg.APIBaseURL,
			api.WithTimeout(30*time.Second),
			api.WithUserAgent("patchbot/"+version),
			api.WithDebug(debugEnabled),
			api.WithInsecureSkipVerify(insecureTLS),
		)

		app = &App{
			Config: cfg,
			API:    apiClient,
			Out:    output.NewWriter(cfg.OutputFormat),
			Debug:  debugEnabled,
		}
	})

	if initErr != nil {
		return initErr
	}

	if app == nil {
		return fmt.Errorf("failed to initialize cli")
	}

	return nil
}

func printDebug(format string, args ...interface{}) {
	debug := (app != nil && app.Debug) || os.Getenv("PATCHBOT_DEBUG") == "1" || os.Getenv("PATCHBOT_DEBUG") == "true"
	if debug {
		msg := fmt.Sprintf(format, args...)
		color.New(color.FgHiBlack).Fprintln(os.Stderr, "[debug]", msg)
	}
}
