package cli

import (
	"fmt"
	"path/filepath"
	"time"

	"splittimer/internal/app"
	"splittimer/internal/config"
	"splittimer/internal/platform"
	"splittimer/internal/storage"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Launcher opens the timer for a loaded run. app.Run in production.
type Launcher func(options app.Options) error

type rootOptions struct {
	cfgFile   string
	configDir string
	launch    Launcher
	v         *viper.Viper
}

// Execute runs the splittimer command line.
func Execute() error {
	return NewRootCommand(app.Run).Execute()
}

// NewRootCommand builds the command tree. launch is called by the root
// command once settings and the run file are resolved.
func NewRootCommand(launch Launcher) *cobra.Command {
	return newRootCommand(&rootOptions{launch: launch})
}

func newRootCommand(opts *rootOptions) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "splittimer [run-file]",
		Short: "Manual split timer with warning and bad tiers",
		Long: `splittimer times a fixed list of named segments. The active segment is
advanced, switched or paused by hand and the run is exported as JSON on exit.

The run file defaults to order.json in the working directory.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.initConfig(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.runTimer(args)
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "settings file (default is <user config dir>/splittimer/settings.yaml)")

	flags := rootCmd.Flags()
	flags.String("export-dir", "", "directory for JSON exports")
	flags.Duration("poll-interval", 100*time.Millisecond, "display refresh interval")
	flags.Bool("sound", true, "play a cue when a split enters a higher tier")
	flags.Float64("warning", 0, "warning threshold in seconds, overrides the run file")
	flags.Float64("bad", 0, "bad threshold in seconds, overrides the run file")
	flags.String("metrics-file", "", "also write a Prometheus textfile on export")

	rootCmd.AddCommand(newSummaryCommand())
	rootCmd.AddCommand(newValidateCommand())
	rootCmd.AddCommand(newInitCommand())
	return rootCmd
}

// initConfig resolves settings from defaults, the settings file, the
// environment and the flags, in that order of precedence.
func (opts *rootOptions) initConfig(cmd *cobra.Command) error {
	if opts.configDir == "" {
		configDir, err := platform.ConfigDir(app.Name)
		if err != nil {
			return err
		}
		opts.configDir = configDir
	}

	v, err := config.NewViper(opts.cfgFile, opts.configDir)
	if err != nil {
		return err
	}

	bindings := map[string]string{
		config.KeyExportDir:      "export-dir",
		config.KeyPollInterval:   "poll-interval",
		config.KeySound:          "sound",
		config.KeyWarningSeconds: "warning",
		config.KeyBadSeconds:     "bad",
		config.KeyMetricsFile:    "metrics-file",
	}
	for key, name := range bindings {
		flag := cmd.Flags().Lookup(name)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("bind flag %s: %w", name, err)
		}
	}

	opts.v = v
	return nil
}

func (opts *rootOptions) settingsPath() string {
	if opts.cfgFile != "" {
		return opts.cfgFile
	}
	return config.SettingsPath(opts.configDir)
}

func (opts *rootOptions) runTimer(args []string) error {
	settings, err := config.Load(opts.v)
	if err != nil {
		return err
	}

	runFile := settings.RunFile
	if len(args) == 1 {
		runFile = args[0]
	}
	def, err := storage.LoadRun(runFile)
	if err != nil {
		return err
	}

	runKey, err := filepath.Abs(runFile)
	if err != nil {
		runKey = runFile
	}

	return opts.launch(app.Options{
		Settings:     settings,
		SettingsPath: opts.settingsPath(),
		Run:          settings.ApplyThresholds(def),
		RunKey:       runKey,
	})
}
