package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	diary "github.com/unowned-ai/diary/pkg"
	"github.com/unowned-ai/diary/pkg/calendar"
	"github.com/unowned-ai/diary/pkg/config"
	pkgdb "github.com/unowned-ai/diary/pkg/db"
	"github.com/unowned-ai/diary/pkg/diaries"
	"github.com/unowned-ai/diary/pkg/logging"
)

// app carries what every command needs once flags, env and config are resolved.
type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     config.Config
	logger  *zap.Logger
}

// extraCommands lets build-tagged files add commands to the root.
var extraCommands []func(a *app) *cobra.Command

var completionShells = []string{"bash", "zsh", "fish", "powershell"}

func newRootCmd() *cobra.Command {
	a := &app{v: config.New(), logger: zap.NewNop()}

	rootCmd := &cobra.Command{
		Use:           "diary",
		Short:         "A one-page-a-day diary with emotion tags and a word dictionary.",
		Version:       fmt.Sprintf("v%s", diary.Version),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.ReadConfigFile(a.v, a.cfgFile); err != nil {
				return err
			}
			cfg, err := config.Load(a.v)
			if err != nil {
				return err
			}
			a.cfg = cfg

			logger, err := logging.New(cfg.Verbose)
			if err != nil {
				return err
			}
			a.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "Path to a diary.yaml config file (default: searched in the user config dir)")
	flags.String(config.KeyDB, "", "Path to the database file (uses system-specific default if not provided)")
	flags.Bool(config.KeyWAL, false, "Enable SQLite WAL (Write-Ahead Logging) mode")
	flags.String(config.KeySync, "FULL", "SQLite synchronous pragma (OFF, NORMAL, FULL, EXTRA)")
	flags.String(config.KeyDateLayout, calendar.DefaultKeyLayout, "Go time layout used for diary date keys")
	flags.Bool(config.KeyVerbose, false, "Log debug output to stderr")
	for _, key := range []string{config.KeyDB, config.KeyWAL, config.KeySync, config.KeyDateLayout, config.KeyVerbose} {
		_ = a.v.BindPFlag(key, flags.Lookup(key))
	}

	rootCmd.AddCommand(
		newCompletionCmd(rootCmd),
		newVersionCmd(),
		newDBCmd(a),
		newWriteCmd(a),
		newShowCmd(a),
		newListCmd(a),
		newExportCmd(a),
		newImportCmd(a),
		newCalendarCmd(a),
		newWordsCmd(a),
		newFindCmd(a),
		newMCPCmd(a),
	)
	for _, extra := range extraCommands {
		rootCmd.AddCommand(extra(a))
	}
	return rootCmd
}

func newCompletionCmd(rootCmd *cobra.Command) *cobra.Command {
	return &cobra.Command{
		Use:   fmt.Sprintf("completion %s", strings.Join(completionShells, "|")),
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for diary.

The command prints a completion script to stdout. You can source it in your shell
or install it to the appropriate location for your shell to enable completions permanently.

Examples:

  Bash (current shell):
    $ source <(diary completion bash)

  Zsh:
    $ diary completion zsh > "${fpath[1]}/_diary"

  Fish:
    $ diary completion fish > ~/.config/fish/completions/diary.fish

  PowerShell:
    PS> diary completion powershell | Out-String | Invoke-Expression`,
		DisableFlagsInUseLine: true,
		ValidArgs:             completionShells,
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return rootCmd.GenBashCompletion(cmd.OutOrStdout())
			case "zsh":
				return rootCmd.GenZshCompletion(cmd.OutOrStdout())
			case "fish":
				return rootCmd.GenFishCompletion(cmd.OutOrStdout(), true)
			case "powershell":
				return rootCmd.GenPowerShellCompletion(cmd.OutOrStdout())
			default:
				return fmt.Errorf("unsupported shell: %s", args[0])
			}
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of diary",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), diary.Version)
		},
	}
}

func newDBCmd(a *app) *cobra.Command {
	dbCmd := &cobra.Command{
		Use:   "db",
		Short: "Manage the diary database",
		Long:  `Provides commands for managing the diary SQLite database, including schema upgrades.`,
	}

	dbCmd.AddCommand(&cobra.Command{
		Use:   "upgrade",
		Short: "Create or upgrade the diary database schema",
		Long: `Connects to the SQLite database at the configured path and brings the diarydb
component up to the current application schema version. A missing or empty database
is created and initialized.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			dbConn, dbPath, err := a.openDB()
			if err != nil {
				return err
			}
			defer dbConn.Close()

			if err := pkgdb.UpgradeDB(dbConn, dbPath, pkgdb.TargetSchemaVersion, a.logger); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Database %s is at schema version %d.\n", dbPath, pkgdb.TargetSchemaVersion)
			return nil
		},
	})

	dbCmd.AddCommand(&cobra.Command{
		Use:   "info",
		Short: "Show schema version, entry count and storage revision",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.openSession(false)
			if err != nil {
				return err
			}
			defer sess.Close()

			version, err := pkgdb.GetComponentSchemaVersion(sess.db, pkgdb.DiaryDBComponent)
			if err != nil {
				return err
			}
			count, err := sess.store.Count(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Database:       %s\n", sess.path)
			fmt.Fprintf(out, "Schema version: %d\n", version)
			fmt.Fprintf(out, "Entries:        %d\n", count)

			rev, found, err := sess.backend.Revision(cmd.Context(), diaries.StorageKey)
			if err != nil {
				return err
			}
			if found {
				fmt.Fprintf(out, "Revision:       %s\n", rev.ID)
				fmt.Fprintf(out, "Updated at:     %s\n", formatTimestamp(rev.UpdatedAt))
			} else {
				fmt.Fprintln(out, "Revision:       -")
			}
			return nil
		},
	})
	return dbCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
