package main

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/arthur-debert/phonebook/phonebook"
	"github.com/arthur-debert/phonebook/phonebook/commands"
	"github.com/arthur-debert/phonebook/phonebook/storage"
	"github.com/arthur-debert/phonebook/phonebook/store"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// CLI is the phonebook command line: an interactive session on the root
// command plus a few one-shot subcommands over the same snapshot.
type CLI struct {
	rootCmd   *cobra.Command
	viperInst *viper.Viper

	in     io.Reader
	out    io.Writer
	errOut io.Writer

	logger   *slog.Logger
	closeLog func() error
}

// NewCLI creates the CLI reading commands from in
func NewCLI(in io.Reader, out, errOut io.Writer) *CLI {
	cli := &CLI{
		viperInst: viper.New(),
		in:        in,
		out:       out,
		errOut:    errOut,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	cli.setupViperConfig()
	cli.createRootCommand()
	cli.addCommands()

	return cli
}

// setupViperConfig configures Viper with environment variables and config files
func (cli *CLI) setupViperConfig() {
	// PHONEBOOK_CONFIG names a config file explicitly
	if configFile := os.Getenv("PHONEBOOK_CONFIG"); configFile != "" {
		cli.viperInst.SetConfigFile(configFile)
	} else {
		cli.viperInst.SetConfigName("phonebook")
		cli.viperInst.SetConfigType("yaml")
		cli.viperInst.AddConfigPath(".")
		cli.viperInst.AddConfigPath("$HOME/.phonebook")
		cli.viperInst.AddConfigPath("/etc/phonebook")
	}

	cli.viperInst.SetEnvPrefix("PHONEBOOK")
	cli.viperInst.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	cli.viperInst.AutomaticEnv()

	// Read config file if it exists (ignore errors)
	_ = cli.viperInst.ReadInConfig()
}

func (cli *CLI) createRootCommand() {
	cli.rootCmd = &cobra.Command{
		Use:   "phonebook [snapshot]",
		Short: "Phonebook - an indexed phone book kept in a flat file",
		Long: `Phonebook reads commands from standard input and applies them to the book
stored in the snapshot file. The snapshot is rewritten after every command
that changes the book.

Commands (whitespace separated, arguments may span lines):
  add <last> <first> <middle> <phone>     append a record after the last position
  edit <pos> <last> <first> <middle> <phone>
  swap <i> <j>  remove <pos>  move <from> <to>
  find <prefix>  sort  clear  print  nop  exit

Configuration Sources (in order of precedence):
1. Command line arguments and flags
2. Environment variables (PHONEBOOK_*)
3. Configuration file (PHONEBOOK_CONFIG, ./phonebook.yaml,
   ~/.phonebook/phonebook.yaml, /etc/phonebook/phonebook.yaml)

Examples:
  phonebook book.txt
  echo 'add Doe John M 12345 print' | phonebook --snapshot book.txt
  PHONEBOOK_SNAPSHOT=book.txt phonebook export --format json`,

		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, closeLog, err := initLogging(
				cli.viperInst.GetString("log-level"),
				cli.viperInst.GetBool("verbose"),
				cli.errOut,
			)
			if err != nil {
				return NewConfigError("initialize logging", err.Error())
			}
			cli.logger = logger
			cli.closeLog = closeLog
			cli.logger.Debug("command started", "command", cmd.Name(), "args", args)
			return nil
		},

		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.executeSession(cmd, args)
		},
	}

	cli.rootCmd.SetIn(cli.in)
	cli.rootCmd.SetOut(cli.out)
	cli.rootCmd.SetErr(cli.errOut)

	cli.addGlobalFlags()
}

// addGlobalFlags adds persistent flags that apply to all commands
func (cli *CLI) addGlobalFlags() {
	flags := cli.rootCmd.PersistentFlags()

	flags.StringP("snapshot", "s", "", "Snapshot file path")
	flags.Bool("debug", false, "Dump both indices and check them after every command")
	flags.String("log-level", "warn", "Log level (debug|info|warn|error)")
	flags.BoolP("verbose", "v", false, "Also write logs to stderr")

	for _, flag := range []string{"snapshot", "debug", "log-level", "verbose"} {
		_ = cli.viperInst.BindPFlag(flag, flags.Lookup(flag))
	}
}

func (cli *CLI) addCommands() {
	cli.addExportCommand()
	cli.addCheckCommand()
	cli.addFindCommand()
}

// snapshotPath resolves the snapshot from the positional argument, then Viper
func (cli *CLI) snapshotPath(args []string) (string, error) {
	if len(args) > 0 && args[0] != "" {
		return args[0], nil
	}
	if path := cli.viperInst.GetString("snapshot"); path != "" {
		return path, nil
	}
	return "", NewConfigError("open snapshot", "snapshot path is required",
		CommonSuggestions.SetSnapshot,
		CommonSuggestions.CheckConfig,
	)
}

// openStore loads the snapshot named by args or configuration
func (cli *CLI) openStore(args []string) (*phonebook.Store, error) {
	path, err := cli.snapshotPath(args)
	if err != nil {
		return nil, err
	}

	s, err := phonebook.Open(path, store.WithLogger(cli.logger))
	if err != nil {
		return nil, NewStoreError("open snapshot", err, storeSuggestions(err)...)
	}
	return s, nil
}

func storeSuggestions(err error) []string {
	var parseErr *storage.ParseError
	switch {
	case errors.As(err, &parseErr):
		return []string{CommonSuggestions.CheckFile}
	case errors.Is(err, store.ErrLocked):
		return []string{CommonSuggestions.RetryLater}
	case errors.Is(err, os.ErrPermission):
		return []string{CommonSuggestions.CheckPerms}
	}
	return nil
}

// executeSession runs the interactive loop until exit or end of input
func (cli *CLI) executeSession(cmd *cobra.Command, args []string) error {
	s, err := cli.openStore(args)
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	logger := cli.logger.With("session", uuid.NewString())
	logger.Info("session started", "snapshot", s.Path(), "entries", s.Len())

	session := commands.NewSession(s, cli.in, cli.out,
		commands.WithDebug(cli.viperInst.GetBool("debug")),
		commands.WithSessionLogger(logger),
	)
	if err := session.Run(cmd.Context()); err != nil {
		return WrapError("run session", err)
	}

	logger.Info("session ended", "entries", s.Len())
	return nil
}

// Execute runs the CLI
func (cli *CLI) Execute() error {
	err := cli.rootCmd.Execute()
	if cli.closeLog != nil {
		_ = cli.closeLog()
		cli.closeLog = nil
	}
	return err
}

// GetRootCommand returns the root Cobra command for testing
func (cli *CLI) GetRootCommand() *cobra.Command {
	return cli.rootCmd
}
