package main

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/arthur-debert/phonebook/phonebook/commands"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

var exportFormats = []string{"text", "json", "yaml"}

// formatValue is a flag value restricted to exportFormats
type formatValue string

var _ pflag.Value = (*formatValue)(nil)

func (f *formatValue) String() string { return string(*f) }

func (f *formatValue) Set(v string) error {
	if !slices.Contains(exportFormats, v) {
		return fmt.Errorf("must be one of %s", strings.Join(exportFormats, ", "))
	}
	*f = formatValue(v)
	return nil
}

func (f *formatValue) Type() string { return "format" }

func (cli *CLI) addExportCommand() {
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Write every entry of the snapshot to stdout",
		Long: `Write every entry in position order.

Examples:
  phonebook -s book.txt export                 # position<TAB>last first middle phone
  phonebook -s book.txt export --format json`,

		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.executeExport(cli.viperInst.GetString("format"))
		},
	}
	format := formatValue("text")
	exportCmd.Flags().VarP(&format, "format", "f", "Output format (text|json|yaml)")
	_ = cli.viperInst.BindPFlag("format", exportCmd.Flags().Lookup("format"))

	cli.rootCmd.AddCommand(exportCmd)
}

func (cli *CLI) addCheckCommand() {
	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "Load the snapshot and check both indices agree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.executeCheck()
		},
	}
	cli.rootCmd.AddCommand(checkCmd)
}

func (cli *CLI) addFindCommand() {
	findCmd := &cobra.Command{
		Use:   "find <prefix>",
		Short: "List the entries whose phone starts with prefix",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.executeFind(args[0])
		},
	}
	cli.rootCmd.AddCommand(findCmd)
}

func (cli *CLI) executeExport(format string) error {
	// env and config values bypass the flag check
	if !slices.Contains(exportFormats, format) {
		return NewValidationError("export", "format", format,
			"Use one of: "+strings.Join(exportFormats, ", "))
	}

	s, err := cli.openStore(nil)
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	entries := s.Entries()
	cli.logger.Debug("export", "format", format, "entries", len(entries))

	switch format {
	case "json":
		enc := json.NewEncoder(cli.out)
		enc.SetIndent("", "  ")
		err = enc.Encode(entries)
	case "yaml":
		enc := yaml.NewEncoder(cli.out)
		enc.SetIndent(2)
		if err = enc.Encode(entries); err == nil {
			err = enc.Close()
		}
	default:
		err = commands.WriteEntries(cli.out, entries)
	}
	if err != nil {
		return fmt.Errorf("failed to export: %w", err)
	}
	return nil
}

func (cli *CLI) executeCheck() error {
	s, err := cli.openStore(nil)
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	if err := s.Verify(); err != nil {
		return NewStoreError("check snapshot", err)
	}
	_, err = fmt.Fprintf(cli.out, "ok: %d entries\n", s.Len())
	return err
}

func (cli *CLI) executeFind(prefix string) error {
	s, err := cli.openStore(nil)
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	return commands.WriteEntries(cli.out, s.Find(prefix))
}
