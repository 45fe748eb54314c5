package main

import (
	"bytes"
	"fmt"
	"iter"
	"log/slog"
	"os"

	"github.com/alecthomas/kingpin"
	diffpatch "github.com/sourcegraph/go-diff-patch"
	"kastelo.dev/logbook"
	"kastelo.dev/logbook/export"
)

type exportFlags struct {
	input     *string
	output    *string
	parents   *bool
	overwrite *bool
	header    *bool
	fields    *string
	skip      *string
	restval   *string
	extras    *string
	profile   *string
	sheet     *string
}

func addExportFlags(cmd *kingpin.CmdClause, outputHelp string) *exportFlags {
	return &exportFlags{
		input:     cmd.Arg("input", "Logbook report (XML)").Required().ExistingFile(),
		output:    cmd.Arg("output", outputHelp).Required().String(),
		parents:   cmd.Flag("parents", "Create missing parent directories").Default("true").Bool(),
		overwrite: cmd.Flag("overwrite", "Overwrite an existing output file").Bool(),
		header:    cmd.Flag("header", "Write a header row").Default("true").Bool(),
		fields:    cmd.Flag("fields", "Columns to write, in order (comma or space separated)").String(),
		skip:      cmd.Flag("skip", "Columns to leave out").String(),
		restval:   cmd.Flag("restval", "Value for columns missing from a flight").String(),
		extras:    cmd.Flag("extras", "Handling of fields outside the column set").Enum("auto", "strict", "filtered"),
		profile:   cmd.Flag("profile", "Column profile from the configuration file").String(),
		sheet:     cmd.Flag("sheet", "Worksheet name (XLSX only)").String(),
	}
}

func main() {
	app := kingpin.New("logbook", "Convert crew logbook reports to CSV and XLSX.")
	app.HelpFlag.Short('h')
	verbose := app.Flag("verbose", "Enable debug logging").Short('v').Bool()
	configFile := app.Flag("config", "YAML file with export profiles").ExistingFile()

	cmdCSV := app.Command("csv", "Write one CSV row per flight")
	csvFlags := addExportFlags(cmdCSV, "Output CSV file")
	cmdXLSX := app.Command("xlsx", "Write one worksheet row per flight")
	xlsxFlags := addExportFlags(cmdXLSX, "Output XLSX file")
	cmdDiff := app.Command("diff", "Show how a regenerated CSV would differ from an existing one")
	diffFlags := addExportFlags(cmdDiff, "Existing CSV file")
	cmdSummary := app.Command("summary", "Show monthly flight time totals")
	summaryInput := cmdSummary.Arg("input", "Logbook report (XML)").Required().ExistingFile()

	cmd := kingpin.MustParse(app.Parse(os.Args[1:]))

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	var cfg *Config
	if *configFile != "" {
		var err error
		cfg, err = loadConfig(*configFile)
		if err != nil {
			slog.Error("Error loading configuration", "error", err)
			os.Exit(1)
		}
	}

	var err error
	switch cmd {
	case cmdCSV.FullCommand():
		err = runExport(cfg, csvFlags, export.WriteCSV)
	case cmdXLSX.FullCommand():
		err = runExport(cfg, xlsxFlags, export.WriteXLSX)
	case cmdDiff.FullCommand():
		err = runDiff(cfg, diffFlags)
	case cmdSummary.FullCommand():
		var lb *logbook.Logbook
		lb, err = logbook.ParseFile(*summaryInput)
		if err == nil {
			summaryReport(os.Stdout, lb)
		}
	}
	if err != nil {
		slog.Error("Error running "+cmd, "error", err)
		os.Exit(1)
	}
}

type writeFunc func(records iter.Seq[export.Record], path string, opts export.Options) error

func runExport(cfg *Config, f *exportFlags, write writeFunc) error {
	opts, err := resolveOptions(cfg, f)
	if err != nil {
		return err
	}
	records, err := flights(*f.input)
	if err != nil {
		return err
	}
	if err := write(records, *f.output, opts); err != nil {
		return err
	}
	slog.Info("Wrote flights", "output", *f.output)
	return nil
}

func runDiff(cfg *Config, f *exportFlags) error {
	opts, err := resolveOptions(cfg, f)
	if err != nil {
		return err
	}
	records, err := flights(*f.input)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := export.WriteCSVTo(&buf, records, opts); err != nil {
		return err
	}
	existing, err := os.ReadFile(*f.output)
	if err != nil {
		return err
	}

	if bytes.Equal(existing, buf.Bytes()) {
		slog.Info("No differences", "file", *f.output)
		return nil
	}
	fmt.Print(diffpatch.GeneratePatch(*f.output, string(existing), buf.String()))
	return nil
}

func flights(input string) (iter.Seq[export.Record], error) {
	lb, err := logbook.ParseFile(input)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", input, err)
	}
	flat := logbook.Flatten(lb)
	slog.Debug("Parsed logbook", "input", input, "aa_number", lb.AANumber, "flights", len(flat))
	return export.Structs(flat), nil
}
