// partition-tool inspects ESP-IDF partition table binaries.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mrekin/webesptool/pkg/esp/partition"
)

const version = "1.0.0"

var (
	format        string
	humanReadable bool
	validate      bool
	checkOverlaps bool
	verbose       bool
	rootCmd       *cobra.Command
)

func init() {
	rootCmd = &cobra.Command{
		Use:   "partition-tool <partitions.bin>",
		Short: "Inspect ESP-IDF partition tables",
		Long: `Parse, validate and render ESP-IDF partition table binaries.

Output formats: text (default), json, csv, analysis.`,
		Args:    cobra.ExactArgs(1),
		Version: version,
		RunE:    run,
	}

	rootCmd.Flags().StringVarP(&format, "format", "f", "text", "Output format (text, json, csv, analysis)")
	rootCmd.Flags().BoolVar(&humanReadable, "human", true, "Include human-readable fields in JSON output")
	rootCmd.Flags().BoolVar(&validate, "validate", false, "Validate the table after parsing")
	rootCmd.Flags().BoolVar(&checkOverlaps, "check-overlaps", true, "Check for partition overlaps during validation")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Verbose text output")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}

	table, err := partition.Parse(data)
	if err != nil {
		return err
	}

	if validate {
		if err := partition.Validate(table, checkOverlaps); err != nil {
			return err
		}
	}

	var out string
	switch format {
	case "json":
		out, err = partition.FormatJSON(table, humanReadable)
	case "csv":
		out, err = partition.FormatCSV(table)
	case "analysis":
		out, err = partition.FormatAnalysis(table)
	case "text":
		out = partition.FormatText(table, verbose)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
	if err != nil {
		return err
	}

	fmt.Println(out)
	return nil
}
