// webesptool-server serves the firmware catalog API.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mrekin/webesptool/internal/catalog"
	"github.com/mrekin/webesptool/pkg/logging"
)

const version = "1.0.0"

var (
	configPath string
	logLevel   string
	rootCmd    *cobra.Command
)

func init() {
	rootCmd = &cobra.Command{
		Use:     "webesptool-server",
		Short:   "Firmware catalog server",
		Long:    `Serve firmware catalogs, versions and flasher manifests over HTTP.`,
		Version: version,
		RunE:    run,
	}

	rootCmd.Flags().StringVarP(&configPath, "config", "c", "config/config.yml", "Path to config file")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	level := logLevel
	if level == "" {
		level = logging.GetLogLevel()
	}
	logger := logging.NewLogger("webesptool", level, os.Stderr)

	cfg, err := catalog.LoadConfig(configPath)
	if err != nil {
		return err
	}

	return catalog.NewServer(cfg, logger).Run()
}
