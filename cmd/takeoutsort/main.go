package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"takeoutsort/pkg/organize"
)

const version = "0.1.0"

// testModeLimit caps a --test run.
const testModeLimit = 100

type options struct {
	testMode bool
	verbose  bool
	workers  int
}

func main() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "takeoutsort [input_root] [output_root]",
		Short: "Sort a Google Takeout export into per-year folders",
		Long: "takeoutsort walks a Google Takeout export, assigns each photo and video a " +
			"best-guess year (EXIF, JSON sidecar, filename, directory name, file mod-time, " +
			"in that order) and copies it into a folder named by that year. Files named " +
			"like Snapchat exports go to 'Snapchat/', implausible years to 'Unknown/', " +
			"and HEIC images are converted to JPEG on the way.",
		Version:      version,
		Args:         cobra.ExactArgs(2),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			inputRoot, outputRoot := args[0], args[1]

			info, err := os.Stat(inputRoot)
			if err != nil || !info.IsDir() {
				return fmt.Errorf("%s is not a valid directory", inputRoot)
			}

			level := zerolog.InfoLevel
			if opts.verbose || opts.testMode {
				level = zerolog.DebugLevel
			}
			log := zerolog.New(zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
				w.Out = cmd.ErrOrStderr()
			})).With().Timestamp().Logger().Level(level)

			cfg := organize.Config{
				InputRoot:  inputRoot,
				OutputRoot: outputRoot,
				Workers:    opts.workers,
				Log:        log,
			}
			if opts.testMode {
				cfg.Limit = testModeLimit
			}

			summary, err := organize.Run(cfg)
			if err != nil {
				return err
			}

			cmd.Printf("processed %d files: %d copied, %d converted, %d skipped, %d failed\n",
				summary.Processed, summary.Copied, summary.Converted, summary.Skipped, summary.Failed)
			if opts.testMode {
				cmd.Printf("test mode finished (limit=%d)\n", testModeLimit)
			}
			return nil
		},
	}

	rootCmd.SetOut(os.Stdout)
	rootCmd.SetErr(os.Stderr)

	rootCmd.Flags().BoolVar(&opts.testMode, "test", false,
		fmt.Sprintf("process at most %d files and enable debug logging", testModeLimit))
	rootCmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.Flags().IntVar(&opts.workers, "workers", 1, "number of concurrent placements")

	return rootCmd
}
