package main

import (
	"os"

	"github.com/pkg/errors"

	"github.com/spf13/cobra"

	"github.com/okirch/ftreecmp/cmd"
	"github.com/okirch/ftreecmp/pkg/compare"
	"github.com/okirch/ftreecmp/pkg/ftreecmp"
	"github.com/okirch/ftreecmp/pkg/logging"
	"github.com/okirch/ftreecmp/pkg/report"
)

// ignoreModeBuildID is the only supported value for the ignore flag: it
// enables the ELF build identifier exemption during content comparison.
const ignoreModeBuildID = "elf-buildid"

// rootMain is the entry point for the root command.
func rootMain(_ *cobra.Command, arguments []string) error {
	// Validate arguments and flags.
	if len(arguments) != 2 {
		return errors.New("exactly two directories must be specified")
	}
	var ignoreBuildID bool
	switch rootConfiguration.ignore {
	case "":
	case ignoreModeBuildID:
		ignoreBuildID = true
	default:
		return errors.Errorf("unsupported ignore mode: %s", rootConfiguration.ignore)
	}

	// Set up logging. Debug traces share standard output with the report;
	// diagnostics go to standard error.
	logger := logging.NewLogger(rootConfiguration.debug, os.Stdout, os.Stderr)

	// Set up the report sink, ensuring that its legend is rendered even if
	// the comparison fails partway through.
	reporter := report.NewReporter(rootConfiguration.packageName, os.Stdout)
	defer reporter.Close()

	// Run the comparison. Differences alone don't constitute an error; any
	// enumeration, stat, read, open, or reporting failure does.
	differ := compare.NewDiffer(
		compare.Configuration{IgnoreBuildID: ignoreBuildID},
		reporter,
		logger,
	)
	return differ.Compare(arguments[0], arguments[1])
}

// rootCommand is the root command.
var rootCommand = &cobra.Command{
	Use:          "ftreecmp [flags] <old-dir> <new-dir>",
	Short:        "Compare two filesystem hierarchies and report what changed",
	Run:          cmd.Mainify(rootMain),
	Version:      ftreecmp.Version,
	SilenceUsage: true,
}

// rootConfiguration stores configuration for the root command.
var rootConfiguration struct {
	// help indicates whether or not to show help information and exit.
	help bool
	// debug indicates whether or not to enable debug tracing.
	debug bool
	// ignore specifies content regions to exempt from comparison.
	ignore string
	// packageName is the label used in the report header.
	packageName string
}

func init() {
	// Grab a handle for the command line flags.
	flags := rootCommand.Flags()

	// Disable alphabetical sorting of flags in help output.
	flags.SortFlags = false

	// Manually add a help flag to override the default message. Cobra will
	// still implement its logic automatically.
	flags.BoolVarP(&rootConfiguration.help, "help", "h", false, "Show help information")
	flags.BoolVarP(&rootConfiguration.debug, "debug", "d", false, "Enable debugging output")
	flags.StringVarP(&rootConfiguration.ignore, "ignore", "i", "", "Exempt volatile content from comparison (elf-buildid)")
	flags.StringVarP(&rootConfiguration.packageName, "package-name", "N", "", "Package name used in the report header")
}

func main() {
	if err := rootCommand.Execute(); err != nil {
		os.Exit(1)
	}
}
