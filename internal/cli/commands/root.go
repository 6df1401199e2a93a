package commands

import (
	"runtime"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	// Version information - set at build time
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
	GoVersion = "unknown"
)

// NewRootCommand creates the root command.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "flowfmt",
		Short: "Format workflow-language source files",
		Long: color.CyanString(`flowfmt - a formatter for workflow-language source files

flowfmt reads rule/checkpoint/module blocks and the scripting code embedded
between them, and rewrites the file into a single canonical style: block
headers and parameter lists are reformatted directly; embedded scripting
code is handed to a dedicated scripting-language formatter and trusted
verbatim.`),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// The root command itself formats ("flowfmt [paths...]"), sharing the
	// format subcommand's flags.
	formatCmd := NewFormatCommand()
	rootCmd.Args = cobra.ArbitraryArgs
	rootCmd.RunE = formatCmd.RunE
	rootCmd.Flags().AddFlagSet(formatCmd.Flags())

	// Add subcommands
	rootCmd.AddCommand(NewVersionCommand())
	rootCmd.AddCommand(formatCmd)
	rootCmd.AddCommand(NewCompletionCommand())

	return rootCmd
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  "Display the flowfmt version, Git commit, build date, and Go version",
		Run: func(cmd *cobra.Command, args []string) {
			// Set GoVersion to actual runtime if not set at build time
			goVer := GoVersion
			if goVer == "unknown" {
				goVer = runtime.Version()
			}

			titleColor := color.New(color.FgCyan, color.Bold)
			valueColor := color.New(color.FgWhite)

			titleColor.Print("flowfmt version: ")
			valueColor.Println(Version)

			titleColor.Print("Git commit: ")
			valueColor.Println(GitCommit)

			titleColor.Print("Build date: ")
			valueColor.Println(BuildDate)

			titleColor.Print("Go version: ")
			valueColor.Println(goVer)
		},
	}
}

// Execute runs the root command
func Execute() error {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		errorColor := color.New(color.FgRed, color.Bold)
		errorColor.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)
		return err
	}
	return nil
}
