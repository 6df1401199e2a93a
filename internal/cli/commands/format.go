package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/flowlang/flowfmt/internal/config"
	"github.com/flowlang/flowfmt/internal/format"
)

var (
	formatCheck   bool
	formatDiff    bool
	formatVerbose bool
	formatConfig  string
	formatLineLen int
	formatInclude []string
	formatExclude []string
)

// defaultIncludes/defaultExcludes mirror the reference implementation's
// DEFAULT_INCLUDES/DEFAULT_EXCLUDES regex-equivalents, restricted to the
// two conventional names a workflow file is given.
var defaultIncludes = []string{"*.smk", "Snakefile"}
var defaultExcludes = []string{".*", "build", "node_modules", ".snakemake"}

// NewFormatCommand creates the format command.
func NewFormatCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "format [paths...]",
		Short: "Format workflow-language source files",
		Long: `Format workflow-language source files (Snakefile, *.smk) in place.

By default, writes formatted files back to disk. Use --check to verify
formatting without writing, or --diff to preview changes instead.

Examples:
  flowfmt                     # format every matching file under the cwd
  flowfmt --check             # exit 1 if any file would change
  flowfmt --diff              # print a unified diff instead of writing
  flowfmt Snakefile rules/*.smk`,
		RunE: runFormat,
	}

	cmd.Flags().BoolVar(&formatCheck, "check", false, "report files that would change, without writing them")
	cmd.Flags().BoolVar(&formatDiff, "diff", false, "print a unified diff instead of writing files")
	cmd.Flags().BoolVarP(&formatVerbose, "verbose", "v", false, "enable debug logging")
	cmd.Flags().StringVar(&formatConfig, "config", "", "path to a pyproject.toml-style config file")
	cmd.Flags().IntVar(&formatLineLen, "line-length", format.DefaultLineLength, "target line length")
	cmd.Flags().StringSliceVar(&formatInclude, "include", nil, "glob patterns to include (default: *.smk, Snakefile)")
	cmd.Flags().StringSliceVar(&formatExclude, "exclude", nil, "glob patterns to exclude")

	return cmd
}

func runFormat(cmd *cobra.Command, args []string) error {
	logger := zap.NewNop()
	if formatVerbose {
		logger, _ = zap.NewDevelopment()
	}

	opts, err := resolveOptions(cmd.Flags().Changed("line-length"))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	files, err := findWorkflowFiles(args, opts)
	if err != nil {
		return fmt.Errorf("failed to find files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("no workflow files found")
	}

	f := format.New(format.Config{LineLength: opts.LineLength, Logger: logger})

	titleColor := color.New(color.FgCyan, color.Bold)
	successColor := color.New(color.FgGreen)
	errorColor := color.New(color.FgRed, color.Bold)

	anyChanged := false
	anyErrors := false

	for _, file := range files {
		original, err := os.ReadFile(file)
		if err != nil {
			errorColor.Fprintf(cmd.ErrOrStderr(), "error reading %s: %v\n", file, err)
			anyErrors = true
			continue
		}

		formatted, ferr := f.Format(string(original))
		if ferr != nil {
			errorColor.Fprintf(cmd.ErrOrStderr(), "error formatting %s: %v\n", file, ferr)
			anyErrors = true
			continue
		}

		d := format.Diff(file, string(original), formatted)
		if !d.Changed {
			if !opts.Check {
				successColor.Fprintf(cmd.OutOrStdout(), "%s unchanged\n", file)
			}
			continue
		}
		anyChanged = true

		switch {
		case opts.Check:
			errorColor.Fprintf(cmd.ErrOrStderr(), "%s would be reformatted\n", file)
		case opts.Diff:
			titleColor.Fprintf(cmd.OutOrStdout(), "\n=== %s ===\n", file)
			fmt.Fprint(cmd.OutOrStdout(), d.Unified())
		default:
			if err := os.WriteFile(file, []byte(formatted), 0o644); err != nil {
				errorColor.Fprintf(cmd.ErrOrStderr(), "error writing %s: %v\n", file, err)
				anyErrors = true
				continue
			}
			successColor.Fprintf(cmd.OutOrStdout(), "%s reformatted\n", file)
		}
	}

	LastExitCode = format.NoChange
	switch {
	case anyErrors:
		LastExitCode = format.Error
	case anyChanged && opts.Check:
		LastExitCode = format.WouldChange
	}

	if anyErrors {
		return fmt.Errorf("one or more files had errors")
	}
	if opts.Check && anyChanged {
		return fmt.Errorf("one or more files would be reformatted")
	}
	return nil
}

func resolveOptions(lineLengthSet bool) (config.Options, error) {
	path := formatConfig
	if path == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return config.Options{}, err
		}
		if found, ok := config.FindUpward(cwd, "pyproject.toml"); ok {
			path = found
		}
	}

	opts := config.Options{LineLength: format.DefaultLineLength}
	if path != "" {
		loaded, err := config.LoadOptions(path)
		if err != nil {
			return config.Options{}, err
		}
		if loaded.LineLength > 0 {
			opts.LineLength = loaded.LineLength
		}
		opts.Include = loaded.Include
		opts.Exclude = loaded.Exclude
	}

	if lineLengthSet && formatLineLen > 0 {
		opts.LineLength = formatLineLen
	}
	if len(formatInclude) > 0 {
		opts.Include = formatInclude
	}
	if len(formatExclude) > 0 {
		opts.Exclude = formatExclude
	}
	opts.Check = formatCheck
	opts.Diff = formatDiff
	opts.Verbose = formatVerbose
	return opts, nil
}

// findWorkflowFiles resolves CLI path arguments (or the cwd by default)
// into a deduplicated list of workflow files, applying include/exclude
// glob filters and skipping anything under a directory that looks like
// version-control or build output — a minimal stand-in for gitignore-aware
// discovery (reference `get_snakefile_files_in_dir`), since no gitignore
// parser lives in the example pack's domain-relevant repos (see
// SPEC_FULL.md / DESIGN.md).
func findWorkflowFiles(patterns []string, opts config.Options) ([]string, error) {
	includes := opts.Include
	if len(includes) == 0 {
		includes = defaultIncludes
	}
	excludes := opts.Exclude
	if len(excludes) == 0 {
		excludes = defaultExcludes
	}

	if len(patterns) == 0 {
		patterns = []string{"."}
	}

	var files []string
	for _, pattern := range patterns {
		info, err := os.Stat(pattern)
		if err != nil {
			matches, globErr := filepath.Glob(pattern)
			if globErr != nil {
				return nil, globErr
			}
			files = append(files, matches...)
			continue
		}
		if !info.IsDir() {
			files = append(files, pattern)
			continue
		}
		err = filepath.Walk(pattern, func(path string, fi os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if fi.IsDir() {
				if isExcluded(fi.Name(), excludes) && path != pattern {
					return filepath.SkipDir
				}
				return nil
			}
			if matchesAny(fi.Name(), includes) && !isExcluded(path, excludes) {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	return dedupe(files), nil
}

func matchesAny(name string, patterns []string) bool {
	for _, p := range patterns {
		if ok, _ := filepath.Match(p, name); ok {
			return true
		}
	}
	return false
}

func isExcluded(name string, patterns []string) bool {
	base := filepath.Base(name)
	for _, p := range patterns {
		if ok, _ := filepath.Match(p, base); ok {
			return true
		}
	}
	return strings.HasPrefix(base, ".") && base != "."
}

func dedupe(files []string) []string {
	seen := make(map[string]bool, len(files))
	out := make([]string, 0, len(files))
	for _, f := range files {
		if !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	return out
}
