// Package config implements the two TOML ingestion paths spec §4.7 / §6
// describe: the main formatter's own options, and the embedded
// scripting-language formatter's options passed through unchanged.
package config

import (
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"github.com/flowlang/flowfmt/internal/ferrors"
)

// Options is the engine's own configuration, read from a "[tool.flowfmt]"
// TOML table, grounded on the reference's `read_snakefmt_config`.
type Options struct {
	LineLength int      `mapstructure:"line_length"`
	Include    []string `mapstructure:"include"`
	Exclude    []string `mapstructure:"exclude"`
	Check      bool     `mapstructure:"check"`
	Diff       bool     `mapstructure:"diff"`
	Verbose    bool     `mapstructure:"verbose"`
}

// LoadOptions reads Options from the "[tool.flowfmt]" table of the TOML
// file at path via viper, the way the teacher's internal/cli/config loader
// reads its own YAML config — adapted here to TOML per spec §4.7.
func LoadOptions(path string) (Options, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")

	if err := v.ReadInConfig(); err != nil {
		return Options{}, &ferrors.MalformattedToml{Path: path, Cause: err}
	}

	sub := v.Sub("tool.flowfmt")
	opts := Options{LineLength: 0}
	if sub == nil {
		return opts, nil
	}
	// Normalize keys: strip a leading "--" and turn "-" into "_", so
	// "line-length" and "line_length" name the same option.
	norm := viper.New()
	for key, val := range sub.AllSettings() {
		norm.Set(strings.ReplaceAll(strings.TrimPrefix(key, "--"), "-", "_"), val)
	}
	if err := norm.Unmarshal(&opts); err != nil {
		return Options{}, &ferrors.MalformattedToml{Path: path, Cause: err}
	}
	return opts, nil
}

// ScriptFormatterOptions is the configuration handed through to the
// embedded scripting-language formatter, read from "[tool.flowscript]" —
// grounded on the reference's `read_black_config`, including its "skip_*"
// boolean-inversion convention: a config author writes what to skip,
// the engine stores what to do.
type ScriptFormatterOptions struct {
	LineLength     int
	StringNormalization bool
	MagicTrailingComma bool
}

// LoadScriptFormatterOptions reads "[tool.flowscript]" directly via
// go-toml/v2 (no defaults/env layer needed, unlike LoadOptions), inverting
// any "skip_*" keys it finds.
func LoadScriptFormatterOptions(path string) (ScriptFormatterOptions, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return ScriptFormatterOptions{}, &ferrors.MalformattedToml{Path: path, Cause: err}
	}

	var doc struct {
		Tool struct {
			FlowScript map[string]any `toml:"flowscript"`
		} `toml:"tool"`
	}
	if err := toml.Unmarshal(raw, &doc); err != nil {
		return ScriptFormatterOptions{}, &ferrors.MalformattedToml{Path: path, Cause: err}
	}

	opts := ScriptFormatterOptions{
		LineLength:          88,
		StringNormalization: true,
		MagicTrailingComma:  true,
	}

	knownKeys := map[string]bool{
		"line_length":               true,
		"skip_string_normalization": true,
		"skip_magic_trailing_comma": true,
	}

	for key, val := range doc.Tool.FlowScript {
		normalized := strings.TrimPrefix(key, "--")
		normalized = strings.ReplaceAll(normalized, "-", "_")

		if !knownKeys[normalized] {
			return ScriptFormatterOptions{}, ferrors.NewInvalidBlackConfiguration(key, "unrecognized option")
		}

		switch normalized {
		case "line_length":
			n, ok := val.(int64)
			if !ok {
				return ScriptFormatterOptions{}, ferrors.NewInvalidBlackConfiguration(key, "must be an integer")
			}
			opts.LineLength = int(n)
		case "skip_string_normalization":
			b, ok := val.(bool)
			if !ok {
				return ScriptFormatterOptions{}, ferrors.NewInvalidBlackConfiguration(key, "must be a boolean")
			}
			opts.StringNormalization = !b
		case "skip_magic_trailing_comma":
			b, ok := val.(bool)
			if !ok {
				return ScriptFormatterOptions{}, ferrors.NewInvalidBlackConfiguration(key, "must be a boolean")
			}
			opts.MagicTrailingComma = !b
		}
	}
	return opts, nil
}

// FindUpward walks upward from startDir looking for a file named fileName,
// stopping at the first directory containing a ".git" entry (a VCS
// boundary) — grounded on the reference's `find_project_root` /
// `find_pyproject_toml`, SPEC_FULL.md's "--config pyproject-style
// discovery" supplemented feature.
func FindUpward(startDir, fileName string) (string, bool) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false
	}
	for {
		candidate := filepath.Join(dir, fileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true
		}
		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			return "", false
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}
