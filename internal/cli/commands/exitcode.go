package commands

import "github.com/flowlang/flowfmt/internal/format"

// LastExitCode records the three-way exit status (0/1/123) spec §6 and
// SPEC_FULL.md's ExitCode type describe, set by runFormat after each
// invocation. cobra's RunE only carries a binary error/no-error signal, so
// the entrypoint reads this back after Execute returns to decide between
// "no changes" and "would change" on a clean run.
var LastExitCode = format.NoChange
