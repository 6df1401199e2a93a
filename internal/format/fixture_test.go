package format

import (
	"fmt"
	"strings"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"go.uber.org/zap"
)

// fixtures mirrors a representative slice of the reference test suite's
// "Snakefile" corpus: small whole-file programs exercising rule/checkpoint
// bodies, key=value parameter lists, multi-line parameter blocks, and
// embedded scripting code between blocks.
var fixtures = []struct {
	name   string
	source string
}{
	{
		name: "simple_rule",
		source: `rule all:
    input: "results/a.txt"
`,
	},
	{
		name: "rule_with_multiple_params",
		source: `rule align:
    input:
        fastq="reads.fastq",
        ref="genome.fa"
    output: "aligned.bam"
    threads: 4
    shell: "bwa mem {input.ref} {input.fastq} > {output}"
`,
	},
	{
		name: "checkpoint_and_script_between_rules",
		source: `SAMPLES = ["a", "b", "c"]

checkpoint split:
    input: "data.txt"
    output: directory("splits")
    script: "scripts/split.py"

rule combine:
    input: expand("splits/{sample}.txt", sample=SAMPLES)
    output: "combined.txt"
    run:
        with open(output[0], "w") as f:
            pass
`,
	},
	{
		name: "module_and_use_rule",
		source: `module other_workflow:
    snakefile: "other/Snakefile"
    config: config["other"]

use rule * from other_workflow with:
    threads: 4
`,
	},
}

// TestFixturesFormatIsIdempotent runs every fixture through the formatter
// twice, asserting that formatting an already-formatted file is a no-op —
// the core correctness property a code formatter must hold.
func TestFixturesFormatIsIdempotent(t *testing.T) {
	f := New(Config{Logger: zap.NewNop()})

	for _, fx := range fixtures {
		t.Run(fx.name, func(t *testing.T) {
			once, err := f.Format(fx.source)
			if err != nil {
				t.Fatalf("first format of %s failed: %v", fx.name, err)
			}

			twice, err := f.Format(once)
			if err != nil {
				t.Fatalf("second format of %s failed: %v", fx.name, err)
			}

			if once != twice {
				t.Errorf("formatting %s is not idempotent:\nfirst:\n%s\nsecond:\n%s", fx.name, once, twice)
			}
		})
	}
}

// TestFixtureRuleLikeBlocksGetExactlyTwoBlankLines guards the blank-line
// count itself, not just idempotence: two consecutive top-level rule-like
// blocks must come out separated by exactly two blank lines, never one.
func TestFixtureRuleLikeBlocksGetExactlyTwoBlankLines(t *testing.T) {
	f := New(Config{Logger: zap.NewNop()})

	var source string
	for _, c := range fixtures {
		if c.name == "checkpoint_and_script_between_rules" {
			source = c.source
		}
	}
	if source == "" {
		t.Fatal("fixture checkpoint_and_script_between_rules not found")
	}

	out, err := f.Format(source)
	if err != nil {
		t.Fatalf("format failed: %v", err)
	}

	if !strings.Contains(out, "\n\n\nrule combine:") {
		t.Errorf("expected exactly two blank lines before \"rule combine:\", got:\n%s", out)
	}
	if strings.Contains(out, "\n\n\n\nrule combine:") {
		t.Errorf("expected exactly two blank lines (not three or more) before \"rule combine:\", got:\n%s", out)
	}
}

// TestFixturesMatchSnapshot snapshots each fixture's formatted output via
// go-snaps, the way the reference test suite snapshots interpreter output —
// adapted here to snapshot formatted source instead of a program result.
func TestFixturesMatchSnapshot(t *testing.T) {
	f := New(Config{Logger: zap.NewNop()})

	for _, fx := range fixtures {
		t.Run(fx.name, func(t *testing.T) {
			out, err := f.Format(fx.source)
			if err != nil {
				t.Fatalf("format of %s failed: %v", fx.name, err)
			}
			snaps.MatchSnapshot(t, fmt.Sprintf("%s_formatted", fx.name), out)
		})
	}
}
