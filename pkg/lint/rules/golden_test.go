package rules

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdtable/pkg/config"
	"github.com/yaklabco/gomdtable/pkg/fix"
	"github.com/yaklabco/gomdtable/pkg/lint"
	"github.com/yaklabco/gomdtable/pkg/parser/goldmark"
)

// update is a flag to update golden files instead of comparing.
// Usage: go test -update ./pkg/lint/rules/... -run TestGolden.
var update = flag.Bool("update", false, "update golden files")

var ruleIDPattern = regexp.MustCompile(`^MD\d{3}$`)

// goldenCase is one testdata/<RULE_ID>/<name>.input.md file with its
// expected fixed output (.golden.md) and diagnostics (.diags.txt).
type goldenCase struct {
	Name       string
	RuleID     string
	InputPath  string
	GoldenPath string
	DiagsPath  string
}

func testdataDir(t *testing.T) string {
	t.Helper()

	_, filename, _, ok := runtime.Caller(0)
	require.True(t, ok, "failed to get test file path")
	return filepath.Join(filepath.Dir(filename), "testdata")
}

func discoverGoldenCases(t *testing.T) []goldenCase {
	t.Helper()

	inputs, err := filepath.Glob(filepath.Join(testdataDir(t), "*", "*.input.md"))
	require.NoError(t, err)

	cases := make([]goldenCase, 0, len(inputs))
	for _, input := range inputs {
		ruleID := filepath.Base(filepath.Dir(input))
		if !ruleIDPattern.MatchString(ruleID) {
			continue
		}
		base := strings.TrimSuffix(input, ".input.md")
		cases = append(cases, goldenCase{
			Name:       ruleID + "/" + filepath.Base(base),
			RuleID:     ruleID,
			InputPath:  input,
			GoldenPath: base + ".golden.md",
			DiagsPath:  base + ".diags.txt",
		})
	}
	return cases
}

// runGoldenRule parses content as GFM and applies the rule with ruleID.
func runGoldenRule(t *testing.T, ruleID string, content []byte) []lint.Diagnostic {
	t.Helper()

	rule, ok := lint.DefaultRegistry.Get(ruleID)
	require.True(t, ok, "unknown rule %s", ruleID)

	snapshot, err := goldmark.New(goldmark.FlavorGFM).Parse(context.Background(), "input.md", content)
	require.NoError(t, err)

	cfg := config.NewConfig()
	cfg.Flavor = config.FlavorGFM

	ruleCtx := lint.NewRuleContext(context.Background(), snapshot, cfg, nil)

	diags, err := rule.Apply(ruleCtx)
	require.NoError(t, err, "rule %s failed to apply", ruleID)
	return diags
}

func applyDiagnosticFixes(t *testing.T, content []byte, diags []lint.Diagnostic) []byte {
	t.Helper()

	var edits []fix.TextEdit
	for _, d := range diags {
		edits = append(edits, d.FixEdits...)
	}
	if len(edits) == 0 {
		return content
	}

	accepted, skipped, err := fix.PrepareEditsFiltered(edits, len(content))
	require.NoError(t, err)
	assert.Empty(t, skipped, "table edits should never overlap")
	return fix.ApplyEdits(content, accepted)
}

func formatDiags(diags []lint.Diagnostic) string {
	var b strings.Builder
	for _, d := range diags {
		fmt.Fprintf(&b, "%d:%d %s %s\n", d.StartLine, d.StartColumn, d.RuleID, d.Message)
	}
	return b.String()
}

func compareGolden(t *testing.T, path string, got []byte) {
	t.Helper()

	if *update {
		require.NoError(t, os.WriteFile(path, got, 0o600))
		return
	}

	want, err := os.ReadFile(path)
	require.NoError(t, err, "missing golden file %s (run with -update)", path)
	assert.Equal(t, string(want), string(got), "mismatch with %s", filepath.Base(path))
}

// TestGoldenPerRule runs each testdata/<RULE_ID>/*.input.md case through
// that rule alone and compares diagnostics and fixed output.
func TestGoldenPerRule(t *testing.T) {
	t.Parallel()

	cases := discoverGoldenCases(t)
	if len(cases) == 0 {
		t.Skip("No golden test cases found. Create testdata/<RULE_ID>/*.input.md files to add tests.")
	}

	for _, tc := range cases {
		t.Run(tc.Name, func(t *testing.T) {
			t.Parallel()

			input, err := os.ReadFile(tc.InputPath)
			require.NoError(t, err)

			diags := runGoldenRule(t, tc.RuleID, input)
			compareGolden(t, tc.DiagsPath, []byte(formatDiags(diags)))
			compareGolden(t, tc.GoldenPath, applyDiagnosticFixes(t, input, diags))
		})
	}
}

// TestGoldenRoundTrip verifies that fixes are idempotent: after applying
// every fix once, the rule reports no fixable diagnostics.
func TestGoldenRoundTrip(t *testing.T) {
	t.Parallel()

	cases := discoverGoldenCases(t)
	if len(cases) == 0 {
		t.Skip("No golden test cases found for round-trip testing.")
	}

	for _, tc := range cases {
		t.Run(tc.Name, func(t *testing.T) {
			t.Parallel()

			input, err := os.ReadFile(tc.InputPath)
			require.NoError(t, err)

			fixedContent := applyDiagnosticFixes(t, input, runGoldenRule(t, tc.RuleID, input))

			for _, d := range runGoldenRule(t, tc.RuleID, fixedContent) {
				if d.HasFix() {
					t.Errorf("fixable diagnostic remains: %d:%d %s", d.StartLine, d.StartColumn, d.Message)
				}
			}
		})
	}
}

func TestDiscoverGoldenCases(t *testing.T) {
	t.Parallel()

	dir := testdataDir(t)
	assert.True(t, filepath.IsAbs(dir))

	for _, tc := range discoverGoldenCases(t) {
		assert.Regexp(t, ruleIDPattern, tc.RuleID)
		assert.FileExists(t, tc.InputPath)
	}
}
