package rules

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/yaklabco/gomdtable/pkg/config"
	"github.com/yaklabco/gomdtable/pkg/lint"
	"github.com/yaklabco/gomdtable/pkg/parser/goldmark"
)

// largeTable builds a misaligned table with the given number of body rows.
func largeTable(rows int) []byte {
	var b strings.Builder
	b.WriteString("# Report\n\n| ID | Name | Status | Notes |\n|---|:---|:-:|--:|\n")
	for i := range rows {
		fmt.Fprintf(&b, "| %d | item-%d | ok | %s |\n", i, i, strings.Repeat("x", i%17))
	}
	return []byte(b.String())
}

// Benchmark parsing a document with one large table.
func BenchmarkParseLargeTable(b *testing.B) {
	content := largeTable(500)
	parser := goldmark.New(goldmark.FlavorGFM)
	ctx := context.Background()

	b.ResetTimer()
	for range b.N {
		snapshot, err := parser.Parse(ctx, "test.md", content)
		if err != nil || snapshot == nil {
			b.Fail()
		}
	}
}

// Benchmark the table column style rule on an already parsed document.
func BenchmarkTableColumnStyleRule(b *testing.B) {
	content := largeTable(500)
	snapshot, err := goldmark.New(goldmark.FlavorGFM).Parse(context.Background(), "test.md", content)
	if err != nil {
		b.Fatal(err)
	}

	cfg := config.NewConfig()
	cfg.Flavor = config.FlavorGFM
	rule := NewTableColumnStyleRule()

	b.ResetTimer()
	for range b.N {
		diags, err := rule.Apply(lint.NewRuleContext(context.Background(), snapshot, cfg, nil))
		if err != nil || len(diags) == 0 {
			b.Fail()
		}
	}
}

// Benchmark the full engine with fixes enabled.
func BenchmarkEngineWithFix(b *testing.B) {
	content := largeTable(500)

	registry := lint.NewRegistry()
	RegisterAll(registry)
	engine := lint.NewEngine(goldmark.New(goldmark.FlavorGFM), registry)

	cfg := config.NewConfig()
	cfg.Flavor = config.FlavorGFM
	cfg.Fix = true
	ctx := context.Background()

	b.ResetTimer()
	for range b.N {
		result, err := engine.LintFile(ctx, "test.md", content, cfg)
		if err != nil || !result.HasFixes() {
			b.Fail()
		}
	}
}
