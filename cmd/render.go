package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/grant-verdict/internal/currency"
	"github.com/sells-group/grant-verdict/internal/engine"
	"github.com/sells-group/grant-verdict/internal/model"
	"github.com/sells-group/grant-verdict/internal/textutil"
)

const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

func checkFormat(format string) error {
	switch format {
	case formatTable, formatJSON, formatYAML:
		return nil
	}
	return eris.Errorf("output: unknown format %q (want table, json or yaml)", format)
}

// writeStructured writes v as indented JSON or YAML.
func writeStructured(w io.Writer, format string, v any) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return eris.Wrap(err, "output: encode json")
		}
	case formatYAML:
		// Output types carry json tags only; going through JSON keeps the
		// field names and their order.
		data, err := json.Marshal(v)
		if err != nil {
			return eris.Wrap(err, "output: encode yaml")
		}
		var node yaml.Node
		if err := yaml.Unmarshal(data, &node); err != nil {
			return eris.Wrap(err, "output: encode yaml")
		}
		blockStyle(&node)
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(&node); err != nil {
			return eris.Wrap(err, "output: encode yaml")
		}
		return enc.Close()
	default:
		return checkFormat(format)
	}
	return nil
}

// blockStyle drops the flow and quoting styles a JSON document decodes with.
func blockStyle(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		blockStyle(c)
	}
}

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	return t
}

// renderVerdict prints the verdict summary, the per-dimension scores and
// the text sections.
func renderVerdict(w io.Writer, v model.EvaluationVerdict) {
	t := newTable(w)
	t.SetTitle(fmt.Sprintf("%s  %d/10  (%s tier, %s)", v.Recommendation, v.CompositeScore, v.Tier, v.EvaluatorSource))
	t.AppendHeader(table.Row{"Dimension", "Score", "Rating", "Confidence", "Explanation"})
	for _, dim := range sortedDims(v.Scores) {
		r := v.Scores[dim]
		score := "n/a"
		if r.Score != nil {
			score = fmt.Sprintf("%d", *r.Score)
		}
		t.AppendRow(table.Row{dim, score, r.Rating, r.Confidence, textutil.Truncate(r.Explanation, 90)})
	}
	t.Render()

	renderReadiness(w, v.Readiness)

	section(w, "Reasoning", []string{v.Reasoning[model.DimRecommendation]})
	section(w, "Key insights", v.KeyInsights)
	section(w, "Red flags", v.RedFlags)
	section(w, "Decision gates", v.DecisionGates)
	if v.SuccessProbabilityRange != nil {
		section(w, "Success probability", []string{*v.SuccessProbabilityRange})
	}
	if v.OpportunityCost != nil {
		section(w, "Opportunity cost", []string{*v.OpportunityCost})
	}
	if v.PatternKnowledge != nil {
		section(w, "Past recipients", []string{*v.PatternKnowledge})
	}
	if v.ConfidenceIndex != nil {
		section(w, "Confidence index", []string{fmt.Sprintf("%.2f", *v.ConfidenceIndex)})
	}
	section(w, "Confidence notes", []string{v.ConfidenceNotes})
	section(w, "Next step", []string{v.ActionableNextStep})
	fmt.Fprintf(w, "\nRubric %s\n", v.RubricVersion)
}

// renderReadiness prints the bucket states and derived labels.
func renderReadiness(w io.Writer, r model.Readiness) {
	t := newTable(w)
	t.SetTitle(fmt.Sprintf("%s / %s / scope %s", r.DecisionReadiness, r.StatusOfKnowledge, r.Scope))
	t.AppendHeader(table.Row{"Bucket", "State", "Explanation"})
	for _, name := range model.BucketNames {
		b := r.Buckets[name]
		t.AppendRow(table.Row{name, b.State, textutil.Truncate(b.Explanation, 100)})
	}
	t.Render()
}

// renderBatch prints one summary row per verdict.
func renderBatch(w io.Writer, reqs []model.Request, results []engine.BatchResult) {
	t := newTable(w)
	t.AppendHeader(table.Row{"#", "Grant", "Tier", "Composite", "Recommendation", "Readiness", "Next step"})
	counts := make(map[model.Recommendation]int)
	for _, r := range results {
		v := r.Verdict
		counts[v.Recommendation]++
		t.AppendRow(table.Row{
			r.Index + 1,
			textutil.Truncate(reqs[r.Index].Grant.Name, 40),
			v.Tier,
			v.CompositeScore,
			v.Recommendation,
			v.Readiness.DecisionReadiness,
			textutil.Truncate(v.ActionableNextStep, 60),
		})
	}
	t.AppendFooter(table.Row{"", fmt.Sprintf("%d grants", len(results)), "", "",
		fmt.Sprintf("%d apply / %d conditional / %d pass",
			counts[model.RecommendApply], counts[model.RecommendConditional], counts[model.RecommendPass]),
		"", ""})
	t.Render()
}

// renderRates prints the exchange-rate table.
func renderRates(w io.Writer, pairs []currency.Pair) {
	t := newTable(w)
	t.AppendHeader(table.Row{"From", "To", "Rate", "Inverse"})
	for _, p := range pairs {
		inv := 0.0
		if p.Rate > 0 {
			inv = 1 / p.Rate
		}
		t.AppendRow(table.Row{p.From, p.To, fmt.Sprintf("%.6g", p.Rate), fmt.Sprintf("%.6g", inv)})
	}
	t.Render()
}

func section(w io.Writer, title string, lines []string) {
	var kept []string
	for _, l := range lines {
		if l = strings.TrimSpace(l); l != "" {
			kept = append(kept, l)
		}
	}
	if len(kept) == 0 {
		return
	}
	fmt.Fprintf(w, "\n%s:\n", title)
	for _, l := range kept {
		fmt.Fprintf(w, "  - %s\n", l)
	}
}

func sortedDims(scores map[string]model.ScoringResult) []string {
	dims := make([]string, 0, len(scores))
	for d := range scores {
		dims = append(dims, d)
	}
	sort.Strings(dims)
	return dims
}
