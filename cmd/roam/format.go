package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/chuckjewell/roam-code/internal/coupling"
	"github.com/chuckjewell/roam-code/internal/history"
	"github.com/chuckjewell/roam-code/internal/liveness"
	"github.com/chuckjewell/roam-code/internal/traversal"
)

// OutputFormat represents the output format type.
type OutputFormat string

const (
	FormatJSON  OutputFormat = "json"
	FormatHuman OutputFormat = "human"
)

// FormatResponse formats a response according to the specified format.
func FormatResponse(resp interface{}, format OutputFormat) (string, error) {
	switch format {
	case FormatJSON:
		return formatJSON(resp)
	case FormatHuman:
		return formatHuman(resp)
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

func formatJSON(resp interface{}) (string, error) {
	data, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return string(data), nil
}

func formatHuman(resp interface{}) (string, error) {
	switch v := resp.(type) {
	case *HealthResponse:
		return formatHealthHuman(v), nil
	case *CyclesResponse:
		return formatCyclesHuman(v), nil
	case *LayersResponse:
		return formatLayersHuman(v), nil
	case *BlastResponse:
		return formatBlastHuman(v), nil
	case *AffectedResponse:
		return formatAffectedHuman(v), nil
	case *EntrypointsResponse:
		return formatEntrypointsHuman(v), nil
	case *traversal.CoverageResult:
		return formatCoverageHuman(v), nil
	case *liveness.Result:
		return formatDeadHuman(v), nil
	case *CouplingPairsResponse:
		return formatCouplingPairsHuman(v), nil
	case *CouplingSetsResponse:
		return formatCouplingSetsHuman(v), nil
	case *coupling.AgainstResult:
		return formatAgainstHuman(v), nil
	case *FanResponse:
		return formatFanHuman(v), nil
	case *history.Trend:
		return formatTrendHuman(v), nil
	case *AlertsResponse:
		return formatAlertsHuman(v), nil
	default:
		// Unknown types fall back to JSON.
		return formatJSON(resp)
	}
}

func formatHealthHuman(r *HealthResponse) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Health score: %d/100\n\n", r.Score)
	fmt.Fprintf(&b, "  Files:            %d\n", r.Files)
	fmt.Fprintf(&b, "  Symbols:          %d\n", r.Symbols)
	fmt.Fprintf(&b, "  Edges:            %d\n", r.Edges)
	fmt.Fprintf(&b, "  Cycles:           %d (%d symbols, %.1f%% tangled)\n",
		r.Cycles, r.CycleSymbols, r.TangleRatio)
	fmt.Fprintf(&b, "  God components:   %d\n", r.GodComponents)
	fmt.Fprintf(&b, "  Bottlenecks:      %d\n", r.Bottlenecks)
	fmt.Fprintf(&b, "  Dead exports:     %d\n", r.DeadExports)
	fmt.Fprintf(&b, "  Layer violations: %d\n", r.LayerViolations)
	return b.String()
}

func formatCyclesHuman(r *CyclesResponse) string {
	if r.Total == 0 {
		return "No dependency cycles found."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d dependency cycle(s):\n\n", r.Total)
	for i, c := range r.Cycles {
		fmt.Fprintf(&b, "%d. %s (%d symbols)\n", i+1, c.Label, c.Size)
		fmt.Fprintf(&b, "   %s\n", strings.Join(c.Members, " -> "))
		if c.Suggestion != nil {
			fmt.Fprintf(&b, "   break: %s -> %s (%s)\n",
				c.Suggestion.Source, c.Suggestion.Target, c.Suggestion.Reason)
		}
	}
	return b.String()
}

func formatLayersHuman(r *LayersResponse) string {
	var b strings.Builder
	if len(r.Layers) == 0 {
		b.WriteString("No layers detected.\n")
		return b.String()
	}
	fmt.Fprintf(&b, "%d layer(s):\n", len(r.Layers))
	for _, l := range r.Layers {
		fmt.Fprintf(&b, "  L%d: %d symbols", l.Index, l.Symbols)
		if len(l.Examples) > 0 {
			fmt.Fprintf(&b, " (%s)", strings.Join(l.Examples, ", "))
		}
		b.WriteString("\n")
	}
	if len(r.Violations) > 0 {
		fmt.Fprintf(&b, "\n%d violation(s):\n", len(r.Violations))
		for _, v := range r.Violations {
			fmt.Fprintf(&b, "  %s (L%d) -> %s (L%d)\n",
				v.Source, v.SourceLayer, v.Target, v.TargetLayer)
		}
	}
	if r.Chain != nil {
		fmt.Fprintf(&b, "\nDeepest chain (%d): %s\n",
			r.Chain.Length, strings.Join(r.Chain.Names, " -> "))
	}
	return b.String()
}

func formatBlastHuman(r *BlastResponse) string {
	return fmt.Sprintf("%s: %d dependent symbol(s) across %d file(s)",
		r.Symbol, r.Dependents, r.Files)
}

func formatAffectedHuman(r *AffectedResponse) string {
	if len(r.Tests) == 0 {
		return fmt.Sprintf("No tests found for %s.", r.Symbol)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d test(s) affected by %s:\n", len(r.Tests), r.Symbol)
	for _, t := range r.Tests {
		fmt.Fprintf(&b, "  [%s] %s (%s", t.Relationship, t.Name, t.File)
		if t.Via != "" {
			fmt.Fprintf(&b, ", via %s", t.Via)
		}
		fmt.Fprintf(&b, ", %d hop(s))\n", t.Hops)
	}
	return b.String()
}

func formatEntrypointsHuman(r *EntrypointsResponse) string {
	if len(r.Entries) == 0 {
		return fmt.Sprintf("No entry points reach %s.", r.Target)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d entry point(s) reaching %s:\n", len(r.Entries), r.Target)
	for _, e := range r.Entries {
		fmt.Fprintf(&b, "  %s (%s, %d hop(s))\n", e.Name, e.Kind, e.Hops)
	}
	return b.String()
}

func formatCoverageHuman(r *traversal.CoverageResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Coverage: %.1f%% (%d/%d entries, %d gate(s))\n",
		r.CoveragePct, len(r.Covered), r.Total, r.Gates)
	if len(r.Uncovered) > 0 {
		b.WriteString("\nUncovered:\n")
		for _, u := range r.Uncovered {
			fmt.Fprintf(&b, "  %s (%s:%d) - %s\n", u.Name, u.File, u.Line, u.Reason)
		}
	}
	if len(r.Covered) > 0 {
		b.WriteString("\nCovered:\n")
		for _, c := range r.Covered {
			fmt.Fprintf(&b, "  %s -> %s (depth %d)\n", c.Name, c.Gate, c.Depth)
		}
	}
	return b.String()
}

func formatDeadHuman(r *liveness.Result) string {
	if len(r.Dead) == 0 {
		return fmt.Sprintf("No dead exports (%d candidate(s), %d rescued).",
			r.Candidates, r.Rescued)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d dead export(s) (%d rescued via re-exports):\n",
		len(r.Dead), r.Rescued)
	for _, d := range r.Dead {
		fmt.Fprintf(&b, "  [%s] %s %s (%s:%d)\n", d.Confidence, d.Kind, d.Name, d.File, d.Line)
	}
	return b.String()
}

func formatCouplingPairsHuman(r *CouplingPairsResponse) string {
	if len(r.Pairs) == 0 {
		return "No coupled pairs above thresholds."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d coupled pair(s):\n", len(r.Pairs))
	for _, p := range r.Pairs {
		marker := ""
		if p.Hidden {
			marker = " [hidden]"
		}
		fmt.Fprintf(&b, "  %.2f %s <-> %s (%d co-changes)%s\n",
			p.Strength, p.FileA, p.FileB, p.Cochanges, marker)
	}
	return b.String()
}

func formatCouplingSetsHuman(r *CouplingSetsResponse) string {
	if len(r.Sets) == 0 {
		return "No recurring change-sets found."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d recurring change-set(s):\n", len(r.Sets))
	for _, s := range r.Sets {
		fmt.Fprintf(&b, "  x%d (%d files, %.0f%% structural):\n",
			s.Occurrences, s.Size, s.StructuralPct)
		for _, f := range s.Files {
			fmt.Fprintf(&b, "    %s\n", f)
		}
	}
	return b.String()
}

func formatAgainstHuman(r *coupling.AgainstResult) string {
	var b strings.Builder
	if len(r.Missing) > 0 {
		fmt.Fprintf(&b, "%d historically coupled file(s) missing from this change:\n", len(r.Missing))
		for _, p := range r.Missing {
			fmt.Fprintf(&b, "  %.2f %s (%d co-changes, via %s)\n",
				p.Strength, p.File, p.Cochanges, strings.Join(p.Via, ", "))
		}
	} else {
		b.WriteString("No historically coupled files are missing.\n")
	}
	if len(r.Included) > 0 {
		fmt.Fprintf(&b, "\n%d coupled file(s) already included:\n", len(r.Included))
		for _, p := range r.Included {
			fmt.Fprintf(&b, "  %.2f %s (%d co-changes)\n", p.Strength, p.File, p.Cochanges)
		}
	}
	if len(r.Unresolved) > 0 {
		fmt.Fprintf(&b, "\nUnresolved path(s): %s\n", strings.Join(r.Unresolved, ", "))
	}
	return b.String()
}

func formatFanHuman(r *FanResponse) string {
	var b strings.Builder
	b.WriteString("Top symbols by degree:\n")
	for _, s := range r.Symbols {
		fmt.Fprintf(&b, "  %4d in / %4d out  %s %s (%s)\n",
			s.InDegree, s.OutDegree, s.Kind, s.Name, s.File)
	}
	b.WriteString("\nTop files by import fan:\n")
	for _, f := range r.Files {
		fmt.Fprintf(&b, "  %4d in / %4d out  %s\n", f.FanIn, f.FanOut, f.Path)
	}
	return b.String()
}

func formatTrendHuman(r *history.Trend) string {
	if r.Snapshots < 2 {
		return fmt.Sprintf("%d snapshot(s); need at least 2 for a trend.", r.Snapshots)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Trend across %d snapshot(s):\n", r.Snapshots)
	if len(r.Deltas) == 0 {
		b.WriteString("  No metric changed.\n")
	}
	for _, d := range r.Deltas {
		direction := "improved"
		if d.Worsening {
			direction = "worsened"
		}
		fmt.Fprintf(&b, "  %-16s %.1f -> %.1f (%s)\n", d.Metric, d.From, d.To, direction)
	}
	return b.String()
}

func formatAlertsHuman(r *AlertsResponse) string {
	if len(r.Alerts) == 0 {
		return "No alerts."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d alert(s):\n", len(r.Alerts))
	for _, a := range r.Alerts {
		fmt.Fprintf(&b, "  [%s] %s: %s\n", a.Severity, a.Metric, a.Message)
	}
	return b.String()
}
