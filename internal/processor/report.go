package processor

import (
	"fmt"
	"strings"

	"github.com/crediscope/crediscope/internal/models"
)

// renderReport builds the human-readable analysis report. Only names that
// resolved to stored tags render as links; unknown names stay plain text,
// which is why tags must be persisted before the report is rendered.
func renderReport(item *models.ContentItem, sa *models.StructuredAnalysis, resolved map[string]models.TagRef) string {
	var b strings.Builder

	b.WriteString("## Analysis\n\n")
	if sa.AnalysisText != "" {
		b.WriteString(sa.AnalysisText)
		b.WriteString("\n\n")
	}

	if len(sa.Entities) > 0 {
		b.WriteString("### Entities\n\n")
		for _, entity := range sa.Entities {
			if entity.Name == "" {
				continue
			}
			b.WriteString("- ")
			b.WriteString(tagLink(entity.Name, resolved))
			if len(entity.Motivations) > 0 {
				linked := make([]string, 0, len(entity.Motivations))
				for _, m := range entity.Motivations {
					linked = append(linked, tagLink(m, resolved))
				}
				b.WriteString(" — motivations: ")
				b.WriteString(strings.Join(linked, ", "))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if sa.KeyMetric != "" {
		fmt.Fprintf(&b, "**Key metric:** %s\n\n", tagLink(sa.KeyMetric, resolved))
	}

	b.WriteString("### Scores\n\n")
	writeScore(&b, "Credibility", sa.CredibilityScore, CredibilityLabel)
	writeScore(&b, "Bias", sa.BiasRating, BiasLabel)
	writeScore(&b, "Sentiment", item.SentimentScore, SentimentLabel)
	writeScore(&b, "Authoritarianism risk", sa.AuthoritarianismScore, AuthoritarianismLabel)
	b.WriteString("\n")

	if sa.BiasAnalysisText != "" {
		b.WriteString("### Bias analysis\n\n")
		b.WriteString(sa.BiasAnalysisText)
		b.WriteString("\n\n")
	}

	if item.SourceName != "" {
		fmt.Fprintf(&b, "**Source:** %s\n", tagLink(item.SourceName, resolved))
	}

	return strings.TrimRight(b.String(), "\n") + "\n"
}

func writeScore(b *strings.Builder, name string, score *int, label func(int) string) {
	if score == nil {
		fmt.Fprintf(b, "- %s: n/a\n", name)
		return
	}
	fmt.Fprintf(b, "- %s: %d/100 (%s)\n", name, *score, label(*score))
}

func tagLink(name string, resolved map[string]models.TagRef) string {
	if ref, ok := resolved[name]; ok && ref.StoreID != "" {
		return fmt.Sprintf("[%s](/tags/%s)", name, ref.StoreID)
	}
	return name
}
