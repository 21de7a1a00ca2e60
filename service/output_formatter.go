package service

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/ludo-technologies/plagscan/domain"
)

// OutputFormatterImpl implements the OutputFormatter interface
type OutputFormatterImpl struct {
	// Color enables ANSI colors in text output
	Color bool
}

// NewOutputFormatter creates a new output formatter service
func NewOutputFormatter() *OutputFormatterImpl {
	return &OutputFormatterImpl{}
}

// WriteComparison renders a pairwise comparison
func (f *OutputFormatterImpl) WriteComparison(result *domain.ComparisonResult, format domain.OutputFormat, writer io.Writer) error {
	switch format {
	case domain.OutputFormatText:
		return f.writeText(writer, f.comparisonText(result))
	case domain.OutputFormatJSON:
		return WriteJSON(writer, result)
	case domain.OutputFormatYAML:
		return WriteYAML(writer, result)
	case domain.OutputFormatCSV:
		header := append([]string{"id", "language1", "language2"}, breakdownHeader()...)
		header = append(header, "overall_score", "risk_level", "degraded")
		row := append([]string{result.ID, submissionLanguage(result.Submission1), submissionLanguage(result.Submission2)},
			breakdownRow(result.Breakdown)...)
		row = append(row, formatFloat(result.OverallScore), result.RiskLevel.String(), strconv.FormatBool(result.Degraded))
		return writeCSV(writer, header, [][]string{row})
	default:
		return domain.NewUnsupportedFormatError(string(format))
	}
}

// WriteSearch renders ranked corpus matches
func (f *OutputFormatterImpl) WriteSearch(response *domain.SearchResponse, format domain.OutputFormat, writer io.Writer) error {
	switch format {
	case domain.OutputFormatText:
		return f.writeText(writer, f.searchText(response))
	case domain.OutputFormatJSON:
		return WriteJSON(writer, response)
	case domain.OutputFormatYAML:
		return WriteYAML(writer, response)
	case domain.OutputFormatCSV:
		header := append([]string{"rank", "entry_id", "language", "source", "description"}, breakdownHeader()...)
		header = append(header, "overall_score", "risk_level")
		rows := make([][]string, 0, len(response.Matches))
		for i, m := range response.Matches {
			row := append([]string{strconv.Itoa(i + 1), strconv.FormatInt(m.EntryID, 10), string(m.Language), m.Source, m.Description},
				breakdownRow(m.Breakdown)...)
			rows = append(rows, append(row, formatFloat(m.OverallScore), m.RiskLevel.String()))
		}
		return writeCSV(writer, header, rows)
	default:
		return domain.NewUnsupportedFormatError(string(format))
	}
}

// WriteBatch renders pairwise batch results
func (f *OutputFormatterImpl) WriteBatch(response *domain.BatchCompareResponse, format domain.OutputFormat, writer io.Writer) error {
	switch format {
	case domain.OutputFormatText:
		return f.writeText(writer, f.batchText(response))
	case domain.OutputFormatJSON:
		return WriteJSON(writer, response)
	case domain.OutputFormatYAML:
		return WriteYAML(writer, response)
	case domain.OutputFormatCSV:
		header := append([]string{"name1", "name2"}, breakdownHeader()...)
		header = append(header, "overall_score", "risk_level")
		rows := make([][]string, 0, len(response.Pairs))
		for _, p := range response.Pairs {
			row := append([]string{p.Name1, p.Name2}, breakdownRow(p.Breakdown)...)
			rows = append(rows, append(row, formatFloat(p.OverallScore), p.RiskLevel.String()))
		}
		return writeCSV(writer, header, rows)
	default:
		return domain.NewUnsupportedFormatError(string(format))
	}
}

// WriteEntries renders a corpus listing
func (f *OutputFormatterImpl) WriteEntries(entries []domain.CorpusEntry, format domain.OutputFormat, writer io.Writer) error {
	switch format {
	case domain.OutputFormatText:
		return f.writeText(writer, f.entriesText(entries))
	case domain.OutputFormatJSON:
		return WriteJSON(writer, entries)
	case domain.OutputFormatYAML:
		return WriteYAML(writer, entries)
	case domain.OutputFormatCSV:
		header := []string{"id", "language", "source", "description", "content_hash", "created_at"}
		rows := make([][]string, 0, len(entries))
		for _, e := range entries {
			rows = append(rows, []string{
				strconv.FormatInt(e.ID, 10),
				string(e.Language),
				e.Source,
				e.Description,
				e.ContentHash,
				e.CreatedAt.UTC().Format(time.RFC3339),
			})
		}
		return writeCSV(writer, header, rows)
	default:
		return domain.NewUnsupportedFormatError(string(format))
	}
}

func (f *OutputFormatterImpl) comparisonText(result *domain.ComparisonResult) string {
	var builder strings.Builder
	utils := NewFormatUtils(f.Color)

	builder.WriteString(utils.FormatMainHeader("Code Similarity Report"))
	builder.WriteString(utils.FormatLabel("Overall Score", utils.FormatScore(result.OverallScore)))
	builder.WriteString(utils.FormatLabel("Risk Level", utils.FormatRisk(result.RiskLevel)))
	builder.WriteString(utils.FormatLabel("Languages",
		submissionLanguage(result.Submission1)+" / "+submissionLanguage(result.Submission2)))
	if result.Degraded {
		builder.WriteString(utils.FormatLabel("Degraded", degradedNote(result.Breakdown)))
	}
	builder.WriteString("\n")

	builder.WriteString(utils.FormatSectionHeader("Signals"))
	builder.WriteString(breakdownTable(result.Breakdown))
	builder.WriteString("\n")

	if len(result.EvidenceBlocks) > 0 {
		builder.WriteString(utils.FormatSectionHeader("Evidence"))
		table, buf := newTable([]string{"Line 1", "Line 2", "Text"})
		for _, e := range result.EvidenceBlocks {
			table.Append([]string{strconv.Itoa(e.Line1), strconv.Itoa(e.Line2), e.Text})
		}
		table.Render()
		builder.WriteString(buf.String())
		builder.WriteString("\n")
	}

	if d := result.Details; d != nil {
		builder.WriteString(utils.FormatSectionHeader("Details"))
		builder.WriteString(utils.FormatLabel("Common functions", joinOrDash(d.CommonFunctions)))
		builder.WriteString(utils.FormatLabel("Only in first", joinOrDash(d.OnlyInFirst)))
		builder.WriteString(utils.FormatLabel("Only in second", joinOrDash(d.OnlyInSecond)))
		builder.WriteString(utils.FormatLabel("Lines", fmt.Sprintf("%d / %d", d.Statistics.Lines1, d.Statistics.Lines2)))
		builder.WriteString(utils.FormatLabel("Functions", fmt.Sprintf("%d / %d", d.Statistics.Functions1, d.Statistics.Functions2)))
		builder.WriteString(utils.FormatLabel("Variables", fmt.Sprintf("%d / %d", d.Statistics.Variables1, d.Statistics.Variables2)))
		if len(d.Diff) > 0 {
			builder.WriteString("\n")
			for _, line := range d.Diff {
				builder.WriteString(line)
				builder.WriteString("\n")
			}
		}
		builder.WriteString("\n")
	}

	return builder.String()
}

func (f *OutputFormatterImpl) searchText(response *domain.SearchResponse) string {
	var builder strings.Builder
	utils := NewFormatUtils(f.Color)

	builder.WriteString(utils.FormatMainHeader("Corpus Search Report"))
	builder.WriteString(utils.FormatLabel("Language", response.Language))
	builder.WriteString(utils.FormatLabel("Entries Checked", response.TotalChecked))
	builder.WriteString(utils.FormatLabel("Matches", len(response.Matches)))
	builder.WriteString(utils.FormatLabel("Highest Score", utils.FormatScore(response.HighestScore)))
	builder.WriteString(utils.FormatLabel("Risk Level", utils.FormatRisk(response.RiskLevel)))
	if response.Degraded {
		builder.WriteString(utils.FormatLabel("Degraded", "semantic signal unavailable"))
	}
	builder.WriteString("\n")

	if len(response.Matches) == 0 {
		builder.WriteString("No matches above the report floor.\n")
		return builder.String()
	}

	builder.WriteString(utils.FormatSectionHeader("Matches"))
	table, buf := newTable([]string{"#", "Entry", "Score", "Risk", "Language", "Source", "Description"})
	for i, m := range response.Matches {
		table.Append([]string{
			strconv.Itoa(i + 1),
			strconv.FormatInt(m.EntryID, 10),
			utils.FormatScore(m.OverallScore),
			m.RiskLevel.String(),
			string(m.Language),
			m.Source,
			m.Description,
		})
	}
	table.Render()
	builder.WriteString(buf.String())
	return builder.String()
}

func (f *OutputFormatterImpl) batchText(response *domain.BatchCompareResponse) string {
	var builder strings.Builder
	utils := NewFormatUtils(f.Color)

	builder.WriteString(utils.FormatMainHeader("Batch Similarity Report"))
	builder.WriteString(utils.FormatLabel("Pairs Compared", response.TotalPairs))
	builder.WriteString(utils.FormatLabel("Pairs Reported", len(response.Pairs)))
	if response.Degraded {
		builder.WriteString(utils.FormatLabel("Degraded", "semantic signal unavailable"))
	}
	builder.WriteString("\n")

	if len(response.Pairs) == 0 {
		return builder.String()
	}

	table, buf := newTable([]string{"First", "Second", "Score", "Risk", "Lexical", "Structural", "Semantic"})
	for _, p := range response.Pairs {
		table.Append([]string{
			p.Name1,
			p.Name2,
			utils.FormatScore(p.OverallScore),
			p.RiskLevel.String(),
			formatFloat(p.Breakdown.Lexical),
			formatFloat(p.Breakdown.Structural),
			formatFloat(p.Breakdown.Semantic),
		})
	}
	table.Render()
	builder.WriteString(buf.String())
	return builder.String()
}

func (f *OutputFormatterImpl) entriesText(entries []domain.CorpusEntry) string {
	var builder strings.Builder
	utils := NewFormatUtils(f.Color)

	builder.WriteString(utils.FormatMainHeader("Corpus Entries"))
	builder.WriteString(utils.FormatLabel("Total", len(entries)))
	builder.WriteString("\n")
	if len(entries) == 0 {
		return builder.String()
	}

	table, buf := newTable([]string{"ID", "Language", "Source", "Description", "Hash"})
	for _, e := range entries {
		hash := e.ContentHash
		if len(hash) > 12 {
			hash = hash[:12]
		}
		table.Append([]string{strconv.FormatInt(e.ID, 10), string(e.Language), e.Source, e.Description, hash})
	}
	table.Render()
	builder.WriteString(buf.String())
	return builder.String()
}

func (f *OutputFormatterImpl) writeText(writer io.Writer, text string) error {
	if _, err := io.WriteString(writer, text); err != nil {
		return domain.NewOutputError("failed to write output", err)
	}
	return nil
}

func newTable(header []string) (*tablewriter.Table, *strings.Builder) {
	buf := &strings.Builder{}
	table := tablewriter.NewWriter(buf)
	table.SetHeader(header)
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	return table, buf
}

func breakdownTable(b domain.SimilarityBreakdown) string {
	table, buf := newTable([]string{"Signal", "Score", "Weight"})
	table.Append([]string{"Semantic", formatFloat(b.Semantic), formatFloat(b.Weights.Semantic)})
	table.Append([]string{"Structural", formatFloat(b.Structural), formatFloat(b.Weights.Structural)})
	table.Append([]string{"Lexical", formatFloat(b.Lexical), formatFloat(b.Weights.Lexical)})
	table.Append([]string{"Token sequence", formatFloat(b.TokenSequence), formatFloat(b.Weights.TokenSequence)})
	table.Render()
	return buf.String()
}

func breakdownHeader() []string {
	return []string{"lexical", "structural", "semantic", "token_sequence"}
}

func breakdownRow(b domain.SimilarityBreakdown) []string {
	return []string{
		formatFloat(b.Lexical),
		formatFloat(b.Structural),
		formatFloat(b.Semantic),
		formatFloat(b.TokenSequence),
	}
}

func writeCSV(writer io.Writer, header []string, rows [][]string) error {
	w := csv.NewWriter(writer)
	if err := w.Write(header); err != nil {
		return domain.NewOutputError("failed to write CSV header", err)
	}
	if err := w.WriteAll(rows); err != nil {
		return domain.NewOutputError("failed to write CSV rows", err)
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}

func submissionLanguage(s *domain.CodeSubmission) string {
	if s == nil {
		return string(domain.LanguageUnknown)
	}
	return s.EffectiveLanguage().String()
}

func degradedNote(b domain.SimilarityBreakdown) string {
	if b.DegradedReason != "" {
		return "semantic signal unavailable (" + b.DegradedReason + ")"
	}
	return "semantic signal unavailable"
}

func joinOrDash(items []string) string {
	if len(items) == 0 {
		return "-"
	}
	return strings.Join(items, ", ")
}
