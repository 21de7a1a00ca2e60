package service

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ludo-technologies/plagscan/domain"
)

// EncodeJSON returns an indented JSON string for the given value.
func EncodeJSON(v interface{}) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", domain.NewOutputError("failed to marshal JSON", err)
	}
	return string(data), nil
}

// WriteJSON writes indented JSON for the given value to the writer.
func WriteJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return domain.NewOutputError("failed to encode JSON", err)
	}
	return nil
}

// WriteYAML writes YAML for the given value to the writer.
func WriteYAML(w io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return domain.NewOutputError("failed to encode YAML", err)
	}
	return nil
}

// Standard formatting constants
const (
	HeaderWidth    = 40
	LabelWidth     = 18
	SectionPadding = 2
)

// ANSI color codes for consistent color usage
const (
	ColorReset   = "\x1b[0m"
	ColorRed     = "\x1b[31m"
	ColorYellow  = "\x1b[33m"
	ColorGreen   = "\x1b[32m"
	ColorMagenta = "\x1b[35m"
	ColorBold    = "\x1b[1m"
)

// FormatUtils provides shared text formatting
type FormatUtils struct {
	color bool
}

// NewFormatUtils creates a new format utilities instance
func NewFormatUtils(color bool) *FormatUtils {
	return &FormatUtils{color: color}
}

// FormatMainHeader creates a standardized main header
func (f *FormatUtils) FormatMainHeader(title string) string {
	return title + "\n" + strings.Repeat("=", HeaderWidth) + "\n\n"
}

// FormatSectionHeader creates a standardized section header
func (f *FormatUtils) FormatSectionHeader(title string) string {
	return strings.ToUpper(title) + "\n" + strings.Repeat("-", len(title)) + "\n"
}

// FormatLabel creates a right aligned label
func (f *FormatUtils) FormatLabel(label string, value interface{}) string {
	padding := max(LabelWidth-len(label), 0)
	return fmt.Sprintf("%s%s: %v\n", strings.Repeat(" ", padding), label, value)
}

// FormatScore renders a score in [0,1] as a percentage
func (f *FormatUtils) FormatScore(score float64) string {
	return fmt.Sprintf("%.1f%%", score*100)
}

// GetRiskColor returns the color for a risk tier
func (f *FormatUtils) GetRiskColor(risk domain.RiskLevel) string {
	switch risk {
	case domain.RiskVeryHigh:
		return ColorMagenta
	case domain.RiskHigh:
		return ColorRed
	case domain.RiskMedium:
		return ColorYellow
	case domain.RiskLow:
		return ColorGreen
	default:
		return ColorReset
	}
}

// FormatRisk renders a risk tier, colored when enabled
func (f *FormatUtils) FormatRisk(risk domain.RiskLevel) string {
	label := strings.ToUpper(strings.ReplaceAll(risk.String(), "_", " "))
	if !f.color {
		return label
	}
	return f.GetRiskColor(risk) + label + ColorReset
}
