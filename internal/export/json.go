package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dusk-indust/runsettings/internal/runsettings"
)

// Format selects the encoding of an export.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat accepts "json", "yaml" or "yml", case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown export format %q (want json or yaml)", s)
	}
}

// ReplacementsExport is the top-level export structure of a replacement set.
type ReplacementsExport struct {
	Mode         string            `json:"mode" yaml:"mode"`
	Projects     []string          `json:"projects,omitempty" yaml:"projects,omitempty"`
	ExportedAt   string            `json:"exportedAt" yaml:"exportedAt"`
	Replacements map[string]string `json:"replacements" yaml:"replacements"`
}

// NewReplacementsExport builds the export of set. mode is "project" or
// "user_runsettings"; projects names the projects that contributed.
func NewReplacementsExport(mode string, projects []string, set runsettings.ReplacementSet) *ReplacementsExport {
	values := make(map[string]string, len(set))
	for p, v := range set {
		values[string(p)] = v
	}
	return &ReplacementsExport{
		Mode:         mode,
		Projects:     projects,
		ExportedAt:   time.Now().UTC().Format(time.RFC3339),
		Replacements: values,
	}
}

// Write encodes exp to w. Map keys are written in sorted order by both
// encoders.
func Write(w io.Writer, format Format, exp *ReplacementsExport) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(exp)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(exp); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown export format %q", format)
	}
}
