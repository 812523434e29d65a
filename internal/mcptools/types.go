package mcptools

import "github.com/dusk-indust/runsettings/internal/export"

// --- MCP Tool Input/Output Types ---
// The MCP Go SDK generates the JSON schema of each tool from these structs.

// ProjectReplacementsInput is the input for the project_replacements MCP tool.
type ProjectReplacementsInput struct {
	Project string `json:"project" jsonschema:"configured project name or test dll source"`
}

// MergedReplacementsInput is the input for the merged_replacements MCP tool.
type MergedReplacementsInput struct {
	Containers []string `json:"containers" jsonschema:"test container sources (test dll paths) taking part in the run"`
}

// ReplacementsOutput is the result of the project_replacements and
// merged_replacements MCP tools.
type ReplacementsOutput = export.ReplacementsExport

// RenderRunSettingsInput is the input for the render_runsettings MCP tool.
// Project takes precedence over Containers.
type RenderRunSettingsInput struct {
	Project    string   `json:"project,omitempty" jsonschema:"render the single-project template for this project"`
	Containers []string `json:"containers,omitempty" jsonschema:"render the merged template for these test container sources"`
}

// RenderRunSettingsOutput is the result of the render_runsettings MCP tool.
type RenderRunSettingsOutput struct {
	Mode     string `json:"mode"`
	Document string `json:"document"`
	Valid    bool   `json:"valid"`
	Message  string `json:"message,omitempty"`
}

// ListPlaceholdersInput is the input for the list_placeholders MCP tool.
type ListPlaceholdersInput struct{}

// ListPlaceholdersOutput is the result of the list_placeholders MCP tool.
type ListPlaceholdersOutput struct {
	Placeholders []PlaceholderInfo `json:"placeholders"`
}

// PlaceholderInfo describes one template token.
type PlaceholderInfo struct {
	Name  string `json:"name"`
	Token string `json:"token"`
}
