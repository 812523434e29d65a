// Package templatedata embeds the run settings templates and the starter
// configuration shipped inside the runsettings binary.
package templatedata

import (
	"embed"
	"fmt"
	"io/fs"
)

// Paths of the embedded files, relative to TemplatesFS.
const (
	ProjectTemplate         = "templates/ms-runsettings.xml"
	UserRunSettingsTemplate = "templates/ms-user-runsettings.xml"
	StarterConfig           = "templates/runsettings.yml"
)

// TemplatesFS contains the embedded templates. Walk from "templates" to
// iterate over all files.
//
//go:embed templates/*
var TemplatesFS embed.FS

// Read returns the embedded file at name as a string.
func Read(name string) (string, error) {
	data, err := fs.ReadFile(TemplatesFS, name)
	if err != nil {
		return "", fmt.Errorf("read embedded %s: %w", name, err)
	}
	return string(data), nil
}
