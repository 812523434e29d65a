// Package csproj reads the parts of .NET project files that decide which
// referenced projects are measured for coverage.
package csproj

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-logr/logr"
)

// ExcludeProperty is the project property that opts a referenced project
// out of coverage. Its presence is enough; the value is ignored.
const ExcludeProperty = "FCCExcludeFromCodeCoverage"

// Project is the subset of an MSBuild project file used here.
type Project struct {
	AssemblyName      string             `xml:"PropertyGroup>AssemblyName"`
	ExcludeMarkers    []string           `xml:"PropertyGroup>FCCExcludeFromCodeCoverage"`
	ProjectReferences []ProjectReference `xml:"ItemGroup>ProjectReference"`
	Path              string             `xml:"-"`
}

// ProjectReference is an <ItemGroup><ProjectReference Include=".."/> entry.
type ProjectReference struct {
	Include string `xml:"Include,attr"`
}

// Load parses the project file at path.
func Load(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var p Project
	if err := xml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	p.Path = path
	return &p, nil
}

// Name is the module name the project builds: its AssemblyName property,
// or the file name without extension when that is unset or computed.
func (p *Project) Name() string {
	name := strings.TrimSpace(p.AssemblyName)
	if name == "" || strings.Contains(name, "$(") {
		base := filepath.Base(p.Path)
		return strings.TrimSuffix(base, filepath.Ext(base))
	}
	return name
}

// Excluded reports whether the project opted out of coverage.
func (p *Project) Excluded() bool {
	return len(p.ExcludeMarkers) > 0
}

// ReferencePaths resolves the ProjectReference includes against the
// directory of the project file. MSBuild writes them with backslashes.
func (p *Project) ReferencePaths() []string {
	dir := filepath.Dir(p.Path)
	paths := make([]string, 0, len(p.ProjectReferences))
	for _, ref := range p.ProjectReferences {
		inc := strings.TrimSpace(ref.Include)
		if inc == "" {
			continue
		}
		inc = filepath.FromSlash(strings.ReplaceAll(inc, `\`, "/"))
		if !filepath.IsAbs(inc) {
			inc = filepath.Join(dir, inc)
		}
		paths = append(paths, filepath.Clean(inc))
	}
	return paths
}

// Referenced splits the referenced projects of a test project into those
// excluded from coverage and those to include.
type Referenced struct {
	Excluded []string
	Included []string
}

// Reader resolves referenced projects, logging the ones it cannot read.
type Reader struct {
	log logr.Logger
}

// NewReader creates a Reader.
func NewReader(log logr.Logger) *Reader {
	return &Reader{log: log}
}

// Referenced loads projectFile and each project it references. Referenced
// projects carrying ExcludeProperty are excluded; the rest are included
// only when includeReferenced is set. Unreadable references are skipped.
func (r *Reader) Referenced(projectFile string, includeReferenced bool) (Referenced, error) {
	var out Referenced

	p, err := Load(projectFile)
	if err != nil {
		return out, fmt.Errorf("load test project: %w", err)
	}

	for _, refPath := range p.ReferencePaths() {
		ref, err := Load(refPath)
		if err != nil {
			r.log.V(1).Info("skipping unreadable referenced project", "project", projectFile, "reference", refPath, "error", err.Error())
			continue
		}
		switch {
		case ref.Excluded():
			out.Excluded = append(out.Excluded, ref.Name())
		case includeReferenced:
			out.Included = append(out.Included, ref.Name())
		}
	}
	return out, nil
}
