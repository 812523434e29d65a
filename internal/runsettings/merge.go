package runsettings

import "errors"

// ErrNilContainers is returned when the merger is handed no container list
// at all, which is distinct from an empty run.
var ErrNilContainers = errors.New("runsettings: nil test container list")

// ForUserRunSettings merges the replacements of every project in lookup
// whose key is the source of one of containers. Projects are visited in
// container order; entries of lookup outside the run are ignored.
//
// ModulePaths excludes list the referenced projects of every project, then
// every excluded test dll, then the values declared in settings.
//
// The merged set has no Enabled entry. ResultsDirectory is the first
// non-empty output folder in container order.
func ForUserRunSettings(containers []TestContainer, lookup map[string]ProjectRunDetails, testAdapter string) (ReplacementSet, error) {
	if containers == nil {
		return nil, ErrNilContainers
	}

	projects := Participating(containers, lookup)

	values := newFilterValues()
	for _, d := range projects {
		values.addReferenced(d)
	}
	for _, d := range projects {
		values.addTestAssembly(d)
	}
	for _, d := range projects {
		values.addSettings(d.Settings)
	}

	set := ReplacementSet{
		TestAdapter:      testAdapter,
		ResultsDirectory: "",
	}
	for _, d := range projects {
		if d.OutputFolder != "" {
			set[ResultsDirectory] = d.OutputFolder
			break
		}
	}
	values.render(set)
	return set, nil
}

// Participating returns the details of the projects in lookup that belong
// to containers, in container order. A source listed twice is returned once.
func Participating(containers []TestContainer, lookup map[string]ProjectRunDetails) []ProjectRunDetails {
	seen := make(map[string]bool, len(containers))
	var projects []ProjectRunDetails
	for _, c := range containers {
		if seen[c.Source] {
			continue
		}
		d, ok := lookup[c.Source]
		if !ok {
			continue
		}
		seen[c.Source] = true
		projects = append(projects, d)
	}
	return projects
}
