package runsettings

import "strconv"

// ForProject builds the replacements for a run settings file that serves a
// single coverage project. It never fails: absent input renders as "".
func ForProject(d ProjectRunDetails, testAdapter string) ReplacementSet {
	settings := d.settings()

	values := newFilterValues()
	values.addReferenced(d)
	values.addTestAssembly(d)
	values.addSettings(settings)

	set := ReplacementSet{
		TestAdapter:      testAdapter,
		Enabled:          strconv.FormatBool(settings.Enabled),
		ResultsDirectory: d.OutputFolder,
	}
	values.render(set)
	return set
}
