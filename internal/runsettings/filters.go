package runsettings

// filterValues collects the ordered raw values of every category before
// they are rendered. Module paths derived from referenced projects come
// first, then test assemblies, then the values declared in settings.
type filterValues struct {
	include map[Category][]string
	exclude map[Category][]string
}

func newFilterValues() *filterValues {
	return &filterValues{
		include: make(map[Category][]string, len(Categories)),
		exclude: make(map[Category][]string, len(Categories)),
	}
}

// addReferenced appends the module name patterns of the excluded and
// included referenced projects.
func (f *filterValues) addReferenced(d ProjectRunDetails) {
	for _, name := range d.ExcludedReferencedProjects {
		if name == "" {
			continue
		}
		f.exclude[ModulePaths] = append(f.exclude[ModulePaths], RegexModuleName(name))
	}
	for _, name := range d.IncludedReferencedProjects {
		if name == "" {
			continue
		}
		f.include[ModulePaths] = append(f.include[ModulePaths], RegexModuleName(name))
	}
}

// addTestAssembly excludes the test dll unless the project includes it.
// An empty pattern would match every module.
func (f *filterValues) addTestAssembly(d ProjectRunDetails) {
	if !d.settings().IncludeTestAssembly && d.TestDLLFile != "" {
		f.exclude[ModulePaths] = append(f.exclude[ModulePaths], RegexEscapePath(d.TestDLLFile))
	}
}

func (f *filterValues) addSettings(o *CoverageOptions) {
	for _, c := range Categories {
		include, exclude := o.Filters(c)
		f.include[c] = append(f.include[c], include...)
		f.exclude[c] = append(f.exclude[c], exclude...)
	}
}

func (f *filterValues) render(set ReplacementSet) {
	for _, c := range Categories {
		set[c.Exclude()] = BuildElementListReplacement(c.Element(), f.exclude[c])
		set[c.Include()] = BuildElementListReplacement(c.Element(), f.include[c])
	}
}
