package runsettings

// CoverageOptions is the per-project configuration of the code coverage
// data collector. A value is treated as an immutable snapshot for a run.
type CoverageOptions struct {
	ModulePathsExclude     []string `json:"modulePathsExclude,omitempty" yaml:"modulePathsExclude,omitempty"`
	ModulePathsInclude     []string `json:"modulePathsInclude,omitempty" yaml:"modulePathsInclude,omitempty"`
	CompanyNamesExclude    []string `json:"companyNamesExclude,omitempty" yaml:"companyNamesExclude,omitempty"`
	CompanyNamesInclude    []string `json:"companyNamesInclude,omitempty" yaml:"companyNamesInclude,omitempty"`
	PublicKeyTokensExclude []string `json:"publicKeyTokensExclude,omitempty" yaml:"publicKeyTokensExclude,omitempty"`
	PublicKeyTokensInclude []string `json:"publicKeyTokensInclude,omitempty" yaml:"publicKeyTokensInclude,omitempty"`
	SourcesExclude         []string `json:"sourcesExclude,omitempty" yaml:"sourcesExclude,omitempty"`
	SourcesInclude         []string `json:"sourcesInclude,omitempty" yaml:"sourcesInclude,omitempty"`
	AttributesExclude      []string `json:"attributesExclude,omitempty" yaml:"attributesExclude,omitempty"`
	AttributesInclude      []string `json:"attributesInclude,omitempty" yaml:"attributesInclude,omitempty"`
	FunctionsExclude       []string `json:"functionsExclude,omitempty" yaml:"functionsExclude,omitempty"`
	FunctionsInclude       []string `json:"functionsInclude,omitempty" yaml:"functionsInclude,omitempty"`

	// IncludeTestAssembly keeps the test project's own dll in the coverage
	// results. When false the dll path is added to the module path excludes.
	IncludeTestAssembly bool `json:"includeTestAssembly" yaml:"includeTestAssembly"`

	// IncludeReferencedProjects adds every referenced project that is not
	// explicitly excluded to the module path includes.
	IncludeReferencedProjects bool `json:"includeReferencedProjects" yaml:"includeReferencedProjects"`

	Enabled bool `json:"enabled" yaml:"enabled"`
}

// Filters returns the settings-declared include and exclude values of the
// given category.
func (o *CoverageOptions) Filters(c Category) (include, exclude []string) {
	if o == nil {
		return nil, nil
	}
	switch c {
	case ModulePaths:
		return o.ModulePathsInclude, o.ModulePathsExclude
	case CompanyNames:
		return o.CompanyNamesInclude, o.CompanyNamesExclude
	case PublicKeyTokens:
		return o.PublicKeyTokensInclude, o.PublicKeyTokensExclude
	case Sources:
		return o.SourcesInclude, o.SourcesExclude
	case Attributes:
		return o.AttributesInclude, o.AttributesExclude
	case Functions:
		return o.FunctionsInclude, o.FunctionsExclude
	default:
		return nil, nil
	}
}

// ProjectRunDetails holds the run-time facts of one coverage project that
// the replacement factories need. It is created fresh for each test run.
type ProjectRunDetails struct {
	OutputFolder               string
	TestDLLFile                string
	ExcludedReferencedProjects []string
	IncludedReferencedProjects []string
	Settings                   *CoverageOptions
}

func (d ProjectRunDetails) settings() *CoverageOptions {
	if d.Settings == nil {
		return &CoverageOptions{}
	}
	return d.Settings
}

// TestContainer is a test assembly taking part in the current test run.
// Source is the key used to look up its ProjectRunDetails.
type TestContainer struct {
	Source string
}
