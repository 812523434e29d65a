package runsettings

import "sort"

// Category is a filter section of the CodeCoverage configuration, e.g.
// <ModulePaths><Include><ModulePath>..</ModulePath></Include></ModulePaths>.
type Category string

const (
	ModulePaths     Category = "ModulePaths"
	CompanyNames    Category = "CompanyNames"
	PublicKeyTokens Category = "PublicKeyTokens"
	Sources         Category = "Sources"
	Attributes      Category = "Attributes"
	Functions       Category = "Functions"
)

// Categories lists every filter category in template order.
var Categories = []Category{ModulePaths, CompanyNames, PublicKeyTokens, Sources, Attributes, Functions}

// Element returns the name of the child element holding one filter value.
func (c Category) Element() string {
	switch c {
	case ModulePaths:
		return "ModulePath"
	case CompanyNames:
		return "CompanyName"
	case PublicKeyTokens:
		return "PublicKeyToken"
	case Sources:
		return "Source"
	case Attributes:
		return "Attribute"
	case Functions:
		return "Function"
	default:
		return string(c)
	}
}

// Include is the placeholder receiving the category's include elements.
func (c Category) Include() Placeholder { return Placeholder(string(c) + "Include") }

// Exclude is the placeholder receiving the category's exclude elements.
func (c Category) Exclude() Placeholder { return Placeholder(string(c) + "Exclude") }

// Placeholder names a token of the run settings template.
type Placeholder string

const (
	TestAdapter      Placeholder = "TestAdapter"
	Enabled          Placeholder = "Enabled"
	ResultsDirectory Placeholder = "ResultsDirectory"

	ModulePathsExclude     Placeholder = "ModulePathsExclude"
	ModulePathsInclude     Placeholder = "ModulePathsInclude"
	CompanyNamesExclude    Placeholder = "CompanyNamesExclude"
	CompanyNamesInclude    Placeholder = "CompanyNamesInclude"
	PublicKeyTokensExclude Placeholder = "PublicKeyTokensExclude"
	PublicKeyTokensInclude Placeholder = "PublicKeyTokensInclude"
	SourcesExclude         Placeholder = "SourcesExclude"
	SourcesInclude         Placeholder = "SourcesInclude"
	AttributesExclude      Placeholder = "AttributesExclude"
	AttributesInclude      Placeholder = "AttributesInclude"
	FunctionsExclude       Placeholder = "FunctionsExclude"
	FunctionsInclude       Placeholder = "FunctionsInclude"
)

// Token is the literal text standing for p in a template.
func (p Placeholder) Token() string { return "$" + string(p) + "$" }

// ReplacementSet maps each placeholder to the literal text substituted for
// it. Values are never absent for a placeholder the factory owns: missing
// input degrades to "".
type ReplacementSet map[Placeholder]string

// Placeholders returns the keys of s in sorted order.
func (s ReplacementSet) Placeholders() []Placeholder {
	keys := make([]Placeholder, 0, len(s))
	for p := range s {
		keys = append(keys, p)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// AllPlaceholders lists every placeholder a single-project set carries.
func AllPlaceholders() []Placeholder {
	all := []Placeholder{TestAdapter, Enabled, ResultsDirectory}
	for _, c := range Categories {
		all = append(all, c.Exclude(), c.Include())
	}
	return all
}
