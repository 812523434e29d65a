package runsettings

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func containers(sources ...string) []TestContainer {
	cs := make([]TestContainer, len(sources))
	for i, s := range sources {
		cs[i] = TestContainer{Source: s}
	}
	return cs
}

func TestForUserRunSettings_TestAdapter(t *testing.T) {
	lookup := map[string]ProjectRunDetails{
		"Source1": {Settings: &CoverageOptions{IncludeTestAssembly: true}},
	}
	set, err := ForUserRunSettings(containers("Source1"), lookup, "ms-test-adapter-path")
	require.NoError(t, err)
	assert.Equal(t, "ms-test-adapter-path", set[TestAdapter])
}

func TestForUserRunSettings_FirstOutputFolder(t *testing.T) {
	for _, tc := range []struct{ first, second string }{{"1", "2"}, {"2", "1"}} {
		lookup := map[string]ProjectRunDetails{
			"Source1": {OutputFolder: tc.first, Settings: &CoverageOptions{IncludeTestAssembly: true}},
			"Source2": {OutputFolder: tc.second, Settings: &CoverageOptions{IncludeTestAssembly: true}},
			"Other":   {OutputFolder: "other"},
		}
		set, err := ForUserRunSettings(containers("Source1", "Source2"), lookup, "")
		require.NoError(t, err)
		assert.Equal(t, tc.first, set[ResultsDirectory])
	}
}

func TestForUserRunSettings_ResultsDirectoryFollowsContainerOrder(t *testing.T) {
	lookup := map[string]ProjectRunDetails{
		"Source1": {OutputFolder: "1"},
		"Source2": {OutputFolder: "2"},
	}
	set, err := ForUserRunSettings(containers("Source1", "Source2"), lookup, "")
	require.NoError(t, err)
	assert.Equal(t, "1", set[ResultsDirectory])

	set, err = ForUserRunSettings(containers("Source2", "Source1"), lookup, "")
	require.NoError(t, err)
	assert.Equal(t, "2", set[ResultsDirectory])
}

func TestForUserRunSettings_ResultsDirectorySkipsEmpty(t *testing.T) {
	lookup := map[string]ProjectRunDetails{
		"Source1": {OutputFolder: ""},
		"Source2": {OutputFolder: "2"},
		"Other":   {OutputFolder: "other"},
	}
	set, err := ForUserRunSettings(containers("Other2", "Source1", "Source2"), lookup, "")
	require.NoError(t, err)
	assert.Equal(t, "2", set[ResultsDirectory])

	set, err = ForUserRunSettings(containers("Source1"), lookup, "")
	require.NoError(t, err)
	v, ok := set[ResultsDirectory]
	assert.True(t, ok)
	assert.Equal(t, "", v)
}

func TestForUserRunSettings_FiltersFromAllProjects(t *testing.T) {
	settings := func(id string) *CoverageOptions {
		return &CoverageOptions{
			IncludeTestAssembly:    true,
			AttributesExclude:      []string{"AttributeExclude" + id},
			AttributesInclude:      []string{"AttributeInclude" + id},
			CompanyNamesExclude:    []string{"CompanyNameExclude" + id},
			CompanyNamesInclude:    []string{"CompanyNameInclude" + id},
			FunctionsExclude:       []string{"FunctionExclude" + id},
			FunctionsInclude:       []string{"FunctionInclude" + id},
			PublicKeyTokensExclude: []string{"PublicKeyTokenExclude" + id},
			PublicKeyTokensInclude: []string{"PublicKeyTokenInclude" + id},
			SourcesExclude:         []string{"SourceExclude" + id},
			SourcesInclude:         []string{"SourceInclude" + id},
		}
	}
	lookup := map[string]ProjectRunDetails{
		"Source1": {Settings: settings("1")},
		"Source2": {Settings: settings("2")},
		"Other":   {Settings: settings("3")},
	}
	set, err := ForUserRunSettings(containers("Source1", "Source2"), lookup, "")
	require.NoError(t, err)

	for _, c := range Categories {
		if c == ModulePaths {
			continue
		}
		el := c.Element()
		for _, ie := range []string{"Include", "Exclude"} {
			want := fmt.Sprintf("<%[1]s>%[1]s%[2]s1</%[1]s><%[1]s>%[1]s%[2]s2</%[1]s>", el, ie)
			assert.Equal(t, want, set[Placeholder(string(c)+ie)], "%s%s", c, ie)
		}
	}
}

func TestForUserRunSettings_ExcludesTestAssemblies(t *testing.T) {
	for _, tc := range []struct{ include1, include2 bool }{{true, true}, {false, false}, {true, false}, {false, true}} {
		lookup := map[string]ProjectRunDetails{
			"Source1": {
				Settings: &CoverageOptions{
					IncludeTestAssembly: tc.include1,
					ModulePathsExclude:  []string{"ModulePathExclude"},
				},
				TestDLLFile: `Some\Path1`,
			},
			"Source2": {
				Settings:    &CoverageOptions{IncludeTestAssembly: tc.include2},
				TestDLLFile: `Some\Path2`,
			},
		}

		want := ""
		if !tc.include1 {
			want += modulePathElement(RegexEscapePath(`Some\Path1`))
		}
		if !tc.include2 {
			want += modulePathElement(RegexEscapePath(`Some\Path2`))
		}
		want += modulePathElement("ModulePathExclude")

		set, err := ForUserRunSettings(containers("Source1", "Source2"), lookup, "")
		require.NoError(t, err)
		assert.Equal(t, want, set[ModulePathsExclude], "%+v", tc)
	}
}

func TestForUserRunSettings_ReferencedProjects(t *testing.T) {
	lookup := map[string]ProjectRunDetails{
		"Source1": {
			Settings: &CoverageOptions{
				IncludeTestAssembly: true,
				ModulePathsExclude:  []string{"ModulePathExclude"},
				ModulePathsInclude:  []string{"ModulePathInclude"},
			},
			ExcludedReferencedProjects: []string{"ExcludedReferenced1"},
			IncludedReferencedProjects: []string{"IncludedReferenced1"},
		},
		"Source2": {
			Settings:                   &CoverageOptions{IncludeTestAssembly: true},
			ExcludedReferencedProjects: []string{"ExcludedReferenced2"},
			IncludedReferencedProjects: []string{"IncludedReferenced2"},
		},
	}
	set, err := ForUserRunSettings(containers("Source1", "Source2"), lookup, "")
	require.NoError(t, err)

	wantExclude := modulePathElement(RegexModuleName("ExcludedReferenced1")) +
		modulePathElement(RegexModuleName("ExcludedReferenced2")) +
		modulePathElement("ModulePathExclude")
	wantInclude := modulePathElement(RegexModuleName("IncludedReferenced1")) +
		modulePathElement(RegexModuleName("IncludedReferenced2")) +
		modulePathElement("ModulePathInclude")
	assert.Equal(t, wantExclude, set[ModulePathsExclude])
	assert.Equal(t, wantInclude, set[ModulePathsInclude])
}

func TestForUserRunSettings_ReferencesBeforeTestAssemblies(t *testing.T) {
	lookup := map[string]ProjectRunDetails{
		"Source1": {
			Settings:                   &CoverageOptions{ModulePathsExclude: []string{"Setting1"}},
			TestDLLFile:                `a\T1.dll`,
			ExcludedReferencedProjects: []string{"R1"},
		},
		"Source2": {
			Settings:                   &CoverageOptions{ModulePathsExclude: []string{"Setting2"}},
			TestDLLFile:                `a\T2.dll`,
			ExcludedReferencedProjects: []string{"R2"},
		},
	}
	set, err := ForUserRunSettings(containers("Source1", "Source2"), lookup, "")
	require.NoError(t, err)

	want := modulePathElement(RegexModuleName("R1")) +
		modulePathElement(RegexModuleName("R2")) +
		modulePathElement(RegexEscapePath(`a\T1.dll`)) +
		modulePathElement(RegexEscapePath(`a\T2.dll`)) +
		modulePathElement("Setting1") +
		modulePathElement("Setting2")
	assert.Equal(t, want, set[ModulePathsExclude])
}

func TestForUserRunSettings_GlobalDedup(t *testing.T) {
	lookup := map[string]ProjectRunDetails{
		"Source1": {
			Settings:                   &CoverageOptions{IncludeTestAssembly: true, SourcesExclude: []string{"gen"}},
			ExcludedReferencedProjects: []string{"Shared"},
		},
		"Source2": {
			Settings:                   &CoverageOptions{IncludeTestAssembly: true, SourcesExclude: []string{"gen", "other"}},
			ExcludedReferencedProjects: []string{"Shared"},
		},
	}
	set, err := ForUserRunSettings(containers("Source1", "Source2"), lookup, "")
	require.NoError(t, err)
	assert.Equal(t, modulePathElement("Shared"), set[ModulePathsExclude])
	assert.Equal(t, "<Source>gen</Source><Source>other</Source>", set[SourcesExclude])
}

func TestForUserRunSettings_EmptyWhenNil(t *testing.T) {
	lookup := map[string]ProjectRunDetails{
		"Source1": {Settings: &CoverageOptions{IncludeTestAssembly: true}},
		"Source2": {Settings: &CoverageOptions{IncludeTestAssembly: true}},
	}
	set, err := ForUserRunSettings(containers("Source1", "Source2"), lookup, "")
	require.NoError(t, err)
	assertAllFiltersEmpty(t, set)
}

func TestForUserRunSettings_NoEnabled(t *testing.T) {
	lookup := map[string]ProjectRunDetails{
		"Source1": {Settings: &CoverageOptions{Enabled: true}},
	}
	set, err := ForUserRunSettings(containers("Source1"), lookup, "")
	require.NoError(t, err)
	_, ok := set[Enabled]
	assert.False(t, ok)
}

func TestForUserRunSettings_IgnoresProjectsOutsideRun(t *testing.T) {
	lookup := map[string]ProjectRunDetails{
		"Source1": {Settings: &CoverageOptions{IncludeTestAssembly: true, FunctionsInclude: []string{"F1"}}},
		"Other": {
			Settings:                   &CoverageOptions{FunctionsInclude: []string{"F2"}},
			ExcludedReferencedProjects: []string{"R"},
			TestDLLFile:                "other.dll",
			OutputFolder:               "other",
		},
	}
	set, err := ForUserRunSettings(containers("Source1"), lookup, "")
	require.NoError(t, err)

	want := ReplacementSet{TestAdapter: "", ResultsDirectory: ""}
	for _, c := range Categories {
		want[c.Include()] = ""
		want[c.Exclude()] = ""
	}
	want[FunctionsInclude] = "<Function>F1</Function>"
	if diff := cmp.Diff(want, set); diff != "" {
		t.Errorf("merged replacements mismatch (-want +got):\n%s", diff)
	}
}

func TestForUserRunSettings_RepeatableAcrossSubsets(t *testing.T) {
	lookup := map[string]ProjectRunDetails{
		"A": {OutputFolder: "a", Settings: &CoverageOptions{IncludeTestAssembly: true, SourcesInclude: []string{"a"}}},
		"B": {OutputFolder: "b", Settings: &CoverageOptions{IncludeTestAssembly: true, SourcesInclude: []string{"b"}}},
	}
	onlyB, err := ForUserRunSettings(containers("B"), lookup, "")
	require.NoError(t, err)
	both, err := ForUserRunSettings(containers("A", "B"), lookup, "")
	require.NoError(t, err)
	onlyBAgain, err := ForUserRunSettings(containers("B"), lookup, "")
	require.NoError(t, err)

	assert.Equal(t, "<Source>b</Source>", onlyB[SourcesInclude])
	assert.Equal(t, "<Source>a</Source><Source>b</Source>", both[SourcesInclude])
	assert.Equal(t, onlyB, onlyBAgain)
}

func TestForUserRunSettings_NilContainers(t *testing.T) {
	_, err := ForUserRunSettings(nil, map[string]ProjectRunDetails{}, "")
	require.ErrorIs(t, err, ErrNilContainers)

	set, err := ForUserRunSettings([]TestContainer{}, nil, "")
	require.NoError(t, err)
	assertAllFiltersEmpty(t, set)
}

func TestParticipating_DuplicateSources(t *testing.T) {
	lookup := map[string]ProjectRunDetails{"A": {OutputFolder: "a"}}
	got := Participating(containers("A", "missing", "A"), lookup)
	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].OutputFolder)
}
