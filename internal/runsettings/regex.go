package runsettings

import "github.com/dlclark/regexp2"

// RegexEscapePath returns a pattern that matches path literally. Backslash
// separators and every other metacharacter of the .NET regex dialect are
// escaped, so the result can be placed as-is in a ModulePath element.
func RegexEscapePath(path string) string {
	if path == "" {
		return ""
	}
	return regexp2.Escape(path)
}

// RegexModuleName returns a pattern that matches the module or assembly name
// literally, e.g. "My.Project" becomes `My\.Project`.
func RegexModuleName(name string) string {
	if name == "" {
		return ""
	}
	return regexp2.Escape(name)
}
