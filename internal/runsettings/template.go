package runsettings

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// TemplateReplacementError reports a substituted template that is not
// well-formed XML. Replaced carries the full text for diagnostics.
type TemplateReplacementError struct {
	Err      error
	Replaced string
}

func (e *TemplateReplacementError) Error() string {
	return fmt.Sprintf("run settings template is not valid xml after replacement: %v\nReplaced template:\n%s", e.Err, e.Replaced)
}

func (e *TemplateReplacementError) Unwrap() error { return e.Err }

// Replace substitutes every placeholder token of set in template. Tokens
// without a replacement are left in place and values are not rescanned.
func Replace(template string, set ReplacementSet) string {
	keys := set.Placeholders()
	pairs := make([]string, 0, 2*len(keys))
	for _, p := range keys {
		pairs = append(pairs, p.Token(), set[p])
	}
	return strings.NewReplacer(pairs...).Replace(template)
}

// Apply substitutes set into template and checks that the result is a
// well-formed XML document.
func Apply(template string, set ReplacementSet) (string, error) {
	replaced := Replace(template, set)
	if err := validateXML(replaced); err != nil {
		return "", &TemplateReplacementError{Err: err, Replaced: replaced}
	}
	return replaced, nil
}

var errNoRoot = errors.New("root element is missing")

func validateXML(doc string) error {
	dec := xml.NewDecoder(strings.NewReader(doc))
	depth, roots := 0, 0
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		switch tok.(type) {
		case xml.StartElement:
			if depth == 0 {
				roots++
				if roots > 1 {
					line, _ := dec.InputPos()
					return &xml.SyntaxError{Msg: "multiple root elements", Line: line}
				}
			}
			depth++
		case xml.EndElement:
			depth--
		}
	}
	if roots == 0 {
		return errNoRoot
	}
	return nil
}
