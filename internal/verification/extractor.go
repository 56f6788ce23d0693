package verification

import (
	"bytes"
	"regexp"
	"sync"

	"gopkg.in/xmlpath.v2"
)

// TagExtractor returns the text content of the first element with the given
// tag name.
type TagExtractor interface {
	ExtractTagText(xml []byte, tag string) (string, bool)
}

// RegexExtractor matches <tag>text</tag> literally, case-insensitively, with
// no namespace awareness. The first match wins and an empty element does not
// match.
type RegexExtractor struct {
	mu       sync.Mutex
	patterns map[string]*regexp.Regexp
}

// NewRegexExtractor creates a RegexExtractor.
func NewRegexExtractor() *RegexExtractor {
	return &RegexExtractor{patterns: make(map[string]*regexp.Regexp)}
}

// ExtractTagText implements TagExtractor.
func (e *RegexExtractor) ExtractTagText(xml []byte, tag string) (string, bool) {
	m := e.pattern(tag).FindSubmatch(xml)
	if m == nil {
		return "", false
	}
	return string(m[1]), true
}

func (e *RegexExtractor) pattern(tag string) *regexp.Regexp {
	e.mu.Lock()
	defer e.mu.Unlock()
	if re, ok := e.patterns[tag]; ok {
		return re
	}
	quoted := regexp.QuoteMeta(tag)
	re := regexp.MustCompile(`(?i)<` + quoted + `>([^<]+)</` + quoted + `>`)
	e.patterns[tag] = re
	return re
}

// XPathExtractor parses the document and returns the string value of the
// first element named tag anywhere in the tree. Namespace prefixes are
// ignored and names are case-sensitive.
type XPathExtractor struct{}

// ExtractTagText implements TagExtractor. Unparseable XML yields no match.
func (XPathExtractor) ExtractTagText(xml []byte, tag string) (string, bool) {
	root, err := xmlpath.Parse(bytes.NewReader(xml))
	if err != nil {
		return "", false
	}
	path, err := xmlpath.Compile("//" + tag)
	if err != nil {
		return "", false
	}
	value, ok := path.String(root)
	if !ok || value == "" {
		return "", false
	}
	return value, true
}

// NewExtractor returns the extractor registered under name: "regex" (the
// default when name is empty) or "xpath".
func NewExtractor(name string) (TagExtractor, bool) {
	switch name {
	case "", ExtractorRegex:
		return NewRegexExtractor(), true
	case ExtractorXPath:
		return XPathExtractor{}, true
	default:
		return nil, false
	}
}

// Extractor names accepted by NewExtractor.
const (
	ExtractorRegex = "regex"
	ExtractorXPath = "xpath"
)
