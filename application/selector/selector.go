package selector

import (
	"strings"

	"hover_reader/domain/interfaces"
)

// ignoredTags are never chosen as readable elements on their own
var ignoredTags = map[string]struct{}{
	"H1":     {},
	"H2":     {},
	"H3":     {},
	"H4":     {},
	"H5":     {},
	"H6":     {},
	"BUTTON": {},
	"LABEL":  {},
	"SPAN":   {},
	"IMG":    {},
	"PRE":    {},
	"SCRIPT": {},
}

// Result is the outcome of classifying the children of one element
type Result struct {
	// Found holds the readable elements of the subtree in traversal order
	Found []interfaces.Element

	// HasReadableDescendant is true when Found is non-empty anywhere below
	HasReadableDescendant bool
}

// SelectTopLevelReadable returns every top-level readable element under root.
//
// An element is top-level readable when its text is not blank, it contains
// no readable element, its tag is not ignored and it is not the only child
// of its parent. The root is the container of the scan and never a
// candidate itself, so its single child is still eligible.
func SelectTopLevelReadable(root interfaces.Element) []interfaces.Element {
	if root == nil {
		return nil
	}
	return classify(root, true).Found
}

// Classify reports the readable elements found below parent, applying the
// single-child rule to parent's own children.
func Classify(parent interfaces.Element) Result {
	return classify(parent, false)
}

func classify(parent interfaces.Element, isRoot bool) Result {
	var result Result
	children := parent.Children()

	for _, child := range children {
		if strings.TrimSpace(child.TextContent()) == "" {
			continue
		}

		// A readable element must not contain another one.
		inner := classify(child, false)
		result.Found = append(result.Found, inner.Found...)
		if inner.HasReadableDescendant {
			result.HasReadableDescendant = true
			continue
		}

		if IsIgnored(child.TagName()) {
			continue
		}

		// Prefer the outer wrapper over a lone inner element.
		if !isRoot && len(children) <= 1 {
			continue
		}

		result.Found = append(result.Found, child)
		result.HasReadableDescendant = true
	}

	return result
}

// IsIgnored reports whether tag is on the ignore list, ignoring case
func IsIgnored(tag string) bool {
	_, ok := ignoredTags[strings.ToUpper(tag)]
	return ok
}
