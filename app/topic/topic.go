// Package topic classifies requested topics into the fetch strategies the
// pipeline knows how to run.
package topic

import (
	"strings"
)

const (
	General = "general"
	Local   = "local"
	World   = "world"
)

// Class selects the fetch strategy for a topic.
type Class int

const (
	// ClassCategory topics map to a native provider category.
	ClassCategory Class = iota
	// ClassGeneral is the meta-topic expanding to one article per other
	// core category.
	ClassGeneral
	// ClassLocal topics are geography-driven.
	ClassLocal
	// ClassFreeText topics are queried via keyword search. "world" lands
	// here because the provider has no native category for it.
	ClassFreeText
)

// coreCategories is the closed set of topics with first-class support.
// "world" is a core category without a native provider category.
var coreCategories = map[string]bool{
	"business":      true,
	"entertainment": true,
	"general":       true,
	"health":        true,
	"science":       true,
	"sports":        true,
	"technology":    true,
	"world":         true,
}

// Normalize lowercases and trims a requested topic.
func Normalize(t string) string {
	return strings.ToLower(strings.TrimSpace(t))
}

// Classify maps a normalized topic to its fetch strategy.
func Classify(t string) Class {
	switch {
	case t == General:
		return ClassGeneral
	case t == Local:
		return ClassLocal
	case t == World:
		return ClassFreeText
	case coreCategories[t]:
		return ClassCategory
	default:
		return ClassFreeText
	}
}

// IsCore reports membership in the closed core category set.
func IsCore(t string) bool {
	return coreCategories[t]
}

// GeneralExpansion lists the categories the "general" meta-topic fans out
// to: every core category except "general" itself.
func GeneralExpansion() []string {
	return []string{"business", "entertainment", "health", "science", "sports", "technology", World}
}

// Tokens splits a topic on non-alphanumeric runes, lowercases the parts and
// drops tokens shorter than minLen.
func Tokens(t string, minLen int) []string {
	fields := strings.FieldsFunc(strings.ToLower(t), func(r rune) bool {
		return !isAlphanumeric(r)
	})

	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) >= minLen {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

func isAlphanumeric(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
}
