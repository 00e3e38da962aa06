// Package common provides shared utilities for column naming
package common

import (
	"fmt"
	"regexp"
	"strings"
)

// DefaultNoisePattern matches anything that is neither a word character nor whitespace.
const DefaultNoisePattern = `[^\p{L}\p{N}_\s\p{Z}\v\x{85}]`

var (
	defaultNoise = regexp.MustCompile(DefaultNoisePattern)
	// RE2's \s is ASCII only; \p{Z} adds the Unicode spaces such as U+00A0.
	whitespace = regexp.MustCompile(`[\s\p{Z}\v\x{85}]`)
)

// NameNormalizer rewrites column headers into normalized column names.
type NameNormalizer struct {
	noise *regexp.Regexp
}

// NewNameNormalizer builds a normalizer that replaces each of chars with '_'.
// With no chars it replaces every character matched by DefaultNoisePattern.
func NewNameNormalizer(chars ...rune) *NameNormalizer {
	if len(chars) == 0 {
		return &NameNormalizer{noise: defaultNoise}
	}

	var class strings.Builder
	class.WriteByte('[')
	for _, c := range chars {
		fmt.Fprintf(&class, `\x{%x}`, c)
	}
	class.WriteByte(']')

	return &NameNormalizer{noise: regexp.MustCompile(class.String())}
}

// Normalize lower-cases name, replaces noise characters with '_' and then
// replaces whitespace with '_'. Normalizing a normalized name is a no-op.
func (n *NameNormalizer) Normalize(name string) string {
	name = strings.ToLower(name)
	name = n.noise.ReplaceAllString(name, "_")
	return whitespace.ReplaceAllString(name, "_")
}

// NormalizeAll normalizes every name, keeping order.
func (n *NameNormalizer) NormalizeAll(names []string) []string {
	normalized := make([]string, len(names))
	for i, name := range names {
		normalized[i] = n.Normalize(name)
	}
	return normalized
}
