package engine

import (
	"fmt"
	"strings"
)

// ParseRank parses user input to a Rank. Empty input returns DefaultRank.
func ParseRank(input string) (Rank, error) {
	s := strings.TrimSpace(strings.ToUpper(input))
	if s == "" {
		return DefaultRank, nil
	}
	r := Rank(strings.TrimSuffix(s, "-RANK"))
	if !r.IsValid() {
		return "", fmt.Errorf("invalid rank: %q (want E, D, C, B, A or S)", input)
	}
	return r, nil
}

// ParseCategory normalises a category name and maps common aliases.
func ParseCategory(input string) string {
	s := strings.TrimSpace(strings.ToLower(input))
	switch s {
	case "str", "fitness", "health", "physical":
		return CategoryBody
	case "int", "wis", "study", "reading", "read":
		return CategoryMind
	case "music", "creative":
		return CategoryArt
	case "work", "finance":
		return CategoryCareer
	default:
		return s
	}
}

// SkillID derives a stable skill identifier from its display name.
func SkillID(name string) string {
	fields := strings.Fields(strings.ToLower(name))
	return strings.Join(fields, "_")
}
