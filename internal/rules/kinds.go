package rules

import (
	"fmt"
	"strings"
)

// SameIncludes selects what happens when one file includes the same target
// more than once.
type SameIncludes uint8

const (
	// SameIncludesIgnoreAll keeps every copy.
	SameIncludesIgnoreAll SameIncludes = iota
	// SameIncludesDeleteRepeats keeps the first copy and empties the rest.
	SameIncludesDeleteRepeats
	// SameIncludesThrowAnError is reserved: accepted in config, not enforced.
	SameIncludesThrowAnError
)

func (s SameIncludes) String() string {
	switch s {
	case SameIncludesIgnoreAll:
		return "ignore-all"
	case SameIncludesDeleteRepeats:
		return "delete-repeats"
	case SameIncludesThrowAnError:
		return "throw-an-error"
	default:
		return "unknown"
	}
}

// ParseSameIncludes converts a config/flag string to SameIncludes.
func ParseSameIncludes(s string) (SameIncludes, error) {
	switch normalize(s) {
	case "ignore-all", "ignore":
		return SameIncludesIgnoreAll, nil
	case "delete-repeats", "delete":
		return SameIncludesDeleteRepeats, nil
	case "throw-an-error", "error":
		return SameIncludesThrowAnError, nil
	default:
		return SameIncludesDeleteRepeats, fmt.Errorf("invalid same-includes value: %q (expected: ignore-all|delete-repeats|throw-an-error)", s)
	}
}

// MultipleVersions selects handling of several #version directives.
// Reserved: parsed and carried, not enforced by the resolver.
type MultipleVersions uint8

const (
	MultipleVersionsIgnoreAll MultipleVersions = iota
	MultipleVersionsSetToHighest
	MultipleVersionsSetToLowest
	MultipleVersionsSetToFirst
	MultipleVersionsSetToLast
	MultipleVersionsThrowAnError
)

func (m MultipleVersions) String() string {
	switch m {
	case MultipleVersionsIgnoreAll:
		return "ignore-all"
	case MultipleVersionsSetToHighest:
		return "highest"
	case MultipleVersionsSetToLowest:
		return "lowest"
	case MultipleVersionsSetToFirst:
		return "first"
	case MultipleVersionsSetToLast:
		return "last"
	case MultipleVersionsThrowAnError:
		return "throw-an-error"
	default:
		return "unknown"
	}
}

// ParseMultipleVersions converts a config/flag string to MultipleVersions.
func ParseMultipleVersions(s string) (MultipleVersions, error) {
	switch normalize(s) {
	case "ignore-all", "ignore":
		return MultipleVersionsIgnoreAll, nil
	case "highest", "set-to-highest":
		return MultipleVersionsSetToHighest, nil
	case "lowest", "set-to-lowest":
		return MultipleVersionsSetToLowest, nil
	case "first", "set-to-first":
		return MultipleVersionsSetToFirst, nil
	case "last", "set-to-last":
		return MultipleVersionsSetToLast, nil
	case "throw-an-error", "error":
		return MultipleVersionsThrowAnError, nil
	default:
		return MultipleVersionsSetToHighest, fmt.Errorf("invalid multiple-versions value: %q (expected: ignore-all|highest|lowest|first|last|throw-an-error)", s)
	}
}

// VersionPlacement selects handling of a #version directive that is not at
// the beginning of the expanded text. Reserved, like MultipleVersions.
type VersionPlacement uint8

const (
	VersionPlacementIgnore VersionPlacement = iota
	VersionPlacementMoveToBeginning
	VersionPlacementThrowAnError
)

func (v VersionPlacement) String() string {
	switch v {
	case VersionPlacementIgnore:
		return "ignore"
	case VersionPlacementMoveToBeginning:
		return "move-to-beginning"
	case VersionPlacementThrowAnError:
		return "throw-an-error"
	default:
		return "unknown"
	}
}

// ParseVersionPlacement converts a config/flag string to VersionPlacement.
func ParseVersionPlacement(s string) (VersionPlacement, error) {
	switch normalize(s) {
	case "ignore":
		return VersionPlacementIgnore, nil
	case "move-to-beginning", "move":
		return VersionPlacementMoveToBeginning, nil
	case "throw-an-error", "error":
		return VersionPlacementThrowAnError, nil
	default:
		return VersionPlacementMoveToBeginning, fmt.Errorf("invalid version-placement value: %q (expected: ignore|move-to-beginning|throw-an-error)", s)
	}
}

// "Delete_Repeats", "deleterepeats" и т.п. приводим к одному виду
func normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "_", "-")
	switch s {
	case "ignoreall":
		return "ignore-all"
	case "deleterepeats":
		return "delete-repeats"
	case "throwanerror":
		return "throw-an-error"
	case "movetobeginning":
		return "move-to-beginning"
	}
	return s
}
