package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка - на первое время
	UnknownCode Code = 0

	// Предупреждения раскрытия include
	ExpInfo                 Code = 1000
	ExpMultipleSameIncludes Code = 1001

	// Ошибки раскрытия
	ExpError              Code = 2000
	ExpInfiniteRecursion  Code = 2001
	ExpMissingFileParent  Code = 2002
	ExpInvalidRange       Code = 2003
	ExpTextExpansion      Code = 2004
	ExpPatternCompilation Code = 2005

	// Файловые
	IOError             Code = 4000
	IOPathNormalization Code = 4001
	IOFileNotFound      Code = 4002
	IOFileReadFailure   Code = 4003

	// Проектные (конфигурация)
	PrjError         Code = 5000
	PrjBadManifest   Code = 5001
	PrjUnknownOption Code = 5002
)

var codeDescription = map[Code]string{
	UnknownCode:             "Unknown error",
	ExpInfo:                 "Expansion information",
	ExpMultipleSameIncludes: "File included several times",
	ExpError:                "Expansion error",
	ExpInfiniteRecursion:    "Include cycle",
	ExpMissingFileParent:    "Unable to get file parent directory",
	ExpInvalidRange:         "Invalid mark range",
	ExpTextExpansion:        "Failed to expand text",
	ExpPatternCompilation:   "Failed to compile pattern",
	IOError:                 "I/O error",
	IOPathNormalization:     "Unable to normalize path",
	IOFileNotFound:          "File not found",
	IOFileReadFailure:       "Failed to read file",
	PrjError:                "Project error",
	PrjBadManifest:          "Invalid project manifest",
	PrjUnknownOption:        "Unknown option value",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("EXW%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("EXP%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("PRJ%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
