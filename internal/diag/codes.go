package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Лексические
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedText         Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexBadNumber                Code = 1004
	LexBadTextChar              Code = 1005
	LexBadEscape                Code = 1006

	// Синтаксические
	SynInfo             Code = 2000
	SynUnexpectedToken  Code = 2001
	SynDepthExceeded    Code = 2002
	SynLabelOutOfRange  Code = 2003
	SynUnexpectedTopLvl Code = 2004

	// Семантические
	SemaInfo                Code = 3000
	SemaDuplicateType       Code = 3001
	SemaUnresolvedType      Code = 3002
	SemaCyclicAlias         Code = 3003
	SemaDuplicateField      Code = 3004
	SemaDuplicateMethod     Code = 3005
	SemaMethodNotFunc       Code = 3006
	SemaAnnotationConflict  Code = 3007
	SemaServiceNotService   Code = 3008
	SemaInitArgsNotServices Code = 3009

	// I/O
	IOLoadFileError Code = 4001

	// Проектные (imports, manifest)
	ProjInfo          Code = 5000
	ProjImportFailed  Code = 5001
	ProjImportCycle   Code = 5002
	ProjBadManifest   Code = 5003
	ProjCacheFailure  Code = 5004
	ProjImportInvalid Code = 5005
)

var codeDescription = map[Code]string{
	UnknownCode:                 "Unknown error",
	LexInfo:                     "Lexical information",
	LexUnknownChar:              "Unknown character",
	LexUnterminatedText:         "Unterminated text literal",
	LexUnterminatedBlockComment: "Unterminated block comment",
	LexBadNumber:                "Malformed numeric literal",
	LexBadTextChar:              "Character not allowed in text literal",
	LexBadEscape:                "Invalid escape sequence",
	SynInfo:                     "Syntax information",
	SynUnexpectedToken:          "Unexpected token",
	SynDepthExceeded:            "Type nesting too deep",
	SynLabelOutOfRange:          "Field label out of range",
	SynUnexpectedTopLvl:         "Unexpected top-level construct",
	SemaInfo:                    "Semantic information",
	SemaDuplicateType:           "Duplicate type name",
	SemaUnresolvedType:          "Unresolved type reference",
	SemaCyclicAlias:             "Cyclic type alias",
	SemaDuplicateField:          "Duplicate field label",
	SemaDuplicateMethod:         "Duplicate method name",
	SemaMethodNotFunc:           "Method type is not a function",
	SemaAnnotationConflict:      "Conflicting call-mode annotations",
	SemaServiceNotService:       "Service body is not a service type",
	SemaInitArgsNotServices:     "Invalid service initializer",
	IOLoadFileError:             "I/O load file error",
	ProjInfo:                    "Project information",
	ProjImportFailed:            "Import could not be resolved",
	ProjImportCycle:             "Import cycle detected",
	ProjBadManifest:             "Invalid candid.toml",
	ProjCacheFailure:            "Cache failure",
	ProjImportInvalid:           "Imported file has errors",
}

// ID returns the stable textual code, e.g. "SYN2001".
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
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
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
