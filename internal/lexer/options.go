package lexer

import "candidc/internal/diag"

type Options struct {
	// Reporter receives the lexing failure as a diagnostic; may be nil.
	Reporter diag.Reporter
}
