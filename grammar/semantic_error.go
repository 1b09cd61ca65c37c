package grammar

type SemanticError struct {
	message string
}

func newSemanticError(message string) *SemanticError {
	return &SemanticError{
		message: message,
	}
}

func (e *SemanticError) Error() string {
	return e.message
}

var (
	semErrNoProduction      = newSemanticError("a grammar needs at least one production")
	semErrUndefinedSym      = newSemanticError("undefined symbol")
	semErrLHSNotNonTerminal = newSemanticError("the first column must name a non-terminal")
	semErrNoRHSProduction   = newSemanticError("a non-terminal has no production")
	semErrNoHeader          = newSemanticError("a parse table needs a header row")
	semErrNotTerminal       = newSemanticError("a column of a parse table must name a terminal")
	semErrDuplicateColumn   = newSemanticError("duplicate column")
	semErrMissingColumn     = newSemanticError("missing column")
	semErrRowOrder          = newSemanticError("rows must follow the non-terminal order")
	semErrMissingRow        = newSemanticError("missing row")
	semErrExtraRow          = newSemanticError("extra row")
	semErrInvalidCell       = newSemanticError("invalid production index")
	semErrLHSMismatch       = newSemanticError("the production does not expand the row's non-terminal")
	semErrUnknownAction     = newSemanticError("unknown action")
	semErrMalformedCSV      = newSemanticError("malformed CSV")
)
