package grammar

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	verr "github.com/nihei9/minigo/error"
	"github.com/nihei9/minigo/grammar/symbol"
)

func newCSVReader(src io.Reader) *csv.Reader {
	r := csv.NewReader(src)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	return r
}

func csvError(err error, srcName string) error {
	var pErr *csv.ParseError
	if errors.As(err, &pErr) {
		return verr.SpecErrors{
			{
				Cause:      semErrMalformedCSV,
				Detail:     pErr.Err.Error(),
				SourceName: srcName,
				Row:        pErr.Line,
				Col:        pErr.Column,
			},
		}
	}
	return err
}

// ReadProductions reads a productions table. Each record is one production:
// the first cell names the left-hand side, every following non-empty cell is
// either a grammar symbol name or a non-negative action number.
func ReadProductions(src io.Reader, srcName string) ([]*Production, error) {
	r := newCSVReader(src)

	var prods []*Production
	var specErrs verr.SpecErrors
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, csvError(err, srcName)
		}

		row, _ := r.FieldPos(0)
		lhsName := strings.TrimSpace(rec[0])
		lhs, ok := symbol.ToSymbol(lhsName)
		if !ok || !lhs.IsNonTerminal() {
			specErrs = append(specErrs, &verr.SpecError{
				Cause:      semErrLHSNotNonTerminal,
				Detail:     lhsName,
				SourceName: srcName,
				Row:        row,
				Col:        1,
			})
			continue
		}

		var items []Item
		broken := false
		for i, cell := range rec[1:] {
			cell = strings.TrimSpace(cell)
			if cell == "" {
				continue
			}
			if isActionCell(cell) {
				id, err := strconv.Atoi(cell)
				if err != nil {
					return nil, err
				}
				items = append(items, ActionItem(id))
				continue
			}
			sym, ok := symbol.ToSymbol(cell)
			if !ok {
				_, col := r.FieldPos(i + 1)
				specErrs = append(specErrs, &verr.SpecError{
					Cause:      semErrUndefinedSym,
					Detail:     cell,
					SourceName: srcName,
					Row:        row,
					Col:        col,
				})
				broken = true
				continue
			}
			items = append(items, SymbolItem(sym))
		}
		if broken {
			continue
		}

		prod, err := newProduction(len(prods), lhs, items)
		if err != nil {
			return nil, err
		}
		prods = append(prods, prod)
	}
	if len(specErrs) > 0 {
		return nil, specErrs
	}
	if len(prods) == 0 {
		return nil, verr.SpecErrors{
			{
				Cause:      semErrNoProduction,
				SourceName: srcName,
			},
		}
	}

	defined := map[symbol.Symbol]struct{}{}
	for _, prod := range prods {
		defined[prod.LHS] = struct{}{}
	}
	for _, prod := range prods {
		for _, sym := range prod.Symbols() {
			if !sym.IsNonTerminal() {
				continue
			}
			if _, ok := defined[sym]; ok {
				continue
			}
			specErrs = append(specErrs, &verr.SpecError{
				Cause:      semErrNoRHSProduction,
				Detail:     sym.String(),
				SourceName: srcName,
				Row:        prod.Num + 1,
			})
			defined[sym] = struct{}{}
		}
	}
	if len(specErrs) > 0 {
		return nil, specErrs
	}

	return prods, nil
}

func isActionCell(cell string) bool {
	for _, c := range cell {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// ReadParsingTable reads a parse table. The header row names one terminal per
// column; each following row belongs to one non-terminal, in non-terminal id
// order, and holds a 1-based production number or nothing.
func ReadParsingTable(src io.Reader, srcName string, prods []*Production) (*ParsingTable, error) {
	r := newCSVReader(src)

	header, err := r.Read()
	if err == io.EOF {
		return nil, verr.SpecErrors{
			{
				Cause:      semErrNoHeader,
				SourceName: srcName,
			},
		}
	}
	if err != nil {
		return nil, csvError(err, srcName)
	}

	var specErrs verr.SpecErrors
	cols := make([]symbol.Symbol, len(header))
	seen := map[symbol.Symbol]struct{}{}
	for i := 1; i < len(header); i++ {
		name := strings.TrimSpace(header[i])
		sym, ok := symbol.ToSymbol(name)
		if !ok || !sym.IsTerminal() {
			_, col := r.FieldPos(i)
			specErrs = append(specErrs, &verr.SpecError{
				Cause:      semErrNotTerminal,
				Detail:     name,
				SourceName: srcName,
				Row:        1,
				Col:        col,
			})
			continue
		}
		if _, ok := seen[sym]; ok {
			_, col := r.FieldPos(i)
			specErrs = append(specErrs, &verr.SpecError{
				Cause:      semErrDuplicateColumn,
				Detail:     name,
				SourceName: srcName,
				Row:        1,
				Col:        col,
			})
			continue
		}
		seen[sym] = struct{}{}
		cols[i] = sym
	}
	for _, term := range symbol.Terminals() {
		if _, ok := seen[term]; !ok {
			specErrs = append(specErrs, &verr.SpecError{
				Cause:      semErrMissingColumn,
				Detail:     term.String(),
				SourceName: srcName,
				Row:        1,
			})
		}
	}
	if len(specErrs) > 0 {
		return nil, specErrs
	}

	entries := newEntries()
	rowNum := 0
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, csvError(err, srcName)
		}

		line, _ := r.FieldPos(0)
		if rowNum >= symbol.NonTerminalCount {
			specErrs = append(specErrs, &verr.SpecError{
				Cause:      semErrExtraRow,
				Detail:     strings.TrimSpace(rec[0]),
				SourceName: srcName,
				Row:        line,
			})
			rowNum++
			continue
		}

		nt := symbol.NonTerminalAt(rowNum)
		if name := strings.TrimSpace(rec[0]); name != "" && name != nt.String() {
			specErrs = append(specErrs, &verr.SpecError{
				Cause:      semErrRowOrder,
				Detail:     fmt.Sprintf("want: %v, got: %v", nt, name),
				SourceName: srcName,
				Row:        line,
				Col:        1,
			})
		}
		for i := 1; i < len(rec) && i < len(cols); i++ {
			cell := strings.TrimSpace(rec[i])
			if cell == "" {
				continue
			}
			_, col := r.FieldPos(i)
			n, err := strconv.Atoi(cell)
			if err != nil || n < 1 || n > len(prods) {
				specErrs = append(specErrs, &verr.SpecError{
					Cause:      semErrInvalidCell,
					Detail:     cell,
					SourceName: srcName,
					Row:        line,
					Col:        col,
				})
				continue
			}
			prod := prods[n-1]
			if prod.LHS != nt {
				specErrs = append(specErrs, &verr.SpecError{
					Cause:      semErrLHSMismatch,
					Detail:     fmt.Sprintf("%v: %v", nt, prod),
					SourceName: srcName,
					Row:        line,
					Col:        col,
				})
				continue
			}
			entries[entryIndex(nt, cols[i])] = prod.Num
		}
		rowNum++
	}
	for ; rowNum < symbol.NonTerminalCount; rowNum++ {
		specErrs = append(specErrs, &verr.SpecError{
			Cause:      semErrMissingRow,
			Detail:     symbol.NonTerminalAt(rowNum).String(),
			SourceName: srcName,
		})
	}
	if len(specErrs) > 0 {
		return nil, specErrs
	}

	return newParsingTable(prods, entries)
}

// WriteParsingTable writes tab in the format ReadParsingTable accepts.
func WriteParsingTable(w io.Writer, tab *ParsingTable) error {
	cw := csv.NewWriter(w)

	header := make([]string, 0, symbol.TerminalCount+1)
	header = append(header, "")
	for _, term := range symbol.Terminals() {
		header = append(header, term.String())
	}
	err := cw.Write(header)
	if err != nil {
		return err
	}

	for row := 0; row < symbol.NonTerminalCount; row++ {
		nt := symbol.NonTerminalAt(row)
		rec := make([]string, 0, symbol.TerminalCount+1)
		rec = append(rec, nt.String())
		for _, term := range symbol.Terminals() {
			prod, ok := tab.Lookup(nt, term)
			if !ok {
				rec = append(rec, "")
				continue
			}
			rec = append(rec, strconv.Itoa(prod.Num+1))
		}
		err := cw.Write(rec)
		if err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
