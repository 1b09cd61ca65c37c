package grammar

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	verr "github.com/nihei9/minigo/error"
)

//go:embed data/productions.csv
var defaultProductions []byte

//go:embed data/parse_table.csv
var defaultParsingTable []byte

const (
	DefaultProductionsName  = "productions.csv"
	DefaultParsingTableName = "parse_table.csv"
)

// Grammar is a productions table together with its parse table.
type Grammar struct {
	Productions []*Production
	Table       *ParsingTable
}

// Read reads both tables. When tabSrc is nil, the parse table is computed from
// the productions instead.
func Read(prodSrc io.Reader, prodName string, tabSrc io.Reader, tabName string) (*Grammar, error) {
	prods, err := ReadProductions(prodSrc, prodName)
	if err != nil {
		return nil, err
	}

	var tab *ParsingTable
	if tabSrc != nil {
		tab, err = ReadParsingTable(tabSrc, tabName, prods)
	} else {
		tab, err = BuildParsingTable(prods)
	}
	if err != nil {
		return nil, err
	}

	return &Grammar{
		Productions: prods,
		Table:       tab,
	}, nil
}

// Load reads the tables from files. tablePath may be empty.
func Load(prodPath, tablePath string) (*Grammar, error) {
	prodFile, err := os.Open(prodPath)
	if err != nil {
		return nil, err
	}
	defer prodFile.Close()

	var tabSrc io.Reader
	if tablePath != "" {
		tabFile, err := os.Open(tablePath)
		if err != nil {
			return nil, err
		}
		defer tabFile.Close()
		tabSrc = tabFile
	}

	gram, err := Read(prodFile, prodPath, tabSrc, tablePath)
	if err != nil {
		var specErrs verr.SpecErrors
		if errors.As(err, &specErrs) {
			for _, e := range specErrs {
				e.FilePath = e.SourceName
			}
		}
		return nil, err
	}
	return gram, nil
}

var (
	defaultOnce sync.Once
	defaultGram *Grammar
	defaultErr  error
)

// Default returns the grammar shipped with the module. It is read once and
// shared; callers must not modify it.
func Default() (*Grammar, error) {
	defaultOnce.Do(func() {
		defaultGram, defaultErr = Read(
			bytes.NewReader(defaultProductions), DefaultProductionsName,
			bytes.NewReader(defaultParsingTable), DefaultParsingTableName,
		)
	})
	return defaultGram, defaultErr
}

// CheckActions verifies that every action a production references is below
// ruleCount.
func (g *Grammar) CheckActions(ruleCount int) error {
	var specErrs verr.SpecErrors
	for _, prod := range g.Productions {
		for _, it := range prod.Items {
			if it.Kind != ItemAction || it.Action < ruleCount {
				continue
			}
			specErrs = append(specErrs, &verr.SpecError{
				Cause:  semErrUnknownAction,
				Detail: fmt.Sprintf("%v (%v rules are defined)", it.Action, ruleCount),
				Row:    prod.Num + 1,
			})
		}
	}
	if len(specErrs) > 0 {
		return specErrs
	}
	return nil
}
