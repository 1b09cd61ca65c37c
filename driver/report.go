package driver

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/nihei9/minigo/symtab"
	"gopkg.in/yaml.v3"
)

type ReportFormat string

const (
	ReportFormatText = ReportFormat("text")
	ReportFormatJSON = ReportFormat("json")
	ReportFormatYAML = ReportFormat("yaml")
)

func ParseReportFormat(s string) (ReportFormat, error) {
	switch f := ReportFormat(strings.ToLower(s)); f {
	case ReportFormatText, ReportFormatJSON, ReportFormatYAML:
		return f, nil
	}
	return "", fmt.Errorf("unknown report format: %v (text, json, or yaml is available)", s)
}

// Report is the outcome of analyzing one source.
type Report struct {
	Source      string           `json:"source" yaml:"source"`
	Accepted    bool             `json:"accepted" yaml:"accepted"`
	Diagnostics []*Diagnostic    `json:"diagnostics" yaml:"diagnostics"`
	Symbols     []*symtab.Symbol `json:"symbols,omitempty" yaml:"symbols,omitempty"`
}

// NewReport collects the results of an analyzer that has run. withSymbols
// adds the declarations visible at the end of the analysis.
func NewReport(source string, a *Analyzer, accepted bool, withSymbols bool) *Report {
	r := &Report{
		Source:      source,
		Accepted:    accepted,
		Diagnostics: a.Diagnostics(),
	}
	if r.Diagnostics == nil {
		r.Diagnostics = []*Diagnostic{}
	}
	if withSymbols {
		r.Symbols = a.SymbolTable().Visible()
	}
	return r
}

func WriteReport(w io.Writer, format ReportFormat, r *Report) error {
	switch format {
	case ReportFormatJSON:
		b, err := json.MarshalIndent(r, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%v\n", string(b))
		return nil
	case ReportFormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		err := enc.Encode(r)
		if err != nil {
			return err
		}
		return enc.Close()
	case ReportFormatText, "":
		writeTextReport(w, r)
		return nil
	}
	return fmt.Errorf("unknown report format: %v", format)
}

func writeTextReport(w io.Writer, r *Report) {
	for _, d := range r.Diagnostics {
		fmt.Fprintf(w, "%v: %v\n", r.Source, d)
	}
	if len(r.Symbols) > 0 {
		fmt.Fprintf(w, "symbols:\n")
		for _, sym := range r.Symbols {
			rec := sym.Record
			var attrs []string
			if rec.IsConst {
				attrs = append(attrs, "const")
			}
			if rec.IsFunction {
				params := make([]string, len(rec.Params))
				for i, p := range rec.Params {
					params[i] = p.String()
				}
				attrs = append(attrs, fmt.Sprintf("func(%v)", strings.Join(params, ", ")))
			}
			fmt.Fprintf(w, "    %v %v", sym.Name, rec.TypeDim)
			if len(attrs) > 0 {
				fmt.Fprintf(w, " (%v)", strings.Join(attrs, ", "))
			}
			fmt.Fprintf(w, " at line %v\n", rec.Line)
		}
	}
	if r.Accepted {
		fmt.Fprintf(w, "%v: ok\n", r.Source)
	} else {
		fmt.Fprintf(w, "%v: %v diagnostic(s)\n", r.Source, len(r.Diagnostics))
	}
}
