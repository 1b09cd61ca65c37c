package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/nihei9/minigo/grammar"
	"github.com/nihei9/minigo/grammar/symbol"
	"github.com/nihei9/minigo/semantic"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:     "show",
		Short:   "Print the grammar in a readable format",
		Example: `  minigo show`,
		Args:    cobra.NoArgs,
		RunE:    runShow,
	}
	rootCmd.AddCommand(cmd)
}

func runShow(cmd *cobra.Command, args []string) (retErr error) {
	defer recoverPanic(&retErr)

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	gram, err := cfg.LoadGrammar()
	if err != nil {
		return fmt.Errorf("Cannot read the grammar: %w", err)
	}
	descs, err := grammar.Describe(gram.Productions)
	if err != nil {
		return err
	}

	return writeGrammar(os.Stdout, &grammarReport{
		Terminals:    symbol.Terminals(),
		NonTerminals: descs,
		Productions:  gram.Productions,
	})
}

type grammarReport struct {
	Terminals    []symbol.Symbol
	NonTerminals []*grammar.NonTerminalDescription
	Productions  []*grammar.Production
}

const grammarTemplate = `# Terminals

{{ range .Terminals -}}
{{ printTerminal . }}
{{ end }}
# Non-terminals

{{ range .NonTerminals -}}
{{ printNonTerminal . }}
{{ end }}
# Productions

{{ range .Productions -}}
{{ printProduction . }}
{{ end }}`

func writeGrammar(w io.Writer, report *grammarReport) error {
	rules := semantic.Catalog()

	symbols := func(syms []symbol.Symbol) string {
		if len(syms) == 0 {
			return "-"
		}
		names := make([]string, len(syms))
		for i, sym := range syms {
			names[i] = sym.String()
		}
		return strings.Join(names, ", ")
	}

	fns := template.FuncMap{
		"printTerminal": func(term symbol.Symbol) string {
			if sp := term.Spelling(); sp != "" {
				return fmt.Sprintf("%4v %v (%v)", int(term), term, sp)
			}
			return fmt.Sprintf("%4v %v", int(term), term)
		},
		"printNonTerminal": func(desc *grammar.NonTerminalDescription) string {
			var b strings.Builder
			fmt.Fprintf(&b, "%4v %v", int(desc.Symbol), desc.Symbol)
			if desc.Nullable {
				fmt.Fprintf(&b, " (nullable)")
			}
			fmt.Fprintf(&b, "\n     FIRST:  %v", symbols(desc.First))
			fmt.Fprintf(&b, "\n     FOLLOW: %v", symbols(desc.Follow))
			return b.String()
		},
		"printProduction": func(prod *grammar.Production) string {
			var b strings.Builder
			fmt.Fprintf(&b, "%v →", prod.LHS)
			if len(prod.Items) == 0 {
				fmt.Fprintf(&b, " ε")
			}
			for _, it := range prod.Items {
				if it.Kind == grammar.ItemAction && it.Action < len(rules) {
					fmt.Fprintf(&b, " #%v", rules[it.Action].Name)
					continue
				}
				fmt.Fprintf(&b, " %v", it)
			}
			return fmt.Sprintf("%4v %v", prod.Num+1, b.String())
		},
	}

	tmpl, err := template.New("").Funcs(fns).Parse(grammarTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, report)
}
