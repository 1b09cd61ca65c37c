package tester

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"regexp"

	"github.com/nihei9/minigo/driver"
	"gopkg.in/yaml.v3"
)

// TestCase is a source with the diagnostics the checker must report for it.
// A case without expected diagnostics asserts that the source is accepted.
type TestCase struct {
	Description string
	Source      []byte
	Expected    []*ExpectedDiagnostic
}

type ExpectedDiagnostic struct {
	Kind    driver.DiagnosticKind `yaml:"kind"`
	Line    int                   `yaml:"line"`
	Message string                `yaml:"message"`
}

func (d *ExpectedDiagnostic) String() string {
	return fmt.Sprintf("%v error at line %v: %v", d.Kind, d.Line, d.Message)
}

// ParseTestCase reads a test case consisting of three parts separated by
// lines of hyphens: a description, a source, and a YAML list of expected
// diagnostics.
func ParseTestCase(r io.Reader) (*TestCase, error) {
	parts, err := splitIntoParts(r)
	if err != nil {
		return nil, err
	}
	if len(parts) != 3 {
		return nil, fmt.Errorf("too many or too few part delimiters: a test case consists of just three parts: %v parts found", len(parts))
	}

	lineOffset := parts[0].lineCount + parts[1].lineCount + 2
	expected, err := parseExpected(parts[2].buf)
	if err != nil {
		return nil, fmt.Errorf("expected diagnostics (starting at line %v): %w", lineOffset+1, err)
	}

	return &TestCase{
		Description: string(parts[0].buf),
		Source:      parts[1].buf,
		Expected:    expected,
	}, nil
}

func parseExpected(src []byte) ([]*ExpectedDiagnostic, error) {
	dec := yaml.NewDecoder(bytes.NewReader(src))
	dec.KnownFields(true)
	var ds []*ExpectedDiagnostic
	err := dec.Decode(&ds)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	for i, d := range ds {
		if d == nil {
			return nil, fmt.Errorf("#%v: empty entry", i)
		}
		switch d.Kind {
		case driver.DiagnosticKindLexical, driver.DiagnosticKindSyntax, driver.DiagnosticKindSemantic:
		default:
			return nil, fmt.Errorf("#%v: unknown kind: %v", i, d.Kind)
		}
		if d.Line <= 0 {
			return nil, fmt.Errorf("#%v: a line number must be 1 or greater: %v", i, d.Line)
		}
	}
	return ds, nil
}

type testCasePart struct {
	buf       []byte
	lineCount int
}

var reDelim = regexp.MustCompile(`^\s*---+\s*$`)

// splitIntoParts cuts the input at delimiter lines. The delimiters and the
// line break ending each part are dropped.
func splitIntoParts(r io.Reader) ([]*testCasePart, error) {
	var parts []*testCasePart
	var cur *testCasePart
	s := bufio.NewScanner(r)
	for s.Scan() {
		line := s.Bytes()
		if reDelim.Match(line) {
			if cur == nil {
				cur = &testCasePart{}
			}
			parts = append(parts, cur)
			cur = &testCasePart{}
			continue
		}
		if cur == nil {
			cur = &testCasePart{}
		}
		if cur.lineCount > 0 {
			cur.buf = append(cur.buf, '\n')
		}
		cur.buf = append(cur.buf, line...)
		cur.lineCount++
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	if cur != nil && cur.lineCount > 0 {
		parts = append(parts, cur)
	}
	return parts, nil
}
