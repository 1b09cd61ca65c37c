package tester

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/nihei9/minigo/driver"
	"github.com/nihei9/minigo/grammar"
)

type TestResult struct {
	TestCasePath string
	Error        error
	Diffs        []*DiagnosticDiff
}

func (r *TestResult) String() string {
	if r.Error != nil {
		const indent1 = "    "
		const indent2 = indent1 + indent1

		msgLines := strings.Split(r.Error.Error(), "\n")
		msg := fmt.Sprintf("Failed %v:\n%v%v", r.TestCasePath, indent1, strings.Join(msgLines, "\n"+indent1))
		if len(r.Diffs) == 0 {
			return msg
		}
		var diffLines []string
		for _, diff := range r.Diffs {
			diffLines = append(diffLines, diff.Message)
			diffLines = append(diffLines, fmt.Sprintf("%vexpected: %v", indent1, diff.expectedText()))
			diffLines = append(diffLines, fmt.Sprintf("%vactual:   %v", indent1, diff.actualText()))
		}
		return fmt.Sprintf("%v\n%v%v", msg, indent2, strings.Join(diffLines, "\n"+indent2))
	}
	return fmt.Sprintf("Passed %v", r.TestCasePath)
}

// DiagnosticDiff is a mismatch at position Index of the diagnostic list.
// Expected or Actual is nil when one list is shorter than the other.
type DiagnosticDiff struct {
	Index    int
	Expected *ExpectedDiagnostic
	Actual   *driver.Diagnostic
	Message  string
}

func (d *DiagnosticDiff) expectedText() string {
	if d.Expected == nil {
		return "(none)"
	}
	return d.Expected.String()
}

func (d *DiagnosticDiff) actualText() string {
	if d.Actual == nil {
		return "(none)"
	}
	return fmt.Sprintf("%v error at line %v: %v", d.Actual.Kind, d.Actual.Line, d.Actual.Message)
}

// DiffDiagnostics compares the diagnostics pairwise in encounter order.
func DiffDiagnostics(expected []*ExpectedDiagnostic, actual []*driver.Diagnostic) []*DiagnosticDiff {
	var diffs []*DiagnosticDiff
	n := len(expected)
	if len(actual) > n {
		n = len(actual)
	}
	for i := 0; i < n; i++ {
		diff := &DiagnosticDiff{
			Index: i,
		}
		if i < len(expected) {
			diff.Expected = expected[i]
		}
		if i < len(actual) {
			diff.Actual = actual[i]
		}
		switch {
		case diff.Actual == nil:
			diff.Message = fmt.Sprintf("#%v: missing diagnostic", i)
		case diff.Expected == nil:
			diff.Message = fmt.Sprintf("#%v: unexpected diagnostic", i)
		case diff.Expected.Kind != diff.Actual.Kind:
			diff.Message = fmt.Sprintf("#%v: unexpected kind", i)
		case diff.Expected.Line != diff.Actual.Line:
			diff.Message = fmt.Sprintf("#%v: unexpected line", i)
		case diff.Expected.Message != diff.Actual.Message:
			diff.Message = fmt.Sprintf("#%v: unexpected message", i)
		default:
			continue
		}
		diffs = append(diffs, diff)
	}
	return diffs
}

type TestCaseWithMetadata struct {
	TestCase *TestCase
	FilePath string
	Error    error
}

// ListTestCases reads the test case at testPath, or every test case in the
// tree under it when it is a directory. A file or directory that cannot be
// read becomes an entry with Error set.
func ListTestCases(testPath string) []*TestCaseWithMetadata {
	var cases []*TestCaseWithMetadata
	err := filepath.WalkDir(testPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			cases = append(cases, &TestCaseWithMetadata{
				FilePath: path,
				Error:    err,
			})
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		c, err := parseTestCase(path)
		cases = append(cases, &TestCaseWithMetadata{
			TestCase: c,
			FilePath: path,
			Error:    err,
		})
		return nil
	})
	if err != nil {
		cases = append(cases, &TestCaseWithMetadata{
			FilePath: testPath,
			Error:    err,
		})
	}
	return cases
}

func parseTestCase(testCasePath string) (*TestCase, error) {
	f, err := os.Open(testCasePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseTestCase(f)
}

type Tester struct {
	Grammar *grammar.Grammar
	Cases   []*TestCaseWithMetadata
	Options []driver.AnalyzerOption
}

func (t *Tester) Run() []*TestResult {
	var rs []*TestResult
	for _, c := range t.Cases {
		rs = append(rs, t.runTest(c))
	}
	return rs
}

func (t *Tester) runTest(c *TestCaseWithMetadata) *TestResult {
	if c.Error != nil {
		return &TestResult{
			TestCasePath: c.FilePath,
			Error:        c.Error,
		}
	}

	toks, err := driver.NewTokenStream(bytes.NewReader(c.TestCase.Source))
	if err != nil {
		return &TestResult{
			TestCasePath: c.FilePath,
			Error:        err,
		}
	}
	a, err := driver.NewAnalyzer(toks, t.Grammar, t.Options...)
	if err != nil {
		return &TestResult{
			TestCasePath: c.FilePath,
			Error:        err,
		}
	}
	accepted, err := a.Analyze()
	if err != nil {
		return &TestResult{
			TestCasePath: c.FilePath,
			Error:        err,
		}
	}

	diffs := DiffDiagnostics(c.TestCase.Expected, a.Diagnostics())
	if len(diffs) > 0 {
		return &TestResult{
			TestCasePath: c.FilePath,
			Error:        fmt.Errorf("diagnostics mismatch"),
			Diffs:        diffs,
		}
	}
	if len(c.TestCase.Expected) == 0 && !accepted {
		return &TestResult{
			TestCasePath: c.FilePath,
			Error:        fmt.Errorf("the source was not accepted"),
		}
	}
	return &TestResult{
		TestCasePath: c.FilePath,
	}
}
