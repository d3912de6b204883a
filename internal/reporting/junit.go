package reporting

import (
	"encoding/xml"
	"fmt"
	"os"
	"time"

	"github.com/maslennikov-ig/coursebench/internal/models"
)

// JUnit XML schema types. CI systems ingest these directly, so a
// benchmark run can gate a pipeline on generation failures.

// JUnitTestSuites is the top-level container.
type JUnitTestSuites struct {
	XMLName    xml.Name         `xml:"testsuites"`
	Tests      int              `xml:"tests,attr"`
	Failures   int              `xml:"failures,attr"`
	Time       float64          `xml:"time,attr"`
	TestSuites []JUnitTestSuite `xml:"testsuite"`
}

// JUnitTestSuite maps to one benchmark run.
type JUnitTestSuite struct {
	XMLName    xml.Name        `xml:"testsuite"`
	Name       string          `xml:"name,attr"`
	Tests      int             `xml:"tests,attr"`
	Failures   int             `xml:"failures,attr"`
	Time       float64         `xml:"time,attr"`
	Timestamp  string          `xml:"timestamp,attr"`
	Properties []JUnitProperty `xml:"properties>property,omitempty"`
	TestCases  []JUnitTestCase `xml:"testcase"`
}

// JUnitTestCase maps to one benchmark cell.
type JUnitTestCase struct {
	XMLName   xml.Name      `xml:"testcase"`
	Name      string        `xml:"name,attr"`
	Classname string        `xml:"classname,attr"`
	Time      float64       `xml:"time,attr"`
	Failure   *JUnitFailure `xml:"failure,omitempty"`
}

// JUnitFailure represents a failed generation.
type JUnitFailure struct {
	Message string `xml:"message,attr"`
	Type    string `xml:"type,attr"`
	Body    string `xml:",chardata"`
}

// JUnitProperty is a key-value metadata entry.
type JUnitProperty struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value,attr"`
}

// ConvertToJUnit maps run records to JUnit XML: one test case per cell,
// classnamed by model, failing when the generation failed.
func ConvertToJUnit(summary models.RunSummary, metas []models.CellMeta) *JUnitTestSuites {
	var totalMs int64
	suite := JUnitTestSuite{
		Name:      "coursebench",
		Tests:     summary.TotalCells,
		Failures:  summary.Failed,
		Timestamp: summary.Timestamp.Format(time.RFC3339),
		Properties: []JUnitProperty{
			{Name: "run_id", Value: summary.RunID},
		},
	}

	for _, m := range metas {
		totalMs += m.ElapsedMs
		tc := JUnitTestCase{
			Name:      fmt.Sprintf("%s#%d", m.Scenario, m.Repetition),
			Classname: m.Model,
			Time:      float64(m.ElapsedMs) / 1000.0,
		}
		if !m.Success {
			tc.Failure = &JUnitFailure{
				Message: fmt.Sprintf("%s: %s", m.Cell(), m.ErrorKind),
				Type:    m.ErrorKind,
				Body:    m.ErrorDetail,
			}
		}
		suite.TestCases = append(suite.TestCases, tc)
	}
	suite.Time = float64(totalMs) / 1000.0

	return &JUnitTestSuites{
		Tests:      suite.Tests,
		Failures:   suite.Failures,
		Time:       suite.Time,
		TestSuites: []JUnitTestSuite{suite},
	}
}

// WriteJUnitXML writes the run as JUnit XML to the given path.
func WriteJUnitXML(summary models.RunSummary, metas []models.CellMeta, path string) error {
	suites := ConvertToJUnit(summary, metas)

	data, err := xml.MarshalIndent(suites, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JUnit XML: %w", err)
	}

	output := append([]byte(xml.Header), data...)
	return os.WriteFile(path, output, 0o644)
}
