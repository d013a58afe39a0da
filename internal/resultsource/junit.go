package resultsource

import (
	"context"
	"encoding/xml"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/net/html/charset"

	"github.com/allurefw/report/internal/model"
)

// JUnitPattern matches the surefire-style result files most JUnit runners
// emit.
const JUnitPattern = "TEST-*.xml"

// JUnitSource reads JUnit XML testsuite files from one directory.
type JUnitSource struct {
	baseSource
}

// NewJUnitSource creates a source probing dir for JUnit XML files.
func NewJUnitSource(dir string, opts ...Option) *JUnitSource {
	s := &JUnitSource{}
	initBaseSource(&s.baseSource, dir, opts...)
	return s
}

// Format implements Source.
func (s *JUnitSource) Format() string {
	return "junit"
}

// Results implements Source.
func (s *JUnitSource) Results(ctx context.Context) ([]model.TestResult, error) {
	return s.load(ctx, s.scan), nil
}

// junitOutcome is a failure-like child element of a testcase. JUnit
// represents the outcome by which child is present (failure, error,
// skipped), not by an attribute.
type junitOutcome struct {
	Message string `xml:"message,attr"`
	Body    string `xml:",chardata"`
}

// junitSuite mirrors the JUnit/surefire XML schema.
type junitSuite struct {
	Name  string `xml:"name,attr"`
	Cases []struct {
		Name      string  `xml:"name,attr"`
		ClassName string  `xml:"classname,attr"`
		Time      float64 `xml:"time,attr"`

		Failure *junitOutcome `xml:"failure"`
		Error   *junitOutcome `xml:"error"`
		Skipped *junitOutcome `xml:"skipped"`
	} `xml:"testcase"`
}

func (s *JUnitSource) scan(ctx context.Context) []model.TestResult {
	paths, err := filepath.Glob(filepath.Join(s.dir, JUnitPattern))
	if err != nil {
		s.logger.Debug("junit glob failed", "dir", s.dir, "error", err)
		return nil
	}

	var results []model.TestResult
	for _, path := range paths {
		select {
		case <-ctx.Done():
			return results
		default:
		}

		suite, err := s.parseFile(path)
		if err != nil {
			s.logger.Warn("skipping unreadable junit suite",
				"file", path,
				"error", err,
			)
			continue
		}
		results = append(results, s.normalize(suite)...)
	}
	return results
}

func (s *JUnitSource) parseFile(path string) (*junitSuite, error) {
	f, err := os.Open(path) //nolint:gosec // Result files are caller-supplied inputs
	if err != nil {
		return nil, err
	}
	defer f.Close() //nolint:errcheck // Read-only file

	// Legacy JUnit files are frequently ISO-8859-1 or similar; honor the
	// XML declaration's encoding instead of assuming UTF-8.
	dec := xml.NewDecoder(f)
	dec.CharsetReader = charset.NewReaderLabel

	var suite junitSuite
	if err := dec.Decode(&suite); err != nil {
		return nil, err
	}
	return &suite, nil
}

func (s *JUnitSource) normalize(suite *junitSuite) []model.TestResult {
	results := make([]model.TestResult, 0, len(suite.Cases))
	for _, tc := range suite.Cases {
		fullName := tc.Name
		if tc.ClassName != "" {
			fullName = tc.ClassName + "." + tc.Name
		}

		r := model.TestResult{
			Name:     tc.Name,
			FullName: fullName,
			Status:   model.StatusPassed,
			Duration: time.Duration(tc.Time * float64(time.Second)),
		}

		// JUnit distinguishes assertion failures from unexpected errors;
		// the latter map to broken, matching ParseStatus("error").
		switch {
		case tc.Failure != nil:
			r.Status = model.StatusFailed
			r.Failure = &model.Failure{Message: tc.Failure.Message, Trace: tc.Failure.Body}
		case tc.Error != nil:
			r.Status = model.StatusBroken
			r.Failure = &model.Failure{Message: tc.Error.Message, Trace: tc.Error.Body}
		case tc.Skipped != nil:
			r.Status = model.StatusSkipped
		}

		if tc.ClassName != "" {
			r.Labels = append(r.Labels, model.Label{Name: "package", Value: tc.ClassName})
		}

		results = append(results, r)
	}
	return results
}
