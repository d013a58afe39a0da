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

// Allure1Pattern matches the result files the Allure 1.4 adapters emit.
const Allure1Pattern = "*-testsuite.xml"

// Allure1Source reads Allure 1.4 XML test-suite files from one directory.
type Allure1Source struct {
	baseSource
}

// NewAllure1Source creates a source probing dir for Allure 1.4 suites.
func NewAllure1Source(dir string, opts ...Option) *Allure1Source {
	s := &Allure1Source{}
	initBaseSource(&s.baseSource, dir, opts...)
	return s
}

// Format implements Source.
func (s *Allure1Source) Format() string {
	return "allure1"
}

// Results implements Source.
func (s *Allure1Source) Results(ctx context.Context) ([]model.TestResult, error) {
	return s.load(ctx, s.scan), nil
}

// allure1Suite mirrors the Allure 1.4 test-suite XML schema. Field tags
// use local names only, so namespaced documents decode the same way as
// plain ones.
type allure1Suite struct {
	Name  string `xml:"name"`
	Cases []struct {
		Name   string `xml:"name"`
		Status string `xml:"status,attr"`
		Start  int64  `xml:"start,attr"`
		Stop   int64  `xml:"stop,attr"`

		Failure *struct {
			Message string `xml:"message"`
			Trace   string `xml:"stack-trace"`
		} `xml:"failure"`

		Labels []struct {
			Name  string `xml:"name,attr"`
			Value string `xml:"value,attr"`
		} `xml:"labels>label"`
	} `xml:"test-cases>test-case"`
}

func (s *Allure1Source) scan(ctx context.Context) []model.TestResult {
	paths, err := filepath.Glob(filepath.Join(s.dir, Allure1Pattern))
	if err != nil {
		// Glob fails only on a malformed pattern; the dir is opaque data.
		s.logger.Debug("allure1 glob failed", "dir", s.dir, "error", err)
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
			s.logger.Warn("skipping unreadable allure1 suite",
				"file", path,
				"error", err,
			)
			continue
		}
		results = append(results, s.normalize(suite)...)
	}
	return results
}

func (s *Allure1Source) parseFile(path string) (*allure1Suite, error) {
	f, err := os.Open(path) //nolint:gosec // Result files are caller-supplied inputs
	if err != nil {
		return nil, err
	}
	defer f.Close() //nolint:errcheck // Read-only file

	dec := xml.NewDecoder(f)
	dec.CharsetReader = charset.NewReaderLabel

	var suite allure1Suite
	if err := dec.Decode(&suite); err != nil {
		return nil, err
	}
	return &suite, nil
}

func (s *Allure1Source) normalize(suite *allure1Suite) []model.TestResult {
	results := make([]model.TestResult, 0, len(suite.Cases))
	for _, tc := range suite.Cases {
		r := model.TestResult{
			Name:     tc.Name,
			FullName: suite.Name + "." + tc.Name,
			Status:   model.ParseStatus(tc.Status),
		}

		// Allure 1.4 records start/stop as epoch milliseconds.
		if tc.Start > 0 {
			r.Start = time.UnixMilli(tc.Start)
		}
		if tc.Stop > tc.Start {
			r.Duration = time.Duration(tc.Stop-tc.Start) * time.Millisecond
		}

		if tc.Failure != nil {
			r.Failure = &model.Failure{
				Message: tc.Failure.Message,
				Trace:   tc.Failure.Trace,
			}
		}

		for _, l := range tc.Labels {
			r.Labels = append(r.Labels, model.Label{Name: l.Name, Value: l.Value})
		}

		results = append(results, r)
	}
	return results
}
