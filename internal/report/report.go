// Package report accumulates per-test results and renders them into a
// single self-contained HTML summary. Rendering is a pure function of the
// accumulated results; no live browser session is involved.
package report

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

//go:embed report.html.tmpl
var reportTemplate string

// Status is the outcome of one test.
type Status string

const (
	StatusPassed  Status = "passed"
	StatusFailed  Status = "failed"
	StatusSkipped Status = "skipped"
)

// TestResult is the record kept for one executed test.
type TestResult struct {
	Suite       string        `json:"suite"`
	Name        string        `json:"name"`
	Status      Status        `json:"status"`
	Duration    time.Duration `json:"duration"`
	Error       string        `json:"error,omitempty"`
	Screenshots []string      `json:"screenshots,omitempty"`
	StartedAt   time.Time     `json:"startedAt"`
}

// Results is a full suite run.
type Results struct {
	RunID      string       `json:"runId"`
	Browser    string       `json:"browser"`
	BaseURL    string       `json:"baseUrl"`
	StartedAt  time.Time    `json:"startedAt"`
	FinishedAt time.Time    `json:"finishedAt"`
	Tests      []TestResult `json:"tests"`
}

// Collector accumulates results during a run. It is safe for use from
// multiple test goroutines.
type Collector struct {
	mu      sync.Mutex
	results Results
}

// NewCollector starts an empty run record.
func NewCollector(browser, baseURL string) *Collector {
	return &Collector{results: Results{
		RunID:     uuid.New().String(),
		Browser:   browser,
		BaseURL:   baseURL,
		StartedAt: time.Now(),
	}}
}

// Record appends one test result.
func (c *Collector) Record(r TestResult) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.results.Tests = append(c.results.Tests, r)
}

// Results snapshots the accumulated run, stamping the finish time.
func (c *Collector) Results() *Results {
	c.mu.Lock()
	defer c.mu.Unlock()
	snapshot := c.results
	snapshot.Tests = append([]TestResult(nil), c.results.Tests...)
	snapshot.FinishedAt = time.Now()
	return &snapshot
}

// WriteJSON persists the accumulated run as JSON.
func (c *Collector) WriteJSON(path string) error {
	raw, err := json.MarshalIndent(c.Results(), "", "  ")
	if err != nil {
		return fmt.Errorf("could not encode results: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("could not write results: %w", err)
	}
	return nil
}

// LoadResults reads a previously persisted run.
func LoadResults(path string) (*Results, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not open results file: %w", err)
	}
	var results Results
	if err := json.Unmarshal(raw, &results); err != nil {
		return nil, fmt.Errorf("malformed results file %s: %w", path, err)
	}
	return &results, nil
}

// suiteView groups one suite's results for the template.
type suiteView struct {
	Name    string
	Passed  int
	Failed  int
	Skipped int
	Tests   []TestResult
}

type reportView struct {
	Results *Results
	Suites  []suiteView
	Passed  int
	Failed  int
	Skipped int
	Elapsed time.Duration
}

// Generate renders the HTML summary next to the given path and returns the
// written file path.
func Generate(results *Results, outPath string) (string, error) {
	tmpl, err := template.New("report").Funcs(template.FuncMap{
		"fmtDuration": func(d time.Duration) string {
			return d.Round(time.Millisecond).String()
		},
		"basename": filepath.Base,
	}).Parse(reportTemplate)
	if err != nil {
		return "", fmt.Errorf("could not parse report template: %w", err)
	}

	view := buildView(results)

	f, err := os.Create(outPath)
	if err != nil {
		return "", fmt.Errorf("could not create report file: %w", err)
	}
	defer f.Close()

	if err := tmpl.Execute(f, view); err != nil {
		return "", fmt.Errorf("could not render report: %w", err)
	}
	return outPath, nil
}

func buildView(results *Results) reportView {
	bySuite := make(map[string]*suiteView)
	var order []string
	view := reportView{
		Results: results,
		Elapsed: results.FinishedAt.Sub(results.StartedAt),
	}

	for _, test := range results.Tests {
		suite, ok := bySuite[test.Suite]
		if !ok {
			suite = &suiteView{Name: test.Suite}
			bySuite[test.Suite] = suite
			order = append(order, test.Suite)
		}
		suite.Tests = append(suite.Tests, test)
		switch test.Status {
		case StatusFailed:
			suite.Failed++
			view.Failed++
		case StatusSkipped:
			suite.Skipped++
			view.Skipped++
		default:
			suite.Passed++
			view.Passed++
		}
	}

	sort.Strings(order)
	for _, name := range order {
		view.Suites = append(view.Suites, *bySuite[name])
	}
	return view
}
