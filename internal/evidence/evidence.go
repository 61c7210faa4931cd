// Package evidence captures diagnostic artifacts when a test fails:
// screenshots, a DOM snapshot, and a structured failure-evidence document.
// Capture is best-effort; its own failures are logged, never escalated, so
// diagnostics can never mask the original test outcome.
package evidence

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime/debug"
	"time"

	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"
)

// PageState is the slice of the driver's page API the capturer needs.
// playwright.Page satisfies it.
type PageState interface {
	URL() string
	Title() (string, error)
	Content() (string, error)
	Screenshot(options ...playwright.PageScreenshotOptions) ([]byte, error)
}

// ErrorDetail is the failure description embedded in an evidence document.
type ErrorDetail struct {
	Message string `json:"message"`
	Stack   string `json:"stack"`
}

// BrowserState records where the browser was when the failure happened.
type BrowserState struct {
	URL   string `json:"url"`
	Title string `json:"title"`
}

// Evidence is the structured failure record written next to the screenshot.
type Evidence struct {
	TestName       string       `json:"testName"`
	Timestamp      string       `json:"timestamp"`
	ScreenshotPath string       `json:"screenshotPath"`
	Error          ErrorDetail  `json:"error"`
	BrowserState   BrowserState `json:"browserState"`
	PageSource     string       `json:"pageSource"`
}

// Capture writes diagnostic artifacts into one directory.
type Capture struct {
	dir string
	log *zap.Logger
	now func() time.Time
}

// New creates the artifact directory if needed and returns a capturer.
func New(dir string, log *zap.Logger) (*Capture, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("could not create artifact directory: %w", err)
	}
	return &Capture{dir: dir, log: log, now: time.Now}, nil
}

// Dir returns the artifact directory.
func (c *Capture) Dir() string {
	return c.dir
}

// OnFailure saves a screenshot, the page source, the current URL and title,
// and the error into a failure-evidence JSON document. It returns whatever
// evidence it managed to assemble; capture errors are logged only.
func (c *Capture) OnFailure(page PageState, testName string, testErr error) *Evidence {
	ts := c.now()
	ev := &Evidence{
		TestName:  testName,
		Timestamp: ts.Format(time.RFC3339),
		Error: ErrorDetail{
			Message: errMessage(testErr),
			Stack:   string(debug.Stack()),
		},
	}

	if page == nil {
		c.writeDocument(ev, ts, testName)
		return ev
	}

	ev.BrowserState.URL = page.URL()
	if title, err := page.Title(); err == nil {
		ev.BrowserState.Title = title
	} else {
		c.log.Warn("could not read page title", zap.Error(err))
	}
	if source, err := page.Content(); err == nil {
		ev.PageSource = source
	} else {
		c.log.Warn("could not read page source", zap.Error(err))
	}

	ev.ScreenshotPath = c.saveScreenshot(page, ts, testName, "failure", "error")

	c.writeDocument(ev, ts, testName)
	return ev
}

// OnStep saves a step screenshot. Used when step-by-step captures are
// enabled in the suite configuration.
func (c *Capture) OnStep(page PageState, testName, label string) {
	if page == nil {
		return
	}
	c.saveScreenshot(page, c.now(), testName, label, "step")
}

func (c *Capture) saveScreenshot(page PageState, ts time.Time, testName, step, kind string) string {
	path := filepath.Join(c.dir, artifactName(ts, testName, step, kind)+".png")
	_, err := page.Screenshot(playwright.PageScreenshotOptions{
		Path:     playwright.String(path),
		FullPage: playwright.Bool(true),
	})
	if err != nil {
		c.log.Warn("could not capture screenshot",
			zap.String("test", testName), zap.Error(err))
		return ""
	}
	c.log.Info("screenshot saved", zap.String("path", path))
	return path
}

func (c *Capture) writeDocument(ev *Evidence, ts time.Time, testName string) {
	path := filepath.Join(c.dir, artifactName(ts, testName, "failure", "evidence")+".json")
	raw, err := json.MarshalIndent(ev, "", "  ")
	if err != nil {
		c.log.Warn("could not encode failure evidence", zap.Error(err))
		return
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		c.log.Warn("could not write failure evidence", zap.Error(err))
		return
	}
	c.log.Info("failure evidence saved", zap.String("path", path))
}

var unsafeNameChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// artifactName builds the <timestamp>_<testName>_<step>_<type> artifact stem.
func artifactName(ts time.Time, testName, step, kind string) string {
	return fmt.Sprintf("%s_%s_%s_%s",
		ts.Format("20060102T150405"),
		sanitize(testName),
		sanitize(step),
		sanitize(kind),
	)
}

func sanitize(s string) string {
	return unsafeNameChars.ReplaceAllString(s, "-")
}

func errMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
