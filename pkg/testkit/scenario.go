// Package testkit drives REST API tests from JSON scenario files.
//
// A scenario file holds either one request or a flow: an array of requests
// run in order against the same handler, where values captured from one
// response can be used by the next through {{name}} placeholders.
//
//	testdata/
//	  signup_flow.json        ← flow (array)
//	  add_course_req.json     ← request body
//	  get_course_404.json     ← single scenario
//
// Example _test.go:
//
//	func TestAPI(t *testing.T) {
//	    testkit.RunDir(t, func() http.Handler {
//	        return kernel.NewHTTPKernel(deps).Handler()
//	    }, "testdata")
//	}
package testkit

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Scenario describes one request and what its response must look like.
type Scenario struct {
	Name        string `json:"name"`
	Description string `json:"description"`

	RequestMethod   string            `json:"requestMethod"`
	RequestURL      string            `json:"requestUrl"`
	RequestFileName string            `json:"requestFileName"` // relative to the scenario file
	RequestBody     json.RawMessage   `json:"requestBody"`     // inline alternative to requestFileName
	Headers         map[string]string `json:"headers"`

	ExpectedCode       int             `json:"expectedCode"`
	ExpectedStatusCode int             `json:"expectedStatusCode"` // alias for expectedCode
	ResponseFileName   string          `json:"responseFileName"`
	ExpectedBody       json.RawMessage `json:"expectedBody"` // inline alternative to responseFileName

	// IgnoreFields are object keys dropped at any depth from both sides
	// before the bodies are compared, e.g. "_id" or "sessionID".
	IgnoreFields []string `json:"ignoreFields"`

	// Capture maps a variable name to a dotted path into the response
	// ("0._id", "sessionID"). Later steps of a flow read it as {{name}}.
	Capture map[string]string `json:"capture"`

	dir string
}

// LoadScenario reads and validates a single scenario.
func LoadScenario(path string) (*Scenario, error) {
	abs, data, err := read(path)
	if err != nil {
		return nil, err
	}

	var s Scenario
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("testkit: parse %q: %w", abs, err)
	}
	s.dir = filepath.Dir(abs)

	if err := s.validate(); err != nil {
		return nil, fmt.Errorf("testkit: invalid scenario %q: %w", abs, err)
	}
	return &s, nil
}

// LoadFlow reads an array of scenarios that run in order.
func LoadFlow(path string) ([]*Scenario, error) {
	abs, data, err := read(path)
	if err != nil {
		return nil, err
	}

	var steps []*Scenario
	if err := json.Unmarshal(data, &steps); err != nil {
		return nil, fmt.Errorf("testkit: parse flow %q: %w", abs, err)
	}
	if len(steps) == 0 {
		return nil, fmt.Errorf("testkit: flow %q has no steps", abs)
	}

	for i, s := range steps {
		s.dir = filepath.Dir(abs)
		if err := s.validate(); err != nil {
			return nil, fmt.Errorf("testkit: flow %q step %d: %w", abs, i, err)
		}
	}
	return steps, nil
}

// isFlow reports whether the file holds a JSON array.
func isFlow(path string) (bool, error) {
	_, data, err := read(path)
	if err != nil {
		return false, err
	}
	return bytes.HasPrefix(bytes.TrimSpace(data), []byte("[")), nil
}

func read(path string) (string, []byte, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", nil, fmt.Errorf("testkit: resolve path %q: %w", path, err)
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return "", nil, fmt.Errorf("testkit: read %q: %w", abs, err)
	}
	return abs, data, nil
}

func (s *Scenario) validate() error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.RequestURL == "" {
		return fmt.Errorf("requestUrl is required")
	}
	if s.ExpectedCode == 0 {
		s.ExpectedCode = s.ExpectedStatusCode
	}
	if s.ExpectedCode == 0 {
		return fmt.Errorf("expectedCode is required")
	}
	if s.RequestMethod == "" {
		s.RequestMethod = "GET"
	}
	if s.RequestFileName != "" && len(s.RequestBody) > 0 {
		return fmt.Errorf("requestFileName and requestBody are mutually exclusive")
	}
	if s.ResponseFileName != "" && len(s.ExpectedBody) > 0 {
		return fmt.Errorf("responseFileName and expectedBody are mutually exclusive")
	}
	return nil
}

// RequestBodyPath returns the absolute path of the request body file, or "".
func (s *Scenario) RequestBodyPath() string {
	return s.resolve(s.RequestFileName)
}

// ResponseBodyPath returns the absolute path of the expected body file, or "".
func (s *Scenario) ResponseBodyPath() string {
	return s.resolve(s.ResponseFileName)
}

func (s *Scenario) resolve(name string) string {
	if name == "" {
		return ""
	}
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(s.dir, name)
}

// requestBody returns the raw request body, or nil when there is none.
func (s *Scenario) requestBody() ([]byte, error) {
	if len(s.RequestBody) > 0 {
		return s.RequestBody, nil
	}
	if p := s.RequestBodyPath(); p != "" {
		return os.ReadFile(p)
	}
	return nil, nil
}

// expectedBody returns the expected response body, or nil to skip the check.
func (s *Scenario) expectedBody() ([]byte, error) {
	if len(s.ExpectedBody) > 0 {
		return s.ExpectedBody, nil
	}
	if p := s.ResponseBodyPath(); p != "" {
		return os.ReadFile(p)
	}
	return nil, nil
}
