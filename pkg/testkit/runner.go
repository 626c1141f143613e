package testkit

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

// Vars holds values captured by earlier flow steps.
type Vars map[string]string

// expand replaces every {{name}} in s.
func (v Vars) expand(s string) string {
	for name, value := range v {
		s = strings.ReplaceAll(s, "{{"+name+"}}", value)
	}
	return s
}

// Run executes the scenario or flow in path against handler.
func Run(t *testing.T, handler http.Handler, path string) {
	t.Helper()

	flow, err := isFlow(path)
	if err != nil {
		t.Fatalf("%v", err)
	}

	if !flow {
		s, err := LoadScenario(path)
		if err != nil {
			t.Fatalf("%v", err)
		}
		t.Run(s.Name, func(t *testing.T) {
			runScenario(t, handler, s, Vars{})
		})
		return
	}

	steps, err := LoadFlow(path)
	if err != nil {
		t.Fatalf("%v", err)
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	t.Run(name, func(t *testing.T) {
		vars := Vars{}
		for _, s := range steps {
			ok := t.Run(s.Name, func(t *testing.T) {
				runScenario(t, handler, s, vars)
			})
			if !ok {
				t.Fatalf("step %q failed; remaining steps skipped", s.Name)
			}
		}
	})
}

// RunDir runs every *.json file in dir. Each file gets a fresh handler from
// newHandler so flows never see each other's data.
func RunDir(t *testing.T, newHandler func() http.Handler, dir string) {
	t.Helper()

	entries, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil || len(entries) == 0 {
		t.Fatalf("testkit: no scenario files found in %q", dir)
	}

	for _, path := range entries {
		if strings.HasSuffix(path, "_req.json") || strings.HasSuffix(path, "_res.json") {
			continue
		}
		Run(t, newHandler(), path)
	}
}

func runScenario(t *testing.T, handler http.Handler, s *Scenario, vars Vars) {
	t.Helper()

	raw, err := s.requestBody()
	if err != nil {
		t.Fatalf("[%s] request body: %v", s.Name, err)
	}
	var body io.Reader
	if raw != nil {
		body = strings.NewReader(vars.expand(string(raw)))
	}

	req := httptest.NewRequest(strings.ToUpper(s.RequestMethod), vars.expand(s.RequestURL), body)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	for k, v := range s.Headers {
		req.Header.Set(k, vars.expand(v))
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	AssertStatusCode(t, s, rec.Code)

	expected, err := s.expectedBody()
	if err != nil {
		t.Errorf("[%s] expected body: %v", s.Name, err)
	} else if expected != nil {
		AssertJSONBody(t, s, []byte(vars.expand(string(expected))), rec.Body.Bytes())
	}

	for name, path := range s.Capture {
		value, err := Extract(rec.Body.Bytes(), path)
		if err != nil {
			t.Errorf("[%s] capture %q: %v", s.Name, name, err)
			continue
		}
		vars[name] = value
	}
}

// Extract follows a dotted path ("0._id", "sessionID") through a JSON
// document and returns the value it ends on as a string.
func Extract(doc []byte, path string) (string, error) {
	var cur interface{}
	if err := json.NewDecoder(bytes.NewReader(doc)).Decode(&cur); err != nil {
		return "", fmt.Errorf("response is not JSON: %w", err)
	}

	for _, part := range strings.Split(path, ".") {
		switch node := cur.(type) {
		case map[string]interface{}:
			next, ok := node[part]
			if !ok {
				return "", fmt.Errorf("key %q not found", part)
			}
			cur = next
		case []interface{}:
			i, err := strconv.Atoi(part)
			if err != nil || i < 0 || i >= len(node) {
				return "", fmt.Errorf("index %q out of range (len %d)", part, len(node))
			}
			cur = node[i]
		default:
			return "", fmt.Errorf("cannot descend into %T at %q", cur, part)
		}
	}

	if s, ok := cur.(string); ok {
		return s, nil
	}
	return fmt.Sprint(cur), nil
}
