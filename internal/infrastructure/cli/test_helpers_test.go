package cli

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
)

// runCLI executes the root command with args and returns what it printed.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()

	projectPath, configPath = "", ""
	submitRatings, serveAddr, serveWatch = "", "", false
	configForce, configJSON = false, false

	var out, errOut bytes.Buffer
	RootCmd.SetOut(&out)
	RootCmd.SetErr(&errOut)
	RootCmd.SetArgs(args)
	defer func() {
		RootCmd.SetArgs(nil)
		RootCmd.SetOut(nil)
		RootCmd.SetErr(nil)
	}()

	err := Execute()
	return out.String(), err
}

// quietProject returns a temp project root whose logs go to a file.
func quietProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("STUDIORATE_LOG_FILE", filepath.Join(dir, "studiorate.log"))
	return dir
}

// formEndpoint is a fake form endpoint that records submitted fields.
type formEndpoint struct {
	*httptest.Server
	mu     sync.Mutex
	forms  []map[string]string
	status int
}

func newFormEndpoint(t *testing.T, status int) *formEndpoint {
	t.Helper()
	fe := &formEndpoint{status: status}
	fe.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		fields := map[string]string{}
		for k, v := range r.MultipartForm.Value {
			fields[k] = v[0]
		}
		fe.mu.Lock()
		fe.forms = append(fe.forms, fields)
		fe.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(fe.status)
		_, _ = io.WriteString(w, `{"ok":true}`)
	}))
	t.Cleanup(fe.Close)
	t.Setenv("STUDIORATE_ENDPOINT", fe.URL)
	return fe
}

func (fe *formEndpoint) received() []map[string]string {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return append([]map[string]string(nil), fe.forms...)
}
