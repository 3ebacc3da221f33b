package extract

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/dtnitsch/product-extractor/internal/common"
	"github.com/urfave/cli/v2"
)

type fakeService struct {
	mu      sync.Mutex
	paths   []string
	replies map[string]string
}

func (f *fakeService) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.paths = append(f.paths, r.URL.Path)
	reply := f.replies[r.URL.Path]
	if r.URL.Path == "/extract" {
		var body struct {
			URL string `json:"url"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		if byURL, ok := f.replies["/extract "+body.URL]; ok {
			reply = byURL
		}
	}
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(reply))
}

func (f *fakeService) count(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, p := range f.paths {
		if p == path {
			n++
		}
	}
	return n
}

func setupService(t *testing.T) (*fakeService, string) {
	t.Helper()
	svc := &fakeService{replies: map[string]string{
		"/extract": `{"success":true,"products":[{"name":"Lamp","confidence":0.4},{"name":"Sofa","confidence":0.9}],"count":2}`,
		"/stats":   `[{"name":"Sofa","count":5}]`,
		"/recent":  `[{"url":"https://shop.example/sofas","count":2,"status":"success"}]`,
	}}
	srv := httptest.NewServer(svc)
	t.Cleanup(srv.Close)
	return svc, srv.URL
}

func run(t *testing.T, server string, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	app := &cli.App{
		Name:           "product-extractor",
		Flags:          common.GlobalFlags(),
		Commands:       Commands(),
		Writer:         &out,
		ErrWriter:      &errOut,
		ExitErrHandler: func(*cli.Context, error) {},
	}
	argv := append([]string{"product-extractor", "--server", server, "--quiet", "--no-color"}, args...)
	err := app.Run(argv)
	return out.String(), errOut.String(), err
}

func TestExtract_JSON(t *testing.T) {
	_, server := setupService(t)

	out, _, err := run(t, server, "--format", "json", "extract", "https://shop.example/sofas")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	var got []Output
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if len(got) != 1 || !got[0].Success || got[0].Count != 2 {
		t.Fatalf("output = %+v", got)
	}
	if got[0].Products[0].Name != "Sofa" {
		t.Errorf("first product = %q, want highest confidence first", got[0].Products[0].Name)
	}
}

func TestExtract_JSONWorstExitCode(t *testing.T) {
	svc, server := setupService(t)
	svc.replies["/extract https://rejected.example"] = `{"success":false,"error":"Not a product page"}`
	svc.replies["/extract https://broken.example"] = `<html>bad gateway</html>`

	out, _, err := run(t, server, "--format", "json", "extract",
		"--urls", "https://rejected.example,https://broken.example", "https://shop.example")
	if code := common.Code(err); code != common.ExitFailed {
		t.Errorf("exit code = %d, want %d", code, common.ExitFailed)
	}

	var got []Output
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if len(got) != 3 {
		t.Fatalf("results = %d, want 3", len(got))
	}
	if got[0].URL != "https://shop.example" || !got[0].Success {
		t.Errorf("first = %+v, want positional URL first", got[0])
	}
	if got[1].Kind != "app_error" || got[1].Error != "Not a product page" {
		t.Errorf("rejected = %+v", got[1])
	}
	if got[2].Kind != "transport_error" {
		t.Errorf("broken = %+v", got[2])
	}
}

func TestExtract_AppErrorExitCode(t *testing.T) {
	svc, server := setupService(t)
	svc.replies["/extract"] = `{"success":false,"error":"Not a product page"}`

	out, _, err := run(t, server, "extract", "https://shop.example")
	if code := common.Code(err); code != common.ExitRejected {
		t.Errorf("exit code = %d, want %d", code, common.ExitRejected)
	}
	if !strings.Contains(out, "Not a product page") {
		t.Errorf("output = %q", out)
	}
	if svc.count("/stats") != 0 {
		t.Error("history refreshed after a rejected extraction")
	}
}

func TestExtract_Text(t *testing.T) {
	svc, server := setupService(t)

	out, errOut, err := run(t, server, "extract", "https://shop.example/sofas")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	for _, want := range []string{"Found 2 products on the page:", "Sofa", "90%", "Top products", "Recent requests", "[OK]"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "Sofa") > strings.Index(out, "Lamp") {
		t.Error("products not in confidence order")
	}
	if !strings.Contains(errOut, "https://shop.example/sofas") {
		t.Errorf("progress = %q, want the URL", errOut)
	}
	if svc.count("/stats") != 1 || svc.count("/recent") != 1 {
		t.Error("history not refreshed once after success")
	}
}

func TestExtract_NoURLs(t *testing.T) {
	svc, server := setupService(t)

	_, _, err := run(t, server, "extract", "  ")
	if code := common.Code(err); code != common.ExitRejected {
		t.Errorf("exit code = %d, want %d", code, common.ExitRejected)
	}
	if svc.count("/extract") != 0 {
		t.Error("request issued without a URL")
	}
}

func TestStats_YAML(t *testing.T) {
	_, server := setupService(t)

	out, _, err := run(t, server, "--format", "yaml", "stats")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !strings.Contains(out, "name: Sofa") || !strings.Contains(out, "count: 5") {
		t.Errorf("output = %q", out)
	}
}

func TestRecent_TransportFailure(t *testing.T) {
	svc, server := setupService(t)
	svc.replies["/recent"] = `{"unexpected":true}`

	_, _, err := run(t, server, "recent")
	if code := common.Code(err); code != common.ExitFailed {
		t.Errorf("exit code = %d, want %d", code, common.ExitFailed)
	}
}

func TestPage(t *testing.T) {
	svc, server := setupService(t)
	path := filepath.Join(t.TempDir(), "index.html")

	_, _, err := run(t, server, "page", "--output", path, "https://shop.example/sofas")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	markup := string(data)
	for _, want := range []string{`class="products-list"`, `data-url="https://shop.example/sofas"`, `id="extract-form"`} {
		if !strings.Contains(markup, want) {
			t.Errorf("page missing %q", want)
		}
	}
	// Once on load, once after the extraction.
	if svc.count("/stats") != 2 {
		t.Errorf("stats calls = %d, want 2", svc.count("/stats"))
	}
}
