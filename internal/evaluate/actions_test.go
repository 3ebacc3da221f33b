package evaluate

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/dtnitsch/product-extractor/internal/common"
	"github.com/dtnitsch/product-extractor/pkg/render"
	"github.com/urfave/cli/v2"
)

const metricsReply = `{"success":true,"metrics":{"precision":0.8567,"recall":0.5,"f1_score":0.6315,` +
	`"url_results":[{"url":"https://shop.example/sofas","true_count":4,"predicted_count":3,"correct_count":3,"status":"ok"}]}}`

type fakeService struct {
	mu         sync.Mutex
	replies    map[string]string
	sampleSize float64
}

func (f *fakeService) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if r.URL.Path == "/create_test_set" {
		var body map[string]any
		if json.NewDecoder(r.Body).Decode(&body) == nil {
			f.sampleSize, _ = body["sample_size"].(float64)
		}
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(f.replies[r.URL.Path]))
}

func setupService(t *testing.T) (*fakeService, string) {
	t.Helper()
	svc := &fakeService{replies: map[string]string{
		"/create_test_set": `{"success":true,"message":"Test set creation started"}`,
		"/metrics":         metricsReply,
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

func TestTestSet_DefaultSampleSize(t *testing.T) {
	svc, server := setupService(t)

	_, errOut, err := run(t, server, "test-set")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if svc.sampleSize != 30 {
		t.Errorf("sample_size = %v, want 30", svc.sampleSize)
	}
	if !strings.Contains(errOut, render.MsgTestSetStarted) {
		t.Errorf("notices = %q", errOut)
	}
}

func TestTestSet_FlagJSON(t *testing.T) {
	svc, server := setupService(t)

	out, _, err := run(t, server, "--format", "json", "test-set", "--sample-size", "12")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if svc.sampleSize != 12 {
		t.Errorf("sample_size = %v, want 12", svc.sampleSize)
	}
	if !strings.Contains(out, `"message": "Test set creation started"`) {
		t.Errorf("output = %q", out)
	}
}

func TestTestSet_AppError(t *testing.T) {
	svc, server := setupService(t)
	svc.replies["/create_test_set"] = `{"success":false,"error":"Dataset not found"}`

	_, errOut, err := run(t, server, "test-set")
	if code := common.Code(err); code != common.ExitRejected {
		t.Errorf("exit code = %d, want %d", code, common.ExitRejected)
	}
	if !strings.Contains(errOut, "Error: Dataset not found") {
		t.Errorf("notices = %q", errOut)
	}
}

func TestMetrics_Text(t *testing.T) {
	_, server := setupService(t)

	out, _, err := run(t, server, "metrics", "--details")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	for _, want := range []string{"85.67%", "50.00%", "63.15%", "Per-URL results", "https://shop.example/sofas"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestMetrics_JSONWithoutDetails(t *testing.T) {
	_, server := setupService(t)

	out, _, err := run(t, server, "--format", "json", "metrics")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if strings.Contains(out, "url_results") {
		t.Errorf("output = %q, want per-URL results dropped", out)
	}
	if !strings.Contains(out, `"precision": 0.8567`) {
		t.Errorf("output = %q", out)
	}
}

func TestMetrics_EmbeddedError(t *testing.T) {
	svc, server := setupService(t)
	svc.replies["/metrics"] = `{"success":true,"metrics":{"error":"No test set yet"}}`

	_, errOut, err := run(t, server, "metrics")
	if code := common.Code(err); code != common.ExitRejected {
		t.Errorf("exit code = %d, want %d", code, common.ExitRejected)
	}
	if !strings.Contains(errOut, "Error: No test set yet") {
		t.Errorf("notices = %q", errOut)
	}
}

func TestMetrics_MissingMetrics(t *testing.T) {
	svc, server := setupService(t)
	svc.replies["/metrics"] = `{"success":true}`

	_, errOut, err := run(t, server, "metrics")
	if code := common.Code(err); code != common.ExitFailed {
		t.Errorf("exit code = %d, want %d", code, common.ExitFailed)
	}
	if !strings.Contains(errOut, render.MsgNoticeRequestFailed) {
		t.Errorf("notices = %q", errOut)
	}
}
