package help

import (
	"testing"

	"gopkg.in/yaml.v3"
)

func TestQuickstartYAMLParses(t *testing.T) {
	var doc map[string]any
	if err := yaml.Unmarshal([]byte(QuickstartYAML), &doc); err != nil {
		t.Fatalf("yaml.Unmarshal() error = %v", err)
	}
	for _, key := range []string{"commands", "limits", "exit_codes"} {
		if _, ok := doc[key]; !ok {
			t.Errorf("quickstart missing %q section", key)
		}
	}
}
