package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	_ "github.com/Sternrassler/catalog-select/pkg/client"
	_ "github.com/Sternrassler/catalog-select/pkg/selection"
)

func TestRegistry(t *testing.T) {
	if Registry == nil {
		t.Error("Registry should not be nil")
	}

	if Registry != prometheus.DefaultRegisterer {
		t.Error("Registry should be the default Prometheus registerer")
	}
}

func TestHandler_ExposesModuleMetrics(t *testing.T) {
	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, _ := io.ReadAll(rec.Result().Body)
	output := string(body)

	for _, name := range []string{
		"catalog_request_duration_seconds",
		"catalog_selection_size",
	} {
		if !strings.Contains(output, name) {
			t.Errorf("Expected metrics output to contain %q", name)
		}
	}
}
