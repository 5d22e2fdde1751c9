package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// assertBizMetricLine checks that the Prometheus output contains a business metric
// matching the given name, partial label pattern, and value. Uses regex to handle
// extra OTel scope labels injected by the Prometheus exporter.
func assertBizMetricLine(t *testing.T, output, name, labels, value string) {
	t.Helper()
	pattern := name + `\{[^}]*` + labels + `[^}]*\} ` + value
	assert.Regexp(t, pattern, output)
}

func TestNewBusinessMetrics(t *testing.T) {
	t.Run("Success_CreateBusinessMetrics", func(t *testing.T) {
		provider, err := NewProvider("test_app")
		require.NoError(t, err)

		businessMetrics, err := NewBusinessMetrics(provider.MeterProvider(), "test_app")

		require.NoError(t, err)
		assert.NotNil(t, businessMetrics)
	})
}

func TestBusinessMetrics_RecordOperation(t *testing.T) {
	provider, err := NewProvider("test_app")
	require.NoError(t, err)

	bm, err := NewBusinessMetrics(provider.MeterProvider(), "test_app")
	require.NoError(t, err)

	t.Run("Success_RecordSuccessfulOperation", func(t *testing.T) {
		// Should not panic
		bm.RecordOperation(context.Background(), "capability", "view_direct", "success")
	})

	t.Run("Success_RecordFailedOperation", func(t *testing.T) {
		// Should not panic
		bm.RecordOperation(context.Background(), "capability", "view_direct", "error")
	})

	t.Run("Success_RecordMultipleDomains", func(t *testing.T) {
		bm.RecordOperation(context.Background(), "capability", "view_direct", "success")
		bm.RecordOperation(context.Background(), "capability", "validate_password", "success")
		bm.RecordOperation(context.Background(), "capability", "issue_links", "error")
	})
}

func TestBusinessMetrics_RecordDuration(t *testing.T) {
	provider, err := NewProvider("test_app")
	require.NoError(t, err)

	bm, err := NewBusinessMetrics(provider.MeterProvider(), "test_app")
	require.NoError(t, err)

	t.Run("Success_RecordSuccessfulDuration", func(t *testing.T) {
		// Should not panic
		bm.RecordDuration(context.Background(), "capability", "view_direct", 123*time.Millisecond, "success")
	})

	t.Run("Success_RecordFailedDuration", func(t *testing.T) {
		// Should not panic
		bm.RecordDuration(context.Background(), "capability", "view_direct", 456*time.Millisecond, "error")
	})

	t.Run("Success_RecordMultipleDomains", func(t *testing.T) {
		bm.RecordDuration(context.Background(), "capability", "view_direct", 100*time.Millisecond, "success")
		bm.RecordDuration(context.Background(), "capability", "validate_password", 200*time.Millisecond, "success")
		bm.RecordDuration(context.Background(), "capability", "issue_links", 300*time.Millisecond, "error")
	})
}

func TestNewNoOpBusinessMetrics(t *testing.T) {
	noOpMetrics := NewNoOpBusinessMetrics()

	assert.NotNil(t, noOpMetrics)
	assert.IsType(t, &NoOpBusinessMetrics{}, noOpMetrics)

	t.Run("NoOp_RecordOperationDoesNotPanic", func(t *testing.T) {
		// Should not panic or do anything
		noOpMetrics.RecordOperation(context.Background(), "capability", "view_direct", "success")
		noOpMetrics.RecordOperation(context.Background(), "capability", "validate_password", "error")
	})

	t.Run("NoOp_RecordDurationDoesNotPanic", func(t *testing.T) {
		// Should not panic or do anything
		noOpMetrics.RecordDuration(
			context.Background(),
			"capability",
			"view_direct",
			100*time.Millisecond,
			"success",
		)
		noOpMetrics.RecordDuration(context.Background(), "capability", "validate_password", 200*time.Millisecond, "error")
	})
}

func TestBusinessMetrics_Integration(t *testing.T) {
	provider, err := NewProvider("integration_test")
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, provider.Shutdown(context.Background()))
	}()

	bm, err := NewBusinessMetrics(provider.MeterProvider(), "integration_test")
	require.NoError(t, err)

	// Record various operations
	ctx := context.Background()

	// Record operation counts
	bm.RecordOperation(ctx, "capability", "view_direct", "success")
	bm.RecordOperation(ctx, "capability", "view_direct", "success")
	bm.RecordOperation(ctx, "capability", "view_direct", "error")
	bm.RecordOperation(ctx, "capability", "validate_password", "success")
	bm.RecordOperation(ctx, "template", "template_save", "success")
	bm.RecordOperation(ctx, "capability", "issue_links", "success")

	// Record operation durations
	bm.RecordDuration(ctx, "capability", "view_direct", 50*time.Millisecond, "success")
	bm.RecordDuration(ctx, "capability", "view_direct", 60*time.Millisecond, "success")
	bm.RecordDuration(ctx, "capability", "view_direct", 100*time.Millisecond, "error")
	bm.RecordDuration(ctx, "capability", "validate_password", 10*time.Millisecond, "success")
	bm.RecordDuration(ctx, "template", "template_save", 20*time.Millisecond, "success")
	bm.RecordDuration(ctx, "capability", "issue_links", 150*time.Millisecond, "success")

	// Metrics should be recorded without errors
	// Verify metrics in Prometheus registry
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	provider.Handler().ServeHTTP(w, req)

	output := w.Body.String()

	// Check operation counts
	assertBizMetricLine(
		t,
		output,
		`integration_test_operations_total`,
		`domain="capability".*operation="view_direct".*status="success"`,
		`2`,
	)
	assertBizMetricLine(
		t,
		output,
		`integration_test_operations_total`,
		`domain="capability".*operation="view_direct".*status="error"`,
		`1`,
	)
	assertBizMetricLine(
		t,
		output,
		`integration_test_operations_total`,
		`domain="capability".*operation="validate_password".*status="success"`,
		`1`,
	)

	// Check durations (existence)
	assertBizMetricLine(
		t,
		output,
		`integration_test_operation_duration_seconds_count`,
		`domain="capability".*operation="view_direct".*status="success"`,
		`2`,
	)
	assertBizMetricLine(
		t,
		output,
		`integration_test_operation_duration_seconds_sum`,
		`domain="capability".*operation="view_direct".*status="success"`,
		``,
	)
}

func TestBusinessMetrics_RecordPresentation(t *testing.T) {
	provider, err := NewProvider("presentation_test")
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, provider.Shutdown(context.Background()))
	}()

	bm, err := NewBusinessMetrics(provider.MeterProvider(), "presentation_test")
	require.NoError(t, err)

	pm, ok := bm.(PresentationMetrics)
	require.True(t, ok)

	ctx := context.Background()
	pm.RecordPresentation(ctx, "view_direct", "granted")
	pm.RecordPresentation(ctx, "view_direct", "granted")
	pm.RecordPresentation(ctx, "view_direct", "hit_limit_exceeded")

	w := httptest.NewRecorder()
	provider.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	output := w.Body.String()

	assertBizMetricLine(t, output, `presentation_test_presentations_total`, `flow="view_direct".*outcome="granted"`, `2`)
	assertBizMetricLine(
		t,
		output,
		`presentation_test_presentations_total`,
		`flow="view_direct".*outcome="hit_limit_exceeded"`,
		`1`,
	)

	t.Run("NoOp", func(t *testing.T) {
		var noop PresentationMetrics = &NoOpBusinessMetrics{}
		noop.RecordPresentation(ctx, "view_direct", "granted")
	})
}
