package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestRegisterCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	RegisterCollectors(reg)

	LoginAttempts.WithLabelValues("success").Inc()
	DocumentOperations.WithLabelValues("get", "ok").Inc()

	n, err := testutil.GatherAndCount(reg, "docsession_login_attempts_total", "docsession_document_operations_total")
	require.NoError(t, err)
	require.Equal(t, 2, n)

	require.Panics(t, func() { RegisterCollectors(reg) }, "double registration is a programming error")
}
