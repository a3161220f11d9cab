package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNew_RegistersCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)
	m.OrdersCreated.WithLabelValues("credit_card").Inc()
	m.Captures.WithLabelValues("paid").Inc()
	m.EmailTransitions.WithLabelValues("verify", "ok").Inc()

	if n := testutil.CollectAndCount(m.EmailTransitions); n != 1 {
		t.Fatalf("email series = %d", n)
	}
	families, err := reg.Gather()
	if err != nil {
		t.Fatal(err)
	}
	if len(families) != 3 {
		t.Fatalf("families = %d", len(families))
	}
}

func TestNew_DuplicateRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	New(reg)
	defer func() {
		if recover() == nil {
			t.Fatal("second registration did not panic")
		}
	}()
	New(reg)
}
