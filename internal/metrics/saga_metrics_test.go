package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func newTestMetrics() *SagaMetrics {
	return NewSagaMetricsWithRegisterer(prometheus.NewRegistry())
}

func TestSagaMetrics_Counters(t *testing.T) {
	m := newTestMetrics()

	m.RecordSagaStarted()
	m.RecordSagaStarted()
	m.RecordSagaCompleted()
	m.RecordSagaFailed()
	m.RecordSagaCompensated()
	m.RecordSagaCanceled()
	m.RecordLoyaltyDegraded()

	if got := testutil.ToFloat64(m.sagaStarted); got != 2 {
		t.Errorf("sagaStarted = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.sagaCompleted); got != 1 {
		t.Errorf("sagaCompleted = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.sagaFailed); got != 1 {
		t.Errorf("sagaFailed = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.sagaCompensated); got != 1 {
		t.Errorf("sagaCompensated = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.sagaCanceled); got != 1 {
		t.Errorf("sagaCanceled = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.loyaltyDegraded); got != 1 {
		t.Errorf("loyaltyDegraded = %v, want 1", got)
	}
}

func TestSagaMetrics_ActiveGauge(t *testing.T) {
	m := newTestMetrics()

	m.RecordSagaStarted()
	m.RecordSagaStarted()
	m.RecordSagaFinished()

	if got := testutil.ToFloat64(m.activeSagas); got != 1 {
		t.Errorf("activeSagas = %v, want 1", got)
	}
}

func TestSagaMetrics_DoubleRegistrationReusesCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()

	first := NewSagaMetricsWithRegisterer(reg)
	second := NewSagaMetricsWithRegisterer(reg)

	first.RecordSagaCompleted()
	second.RecordSagaCompleted()

	if got := testutil.ToFloat64(second.sagaCompleted); got != 2 {
		t.Errorf("expected shared counter with value 2, got %v", got)
	}
}

func TestSagaMetrics_Durations(t *testing.T) {
	m := newTestMetrics()

	// Достаточно убедиться, что наблюдения не паникуют и попадают в гистограммы.
	m.RecordSagaDuration(50 * time.Millisecond)
	m.RecordStepDuration("payment", 5*time.Millisecond)

	if got := testutil.CollectAndCount(m.sagaDuration); got != 1 {
		t.Errorf("sagaDuration series = %d, want 1", got)
	}
	if got := testutil.CollectAndCount(m.stepDuration); got != 1 {
		t.Errorf("stepDuration series = %d, want 1", got)
	}
}
