package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetrics_Counters(t *testing.T) {
	m := New()
	m.IncStarted()
	m.IncStarted()
	m.ObserveCompleted("damp_heat", 11)
	m.IncEnded(EndExpired)
	m.IncAnswer(AnswerAccepted)
	m.IncAnswer(AnswerInvalid)
	m.IncAnswer(AnswerInvalid)
	m.SetActive(3)

	if got := testutil.ToFloat64(m.started); got != 2 {
		t.Errorf("started = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.completed.WithLabelValues("damp_heat")); got != 1 {
		t.Errorf("completed{damp_heat} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.ended.WithLabelValues(EndExpired)); got != 1 {
		t.Errorf("ended{expired} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.answers.WithLabelValues(AnswerInvalid)); got != 2 {
		t.Errorf("answers{invalid} = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.active); got != 3 {
		t.Errorf("active = %v, want 3", got)
	}
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	m.IncStarted()
	m.ObserveCompleted("balanced", 9)
	m.IncEnded(EndAbandoned)
	m.IncAnswer(AnswerCompleted)
	m.SetActive(1)
	if m.Handler() == nil {
		t.Error("nil Metrics should still return a handler")
	}
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.IncStarted()

	rr := httptest.NewRecorder()
	m.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	body, _ := io.ReadAll(rr.Body)
	if !strings.Contains(string(body), "tizhi_assessment_sessions_started_total 1") {
		t.Errorf("exposition missing started counter:\n%s", body)
	}
}

func TestMetrics_IndependentRegistries(t *testing.T) {
	a, b := New(), New()
	a.IncStarted()
	if got := testutil.ToFloat64(b.started); got != 0 {
		t.Errorf("second registry saw %v starts", got)
	}
}
