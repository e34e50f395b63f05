package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/kalambet/tizhi/internal/assessment"
	"github.com/kalambet/tizhi/internal/config"
	"github.com/kalambet/tizhi/internal/profile"
	"github.com/kalambet/tizhi/internal/questionnaire"
)

type recordedRequest struct {
	Method string
	Path   string
	Body   string
	Auth   string
}

type testServer struct {
	server   *httptest.Server
	mu       sync.Mutex
	requests []recordedRequest
}

func newTestServer(t *testing.T, responses map[string]string) *testServer {
	t.Helper()
	ts := &testServer{}

	ts.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body bytes.Buffer
		body.ReadFrom(r.Body)

		ts.mu.Lock()
		ts.requests = append(ts.requests, recordedRequest{
			Method: r.Method,
			Path:   r.URL.RequestURI(),
			Body:   body.String(),
			Auth:   r.Header.Get("Authorization"),
		})
		ts.mu.Unlock()

		key := r.Method + " " + r.URL.Path
		if resp, ok := responses[key]; ok {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(resp))
			return
		}

		w.WriteHeader(404)
		w.Write([]byte(`{"error":{"message":"assessment not found","type":"not_found_error"}}`))
	}))

	t.Cleanup(ts.server.Close)
	return ts
}

func (ts *testServer) client() *apiClient {
	return &apiClient{
		baseURL:    ts.server.URL,
		token:      "test-token",
		httpClient: ts.server.Client(),
	}
}

// useServer points the CLI at ts and silences status output for the test.
func useServer(t *testing.T, ts *testServer) {
	t.Helper()
	oldClient, oldStderr, oldColor := newAPIClient, stderr, noColor
	newAPIClient = func() (*apiClient, error) { return ts.client(), nil }
	stderr = io.Discard
	noColor = true
	t.Cleanup(func() {
		newAPIClient, stderr, noColor = oldClient, oldStderr, oldColor
	})
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	}()
	err := rootCmd.Execute()
	return out.String(), err
}

func newLocalRegistry(t *testing.T) *assessment.Registry {
	t.Helper()
	r, err := assessment.NewRegistry(questionnaire.Default(), assessment.Options{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	if err != nil {
		t.Fatal(err)
	}
	return r
}

var ctx = context.Background()

const snapshotJSON = `{"id":"a-1","status":"in_progress","position":2,"total":9,"answered":1,"progress":22,
"question":{"id":"core-qi-deficiency","text":"Do you tire easily?","category":"qi_deficiency","tier":1},
"options":[{"value":1,"label":"never","hint":"没有"},{"value":5,"label":"always","hint":"总是"}]}`

func TestSessionStart_SendsRespondent(t *testing.T) {
	ts := newTestServer(t, map[string]string{
		"POST /assessments": snapshotJSON,
	})
	useServer(t, ts)

	out, err := execute(t, "session", "start", "--gender", "female", "--age", "30", "--province", "四川")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "Do you tire easily?") || !strings.Contains(out, "[2/9]") {
		t.Errorf("output = %q", out)
	}

	if len(ts.requests) != 1 {
		t.Fatalf("expected 1 request, got %d", len(ts.requests))
	}
	r := ts.requests[0]
	if r.Method != "POST" || r.Path != "/assessments" {
		t.Errorf("request = %s %s", r.Method, r.Path)
	}
	if r.Auth != "Bearer test-token" {
		t.Errorf("auth = %q, want Bearer test-token", r.Auth)
	}

	var body struct {
		Respondent *profile.Respondent `json:"respondent"`
	}
	if err := json.Unmarshal([]byte(r.Body), &body); err != nil {
		t.Fatalf("body parse error: %v", err)
	}
	if body.Respondent == nil || body.Respondent.Gender != profile.Female || body.Respondent.Age != 30 {
		t.Errorf("respondent = %+v", body.Respondent)
	}
	if body.Respondent.Climate != "温和湿润" {
		t.Errorf("climate = %q", body.Respondent.Climate)
	}
}

func TestSessionAnswer(t *testing.T) {
	ts := newTestServer(t, map[string]string{
		"POST /assessments/a-1/answers": snapshotJSON,
	})
	useServer(t, ts)

	if _, err := execute(t, "session", "answer", "a-1", "4"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ts.requests) != 1 {
		t.Fatalf("expected 1 request, got %d", len(ts.requests))
	}
	if got := ts.requests[0].Body; got != `{"value":4}` {
		t.Errorf("body = %q, want {\"value\":4}", got)
	}
}

func TestSessionAnswer_NotNumeric(t *testing.T) {
	ts := newTestServer(t, nil)
	useServer(t, ts)

	_, err := execute(t, "session", "answer", "a-1", "often")
	if err == nil || !strings.Contains(err.Error(), "number") {
		t.Fatalf("err = %v", err)
	}
	if len(ts.requests) != 0 {
		t.Errorf("sent %d requests for an invalid value", len(ts.requests))
	}
}

func TestSessionShow_NotFound(t *testing.T) {
	ts := newTestServer(t, nil)
	useServer(t, ts)

	_, err := execute(t, "session", "show", "missing")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "404") || !strings.Contains(err.Error(), "assessment not found") {
		t.Errorf("error = %q", err.Error())
	}
}

func TestSessionResult(t *testing.T) {
	ts := newTestServer(t, map[string]string{
		"GET /assessments/a-1/result": `{"id":"a-1","scores":{"balanced":10,"qi_deficiency":75},"primary":"qi_deficiency","primary_label":"气虚质",
"ranking":[{"category":"qi_deficiency","label":"气虚质","score":75},{"category":"balanced","label":"平和质","score":10}],"answered":11}`,
	})
	useServer(t, ts)

	out, err := execute(t, "session", "result", "a-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{"Primary constitution: 气虚质 (qi_deficiency)", "75.0", "11 questions answered"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestSessionAbandon_EscapesID(t *testing.T) {
	ts := newTestServer(t, map[string]string{
		"DELETE /assessments/a 1": `{"status":"abandoned"}`,
	})
	useServer(t, ts)

	if _, err := execute(t, "session", "abandon", "a 1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := ts.requests[0].Path; got != "/assessments/a%201" {
		t.Errorf("path = %q", got)
	}
}

func TestStatusCommand_Stopped(t *testing.T) {
	ts := newTestServer(t, map[string]string{})
	ts.server.Close()

	client := ts.client()
	_, err := client.get(ctx, "/health")
	if err == nil {
		t.Fatal("expected error for stopped server")
	}
	if !strings.Contains(err.Error(), "not reachable") {
		t.Errorf("error = %q, want it to mention 'not reachable'", err.Error())
	}
}

func TestNoColorFlag(t *testing.T) {
	old := noColor
	defer func() { noColor = old }()

	noColor = true
	result := colorize(colorGreen, "test message")
	if strings.Contains(result, "\033[") {
		t.Errorf("colorize with noColor=true should not contain ANSI codes, got %q", result)
	}
	if result != "test message" {
		t.Errorf("result = %q, want %q", result, "test message")
	}

	noColor = false
	result = colorize(colorGreen, "test message")
	if !strings.Contains(result, "\033[") {
		t.Errorf("colorize with noColor=false should contain ANSI codes, got %q", result)
	}
}

func TestDecodeJSON_ErrorResponse(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(409)
		w.Write([]byte(`{"error":{"message":"session already completed","type":"conflict_error"}}`))
	}))
	defer ts.Close()

	client := &apiClient{
		baseURL:    ts.URL,
		token:      "bad-token",
		httpClient: ts.Client(),
	}

	resp, err := client.post(ctx, "/assessments/x/answers", map[string]int{"value": 3})
	if err != nil {
		t.Fatalf("unexpected transport error: %v", err)
	}

	var result any
	err = decodeJSON(resp, &result)
	if err == nil {
		t.Fatal("expected error for 409 response")
	}
	if got, want := err.Error(), "server returned 409: session already completed"; got != want {
		t.Errorf("error = %q, want %q", got, want)
	}
}

func TestRunAssessment_Balanced(t *testing.T) {
	noColor = true
	reg := newLocalRegistry(t)
	in := strings.NewReader(strings.Repeat("\n", 1) + "5\n" + strings.Repeat("1\n", 8))
	var out bytes.Buffer

	rep, err := runAssessment(in, &out, reg, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rep.Primary != questionnaire.Balanced || rep.Answered != 9 {
		t.Errorf("primary=%s answered=%d", rep.Primary, rep.Answered)
	}
	if rep.Advice != nil {
		t.Error("advice without respondent")
	}
	if !strings.Contains(out.String(), "[9/9]") {
		t.Errorf("output never reached the last core question:\n%s", out.String())
	}
}

func TestRunAssessment_BackAndInvalidInput(t *testing.T) {
	noColor = true
	reg := newLocalRegistry(t)
	script := []string{"9", "abc", "b", "5", "back", "4"}
	for i := 0; i < 8; i++ {
		script = append(script, "1")
	}
	var out bytes.Buffer

	rep, err := runAssessment(strings.NewReader(strings.Join(script, "\n")+"\n"), &out, reg, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := rep.Scores.Get(questionnaire.Balanced); got != 75 {
		t.Errorf("balanced score = %v, want 75", got)
	}
	for _, want := range []string{"Answers range from 1 to 5.", "Enter 1-5", "Already at the first question.", "5 always*"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestRunAssessment_FollowUpsAndAdvice(t *testing.T) {
	noColor = true
	reg := newLocalRegistry(t)
	r := &profile.Respondent{Gender: profile.Male, Age: 62, Province: "黑龙江"}
	if err := r.Validate(); err != nil {
		t.Fatal(err)
	}
	// Core: balanced 1, yang deficiency 5, the rest 1; then two follow-ups at 5.
	in := "1\n1\n5\n1\n1\n1\n1\n1\n1\n5\n5\n"
	var out bytes.Buffer

	rep, err := runAssessment(strings.NewReader(in), &out, reg, r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rep.Primary != questionnaire.YangDeficiency || rep.Answered != 11 {
		t.Errorf("primary=%s answered=%d", rep.Primary, rep.Answered)
	}
	if rep.Advice == nil {
		t.Fatal("missing advice")
	}
	if !strings.Contains(out.String(), "男 · 62岁 · 黑龙江") {
		t.Errorf("respondent summary not printed:\n%s", out.String())
	}
}

func TestRunAssessment_InputEnds(t *testing.T) {
	reg := newLocalRegistry(t)
	_, err := runAssessment(strings.NewReader("1\n2\n"), io.Discard, reg, nil)
	if err == nil || !strings.Contains(err.Error(), "input ended after 2 of 9") {
		t.Fatalf("err = %v", err)
	}
}

func TestRunAssessment_Quit(t *testing.T) {
	reg := newLocalRegistry(t)
	_, err := runAssessment(strings.NewReader("3\nq\n"), io.Discard, reg, nil)
	if !errors.Is(err, errAborted) {
		t.Fatalf("err = %v, want errAborted", err)
	}
	if reg.Len() != 0 {
		t.Errorf("registry Len = %d, want 0", reg.Len())
	}
}

func TestParseScores(t *testing.T) {
	m, err := parseScores("balanced=72, qi-deficiency=25.5,湿热质=18")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Get(questionnaire.Balanced) != 72 || m.Get(questionnaire.QiDeficiency) != 25.5 || m.Get(questionnaire.DampHeat) != 18 {
		t.Errorf("scores = %v", m)
	}
	if m.Get(questionnaire.BloodStasis) != 0 {
		t.Errorf("unset category = %v, want 0", m.Get(questionnaire.BloodStasis))
	}

	for _, bad := range []string{"balanced", "windy=3", "balanced=x", "balanced=101", "balanced=-1", "balanced=1,balanced=2", "qi_deficiency=NaN", "damp_heat=Inf", "damp_heat=-Inf"} {
		if _, err := parseScores(bad); err == nil {
			t.Errorf("parseScores(%q) succeeded, want error", bad)
		}
	}
}

func TestClassifyCommand_RejectsNaN(t *testing.T) {
	noColor = true
	_, err := execute(t, "classify", "--scores", "qi_deficiency=NaN,damp_heat=90")
	if err == nil || !strings.Contains(err.Error(), "finite") {
		t.Fatalf("err = %v, want finite number error", err)
	}
}

func TestClassifyCommand(t *testing.T) {
	noColor = true
	out, err := execute(t, "classify", "--scores", "balanced=80,yin_deficiency=31")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "Primary constitution: 阴虚质 (yin_deficiency)") {
		t.Errorf("output = %q", out)
	}
}

func TestScoreBar(t *testing.T) {
	tests := []struct {
		score      float64
		wantFilled int
	}{
		{0, 0},
		{50, 10},
		{100, 20},
		{140, 20},
		{-5, 0},
	}
	for _, tt := range tests {
		bar := scoreBar(tt.score)
		if got := strings.Count(bar, "█"); got != tt.wantFilled {
			t.Errorf("scoreBar(%v) filled = %d, want %d", tt.score, got, tt.wantFilled)
		}
		if n := len([]rune(bar)); n != barWidth {
			t.Errorf("scoreBar(%v) width = %d", tt.score, n)
		}
	}
}

func TestParseSessionTTL(t *testing.T) {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
	if got := parseSessionTTL("5m"); got != 5*time.Minute {
		t.Errorf("parseSessionTTL(5m) = %v", got)
	}
	for _, bad := range []string{"", "soon", "-1m"} {
		if got := parseSessionTTL(bad); got != defaultSessionTTL {
			t.Errorf("parseSessionTTL(%q) = %v, want default", bad, got)
		}
	}
}

func TestParseLogLevel(t *testing.T) {
	if parseLogLevel("DEBUG") != slog.LevelDebug || parseLogLevel("warn") != slog.LevelWarn || parseLogLevel("bogus") != slog.LevelInfo {
		t.Error("unexpected log level mapping")
	}
}

func TestConfigShowAll(t *testing.T) {
	cfg := config.Config{}
	cfg.Server.Port = 4100
	cfg.Session.TTL = "30m"

	found := false
	for _, k := range config.ShowAll(cfg) {
		if k.Key == "server.port" && k.Value == "4100" {
			found = true
		}
	}
	if !found {
		t.Error("expected to find server.port=4100 in ShowAll output")
	}
}
