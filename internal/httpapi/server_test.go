package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/junolabs/juno/internal/brain"
	"github.com/junolabs/juno/internal/config"
	"github.com/junolabs/juno/internal/engine"
	"github.com/junolabs/juno/internal/guide"
	"github.com/junolabs/juno/internal/memory"
	"github.com/junolabs/juno/internal/observability"
	"github.com/junolabs/juno/internal/prompts"
	"github.com/junolabs/juno/internal/protocol"
	"github.com/junolabs/juno/internal/router"
	"github.com/junolabs/juno/internal/safety"
	"github.com/junolabs/juno/internal/session"
)

func newTestServer(t *testing.T) (*httptest.Server, *session.Manager) {
	t.Helper()
	cfg := config.Config{
		AllowAnyOrigin:           true,
		SessionInactivityTimeout: time.Minute,
	}
	sessions := session.NewManager(cfg.SessionInactivityTimeout)
	eng, err := engine.NewOrchestrator(engine.Options{
		Sessions: sessions,
		Memory:   memory.NewInMemoryStore(),
		Brain:    brain.NewMockAdapter(),
		Catalog:  prompts.DefaultCatalog(),
		Router:   router.New(safety.NewDetector()),
	})
	if err != nil {
		t.Fatalf("NewOrchestrator() error = %v", err)
	}
	srv := New(cfg, eng, sessions, guide.NewKnowledgeBase(), observability.NewExchangeWindow(16))
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return ts, sessions
}

func createSession(t *testing.T, ts *httptest.Server, style string) session.CreateResponse {
	t.Helper()
	body := strings.NewReader(`{"user_id":"u1","language":"en","style":"` + style + `"}`)
	resp, err := http.Post(ts.URL+"/v1/sessions", "application/json", body)
	if err != nil {
		t.Fatalf("POST /v1/sessions error = %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}
	var created session.CreateResponse
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if created.SessionID == "" || created.Welcome == "" {
		t.Fatalf("incomplete create response: %+v", created)
	}
	return created
}

func postTurn(t *testing.T, ts *httptest.Server, id, text string) (engine.TurnResult, int) {
	t.Helper()
	payload, _ := json.Marshal(map[string]string{"text": text})
	resp, err := http.Post(ts.URL+"/v1/sessions/"+id+"/turns", "application/json", bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("POST turn error = %v", err)
	}
	defer resp.Body.Close()
	var res engine.TurnResult
	_ = json.NewDecoder(resp.Body).Decode(&res)
	return res, resp.StatusCode
}

func TestCreateSessionAndTurn(t *testing.T) {
	ts, _ := newTestServer(t)
	created := createSession(t, ts, "journal")

	if created.Phase != "feel" {
		t.Fatalf("initial phase = %q, want feel", created.Phase)
	}

	res, status := postTurn(t, ts, created.SessionID, "today was a lot")
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	if res.Reply == "" {
		t.Fatalf("empty reply")
	}
	if res.Phase != "understand" {
		t.Fatalf("phase = %q, want understand", res.Phase)
	}
}

func TestTurnOnUnknownSession(t *testing.T) {
	ts, _ := newTestServer(t)
	_, status := postTurn(t, ts, "missing", "hello")
	if status != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", status)
	}
}

func TestCrisisTurnOverHTTP(t *testing.T) {
	ts, _ := newTestServer(t)
	created := createSession(t, ts, "journal")

	res, status := postTurn(t, ts, created.SessionID, "I want to end my life")
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	if !res.IsCrisis {
		t.Fatalf("result = %+v, want crisis", res)
	}
	if res.Phase != "crisis" {
		t.Fatalf("phase = %q, want crisis", res.Phase)
	}
}

func TestSessionSnapshotIncludesMoodMix(t *testing.T) {
	ts, _ := newTestServer(t)
	created := createSession(t, ts, "journal")
	postTurn(t, ts, created.SessionID, "what a lovely wonderful day")

	resp, err := http.Get(ts.URL + "/v1/sessions/" + created.SessionID)
	if err != nil {
		t.Fatalf("GET session error = %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var snap struct {
		Phase     string         `json:"phase"`
		TurnCount int            `json:"turn_count"`
		MoodMix   map[string]int `json:"mood_mix"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&snap); err != nil {
		t.Fatalf("decode snapshot: %v", err)
	}
	if snap.TurnCount != 2 {
		t.Fatalf("turn_count = %d, want 2", snap.TurnCount)
	}
	if len(snap.MoodMix) == 0 {
		t.Fatalf("mood_mix is empty")
	}
}

func TestEndAndClearSession(t *testing.T) {
	ts, _ := newTestServer(t)
	created := createSession(t, ts, "coach")
	postTurn(t, ts, created.SessionID, "I keep procrastinating")

	resp, err := http.Post(ts.URL+"/v1/sessions/"+created.SessionID+"/end", "application/json", nil)
	if err != nil {
		t.Fatalf("POST end error = %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var end engine.EndResult
	if err := json.NewDecoder(resp.Body).Decode(&end); err != nil {
		t.Fatalf("decode end: %v", err)
	}
	if end.Closing == "" {
		t.Fatalf("closing line missing")
	}

	// Clearing an ended session fails: its exchange lock is gone.
	clearResp, err := http.Post(ts.URL+"/v1/sessions/"+created.SessionID+"/clear", "application/json", nil)
	if err != nil {
		t.Fatalf("POST clear error = %v", err)
	}
	defer clearResp.Body.Close()
	if clearResp.StatusCode != http.StatusNotFound {
		t.Fatalf("clear after end status = %d, want 404", clearResp.StatusCode)
	}
}

func TestGuidePagesListing(t *testing.T) {
	ts, _ := newTestServer(t)
	resp, err := http.Get(ts.URL + "/v1/guide/pages")
	if err != nil {
		t.Fatalf("GET guide pages error = %v", err)
	}
	defer resp.Body.Close()
	var out struct {
		Pages []guide.Page `json:"pages"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode pages: %v", err)
	}
	if len(out.Pages) == 0 {
		t.Fatalf("no guide pages returned")
	}
}

func TestHealthAndStats(t *testing.T) {
	ts, _ := newTestServer(t)
	for _, path := range []string{"/healthz", "/readyz", "/v1/stats"} {
		resp, err := http.Get(ts.URL + path)
		if err != nil {
			t.Fatalf("GET %s error = %v", path, err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("GET %s status = %d, want 200", path, resp.StatusCode)
		}
	}
}

func TestWebsocketExchange(t *testing.T) {
	ts, _ := newTestServer(t)
	created := createSession(t, ts, "journal")

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/v1/sessions/ws?session_id=" + created.SessionID
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("ws dial error = %v", err)
	}
	defer conn.Close()

	utt := protocol.ClientUtterance{
		Type:      protocol.TypeClientUtterance,
		SessionID: created.SessionID,
		Text:      "today felt endless",
	}
	if err := conn.WriteJSON(utt); err != nil {
		t.Fatalf("ws write error = %v", err)
	}

	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	deltaTurnID := ""
	for {
		var frame map[string]any
		if err := conn.ReadJSON(&frame); err != nil {
			t.Fatalf("ws read error = %v", err)
		}
		switch frame["type"] {
		case string(protocol.TypeAssistantTextDelta):
			id, _ := frame["turn_id"].(string)
			if id == "" {
				t.Fatalf("delta frame carries no turn_id: %v", frame)
			}
			deltaTurnID = id
		case string(protocol.TypeAssistantTurnEnd):
			if frame["phase"] != "understand" {
				t.Fatalf("turn end phase = %v, want understand", frame["phase"])
			}
			if deltaTurnID == "" {
				t.Fatalf("turn ended without any text delta")
			}
			if frame["turn_id"] != deltaTurnID {
				t.Fatalf("turn end turn_id = %v, want the delta's %q", frame["turn_id"], deltaTurnID)
			}
			return
		case string(protocol.TypeErrorEvent):
			t.Fatalf("unexpected error frame: %v", frame)
		}
	}
}

func TestWebsocketRejectsUnknownSession(t *testing.T) {
	ts, _ := newTestServer(t)
	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/v1/sessions/ws?session_id=missing"
	_, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err == nil {
		t.Fatalf("dial should fail for unknown session")
	}
	if resp == nil || resp.StatusCode != http.StatusNotFound {
		t.Fatalf("response = %+v, want 404", resp)
	}
}
