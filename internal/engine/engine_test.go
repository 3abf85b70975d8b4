package engine

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/junolabs/juno/internal/brain"
	"github.com/junolabs/juno/internal/memory"
	"github.com/junolabs/juno/internal/prompts"
	"github.com/junolabs/juno/internal/router"
	"github.com/junolabs/juno/internal/safety"
	"github.com/junolabs/juno/internal/sentiment"
	"github.com/junolabs/juno/internal/session"
)

type scriptedBrain struct {
	mu      sync.Mutex
	calls   int
	err     error
	lastReq brain.Request
}

func (b *scriptedBrain) Generate(ctx context.Context, req brain.Request, onDelta brain.DeltaHandler) (brain.Response, error) {
	b.mu.Lock()
	b.calls++
	b.lastReq = req
	err := b.err
	b.mu.Unlock()
	if err != nil {
		return brain.Response{}, err
	}
	if err := ctx.Err(); err != nil {
		return brain.Response{}, err
	}
	text := "reply to: " + req.UserText
	if onDelta != nil {
		if err := onDelta(text); err != nil {
			return brain.Response{}, err
		}
	}
	return brain.Response{Text: text}, nil
}

func (b *scriptedBrain) callCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls
}

func (b *scriptedBrain) request() brain.Request {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastReq
}

type testHarness struct {
	orch     *Orchestrator
	sessions *session.Manager
	store    memory.Store
	brain    *scriptedBrain
	catalog  *prompts.Catalog
}

func newHarness(t *testing.T, polarity float64) *testHarness {
	t.Helper()
	catalog := prompts.DefaultCatalog()
	if err := catalog.Validate(); err != nil {
		t.Fatalf("catalog validate: %v", err)
	}
	sb := &scriptedBrain{}
	sessions := session.NewManager(time.Minute)
	store := memory.NewInMemoryStore()
	orch, err := NewOrchestrator(Options{
		Sessions: sessions,
		Memory:   store,
		Brain:    sb,
		Catalog:  catalog,
		Router:   router.New(safety.NewDetector()),
		Scorer:   sentiment.FixedScorer{Polarity: polarity},
	})
	if err != nil {
		t.Fatalf("NewOrchestrator() error = %v", err)
	}
	return &testHarness{orch: orch, sessions: sessions, store: store, brain: sb, catalog: catalog}
}

func (h *testHarness) start(t *testing.T, style string) string {
	t.Helper()
	resp, err := h.orch.StartSession(session.CreateRequest{UserID: "u1", Language: "en", Style: style})
	if err != nil {
		t.Fatalf("StartSession() error = %v", err)
	}
	if resp.Welcome == "" {
		t.Fatalf("welcome line is empty")
	}
	return resp.SessionID
}

func TestJournalPhaseProgressionAndPlateau(t *testing.T) {
	h := newHarness(t, -0.4)
	id := h.start(t, "journal")

	wantPhases := []string{"understand", "relieve", "relieve", "relieve"}
	for i, want := range wantPhases {
		res, err := h.orch.HandleUtterance(context.Background(), id, "today was heavy for me", nil)
		if err != nil {
			t.Fatalf("turn %d error = %v", i, err)
		}
		if res.Phase != want {
			t.Fatalf("turn %d phase = %q, want %q", i, res.Phase, want)
		}
		if res.Mood != "sad" {
			t.Fatalf("turn %d mood = %q, want sad", i, res.Mood)
		}
	}

	turns, err := h.store.All(context.Background(), id)
	if err != nil {
		t.Fatalf("All() error = %v", err)
	}
	if len(turns) != 8 {
		t.Fatalf("recorded %d turns, want 8", len(turns))
	}
	if turns[0].Speaker != memory.SpeakerUser || turns[1].Speaker != memory.SpeakerAgent {
		t.Fatalf("turn order wrong: %+v", turns[:2])
	}
	if turns[0].Phase != "feel" {
		t.Fatalf("first user turn phase = %q, want feel", turns[0].Phase)
	}
}

func TestRelievePhaseAppendsVerse(t *testing.T) {
	h := newHarness(t, -0.4)
	id := h.start(t, "journal")

	// Walk to relieve: feel and understand each consume one exchange.
	for i := 0; i < 2; i++ {
		if _, err := h.orch.HandleUtterance(context.Background(), id, "it hurts", nil); err != nil {
			t.Fatalf("setup turn error = %v", err)
		}
	}

	res, err := h.orch.HandleUtterance(context.Background(), id, "still hurting", nil)
	if err != nil {
		t.Fatalf("HandleUtterance() error = %v", err)
	}
	if !strings.Contains(res.Reply, "reply to: still hurting") {
		t.Fatalf("reply %q lost the generated text", res.Reply)
	}
	if !strings.Contains(res.Reply, "\n\n") {
		t.Fatalf("reply %q has no verse appended in relieve", res.Reply)
	}
}

func TestCrisisPathSkipsBrainAndLatches(t *testing.T) {
	h := newHarness(t, 0)
	id := h.start(t, "journal")

	res, err := h.orch.HandleUtterance(context.Background(), id, "I want to die", nil)
	if err != nil {
		t.Fatalf("HandleUtterance() error = %v", err)
	}
	if !res.IsCrisis || res.Route != router.RouteCrisis {
		t.Fatalf("result = %+v, want crisis route", res)
	}
	if res.Reply != h.catalog.CrisisReply("en") {
		t.Fatalf("reply = %q, want the fixed crisis template", res.Reply)
	}
	if h.brain.callCount() != 0 {
		t.Fatalf("brain called %d times on crisis, want 0", h.brain.callCount())
	}

	// Any later utterance stays latched, even a harmless one.
	res, err = h.orch.HandleUtterance(context.Background(), id, "the weather is nice", nil)
	if err != nil {
		t.Fatalf("latched turn error = %v", err)
	}
	if !res.IsCrisis {
		t.Fatalf("crisis latch released without an explicit clear")
	}
	if h.brain.callCount() != 0 {
		t.Fatalf("brain called while latched")
	}

	turns, _ := h.store.All(context.Background(), id)
	if turns[0].Sentiment != "crisis" || turns[0].Phase != "crisis" {
		t.Fatalf("crisis user turn recorded as %+v", turns[0])
	}
}

func TestClearReleasesCrisisAndWipesMemory(t *testing.T) {
	h := newHarness(t, 0)
	id := h.start(t, "journal")

	if _, err := h.orch.HandleUtterance(context.Background(), id, "I want to die", nil); err != nil {
		t.Fatalf("crisis turn error = %v", err)
	}

	s, err := h.orch.ClearSession(context.Background(), id)
	if err != nil {
		t.Fatalf("ClearSession() error = %v", err)
	}
	if got := string(s.Phase()); got != "feel" {
		t.Fatalf("phase after clear = %q, want feel", got)
	}
	turns, _ := h.store.All(context.Background(), id)
	if len(turns) != 0 {
		t.Fatalf("memory holds %d turns after clear, want 0", len(turns))
	}

	res, err := h.orch.HandleUtterance(context.Background(), id, "I feel okay today", nil)
	if err != nil {
		t.Fatalf("post-clear turn error = %v", err)
	}
	if res.IsCrisis {
		t.Fatalf("crisis latch survived a clear")
	}
}

func TestEmptyUtteranceAsksToRepeat(t *testing.T) {
	h := newHarness(t, 0)
	id := h.start(t, "journal")

	res, err := h.orch.HandleUtterance(context.Background(), id, "   ", nil)
	if err != nil {
		t.Fatalf("HandleUtterance() error = %v", err)
	}
	if res.Reply != h.catalog.RepeatPrompt("en") {
		t.Fatalf("reply = %q, want the repeat prompt", res.Reply)
	}
	if res.Phase != "feel" {
		t.Fatalf("phase = %q, empty input must not advance", res.Phase)
	}
	if res.TurnID != "" {
		t.Fatalf("turn id = %q, want empty since no turn is recorded", res.TurnID)
	}
	turns, _ := h.store.All(context.Background(), id)
	if len(turns) != 0 {
		t.Fatalf("empty input recorded %d turns, want 0", len(turns))
	}
}

func TestGuideRouteDoesNotAdvancePhase(t *testing.T) {
	h := newHarness(t, 0)
	id := h.start(t, "journal")

	res, err := h.orch.HandleUtterance(context.Background(), id, "How do I create a journal entry?", nil)
	if err != nil {
		t.Fatalf("HandleUtterance() error = %v", err)
	}
	if res.Route != router.RouteGuide {
		t.Fatalf("route = %q, want guide", res.Route)
	}
	if res.Phase != "feel" {
		t.Fatalf("phase = %q, guide answers must not advance", res.Phase)
	}
	req := h.brain.request()
	if !strings.Contains(req.Instruction, "App reference:") {
		t.Fatalf("guide instruction lacks knowledge base content: %q", req.Instruction)
	}
}

func TestTransientBrainErrorSubstitutesFallback(t *testing.T) {
	h := newHarness(t, 0)
	id := h.start(t, "journal")
	h.brain.err = errors.New("upstream 503")

	res, err := h.orch.HandleUtterance(context.Background(), id, "rough day", nil)
	if err != nil {
		t.Fatalf("HandleUtterance() error = %v", err)
	}
	if res.Reply != h.catalog.FallbackReply("en") {
		t.Fatalf("reply = %q, want the fallback reply", res.Reply)
	}
	if res.Phase != "understand" {
		t.Fatalf("phase = %q, fallback exchange must still advance", res.Phase)
	}
	turns, _ := h.store.All(context.Background(), id)
	if len(turns) != 2 {
		t.Fatalf("recorded %d turns, want 2", len(turns))
	}
	if turns[1].Text != h.catalog.FallbackReply("en") {
		t.Fatalf("agent turn = %q, want fallback recorded", turns[1].Text)
	}
}

func TestCancelledContextCommitsNothing(t *testing.T) {
	h := newHarness(t, 0)
	id := h.start(t, "journal")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	h.brain.err = context.Canceled

	if _, err := h.orch.HandleUtterance(ctx, id, "rough day", nil); !errors.Is(err, context.Canceled) {
		t.Fatalf("error = %v, want context.Canceled", err)
	}
	turns, _ := h.store.All(context.Background(), id)
	if len(turns) != 0 {
		t.Fatalf("cancelled exchange recorded %d turns, want 0", len(turns))
	}
	s, err := h.sessions.Get(id)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got := string(s.Phase()); got != "feel" {
		t.Fatalf("phase = %q, cancelled exchange must not advance", got)
	}
}

func TestContextWindowIsBounded(t *testing.T) {
	h := newHarness(t, 0)
	id := h.start(t, "journal")

	for i := 0; i < 10; i++ {
		if _, err := h.orch.HandleUtterance(context.Background(), id, "another day", nil); err != nil {
			t.Fatalf("turn %d error = %v", i, err)
		}
	}

	req := h.brain.request()
	if len(req.Context) != 8 {
		t.Fatalf("context window = %d turns, want 8", len(req.Context))
	}
}

func TestEndSessionSummarizesAndCloses(t *testing.T) {
	h := newHarness(t, 0)
	id := h.start(t, "journal")

	if _, err := h.orch.HandleUtterance(context.Background(), id, "long day at work", nil); err != nil {
		t.Fatalf("turn error = %v", err)
	}

	res, err := h.orch.EndSession(context.Background(), id)
	if err != nil {
		t.Fatalf("EndSession() error = %v", err)
	}
	if res.Closing != h.catalog.Closing("en") {
		t.Fatalf("closing = %q", res.Closing)
	}
	if res.Summary == "" {
		t.Fatalf("summary is empty")
	}

	if _, err := h.orch.HandleUtterance(context.Background(), id, "hello?", nil); err == nil {
		t.Fatalf("utterance on an ended session should fail")
	}
	turns, _ := h.store.All(context.Background(), id)
	if len(turns) != 0 {
		t.Fatalf("transcript survived session end: %d turns", len(turns))
	}
}

func TestStreamingDeliversDeltas(t *testing.T) {
	h := newHarness(t, 0)
	id := h.start(t, "journal")

	var deltas []string
	deltaTurnIDs := map[string]bool{}
	res, err := h.orch.HandleUtterance(context.Background(), id, "hello there", func(turnID, d string) error {
		deltaTurnIDs[turnID] = true
		deltas = append(deltas, d)
		return nil
	})
	if err != nil {
		t.Fatalf("HandleUtterance() error = %v", err)
	}
	if len(deltas) == 0 {
		t.Fatalf("no deltas delivered")
	}
	if joined := strings.Join(deltas, ""); !strings.Contains(res.Reply, joined) && joined != res.Reply {
		t.Fatalf("deltas %q do not match reply %q", joined, res.Reply)
	}
	// Every fragment is tagged with the turn id the result reports,
	// so clients can correlate the stream with the final turn.
	if res.TurnID == "" {
		t.Fatalf("result carries no turn id")
	}
	if len(deltaTurnIDs) != 1 || !deltaTurnIDs[res.TurnID] {
		t.Fatalf("delta turn ids = %v, want only %q", deltaTurnIDs, res.TurnID)
	}
}

func TestUnknownSessionRejected(t *testing.T) {
	h := newHarness(t, 0)
	if _, err := h.orch.HandleUtterance(context.Background(), "nope", "hi", nil); !errors.Is(err, session.ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
}
