package engine

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/junolabs/juno/internal/brain"
	"github.com/junolabs/juno/internal/dialogue"
	"github.com/junolabs/juno/internal/guide"
	"github.com/junolabs/juno/internal/memory"
	"github.com/junolabs/juno/internal/observability"
	"github.com/junolabs/juno/internal/prompts"
	"github.com/junolabs/juno/internal/reliability"
	"github.com/junolabs/juno/internal/router"
	"github.com/junolabs/juno/internal/safety"
	"github.com/junolabs/juno/internal/sentiment"
	"github.com/junolabs/juno/internal/session"
)

// TurnResult is what one processed utterance produces: the reply to
// render and the dialogue state after any phase advancement.
type TurnResult struct {
	TurnID   string       `json:"turn_id"`
	Reply    string       `json:"reply"`
	Phase    string       `json:"phase"`
	Mood     string       `json:"mood,omitempty"`
	Route    router.Route `json:"route"`
	IsCrisis bool         `json:"is_crisis"`
	Language string       `json:"language"`
}

// DeltaFunc receives streamed reply fragments tagged with the id of
// the agent turn they belong to, so clients can correlate deltas with
// the turn-end frame. A repeat prompt carries an empty turn id because
// no turn is recorded for it.
type DeltaFunc func(turnID, text string) error

// EndResult closes a session: the farewell line plus a best-effort
// generated summary of the conversation.
type EndResult struct {
	Closing string `json:"closing"`
	Summary string `json:"summary,omitempty"`
}

// Options wires the orchestrator's collaborators. Sessions, Memory,
// Brain, Catalog and Router are required; the rest default sensibly.
type Options struct {
	Sessions *session.Manager
	Memory   memory.Store
	Brain    brain.Adapter
	Catalog  *prompts.Catalog
	Router   *router.Router
	Scorer   sentiment.Scorer
	Moods    *sentiment.Classifier
	Guide    *guide.KnowledgeBase

	Metrics *observability.Metrics
	Window  *observability.ExchangeWindow
	Logger  *log.Logger

	MemoryWindow int
	BrainTimeout time.Duration
}

// Orchestrator runs the full exchange pipeline: safety gate, intent
// routing, sentiment, prompt selection, completion call, memory commit
// and phase advancement. One utterance in, one reply out.
type Orchestrator struct {
	sessions *session.Manager
	memory   memory.Store
	brain    brain.Adapter
	catalog  *prompts.Catalog
	router   *router.Router
	scorer   sentiment.Scorer
	moods    *sentiment.Classifier
	guide    *guide.KnowledgeBase

	metrics *observability.Metrics
	window  *observability.ExchangeWindow
	logger  *log.Logger

	memoryWindow int
	brainTimeout time.Duration
}

func NewOrchestrator(opts Options) (*Orchestrator, error) {
	if opts.Sessions == nil || opts.Memory == nil || opts.Brain == nil || opts.Catalog == nil || opts.Router == nil {
		return nil, errors.New("orchestrator requires sessions, memory, brain, catalog and router")
	}
	o := &Orchestrator{
		sessions:     opts.Sessions,
		memory:       opts.Memory,
		brain:        opts.Brain,
		catalog:      opts.Catalog,
		router:       opts.Router,
		scorer:       opts.Scorer,
		moods:        opts.Moods,
		guide:        opts.Guide,
		metrics:      opts.Metrics,
		window:       opts.Window,
		logger:       opts.Logger,
		memoryWindow: opts.MemoryWindow,
		brainTimeout: opts.BrainTimeout,
	}
	if o.scorer == nil {
		o.scorer = sentiment.NewLexiconScorer()
	}
	if o.moods == nil {
		o.moods = sentiment.NewClassifier(sentiment.DefaultThresholds())
	}
	if o.guide == nil {
		o.guide = guide.NewKnowledgeBase()
	}
	if o.logger == nil {
		o.logger = log.Default()
	}
	if o.memoryWindow <= 0 {
		o.memoryWindow = 8
	}
	if o.brainTimeout <= 0 {
		o.brainTimeout = 15 * time.Second
	}
	return o, nil
}

// StartSession creates a session and returns its metadata plus the
// welcome line in the session's language.
func (o *Orchestrator) StartSession(req session.CreateRequest) (session.CreateResponse, error) {
	style, err := dialogue.ParseStyle(req.Style)
	if err != nil {
		return session.CreateResponse{}, err
	}
	lang := o.catalog.NormalizeLanguage(req.Language)

	s := o.sessions.Create(req.UserID, lang, style, req.VoicePreference)
	if o.metrics != nil {
		o.metrics.ActiveSessions.Inc()
		o.metrics.SessionEvents.WithLabelValues("created").Inc()
	}
	o.logger.Printf("session created id=%s style=%s lang=%s", s.ID, style, lang)

	return session.CreateResponse{
		SessionID:       s.ID,
		UserID:          s.UserID,
		Status:          s.Status,
		Language:        s.Language,
		Style:           string(s.Style),
		Phase:           string(s.Phase()),
		Welcome:         o.catalog.Welcome(lang),
		StartedAt:       s.StartedAt,
		InactivityTTLMS: o.sessions.InactivityTimeout().Milliseconds(),
	}, nil
}

// HandleUtterance processes one user utterance end to end. Per session
// the call is strictly serialized; concurrent calls for different
// sessions proceed in parallel. On context cancellation nothing is
// committed: no turns recorded, no phase change.
func (o *Orchestrator) HandleUtterance(ctx context.Context, sessionID, text string, onDelta DeltaFunc) (TurnResult, error) {
	unlock, err := o.sessions.LockExchange(sessionID)
	if err != nil {
		return TurnResult{}, err
	}
	defer unlock()

	s, err := o.sessions.Get(sessionID)
	if err != nil {
		return TurnResult{}, err
	}
	if s.Status != session.StatusActive {
		return TurnResult{}, session.ErrNotFound
	}

	started := time.Now()
	defer func() {
		o.observeStage(observability.StageExchange, time.Since(started))
	}()

	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		o.observeIndicator(observability.IndicatorRepeat)
		if err := o.sessions.Touch(sessionID); err != nil {
			return TurnResult{}, err
		}
		// No turn is recorded for a repeat prompt, so the result
		// carries no turn id.
		return o.deliver(TurnResult{
			Reply:    o.catalog.RepeatPrompt(s.Language),
			Phase:    string(s.Phase()),
			Language: s.Language,
		}, onDelta)
	}

	// A latched crisis never resumes on its own: every utterance keeps
	// getting the escalation reply until an explicit clear.
	if s.Dialogue.Current() == dialogue.PhaseCrisis {
		return o.handleCrisis(ctx, s, trimmed, onDelta)
	}

	routeStart := time.Now()
	route := o.router.Classify(trimmed)
	o.observeStage(observability.StageRoute, time.Since(routeStart))

	switch route {
	case router.RouteCrisis:
		return o.handleCrisis(ctx, s, trimmed, onDelta)
	case router.RouteGuide:
		return o.handleGuide(ctx, s, trimmed, onDelta)
	default:
		return o.handleDialogue(ctx, s, trimmed, onDelta)
	}
}

// handleCrisis replies with the fixed escalation template. No
// completion call is made and the phase machine latches into crisis,
// where it stays until an explicit clear.
func (o *Orchestrator) handleCrisis(ctx context.Context, s *session.Session, text string, onDelta DeltaFunc) (TurnResult, error) {
	reply := o.catalog.CrisisReply(s.Language)
	turnID := uuid.NewString()

	userTurn := memory.Turn{
		SessionID: s.ID,
		Speaker:   memory.SpeakerUser,
		Text:      text,
		Sentiment: string(sentiment.MoodCrisis),
		Phase:     string(dialogue.PhaseCrisis),
		Route:     string(router.RouteCrisis),
		Language:  s.Language,
	}
	agentTurn := memory.Turn{
		ID:        turnID,
		SessionID: s.ID,
		Speaker:   memory.SpeakerAgent,
		Text:      reply,
		Phase:     string(dialogue.PhaseCrisis),
		Route:     string(router.RouteCrisis),
		Language:  s.Language,
	}
	if err := o.commitExchange(ctx, userTurn, agentTurn); err != nil {
		return TurnResult{}, err
	}
	if err := o.sessions.SetDialogue(s.ID, s.Dialogue.EnterCrisis()); err != nil {
		return TurnResult{}, err
	}

	if o.metrics != nil {
		o.metrics.CrisisDetections.Inc()
		o.metrics.Turns.WithLabelValues(string(router.RouteCrisis)).Inc()
	}
	o.observeIndicator(observability.IndicatorCrisis)
	redacted, _ := safety.RedactPII(text)
	o.logger.Printf("crisis path taken session=%s text=%q", s.ID, redacted)

	return o.deliver(TurnResult{
		TurnID:   turnID,
		Reply:    reply,
		Phase:    string(dialogue.PhaseCrisis),
		Mood:     string(sentiment.MoodCrisis),
		Route:    router.RouteCrisis,
		IsCrisis: true,
		Language: s.Language,
	}, onDelta)
}

// handleGuide answers an app feature question. The knowledge base hit
// is injected into the instruction; the phase machine does not move.
func (o *Orchestrator) handleGuide(ctx context.Context, s *session.Session, text string, onDelta DeltaFunc) (TurnResult, error) {
	instruction, err := o.catalog.Select(prompts.AgentGuide, dialogue.PhaseChat, s.Language)
	if err != nil {
		return TurnResult{}, err
	}
	if kb := o.guide.Search(text); kb != "" {
		instruction = instruction + "\n\nApp reference:\n" + kb
	}

	recent, err := o.memory.Recent(ctx, s.ID, o.memoryWindow)
	if err != nil {
		return TurnResult{}, err
	}

	turnID := uuid.NewString()
	reply, err := o.generate(ctx, s, turnID, instruction, recent, text, onDelta)
	if err != nil {
		return TurnResult{}, err
	}

	phase := string(s.Phase())
	userTurn := memory.Turn{
		SessionID: s.ID,
		Speaker:   memory.SpeakerUser,
		Text:      text,
		Phase:     phase,
		Route:     string(router.RouteGuide),
		Language:  s.Language,
	}
	agentTurn := memory.Turn{
		ID:        turnID,
		SessionID: s.ID,
		Speaker:   memory.SpeakerAgent,
		Text:      reply,
		Phase:     phase,
		Route:     string(router.RouteGuide),
		Language:  s.Language,
	}
	if err := o.commitExchange(ctx, userTurn, agentTurn); err != nil {
		return TurnResult{}, err
	}
	if err := o.sessions.Touch(s.ID); err != nil {
		return TurnResult{}, err
	}
	if o.metrics != nil {
		o.metrics.Turns.WithLabelValues(string(router.RouteGuide)).Inc()
	}

	return TurnResult{
		TurnID:   turnID,
		Reply:    reply,
		Phase:    phase,
		Route:    router.RouteGuide,
		Language: s.Language,
	}, nil
}

// handleDialogue runs the phased conversation: classify mood, select
// the phase instruction, generate against the recent window, commit
// both turns, then advance the phase exactly once.
func (o *Orchestrator) handleDialogue(ctx context.Context, s *session.Session, text string, onDelta DeltaFunc) (TurnResult, error) {
	mood := o.moods.Classify(o.scorer.Score(text))

	agent := prompts.AgentForStyle(s.Style)
	phase := s.Dialogue.Current()
	instruction, err := o.catalog.Select(agent, phase, s.Language)
	if err != nil {
		return TurnResult{}, err
	}

	recent, err := o.memory.Recent(ctx, s.ID, o.memoryWindow)
	if err != nil {
		return TurnResult{}, err
	}

	turnID := uuid.NewString()
	reply, err := o.generate(ctx, s, turnID, instruction, recent, text, onDelta)
	if err != nil {
		return TurnResult{}, err
	}

	if phase == dialogue.PhaseRelieve {
		if verse := o.catalog.Verse(s.Style, s.Language, len(recent)); verse != "" {
			reply = reply + "\n\n" + verse
		}
	}

	userTurn := memory.Turn{
		SessionID: s.ID,
		Speaker:   memory.SpeakerUser,
		Text:      text,
		Sentiment: string(mood),
		Phase:     string(phase),
		Route:     string(router.RouteDialogue),
		Language:  s.Language,
	}
	agentTurn := memory.Turn{
		ID:        turnID,
		SessionID: s.ID,
		Speaker:   memory.SpeakerAgent,
		Text:      reply,
		Phase:     string(phase),
		Route:     string(router.RouteDialogue),
		Language:  s.Language,
	}
	if err := o.commitExchange(ctx, userTurn, agentTurn); err != nil {
		return TurnResult{}, err
	}

	next := s.Dialogue.Advance()
	if err := o.sessions.SetDialogue(s.ID, next); err != nil {
		return TurnResult{}, err
	}
	if o.metrics != nil {
		o.metrics.Turns.WithLabelValues(string(router.RouteDialogue)).Inc()
	}

	return TurnResult{
		TurnID:   turnID,
		Reply:    reply,
		Phase:    string(next.Current()),
		Mood:     string(mood),
		Route:    router.RouteDialogue,
		Language: s.Language,
	}, nil
}

// generate calls the completion adapter with the bounded context
// window. Transient provider errors degrade to the canned fallback
// reply; cancellation and deadline expiry abort the exchange.
func (o *Orchestrator) generate(ctx context.Context, s *session.Session, turnID, instruction string, recent []memory.Turn, text string, onDelta DeltaFunc) (string, error) {
	req := brain.Request{
		SessionID:   s.ID,
		TurnID:      turnID,
		Instruction: instruction,
		Context:     contextWindow(recent),
		UserText:    text,
		Language:    s.Language,
	}

	callCtx, cancel := context.WithTimeout(ctx, o.brainTimeout)
	defer cancel()

	var handler brain.DeltaHandler
	if onDelta != nil {
		handler = func(delta string) error { return onDelta(turnID, delta) }
	}

	started := time.Now()
	resp, err := o.brain.Generate(callCtx, req, handler)
	latency := time.Since(started)
	o.observeStage(observability.StageBrain, latency)
	if o.metrics != nil {
		o.metrics.ObserveBrainLatency(latency)
	}

	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		if o.metrics != nil {
			o.metrics.ProviderErrors.WithLabelValues(errorKind(err)).Inc()
		}
		// The per-call deadline firing is provider slowness, not a
		// caller cancellation: degrade instead of aborting.
		timedOut := errors.Is(err, context.DeadlineExceeded) && callCtx.Err() != nil
		if !timedOut && !reliability.IsTransient(err) {
			return "", err
		}
		o.logger.Printf("brain error, substituting fallback reply session=%s err=%v", s.ID, err)
		if o.metrics != nil {
			o.metrics.FallbackReplies.Inc()
		}
		o.observeIndicator(observability.IndicatorFallback)
		return o.catalog.FallbackReply(s.Language), nil
	}

	reply := strings.TrimSpace(resp.Text)
	if reply == "" {
		o.observeIndicator(observability.IndicatorFallback)
		if o.metrics != nil {
			o.metrics.FallbackReplies.Inc()
		}
		return o.catalog.FallbackReply(s.Language), nil
	}
	return reply, nil
}

// commitExchange appends the user and agent turns as a unit. A failure
// after the user turn leaves a dangling entry, so the agent append is
// attempted only when the first succeeds and the caller aborts on any
// error before touching phase state.
func (o *Orchestrator) commitExchange(ctx context.Context, userTurn, agentTurn memory.Turn) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := o.memory.Append(ctx, userTurn); err != nil {
		return fmt.Errorf("record user turn: %w", err)
	}
	if err := o.memory.Append(ctx, agentTurn); err != nil {
		return fmt.Errorf("record agent turn: %w", err)
	}
	return nil
}

// EndSession closes a session: a best-effort summary of the full
// transcript plus the closing line. The session is gone afterwards.
func (o *Orchestrator) EndSession(ctx context.Context, sessionID string) (EndResult, error) {
	unlock, err := o.sessions.LockExchange(sessionID)
	if err != nil {
		return EndResult{}, err
	}
	defer unlock()

	s, err := o.sessions.Get(sessionID)
	if err != nil {
		return EndResult{}, err
	}

	summary := o.summarize(ctx, s)

	if _, err := o.sessions.End(sessionID); err != nil {
		return EndResult{}, err
	}
	// The transcript does not outlive the session; the summary is the
	// only artifact that survives an end.
	if err := o.memory.Clear(ctx, sessionID); err != nil {
		o.logger.Printf("memory clear on end failed session=%s err=%v", sessionID, err)
	}
	if o.metrics != nil {
		o.metrics.ActiveSessions.Dec()
		o.metrics.SessionEvents.WithLabelValues("ended").Inc()
	}
	o.logger.Printf("session ended id=%s", sessionID)

	return EndResult{
		Closing: o.catalog.Closing(s.Language),
		Summary: summary,
	}, nil
}

func (o *Orchestrator) summarize(ctx context.Context, s *session.Session) string {
	turns, err := o.memory.All(ctx, s.ID)
	if err != nil || len(turns) == 0 {
		return ""
	}

	callCtx, cancel := context.WithTimeout(ctx, o.brainTimeout)
	defer cancel()

	resp, err := o.brain.Generate(callCtx, brain.Request{
		SessionID:   s.ID,
		Instruction: o.catalog.SummaryInstruction(s.Language),
		Context:     contextWindow(turns),
		UserText:    "Please summarize our conversation.",
		Language:    s.Language,
	}, nil)
	if err != nil {
		o.logger.Printf("summary generation failed session=%s err=%v", s.ID, err)
		return ""
	}
	return strings.TrimSpace(resp.Text)
}

// ClearSession wipes the turn log and returns the phase machine to its
// first phase, releasing the crisis latch as well.
func (o *Orchestrator) ClearSession(ctx context.Context, sessionID string) (*session.Session, error) {
	unlock, err := o.sessions.LockExchange(sessionID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	s, err := o.sessions.Reset(sessionID)
	if err != nil {
		return nil, err
	}
	if err := o.memory.Clear(ctx, sessionID); err != nil {
		return nil, err
	}
	if o.metrics != nil {
		o.metrics.SessionEvents.WithLabelValues("cleared").Inc()
	}
	o.logger.Printf("session cleared id=%s", sessionID)
	return s, nil
}

// History returns the full ordered turn log for a session.
func (o *Orchestrator) History(ctx context.Context, sessionID string) ([]memory.Turn, error) {
	if _, err := o.sessions.Get(sessionID); err != nil {
		return nil, err
	}
	return o.memory.All(ctx, sessionID)
}

// OnExpire is the janitor hook: it keeps the session gauge honest when
// idle sessions are reaped without an explicit end call.
func (o *Orchestrator) OnExpire(s *session.Session) {
	if o.metrics != nil {
		o.metrics.ActiveSessions.Dec()
		o.metrics.SessionEvents.WithLabelValues("expired").Inc()
	}
	o.logger.Printf("session expired id=%s", s.ID)
}

// deliver pushes a fixed reply through the delta handler so websocket
// clients see the same stream shape as generated replies.
func (o *Orchestrator) deliver(res TurnResult, onDelta DeltaFunc) (TurnResult, error) {
	if onDelta != nil && res.Reply != "" {
		if err := onDelta(res.TurnID, res.Reply); err != nil {
			return TurnResult{}, err
		}
	}
	return res, nil
}

func (o *Orchestrator) observeStage(stage string, d time.Duration) {
	if o.window != nil {
		o.window.Observe(stage, d)
	}
}

func (o *Orchestrator) observeIndicator(name string) {
	if o.window != nil {
		o.window.ObserveIndicator(name)
	}
}

func contextWindow(turns []memory.Turn) []brain.ContextTurn {
	out := make([]brain.ContextTurn, 0, len(turns))
	for _, t := range turns {
		out = append(out, brain.ContextTurn{
			Speaker: string(t.Speaker),
			Text:    t.Text,
		})
	}
	return out
}

func errorKind(err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	default:
		return "provider"
	}
}
