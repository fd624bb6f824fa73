// Package encounter runs the wild-pokémon encounter screen: loading a session,
// estimating the capture rate, resolving a capture and fleeing.
package encounter

//go:generate mockgen -destination=mock/mock_service.go -package=encountermock github.com/KirkDiggler/pokequest/internal/orchestrators/encounter Service,Loader

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/KirkDiggler/pokequest/internal/clients/backend"
	"github.com/KirkDiggler/pokequest/internal/credentials"
	"github.com/KirkDiggler/pokequest/internal/errors"
	"github.com/KirkDiggler/pokequest/internal/navigation"
	"github.com/KirkDiggler/pokequest/internal/notify"
	"github.com/KirkDiggler/pokequest/internal/pkg/clock"
)

// DefaultPresentationDelay is the minimum time a capture stays resolving
const DefaultPresentationDelay = time.Second

// Service defines the encounter screen operations
type Service interface {
	// Open tears down any current session and loads a new one for the location.
	// Load failures are reported to the player and navigate home.
	Open(ctx context.Context, input *OpenInput) (*OpenOutput, error)

	// SelectTool changes the selected pokeball of the live session
	SelectTool(ctx context.Context, input *SelectToolInput) (*SelectToolOutput, error)

	// Capture throws the selected pokeball and blocks until the outcome is applied
	Capture(ctx context.Context, input *CaptureInput) (*CaptureOutput, error)

	// Flee abandons the session and navigates home
	Flee(ctx context.Context, input *FleeInput) (*FleeOutput, error)

	// HandleBack reports whether a platform back action was consumed by the screen
	HandleBack() bool

	// Close is called when the screen loses focus. Results still in flight are discarded.
	Close()

	// Current returns a snapshot of the live session, or nil
	Current() *View
}

// Config holds the dependencies for the encounter orchestrator
type Config struct {
	Loader      Loader
	Client      backend.Client
	Credentials credentials.Store
	Notifier    notify.Center
	Navigator   navigation.Navigator
	Clock       clock.Clock
	// PresentationDelay defaults to DefaultPresentationDelay
	PresentationDelay time.Duration
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Loader == nil {
		vb.RequiredField("Loader")
	}
	if c.Client == nil {
		vb.RequiredField("Client")
	}
	if c.Credentials == nil {
		vb.RequiredField("Credentials")
	}
	if c.Notifier == nil {
		vb.RequiredField("Notifier")
	}
	if c.Navigator == nil {
		vb.RequiredField("Navigator")
	}
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}
	if c.PresentationDelay < 0 {
		vb.InvalidField("PresentationDelay", "must not be negative")
	}

	return vb.Build()
}

type orchestrator struct {
	loader   Loader
	client   backend.Client
	creds    credentials.Store
	notifier notify.Center
	nav      navigation.Navigator
	clock    clock.Clock
	delay    time.Duration

	mu sync.Mutex
	// gen changes on every teardown; a completion whose gen no longer matches is stale
	gen       uint64
	focused   bool
	session   *Session
	resolving bool
	ctx       context.Context
	cancel    context.CancelFunc
	timer     clock.Timer
}

// NewOrchestrator creates a new encounter orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	delay := cfg.PresentationDelay
	if delay == 0 {
		delay = DefaultPresentationDelay
	}

	return &orchestrator{
		loader:   cfg.Loader,
		client:   cfg.Client,
		creds:    cfg.Credentials,
		notifier: cfg.Notifier,
		nav:      cfg.Navigator,
		clock:    cfg.Clock,
		delay:    delay,
	}, nil
}

func (o *orchestrator) Open(ctx context.Context, input *OpenInput) (*OpenOutput, error) {
	locationID := ""
	if input != nil {
		locationID = input.LocationID
	}

	o.mu.Lock()
	o.teardownLocked()
	o.focused = true
	gen := o.gen
	o.ctx, o.cancel = context.WithCancel(context.WithoutCancel(ctx))
	sessCtx := o.ctx
	o.mu.Unlock()

	loadCtx, stop := link(ctx, sessCtx)
	out, err := o.loader.Load(loadCtx, &LoadInput{LocationID: locationID})
	stop()

	o.mu.Lock()
	if o.gen != gen {
		o.mu.Unlock()
		slog.Debug("Discarding stale encounter load",
			"location_id", locationID,
			"error", err,
		)
		return nil, stale()
	}

	if err != nil {
		o.teardownLocked()
		o.focused = false
		o.mu.Unlock()

		if ctx.Err() != nil {
			return nil, errors.WrapWithCode(err, errors.CodeCanceled, "encounter load canceled")
		}

		slog.Warn("Encounter load failed",
			"location_id", locationID,
			"reason", errors.GetReason(err),
			"error", err,
		)
		o.notifier.Error(titleError, userMessage(err), "")
		o.nav.GoHome()
		return nil, err
	}

	o.session = out.Session
	view := o.viewLocked()
	o.mu.Unlock()

	return &OpenOutput{View: view}, nil
}

func (o *orchestrator) SelectTool(_ context.Context, input *SelectToolInput) (*SelectToolOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if o.session == nil || o.session.ID != input.SessionID {
		slog.Debug("Discarding tool selection for stale session",
			"session_id", input.SessionID,
			"tool_id", input.ToolID,
		)
		return nil, stale()
	}
	if o.resolving {
		return nil, errors.FailedPrecondition("cannot change pokeball while a capture is resolving").
			WithReason(ReasonResolving)
	}
	if o.session.Tool(input.ToolID) == nil {
		return nil, errors.InvalidArgumentf("unknown pokeball %q", input.ToolID)
	}

	o.session.SelectedToolID = input.ToolID
	return &SelectToolOutput{View: o.viewLocked()}, nil
}

func (o *orchestrator) Capture(ctx context.Context, _ *CaptureInput) (*CaptureOutput, error) {
	o.mu.Lock()
	if o.session == nil {
		o.mu.Unlock()
		return nil, errors.FailedPrecondition("no active encounter").WithReason(ReasonNoSession)
	}
	if o.resolving {
		sessionID := o.session.ID
		o.mu.Unlock()
		slog.Debug("Capture ignored while resolving", "session_id", sessionID)
		return &CaptureOutput{Outcome: OutcomeIgnored, Ignored: true}, nil
	}

	tool := o.session.SelectedTool()
	if o.session.Creature == nil || tool == nil {
		o.mu.Unlock()
		o.notifier.Error(titleError, msgMissingCaptureData, "")
		return nil, errors.InvalidArgument(msgMissingCaptureData).WithReason(ReasonMissingCaptureData)
	}

	o.resolving = true
	gen := o.gen
	sessCtx := o.ctx
	sessionID := o.session.ID
	creature := *o.session.Creature
	request := &backend.CatchPokemonInput{
		PokemonID:  creature.ID,
		LocationID: o.session.LocationID,
		ItemID:     tool.ID,
		IsShiny:    creature.IsShiny,
	}
	o.mu.Unlock()

	token, err := readToken(ctx, o.creds)
	if err != nil {
		if !o.endResolving(gen) {
			return nil, stale()
		}
		o.notifier.Error(titleError, msgMissingToken, "")
		return nil, err
	}
	request.Token = token

	slog.Info("Capture attempt started",
		"session_id", sessionID,
		"pokemon_id", request.PokemonID,
		"item_id", request.ItemID,
	)

	o.mu.Lock()
	if o.gen != gen {
		o.mu.Unlock()
		return nil, stale()
	}
	timer := o.clock.NewTimer(o.delay)
	o.timer = timer
	o.mu.Unlock()

	result, err := o.join(ctx, sessCtx, timer, request)
	if err != nil {
		slog.Debug("Discarding capture result for torn-down session", "session_id", sessionID)
		return nil, err
	}

	o.mu.Lock()
	if o.gen != gen {
		o.mu.Unlock()
		slog.Debug("Discarding capture result for torn-down session", "session_id", sessionID)
		return nil, stale()
	}
	o.timer = nil

	if result.err != nil {
		o.resolving = false
		o.mu.Unlock()

		slog.Warn("Capture request failed",
			"session_id", sessionID,
			"error", result.err,
		)
		o.notifier.Error(titleError, captureFailureMessage(result.err), "")
		return nil, errors.Wrap(result.err, "capture request failed")
	}

	o.teardownLocked()
	o.focused = false
	o.mu.Unlock()

	outcome := OutcomeEscaped
	if result.out.Captured {
		outcome = OutcomeCaptured
		o.notifier.Success(titleCaptured, fmt.Sprintf(fmtCaptured, creature.Name), creature.SpriteURL)
	} else {
		o.notifier.Warning(titleEscaped, fmt.Sprintf(fmtEscaped, creature.Name), creature.SpriteURL)
	}

	slog.Info("Capture resolved",
		"session_id", sessionID,
		"pokemon_id", creature.ID,
		"outcome", outcome,
	)

	o.nav.GoHome()
	return &CaptureOutput{Outcome: outcome}, nil
}

type catchResult struct {
	out *backend.CatchPokemonOutput
	err error
}

// join waits for both the catch request and the presentation timer. It returns an
// error only when the session is torn down first.
func (o *orchestrator) join(ctx, sessCtx context.Context, timer clock.Timer, request *backend.CatchPokemonInput) (catchResult, error) {
	reqCtx, stop := link(ctx, sessCtx)
	defer stop()

	done := make(chan catchResult, 1)
	go func() {
		out, err := o.client.CatchPokemon(reqCtx, request)
		done <- catchResult{out: out, err: err}
	}()

	var result catchResult
	received, elapsed := false, false
	fired := timer.C()
	for !received || !elapsed {
		select {
		case result = <-done:
			received = true
			done = nil
		case <-fired:
			elapsed = true
			fired = nil
		case <-sessCtx.Done():
			return catchResult{}, stale()
		}
	}
	return result, nil
}

func (o *orchestrator) Flee(_ context.Context, _ *FleeInput) (*FleeOutput, error) {
	o.mu.Lock()
	if o.resolving {
		o.mu.Unlock()
		slog.Debug("Flee ignored while resolving")
		return &FleeOutput{Ignored: true}, nil
	}
	if o.session == nil {
		o.mu.Unlock()
		return nil, errors.FailedPrecondition("no active encounter").WithReason(ReasonNoSession)
	}

	sessionID := o.session.ID
	o.teardownLocked()
	o.focused = false
	o.mu.Unlock()

	slog.Info("Player fled encounter", "session_id", sessionID)

	o.notifier.Neutral(titleFled, "")
	o.nav.GoHome()
	return &FleeOutput{}, nil
}

func (o *orchestrator) HandleBack() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.focused
}

func (o *orchestrator) Close() {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.teardownLocked()
	o.focused = false
}

func (o *orchestrator) Current() *View {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.session == nil {
		return nil
	}
	return o.viewLocked()
}

// teardownLocked clears the session and cancels its timer and in-flight calls
func (o *orchestrator) teardownLocked() {
	o.gen++
	if o.cancel != nil {
		o.cancel()
	}
	if o.timer != nil {
		o.timer.Stop()
	}
	o.ctx, o.cancel, o.timer = nil, nil, nil
	o.session = nil
	o.resolving = false
}

// endResolving clears the resolving flag if gen is still live
func (o *orchestrator) endResolving(gen uint64) bool {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.gen != gen {
		return false
	}
	o.resolving = false
	return true
}

func (o *orchestrator) viewLocked() *View {
	hasSelection := o.session.Creature != nil && o.session.SelectedTool() != nil
	return &View{
		Session:    o.session.clone(),
		Rate:       o.session.Rate(),
		Resolving:  o.resolving,
		CanCapture: hasSelection && !o.resolving,
		CanFlee:    !o.resolving,
	}
}

// link returns a context canceled when either parent is done
func link(ctx, sessCtx context.Context) (context.Context, context.CancelFunc) {
	linked, cancel := context.WithCancel(sessCtx)
	stop := context.AfterFunc(ctx, cancel)
	return linked, func() {
		stop()
		cancel()
	}
}

// captureFailureMessage prefers the backend's own message for status errors
func captureFailureMessage(err error) string {
	if errors.GetReason(err) != backend.ReasonStatus {
		return msgConnection
	}
	if msg, ok := errors.GetMeta(err)[backend.MetaBackendMessage].(string); ok && msg != "" {
		return msg
	}
	return msgCatchFailed
}
