package sandbox_test

import (
	"context"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/pokequest/internal/clients/backend"
	"github.com/KirkDiggler/pokequest/internal/credentials"
	"github.com/KirkDiggler/pokequest/internal/errors"
	"github.com/KirkDiggler/pokequest/internal/navigation"
	"github.com/KirkDiggler/pokequest/internal/notify"
	"github.com/KirkDiggler/pokequest/internal/orchestrators/encounter"
	"github.com/KirkDiggler/pokequest/internal/pkg/clock"
	"github.com/KirkDiggler/pokequest/internal/pkg/idgen"
	"github.com/KirkDiggler/pokequest/internal/sandbox"
)

const (
	playerToken = "ash-token"
	playerID    = "ash"
)

// scriptedRoller returns queued values, then 1
type scriptedRoller struct {
	mu     sync.Mutex
	values []int
}

func (r *scriptedRoller) push(values ...int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values = append(r.values, values...)
}

func (r *scriptedRoller) Roll(_ int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.values) == 0 {
		return 1, nil
	}
	v := r.values[0]
	r.values = r.values[1:]
	return v, nil
}

func (r *scriptedRoller) RollN(count, size int) ([]int, error) {
	out := make([]int, count)
	for i := range out {
		v, err := r.Roll(size)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

type SandboxTestSuite struct {
	suite.Suite
	roller *scriptedRoller
	srv    *sandbox.Server
	http   *httptest.Server
	client backend.Client
	loader encounter.Loader
	ctx    context.Context
}

func TestSandboxSuite(t *testing.T) {
	suite.Run(t, new(SandboxTestSuite))
}

func (s *SandboxTestSuite) SetupTest() {
	s.setup(false)
}

func (s *SandboxTestSuite) setup(omit bool) {
	if s.http != nil {
		s.http.Close()
	}

	s.roller = &scriptedRoller{}
	s.ctx = context.Background()

	var err error
	s.srv, err = sandbox.New(&sandbox.Config{
		Tokens:                 map[string]string{playerToken: playerID},
		Roller:                 s.roller,
		OmitEncounterInventory: omit,
	})
	s.Require().NoError(err)

	s.http = httptest.NewServer(s.srv.Handler())

	s.client, err = backend.New(&backend.Config{BaseURL: s.http.URL})
	s.Require().NoError(err)

	s.loader, err = encounter.NewLoader(&encounter.LoaderConfig{
		Client:      s.client,
		Credentials: credentials.NewMemoryStore(playerToken),
		IDGenerator: idgen.NewSequential("session"),
	})
	s.Require().NoError(err)
}

func (s *SandboxTestSuite) TearDownTest() {
	s.http.Close()
	s.http = nil
}

func (s *SandboxTestSuite) TestHealth() {
	resp, err := http.Get(s.http.URL + "/health")
	s.Require().NoError(err)
	defer resp.Body.Close()
	s.Equal(http.StatusOK, resp.StatusCode)
}

func (s *SandboxTestSuite) TestEncounterIncludesInventory() {
	// third species of route-1, shiny roll hits
	s.roller.push(3, 1)

	out, err := s.loader.Load(s.ctx, &encounter.LoadInput{LocationID: "route-1"})
	s.Require().NoError(err)

	session := out.Session
	s.Equal("25", session.Creature.ID)
	s.Equal("Pikachu", session.Creature.Name)
	s.True(session.Creature.IsShiny)
	s.Require().NotNil(session.Creature.CatchRate)
	s.InDelta(35, *session.Creature.CatchRate, 0.001)

	s.Require().Len(session.Tools, 3)
	s.Equal("1", session.SelectedToolID)
	s.Equal(0, session.Tools[2].Quantity)
	s.Equal(35, session.Rate())
}

func (s *SandboxTestSuite) TestEncounterWithoutInventoryUsesFallback() {
	s.setup(true)
	s.roller.push(1, 2)

	out, err := s.loader.Load(s.ctx, &encounter.LoadInput{LocationID: "mt-moon"})
	s.Require().NoError(err)

	s.Equal("41", out.Session.Creature.ID)
	s.False(out.Session.Creature.IsShiny)
	s.Require().Len(out.Session.Tools, 3, "tools come from /item/my-pokeballs")
	s.InDelta(15, out.Session.Tool("2").Bonus, 0.001)
}

func (s *SandboxTestSuite) TestUnknownLocation() {
	_, err := s.loader.Load(s.ctx, &encounter.LoadInput{LocationID: "nowhere"})
	s.True(stderrors.Is(err, encounter.ErrEncounterUnavailable))
	s.Equal(http.StatusNotFound, errors.GetMeta(err)[backend.MetaHTTPStatus])
}

func (s *SandboxTestSuite) TestRejectsUnknownToken() {
	_, err := s.client.ListMyPokeballs(s.ctx, &backend.ListMyPokeballsInput{Token: "nope"})
	s.True(errors.IsUnauthenticated(err))
	s.Equal("Invalid or missing token", errors.GetMessage(err))
}

func (s *SandboxTestSuite) TestCatchConsumesBall() {
	s.roller.push(3, 2)
	_, err := s.loader.Load(s.ctx, &encounter.LoadInput{LocationID: "route-1"})
	s.Require().NoError(err)

	// 35 + 15 = 50, a roll of 50 succeeds
	s.roller.push(50)
	out, err := s.client.CatchPokemon(s.ctx, &backend.CatchPokemonInput{
		Token:      playerToken,
		PokemonID:  "25",
		LocationID: "route-1",
		ItemID:     "2",
	})
	s.Require().NoError(err)
	s.True(out.Captured)
	s.Equal(2, s.srv.Quantity(playerID, "2"))

	catches := s.srv.Catches(playerID)
	s.Require().Len(catches, 1)
	s.Equal("Pikachu", catches[0].Name)

	_, err = s.client.CatchPokemon(s.ctx, &backend.CatchPokemonInput{
		Token: playerToken, PokemonID: "25", LocationID: "route-1", ItemID: "2",
	})
	s.True(errors.IsNotFound(err), "the encounter ends after one throw")
}

func (s *SandboxTestSuite) TestCatchEscapes() {
	s.roller.push(3, 2)
	_, err := s.loader.Load(s.ctx, &encounter.LoadInput{LocationID: "route-1"})
	s.Require().NoError(err)

	s.roller.push(51)
	out, err := s.client.CatchPokemon(s.ctx, &backend.CatchPokemonInput{
		Token: playerToken, PokemonID: "25", LocationID: "route-1", ItemID: "2",
	})
	s.Require().NoError(err)
	s.False(out.Captured)
	s.Empty(s.srv.Catches(playerID))
}

func (s *SandboxTestSuite) TestCatchWithoutBall() {
	s.roller.push(1, 2)
	_, err := s.loader.Load(s.ctx, &encounter.LoadInput{LocationID: "route-1"})
	s.Require().NoError(err)

	_, err = s.client.CatchPokemon(s.ctx, &backend.CatchPokemonInput{
		Token: playerToken, PokemonID: "16", LocationID: "route-1", ItemID: "3",
	})
	s.Require().Error(err)
	s.Equal("You have no Ultra Ball left", errors.GetMeta(err)[backend.MetaBackendMessage])
}

func (s *SandboxTestSuite) TestFullCaptureFlow() {
	queue, err := notify.NewQueue(&notify.QueueConfig{
		Clock:       clock.New(),
		IDGenerator: idgen.NewSequential("toast"),
	})
	s.Require().NoError(err)

	wentHome := 0
	svc, err := encounter.NewOrchestrator(&encounter.Config{
		Loader:            s.loader,
		Client:            s.client,
		Credentials:       credentials.NewMemoryStore(playerToken),
		Notifier:          queue,
		Navigator:         navigation.HomeFunc(func() { wentHome++ }),
		Clock:             clock.New(),
		PresentationDelay: 10 * time.Millisecond,
	})
	s.Require().NoError(err)

	s.roller.push(2, 5)
	opened, err := svc.Open(s.ctx, &encounter.OpenInput{LocationID: "viridian-forest"})
	s.Require().NoError(err)
	s.Equal("Weedle", opened.View.Session.Creature.Name)
	s.Equal(70, opened.View.Rate)

	_, err = svc.SelectTool(s.ctx, &encounter.SelectToolInput{SessionID: opened.View.Session.ID, ToolID: "2"})
	s.Require().NoError(err)

	s.roller.push(85)
	out, err := svc.Capture(s.ctx, &encounter.CaptureInput{})
	s.Require().NoError(err)
	s.Equal(encounter.OutcomeCaptured, out.Outcome)
	s.Equal(1, wentHome)

	toasts := queue.Active()
	s.Require().Len(toasts, 1)
	s.Equal(notify.KindSuccess, toasts[0].Kind)
	s.Equal("Weedle was added to your team!", toasts[0].Message)
	s.Equal(2, s.srv.Quantity(playerID, "2"))
}

func (s *SandboxTestSuite) TestConfigValidation() {
	_, err := sandbox.New(&sandbox.Config{ShinyOdds: -1})
	s.Require().Error(err)
	s.Contains(err.Error(), "Tokens")
	s.Contains(err.Error(), "ShinyOdds")
}
