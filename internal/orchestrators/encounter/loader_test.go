package encounter_test

import (
	"context"
	stderrors "errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/pokequest/internal/clients/backend"
	backendmock "github.com/KirkDiggler/pokequest/internal/clients/backend/mock"
	"github.com/KirkDiggler/pokequest/internal/credentials"
	credentialsmock "github.com/KirkDiggler/pokequest/internal/credentials/mock"
	"github.com/KirkDiggler/pokequest/internal/errors"
	"github.com/KirkDiggler/pokequest/internal/orchestrators/encounter"
	"github.com/KirkDiggler/pokequest/internal/pkg/idgen"
)

const testToken = "token-abc"

type LoaderTestSuite struct {
	suite.Suite
	ctrl       *gomock.Controller
	mockClient *backendmock.MockClient
	store      *credentials.MemoryStore
	loader     encounter.Loader
	ctx        context.Context
}

func TestLoaderSuite(t *testing.T) {
	suite.Run(t, new(LoaderTestSuite))
}

func (s *LoaderTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockClient = backendmock.NewMockClient(s.ctrl)
	s.store = credentials.NewMemoryStore(testToken)
	s.ctx = context.Background()

	var err error
	s.loader, err = encounter.NewLoader(&encounter.LoaderConfig{
		Client:      s.mockClient,
		Credentials: s.store,
		IDGenerator: idgen.NewSequential("session"),
	})
	s.Require().NoError(err)
}

func (s *LoaderTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func pikachu() *backend.PokemonData {
	return &backend.PokemonData{
		ID:          "25",
		Name:        "Pikachu",
		SpriteURL:   "pika.png",
		IsShiny:     true,
		CatchChance: ptr(45),
	}
}

func (s *LoaderTestSuite) TestLoad_WithEncounterPokeballs() {
	s.mockClient.EXPECT().
		GetEncounter(s.ctx, &backend.GetEncounterInput{Token: testToken, LocationID: "route-1"}).
		Return(&backend.GetEncounterOutput{
			Pokemon: pikachu(),
			Pokeballs: []*backend.PokeballData{
				{ID: "1", Name: "Poke Ball", Quantity: 0, Bonus: 0},
				{ID: "2", Name: "Great Ball", Quantity: 3, Bonus: 15},
				{ID: "3", Name: "Ultra Ball", Quantity: 0, Bonus: 30},
			},
		}, nil)

	out, err := s.loader.Load(s.ctx, &encounter.LoadInput{LocationID: "route-1"})
	s.Require().NoError(err)

	session := out.Session
	s.Equal("session_1", session.ID)
	s.Equal("route-1", session.LocationID)
	s.Equal(&encounter.Creature{
		ID:        "25",
		Name:      "Pikachu",
		SpriteURL: "pika.png",
		IsShiny:   true,
		CatchRate: ptr(45),
	}, session.Creature)
	s.Len(session.Tools, 3)
	s.Equal("2", session.SelectedToolID, "first owned pokeball is selected")
	s.Equal(60, session.Rate())
}

func (s *LoaderTestSuite) TestLoad_FallbackInventory() {
	s.mockClient.EXPECT().
		GetEncounter(s.ctx, gomock.Any()).
		Return(&backend.GetEncounterOutput{Pokemon: pikachu()}, nil)
	s.mockClient.EXPECT().
		ListMyPokeballs(s.ctx, &backend.ListMyPokeballsInput{Token: testToken}).
		Return(&backend.ListMyPokeballsOutput{Pokeballs: []*backend.PokeballData{
			{ID: "7", Name: "Master Ball", Quantity: 1, Bonus: 100},
		}}, nil)

	out, err := s.loader.Load(s.ctx, &encounter.LoadInput{LocationID: "route-1"})
	s.Require().NoError(err)

	s.Require().Len(out.Session.Tools, 1)
	s.Equal(&encounter.Tool{ID: "7", Name: "Master Ball", Quantity: 1, Bonus: 100}, out.Session.Tools[0])
	s.Equal("7", out.Session.SelectedToolID)
	s.Equal(100, out.Session.Rate())
}

func (s *LoaderTestSuite) TestLoad_FallbackFailureLeavesNoTools() {
	s.mockClient.EXPECT().
		GetEncounter(s.ctx, gomock.Any()).
		Return(&backend.GetEncounterOutput{Pokemon: pikachu(), Pokeballs: []*backend.PokeballData{}}, nil)
	s.mockClient.EXPECT().
		ListMyPokeballs(s.ctx, gomock.Any()).
		Return(nil, errors.Unavailable("down"))

	out, err := s.loader.Load(s.ctx, &encounter.LoadInput{LocationID: "route-1"})
	s.Require().NoError(err)

	s.Empty(out.Session.Tools)
	s.Empty(out.Session.SelectedToolID)
	s.Nil(out.Session.SelectedTool())
	s.Equal(45, out.Session.Rate(), "rate without a tool uses the base alone")
}

func (s *LoaderTestSuite) TestLoad_MissingLocation() {
	for _, input := range []*encounter.LoadInput{nil, {}, {LocationID: "   "}} {
		out, err := s.loader.Load(s.ctx, input)
		s.Nil(out)
		s.Require().Error(err)
		s.True(stderrors.Is(err, encounter.ErrMissingLocation))
		s.True(errors.IsInvalidArgument(err))
	}
}

func (s *LoaderTestSuite) TestLoad_MissingCredential() {
	s.Require().NoError(s.store.Clear(s.ctx))

	out, err := s.loader.Load(s.ctx, &encounter.LoadInput{LocationID: "route-1"})
	s.Nil(out)
	s.True(stderrors.Is(err, encounter.ErrAuthenticationRequired))
	s.True(errors.IsUnauthenticated(err))
}

func (s *LoaderTestSuite) TestLoad_CredentialStoreFailure() {
	store := credentialsmock.NewMockStore(s.ctrl)
	store.EXPECT().Get(s.ctx).Return("", errors.Unavailable("redis down"))

	loader, err := encounter.NewLoader(&encounter.LoaderConfig{
		Client:      s.mockClient,
		Credentials: store,
		IDGenerator: idgen.NewSequential(""),
	})
	s.Require().NoError(err)

	_, err = loader.Load(s.ctx, &encounter.LoadInput{LocationID: "route-1"})
	s.True(stderrors.Is(err, encounter.ErrAuthenticationRequired))
	s.Contains(err.Error(), "redis down")
}

func (s *LoaderTestSuite) TestLoad_PrimaryFailures() {
	testCases := []struct {
		name   string
		err    error
		target error
		status interface{}
	}{
		{
			name: "status error",
			err: errors.NotFound("gone").
				WithReason(backend.ReasonStatus).
				WithMeta(backend.MetaHTTPStatus, http.StatusNotFound),
			target: encounter.ErrEncounterUnavailable,
			status: http.StatusNotFound,
		},
		{
			name: "unauthorized status",
			err: errors.Unauthenticated("nope").
				WithReason(backend.ReasonStatus).
				WithMeta(backend.MetaHTTPStatus, http.StatusUnauthorized),
			target: encounter.ErrEncounterUnavailable,
			status: http.StatusUnauthorized,
		},
		{
			name:   "transport",
			err:    errors.Unavailable("dial tcp: refused").WithReason(backend.ReasonTransport),
			target: encounter.ErrConnection,
		},
		{
			name:   "decode",
			err:    errors.Internal("bad json").WithReason(backend.ReasonDecode),
			target: encounter.ErrConnection,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.mockClient.EXPECT().GetEncounter(s.ctx, gomock.Any()).Return(nil, tc.err)

			out, err := s.loader.Load(s.ctx, &encounter.LoadInput{LocationID: "route-1"})
			s.Nil(out)
			s.Require().Error(err)
			s.True(stderrors.Is(err, tc.target), "got %v", err)
			s.True(errors.IsUnavailable(err))
			if tc.status != nil {
				s.Equal(tc.status, errors.GetMeta(err)[backend.MetaHTTPStatus])
			}
		})
	}
}

func (s *LoaderTestSuite) TestLoad_PayloadWithoutPokemon() {
	s.mockClient.EXPECT().
		GetEncounter(s.ctx, gomock.Any()).
		Return(&backend.GetEncounterOutput{Pokemon: &backend.PokemonData{}}, nil)

	_, err := s.loader.Load(s.ctx, &encounter.LoadInput{LocationID: "route-1"})
	s.True(stderrors.Is(err, encounter.ErrConnection))
}

func (s *LoaderTestSuite) TestNewLoader_Validation() {
	_, err := encounter.NewLoader(&encounter.LoaderConfig{})
	s.Require().Error(err)
	s.Contains(err.Error(), "Client")
	s.Contains(err.Error(), "Credentials")
	s.Contains(err.Error(), "IDGenerator")
}
