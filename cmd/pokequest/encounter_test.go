package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/pokequest/internal/errors"
	"github.com/KirkDiggler/pokequest/internal/orchestrators/encounter"
	encountermock "github.com/KirkDiggler/pokequest/internal/orchestrators/encounter/mock"
)

type EncounterCmdTestSuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	service *encountermock.MockService
	out     *bytes.Buffer
	ctx     context.Context
}

func TestEncounterCmdSuite(t *testing.T) {
	suite.Run(t, new(EncounterCmdTestSuite))
}

func (s *EncounterCmdTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.service = encountermock.NewMockService(s.ctrl)
	s.out = &bytes.Buffer{}
	s.ctx = context.Background()
}

func (s *EncounterCmdTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *EncounterCmdTestSuite) view(selected string) *encounter.View {
	rate := 35.0
	sess := &encounter.Session{
		ID:         "enc_1",
		LocationID: "route-1",
		Creature:   &encounter.Creature{ID: "25", Name: "Pikachu", SpriteURL: "https://img/25.png", IsShiny: true, CatchRate: &rate},
		Tools: []*encounter.Tool{
			{ID: "1", Name: "Poke Ball", Quantity: 0},
			{ID: "2", Name: "Great Ball", Quantity: 3, Bonus: 15},
			{ID: "3", Name: "Ultra Ball", Quantity: 1, Bonus: 30},
		},
		SelectedToolID: selected,
	}
	return &encounter.View{Session: sess, Rate: sess.Rate(), CanCapture: selected != "", CanFlee: true}
}

func (s *EncounterCmdTestSuite) expectOpen(view *encounter.View) {
	s.service.EXPECT().
		Open(gomock.Any(), &encounter.OpenInput{LocationID: "route-1"}).
		Return(&encounter.OpenOutput{View: view}, nil)
}

func (s *EncounterCmdTestSuite) TestCaptureWithDefaultBall() {
	s.expectOpen(s.view("2"))
	s.service.EXPECT().Capture(gomock.Any(), gomock.Any()).
		Return(&encounter.CaptureOutput{Outcome: encounter.OutcomeCaptured}, nil)

	err := runEncounter(s.ctx, s.service, &encounterOptions{LocationID: "route-1"}, s.out)
	s.Require().NoError(err)

	s.Contains(s.out.String(), "A wild Pikachu appeared! ✨ shiny")
	s.Contains(s.out.String(), " > Great Ball")
	s.Contains(s.out.String(), "Capture rate: 50%")
	s.Contains(s.out.String(), "Throwing a Great Ball...")
}

func (s *EncounterCmdTestSuite) TestFuzzyBallSelection() {
	s.expectOpen(s.view("2"))

	selected := s.view("3")
	s.service.EXPECT().
		SelectTool(gomock.Any(), &encounter.SelectToolInput{SessionID: "enc_1", ToolID: "3"}).
		Return(&encounter.SelectToolOutput{View: selected}, nil)
	s.service.EXPECT().Capture(gomock.Any(), gomock.Any()).
		Return(&encounter.CaptureOutput{Outcome: encounter.OutcomeEscaped}, nil)

	err := runEncounter(s.ctx, s.service, &encounterOptions{LocationID: "route-1", Ball: "ultra bal"}, s.out)
	s.Require().NoError(err)
	s.Contains(s.out.String(), "Switched to Ultra Ball, capture rate 65%")
	s.Contains(s.out.String(), "Throwing a Ultra Ball...")
}

func (s *EncounterCmdTestSuite) TestBallAlreadySelected() {
	s.expectOpen(s.view("2"))
	s.service.EXPECT().Capture(gomock.Any(), gomock.Any()).
		Return(&encounter.CaptureOutput{Outcome: encounter.OutcomeEscaped}, nil)

	err := runEncounter(s.ctx, s.service, &encounterOptions{LocationID: "route-1", Ball: "2"}, s.out)
	s.Require().NoError(err)
	s.NotContains(s.out.String(), "Switched to")
}

func (s *EncounterCmdTestSuite) TestUnknownBallClosesScreen() {
	s.expectOpen(s.view("2"))
	s.service.EXPECT().Close()

	err := runEncounter(s.ctx, s.service, &encounterOptions{LocationID: "route-1", Ball: "master ball"}, s.out)
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
	s.Contains(err.Error(), `no pokeball matches "master ball"`)
}

func (s *EncounterCmdTestSuite) TestFlee() {
	s.expectOpen(s.view("2"))
	s.service.EXPECT().Flee(gomock.Any(), gomock.Any()).Return(&encounter.FleeOutput{}, nil)

	err := runEncounter(s.ctx, s.service, &encounterOptions{LocationID: "route-1", Flee: true}, s.out)
	s.Require().NoError(err)
}

func (s *EncounterCmdTestSuite) TestOpenFailure() {
	openErr := errors.Unavailable("Connection problem")
	s.service.EXPECT().Open(gomock.Any(), gomock.Any()).Return(nil, openErr)

	err := runEncounter(s.ctx, s.service, &encounterOptions{LocationID: "route-1"}, s.out)
	s.Equal(openErr, err)
	s.Empty(s.out.String())
}

func (s *EncounterCmdTestSuite) TestCaptureFailureClosesScreen() {
	s.expectOpen(s.view("2"))
	captureErr := errors.Unavailable("capture request failed")
	gomock.InOrder(
		s.service.EXPECT().Capture(gomock.Any(), gomock.Any()).Return(nil, captureErr),
		s.service.EXPECT().Close(),
	)

	err := runEncounter(s.ctx, s.service, &encounterOptions{LocationID: "route-1"}, s.out)
	s.Equal(captureErr, err)
}

func (s *EncounterCmdTestSuite) TestNoPokeballs() {
	view := s.view("")
	view.Session.Tools = nil
	s.expectOpen(view)
	s.service.EXPECT().Capture(gomock.Any(), gomock.Any()).
		Return(nil, encounter.ErrMissingCaptureData)
	s.service.EXPECT().Close()

	err := runEncounter(s.ctx, s.service, &encounterOptions{LocationID: "route-1"}, s.out)
	s.Require().Error(err)
	s.Contains(s.out.String(), "You have no pokeballs.")
	s.Contains(s.out.String(), "Capture rate: 35%")
}

func (s *EncounterCmdTestSuite) TestInterruptedCapture() {
	ctx, cancel := context.WithCancel(s.ctx)
	s.expectOpen(s.view("2"))
	s.service.EXPECT().Capture(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, *encounter.CaptureInput) (*encounter.CaptureOutput, error) {
			cancel()
			return nil, encounter.ErrStale
		})
	s.service.EXPECT().Close().MinTimes(1)

	err := runEncounter(ctx, s.service, &encounterOptions{LocationID: "route-1"}, s.out)
	s.Require().Error(err)
	s.Equal(errors.CodeCanceled, errors.GetCode(err))
}
