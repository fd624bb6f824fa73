package encounter

import (
	"github.com/KirkDiggler/pokequest/internal/errors"
)

// Reasons carried by encounter errors
const (
	ReasonMissingLocation        = "missing_location"
	ReasonAuthenticationRequired = "authentication_required"
	ReasonEncounterUnavailable   = "encounter_unavailable"
	ReasonConnection             = "connection"
	ReasonMissingCaptureData     = "missing_capture_data"
	ReasonStale                  = "stale"
	ReasonResolving              = "resolving"
	ReasonNoSession              = "no_session"
)

// Targets for errors.Is. They match on code and reason.
var (
	ErrMissingLocation        = errors.New(errors.CodeInvalidArgument, "missing location").WithReason(ReasonMissingLocation)
	ErrAuthenticationRequired = errors.New(errors.CodeUnauthenticated, "authentication required").WithReason(ReasonAuthenticationRequired)
	ErrEncounterUnavailable   = errors.New(errors.CodeUnavailable, "encounter unavailable").WithReason(ReasonEncounterUnavailable)
	ErrConnection             = errors.New(errors.CodeUnavailable, "connection problem").WithReason(ReasonConnection)
	ErrMissingCaptureData     = errors.New(errors.CodeInvalidArgument, "missing capture data").WithReason(ReasonMissingCaptureData)
	ErrStale                  = errors.New(errors.CodeAborted, "encounter session is no longer active").WithReason(ReasonStale)
	ErrResolving              = errors.New(errors.CodeFailedPrecondition, "a capture is resolving").WithReason(ReasonResolving)
	ErrNoSession              = errors.New(errors.CodeFailedPrecondition, "no active encounter").WithReason(ReasonNoSession)
)

// User-facing texts
const (
	titleError = "Error"

	msgMissingLocation    = "Missing location id"
	msgMissingToken       = "Missing authentication token"
	msgEncounterFailed    = "Could not generate an encounter"
	msgConnection         = "Connection problem"
	msgMissingCaptureData = "Missing data for the capture"
	msgCatchFailed        = "Could not catch the pokémon"

	titleCaptured = "Pokémon caught!"
	fmtCaptured   = "%s was added to your team!"
	titleEscaped  = "Capture failed"
	fmtEscaped    = "%s escaped!"
	titleFled     = "You ran away!"
)

func missingLocation() *errors.Error {
	return errors.InvalidArgument(msgMissingLocation).WithReason(ReasonMissingLocation)
}

func authenticationRequired(cause error) *errors.Error {
	if cause == nil {
		return errors.Unauthenticated(msgMissingToken).WithReason(ReasonAuthenticationRequired)
	}
	return errors.WrapWithCode(cause, errors.CodeUnauthenticated, msgMissingToken).
		WithReason(ReasonAuthenticationRequired)
}

func stale() *errors.Error {
	return errors.Aborted("encounter session is no longer active").WithReason(ReasonStale)
}

// IsStale reports whether err is a discarded result for a torn-down session
func IsStale(err error) bool {
	return errors.Is(err, ErrStale)
}

// userMessage is the alert text for a load failure
func userMessage(err error) string {
	switch errors.GetReason(err) {
	case ReasonMissingLocation:
		return msgMissingLocation
	case ReasonAuthenticationRequired:
		return msgMissingToken
	case ReasonEncounterUnavailable:
		return msgEncounterFailed
	default:
		return msgConnection
	}
}
