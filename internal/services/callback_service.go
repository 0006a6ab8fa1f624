package services

import (
	"log/slog"

	"github.com/google/uuid"
	"github.com/ketomate/backend/internal/dto"
	"github.com/ketomate/backend/internal/models"
)

// CallbackPath is the route the callback is mounted on. Emailed links and
// the OAuth hand-off must all point here; the frontend proxies /api/* to
// this service, so SiteURL+CallbackPath reaches the handler.
const CallbackPath = "/api/auth/callback"

// Post-callback destinations.
const (
	RedirectResetPassword = "/auth/reset-password?reset=true"
	RedirectOnboarding    = "/onboarding"
	RedirectDashboard     = "/dashboard"
	RedirectHome          = "/"
	RedirectLoginError    = "/login?error="
)

// Callback error codes surfaced to the login page.
const (
	CallbackErrResetFailed        = "reset_failed"
	CallbackErrSessionExpired     = "session_expired"
	CallbackErrOAuthFailed        = "oauth_failed"
	CallbackErrConfirmationFailed = "confirmation_failed"
	CallbackErrAuthFailed         = "auth_failed"
)

type codeExchanger interface {
	ExchangeCodeForSession(code, purpose string) (*dto.AuthResponse, *models.User, error)
}

type profileStore interface {
	EnsureExists(userID uuid.UUID, email string) error
	Get(userID uuid.UUID) (*models.Profile, error)
}

// CallbackOutcome is the result of routing an auth callback. Session is
// non-nil only when the callback itself established a fresh session.
type CallbackOutcome struct {
	Redirect string
	Session  *dto.AuthResponse
}

// CallbackService routes the auth callback that every email link and
// OAuth hand-off lands on. Branches are evaluated in order: password
// recovery first, then signup confirmation, then OAuth, then an
// existing-session fallback.
type CallbackService struct {
	auth     codeExchanger
	profiles profileStore
}

func NewCallbackService(auth codeExchanger, profiles profileStore) *CallbackService {
	return &CallbackService{auth: auth, profiles: profiles}
}

// Handle resolves a callback request. code and typ come from the query
// string; sessionUserID is the user behind an already-present session
// cookie, or uuid.Nil when there is none.
func (s *CallbackService) Handle(code, typ string, sessionUserID uuid.UUID) CallbackOutcome {
	hasCode := code != ""

	switch {
	case hasCode && typ == "recovery":
		return s.handleRecovery(code)
	case hasCode && typ == "signup":
		return s.handleExchange(code, models.CodePurposeSignup, CallbackErrConfirmationFailed)
	case hasCode && typ == "":
		return s.handleExchange(code, models.CodePurposeOAuth, CallbackErrOAuthFailed)
	default:
		return s.handleExistingSession(sessionUserID)
	}
}

// handleRecovery exchanges the recovery code and sends the user straight
// to the password form. Profile state is deliberately not consulted here.
func (s *CallbackService) handleRecovery(code string) CallbackOutcome {
	session, _, err := s.auth.ExchangeCodeForSession(code, models.CodePurposeRecovery)
	if err != nil {
		slog.Warn("recovery code exchange failed", "error", err)
		return CallbackOutcome{Redirect: RedirectLoginError + CallbackErrResetFailed}
	}
	if session == nil || session.AccessToken == "" {
		return CallbackOutcome{Redirect: RedirectLoginError + CallbackErrSessionExpired}
	}
	return CallbackOutcome{Redirect: RedirectResetPassword, Session: session}
}

func (s *CallbackService) handleExchange(code, purpose, errCode string) CallbackOutcome {
	session, user, err := s.auth.ExchangeCodeForSession(code, purpose)
	if err != nil {
		slog.Warn("callback code exchange failed", "purpose", purpose, "error", err)
		return CallbackOutcome{Redirect: RedirectLoginError + errCode}
	}
	if user == nil {
		return CallbackOutcome{Redirect: RedirectLoginError + CallbackErrAuthFailed}
	}

	if err := s.profiles.EnsureExists(user.ID, user.Email); err != nil {
		slog.Error("profile ensure failed during callback", "error", err, "user_id", user.ID.String())
		return CallbackOutcome{Redirect: RedirectLoginError + CallbackErrAuthFailed}
	}

	return CallbackOutcome{Redirect: s.routeByProfile(user.ID), Session: session}
}

// handleExistingSession covers callbacks with no code at all, e.g. a
// user revisiting the URL after the code was already consumed.
func (s *CallbackService) handleExistingSession(sessionUserID uuid.UUID) CallbackOutcome {
	if sessionUserID == uuid.Nil {
		return CallbackOutcome{Redirect: RedirectHome}
	}
	return CallbackOutcome{Redirect: s.routeByProfile(sessionUserID)}
}

func (s *CallbackService) routeByProfile(userID uuid.UUID) string {
	profile, err := s.profiles.Get(userID)
	if err != nil || !IsProfileComplete(profile) {
		return RedirectOnboarding
	}
	return RedirectDashboard
}
