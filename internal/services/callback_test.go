package services

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/ketomate/backend/internal/dto"
	"github.com/ketomate/backend/internal/models"
)

type fakeExchanger struct {
	session *dto.AuthResponse
	user    *models.User
	err     error

	gotCode    string
	gotPurpose string
	calls      int
}

func (f *fakeExchanger) ExchangeCodeForSession(code, purpose string) (*dto.AuthResponse, *models.User, error) {
	f.calls++
	f.gotCode = code
	f.gotPurpose = purpose
	return f.session, f.user, f.err
}

type fakeProfiles struct {
	profile *models.Profile
	getErr  error

	ensureCalls int
	getCalls    int
}

func (f *fakeProfiles) EnsureExists(userID uuid.UUID, email string) error {
	f.ensureCalls++
	return nil
}

func (f *fakeProfiles) Get(userID uuid.UUID) (*models.Profile, error) {
	f.getCalls++
	return f.profile, f.getErr
}

func sessionFor(user *models.User) *dto.AuthResponse {
	return &dto.AuthResponse{
		AccessToken:  "access",
		RefreshToken: "refresh",
		User:         dto.UserResponse{ID: user.ID, Email: user.Email},
	}
}

func completeProfile() *models.Profile {
	return &models.Profile{
		FullName:    strptr("Ada Example"),
		City:        strptr("Berlin"),
		FastingGoal: 16,
	}
}

// A recovery callback goes straight to the password form and never
// touches the profile.
func TestCallbackRecoverySkipsProfile(t *testing.T) {
	t.Parallel()
	user := &models.User{ID: uuid.New(), Email: "a@example.com"}
	auth := &fakeExchanger{session: sessionFor(user), user: user}
	profiles := &fakeProfiles{profile: completeProfile()}

	outcome := NewCallbackService(auth, profiles).Handle("code-1", "recovery", uuid.Nil)

	if outcome.Redirect != RedirectResetPassword {
		t.Fatalf("expected %s, got %s", RedirectResetPassword, outcome.Redirect)
	}
	if outcome.Session == nil {
		t.Fatalf("recovery must establish a session")
	}
	if auth.gotPurpose != models.CodePurposeRecovery {
		t.Fatalf("expected recovery exchange, got %s", auth.gotPurpose)
	}
	if profiles.ensureCalls != 0 || profiles.getCalls != 0 {
		t.Fatalf("recovery must not touch the profile store")
	}
}

func TestCallbackRecoveryExchangeFails(t *testing.T) {
	t.Parallel()
	auth := &fakeExchanger{err: ErrInvalidCode}
	outcome := NewCallbackService(auth, &fakeProfiles{}).Handle("bad", "recovery", uuid.Nil)

	if outcome.Redirect != RedirectLoginError+CallbackErrResetFailed {
		t.Fatalf("expected reset_failed redirect, got %s", outcome.Redirect)
	}
	if outcome.Session != nil {
		t.Fatalf("failed exchange must not yield a session")
	}
}

func TestCallbackSignupIncompleteProfile(t *testing.T) {
	t.Parallel()
	user := &models.User{ID: uuid.New(), Email: "new@example.com"}
	auth := &fakeExchanger{session: sessionFor(user), user: user}
	profiles := &fakeProfiles{profile: &models.Profile{}}

	outcome := NewCallbackService(auth, profiles).Handle("code-2", "signup", uuid.Nil)

	if auth.gotPurpose != models.CodePurposeSignup {
		t.Fatalf("expected signup exchange, got %s", auth.gotPurpose)
	}
	if profiles.ensureCalls != 1 {
		t.Fatalf("expected exactly one profile ensure, got %d", profiles.ensureCalls)
	}
	if outcome.Redirect != RedirectOnboarding {
		t.Fatalf("incomplete profile should route to onboarding, got %s", outcome.Redirect)
	}
	if outcome.Session == nil {
		t.Fatalf("signup confirmation must establish a session")
	}
}

func TestCallbackSignupExchangeFails(t *testing.T) {
	t.Parallel()
	auth := &fakeExchanger{err: ErrInvalidCode}
	outcome := NewCallbackService(auth, &fakeProfiles{}).Handle("expired", "signup", uuid.Nil)

	if outcome.Redirect != RedirectLoginError+CallbackErrConfirmationFailed {
		t.Fatalf("expected confirmation_failed, got %s", outcome.Redirect)
	}
}

// A code with no type parameter is the OAuth hand-off.
func TestCallbackOAuthCompleteProfile(t *testing.T) {
	t.Parallel()
	user := &models.User{ID: uuid.New(), Email: "g@example.com"}
	auth := &fakeExchanger{session: sessionFor(user), user: user}
	profiles := &fakeProfiles{profile: completeProfile()}

	outcome := NewCallbackService(auth, profiles).Handle("code-3", "", uuid.Nil)

	if auth.gotPurpose != models.CodePurposeOAuth {
		t.Fatalf("expected oauth exchange, got %s", auth.gotPurpose)
	}
	if outcome.Redirect != RedirectDashboard {
		t.Fatalf("complete profile should route to dashboard, got %s", outcome.Redirect)
	}
}

func TestCallbackOAuthExchangeFails(t *testing.T) {
	t.Parallel()
	auth := &fakeExchanger{err: errors.New("upstream down")}
	outcome := NewCallbackService(auth, &fakeProfiles{}).Handle("code-4", "", uuid.Nil)

	if outcome.Redirect != RedirectLoginError+CallbackErrOAuthFailed {
		t.Fatalf("expected oauth_failed, got %s", outcome.Redirect)
	}
}

func TestCallbackNoCodeNoSession(t *testing.T) {
	t.Parallel()
	auth := &fakeExchanger{}
	outcome := NewCallbackService(auth, &fakeProfiles{}).Handle("", "", uuid.Nil)

	if outcome.Redirect != RedirectHome {
		t.Fatalf("expected home redirect, got %s", outcome.Redirect)
	}
	if auth.calls != 0 {
		t.Fatalf("no code must mean no exchange, got %d calls", auth.calls)
	}
}

func TestCallbackNoCodeWithSession(t *testing.T) {
	t.Parallel()
	profiles := &fakeProfiles{profile: completeProfile()}
	outcome := NewCallbackService(&fakeExchanger{}, profiles).Handle("", "", uuid.New())

	if outcome.Redirect != RedirectDashboard {
		t.Fatalf("existing session with complete profile should hit dashboard, got %s", outcome.Redirect)
	}
	if outcome.Session != nil {
		t.Fatalf("fallback must not mint a new session")
	}
}

// An unknown type value falls through to the session check rather than
// consuming the code.
func TestCallbackUnknownTypeFallsThrough(t *testing.T) {
	t.Parallel()
	auth := &fakeExchanger{}
	outcome := NewCallbackService(auth, &fakeProfiles{}).Handle("code-5", "magiclink", uuid.Nil)

	if auth.calls != 0 {
		t.Fatalf("unknown type must not consume the code")
	}
	if outcome.Redirect != RedirectHome {
		t.Fatalf("expected home redirect, got %s", outcome.Redirect)
	}
}
