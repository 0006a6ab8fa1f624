package services

import (
	"strings"
	"testing"

	"github.com/ketomate/backend/internal/config"
	"github.com/ketomate/backend/internal/models"
)

func TestCallbackLinkTargetsCallbackRoute(t *testing.T) {
	t.Parallel()
	s := &AuthService{cfg: &config.Config{SiteURL: "https://app.example.com"}}

	link := s.callbackLink("abc123", models.CodePurposeSignup)
	if link != "https://app.example.com"+CallbackPath+"?code=abc123&type=signup" {
		t.Fatalf("unexpected signup link: %s", link)
	}

	link = s.callbackLink("abc123", models.CodePurposeRecovery)
	if !strings.HasPrefix(link, "https://app.example.com"+CallbackPath+"?") {
		t.Fatalf("recovery link points off the callback route: %s", link)
	}
	if !strings.HasSuffix(link, "&type=recovery") {
		t.Fatalf("recovery link missing type: %s", link)
	}

	// OAuth hand-off carries no type.
	if link := s.callbackLink("abc123", ""); strings.Contains(link, "type=") {
		t.Fatalf("typeless link must not carry a type param: %s", link)
	}
}

func TestHashTokenDeterministic(t *testing.T) {
	t.Parallel()
	a := hashToken("refresh-token-value")
	b := hashToken("refresh-token-value")
	if a != b {
		t.Fatalf("hash must be deterministic: %s vs %s", a, b)
	}
	if len(a) != 64 {
		t.Fatalf("expected 64 hex chars, got %d", len(a))
	}
	if a == hashToken("other-token") {
		t.Fatalf("different tokens must not collide")
	}
}

func TestDeleteAccountCascadeOrder(t *testing.T) {
	t.Parallel()
	owned := userOwnedModels()
	if len(owned) != 7 {
		t.Fatalf("expected 7 user-owned tables in the cascade, got %d", len(owned))
	}

	favorite, recipe := -1, -1
	for i, m := range owned {
		switch m.(type) {
		case *models.RecipeFavorite:
			favorite = i
		case *models.Recipe:
			recipe = i
		}
	}
	if favorite == -1 || recipe == -1 {
		t.Fatalf("cascade must cover recipes and their favorites")
	}
	if favorite > recipe {
		t.Fatalf("favorites (%d) must be deleted before recipes (%d)", favorite, recipe)
	}
}

func TestNormalizeEmail(t *testing.T) {
	t.Parallel()
	if got := normalizeEmail("  Ada@Example.COM "); got != "ada@example.com" {
		t.Fatalf("expected lowercase trimmed email, got %q", got)
	}
	if got := normalizeEmail("   "); got != "" {
		t.Fatalf("whitespace-only input should normalize to empty, got %q", got)
	}
}
