package auth

import (
	"testing"
	"time"

	"github.com/example/fastbite/pkg/config"
	"github.com/example/fastbite/pkg/models"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:   "test-secret",
		Issuer:   "fastbite-test",
		Audience: "fastbite-clients",
		TTL:      time.Hour,
	}
}

func TestTokenRoundTrip(t *testing.T) {
	svc := NewTokenService(testJWTConfig())
	user := &models.User{ID: 42, Role: models.RoleAdmin}

	token, err := svc.Generate(user)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	claims, err := svc.Parse(token)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("UserID = %d, want 42", claims.UserID)
	}
	if claims.Role != models.RoleAdmin {
		t.Errorf("Role = %q, want %q", claims.Role, models.RoleAdmin)
	}
}

func TestParseRejectsExpiredToken(t *testing.T) {
	svc := NewTokenService(testJWTConfig())
	svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, err := svc.Generate(&models.User{ID: 1, Role: models.RoleCustomer})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	svc.now = time.Now
	if _, err := svc.Parse(token); err == nil {
		t.Fatal("Parse() accepted an expired token")
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	issuer := NewTokenService(testJWTConfig())

	otherCfg := testJWTConfig()
	otherCfg.Secret = "other-secret"
	verifier := NewTokenService(otherCfg)

	token, err := issuer.Generate(&models.User{ID: 1, Role: models.RoleCustomer})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if _, err := verifier.Parse(token); err == nil {
		t.Fatal("Parse() accepted a token signed with a different secret")
	}
}

func TestParseRejectsWrongAudience(t *testing.T) {
	issuer := NewTokenService(testJWTConfig())

	otherCfg := testJWTConfig()
	otherCfg.Audience = "some-other-service"
	verifier := NewTokenService(otherCfg)

	token, err := issuer.Generate(&models.User{ID: 1, Role: models.RoleCustomer})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if _, err := verifier.Parse(token); err == nil {
		t.Fatal("Parse() accepted a token issued for a different audience")
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	svc := NewTokenService(testJWTConfig())
	if _, err := svc.Parse("not-a-token"); err == nil {
		t.Fatal("Parse() accepted a malformed token")
	}
}
