package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/amoodyplace/moodyplace-go/internal/model"
)

const tokenTestSecret = "Xk9#mP2$vN8qR5tY7wZ3bC6dF1gH4jL0"

func testUser() *model.AdminUser {
	return &model.AdminUser{
		ID:       7,
		Username: "moody",
		Role:     model.RoleAdmin,
	}
}

func newTestManager() *TokenManager {
	return NewTokenManager(tokenTestSecret, 24*time.Hour, 7*24*time.Hour)
}

func TestIssuePair_AndVerify(t *testing.T) {
	m := newTestManager()
	pair, err := m.IssuePair(testUser())
	if err != nil {
		t.Fatalf("IssuePair: %v", err)
	}
	if pair.TokenType != "Bearer" {
		t.Errorf("TokenType = %q, want Bearer", pair.TokenType)
	}
	if pair.ExpiresIn != int64((24 * time.Hour).Seconds()) {
		t.Errorf("ExpiresIn = %d, want 86400", pair.ExpiresIn)
	}

	claims, err := m.Verify(pair.AccessToken, "")
	if err != nil {
		t.Fatalf("Verify access: %v", err)
	}
	if claims.UserID != 7 || claims.Username != "moody" || claims.Role != model.RoleAdmin {
		t.Errorf("unexpected claims: %+v", claims)
	}
	if claims.TokenType != "" {
		t.Errorf("access token should carry no type claim, got %q", claims.TokenType)
	}

	refreshClaims, err := m.Verify(pair.RefreshToken, TokenTypeRefresh)
	if err != nil {
		t.Fatalf("Verify refresh: %v", err)
	}
	if refreshClaims.TokenType != TokenTypeRefresh {
		t.Errorf("refresh token type = %q, want %q", refreshClaims.TokenType, TokenTypeRefresh)
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	m := newTestManager()
	pair, err := m.IssuePair(testUser())
	if err != nil {
		t.Fatalf("IssuePair: %v", err)
	}

	other := NewTokenManager("A-completely-different-secret-42!X", 24*time.Hour, 7*24*time.Hour)
	if _, err := other.Verify(pair.AccessToken, ""); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("Verify with wrong secret = %v, want ErrTokenInvalid", err)
	}
}

func TestVerify_Expired(t *testing.T) {
	m := newTestManager()
	pair, err := m.IssuePair(testUser())
	if err != nil {
		t.Fatalf("IssuePair: %v", err)
	}

	// Move the verification clock past the access TTL. Expiry must map to
	// a distinct error so callers can tell it apart from tampering.
	m.now = func() time.Time { return time.Now().Add(25 * time.Hour) }
	if _, err := m.Verify(pair.AccessToken, ""); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("Verify expired = %v, want ErrTokenExpired", err)
	}
}

func TestVerify_RefreshRejectsAccessToken(t *testing.T) {
	m := newTestManager()
	pair, err := m.IssuePair(testUser())
	if err != nil {
		t.Fatalf("IssuePair: %v", err)
	}

	if _, err := m.Verify(pair.AccessToken, TokenTypeRefresh); !errors.Is(err, ErrWrongTokenType) {
		t.Fatalf("Verify access-as-refresh = %v, want ErrWrongTokenType", err)
	}
}

func signWith(t *testing.T, claims Claims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(tokenTestSecret))
	if err != nil {
		t.Fatalf("signing test token: %v", err)
	}
	return signed
}

func TestVerify_WrongIssuerOrAudience(t *testing.T) {
	m := newTestManager()
	now := time.Now().UTC()

	base := Claims{
		UserID:   7,
		Username: "moody",
		Role:     model.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    TokenIssuer,
			Audience:  jwt.ClaimStrings{TokenAudience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	}

	wrongIssuer := base
	wrongIssuer.Issuer = "someone-else.example"
	if _, err := m.Verify(signWith(t, wrongIssuer), ""); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("wrong issuer = %v, want ErrTokenInvalid", err)
	}

	wrongAudience := base
	wrongAudience.Audience = jwt.ClaimStrings{"another-app"}
	if _, err := m.Verify(signWith(t, wrongAudience), ""); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("wrong audience = %v, want ErrTokenInvalid", err)
	}
}

func TestVerify_Garbage(t *testing.T) {
	m := newTestManager()
	if _, err := m.Verify("not.a.token", ""); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("Verify garbage = %v, want ErrTokenInvalid", err)
	}
}
