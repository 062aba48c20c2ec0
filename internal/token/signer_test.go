package token_test

import (
	"testing"
	"time"

	"github.com/peoplecare/hrportal/internal/domain"
	"github.com/peoplecare/hrportal/internal/token"
)

const (
	accessSecret  = "access-secret-0123456789abcdef01"
	refreshSecret = "refresh-secret-0123456789abcdef0"
	accessTTL     = 15 * time.Minute
	refreshTTL    = 168 * time.Hour
)

func newSigner() *token.Signer {
	return token.NewSigner([]byte(accessSecret), []byte(refreshSecret), accessTTL, refreshTTL)
}

func signPair(t *testing.T) (access, refresh string) {
	t.Helper()
	company := "CRC"
	access, refresh, err := newSigner().SignPair(&domain.User{
		ID:         42,
		EmployeeID: "E0042",
		Email:      "jane@central.co.th",
		Role:       domain.RoleManager,
		Company:    &company,
	})
	if err != nil {
		t.Fatalf("SignPair: %v", err)
	}
	return access, refresh
}

func TestSignPair_ClaimsRoundTrip(t *testing.T) {
	access, refresh := signPair(t)
	signer := newSigner()

	claims, err := signer.ParseAccess(access)
	if err != nil {
		t.Fatalf("ParseAccess: %v", err)
	}
	if claims.Subject != "42" || claims.Email != "jane@central.co.th" ||
		claims.EmployeeID != "E0042" || claims.Role != domain.RoleManager {
		t.Errorf("access claims = %+v", claims)
	}
	if claims.Company == nil || *claims.Company != "CRC" {
		t.Errorf("company claim = %v", claims.Company)
	}
	id, err := claims.UserID()
	if err != nil || id != 42 {
		t.Errorf("UserID() = %d, %v", id, err)
	}

	rc, err := signer.ParseRefresh(refresh)
	if err != nil {
		t.Fatalf("ParseRefresh: %v", err)
	}
	if rc.Subject != "42" {
		t.Errorf("refresh subject = %q", rc.Subject)
	}
}

func TestSignPair_DistinctTTLs(t *testing.T) {
	access, refresh := signPair(t)
	signer := newSigner()

	ac, err := signer.ParseAccess(access)
	if err != nil {
		t.Fatalf("ParseAccess: %v", err)
	}
	rc, err := signer.ParseRefresh(refresh)
	if err != nil {
		t.Fatalf("ParseRefresh: %v", err)
	}

	if got := ac.ExpiresAt.Sub(ac.IssuedAt.Time); got != accessTTL {
		t.Errorf("access exp-iat = %v, want %v", got, accessTTL)
	}
	if got := rc.ExpiresAt.Sub(rc.IssuedAt.Time); got != refreshTTL {
		t.Errorf("refresh exp-iat = %v, want %v", got, refreshTTL)
	}
}

func TestParse_CrossSecretRejected(t *testing.T) {
	access, refresh := signPair(t)
	signer := newSigner()

	if _, err := signer.ParseAccess(refresh); err == nil {
		t.Error("refresh token accepted under the access secret")
	}
	if _, err := signer.ParseRefresh(access); err == nil {
		t.Error("access token accepted under the refresh secret")
	}
}

func TestParse_WrongSecretRejected(t *testing.T) {
	access, _ := signPair(t)
	other := token.NewSigner([]byte("completely-different-secret-val!"), []byte(refreshSecret), accessTTL, refreshTTL)

	if _, err := other.ParseAccess(access); err == nil {
		t.Error("token accepted under a different secret")
	}
}

func TestParse_ExpiredRejected(t *testing.T) {
	expired := token.NewSigner([]byte(accessSecret), []byte(refreshSecret), -time.Minute, -time.Minute)
	access, _, err := expired.SignPair(&domain.User{ID: 1, Email: "a@b.com", Role: domain.RoleEmployee})
	if err != nil {
		t.Fatalf("SignPair: %v", err)
	}

	if _, err := newSigner().ParseAccess(access); err == nil {
		t.Error("expired token accepted")
	}
}

func TestParse_Garbage(t *testing.T) {
	if _, err := newSigner().ParseAccess("not-a-jwt"); err == nil {
		t.Error("garbage accepted")
	}
}
