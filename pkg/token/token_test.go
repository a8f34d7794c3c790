package token

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func newTestCodec(t *testing.T) *Codec {
	t.Helper()
	c, err := New([]byte("access-key-0123456789abcdef01234"), []byte("refresh-key-0123456789abcdef0123"))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return c
}

func TestNew_RejectsBadKeys(t *testing.T) {
	tests := []struct {
		name       string
		accessKey  string
		refreshKey string
		wantErr    error
	}{
		{name: "empty access key", accessKey: "", refreshKey: "refresh", wantErr: ErrKeyRequired},
		{name: "empty refresh key", accessKey: "access", refreshKey: "", wantErr: ErrKeyRequired},
		{name: "identical keys", accessKey: "same-key", refreshKey: "same-key", wantErr: ErrKeysNotDistinct},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := New([]byte(test.accessKey), []byte(test.refreshKey))
			if err != test.wantErr {
				t.Errorf("New() error = %v, want %v", err, test.wantErr)
			}
		})
	}
}

func TestIssueDecode_RoundTrip(t *testing.T) {
	codec := newTestCodec(t)

	for _, kind := range []Kind{KindAccess, KindRefresh} {
		t.Run(string(kind), func(t *testing.T) {
			signed, exp, err := codec.Issue("user-123", kind, time.Hour)
			if err != nil {
				t.Fatalf("Issue() error = %v", err)
			}
			if signed == "" {
				t.Fatal("Issue() returned empty token")
			}
			if !exp.After(time.Now()) {
				t.Errorf("expiry %v is not in the future", exp)
			}

			claims, err := codec.Decode(signed, kind)
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if claims.UserID != "user-123" {
				t.Errorf("UserID = %q, want %q", claims.UserID, "user-123")
			}
			if claims.Kind != kind {
				t.Errorf("Kind = %q, want %q", claims.Kind, kind)
			}
		})
	}
}

// A refresh token must never verify as an access token: it is signed
// with a different key, so the failure shows up as a bad signature even
// before the kind claim is inspected.
func TestDecode_KindIsolation(t *testing.T) {
	codec := newTestCodec(t)

	refresh, _, err := codec.Issue("user-123", KindRefresh, time.Hour)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	if _, err := codec.Decode(refresh, KindAccess); err != ErrInvalidToken {
		t.Errorf("Decode(refresh as access) error = %v, want %v", err, ErrInvalidToken)
	}

	access, _, err := codec.Issue("user-123", KindAccess, time.Hour)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	if _, err := codec.Decode(access, KindRefresh); err != ErrInvalidToken {
		t.Errorf("Decode(access as refresh) error = %v, want %v", err, ErrInvalidToken)
	}
}

func TestDecode_Expired(t *testing.T) {
	codec := newTestCodec(t)

	signed, _, err := codec.Issue("user-123", KindAccess, -time.Minute)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	if _, err := codec.Decode(signed, KindAccess); err != ErrExpired {
		t.Errorf("Decode() error = %v, want %v", err, ErrExpired)
	}
}

func TestDecode_Tampered(t *testing.T) {
	codec := newTestCodec(t)

	signed, _, err := codec.Issue("user-123", KindAccess, time.Hour)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	// Flip a character in the signature segment.
	parts := strings.Split(signed, ".")
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	parts[2] = string(sig)
	tampered := strings.Join(parts, ".")

	if _, err := codec.Decode(tampered, KindAccess); err != ErrInvalidToken {
		t.Errorf("Decode(tampered) error = %v, want %v", err, ErrInvalidToken)
	}
}

func TestDecode_Malformed(t *testing.T) {
	codec := newTestCodec(t)

	if _, err := codec.Decode("not.a.jwt", KindAccess); err != ErrInvalidToken {
		t.Errorf("Decode() error = %v, want %v", err, ErrInvalidToken)
	}
}

// The kind claim is checked even when the signature verifies: a token
// signed with the access key but claiming to be a refresh token is
// rejected as the wrong kind.
func TestDecode_WrongKindClaim(t *testing.T) {
	codec := newTestCodec(t)

	mislabeled := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID: "user-123",
		Kind:   KindRefresh,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := mislabeled.SignedString(codec.accessKey)
	if err != nil {
		t.Fatalf("SignedString() error = %v", err)
	}

	if _, err := codec.Decode(signed, KindAccess); err != ErrWrongKind {
		t.Errorf("Decode() error = %v, want %v", err, ErrWrongKind)
	}
}

// Decoding a token signed by a different codec must fail regardless of
// its embedded claims.
func TestDecode_ForeignKey(t *testing.T) {
	codec := newTestCodec(t)

	other, err := New([]byte("other-access-0123456789abcdef012"), []byte("other-refresh-0123456789abcdef01"))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	signed, _, err := other.Issue("user-123", KindAccess, time.Hour)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	if _, err := codec.Decode(signed, KindAccess); err != ErrInvalidToken {
		t.Errorf("Decode() error = %v, want %v", err, ErrInvalidToken)
	}
}
