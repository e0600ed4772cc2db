package session

import (
	"encoding/base64"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return tok
}

func TestDecodeClaims_SignedToken(t *testing.T) {
	tok := signedToken(t, jwt.MapClaims{"sub": "42", "username": "alice", "roles": []string{"USER"}})

	claims := DecodeClaims(tok)
	require.NotNil(t, claims)
	assert.Equal(t, "42", claims["sub"])
	assert.Equal(t, "alice", claims["username"])
	assert.Equal(t, []any{"USER"}, claims["roles"])
}

func TestDecodeClaims_PaddingAndAlphabet(t *testing.T) {
	// Payload chosen so its encoding needs padding and contains URL-safe characters.
	payload := []byte(`{"username":"??>>","n":1}`)

	cases := map[string]string{
		"raw url":    base64.RawURLEncoding.EncodeToString(payload),
		"padded url": base64.URLEncoding.EncodeToString(payload),
		"std padded": base64.StdEncoding.EncodeToString(payload),
		"std raw":    base64.RawStdEncoding.EncodeToString(payload),
	}
	for name, seg := range cases {
		t.Run(name, func(t *testing.T) {
			claims := DecodeClaims("h." + seg + ".s")
			require.NotNil(t, claims)
			assert.Equal(t, "??>>", claims["username"])
		})
	}
}

func TestDecodeClaims_TwoSegmentsAreEnough(t *testing.T) {
	seg := base64.RawURLEncoding.EncodeToString([]byte(`{"sub":"7"}`))
	claims := DecodeClaims("header." + seg)
	require.NotNil(t, claims)
	assert.Equal(t, "7", claims["sub"])
}

func TestDecodeClaims_Invalid(t *testing.T) {
	notJSON := base64.RawURLEncoding.EncodeToString([]byte("not json"))
	array := base64.RawURLEncoding.EncodeToString([]byte(`[1,2]`))

	for name, tok := range map[string]string{
		"empty":          "",
		"single segment": "opaque-token",
		"bad base64":     "a.!!!.c",
		"not json":       "a." + notJSON + ".c",
		"json array":     "a." + array + ".c",
		"empty payload":  "a..c",
	} {
		t.Run(name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				assert.Nil(t, DecodeClaims(tok))
			})
		})
	}
}

func TestHydrate(t *testing.T) {
	tok := signedToken(t, jwt.MapClaims{"sub": "42", "username": "alice"})

	tests := []struct {
		name string
		in   Session
		want Session
	}{
		{
			name: "fills missing username and id",
			in:   Session{AccessToken: tok},
			want: Session{AccessToken: tok, UserID: 42, Username: "alice"},
		},
		{
			name: "whitespace username is treated as empty",
			in:   Session{AccessToken: tok, Username: "   ", UserID: 1},
			want: Session{AccessToken: tok, Username: "alice", UserID: 1},
		},
		{
			name: "never overwrites known fields",
			in:   Session{AccessToken: tok, Username: "bob", UserID: 7},
			want: Session{AccessToken: tok, Username: "bob", UserID: 7},
		},
		{
			name: "empty access token is returned unchanged",
			in:   Session{Username: ""},
			want: Session{Username: ""},
		},
		{
			name: "undecodable token is returned unchanged",
			in:   Session{AccessToken: "opaque"},
			want: Session{AccessToken: "opaque"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Hydrate(tt.in))
		})
	}
}

func TestHydrate_IgnoresNonStringOrNonNumericClaims(t *testing.T) {
	numericSub := signedToken(t, jwt.MapClaims{"sub": 42, "username": 5})
	got := Hydrate(Session{AccessToken: numericSub})
	assert.Zero(t, got.UserID)
	assert.Empty(t, got.Username)

	wordSub := signedToken(t, jwt.MapClaims{"sub": "alice"})
	got = Hydrate(Session{AccessToken: wordSub})
	assert.Zero(t, got.UserID)
}
