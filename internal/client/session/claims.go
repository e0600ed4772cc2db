package session

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

var segmentParser = jwt.NewParser(jwt.WithPaddingAllowed())

// DecodeClaims returns the JSON object carried in the second dot-delimited
// segment of token, or nil when it cannot be decoded. The signature is not
// checked: claims are a local convenience only.
func DecodeClaims(token string) jwt.MapClaims {
	parts := strings.Split(token, ".")
	if len(parts) < 2 {
		return nil
	}

	seg := strings.NewReplacer("+", "-", "/", "_").Replace(parts[1])
	raw, err := segmentParser.DecodeSegment(seg)
	if err != nil {
		return nil
	}

	var claims jwt.MapClaims
	if err := json.Unmarshal(raw, &claims); err != nil {
		return nil
	}
	return claims
}

// Hydrate fills identity gaps in s from its access token claims. Fields that
// are already set are never overwritten.
func Hydrate(s Session) Session {
	if s.AccessToken == "" {
		return s
	}

	claims := DecodeClaims(s.AccessToken)
	if claims == nil {
		return s
	}

	if name, ok := claims["username"].(string); ok && strings.TrimSpace(s.Username) == "" {
		s.Username = name
	}

	if s.UserID == 0 {
		if sub, ok := claims["sub"].(string); ok {
			if id, err := strconv.ParseInt(strings.TrimSpace(sub), 10, 64); err == nil {
				s.UserID = id
			}
		}
	}
	return s
}
