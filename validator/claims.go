package validator

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"math"
	"sort"
	"strings"
	"time"
)

// Claim names used by the verifier.
const (
	ClaimIssuer            = "iss"
	ClaimSubject           = "sub"
	ClaimExpiry            = "exp"
	ClaimIssuedAt          = "iat"
	ClaimJWTID             = "jti"
	ClaimUPN               = "upn"
	ClaimPreferredUsername = "preferred_username"
	ClaimGroups            = "groups"
	ClaimAudience          = "aud"

	// ClaimRawToken is the reserved claim holding the original bearer token.
	ClaimRawToken = "raw_token"
)

// requiredClaims must be present after namespace normalization.
var requiredClaims = []string{ClaimIssuer, ClaimSubject, ClaimExpiry, ClaimIssuedAt, ClaimJWTID}

// principalClaims are tried in order to resolve the caller principal name.
var principalClaims = []string{ClaimUPN, ClaimPreferredUsername, ClaimSubject}

// ClaimMap holds decoded token claims. Values are strings, json.Number,
// bools, []any, map[string]any or nil, as produced by encoding/json with
// UseNumber.
type ClaimMap map[string]any

// VerifiedIdentity is the result of a successful verification.
type VerifiedIdentity struct {
	// PrincipalName is the caller principal: upn, else preferred_username,
	// else sub.
	PrincipalName string

	// Claims holds every token claim after namespace normalization plus
	// the raw_token claim.
	Claims ClaimMap
}

// Claim returns the named claim.
func (id *VerifiedIdentity) Claim(name string) (any, bool) {
	value, ok := id.Claims[name]
	return value, ok
}

// Issuer returns the iss claim.
func (id *VerifiedIdentity) Issuer() string { return id.Claims.stringClaim(ClaimIssuer) }

// Subject returns the sub claim.
func (id *VerifiedIdentity) Subject() string { return id.Claims.stringClaim(ClaimSubject) }

// TokenID returns the jti claim.
func (id *VerifiedIdentity) TokenID() string { return id.Claims.stringClaim(ClaimJWTID) }

// RawToken returns the bearer token the identity was verified from.
func (id *VerifiedIdentity) RawToken() string { return id.Claims.stringClaim(ClaimRawToken) }

// ExpiresAt returns the exp claim as a time.
func (id *VerifiedIdentity) ExpiresAt() time.Time { return id.Claims.timeClaim(ClaimExpiry) }

// IssuedAt returns the iat claim as a time.
func (id *VerifiedIdentity) IssuedAt() time.Time { return id.Claims.timeClaim(ClaimIssuedAt) }

// Groups returns the string members of the groups claim.
func (id *VerifiedIdentity) Groups() []string { return id.Claims.stringsClaim(ClaimGroups) }

// Audience returns the aud claim, which may be a single string or an array.
func (id *VerifiedIdentity) Audience() []string { return id.Claims.stringsClaim(ClaimAudience) }

// decodeClaims decodes the payload into a fresh ClaimMap. The payload must
// be a single JSON object.
func decodeClaims(payload []byte) (ClaimMap, error) {
	dec := json.NewDecoder(bytes.NewReader(payload))
	dec.UseNumber()

	var claims ClaimMap
	if err := dec.Decode(&claims); err != nil {
		return nil, newError(ErrMalformedToken, err, "failed to decode token claims")
	}
	if claims == nil {
		return nil, newError(ErrMalformedToken, nil, "token claims are not a JSON object")
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, newError(ErrMalformedToken, err, "unexpected data after token claims")
	}

	return claims, nil
}

// normalizeNamespace strips namespace from every claim name that starts with
// it and returns a new map. Claims without the prefix keep their names.
//
// Go map iteration is unordered, so two claims ending up with the same name
// are never resolved by iteration order: they are rejected, or with
// NamespaceCollisionPreferNamespaced the namespaced claim wins (between two
// namespaced claims, the lexically smaller original name).
func normalizeNamespace(claims ClaimMap, namespace string, policy NamespaceCollisionPolicy) (ClaimMap, error) {
	normalized := make(ClaimMap, len(claims))
	sources := make(map[string]string, len(claims))

	for name, value := range claims {
		target := strings.TrimPrefix(name, namespace)

		if previous, taken := sources[target]; taken {
			if policy == NamespaceCollisionReject {
				first, second := previous, name
				if second < first {
					first, second = second, first
				}
				return nil, newError(ErrMalformedToken, nil, "claims %q and %q both normalize to %q", first, second, target)
			}
			if !preferSource(name, previous, target) {
				continue
			}
		}

		sources[target] = name
		normalized[target] = value
	}

	return normalized, nil
}

// preferSource reports whether candidate should replace current as the source
// of the claim named target.
func preferSource(candidate, current, target string) bool {
	candidateNamespaced := candidate != target
	currentNamespaced := current != target
	if candidateNamespaced != currentNamespaced {
		return candidateNamespaced
	}
	return candidate < current
}

// missing returns the names absent from the map, in the order given.
// A claim set to JSON null counts as absent, which is stricter than a plain
// key presence check: {"jti": null} fails with ErrMissingClaims.
func (c ClaimMap) missing(names []string) []string {
	var absent []string
	for _, name := range names {
		if value, ok := c[name]; !ok || value == nil {
			absent = append(absent, name)
		}
	}
	return absent
}

// callerPrincipal returns the first principal candidate holding a string.
func (c ClaimMap) callerPrincipal() (string, bool) {
	for _, name := range principalClaims {
		if principal, ok := c[name].(string); ok {
			return principal, true
		}
	}
	return "", false
}

func (c ClaimMap) checkIssuer(expected string) error {
	issuer, ok := c[ClaimIssuer].(string)
	if !ok {
		return newError(ErrIssuerMismatch, nil, "iss claim is not a string")
	}

	if issuer != expected {
		return newError(ErrIssuerMismatch, nil, "iss claim %q does not match expected issuer %q", issuer, expected)
	}

	return nil
}

// checkNotExpired requires both the current time and the issue time to be
// strictly before the expiry time. An iat in the future is not rejected.
func (c ClaimMap) checkNotExpired(now time.Time) error {
	expiry, ok := numericDate(c[ClaimExpiry])
	if !ok {
		return newError(ErrMalformedToken, nil, "exp claim is not a numeric date")
	}

	issuedAt, ok := numericDate(c[ClaimIssuedAt])
	if !ok {
		return newError(ErrMalformedToken, nil, "iat claim is not a numeric date")
	}

	currentTime := now.Unix()
	if currentTime >= expiry {
		return newError(ErrExpiredToken, nil, "token expired at %d, current time is %d", expiry, currentTime)
	}
	if issuedAt >= expiry {
		return newError(ErrExpiredToken, nil, "token issued at %d, not before its expiry %d", issuedAt, expiry)
	}

	return nil
}

// numericDate converts a claim value to epoch seconds, truncating any
// fractional part.
func numericDate(value any) (int64, bool) {
	switch n := value.(type) {
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i, true
		}
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return floatSeconds(f)
	case float64:
		return floatSeconds(n)
	case int64:
		return n, true
	case int:
		return int64(n), true
	default:
		return 0, false
	}
}

func floatSeconds(f float64) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f >= math.MaxInt64 || f <= math.MinInt64 {
		return 0, false
	}
	return int64(f), true
}

func (c ClaimMap) stringClaim(name string) string {
	s, _ := c[name].(string)
	return s
}

func (c ClaimMap) timeClaim(name string) time.Time {
	seconds, ok := numericDate(c[name])
	if !ok {
		return time.Time{}
	}
	return time.Unix(seconds, 0)
}

func (c ClaimMap) stringsClaim(name string) []string {
	switch v := c[name].(type) {
	case string:
		return []string{v}
	case []any:
		values := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				values = append(values, s)
			}
		}
		return values
	case []string:
		return append([]string(nil), v...)
	default:
		return nil
	}
}

func supportedSignatureAlgorithms() []SignatureAlgorithm {
	algs := make([]SignatureAlgorithm, 0, len(signatureAlgorithms))
	for alg := range signatureAlgorithms {
		algs = append(algs, alg)
	}
	sort.Slice(algs, func(i, j int) bool { return algs[i] < algs[j] })
	return algs
}
