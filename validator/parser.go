package validator

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// expectedType is the only accepted typ (signed) and cty (encrypted) value.
const expectedType = "JWT"

// Parse splits and decodes a compact-serialized token.
//
// The token is first parsed as a signed JWT (header.payload.signature).
// Only if that fails structurally is it parsed as an encrypted JWT
// (header.key.iv.ciphertext.tag). If both fail, ErrMalformedToken is
// returned. Once either form parses, the type guard runs against its
// header and an ErrInvalidType failure is final.
//
// Parse does not verify anything cryptographically; the result is handed to
// KeyID, Decrypt, Verify or VerifyEncrypted.
func (v *Validator) Parse(token string) (ParsedToken, error) {
	if err := validateTokenFormat(token, v.maxTokenSize); err != nil {
		return nil, err
	}

	signed, signedErr := parseSigned(token)
	if signedErr == nil {
		if !v.checkIsJWT(signed.header.Type) {
			return nil, newError(ErrInvalidType, nil, "signed token typ header is %q, expected %q", signed.header.Type, expectedType)
		}
		return signed, nil
	}

	encrypted, encryptedErr := parseEncrypted(token)
	if encryptedErr == nil {
		if !v.checkIsJWT(encrypted.header.ContentType) {
			return nil, newError(ErrInvalidType, nil, "encrypted token cty header is %q, expected %q", encrypted.header.ContentType, expectedType)
		}
		return encrypted, nil
	}

	return nil, newError(
		ErrMalformedToken,
		errors.Join(signedErr, encryptedErr),
		"token is neither a signed nor an encrypted JWT",
	)
}

func (v *Validator) checkIsJWT(declared string) bool {
	return v.typeVerificationDisabled || declared == expectedType
}

// parseSigned parses the JWS compact form.
func parseSigned(token string) (*SignedToken, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return nil, fmt.Errorf("signed form: expected 3 parts, got %d", len(parts))
	}

	header, err := decodeHeader(parts[0])
	if err != nil {
		return nil, fmt.Errorf("signed form: %w", err)
	}
	if header.Algorithm == "" {
		return nil, errors.New("signed form: header missing alg")
	}
	if header.Encryption != "" {
		return nil, errors.New("signed form: header declares enc")
	}

	payload, err := decodeSegment(parts[1])
	if err != nil {
		return nil, fmt.Errorf("signed form: failed to decode payload: %w", err)
	}

	signature, err := decodeSegment(parts[2])
	if err != nil {
		return nil, fmt.Errorf("signed form: failed to decode signature: %w", err)
	}

	return &SignedToken{
		header:       header,
		raw:          token,
		compact:      []byte(token),
		payload:      payload,
		signingInput: []byte(parts[0] + "." + parts[1]),
		signature:    signature,
	}, nil
}

// parseEncrypted parses the JWE compact form.
func parseEncrypted(token string) (*EncryptedToken, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 5 {
		return nil, fmt.Errorf("encrypted form: expected 5 parts, got %d", len(parts))
	}

	header, err := decodeHeader(parts[0])
	if err != nil {
		return nil, fmt.Errorf("encrypted form: %w", err)
	}
	if header.Algorithm == "" {
		return nil, errors.New("encrypted form: header missing alg")
	}
	if header.Encryption == "" {
		return nil, errors.New("encrypted form: header missing enc")
	}

	names := [...]string{"encrypted key", "iv", "ciphertext", "tag"}
	segments := make([][]byte, len(names))
	for i, name := range names {
		segments[i], err = decodeSegment(parts[i+1])
		if err != nil {
			return nil, fmt.Errorf("encrypted form: failed to decode %s: %w", name, err)
		}
		// Only the encrypted key may be empty (direct key agreement).
		if i > 0 && len(segments[i]) == 0 {
			return nil, fmt.Errorf("encrypted form: %s is empty", name)
		}
	}

	return &EncryptedToken{
		header:       header,
		raw:          token,
		encryptedKey: segments[0],
		iv:           segments[1],
		ciphertext:   segments[2],
		tag:          segments[3],
	}, nil
}

func decodeHeader(segment string) (Header, error) {
	headerJSON, err := decodeSegment(segment)
	if err != nil {
		return Header{}, fmt.Errorf("failed to decode header: %w", err)
	}

	var header Header
	if err := json.Unmarshal(headerJSON, &header); err != nil {
		return Header{}, fmt.Errorf("failed to unmarshal header: %w", err)
	}

	return header, nil
}

// decodeSegment decodes base64url, tolerating trailing padding.
func decodeSegment(segment string) ([]byte, error) {
	return base64.RawURLEncoding.DecodeString(strings.TrimRight(segment, "="))
}
