/*
Package validator verifies MicroProfile JWT (MP-JWT) bearer tokens using the
lestrrat-go/jwx v3 library.

Verification is split in two steps. Parse classifies a compact token as a
signed JWT (JWS, three segments) or an encrypted JWT (JWE, five segments)
without checking any signature, so the caller can read the kid header and
pick a key. Verify then checks the signed token's content and signature and
returns the caller's identity. VerifyEncrypted decrypts an encrypted token
with an RSA private key before running the same checks on the inner token.

# Supported Algorithms

Signatures:
  - RS256 (RSASSA-PKCS1-v1_5 using SHA-256)
  - ES256 (ECDSA using P-256 and SHA-256)

Key encryption:
  - RSA-OAEP

Every other algorithm, including "none", is rejected with
ErrUnsupportedAlgorithm.

# Checks

Verify applies these checks in order and stops at the first failure:

 1. the signature algorithm is RS256 or ES256
 2. the payload is a JSON object
 3. namespaced claim names are normalized, if enabled
 4. iss, sub, exp, iat and jti are present
 5. one of upn, preferred_username or sub is a string
 6. iss equals the expected issuer exactly
 7. the current time and iat are both before exp
 8. the signature verifies with the given public key

# Basic Usage

	v, err := validator.New()
	if err != nil {
	    log.Fatal(err)
	}

	parsed, err := v.Parse(bearerToken)
	if err != nil {
	    return err
	}

	kid, _ := v.KeyID(parsed)
	identity, err := v.VerifyEncrypted(parsed, "https://idp.example.com", publicKeys[kid], decryptionKey)
	if err != nil {
	    return err
	}

	log.Printf("caller %s in groups %v", identity.PrincipalName, identity.Groups())

# Namespaced Claims

Some identity providers only emit custom claims under a URI prefix. With
WithNamespacedClaims(true) the prefix (DefaultNamespace, or the value of
WithCustomNamespace) is stripped from every claim name before validation:

	v, err := validator.New(
	    validator.WithNamespacedClaims(true),
	    validator.WithCustomNamespace("https://claims.example.com/"),
	)

If stripping makes two claims share a name, the token is rejected. Use
WithNamespaceCollisionPolicy(NamespaceCollisionPreferNamespaced) to keep the
namespaced value instead.

# Error Handling

Every verification failure is a *ValidationError. It matches
ErrInvalidToken and exactly one specific sentinel with errors.Is, and its
Code field carries a stable machine-readable code:

	identity, err := v.Verify(parsed, issuer, key)
	if errors.Is(err, validator.ErrExpiredToken) {
	    // ask the client to refresh
	}

# Thread Safety

A Validator is immutable once New returns and safe for concurrent use. Parse
returns a new ParsedToken for each call and keeps no state between calls.
*/
package validator
