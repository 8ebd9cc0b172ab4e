package validator

import (
	"crypto/rsa"
	"fmt"

	"github.com/lestrrat-go/jwx/v3/jwa"
	"github.com/lestrrat-go/jwx/v3/jwe"
)

// encryptionAlgorithms is the key encryption allow-list.
var encryptionAlgorithms = map[KeyEncryptionAlgorithm]jwa.KeyEncryptionAlgorithm{
	RSAOAEP: jwa.RSA_OAEP(),
}

// Decrypt recovers the signed token wrapped by an encrypted token.
//
// A *SignedToken is returned unchanged and privateKey is ignored. For an
// *EncryptedToken the alg header must be RSA-OAEP and privateKey must be an
// RSA private key (*rsa.PrivateKey or a jwk.Key holding one). The decrypted
// payload must itself be a compact signed JWT; the type guard is not
// applied to it. The returned token keeps the encrypted token as its Raw
// value.
func (v *Validator) Decrypt(token ParsedToken, privateKey any) (*SignedToken, error) {
	if isNil(token) {
		return nil, newError(ErrNoParsedToken, nil, "no parsed signed or encrypted token")
	}

	encrypted, ok := token.(*EncryptedToken)
	if !ok {
		return token.(*SignedToken), nil
	}

	algorithm, ok := encryptionAlgorithms[KeyEncryptionAlgorithm(encrypted.header.Algorithm)]
	if !ok {
		return nil, newError(ErrUnsupportedAlgorithm, nil, "key encryption algorithm %q is not %s", encrypted.header.Algorithm, RSAOAEP)
	}

	key, err := rsaPrivateKey(privateKey)
	if err != nil {
		return nil, newError(ErrDecryption, err, "private key does not match algorithm %s", RSAOAEP)
	}

	plaintext, err := jwe.Decrypt([]byte(encrypted.raw), jwe.WithKey(algorithm, key))
	if err != nil {
		return nil, newError(ErrDecryption, err, "failed to decrypt token")
	}

	signed, err := parseSigned(string(plaintext))
	if err != nil {
		return nil, newError(ErrMalformedToken, err, "decrypted payload is not a signed JWT")
	}
	signed.raw = encrypted.raw

	return signed, nil
}

func rsaPrivateKey(key any) (*rsa.PrivateKey, error) {
	raw, err := exportKey(key)
	if err != nil {
		return nil, err
	}

	privateKey, ok := raw.(*rsa.PrivateKey)
	if !ok || privateKey == nil {
		return nil, fmt.Errorf("expected *rsa.PrivateKey, got %T", raw)
	}

	return privateKey, nil
}
