/*
Package jwks resolves MP-JWT verification and decryption keys from JSON Web
Key Sets.

A Provider holds a public key set and, optionally, a private key set. It
implements core.KeyResolver: the Core asks it for the key named by a token's
kid header and receives a raw crypto key (*rsa.PublicKey, *ecdsa.PublicKey,
*rsa.PrivateKey) ready for the validator.

# Lookup Rules

  - a non-empty kid must match the kid of a key in the set
  - an empty kid resolves only when the set holds exactly one key
  - a private key found in the public set is reduced to its public half
  - every miss returns an error matching ErrKeyNotFound and core.ErrKeyNotFound

# Loading Keys

ParseSet accepts a JWKS document, a single JWK or PEM-encoded keys:

	publicSet, err := jwks.ParseSet(publicKeyBytes)
	if err != nil {
	    log.Fatal(err)
	}
	privateSet, err := jwks.ParseSet(decryptKeyPEM)
	if err != nil {
	    log.Fatal(err)
	}

	provider, err := jwks.NewProvider(
	    jwks.WithPublicKeys(publicSet),
	    jwks.WithPrivateKeys(privateSet),
	)
	if err != nil {
	    log.Fatal(err)
	}

Keys are not fetched over the network or refreshed. Build a new Provider to
rotate keys.
*/
package jwks
