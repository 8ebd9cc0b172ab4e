package validator

// Header holds the JOSE header fields the verifier reads.
// It is read-only after parsing.
type Header struct {
	Algorithm   string `json:"alg"`
	Type        string `json:"typ,omitempty"`
	ContentType string `json:"cty,omitempty"`
	KeyID       string `json:"kid,omitempty"`
	Encryption  string `json:"enc,omitempty"` // JWE only.
}

// ParsedToken is the result of Parse. It is either a *SignedToken or an
// *EncryptedToken; no other implementations exist.
type ParsedToken interface {
	// Header returns the token's JOSE header.
	Header() Header

	// Raw returns the compact string the token was parsed from.
	Raw() string

	parsedToken()
}

// SignedToken is a parsed JWS compact token.
type SignedToken struct {
	header       Header
	raw          string
	compact      []byte
	payload      []byte
	signingInput []byte
	signature    []byte
}

// Header returns the JWS protected header.
func (t *SignedToken) Header() Header { return t.header }

// Raw returns the bearer token this token came from. For a token recovered
// by decryption this is the outer encrypted token.
func (t *SignedToken) Raw() string { return t.raw }

// Payload returns the decoded, unverified payload bytes.
func (t *SignedToken) Payload() []byte { return t.payload }

// SigningInput returns the "<header>.<payload>" bytes the signature covers.
func (t *SignedToken) SigningInput() []byte { return t.signingInput }

func (*SignedToken) parsedToken() {}

// EncryptedToken is a parsed JWE compact token.
type EncryptedToken struct {
	header       Header
	raw          string
	encryptedKey []byte
	iv           []byte
	ciphertext   []byte
	tag          []byte
}

// Header returns the JWE protected header.
func (t *EncryptedToken) Header() Header { return t.header }

// Raw returns the compact string the token was parsed from.
func (t *EncryptedToken) Raw() string { return t.raw }

func (*EncryptedToken) parsedToken() {}
