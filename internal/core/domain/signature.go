package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"

	"go.trai.ch/zerr"
)

// SignatureSeparator terminates every per-artifact digest in a signature.
const SignatureSeparator = "+"

// ComputeSignature folds an ordered list of artifacts into a signature.
// Each artifact contributes hex(sha256(json(Identify()))) followed by SignatureSeparator.
// The result is order-sensitive: swapping two sources changes the signature.
func ComputeSignature(sources []Artifact) (string, error) {
	var b strings.Builder
	b.Grow(len(sources) * (sha256.Size*2 + len(SignatureSeparator)))

	for _, src := range sources {
		digest, err := Digest(src)
		if err != nil {
			return "", err
		}
		b.WriteString(digest)
		b.WriteString(SignatureSeparator)
	}

	return b.String(), nil
}

// Digest returns the hex SHA-256 of a single artifact's JSON-encoded identity.
func Digest(a Artifact) (string, error) {
	if !a.Exists() {
		return "", zerr.With(zerr.Wrap(ErrMissingArtifact, a.Display()), "artifact", a.Display())
	}

	payload, err := json.Marshal(a.Identify())
	if err != nil {
		return "", zerr.Wrap(err, "failed to encode artifact identity")
	}

	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:]), nil
}
