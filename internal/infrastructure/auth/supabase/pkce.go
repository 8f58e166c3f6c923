package supabase

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
)

// codeChallengeMethod is the only method GoTrue accepts besides plain
const codeChallengeMethod = "s256"

// generatePKCEParams returns a random code_verifier and its S256 code_challenge.
func generatePKCEParams() (codeVerifier, codeChallenge string, err error) {
	verifierBytes := make([]byte, 32)
	if _, err := rand.Read(verifierBytes); err != nil {
		return "", "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	codeVerifier = base64.RawURLEncoding.EncodeToString(verifierBytes)
	codeChallenge = challengeFor(codeVerifier)
	return codeVerifier, codeChallenge, nil
}

func challengeFor(codeVerifier string) string {
	hash := sha256.Sum256([]byte(codeVerifier))
	return base64.RawURLEncoding.EncodeToString(hash[:])
}
