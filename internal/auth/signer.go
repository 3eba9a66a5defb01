package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"strconv"
	"time"

	"github.com/heartmarshall/inbox-triage/internal/domain"
)

// ActionSigner issues and verifies time-boxed action tokens. A token binds
// a task id, a target status, and an absolute expiry, so a link embedded in
// an email can authorize exactly one state change for a bounded window
// without any server-side session state.
type ActionSigner struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewActionSigner creates a signer. secret must be non-empty; the config
// layer enforces a minimum length before construction.
func NewActionSigner(secret string, ttl time.Duration) *ActionSigner {
	return &ActionSigner{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// TTL returns the configured validity window for issued tokens.
func (s *ActionSigner) TTL() time.Duration { return s.ttl }

// Issue computes the expiry for a token issued now and its signature.
// The expiry is absolute epoch milliseconds.
func (s *ActionSigner) Issue(taskID string, status domain.Status) (expiresAt int64, sig string) {
	expiresAt = s.now().Add(s.ttl).UnixMilli()
	return expiresAt, s.Sign(taskID, status, expiresAt)
}

// Sign computes the lowercase hex HMAC-SHA256 over "taskID|status|expiresAt".
func (s *ActionSigner) Sign(taskID string, status domain.Status, expiresAt int64) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(taskID))
	mac.Write([]byte("|"))
	mac.Write([]byte(status))
	mac.Write([]byte("|"))
	mac.Write([]byte(strconv.FormatInt(expiresAt, 10)))
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify checks a candidate token. Expired tokens and tampered fields fail
// with distinguishable sentinel errors so the caller can tell a stale link
// from a forged one. The signature comparison is constant time for inputs
// of equal length; a length mismatch fails immediately.
func (s *ActionSigner) Verify(taskID string, status domain.Status, expiresAt int64, sig string) error {
	if taskID == "" || sig == "" {
		return domain.ErrSignatureInvalid
	}
	if s.now().UnixMilli() > expiresAt {
		return domain.ErrLinkExpired
	}
	expected := s.Sign(taskID, status, expiresAt)
	if len(sig) != len(expected) {
		return domain.ErrSignatureInvalid
	}
	if subtle.ConstantTimeCompare([]byte(sig), []byte(expected)) != 1 {
		return domain.ErrSignatureInvalid
	}
	return nil
}
