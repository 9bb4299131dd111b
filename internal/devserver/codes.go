package devserver

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/dverenev/priceadmin/internal/common"
	"golang.org/x/crypto/bcrypt"
)

const defaultCodeTTL = 10 * time.Minute

// pendingCode is a hashed one-time verification code. The plaintext exists
// only in the issuing log line.
type pendingCode struct {
	hash      []byte
	expiresAt time.Time
}

// codeIssuer issues and redeems one-time login codes, one pending code per
// email. Codes are single-use and stored bcrypt-hashed.
type codeIssuer struct {
	ttl time.Duration

	mu      sync.Mutex
	pending map[string]pendingCode
	now     func() time.Time
}

func newCodeIssuer(ttl time.Duration) *codeIssuer {
	if ttl <= 0 {
		ttl = defaultCodeTTL
	}
	return &codeIssuer{
		ttl:     ttl,
		pending: make(map[string]pendingCode),
		now:     time.Now,
	}
}

// issue generates a six-digit code for email and returns the plaintext so the
// caller can deliver it. A newly issued code replaces any earlier one.
func (c *codeIssuer) issue(email string) (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	code := fmt.Sprintf("%06d", n.Int64())

	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending[email] = pendingCode{hash: hash, expiresAt: c.now().Add(c.ttl)}
	return code, nil
}

// redeem consumes the pending code for email. A wrong code does not consume
// the pending entry, so the user can retry until it expires.
func (c *codeIssuer) redeem(email, code string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	p, ok := c.pending[email]
	if !ok {
		return common.ErrNoPendingCode
	}
	if c.now().After(p.expiresAt) {
		delete(c.pending, email)
		return common.ErrCodeExpired
	}
	if bcrypt.CompareHashAndPassword(p.hash, []byte(code)) != nil {
		return common.ErrInvalidCode
	}
	delete(c.pending, email)
	return nil
}
