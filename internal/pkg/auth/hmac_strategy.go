package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"strconv"
	"strings"
	"time"
)

var ErrInvalidToken = errors.New("invalid auth token")

const tokenVersion = "v1"

// HMACStrategy signs account tokens of the form v1.<account>.<expires>.<signature>.
type HMACStrategy struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewHMACStrategy builds HMACStrategy with provided secret and options.
func NewHMACStrategy(secret string, opts Options) *HMACStrategy {
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &HMACStrategy{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// IssueToken generates a signed token for the account.
func (s *HMACStrategy) IssueToken(accountID int64) (string, error) {
	expires := s.now().Add(s.ttl).Unix()
	payload := tokenVersion + "." + strconv.FormatInt(accountID, 10) + "." + strconv.FormatInt(expires, 10)
	return payload + "." + s.sign(payload), nil
}

// ParseToken validates token and returns the encoded account id.
func (s *HMACStrategy) ParseToken(token string) (int64, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 4 || parts[0] != tokenVersion {
		return 0, ErrInvalidToken
	}

	payload := strings.Join(parts[:3], ".")
	if !hmac.Equal([]byte(s.sign(payload)), []byte(parts[3])) {
		return 0, ErrInvalidToken
	}

	accountID, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil || accountID <= 0 {
		return 0, ErrInvalidToken
	}

	expires, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil {
		return 0, ErrInvalidToken
	}

	if time.Unix(expires, 0).Before(s.now()) {
		return 0, ErrInvalidToken
	}

	return accountID, nil
}

func (s *HMACStrategy) Name() string {
	return "hmac"
}

func (s *HMACStrategy) sign(payload string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(payload))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
