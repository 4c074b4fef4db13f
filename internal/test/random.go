package test

import (
	"math/rand"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/mailmart/internal/domain/model"
)

const asciiLetters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

var (
	rngMu sync.Mutex
	rng   = rand.New(rand.NewSource(time.Now().UnixNano()))
)

// RandomASCIIString returns a string of letters and digits with a length in [minLen, maxLen].
func RandomASCIIString(minLen, maxLen int) string {
	if minLen <= 0 {
		minLen = 1
	}
	if maxLen < minLen {
		maxLen = minLen
	}
	length := minLen + RandomIntn(maxLen-minLen+1)
	buf := make([]byte, length)
	for i := range buf {
		buf[i] = asciiLetters[RandomIntn(len(asciiLetters))]
	}
	return string(buf)
}

// RandomPayload returns a complete submission payload.
func RandomPayload() model.Payload {
	local := RandomASCIIString(4, 12)
	return model.Payload{
		Identifier: local + "@example.com",
		Secret:     RandomASCIIString(8, 16),
		Recovery:   local + ".backup@example.com",
	}
}

// RandomAmount returns a positive amount with cent precision, at most maxCents cents.
func RandomAmount(maxCents int) decimal.Decimal {
	if maxCents < 1 {
		maxCents = 1
	}
	return decimal.New(int64(1+RandomIntn(maxCents)), -2)
}

// RandomIntn is a goroutine-safe rand.Intn.
func RandomIntn(n int) int {
	rngMu.Lock()
	defer rngMu.Unlock()
	return rng.Intn(n)
}
