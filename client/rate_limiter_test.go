package client

import (
	"bytes"
	"io"
	"sync"
	"testing"
	"time"
)

func TestSetGlobalTransferRateLimit_ZeroAndNegative(t *testing.T) {
	tests := []struct {
		name  string
		limit int64
	}{
		{"zero limit", 0},
		{"negative limit", -100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			SetGlobalTransferRateLimit(tt.limit)

			rateLimiterMu.RLock()
			isNil := globalTransferRateLimiter == nil
			rateLimiterMu.RUnlock()

			if !isNil {
				t.Errorf("SetGlobalTransferRateLimit(%d) should remove the limiter", tt.limit)
			}
		})
	}
}

func TestSetGlobalTransferRateLimit_Positive(t *testing.T) {
	SetGlobalTransferRateLimit(0)
	SetGlobalTransferRateLimit(1024 * 1024)

	rateLimiterMu.RLock()
	limiter := globalTransferRateLimiter
	rateLimiterMu.RUnlock()

	if limiter == nil {
		t.Fatal("SetGlobalTransferRateLimit should create a limiter")
	}
	if limiter.rate != 1024*1024 {
		t.Errorf("rate = %d, want %d", limiter.rate, 1024*1024)
	}
}

func TestSetGlobalTransferRateLimit_UpdateCapsTokens(t *testing.T) {
	SetGlobalTransferRateLimit(1000)

	rateLimiterMu.RLock()
	limiter := globalTransferRateLimiter
	rateLimiterMu.RUnlock()
	if limiter == nil {
		t.Fatal("Limiter should not be nil")
	}

	limiter.mu.Lock()
	limiter.tokens = 100000
	limiter.mu.Unlock()

	SetGlobalTransferRateLimit(500)

	limiter.mu.Lock()
	tokens := limiter.tokens
	rate := limiter.rate
	limiter.mu.Unlock()

	if rate != 500 {
		t.Errorf("Updated rate = %d, want 500", rate)
	}
	if tokens > 500 {
		t.Errorf("Tokens = %f, should be capped at 500", tokens)
	}
}

func TestWrapWithGlobalRateLimiter_NoLimitPassesThrough(t *testing.T) {
	SetGlobalTransferRateLimit(0)

	reader := bytes.NewReader([]byte("statement bytes"))
	wrapped := wrapWithGlobalRateLimiter(reader)

	if wrapped != io.Reader(reader) {
		t.Error("Without a limit the reader should be returned unwrapped")
	}
}

func TestLimitedReader_LargeBufferCapped(t *testing.T) {
	data := make([]byte, 10000)
	reader := bytes.NewReader(data)

	limiter := &RateLimiter{rate: 100, tokens: 50, last: time.Now()}
	lr := &limitedReader{under: reader, lim: limiter}

	buf := make([]byte, 1000)
	n, err := lr.Read(buf)

	if err != nil && err != io.EOF {
		t.Errorf("Read failed: %v", err)
	}
	if n > 100 {
		t.Errorf("Read %d bytes, should be capped by the rate limit", n)
	}
}

func TestLimitedReader_TokensDeducted(t *testing.T) {
	data := []byte("booked transactions for August")
	reader := bytes.NewReader(data)

	limiter := &RateLimiter{rate: 1000, tokens: 1000, last: time.Now()}
	lr := &limitedReader{under: reader, lim: limiter}

	initialTokens := limiter.tokens

	buf := make([]byte, 10)
	n, _ := lr.Read(buf)

	limiter.mu.Lock()
	finalTokens := limiter.tokens
	limiter.mu.Unlock()

	if initialTokens-finalTokens != float64(n) {
		t.Errorf("Token deduction = %f, want %f", initialTokens-finalTokens, float64(n))
	}
}

func TestLimitedReader_RefillAfterIdle(t *testing.T) {
	data := make([]byte, 1000)
	reader := bytes.NewReader(data)

	limiter := &RateLimiter{
		rate:   10000,
		tokens: 0,
		last:   time.Now().Add(-2 * time.Second),
	}
	lr := &limitedReader{under: reader, lim: limiter}

	done := make(chan struct{})
	var n int
	var err error
	go func() {
		buf := make([]byte, 100)
		n, err = lr.Read(buf)
		close(done)
	}()

	select {
	case <-done:
		if err != nil && err != io.EOF {
			t.Errorf("Read failed: %v", err)
		}
		if n == 0 {
			t.Error("Should have read some bytes after token refill")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Test timed out - possible infinite loop in rate limiter")
	}
}

func TestLimitedReader_ConcurrentReads(t *testing.T) {
	data := make([]byte, 10000)
	limiter := &RateLimiter{rate: 1000000, tokens: 1000000, last: time.Now()}

	var wg sync.WaitGroup
	errors := make(chan error, 10)

	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			lr := &limitedReader{under: bytes.NewReader(data), lim: limiter}

			buf := make([]byte, 100)
			_, err := lr.Read(buf)
			if err != nil && err != io.EOF {
				errors <- err
			}
		}()
	}

	wg.Wait()
	close(errors)

	for err := range errors {
		t.Errorf("Concurrent read error: %v", err)
	}
}
