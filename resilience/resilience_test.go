package resilience

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

var errTransient = errors.New("transient")

func fastRetry(attempts int) RetryConfig {
	return RetryConfig{
		MaxAttempts:    attempts,
		InitialBackoff: time.Millisecond,
		MaxBackoff:     2 * time.Millisecond,
		BackoffFactor:  2,
	}
}

func TestRetry_SucceedsAfterTransientFailures(t *testing.T) {
	var calls int
	got, err := Retry(context.Background(), fastRetry(3), func() (string, error) {
		calls++
		if calls < 3 {
			return "", errTransient
		}
		return "sent", nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "sent" || calls != 3 {
		t.Errorf("got %q after %d calls", got, calls)
	}
}

func TestRetry_StopsAtMaxAttempts(t *testing.T) {
	var calls int
	var retries []int
	cfg := fastRetry(4)
	cfg.OnRetry = func(attempt int, _ error, _ time.Duration) { retries = append(retries, attempt) }

	_, err := Retry(context.Background(), cfg, func() (int, error) {
		calls++
		return 0, errTransient
	})
	if !errors.Is(err, errTransient) {
		t.Fatalf("expected last error, got %v", err)
	}
	if calls != 4 {
		t.Errorf("expected 4 calls, got %d", calls)
	}
	if len(retries) != 3 {
		t.Errorf("expected 3 OnRetry callbacks, got %v", retries)
	}
}

func TestRetry_RetryIfRejects(t *testing.T) {
	var calls int
	cfg := fastRetry(5)
	cfg.RetryIf = func(error) bool { return false }
	_, err := Retry(context.Background(), cfg, func() (int, error) {
		calls++
		return 0, errTransient
	})
	if err == nil || calls != 1 {
		t.Errorf("expected a single call, got %d (err=%v)", calls, err)
	}
}

func TestRetry_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Retry(ctx, fastRetry(3), func() (int, error) {
		t.Error("fn should not run on a cancelled context")
		return 0, nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestDefaultRetryIf(t *testing.T) {
	if DefaultRetryIf(context.Canceled) || DefaultRetryIf(ErrCircuitOpen) {
		t.Error("cancellation and open circuits must not be retried")
	}
	if !DefaultRetryIf(errTransient) {
		t.Error("plain errors should be retried")
	}
}

func TestCalculateBackoffCapped(t *testing.T) {
	cfg := RetryConfig{InitialBackoff: time.Second, MaxBackoff: 3 * time.Second, BackoffFactor: 2}
	want := []time.Duration{time.Second, 2 * time.Second, 3 * time.Second, 3 * time.Second}
	for i, w := range want {
		if got := calculateBackoff(i+1, cfg); got != w {
			t.Errorf("attempt %d: expected %v, got %v", i+1, w, got)
		}
	}
}

func TestMailRetryConfig(t *testing.T) {
	cfg := MailRetryConfig()
	if cfg.MaxAttempts != 4 || cfg.RetryIf == nil {
		t.Errorf("unexpected mail retry config %+v", cfg)
	}
}

func TestCircuitBreaker_OpensAndRecovers(t *testing.T) {
	now := time.Unix(0, 0)
	var transitions []string
	cb := NewCircuitBreaker(CircuitBreakerConfig{
		Name:        "resend",
		MaxFailures: 2,
		Timeout:     time.Minute,
		OnStateChange: func(_ string, from, to State) {
			transitions = append(transitions, from.String()+"->"+to.String())
		},
	})
	cb.now = func() time.Time { return now }

	fail := func() error { return errTransient }
	_ = cb.Execute(fail)
	if cb.State() != StateClosed || cb.Failures() != 1 {
		t.Fatalf("expected closed with 1 failure, got %s/%d", cb.State(), cb.Failures())
	}
	_ = cb.Execute(fail)
	if cb.State() != StateOpen {
		t.Fatalf("expected open, got %s", cb.State())
	}

	called := false
	if err := cb.Execute(func() error { called = true; return nil }); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected ErrCircuitOpen, got %v", err)
	}
	if called {
		t.Error("fn must not run while open")
	}

	now = now.Add(time.Minute)
	if cb.State() != StateHalfOpen {
		t.Fatalf("expected half-open after timeout, got %s", cb.State())
	}
	if err := cb.Execute(func() error { return nil }); err != nil {
		t.Fatalf("probe failed: %v", err)
	}
	if cb.State() != StateClosed {
		t.Errorf("expected closed after successful probe, got %s", cb.State())
	}

	want := []string{"closed->open", "open->half-open", "half-open->closed"}
	if len(transitions) != len(want) {
		t.Fatalf("expected transitions %v, got %v", want, transitions)
	}
	for i := range want {
		if transitions[i] != want[i] {
			t.Errorf("transition %d: expected %s, got %s", i, want[i], transitions[i])
		}
	}
}

func TestCircuitBreaker_HalfOpenFailureReopens(t *testing.T) {
	now := time.Unix(0, 0)
	cb := NewCircuitBreaker(CircuitBreakerConfig{MaxFailures: 1, Timeout: time.Second})
	cb.now = func() time.Time { return now }

	_ = cb.Execute(func() error { return errTransient })
	now = now.Add(time.Second)
	_ = cb.Execute(func() error { return errTransient })
	if cb.State() != StateOpen {
		t.Errorf("expected reopen after failed probe, got %s", cb.State())
	}

	cb.Reset()
	if cb.State() != StateClosed || cb.Failures() != 0 {
		t.Errorf("expected reset to closed, got %s/%d", cb.State(), cb.Failures())
	}
}

func TestBulkhead_LimitsConcurrency(t *testing.T) {
	b := NewBulkhead(BulkheadConfig{Name: "export", MaxConcurrent: 2, MaxWait: time.Second})

	var running, peak int32
	var wg sync.WaitGroup
	for range 6 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = b.Execute(context.Background(), func() error {
				n := atomic.AddInt32(&running, 1)
				for {
					p := atomic.LoadInt32(&peak)
					if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
						break
					}
				}
				time.Sleep(5 * time.Millisecond)
				atomic.AddInt32(&running, -1)
				return nil
			})
		}()
	}
	wg.Wait()

	if peak > 2 {
		t.Errorf("expected at most 2 concurrent calls, saw %d", peak)
	}
	if b.InUse() != 0 {
		t.Errorf("expected all slots released, %d in use", b.InUse())
	}
}

func TestBulkhead_FailsFastWhenFull(t *testing.T) {
	var rejected string
	b := NewBulkhead(BulkheadConfig{Name: "export", MaxConcurrent: 1, OnReject: func(n string) { rejected = n }})

	hold := make(chan struct{})
	done := make(chan struct{})
	go func() {
		_ = b.Execute(context.Background(), func() error { <-hold; return nil })
		close(done)
	}()
	for b.InUse() == 0 {
		time.Sleep(time.Millisecond)
	}

	if err := b.Execute(context.Background(), func() error { return nil }); !errors.Is(err, ErrBulkheadFull) {
		t.Errorf("expected ErrBulkheadFull, got %v", err)
	}
	if rejected != "export" {
		t.Errorf("expected OnReject with name, got %q", rejected)
	}
	close(hold)
	<-done
}

func TestExportBulkheadConfig(t *testing.T) {
	cfg := ExportBulkheadConfig()
	if cfg.MaxConcurrent != 2 || cfg.MaxWait <= 0 {
		t.Errorf("unexpected export bulkhead config %+v", cfg)
	}
}

func TestRateLimiter_AllowsBurstThenLimits(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{Rate: 1, Burst: 2})
	if !rl.Allow() || !rl.Allow() {
		t.Fatal("expected burst of 2")
	}
	if rl.Allow() {
		t.Error("expected third call to be limited")
	}
}

func TestRateLimiter_WaitHonoursContext(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{Rate: 0.001, Burst: 1})
	if err := rl.Wait(context.Background()); err != nil {
		t.Fatalf("first wait should not block: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if err := rl.Wait(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline exceeded, got %v", err)
	}
}

func TestResendRateLimiterConfig(t *testing.T) {
	rl := NewRateLimiter(ResendRateLimiterConfig())
	start := time.Now()
	for range 3 {
		if err := rl.Wait(context.Background()); err != nil {
			t.Fatal(err)
		}
	}
	if elapsed := time.Since(start); elapsed < 400*time.Millisecond {
		t.Errorf("expected third send to wait about half a second, waited %v", elapsed)
	}
}
