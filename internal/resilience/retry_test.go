package resilience

import (
	"context"
	"errors"
	"testing"
	"time"
)

func fastConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:    3,
		InitialBackoff: 1 * time.Millisecond,
		MaxBackoff:     10 * time.Millisecond,
		Multiplier:     2.0,
	}
}

func TestDo_SuccessOnFirstAttempt(t *testing.T) {
	var calls int
	val, err := Do(context.Background(), fastConfig(), func(_ context.Context) (string, error) {
		calls++
		return "ok", nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if val != "ok" {
		t.Errorf("expected %q, got %q", "ok", val)
	}
	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
}

func TestDo_SuccessAfterRetry(t *testing.T) {
	var calls int
	val, err := Do(context.Background(), fastConfig(), func(_ context.Context) (int, error) {
		calls++
		if calls < 3 {
			return 0, NewTransientError(errors.New("temporary"), 503)
		}
		return 42, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if val != 42 {
		t.Errorf("expected 42, got %d", val)
	}
	if calls != 3 {
		t.Errorf("expected 3 calls, got %d", calls)
	}
}

func TestDo_ExhaustsRetries(t *testing.T) {
	var calls int
	_, err := Do(context.Background(), fastConfig(), func(_ context.Context) (int, error) {
		calls++
		return 0, NewTransientError(errors.New("always fails"), 500)
	})
	if err == nil {
		t.Fatal("expected error after exhausting retries")
	}
	if calls != 3 {
		t.Errorf("expected 3 calls, got %d", calls)
	}
}

func TestDo_NonTransientNotRetried(t *testing.T) {
	var calls int
	_, err := Do(context.Background(), fastConfig(), func(_ context.Context) (int, error) {
		calls++
		return 0, errors.New("bad request")
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
}

func TestDo_ContextCancelStopsRetries(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	var calls int
	_, err := Do(ctx, fastConfig(), func(_ context.Context) (int, error) {
		calls++
		cancel()
		return 0, NewTransientError(errors.New("temporary"), 503)
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
}

func TestDo_OnRetryCallback(t *testing.T) {
	var attempts []int
	cfg := fastConfig()
	cfg.OnRetry = func(attempt int, _ error) {
		attempts = append(attempts, attempt)
	}

	_, _ = Do(context.Background(), cfg, func(_ context.Context) (int, error) {
		return 0, NewTransientError(errors.New("temporary"), 502)
	})
	if len(attempts) != 2 {
		t.Fatalf("expected 2 retry callbacks, got %d", len(attempts))
	}
	if attempts[0] != 1 || attempts[1] != 2 {
		t.Errorf("unexpected attempt numbers: %v", attempts)
	}
}

func TestComputeBackoff_CapsAtMax(t *testing.T) {
	cfg := RetryConfig{
		InitialBackoff: 100 * time.Millisecond,
		MaxBackoff:     300 * time.Millisecond,
		Multiplier:     2.0,
	}
	d := computeBackoff(5, cfg)
	if d > cfg.MaxBackoff {
		t.Errorf("backoff %v exceeds max %v", d, cfg.MaxBackoff)
	}
}

func TestFromConfig_Defaults(t *testing.T) {
	cfg := FromConfig(0, 0, 0)
	def := DefaultRetryConfig()
	if cfg.MaxAttempts != def.MaxAttempts {
		t.Errorf("expected default attempts %d, got %d", def.MaxAttempts, cfg.MaxAttempts)
	}
	if cfg.InitialBackoff != def.InitialBackoff {
		t.Errorf("expected default backoff %v, got %v", def.InitialBackoff, cfg.InitialBackoff)
	}
}

func TestFromConfig_Overrides(t *testing.T) {
	cfg := FromConfig(5, 100, 2000)
	if cfg.MaxAttempts != 5 {
		t.Errorf("expected 5 attempts, got %d", cfg.MaxAttempts)
	}
	if cfg.InitialBackoff != 100*time.Millisecond {
		t.Errorf("expected 100ms, got %v", cfg.InitialBackoff)
	}
	if cfg.MaxBackoff != 2*time.Second {
		t.Errorf("expected 2s, got %v", cfg.MaxBackoff)
	}
}

func TestIsTransient(t *testing.T) {
	if IsTransient(nil) {
		t.Error("nil should not be transient")
	}
	if !IsTransient(NewTransientError(errors.New("x"), 429)) {
		t.Error("TransientError should be transient")
	}
	if !IsTransient(errors.New("read tcp: i/o timeout")) {
		t.Error("i/o timeout should be transient")
	}
	if IsTransient(errors.New("invalid api key")) {
		t.Error("auth error should not be transient")
	}
}

func TestIsTransientHTTPStatus(t *testing.T) {
	for _, code := range []int{408, 429, 500, 502, 503, 504} {
		if !IsTransientHTTPStatus(code) {
			t.Errorf("status %d should be transient", code)
		}
	}
	for _, code := range []int{200, 400, 401, 403, 404} {
		if IsTransientHTTPStatus(code) {
			t.Errorf("status %d should not be transient", code)
		}
	}
}
