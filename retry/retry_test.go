package retry

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestPollSucceedsImmediately(t *testing.T) {
	calls := 0
	err := Poll(context.Background(), Policy{Interval: 10 * time.Millisecond, Timeout: time.Second},
		func(ctx context.Context) (bool, error) {
			calls++
			return true, nil
		})
	if err != nil {
		t.Fatalf("Poll() error = %v", err)
	}
	if calls != 1 {
		t.Errorf("predicate called %d times, want 1", calls)
	}
}

func TestPollSucceedsAfterRetries(t *testing.T) {
	calls := 0
	err := Poll(context.Background(), Policy{Interval: 5 * time.Millisecond, Timeout: time.Second},
		func(ctx context.Context) (bool, error) {
			calls++
			return calls >= 3, nil
		})
	if err != nil {
		t.Fatalf("Poll() error = %v", err)
	}
	if calls != 3 {
		t.Errorf("predicate called %d times, want 3", calls)
	}
}

func TestPollTimesOut(t *testing.T) {
	err := Poll(context.Background(), Policy{Interval: 5 * time.Millisecond, Timeout: 30 * time.Millisecond},
		func(ctx context.Context) (bool, error) {
			return false, nil
		})
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("Poll() error = %v, want ErrTimeout", err)
	}
}

func TestPollPropagatesPredicateError(t *testing.T) {
	boom := errors.New("boom")
	err := Poll(context.Background(), Policy{Interval: 5 * time.Millisecond, Timeout: time.Second},
		func(ctx context.Context) (bool, error) {
			return false, boom
		})
	if !errors.Is(err, boom) {
		t.Fatalf("Poll() error = %v, want predicate error", err)
	}
}

func TestPollCallerCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Poll(ctx, Policy{Interval: 5 * time.Millisecond, Timeout: time.Second},
		func(ctx context.Context) (bool, error) {
			return false, nil
		})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Poll() error = %v, want context.Canceled", err)
	}
}

func TestPolicyValidate(t *testing.T) {
	tests := []struct {
		name    string
		policy  Policy
		wantErr bool
	}{
		{"valid", Policy{Interval: time.Millisecond, Timeout: time.Second}, false},
		{"zero interval", Policy{Timeout: time.Second}, true},
		{"zero timeout", Policy{Interval: time.Millisecond}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.policy.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
