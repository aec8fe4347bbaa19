package parallel

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestFuture_Get(t *testing.T) {
	f := Go(context.Background(), func(ctx context.Context) (any, error) {
		return 42, nil
	})
	v, err := f.Get()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.(int) != 42 {
		t.Fatalf("got %v, want 42", v)
	}
}

func TestFuture_Error(t *testing.T) {
	boom := errors.New("boom")
	f := Go(context.Background(), func(ctx context.Context) (any, error) {
		return nil, boom
	})
	if _, err := f.Get(); !errors.Is(err, boom) {
		t.Fatalf("got %v, want boom", err)
	}
}

func TestFuture_Timeout(t *testing.T) {
	f := Go(context.Background(), func(ctx context.Context) (any, error) {
		select {
		case <-time.After(5 * time.Second):
			return "late", nil
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}, WithTimeout(20*time.Millisecond))

	if _, err := f.Get(); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("got %v, want deadline exceeded", err)
	}
}

func TestFuture_Cancel(t *testing.T) {
	f := Go(context.Background(), func(ctx context.Context) (any, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	})
	f.Cancel()
	if _, err := f.Get(); err == nil {
		t.Fatal("want error after cancel")
	}
	if !f.IsDone() {
		t.Fatal("future should be done after cancel")
	}
}
