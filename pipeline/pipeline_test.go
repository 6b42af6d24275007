package pipeline

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFromSlice_Collect(t *testing.T) {
	got, err := Collect(context.Background(), FromSlice([]int{1, 2, 3}))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]int{1, 2, 3}, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestFromSlice_Empty(t *testing.T) {
	got, err := Collect(context.Background(), FromSlice([]int{}))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty, got %v", got)
	}
}

func TestMapFilter(t *testing.T) {
	doubled := Map(FromSlice([]int{1, 2, 3, 4}), func(_ context.Context, n int) (string, error) {
		return strconv.Itoa(n * 2), nil
	})
	long := Filter(doubled, func(s string) bool { return s != "4" })
	got, err := Collect(context.Background(), long)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"2", "6", "8"}, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestScan_EmitsEveryAccumulator(t *testing.T) {
	p := Scan(FromSlice([]string{"a", "b", "c"}), "", func(_ context.Context, acc, s string) (string, error) {
		return acc + s, nil
	})
	got, err := Collect(context.Background(), p)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"a", "ab", "abc"}, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestScan_IsRerunnable(t *testing.T) {
	p := Scan(FromSlice([]int{1, 2}), 10, func(_ context.Context, acc, n int) (int, error) {
		return acc + n, nil
	})
	first, _ := Collect(context.Background(), p)
	second, _ := Collect(context.Background(), p)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("second run differs (-first +second):\n%s", diff)
	}
	if diff := cmp.Diff([]int{11, 13}, first); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestScan_StopsAtError(t *testing.T) {
	boom := errors.New("boom")
	var applied []int
	p := Scan(FromSlice([]int{1, 2, 3}), 0, func(_ context.Context, acc, n int) (int, error) {
		applied = append(applied, n)
		if n == 2 {
			return 0, boom
		}
		return acc + n, nil
	})
	got, err := Collect(context.Background(), p)
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if diff := cmp.Diff([]int{1}, got); diff != "" {
		t.Errorf("partial results mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{1, 2}, applied); diff != "" {
		t.Errorf("values after the failure must not be pulled (-want +got):\n%s", diff)
	}
}

func TestTap_SeesEveryValueAndCanFail(t *testing.T) {
	var seen []int
	p := Tap(FromSlice([]int{1, 2, 3}), func(_ context.Context, n int) error {
		seen = append(seen, n)
		if n == 3 {
			return errors.New("stop")
		}
		return nil
	})
	got, err := Collect(context.Background(), p)
	if err == nil {
		t.Fatal("expected tap error")
	}
	if diff := cmp.Diff([]int{1, 2}, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	if len(seen) != 3 {
		t.Errorf("expected tap to see 3 values, saw %v", seen)
	}
}

func TestForEach_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var n int
	err := ForEach(ctx, FromSlice([]int{1, 2, 3}), func(context.Context, int) error {
		n++
		cancel()
		return nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if n != 1 {
		t.Errorf("expected one value before cancellation, got %d", n)
	}
}
