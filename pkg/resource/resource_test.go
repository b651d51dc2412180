package resource

import (
	"bytes"
	"context"
	"errors"
	"io"
	"math/rand"
	"testing"
)

func TestValidateRange(t *testing.T) {
	tests := []struct {
		name    string
		size    int64
		start   int64
		end     int64
		wantErr bool
	}{
		{"full range", 100, 0, 99, false},
		{"single byte", 100, 50, 50, false},
		{"start after end", 100, 10, 5, true},
		{"end at size", 100, 0, 100, true},
		{"end past size", 100, 0, 150, true},
		{"negative start", 100, -1, 10, true},
		{"empty resource", 0, 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateRange(tt.size, tt.start, tt.end)
			if tt.wantErr {
				var invalid *InvalidRangeError
				if !errors.As(err, &invalid) {
					t.Errorf("Expected InvalidRangeError, got %v", err)
				}
			} else if err != nil {
				t.Errorf("Expected valid range, got %v", err)
			}
		})
	}
}

func TestBytesResourceReadRangeAsBytes(t *testing.T) {
	data := make([]byte, 1024)
	rand.New(rand.NewSource(1)).Read(data)

	res := NewBytesResource(data)
	ctx := context.Background()

	if res.Size() != 1024 {
		t.Errorf("Expected size 1024, got %d", res.Size())
	}

	// Every valid range returns exactly end-start+1 bytes matching a
	// reference read of the whole resource.
	for _, r := range [][2]int64{{0, 0}, {0, 1023}, {100, 199}, {1023, 1023}} {
		got, err := res.ReadRangeAsBytes(ctx, r[0], r[1])
		if err != nil {
			t.Fatalf("ReadRangeAsBytes(%d, %d) failed: %v", r[0], r[1], err)
		}
		if int64(len(got)) != r[1]-r[0]+1 {
			t.Errorf("Expected %d bytes, got %d", r[1]-r[0]+1, len(got))
		}
		if !bytes.Equal(got, data[r[0]:r[1]+1]) {
			t.Errorf("Range [%d, %d] bytes differ from reference", r[0], r[1])
		}
	}
}

func TestBytesResourceInvalidRange(t *testing.T) {
	res := NewBytesResource(make([]byte, 100))
	ctx := context.Background()

	for _, r := range [][2]int64{{10, 5}, {0, 100}, {-1, 10}} {
		_, err := res.ReadRangeAsBytes(ctx, r[0], r[1])
		var invalid *InvalidRangeError
		if !errors.As(err, &invalid) {
			t.Errorf("Range [%d, %d]: expected InvalidRangeError, got %v", r[0], r[1], err)
		}

		_, err = res.ReadRange(ctx, r[0], r[1])
		if !errors.As(err, &invalid) {
			t.Errorf("Range [%d, %d]: expected InvalidRangeError from ReadRange, got %v", r[0], r[1], err)
		}
	}
}

func TestBytesResourceReadRangeStream(t *testing.T) {
	data := []byte("hello, range world")
	res := NewBytesResource(data)

	rc, err := res.ReadRange(context.Background(), 7, 11)
	if err != nil {
		t.Fatalf("ReadRange failed: %v", err)
	}
	defer rc.Close()

	got, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if string(got) != "range" {
		t.Errorf("Expected %q, got %q", "range", string(got))
	}
}

func TestBytesResourceCopyIsolation(t *testing.T) {
	data := []byte{1, 2, 3, 4}
	res := NewBytesResource(data)

	got, err := res.ReadRangeAsBytes(context.Background(), 0, 3)
	if err != nil {
		t.Fatalf("ReadRangeAsBytes failed: %v", err)
	}

	got[0] = 99
	again, _ := res.ReadRangeAsBytes(context.Background(), 0, 3)
	if again[0] != 1 {
		t.Error("Expected materialized reads to be isolated copies")
	}
}

func TestRangeTooLargeError(t *testing.T) {
	e := &RangeTooLargeError{Start: 0, End: MaxInMemoryRange}
	if e.Count() != MaxInMemoryRange+1 {
		t.Errorf("Expected count %d, got %d", MaxInMemoryRange+1, e.Count())
	}

	if err := checkInMemory(0, MaxInMemoryRange); err == nil {
		t.Error("Expected request over the 31-bit ceiling to fail")
	}
	if err := checkInMemory(0, MaxInMemoryRange-1); err != nil {
		t.Errorf("Expected request at the ceiling to pass, got %v", err)
	}
}

func TestInvalidRangeErrorMessage(t *testing.T) {
	e := &InvalidRangeError{Start: 0, End: 1053651, Size: 1053651}
	want := "invalid byte range [0, 1053651] for resource of size 1053651"
	if e.Error() != want {
		t.Errorf("Expected %q, got %q", want, e.Error())
	}
}
