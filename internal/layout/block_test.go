package layout

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"github.com/gatgui/gto/internal/binary"
)

func reader(data []byte) *binary.Reader {
	return binary.NewReader(bytes.NewReader(data), binary.Config{Size: int64(len(data))})
}

func TestBlockRead(t *testing.T) {
	data := []byte{0, 1, 2, 3, 4, 5, 6, 7}

	got, err := Block{Offset: 2, Length: 4}.Read(reader(data))
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if !bytes.Equal(got, []byte{2, 3, 4, 5}) {
		t.Errorf("unexpected data: %v", got)
	}
}

func TestBlockReadEmpty(t *testing.T) {
	got, err := Block{Offset: 100, Length: 0}.Read(reader(nil))
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil slice, got %v", got)
	}
}

func TestBlockCheck(t *testing.T) {
	tests := []struct {
		name  string
		block Block
		size  int64
		ok    bool
	}{
		{"inside", Block{0, 8}, 8, true},
		{"tail", Block{4, 4}, 8, true},
		{"past end", Block{4, 5}, 8, false},
		{"offset past end", Block{9, 0}, 8, false},
		{"overflow", Block{math.MaxUint64, 2}, 8, false},
		{"beyond int64", Block{math.MaxInt64, 1}, math.MaxInt64, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.block.Check(tt.size)
			if tt.ok && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tt.ok && !errors.Is(err, binary.ErrTruncated) {
				t.Errorf("expected ErrTruncated, got %v", err)
			}
		})
	}
}

func TestBlockReadTruncated(t *testing.T) {
	_, err := Block{Offset: 6, Length: 4}.Read(reader(make([]byte, 8)))
	if !errors.Is(err, binary.ErrTruncated) {
		t.Errorf("expected ErrTruncated, got %v", err)
	}
}
