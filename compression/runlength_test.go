package compression

import (
	"bytes"
	"math/rand"
	"testing"
)

func TestRunLengthEncodeEmpty(t *testing.T) {
	if result := RunLengthEncode(nil); result != nil {
		t.Error("Encoding nil should return nil")
	}
	if result := RunLengthEncode([]byte{}); result != nil {
		t.Error("Encoding empty should return nil")
	}
}

func TestRunLengthEncodeRun(t *testing.T) {
	data := []byte{42, 42, 42, 42, 42}
	encoded := RunLengthEncode(data)

	expected := []byte{5, 42}
	if !bytes.Equal(encoded, expected) {
		t.Errorf("Encode run: got %v, want %v", encoded, expected)
	}
}

func TestRunLengthEncodeAlternating(t *testing.T) {
	data := []byte{1, 2, 3, 4}
	encoded := RunLengthEncode(data)

	// Each byte becomes its own (1, value) pair
	expected := []byte{1, 1, 1, 2, 1, 3, 1, 4}
	if !bytes.Equal(encoded, expected) {
		t.Errorf("Encode alternating: got %v, want %v", encoded, expected)
	}
}

func TestRunLengthEncodeMaxRun(t *testing.T) {
	// A run longer than 255 must split into multiple pairs
	data := bytes.Repeat([]byte{7}, 300)
	encoded := RunLengthEncode(data)

	expected := []byte{255, 7, 45, 7}
	if !bytes.Equal(encoded, expected) {
		t.Errorf("Encode long run: got %v, want %v", encoded, expected)
	}
}

func TestRunLengthDecodeEmpty(t *testing.T) {
	result, err := RunLengthDecode(nil)
	if err != nil || result != nil {
		t.Error("Decoding nil should return nil, nil")
	}
}

func TestRunLengthDecodeRun(t *testing.T) {
	decoded, err := RunLengthDecode([]byte{5, 42})
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}

	expected := []byte{42, 42, 42, 42, 42}
	if !bytes.Equal(decoded, expected) {
		t.Errorf("Decode run: got %v, want %v", decoded, expected)
	}
}

func TestRunLengthDecodeOddLength(t *testing.T) {
	if _, err := RunLengthDecode([]byte{5, 42, 1}); err != ErrRunLengthCorrupted {
		t.Errorf("Odd-length input: got %v, want ErrRunLengthCorrupted", err)
	}
}

func TestRunLengthDecodeZeroCount(t *testing.T) {
	if _, err := RunLengthDecode([]byte{0, 42}); err != ErrRunLengthCorrupted {
		t.Errorf("Zero count: got %v, want ErrRunLengthCorrupted", err)
	}
}

func TestRunLengthRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"single byte", []byte{99}},
		{"all same", bytes.Repeat([]byte{0}, 1024)},
		{"run boundary", bytes.Repeat([]byte{1}, 255)},
		{"run boundary plus one", bytes.Repeat([]byte{1}, 256)},
		{"mixed", []byte{1, 1, 1, 2, 3, 3, 0, 0, 0, 0, 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decoded, err := RunLengthDecode(RunLengthEncode(tt.data))
			if err != nil {
				t.Fatalf("Decode error: %v", err)
			}
			if !bytes.Equal(decoded, tt.data) {
				t.Errorf("Round-trip failed:\ngot  %v\nwant %v", decoded, tt.data)
			}
		})
	}
}

func TestRunLengthRoundTripRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for trial := 0; trial < 20; trial++ {
		data := make([]byte, rng.Intn(4096)+1)
		// Skewed toward repetition, like a quantized coefficient stream
		for i := range data {
			if rng.Intn(4) == 0 {
				data[i] = byte(rng.Intn(256))
			}
		}

		decoded, err := RunLengthDecode(RunLengthEncode(data))
		if err != nil {
			t.Fatalf("Trial %d: decode error: %v", trial, err)
		}
		if !bytes.Equal(decoded, data) {
			t.Fatalf("Trial %d: round-trip mismatch", trial)
		}
	}
}

func FuzzRunLengthRoundTrip(f *testing.F) {
	f.Add([]byte{})
	f.Add([]byte{1, 1, 1, 2, 2})
	f.Add(bytes.Repeat([]byte{9}, 600))

	f.Fuzz(func(t *testing.T, data []byte) {
		decoded, err := RunLengthDecode(RunLengthEncode(data))
		if err != nil {
			t.Fatalf("decode error on valid encoding: %v", err)
		}
		if len(data) == 0 {
			if decoded != nil {
				t.Fatalf("empty input decoded to %v", decoded)
			}
			return
		}
		if !bytes.Equal(decoded, data) {
			t.Fatal("round-trip mismatch")
		}
	})
}
