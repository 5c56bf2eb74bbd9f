package vlq

import "testing"

func TestEncodeScenarios(t *testing.T) {
	cases := []struct {
		in   uint32
		want []byte
	}{
		{0x00000000, []byte{0x00}},
		{0x00000040, []byte{0x40}},
		{0x0000007F, []byte{0x7F}},
		{0x00000080, []byte{0x81, 0x00}},
		{0x00002000, []byte{0xC0, 0x00}},
		{0x0FFFFFFF, []byte{0xFF, 0xFF, 0xFF, 0x7F}},
	}

	for _, c := range cases {
		got, err := Encode(c.in)
		if err != nil {
			t.Fatalf("Encode(0x%X): unexpected error: %v", c.in, err)
		}
		if string(got) != string(c.want) {
			t.Errorf("Encode(0x%X) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestEncodeOverflow(t *testing.T) {
	if _, err := Encode(MaxValue + 1); err != ErrOverflow {
		t.Errorf("Encode(MaxValue+1) error = %v, want ErrOverflow", err)
	}
}

func TestRoundTrip(t *testing.T) {
	values := []uint32{0, 1, 0x3F, 0x40, 0x7F, 0x80, 0x2000, 0x3FFF, 0x4000, MaxValue}
	for _, v := range values {
		enc, err := Encode(v)
		if err != nil {
			t.Fatalf("Encode(%d): %v", v, err)
		}
		got, n, err := Decode(enc)
		if err != nil {
			t.Fatalf("Decode(%v): %v", enc, err)
		}
		if got != v {
			t.Errorf("Decode(Encode(%d)) = %d, want %d", v, got, v)
		}
		if n != len(enc) {
			t.Errorf("Decode(Encode(%d)) consumed %d bytes, want %d", v, n, len(enc))
		}
	}
}

func TestDecodeMalformed(t *testing.T) {
	cases := [][]byte{
		{0x81, 0x81, 0x81, 0x81}, // 5th byte would still have the continuation bit
		{0x81},                  // truncated mid-sequence
		{},
	}
	for _, c := range cases {
		if _, _, err := Decode(c); err != ErrMalformed {
			t.Errorf("Decode(%v) error = %v, want ErrMalformed", c, err)
		}
	}
}

func TestDecodeTrailingBytesIgnored(t *testing.T) {
	v, n, err := Decode([]byte{0x81, 0x00, 0xFF, 0xFF})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != 0x80 || n != 2 {
		t.Errorf("Decode = (%d, %d), want (128, 2)", v, n)
	}
}
