package otp

import (
	"bytes"
	"math/rand/v2"
	"testing"
)

func TestGenerateCode_Format(t *testing.T) {
	src := rand.NewChaCha8([32]byte{1})
	for i := 0; i < 200; i++ {
		code, err := GenerateCode(src)
		if err != nil {
			t.Fatalf("GenerateCode: %v", err)
		}
		if !WellFormed(code) {
			t.Fatalf("code %q is not %d digits", code, Digits)
		}
	}
}

func TestGenerateCode_Deterministic(t *testing.T) {
	a, _ := GenerateCode(rand.NewChaCha8([32]byte{7}))
	b, _ := GenerateCode(rand.NewChaCha8([32]byte{7}))
	if a != b {
		t.Errorf("same seed produced %q and %q", a, b)
	}
}

func TestGenerateCode_RejectsBiasedBytes(t *testing.T) {
	// 250..255 are skipped; the remaining bytes map to their last digit.
	src := bytes.NewReader([]byte{250, 251, 12, 255, 3, 4, 5, 6, 7, 8, 9, 0})
	code, err := GenerateCode(src)
	if err != nil {
		t.Fatalf("GenerateCode: %v", err)
	}
	if code != "234567" {
		t.Errorf("code = %q, want 234567", code)
	}
}

func TestGenerateCode_ShortSource(t *testing.T) {
	if _, err := GenerateCode(bytes.NewReader([]byte{1, 2})); err == nil {
		t.Fatal("GenerateCode should fail when the source runs dry")
	}
	if _, err := GenerateCode(nil); err == nil {
		t.Fatal("GenerateCode should fail on nil source")
	}
}

func TestGenerateCode_DigitsRoughlyUniform(t *testing.T) {
	src := rand.NewChaCha8([32]byte{42})
	var counts [10]int
	const n = 5000
	for i := 0; i < n; i++ {
		code, err := GenerateCode(src)
		if err != nil {
			t.Fatal(err)
		}
		for _, c := range code {
			counts[c-'0']++
		}
	}
	want := n * Digits / 10
	for d, c := range counts {
		if c < want*8/10 || c > want*12/10 {
			t.Errorf("digit %d seen %d times, want about %d", d, c, want)
		}
	}
}

func TestHashCode(t *testing.T) {
	h := HashCode("123456")
	if len(h) != 64 {
		t.Fatalf("hash length = %d, want 64", len(h))
	}
	if h == "123456" {
		t.Fatal("hash must not equal the code")
	}
	if HashCode("123456") != h {
		t.Error("HashCode should be deterministic")
	}
	if HashCode("654321") == h {
		t.Error("different codes should hash differently")
	}
}

func TestWellFormed(t *testing.T) {
	for _, s := range []string{"", "12345", "1234567", "12a456", " 12345"} {
		if WellFormed(s) {
			t.Errorf("WellFormed(%q) = true", s)
		}
	}
	if !WellFormed("000000") {
		t.Error("WellFormed(000000) = false")
	}
}
