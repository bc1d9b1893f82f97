package hashutil

import "testing"

func TestFingerprint(t *testing.T) {
	t.Parallel()

	a := Fingerprint([]string{"Sushi", "The Moon", "Eiffel Tower"})
	b := Fingerprint([]string{" eiffel tower", "the moon", "SUSHI"})
	if a != b {
		t.Errorf("expected order and case independent fingerprint, got %s and %s", a, b)
	}
	if len(a) != fingerprintLen {
		t.Errorf("expected %d chars got %d", fingerprintLen, len(a))
	}

	if c := Fingerprint([]string{"Sushi", "The Moon"}); c == a {
		t.Errorf("expected different sets to differ, got %s", c)
	}
	if Fingerprint([]string{"ab", "c"}) == Fingerprint([]string{"a", "bc"}) {
		t.Error("expected title boundaries to matter")
	}
}
