package idgen

import (
	"regexp"
	"testing"
)

func TestGenerateWithPrefix(t *testing.T) {
	for _, prefix := range []string{RequestPrefix, ControllerPrefix, ""} {
		t.Run("prefix="+prefix, func(t *testing.T) {
			pattern := regexp.MustCompile(`^` + regexp.QuoteMeta(prefix) + `[a-zA-Z0-9]{10}$`)
			for i := 0; i < 50; i++ {
				id, err := GenerateWithPrefix(prefix)
				if err != nil {
					t.Fatalf("GenerateWithPrefix(%q) error: %v", prefix, err)
				}
				if !pattern.MatchString(id) {
					t.Fatalf("GenerateWithPrefix(%q) = %q, want %s", prefix, id, pattern)
				}
			}
		})
	}
}

func TestMustGenerate(t *testing.T) {
	a := MustGenerate(ControllerPrefix)
	b := MustGenerate(ControllerPrefix)
	if a == b {
		t.Errorf("MustGenerate returned %q twice", a)
	}
	if a[:len(ControllerPrefix)] != ControllerPrefix {
		t.Errorf("MustGenerate(%q) = %q", ControllerPrefix, a)
	}
	if want := len(ControllerPrefix) + Length; len(a) != want {
		t.Errorf("len(MustGenerate()) = %d, want %d", len(a), want)
	}
}

func TestGenerate_Uniqueness(t *testing.T) {
	const count = 10_000
	seen := make(map[string]struct{}, count)
	for i := 0; i < count; i++ {
		id := MustGenerate(RequestPrefix)
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate ID after %d generations: %q", i, id)
		}
		seen[id] = struct{}{}
	}
}
