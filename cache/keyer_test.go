package cache

import (
	"strings"
	"testing"
)

func TestRequestKeyer_NoParams(t *testing.T) {
	keyer := NewRequestKeyer()

	key := keyer.Key("/tasks/7", nil)
	if key != "/tasks/7" {
		t.Errorf("Key with no params = %q, want the URL alone", key)
	}

	key = keyer.Key("/tasks/7", map[string]string{})
	if key != "/tasks/7" {
		t.Errorf("Key with empty params = %q, want the URL alone", key)
	}
}

func TestRequestKeyer_DeterministicForParamOrder(t *testing.T) {
	keyer := NewRequestKeyer()

	// Same content, different insertion order
	params1 := map[string]string{"b": "2", "a": "1", "c": "3"}
	params2 := map[string]string{"a": "1", "c": "3", "b": "2"}
	params3 := map[string]string{"c": "3", "b": "2", "a": "1"}

	key1 := keyer.Key("/tasks", params1)
	key2 := keyer.Key("/tasks", params2)
	key3 := keyer.Key("/tasks", params3)

	if key1 != key2 {
		t.Errorf("Keys should be equal for same content:\n  key1=%s\n  key2=%s", key1, key2)
	}
	if key2 != key3 {
		t.Errorf("Keys should be equal for same content:\n  key2=%s\n  key3=%s", key2, key3)
	}
}

func TestRequestKeyer_SortedSerialization(t *testing.T) {
	keyer := NewRequestKeyer()

	key := keyer.Key("/tasks", map[string]string{"page": "2", "filter": "open"})
	want := "/tasks?filter=open&page=2"
	if key != want {
		t.Errorf("Key = %q, want %q", key, want)
	}
}

func TestRequestKeyer_DifferentValuesDiffer(t *testing.T) {
	keyer := NewRequestKeyer()

	key1 := keyer.Key("/tasks", map[string]string{"page": "1"})
	key2 := keyer.Key("/tasks", map[string]string{"page": "2"})
	if key1 == key2 {
		t.Errorf("Keys should differ for different values, both = %q", key1)
	}

	key3 := keyer.Key("/files", map[string]string{"page": "1"})
	if key1 == key3 {
		t.Errorf("Keys should differ for different URLs, both = %q", key1)
	}
}

func TestRequestKeyer_EscapesReservedCharacters(t *testing.T) {
	keyer := NewRequestKeyer()

	key := keyer.Key("/search", map[string]string{"q": "a&b=c"})
	if strings.Contains(key, "a&b=c") {
		t.Errorf("parameter values should be escaped, got %q", key)
	}
}
