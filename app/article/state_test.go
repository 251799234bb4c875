package article

import (
	"testing"
)

func TestParseStateKeepsKeyOrder(t *testing.T) {
	state, err := ParseState([]byte(`{"zeta": 1, "alpha": {"b": true, "a": null}, "mid": ["x", 2.5]}`))
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if state.Kind != KindObject {
		t.Fatalf("Expected object root, got kind %d", state.Kind)
	}

	expected := []string{"zeta", "alpha", "mid"}
	if len(state.Keys) != len(expected) {
		t.Fatalf("Expected %d keys, got %d", len(expected), len(state.Keys))
	}
	for i, key := range expected {
		if state.Keys[i] != key {
			t.Errorf("Expected key %d to be '%s', got '%s'", i, key, state.Keys[i])
		}
	}

	if got := state.Get("zeta"); got.Kind != KindNumber || got.Num.String() != "1" {
		t.Errorf("Expected number 1, got %+v", got)
	}
	if got := state.Get("alpha").Get("b"); got.Kind != KindBool || !got.Bool {
		t.Errorf("Expected bool true, got %+v", got)
	}
	if got := state.Get("alpha").Get("a"); got.Kind != KindNull {
		t.Errorf("Expected null, got %+v", got)
	}
	if got := state.Get("mid"); got.Kind != KindArray || len(got.Items) != 2 || got.Items[0].Str != "x" {
		t.Errorf("Expected array [x, 2.5], got %+v", got)
	}
}

func TestParseStateDuplicateKeys(t *testing.T) {
	state, err := ParseState([]byte(`{"a": 1, "b": 2, "a": 3}`))
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(state.Keys) != 2 || state.Keys[0] != "a" {
		t.Errorf("Expected keys [a b], got %v", state.Keys)
	}
	if state.Get("a").Num.String() != "3" {
		t.Errorf("Expected last value to win, got %s", state.Get("a").Num)
	}
}

func TestParseStateInvalid(t *testing.T) {
	for _, input := range []string{``, `{`, `{"a": }`, `{"a": 1} trailing`, `{'a': 1}`} {
		if _, err := ParseState([]byte(input)); err == nil {
			t.Errorf("Expected error for input %q", input)
		}
	}
}

func TestGetOnNilAndScalars(t *testing.T) {
	var n *Node
	if n.Get("x") != nil {
		t.Error("Expected nil from Get on nil node")
	}

	scalar := &Node{Kind: KindString, Str: "x"}
	if scalar.Get("x") != nil {
		t.Error("Expected nil from Get on scalar node")
	}
}

func TestFindContent(t *testing.T) {
	tests := []struct {
		name     string
		state    string
		expected string
		found    bool
	}{
		{
			name:     "direct config",
			state:    `{"config": {"content": "<p>Hello</p>"}}`,
			expected: "<p>Hello</p>",
			found:    true,
		},
		{
			name:     "nested in arrays",
			state:    `{"children": [{"type": "ad"}, {"children": [{"config": {"content": "deep"}}]}]}`,
			expected: "deep",
			found:    true,
		},
		{
			name:     "first match in document order",
			state:    `{"b": {"config": {"content": "first"}}, "a": {"config": {"content": "second"}}}`,
			expected: "first",
			found:    true,
		},
		{
			name:     "array order",
			state:    `[{"config": {"content": "one"}}, {"config": {"content": "two"}}]`,
			expected: "one",
			found:    true,
		},
		{
			name:     "empty content skipped",
			state:    `{"x": {"config": {"content": ""}}, "y": {"config": {"content": "kept"}}}`,
			expected: "kept",
			found:    true,
		},
		{
			name:     "non-string content skipped",
			state:    `{"x": {"config": {"content": 42}}}`,
			expected: "",
			found:    false,
		},
		{
			name:     "config without content searched deeper",
			state:    `{"config": {"inner": {"config": {"content": "below"}}}}`,
			expected: "below",
			found:    true,
		},
		{
			name:     "no content",
			state:    `{"a": [1, 2, {"b": "c"}]}`,
			expected: "",
			found:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state, err := ParseState([]byte(tt.state))
			if err != nil {
				t.Fatalf("Expected no error, got: %v", err)
			}

			content, found := FindContent(state)
			if found != tt.found {
				t.Errorf("Expected found=%v, got %v", tt.found, found)
			}
			if content != tt.expected {
				t.Errorf("Expected content '%s', got '%s'", tt.expected, content)
			}
		})
	}
}

func TestWalkStopsEarly(t *testing.T) {
	state, err := ParseState([]byte(`[1, 2, 3, 4]`))
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	visited := 0
	completed := Walk(state, func(n *Node) bool {
		visited++
		return n.Kind != KindNumber || n.Num.String() != "2"
	})

	if completed {
		t.Error("Expected walk to stop early")
	}
	if visited != 3 {
		t.Errorf("Expected 3 visited nodes (array, 1, 2), got %d", visited)
	}
}
