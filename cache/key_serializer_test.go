package cache

import (
	"strings"
	"testing"
)

func TestSerializeKey_NoArgs(t *testing.T) {
	s := NewDefaultKeySerializer()
	if got := s.SerializeKey("FindAll"); got != "FindAll" {
		t.Errorf("expected bare method name, got %q", got)
	}
}

func TestSerializeKey_BasicTypes(t *testing.T) {
	s := NewDefaultKeySerializer()

	tests := []struct {
		name   string
		method string
		args   []any
		want   string
	}{
		{"int arg", "FindByID", []any{int64(42)}, "FindByID::42"},
		{"string arg", "GetByName", []any{"alice"}, "GetByName::alice"},
		{"bool arg", "List", []any{true}, "List::true"},
		{"multiple args", "Query", []any{"a", 1}, "Query::a::1"},
		{"nil arg", "Get", []any{nil}, "Get::nil"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.SerializeKey(tt.method, tt.args...); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSerializeKey_PointerDereference(t *testing.T) {
	s := NewDefaultKeySerializer()

	v := 7
	if got := s.SerializeKey("Get", &v); got != "Get::7" {
		t.Errorf("expected pointer to be dereferenced, got %q", got)
	}

	var nilPtr *int
	if got := s.SerializeKey("Get", nilPtr); got != "Get::nil" {
		t.Errorf("expected nil pointer to serialize as nil, got %q", got)
	}
}

func TestSerializeKey_Slices(t *testing.T) {
	s := NewDefaultKeySerializer()

	got := s.SerializeKey("List", []int{1, 2, 3})
	if got != "List::slice[3]:{1,2,3}" {
		t.Errorf("unexpected slice key: %q", got)
	}

	var nilSlice []int
	if got := s.SerializeKey("List", nilSlice); got != "List::slice:nil" {
		t.Errorf("unexpected nil slice key: %q", got)
	}
}

func TestSerializeKey_MapsAreDeterministic(t *testing.T) {
	s := NewDefaultKeySerializer()

	m := map[string]int{"b": 2, "a": 1, "c": 3}
	first := s.SerializeKey("Query", m)
	for i := 0; i < 20; i++ {
		if got := s.SerializeKey("Query", m); got != first {
			t.Fatalf("map serialization not deterministic: %q vs %q", first, got)
		}
	}
	if first != "Query::map[3]:{a=1,b=2,c=3}" {
		t.Errorf("unexpected map key: %q", first)
	}
}

func TestSerializeKey_Structs(t *testing.T) {
	s := NewDefaultKeySerializer()

	type criteria struct {
		Limit  int
		Offset int
		secret string
	}

	got := s.SerializeKey("List", criteria{Limit: 10, Offset: 20, secret: "hidden"})
	if got != "List::struct:{Limit:10,Offset:20}" {
		t.Errorf("unexpected struct key: %q", got)
	}
	if strings.Contains(got, "hidden") {
		t.Error("unexported fields must not leak into keys")
	}
}

func TestSerializeKey_FunctionsByPointer(t *testing.T) {
	s := NewDefaultKeySerializer()

	fn := func() {}
	first := s.SerializeKey("Get", fn)
	second := s.SerializeKey("Get", fn)
	if first != second {
		t.Errorf("same function must serialize identically: %q vs %q", first, second)
	}
	if !strings.Contains(first, "func:0x") {
		t.Errorf("expected pointer-formatted function, got %q", first)
	}
}

func TestSerializeKey_OversizedArgsDigested(t *testing.T) {
	s := NewDefaultKeySerializer()

	huge := strings.Repeat("x", 10_000)
	got := s.SerializeKey("Query", huge)

	if !strings.HasPrefix(got, "Query"+KeySeparator) {
		t.Errorf("method prefix must survive digesting, got %q", got)
	}
	if !strings.Contains(got, "xxh:") {
		t.Errorf("expected digest marker, got %q", got)
	}
	if len(got) > len("Query")+len(KeySeparator)+maxArgsSegmentLength {
		t.Errorf("digested key still too long: %d bytes", len(got))
	}

	// Same input, same digest.
	if again := s.SerializeKey("Query", huge); again != got {
		t.Errorf("digest not stable: %q vs %q", got, again)
	}

	// Different input, different digest.
	if other := s.SerializeKey("Query", huge+"y"); other == got {
		t.Error("different inputs must not collide on the same key")
	}
}
