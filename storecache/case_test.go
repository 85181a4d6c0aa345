package storecache

import "testing"

func TestToSnake(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"User", "user"},
		{"UserProfile", "user_profile"},
		{"HTTPServer", "http_server"},
		{"APIKey", "api_key"},
		{"already_snake", "already_snake"},
		{"with space", "with_space"},
		{"kebab-case", "kebab_case"},
		{"Record2Go", "record_2_go"},
		{"*main.User[int64]", "main_user_int_64"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := toSnake(tt.in); got != tt.want {
				t.Errorf("toSnake(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestWithCacheTags(t *testing.T) {
	ctx := WithCacheTags(nil, "a", "b", "a", "")
	got := cacheTagsFromContext(ctx)
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("expected deduped tags [a b], got %v", got)
	}

	ctx = WithCacheTags(ctx, "c")
	got = cacheTagsFromContext(ctx)
	if len(got) != 3 || got[2] != "c" {
		t.Errorf("expected accumulated tags [a b c], got %v", got)
	}
}
