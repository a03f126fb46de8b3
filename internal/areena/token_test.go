package areena

import "testing"

func TestExtractToken(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "list uri",
			in:   "yleareena://items/list?token=abc.def.ghi&analytics=1",
			want: "abc.def.ghi&analytics=1",
		},
		{
			name: "marker at end",
			in:   "https://example.test/list?token=",
			want: "",
		},
		{
			name: "no marker",
			in:   "https://example.test/tv/ohjelmat/30-123",
			want: "example.test/tv/ohjelmat/30-123",
		},
		{
			name: "empty",
			in:   "",
			want: "",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ExtractToken(tc.in); got != tc.want {
				t.Errorf("ExtractToken(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestExtractSuffixShortInput(t *testing.T) {
	// The marker index plus marker length may pass the end of the string;
	// the slice start clamps instead of panicking.
	if got := extractSuffix("token=", "tok"); got != "" {
		t.Errorf("extractSuffix = %q, want empty", got)
	}
}
