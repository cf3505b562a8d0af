package domain

import "testing"

func TestHasEnabled(t *testing.T) {
	cases := []struct {
		name    string
		secrets []TOTPSecret
		want    bool
	}{
		{name: "empty", secrets: nil, want: false},
		{name: "all pending", secrets: []TOTPSecret{{ID: "a"}, {ID: "b"}}, want: false},
		{name: "one enabled", secrets: []TOTPSecret{{ID: "a"}, {ID: "b", Enabled: true}}, want: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := HasEnabled(tc.secrets); got != tc.want {
				t.Fatalf("HasEnabled = %v, want %v", got, tc.want)
			}
		})
	}
}
