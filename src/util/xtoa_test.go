package util

import "testing"

func TestItoA(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{0, "0"},
		{1, "1"},
		{-1, "-1"},
		{42, "42"},
		{-42, "-42"},
		{1234567890, "1234567890"},
	}
	for _, tc := range tests {
		if got := ItoA(tc.in); got != tc.want {
			t.Errorf("ItoA(%d) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
