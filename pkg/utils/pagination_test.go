package utils

import "testing"

func TestCalculateTotalPages(t *testing.T) {
	cases := []struct {
		total   int64
		perPage int
		want    int
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{25, 10, 3},
		{100, 0, 0},
	}

	for _, tc := range cases {
		if got := CalculateTotalPages(tc.total, tc.perPage); got != tc.want {
			t.Errorf("CalculateTotalPages(%d, %d) = %d, want %d", tc.total, tc.perPage, got, tc.want)
		}
	}
}

func TestCalculateOffset(t *testing.T) {
	if got := CalculateOffset(1, 10); got != 0 {
		t.Errorf("first page offset = %d, want 0", got)
	}
	if got := CalculateOffset(3, 10); got != 20 {
		t.Errorf("third page offset = %d, want 20", got)
	}
	if got := CalculateOffset(0, 10); got != 0 {
		t.Errorf("page 0 offset = %d, want 0", got)
	}
}

func TestParseInt(t *testing.T) {
	if got := ParseInt("", 5); got != 5 {
		t.Errorf("empty input = %d, want default 5", got)
	}
	if got := ParseInt("12", 5); got != 12 {
		t.Errorf("ParseInt(12) = %d", got)
	}
	if got := ParseInt("abc", 5); got != 5 {
		t.Errorf("garbage input = %d, want default 5", got)
	}
	if got := ParseInt("-3", 5); got != 5 {
		t.Errorf("negative input = %d, want default 5", got)
	}
}
