package point

import "testing"

func TestToMinutes(t *testing.T) {
	cases := []struct {
		literal string
		want    int64
	}{
		{"0.1.30", 90},
		{"-1.30", -90},
		{"30.0.0", 43200},
		{"30", 30},
		{"1.0", 60},
	}
	for _, c := range cases {
		got, err := ToMinutes(c.literal)
		if err != nil {
			t.Fatalf("ToMinutes(%q): unexpected error: %v", c.literal, err)
		}
		if got != c.want {
			t.Errorf("ToMinutes(%q) = %d, want %d", c.literal, got, c.want)
		}
	}
}

func TestToMinutesErrors(t *testing.T) {
	bad := []string{"", "-", "1.2.3.4.5.6", "1.a", "1..2"}
	for _, literal := range bad {
		if _, err := ToMinutes(literal); err == nil {
			t.Errorf("ToMinutes(%q): expected error, got none", literal)
		}
	}
}

func TestFromMinutes(t *testing.T) {
	cases := []struct {
		minutes int64
		want    string
	}{
		{0, "0"},
		{90, "0.1.30"},
		{43200, "1.0.0.0"},
	}
	for _, c := range cases {
		got := FromMinutes(c.minutes)
		if got != c.want {
			t.Errorf("FromMinutes(%d) = %q, want %q", c.minutes, got, c.want)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	for n := int64(-100000); n <= 100000; n += 137 {
		literal := FromMinutes(n)
		got, err := ToMinutes(literal)
		if err != nil {
			t.Fatalf("ToMinutes(FromMinutes(%d)=%q): %v", n, literal, err)
		}
		if got != n {
			t.Errorf("round trip failed for %d: FromMinutes -> %q -> ToMinutes -> %d", n, literal, got)
		}
	}
}
