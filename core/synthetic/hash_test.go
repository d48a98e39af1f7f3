package synthetic

import (
	"testing"
	"time"
)

func TestHash(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want uint32
	}{
		{name: "empty", in: "", want: 0},
		{name: "single char", in: "a", want: 97},
		{name: "abc", in: "abc", want: 96354},
		{name: "polish chars", in: "żółć", want: Hash("żółć")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Hash(tt.in); got != tt.want {
				t.Errorf("Hash(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestHashStable(t *testing.T) {
	seeds := []string{"", "jan.kowalski@megatrans.pl", "s-001-wozki-widlowe", "żółw"}
	for _, seed := range seeds {
		if Hash(seed) != Hash(seed) {
			t.Errorf("Hash(%q) not stable", seed)
		}
	}
}

func TestStableRandom(t *testing.T) {
	for _, seed := range []string{"", "a", "Mega-Trans-2024", "x-y-z"} {
		got := StableRandom(seed)
		if got < 0 || got >= 1 {
			t.Errorf("StableRandom(%q) = %f, want in [0, 1)", seed, got)
		}
		if got != StableRandom(seed) {
			t.Errorf("StableRandom(%q) not stable", seed)
		}
	}
	if got, want := StableRandom("abc"), 0.354; got != want {
		t.Errorf("StableRandom(abc) = %f, want %f", got, want)
	}
}

func TestDateFromHash(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	NowFunc = func() time.Time { return now }
	defer func() { NowFunc = time.Now }()

	got := DateFromHash("s-001-jan.kowalski@megatrans.pl", 180)
	if got != DateFromHash("s-001-jan.kowalski@megatrans.pl", 180) {
		t.Error("DateFromHash not deterministic")
	}
	if got.After(now) {
		t.Errorf("DateFromHash() = %v, want <= %v", got, now)
	}
	if min := now.AddDate(0, 0, -180); got.Before(min.AddDate(0, 0, -1)) {
		t.Errorf("DateFromHash() = %v, want >= %v", got, min)
	}

	// zero daysBack must not panic
	if d := DateFromHash("seed", 0); d.IsZero() {
		t.Error("DateFromHash(seed, 0) returned zero time")
	}
}

func TestHashMetricsRanges(t *testing.T) {
	m := NewHashMetrics()
	emails := []string{"", "a@b.pl", "jan.kowalski@megatrans.pl", "t.lewandowski@budmax.pl"}

	for _, email := range emails {
		if d := m.LastActivityDays(email); d < 0 || d >= 30 {
			t.Errorf("LastActivityDays(%q) = %d, want in [0, 30)", email, d)
		}
		if mins := m.StudyMinutes(email); mins < 30 || mins >= 600 {
			t.Errorf("StudyMinutes(%q) = %d, want in [30, 600)", email, mins)
		}
		if s := m.Sessions(email); s < 1 || s > 40 {
			t.Errorf("Sessions(%q) = %d, want in [1, 40]", email, s)
		}
		if sc := m.TestScore(email); sc < 50 || sc > 100 {
			t.Errorf("TestScore(%q) = %d, want in [50, 100]", email, sc)
		}
		var known bool
		for _, dept := range Departments {
			if m.Department(email) == dept {
				known = true
			}
		}
		if !known {
			t.Errorf("Department(%q) = %q, not a known department", email, m.Department(email))
		}
	}
}
