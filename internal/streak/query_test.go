package streak

import "testing"

func TestLengthOn_ProgressNotSpan(t *testing.T) {
	streaks := Extract(read(dylan.ID, "2025-06-01", "2025-06-02", "2025-06-03", "2025-06-04"), []Mate{dylan})

	start := day("2025-06-01")
	for i := 0; i < 4; i++ {
		on := start.AddDays(i)
		if got := LengthOn(streaks, dylan.ID, on); got != i+1 {
			t.Errorf("LengthOn(%s) = %d, want %d", on, got, i+1)
		}
	}
}

func TestLengthOn_ZeroOutside(t *testing.T) {
	streaks := Extract(read(dylan.ID, "2025-06-02", "2025-06-03", "2025-06-06"), []Mate{dylan})
	for _, d := range []string{"2025-06-01", "2025-06-04", "2025-06-05", "2025-06-07"} {
		if got := LengthOn(streaks, dylan.ID, day(d)); got != 0 {
			t.Errorf("LengthOn(%s) = %d, want 0", d, got)
		}
	}
	if got := LengthOn(streaks, nate.ID, day("2025-06-02")); got != 0 {
		t.Errorf("other user LengthOn = %d, want 0", got)
	}
	if got := LengthOn(nil, dylan.ID, day("2025-06-02")); got != 0 {
		t.Errorf("nil streaks LengthOn = %d", got)
	}
}

func TestLengthOn_SecondStreakRestarts(t *testing.T) {
	streaks := Extract(read(nate.ID, "2025-06-01", "2025-06-02", "2025-06-04", "2025-06-05"), []Mate{nate})
	if got := LengthOn(streaks, nate.ID, day("2025-06-05")); got != 2 {
		t.Errorf("LengthOn = %d, want 2", got)
	}
}

func TestFind(t *testing.T) {
	streaks := Extract(read(nate.ID, "2025-06-01", "2025-06-02"), []Mate{nate})
	s, ok := Find(streaks, nate.ID, day("2025-06-02"))
	if !ok || s.Span != 2 {
		t.Fatalf("Find = %+v, %v", s, ok)
	}
	if _, ok := Find(streaks, nate.ID, day("2025-06-03")); ok {
		t.Error("Find should miss outside the streak")
	}
}
