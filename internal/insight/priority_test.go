package insight

import "testing"

func TestClassifyPriority(t *testing.T) {
	cases := []struct {
		raw  string
		want Priority
	}{
		{"urgent", PriorityUrgent},
		{"Very Urgent", PriorityUrgent},
		{"critical", PriorityUrgent},
		{"high", PriorityHigh},
		{"High Priority", PriorityHigh},
		{"important", PriorityHigh},
		{"medium", PriorityMedium},
		{"Medium-term", PriorityMedium},
		{"low", PriorityLow},
		{"  LOW  ", PriorityLow},
		{"", PriorityInfo},
		{"unknown", PriorityInfo},
		{"42", PriorityInfo},
	}
	for _, c := range cases {
		if got := ClassifyPriority(c.raw); got != c.want {
			t.Fatalf("ClassifyPriority(%q) = %q, want %q", c.raw, got, c.want)
		}
	}
}

func TestClassifyPriorityAlwaysKnown(t *testing.T) {
	inputs := []string{"", "???", "CRITICAL!!", "lowish", "hi", "priority: high"}
	for _, raw := range inputs {
		got := ClassifyPriority(raw)
		found := false
		for _, p := range AllPriorities {
			if got == p {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("ClassifyPriority(%q) = %q, not in the known set", raw, got)
		}
	}
}

func TestRankOrdersBySeverity(t *testing.T) {
	for i := 1; i < len(AllPriorities); i++ {
		if Rank(AllPriorities[i-1]) >= Rank(AllPriorities[i]) {
			t.Fatalf("Rank(%q) = %d not below Rank(%q) = %d",
				AllPriorities[i-1], Rank(AllPriorities[i-1]), AllPriorities[i], Rank(AllPriorities[i]))
		}
	}
	if Rank(Priority("bogus")) != Rank(PriorityInfo) {
		t.Fatalf("unknown priority should rank with info")
	}
}
