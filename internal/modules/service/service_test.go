package service

import "testing"

func TestParse(t *testing.T) {
	cases := []struct {
		in      string
		want    Code
		wantErr bool
	}{
		{"thai", Thai, false},
		{" THAI ", Thai, false},
		{"4_hands_oil", FourHands, false},
		{"swedish", "", true},
		{"", "", true},
	}
	for _, tc := range cases {
		got, err := Parse(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("Parse(%q) expected error, got %q", tc.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("Parse(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("Parse(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestParseList(t *testing.T) {
	got, err := ParseList("thai, oil ,foot")
	if err != nil {
		t.Fatalf("ParseList: %v", err)
	}
	if len(got) != 3 || got[0] != Thai || got[1] != Oil || got[2] != Foot {
		t.Errorf("ParseList = %v", got)
	}

	if _, err := ParseList(""); err == nil {
		t.Error("ParseList(\"\") expected error")
	}
	if _, err := ParseList(" , ,"); err == nil {
		t.Error("ParseList of only separators expected error")
	}
	if _, err := ParseList("thai,bogus"); err == nil {
		t.Error("ParseList with unknown code expected error")
	}
}

// Intersection must be exact set membership so "oil" never matches
// "4_hands_oil".
func TestIntersectsExactMembership(t *testing.T) {
	offered := []Code{FourHands}
	if Intersects(offered, []Code{Oil}) {
		t.Error("oil must not match 4_hands_oil")
	}
	if !Intersects(offered, []Code{FourHands}) {
		t.Error("4_hands_oil should match itself")
	}
	if Intersects(nil, []Code{Oil}) {
		t.Error("empty offered set matches nothing")
	}
	if Intersects([]Code{Oil}, nil) {
		t.Error("empty requested set matches nothing")
	}
	if !Intersects([]Code{Foot, Thai}, []Code{Hair, Thai}) {
		t.Error("shared member should intersect")
	}
}
