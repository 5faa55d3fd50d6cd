package realtime

import "testing"

func TestChannelFor(t *testing.T) {
	if got := ChannelFor("t42"); got != "therapist_t42" {
		t.Errorf("ChannelFor(t42) = %q, want therapist_t42", got)
	}
}
