package normalize

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"whitespace only", "   \t\n ", ""},
		{"filler and time", "Um, remind me to call John tomorrow at 3 pm", "Remind me to call John tomorrow at 3pm."},
		{"multi word filler", "you know i need to buy bread", "I need to buy bread."},
		{"filler inside word kept", "bring the umbrella", "Bring the umbrella."},
		{"only fillers", "um uh", ""},
		{"doubled commas", "call, um, the dentist", "Call, the dentist."},
		{"dotted pm", "meet Sara at 7 p.m.", "Meet Sara at 7pm."},
		{"am uppercase", "alarm at 6 AM", "Alarm at 6am."},
		{"oclock", "standup at 9 o'clock", "Standup at 9oclock."},
		{"hour minute pair", "dinner at 7 45", "Dinner at 7:45."},
		{"hour minute with pm", "dinner at 7 45 pm", "Dinner at 7:45pm."},
		{"out of range pair kept", "buy 30 45 nails", "Buy 30 45 nails."},
		{"space before punctuation", "hello , world", "Hello, world."},
		{"ellipsis", "wait....what", "Wait... what."},
		{"question kept", "did I lock the door?", "Did I lock the door?"},
		{"conjunction comma", "buy milk and eggs", "Buy milk, and eggs."},
		{"two word repeat", "call mom call mom tomorrow", "Call mom tomorrow."},
		{"three word repeat", "pick up kids pick up kids at noon", "Pick up kids at noon."},
		{"repeat keeps final period", "water the plants water the plants", "Water the plants."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

// TestNormalizeIdempotent verifies a second pass leaves cleaned text unchanged.
func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"Um, remind me to call John tomorrow at 3 pm",
		"buy milk and eggs and bread",
		"uh so like I mean the meeting is at 10 30 am",
		"wait....then call the plumber , uh , at 5 o'clock",
		"send the report send the report by friday",
		"Already clean sentence.",
		"finish taxes ASAP!",
	}
	for _, in := range inputs {
		once := Normalize(in)
		require.Equal(t, once, Normalize(once), "input %q", in)
	}
}

func TestNormalizePartial(t *testing.T) {
	require.Equal(t, "um hello there ,", NormalizePartial("  um  hello\tthere ,  "))
	require.Equal(t, "", NormalizePartial(""))
}

func TestNewCustomFillers(t *testing.T) {
	n := New([]string{"basically"})
	require.Equal(t, "Um, ship it.", n.Normalize("basically um, ship it"))
}
