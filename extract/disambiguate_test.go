package extract_test

import (
	"testing"

	"github.com/c360studio/castrings/extract"
)

func TestBetter(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want bool
	}{
		{
			name: "high priority beats normal",
			a:    "kAudioDevicePropertyStreams",
			b:    "kAudioClockDevicePropertyStreams",
			want: true,
		},
		{
			name: "normal loses to high priority",
			a:    "kAudioClockDevicePropertyStreams",
			b:    "kAudioDevicePropertyStreams",
			want: false,
		},
		{
			name: "high priority beats normal even when longer",
			a:    "kAudioLevelControlPropertyDecibelValue",
			b:    "kAudioBoxPropertyX",
			want: true,
		},
		{
			name: "both high priority, shorter wins",
			a:    "kAudioDevicePropertyStreams",
			b:    "kAudioStreamPropertyTerminalType",
			want: true,
		},
		{
			name: "both high priority, longer loses",
			a:    "kAudioStreamPropertyTerminalType",
			b:    "kAudioDevicePropertyStreams",
			want: false,
		},
		{
			name: "neither high priority, shorter wins",
			a:    "kAudioBoxPropertyFoo",
			b:    "kAudioClockDevicePropertyFoo",
			want: true,
		},
		{
			name: "exact tie keeps incumbent",
			a:    "kAudioBoxPropertyAB",
			b:    "kAudioTapPropertyCD",
			want: false,
		},
		{
			name: "identical name is not better than itself",
			a:    "kAudioDevicePropertyStreams",
			b:    "kAudioDevicePropertyStreams",
			want: false,
		},
		{
			name: "prefix membership is not substring containment",
			a:    "kAudioClockDevicePropertyFoo",
			b:    "kAudioBoxPropertyLongerName12",
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extract.Better(tt.a, tt.b); got != tt.want {
				t.Errorf("Better(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

// Better must be asymmetric except on exact ties, otherwise the final
// table would depend on discovery order.
func TestBetterAsymmetry(t *testing.T) {
	names := []string{
		"kAudioDevicePropertyStreams",
		"kAudioClockDevicePropertyStreams",
		"kAudioBoxPropertyFoo",
		"kAudioObjectPropertyName",
		"kAudioTapPropertyCD",
	}

	for _, a := range names {
		for _, b := range names {
			if a == b {
				continue
			}
			if extract.Better(a, b) && extract.Better(b, a) {
				t.Errorf("Better is symmetric for %q and %q", a, b)
			}
		}
	}
}
