package extract

import "strings"

// highPriorityPrefixes marks selector names that should win a code
// collision. Membership is a prefix test on the full name.
var highPriorityPrefixes = []string{
	"kAudioObject",
	"kAudioDevice",
	"kAudioStream",
	"kAudioControl",
	"kAudioLevelControl",
	"kAudioPlugIn",
}

func highPriority(name string) bool {
	for _, prefix := range highPriorityPrefixes {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}

// Better reports whether selector name a should displace selector name b
// when both map to the same code. A high-priority name beats a normal
// one; otherwise the strictly shorter name wins, shorter names being the
// more generic variant (AudioDevice vs AudioClockDevice). Better is
// false on an exact tie, so the incumbent keeps its slot and the final
// table does not depend on scan order beyond that tie.
func Better(a, b string) bool {
	aHigh, bHigh := highPriority(a), highPriority(b)
	if aHigh == bHigh {
		return len(a) < len(b)
	}
	return aHigh
}

// insertSelector adds a (name, code) pair, maintaining the invariant
// that byCode holds at most one winning name per code. The losing name
// is removed from the forward table as well.
func insertSelector(selectors, byCode map[string]string, name, code string) {
	if incumbent, ok := byCode[code]; ok {
		if !Better(name, incumbent) {
			return
		}
		delete(selectors, incumbent)
	}
	selectors[name] = code
	byCode[code] = name
}
