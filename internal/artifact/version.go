package artifact

import (
	"path"
	"strconv"
	"strings"
)

// NextSnapshotKey returns the key for the next versioned snapshot of base
// under prefix: base_<n>.csv where n is one past the highest existing numeric
// suffix, or 0 when none exists.
func NextSnapshotKey(prefix, base string, existing []Info) string {
	next := 0
	for _, info := range existing {
		n, ok := snapshotVersion(base, path.Base(info.Key))
		if ok && n+1 > next {
			next = n + 1
		}
	}
	return path.Join(prefix, base+"_"+strconv.Itoa(next)+".csv")
}

func snapshotVersion(base, name string) (int, bool) {
	rest, ok := strings.CutPrefix(name, base+"_")
	if !ok {
		return 0, false
	}
	digits, ok := strings.CutSuffix(rest, ".csv")
	if !ok || digits == "" {
		return 0, false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, false
	}
	return n, true
}
