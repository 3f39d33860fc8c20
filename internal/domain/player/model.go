package player

import "strings"

// Player is the canonical identity a scorecard name resolves to. One person
// usually owns several per-format careers and is reachable through several
// slugs: the scorecard name, the full name, and each token of the full name.
// Token players only accumulate references; they act as a coarse lookup
// index, not an owning record.
type Player struct {
	Slug       string
	Name       string
	FullName   string
	MasterRef  int64
	PlayerRefs []int64
	CareerIDs  []string
}

// Slugify normalizes a display name into a unique lookup key. Runs of
// non-alphanumeric characters collapse into a single dash.
func Slugify(name string) string {
	var b strings.Builder
	b.Grow(len(name))

	pendingDash := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		isAlnum := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if !isAlnum {
			pendingDash = b.Len() > 0
			continue
		}
		if pendingDash {
			b.WriteByte('-')
			pendingDash = false
		}
		b.WriteRune(r)
	}

	return b.String()
}

func (p Player) HasRef(ref int64) bool {
	for _, existing := range p.PlayerRefs {
		if existing == ref {
			return true
		}
	}
	return false
}

func (p Player) HasCareerID(careerID string) bool {
	for _, existing := range p.CareerIDs {
		if existing == careerID {
			return true
		}
	}
	return false
}
