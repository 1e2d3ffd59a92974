package codebank

// Recent remembers the ids shown most recently in a session so selection
// can steer away from repeats. The zero value is unusable; use NewRecent.
type Recent struct {
	ids []string
	max int
}

// NewRecent returns a memory that keeps at most max ids. A max of zero
// or less keeps nothing.
func NewRecent(max int) *Recent {
	return &Recent{max: max}
}

// Add records id as shown. Re-adding an id moves it to the newest slot.
func (r *Recent) Add(id string) {
	if r.max <= 0 {
		return
	}
	for i, existing := range r.ids {
		if existing == id {
			r.ids = append(r.ids[:i], r.ids[i+1:]...)
			break
		}
	}
	r.ids = append(r.ids, id)
	if len(r.ids) > r.max {
		r.ids = r.ids[len(r.ids)-r.max:]
	}
}

// IDs returns the remembered ids, oldest first.
func (r *Recent) IDs() []string {
	out := make([]string, len(r.ids))
	copy(out, r.ids)
	return out
}

// Next draws a problem avoiding the remembered ids and records it.
func (r *Recent) Next(b *Bank) CodeProblem {
	p := b.Random(r.IDs())
	r.Add(p.ID)
	return p
}
