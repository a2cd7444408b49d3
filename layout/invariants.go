package layout

import (
	"errors"
	"fmt"

	"github.com/tsawler/textlines/logger"
)

// ErrInvariant is wrapped by every error CheckInvariants reports
var ErrInvariant = errors.New("line invariant violated")

// CheckInvariants verifies that every subgroup mask matches its group,
// that subgroups are non-empty and in group order, and that lines and
// groups reference each other symmetrically
func CheckInvariants(ls *Lines) error {
	var errs []error
	fail := func(format string, args ...interface{}) {
		errs = append(errs, fmt.Errorf("%w: %s", ErrInvariant, fmt.Sprintf(format, args...)))
	}

	for _, id := range ls.IDs() {
		l := ls.lines[id]
		prev := -1 << 31
		for _, s := range l.subgroups {
			g := s.Group()
			if g == nil {
				fail("line %d has a subgroup without group", id)
				continue
			}
			if s.Len() != g.Len() {
				fail("line %d group %d: mask length %d, want %d", id, g.Index(), s.Len(), g.Len())
			}
			if s.IsEmpty() {
				fail("line %d group %d: empty subgroup", id, g.Index())
			}
			if g.Index() < prev {
				fail("line %d: group %d after group %d", id, g.Index(), prev)
			}
			prev = g.Index()
			if !g.HasLine(id) {
				fail("line %d: group %d does not reference it", id, g.Index())
			}
		}
	}

	for _, g := range ls.groups {
		for _, id := range g.Lines() {
			l, ok := ls.lines[id]
			if !ok {
				fail("group %d references missing line %d", g.Index(), id)
				continue
			}
			if !l.Contains(g) {
				fail("group %d references line %d which does not hold it", g.Index(), id)
			}
		}
	}
	return errors.Join(errs...)
}

// check runs CheckInvariants after a pass when enabled
func (ls *Lines) check(pass string) {
	if !ls.cfg.CheckInvariants {
		return
	}
	if err := CheckInvariants(ls); err != nil {
		logger.Error("line invariants violated", "pass", pass, "err", err)
	}
}
