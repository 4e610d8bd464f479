package state

// Option is a single formatting value with two-tier scoping. The working
// value lives here; local-override undo records live in the owning
// State's journal so they can be rolled back when their group closes.
type Option[T comparable] struct {
	val T
}

func (o *Option[T]) get() T  { return o.val }
func (o *Option[T]) set(v T) { o.val = v }

// journal is the modified-settings log. Each open group remembers the
// journal length at its creation; closing the group rolls back every
// record made after that mark, newest first.
type journal struct {
	recs []undoRec
}

type undoRec interface {
	owner() any
	rollback()
}

type undo[T comparable] struct {
	opt   *Option[T]
	saved T
}

func (u *undo[T]) owner() any { return u.opt }
func (u *undo[T]) rollback()  { u.opt.val = u.saved }

func (j *journal) mark() int { return len(j.recs) }

// recorded reports whether opt already has an undo record at or after
// mark. A group keeps at most one record per option; setting the same
// option locally twice inside one group only replaces the value.
func (j *journal) recorded(opt any, mark int) bool {
	for _, r := range j.recs[mark:] {
		if r.owner() == opt {
			return true
		}
	}
	return false
}

func (j *journal) rollbackTo(mark int) int {
	n := len(j.recs) - mark
	for i := len(j.recs) - 1; i >= mark; i-- {
		j.recs[i].rollback()
	}
	j.recs = j.recs[:mark]
	return n
}

// retarget points every outstanding undo record for opt at v, so a
// global write made while local overrides are active resurfaces when
// those overrides unwind instead of being clobbered by a stale restore.
func retarget[T comparable](j *journal, opt *Option[T], v T) {
	for _, r := range j.recs {
		if u, ok := r.(*undo[T]); ok && u.opt == opt {
			u.saved = v
		}
	}
}

// setScoped applies v to opt at the given scope. At local scope with no
// open group there is no restore point; the value simply becomes the
// working value.
func setScoped[T comparable](s *State, opt *Option[T], v T, scope Scope) {
	switch scope {
	case GlobalScope:
		opt.set(v)
		retarget(&s.log, opt, v)
	case LocalScope:
		if len(s.groups) == 0 {
			opt.set(v)
			return
		}
		m := s.groups[len(s.groups)-1].mark
		if !s.log.recorded(opt, m) {
			s.log.recs = append(s.log.recs, &undo[T]{opt: opt, saved: opt.get()})
		}
		opt.set(v)
	}
}
