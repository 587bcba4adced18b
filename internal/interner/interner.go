// Package interner provides the two process-wide ownership primitives the
// rest of the front-end builds on: identifier interning (pointer equality
// on interned strings) and the freezer arena (append-only ownership of
// long-lived IR/symbol/value nodes), both described in spec §3 and §9.
package interner

import "sync"

// Ident is an interned identifier. Two Idents are the same identifier iff
// they are the same pointer.
type Ident struct {
	Text string
}

// Interner canonicalizes identifier text to a single *Ident per distinct
// string, so that identifier equality reduces to pointer equality as §3
// requires. Never releases entries — identifiers live for the process.
type Interner struct {
	mu    sync.Mutex
	table map[string]*Ident
}

// New returns an empty Interner. Each Interner is an independent namespace;
// the compiler driver holds exactly one for the whole compilation, per §5's
// "singleton collaborators" rule.
func New() *Interner {
	return &Interner{table: make(map[string]*Ident)}
}

// Intern returns the canonical *Ident for text, creating it on first use.
func (in *Interner) Intern(text string) *Ident {
	in.mu.Lock()
	defer in.mu.Unlock()
	if id, ok := in.table[text]; ok {
		return id
	}
	id := &Ident{Text: text}
	in.table[text] = id
	return id
}

// Freezer is an append-only arena that takes ownership of long-lived nodes
// for the duration of compilation (§3 "Lifecycle", §9 "Arena ownership").
// Unlike Interner it does not deduplicate — it exists purely to give a
// single place that "owns" nodes whose lifetime must outlast the pass that
// created them, so that nothing downstream needs to reason about who is
// responsible for freeing what. Its own bookkeeping is mutex-protected out
// of caution, even though §5 specifies single-threaded access.
type Freezer struct {
	mu    sync.Mutex
	owned []interface{}
}

// NewFreezer returns an empty Freezer.
func NewFreezer() *Freezer {
	return &Freezer{}
}

// Own records that node is now owned by the freezer and returns it
// unchanged, so call sites can write `x := interner.Own(freezer, construct())`.
func Own[T any](f *Freezer, node T) T {
	f.mu.Lock()
	f.owned = append(f.owned, node)
	f.mu.Unlock()
	return node
}

// Len reports how many nodes the freezer currently owns (diagnostic use,
// e.g. the driver's `nodes=` log field).
func (f *Freezer) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.owned)
}
