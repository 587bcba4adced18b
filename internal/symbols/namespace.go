package symbols

// MergeNamespace unions src's members into dst, recursing into matching
// Namespace symbols (§4.2: "namespace merging ... recursively unions child
// tables"). A duplicate non-namespace symbol is a *Redeclared error unless
// the existing and incoming symbols are the same pointer — importing the
// same module twice must be idempotent, so re-merging its namespace is not
// itself an error, only merging two DIFFERENT symbols under one name is.
func MergeNamespace(dst, src *SymbolTable) error {
	for _, name := range src.Names() {
		incoming, _ := src.LookupLocal(name)
		existing, ok := dst.LookupLocal(name)
		if !ok {
			if err := dst.Insert(incoming, false); err != nil {
				return err
			}
			continue
		}
		if existing == incoming {
			continue
		}
		if existing.Kind == KindNamespace && incoming.Kind == KindNamespace {
			if err := MergeNamespace(existing.Namespace, incoming.Namespace); err != nil {
				return err
			}
			continue
		}
		return &Redeclared{Name: name, Prior: existing}
	}
	return nil
}
