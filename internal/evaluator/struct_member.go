package evaluator

import (
	"github.com/sunder-lang/sunderc/internal/tir"
	"github.com/sunder-lang/sunderc/internal/value"
)

// evalStructLit implements §4.4/§4.3: one value per member in declaration
// order. Structural validation (missing/duplicate/unknown members) has
// already happened in the resolver, so every field here is in range.
func (e *Evaluator) evalStructLit(n *tir.StructLit) (value.Value, error) {
	elems := make([]value.Value, len(n.Fields))
	for _, f := range n.Fields {
		v, err := e.EvalRValue(f.Value)
		if err != nil {
			return value.Value{}, err
		}
		elems[f.MemberIndex] = v
	}
	return value.NewStruct(n.Type(), elems), nil
}

// evalMemberAccess implements §4.3 "Member access": evaluate the base
// struct value and project out the resolved member index.
func (e *Evaluator) evalMemberAccess(n *tir.MemberAccess) (value.Value, error) {
	base, err := e.EvalRValue(n.Base)
	if err != nil {
		return value.Value{}, err
	}
	return base.Elements()[n.MemberIndex].Clone(), nil
}
