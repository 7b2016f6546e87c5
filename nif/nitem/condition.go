package nitem

func toState(b bool) int8 {
	if b {
		return stateTrue
	}
	return stateFalse
}

// Condition reports whether the item is present: its version condition holds, its parent is
// present and its cond expression is true. The result is cached until invalidated.
func (r *Item) Condition() bool {
	if !r.VersionCondition() {
		return false
	}
	if r.condition != stateUnset {
		return r.condition == stateTrue
	}
	result := r.evalCondition()
	r.condition = toState(result)
	return result
}

func (r *Item) evalCondition() bool {
	if r.parent == nil || r.field.IsConditionless() {
		return true
	}
	if !r.parent.Condition() {
		return false
	}
	cond := r.field.CondExpr()
	if cond.IsEmpty() {
		return true
	}
	return cond.EvaluateBool(r.resolver())
}

// VersionCondition checks the field's version range against the host's version and then its
// vercond expression, both cached until invalidated. A version of 0 skips the range check.
func (r *Item) VersionCondition() bool {
	if r.versionCondition != stateUnset {
		return r.versionCondition == stateTrue
	}
	result := r.evalVersionCondition()
	r.versionCondition = toState(result)
	return result
}

func (r *Item) evalVersionCondition() bool {
	if r.parent == nil {
		return true
	}
	if !r.parent.VersionCondition() {
		return false
	}
	if version := r.version(); version != 0 && !r.field.EvalVersion(version) {
		return false
	}
	vercond := r.field.VerCondExpr()
	if vercond.IsEmpty() {
		return true
	}
	return vercond.EvaluateBool(r.versionResolver())
}

// SetCondition overrides the cached presence of the item.
func (r *Item) SetCondition(status bool) {
	r.condition = toState(status)
}

func (r *Item) SetVersionCondition(status bool) {
	r.versionCondition = toState(status)
}

func (r *Item) IsConditionCached() bool {
	return r.condition != stateUnset
}

func (r *Item) IsVersionConditionCached() bool {
	return r.versionCondition != stateUnset
}

// InvalidateCondition drops the cached condition of the item and all of its descendants.
func (r *Item) InvalidateCondition() {
	r.condition = stateUnset
	r.arrConds = nil
	for _, c := range r.children {
		c.InvalidateCondition()
	}
}

// InvalidateVersionCondition drops the cached version condition of the item and all of its
// descendants.
func (r *Item) InvalidateVersionCondition() {
	r.versionCondition = stateUnset
	for _, c := range r.children {
		c.InvalidateVersionCondition()
	}
}
