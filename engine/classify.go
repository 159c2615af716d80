package engine

// UpdateKind the update semantics of one bundle, derived from its marker
// files.
type UpdateKind int

const (
	// KindUndefined no bundle present at all. Distinct from the kinds of
	// an existing bundle; callers must treat it as "no bundles", never as
	// a classification.
	KindUndefined UpdateKind = iota

	// KindNormalUpdate a regular servable update bundle.
	KindNormalUpdate

	// KindRollback a bundle whose rollback marker points at an older
	// bundle to serve instead.
	KindRollback

	// KindRollbackEmbedded a bundle directing clients back to the update
	// embedded at app build time.
	KindRollbackEmbedded
)

// String implements fmt.Stringer.
func (k UpdateKind) String() string {
	switch k {
	case KindNormalUpdate:
		return "normal_update"
	case KindRollback:
		return "rollback"
	case KindRollbackEmbedded:
		return "rollback_embedded"
	default:
		return "undefined"
	}
}

// Classify returns the update kind for one bundle's file name set. The
// embedded marker takes precedence over the rollback marker when both are
// present.
func Classify(files []string, rollbackEmbeddedName, rollbackName string) UpdateKind {
	if len(files) == 0 {
		return KindUndefined
	}
	hasEmbedded := false
	hasRollback := false
	for _, f := range files {
		switch f {
		case rollbackEmbeddedName:
			hasEmbedded = true
		case rollbackName:
			hasRollback = true
		}
	}
	if hasEmbedded {
		return KindRollbackEmbedded
	}
	if hasRollback {
		return KindRollback
	}
	return KindNormalUpdate
}
