package engine

import (
	"strings"
	"time"
)

// ServeSource the outcome of serve-path resolution. Exactly one of the
// three cases applies.
type ServeSource struct {
	// Bundle is the metadata-bearing bundle to build a manifest from.
	Bundle string

	// RollBackToEmbedded directs the client to its build-time update;
	// CommitTime is the creation time of the embedded-rollback marker.
	RollBackToEmbedded bool
	CommitTime         time.Time

	// NoUpdate is set when the channel holds nothing servable.
	NoUpdate bool
}

// ResolveServe resolves a channel's newest bundle to a manifest source, a
// rollback-to-embedded directive, or no update.
//
// A Rollback bundle's pointer target is used directly as the
// metadata-bearing bundle; it is not re-classified or re-walked here.
func (e *Engine) ResolveServe(ch Channel) (ServeSource, error) {
	cat, err := e.LoadCatalog(ch)
	if err != nil {
		return ServeSource{}, err
	}
	latest := cat.Latest()
	if latest == "" {
		return ServeSource{NoUpdate: true}, nil
	}

	switch e.ClassifyBundle(cat, latest) {
	case KindNormalUpdate:
		return ServeSource{Bundle: latest}, nil

	case KindRollback:
		target, err := e.readRollbackPointer(ch, latest)
		if err != nil {
			return ServeSource{}, err
		}
		return ServeSource{Bundle: target}, nil

	case KindRollbackEmbedded:
		markerPath := e.cfg.BundlePath(ch, latest, e.cfg.RollbackEmbeddedFileName)
		info, err := e.store.StatObject(markerPath)
		if err != nil {
			return ServeSource{}, err
		}
		return ServeSource{RollBackToEmbedded: true, CommitTime: info.CreatedAt}, nil

	default:
		return ServeSource{NoUpdate: true}, nil
	}
}

// RollbackTarget the outcome of write-path resolution for a new
// "rollback to previous" request.
type RollbackTarget struct {
	// Embedded directs writing an embedded-rollback marker instead of a
	// pointer.
	Embedded bool

	// Bundle is the NormalUpdate bundle a new rollback pointer should
	// reference.
	Bundle string
}

// PreviousUpdateTarget computes which bundle a new rollback pointer should
// reference, per the policy for the newest bundle's kind. All scans walk
// the finite catalog strictly toward older timestamps, so every branch
// terminates within Len() steps. Branches that cannot find a required
// NormalUpdate bundle return ErrNoPreviousUpdate.
func (e *Engine) PreviousUpdateTarget(ch Channel) (RollbackTarget, error) {
	cat, err := e.LoadCatalog(ch)
	if err != nil {
		return RollbackTarget{}, err
	}
	latest := cat.Latest()
	if latest == "" {
		return RollbackTarget{}, ErrNoPreviousUpdate
	}

	switch e.ClassifyBundle(cat, latest) {
	case KindNormalUpdate:
		// Roll back to the bundle immediately older than the newest;
		// with nothing older, fall back to the embedded update.
		if older := cat.At(1); older != "" {
			return RollbackTarget{Bundle: older}, nil
		}
		return RollbackTarget{Embedded: true}, nil

	case KindRollback:
		ptr, err := e.readRollbackPointer(ch, latest)
		if err != nil {
			return RollbackTarget{}, err
		}
		pos := cat.IndexOf(ptr)
		if pos < 0 {
			// Malformed pointer: target missing from the catalog
			// (including equal/newer timestamps).
			return RollbackTarget{}, ErrNoPreviousUpdate
		}
		if ts := e.scanForNormal(cat, pos+1); ts != "" {
			return RollbackTarget{Bundle: ts}, nil
		}
		return RollbackTarget{Embedded: true}, nil

	case KindRollbackEmbedded:
		older := cat.At(1)
		if older == "" {
			return RollbackTarget{}, ErrNoPreviousUpdate
		}
		switch e.ClassifyBundle(cat, older) {
		case KindNormalUpdate:
			// Never roll back to the channel's very first bundle.
			if cat.At(2) == "" {
				return RollbackTarget{}, ErrNoPreviousUpdate
			}
			return RollbackTarget{Bundle: older}, nil
		case KindRollback:
			ptr, err := e.readRollbackPointer(ch, older)
			if err != nil {
				return RollbackTarget{}, err
			}
			pos := cat.IndexOf(ptr)
			if pos < 0 {
				return RollbackTarget{}, ErrNoPreviousUpdate
			}
			if ts := e.scanForNormal(cat, pos+1); ts != "" {
				return RollbackTarget{Bundle: ts}, nil
			}
			// This sub-case does not fall back to the embedded update.
			return RollbackTarget{}, ErrNoPreviousUpdate
		default:
			return RollbackTarget{}, ErrNoPreviousUpdate
		}

	default:
		return RollbackTarget{}, ErrNoPreviousUpdate
	}
}

// scanForNormal walks from catalog position start toward older bundles and
// returns the first NormalUpdate timestamp, or "".
func (e *Engine) scanForNormal(cat *Catalog, start int) string {
	for i := start; i < cat.Len(); i++ {
		if e.ClassifyBundle(cat, cat.At(i)) == KindNormalUpdate {
			return cat.At(i)
		}
	}
	return ""
}

// readRollbackPointer reads the timestamp a Rollback bundle points at.
func (e *Engine) readRollbackPointer(ch Channel, bundle string) (string, error) {
	path := e.cfg.BundlePath(ch, bundle, e.cfg.RollbackFileName)
	data, _, err := e.store.ReadObject(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}
