package views

import (
	"context"
	"fmt"
)

// entry is a computed view and the ledger revision it was computed from.
type entry struct {
	revision uint64
	value    any
}

// lookup returns the cached value for key when it is as new as the ledger,
// and otherwise rebuilds it. Concurrent rebuilds of one key are shared.
// The revision is read before the build starts, so a write that lands
// during the build makes the next read rebuild again.
func lookup[T any](ctx context.Context, v *Views, view, key string, build func(context.Context) (T, error)) (T, error) {
	rev := v.ledger.Revision()

	v.mu.RLock()
	e, ok := v.entries[key]
	v.mu.RUnlock()
	if ok && e.revision >= rev {
		cacheHits.WithLabelValues(view).Inc()
		return e.value.(T), nil
	}
	cacheMisses.WithLabelValues(view).Inc()

	// Joined callers share the first caller's ctx and revision. Writes do
	// not overlap serving reads, so a joiner never needs a newer build.
	res, err, _ := v.group.Do(key, func() (any, error) {
		rev := v.ledger.Revision()
		v.mu.RLock()
		e, ok := v.entries[key]
		v.mu.RUnlock()
		if ok && e.revision >= rev {
			return e.value, nil
		}

		cacheRebuilds.WithLabelValues(view).Inc()
		value, err := build(ctx)
		if err != nil {
			return nil, err
		}

		v.mu.Lock()
		v.entries[key] = &entry{revision: rev, value: value}
		v.mu.Unlock()

		v.log(ctx).Debug().Str("view", key).Uint64("revision", rev).Msg("Rebuilt view")
		return value, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}

	value, ok := res.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("view %s: unexpected type %T", key, res)
	}
	return value, nil
}

// Invalidate drops every cached view.
func (v *Views) Invalidate() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.entries = make(map[string]*entry)
}
