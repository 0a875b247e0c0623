// Package lock serializes writes to one employee's day. Booking runs its
// conflict read and insert under the lock so two proposers for the same
// (tenant, employee, date) cannot both pass the check.
package lock

import (
	"context"
	"sort"
	"strings"
)

// Locker hands out exclusive leases on string keys. Lock blocks until the
// key is free or ctx is done.
type Locker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}

func SlotKey(tenantKey, employeeID, date string) string {
	return strings.Join([]string{"slot", tenantKey, employeeID, date}, ":")
}

// LockAll acquires every distinct key in sorted order, so two callers that
// need overlapping key sets cannot deadlock.
func LockAll(ctx context.Context, l Locker, keys ...string) (func(), error) {
	uniq := make([]string, 0, len(keys))
	seen := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		uniq = append(uniq, k)
	}
	sort.Strings(uniq)

	unlocks := make([]func(), 0, len(uniq))
	release := func() {
		for i := len(unlocks) - 1; i >= 0; i-- {
			unlocks[i]()
		}
	}

	for _, k := range uniq {
		u, err := l.Lock(ctx, k)
		if err != nil {
			release()
			return nil, err
		}
		unlocks = append(unlocks, u)
	}
	return release, nil
}
