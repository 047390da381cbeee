// Package diff computes the minimal set of create/update/delete operations
// needed to converge a keyed collection toward a caller-proposed next version.
package diff

import "reflect"

// Result partitions a proposed collection against the current one.
// Created elements carry no key yet or a key unknown to current; Updated
// elements share a key with current but differ by deep value equality;
// Deleted holds the keys present in current but absent from next.
type Result[T any] struct {
	Created []T
	Updated []T
	Deleted []string
}

// Empty reports whether the diff contains no operations.
func (r Result[T]) Empty() bool {
	return len(r.Created) == 0 && len(r.Updated) == 0 && len(r.Deleted) == 0
}

// Compute diffs next against current, identifying elements by the key
// function. Every changed element is reported, not just the first one found.
// Elements equal under deep value comparison produce no operation, so
// Compute(c, c, key) is always empty.
func Compute[T any](current, next []T, key func(T) string) Result[T] {
	currentByKey := make(map[string]T, len(current))
	for _, el := range current {
		currentByKey[key(el)] = el
	}

	nextKeys := make(map[string]struct{}, len(next))
	var result Result[T]

	for _, el := range next {
		k := key(el)
		if k != "" {
			nextKeys[k] = struct{}{}
		}

		existing, ok := currentByKey[k]
		if k == "" || !ok {
			result.Created = append(result.Created, el)
			continue
		}
		if !reflect.DeepEqual(existing, el) {
			result.Updated = append(result.Updated, el)
		}
	}

	for _, el := range current {
		if _, ok := nextKeys[key(el)]; !ok {
			result.Deleted = append(result.Deleted, key(el))
		}
	}

	return result
}
