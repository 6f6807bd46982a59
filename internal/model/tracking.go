package model

// TrackedList is an ordered collection whose structural mutations
// (insert, remove, replace, clear) invoke a registered callback. It is
// the explicit mutation surface for collections that matter to
// unsaved-changes detection; owners wire the callback to their dirty
// flag instead of re-checking contents after every operation.
type TrackedList[T any] struct {
	items    []T
	onModify func()
}

// NewTrackedList creates a list that invokes onModify after every
// structural mutation. A nil callback is allowed.
func NewTrackedList[T any](onModify func()) *TrackedList[T] {
	return &TrackedList[T]{onModify: onModify}
}

func (l *TrackedList[T]) modified() {
	if l.onModify != nil {
		l.onModify()
	}
}

// Len returns the number of items.
func (l *TrackedList[T]) Len() int { return len(l.items) }

// At returns the item at index i.
func (l *TrackedList[T]) At(i int) T { return l.items[i] }

// All returns a copy of the underlying slice in order.
func (l *TrackedList[T]) All() []T {
	out := make([]T, len(l.items))
	copy(out, l.items)
	return out
}

// Append adds an item at the end.
func (l *TrackedList[T]) Append(item T) {
	l.items = append(l.items, item)
	l.modified()
}

// Insert places an item at index i, shifting later items right.
func (l *TrackedList[T]) Insert(i int, item T) {
	l.items = append(l.items, item)
	copy(l.items[i+1:], l.items[i:])
	l.items[i] = item
	l.modified()
}

// RemoveAt deletes the item at index i and returns it.
func (l *TrackedList[T]) RemoveAt(i int) T {
	item := l.items[i]
	l.items = append(l.items[:i], l.items[i+1:]...)
	l.modified()
	return item
}

// RemoveFunc deletes the first item matching the predicate. Returns
// false without invoking the callback if nothing matches.
func (l *TrackedList[T]) RemoveFunc(match func(T) bool) bool {
	for i, item := range l.items {
		if match(item) {
			l.RemoveAt(i)
			return true
		}
	}
	return false
}

// ReplaceAt swaps the item at index i.
func (l *TrackedList[T]) ReplaceAt(i int, item T) {
	l.items[i] = item
	l.modified()
}

// Clear removes all items. A no-op on an already empty list.
func (l *TrackedList[T]) Clear() {
	if len(l.items) == 0 {
		return
	}
	l.items = nil
	l.modified()
}

// Find returns the first item matching the predicate.
func (l *TrackedList[T]) Find(match func(T) bool) (T, bool) {
	for _, item := range l.items {
		if match(item) {
			return item, true
		}
	}
	var zero T
	return zero, false
}
