// Package filter provides predicates that prune a [cursor.PathCollection].
//
// Every filter implements [cursor.Filter] and can be passed to
// PathCollection.Filter (in place) or PathCollection.Filtered (copy). Each
// filter also exposes Keep, the raw predicate, and Filtered, a
// non-mutating variant.
//
// Filtering logs the path counts before and after, and the elapsed time,
// through [cursor.Logger] at info level.
package filter
