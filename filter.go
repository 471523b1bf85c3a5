package cursor

import "reflect"

// Filter prunes a collection in place. Implementations live in the filter
// package; PathCollection.Filter and PathCollection.Filtered dispatch to
// them.
type Filter interface {
	Apply(pc *PathCollection)
}

// FilterFunc adapts a keep predicate to the Filter interface.
type FilterFunc func(p *Path) bool

// Apply keeps the paths for which f returns true.
func (f FilterFunc) Apply(pc *PathCollection) {
	pc.Retain(f)
}

func isNilFilter(f Filter) bool {
	if f == nil {
		return true
	}
	switch v := reflect.ValueOf(f); v.Kind() {
	case reflect.Pointer, reflect.Func:
		return v.IsNil()
	}
	return false
}
