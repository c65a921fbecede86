package listview

import "reflect"

// Filter is one named criterion. A nil Value means the filter is not set.
type Filter struct {
	Name  string
	Value any
	// OnRemove removes this filter from the controller that holds it. It is bound
	// by ChangeFilter; any value passed in is replaced.
	OnRemove func()
}

// Defined reports whether the filter carries a value
func (f Filter) Defined() bool {
	return isDefined(f.Value)
}

func isDefined(v any) bool {
	if v == nil {
		return false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return !rv.IsNil()
	}
	return true
}

// project flattens the defined filters into name→value. Pointer values are
// dereferenced so the result holds plain values only.
func project(filters map[string]Filter) map[string]any {
	out := make(map[string]any, len(filters))
	for name, f := range filters {
		if !f.Defined() {
			continue
		}
		if value := plain(f.Value); value != nil {
			out[name] = value
		}
	}
	return out
}

// plain follows pointers down to the value they hold. v must be defined.
func plain(v any) any {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	return rv.Interface()
}
