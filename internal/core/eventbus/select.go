package eventbus

// Select subscribes to a projection of src. fn is called only when the
// projected value differs from the previous one according to equal. With
// replay set the current projection is delivered immediately.
func Select[T, U any](src *Topic[T], replay bool, project func(T) U, equal func(a, b U) bool, fn func(U)) *Subscription {
	var (
		prev U
		seen bool
	)

	return src.Subscribe(replay, func(v T) {
		next := project(v)
		if seen && equal(prev, next) {
			return
		}
		prev, seen = next, true
		fn(next)
	})
}

// SelectComparable is Select for projections that can be compared with ==.
func SelectComparable[T any, U comparable](src *Topic[T], replay bool, project func(T) U, fn func(U)) *Subscription {
	return Select(src, replay, project, func(a, b U) bool { return a == b }, fn)
}
