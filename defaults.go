package rowtypes

// Coalesce returns def when v is the zero value of T - otherwise v. Used
// across buftypes/enctypes to fill unset Hooks/Logger options with their nop
// implementations.
func Coalesce[T comparable](v, def T) T {
	var zero T
	if v == zero {
		return def
	}
	return v
}
