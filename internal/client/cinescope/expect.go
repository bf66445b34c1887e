package cinescope

// expectOr returns the caller's declared status or the operation default.
func expectOr(def int, expect []int) int {
	if len(expect) > 0 && expect[0] != 0 {
		return expect[0]
	}
	return def
}
