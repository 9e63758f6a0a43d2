package domain

// Photo is the photo-viewer projection of one gallery image: the image itself
// plus the indices the viewer moves to on prev/next.
type Photo struct {
	Index   int
	Count   int
	DataURL string
	Width   int
	Height  int
	Prev    int
	Next    int
}

// NextPhoto returns the index after cur, wrapping to 0.
// It reports false when count is zero.
func NextPhoto(cur, count int) (int, bool) {
	if count <= 0 {
		return 0, false
	}
	return (cur + 1) % count, true
}

// PrevPhoto returns the index before cur, wrapping to count-1.
// It reports false when count is zero.
func PrevPhoto(cur, count int) (int, bool) {
	if count <= 0 {
		return 0, false
	}
	return (cur - 1 + count) % count, true
}
