package head

import "unsafe"

// bytesToString returns a string sharing memory with b.
//
// Only used for committed records: their bytes are never written again while
// the buffer lives, so the view stays valid after the cursor moves on.
func bytesToString(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	return unsafe.String(unsafe.SliceData(b), len(b))
}
