package domain

// Zero overwrites the given byte slice with zeros.
//
// Use it (typically via defer) to wipe plaintext secrets and raw key
// material from memory as soon as they are no longer needed. It is a
// best-effort measure: Go's runtime may have copied the data elsewhere,
// but zeroing the slice we control still shrinks the exposure window.
func Zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
