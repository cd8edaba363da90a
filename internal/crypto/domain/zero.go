package domain

// Zero overwrites key material so it does not linger in memory after use.
func Zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
