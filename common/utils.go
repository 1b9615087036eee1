// utils.go
// Purpose: Small helpers shared by the network codec and the panel emulator.
package common

// TrimZeros strips the zero padding of a fixed-size frame.
func TrimZeros(b []byte) []byte {
	i := len(b)
	for i > 0 && b[i-1] == 0 {
		i--
	}
	return b[:i]
}
