package vkboot

import (
	"cmp"
	"unsafe"
)

// safeString makes sure a string is NUL-terminated before it crosses the
// API boundary.
func safeString(s string) string {
	if len(s) == 0 {
		return "\x00"
	}
	if s[len(s)-1] != '\x00' {
		return s + "\x00"
	}
	return s
}

// safeStrings terminates every entry of a name list in place and returns it.
func safeStrings(list []string) []string {
	for i := range list {
		list[i] = safeString(list[i])
	}
	return list
}

// trimNul strips the terminator again for map lookups and messages.
func trimNul(s string) string {
	for len(s) > 0 && s[len(s)-1] == '\x00' {
		s = s[:len(s)-1]
	}
	return s
}

// sliceUint32 reinterprets SPIR-V bytes as the 32-bit words the shader
// module create call consumes. The caller guarantees len(data) is a
// multiple of four.
func sliceUint32(data []byte) []uint32 {
	if len(data) < 4 {
		return nil
	}
	return unsafe.Slice((*uint32)(unsafe.Pointer(&data[0])), len(data)/4)
}

func clamp[T cmp.Ordered](val, min, max T) T {
	if val < min {
		val = min
	}
	if val > max {
		val = max
	}
	return val
}
