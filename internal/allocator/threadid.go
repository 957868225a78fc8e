package allocator

import "runtime"

// CurrentThreadID implements spec.md §6.2's current_thread_id(): a
// deterministic, cheap-to-compute identifier for the calling execution
// context. Go exposes no native thread id, so this derives one from the
// calling goroutine's id the same way
// _examples/other_examples's hyperdrive allocator's getGoroutineID parses
// runtime.Stack's "goroutine N [state]:" header — improved here to parse
// the digit run properly rather than summing byte values.
func CurrentThreadID() uint64 {
	var buf [64]byte

	n := runtime.Stack(buf[:], false)
	b := buf[:n]

	const prefix = "goroutine "
	if len(b) > len(prefix) && string(b[:len(prefix)]) == prefix {
		b = b[len(prefix):]
	}

	var id uint64

	for _, c := range b {
		if c < '0' || c > '9' {
			break
		}

		id = id*10 + uint64(c-'0')
	}

	return id
}
