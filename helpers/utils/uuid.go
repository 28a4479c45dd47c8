// Package utils holds small stateless helpers shared across the HTTP
// adapter and CLI entrypoints.
package utils

import (
	"crypto/rand"
	"fmt"
)

// GenerateUUID mints a v4-shaped request identifier. Used to stamp
// every /normalize and /process request so the rollout-percentage
// hash (flags.checkRolloutPercentage) has something stable to key on.
// The id is not copied into the result or its trace.
func GenerateUUID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand on this platform is exhausted or unavailable;
		// b is still whatever rand.Read wrote before failing (usually
		// all zeroes), good enough for a non-cryptographic request id.
		return fmt.Sprintf("%x-%x-%x-%x-%x", b[0:4], b[4:6], b[6:8], b[8:10], b[10:])
	}
	return fmt.Sprintf("%x-%x-%x-%x-%x", b[0:4], b[4:6], b[6:8], b[8:10], b[10:])
}
