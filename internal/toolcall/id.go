// internal/toolcall/id.go
package toolcall

import (
	"fmt"
	"sync/atomic"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const idAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

var callSeq atomic.Uint64

// newCallID returns a fresh call identifier. The wall-clock second gives
// provenance, the process-wide counter keeps ids produced within the same
// tick distinct, and the nanoid suffix keeps ids from colliding across
// processes.
func newCallID() string {
	suffix, err := gonanoid.Generate(idAlphabet, 8)
	if err != nil {
		suffix = "00000000"
	}
	return fmt.Sprintf("toolcall-%d-%d-%s", time.Now().Unix(), callSeq.Add(1), suffix)
}
