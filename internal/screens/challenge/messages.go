package challenge

import (
	"time"

	sess "github.com/abhisek/riseup/internal/session"
)

// sessionInitMsg is sent when the session has been created.
type sessionInitMsg struct {
	State *sess.State
	Err   error
}

// rhythmTickMsg drives the approach animation and target expiry.
type rhythmTickMsg time.Time

// finishedMsg is sent once the session has ended, carrying any error from
// the completion hook.
type finishedMsg struct {
	Err error
}
