package booking

import "errors"

// ErrNoPendingAction is returned when a confirm or cancel signal arrives
// with nothing outstanding for the user. A client-usage error, not a
// system fault.
var ErrNoPendingAction = errors.New("no pending action found")
