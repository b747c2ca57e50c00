package usage

import "errors"

// ErrLimitReached indicates the user has no analyses left this period.
var ErrLimitReached = errors.New("analysis limit reached")
