package config

import "github.com/google/uuid"

// BuildID is generated once per compiler invocation and tagged onto every
// log line and diagnostic the driver emits, so a user pasting a bug report
// gives the maintainers an unambiguous handle on which run produced it.
var BuildID = uuid.NewString()
