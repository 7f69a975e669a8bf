package convert

import "time"

// timeNow is indirected for tests that pin the summary timestamp.
var timeNow = time.Now
