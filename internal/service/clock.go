package service

import "time"

// timeNow is swapped in tests that pin the activity-window boundary.
var timeNow = time.Now
