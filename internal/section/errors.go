// Package section defines the closed set of README sections and plans which
// of them a run generates, and in what order.
package section

import "errors"

// ErrUnknownSection indicates a requested section name matches no registered section.
var ErrUnknownSection = errors.New("unknown section")
