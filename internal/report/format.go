// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Output formats

package report

import "errors"

// Output formats
const (
	FormatJSON = "json"
	FormatText = "text"
)

// ErrUnknownFormat is returned for a format other than json or text
var ErrUnknownFormat = errors.New("unknown output format")
