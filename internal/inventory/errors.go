package inventory

import "errors"

var ErrUnknownTool = errors.New("unknown tool")
