package player

import (
	"bufio"
	"io"
)

// lineConn buffers a connection's input so the slot prompts and the command
// loop read from the same reader.
type lineConn struct {
	*bufio.Reader
	io.Writer
	// panel is set when the connection can show the map in place.
	panel panel
}

func newLineConn(rw io.ReadWriter) *lineConn {
	if lc, ok := rw.(*lineConn); ok {
		return lc
	}

	lc := &lineConn{Reader: bufio.NewReader(rw), Writer: rw}
	if p, ok := rw.(panel); ok {
		p.BindKeys(panelKeys)
		lc.panel = p
	}
	return lc
}
