package lexer

import (
	"fmt"

	"fortio.org/safecast"

	"candidc/internal/source"
)

// Cursor walks the bytes of one file. Offsets fit uint32 because FileSet
// rejects larger files.
type Cursor struct {
	file source.FileID
	src  []byte
	Off  uint32
}

// Mark is a saved offset; SpanFrom turns it into a span ending at the cursor.
type Mark uint32

func NewCursor(f *source.File) Cursor {
	if _, err := safecast.Conv[uint32](len(f.Content)); err != nil {
		panic(fmt.Errorf("file %s too large for the lexer: %w", f.Path, err))
	}
	return Cursor{file: f.ID, src: f.Content}
}

func (c *Cursor) EOF() bool { return int(c.Off) >= len(c.src) }

// PeekAt returns the byte n positions ahead, or 0 past the end.
func (c *Cursor) PeekAt(n int) byte {
	i := int(c.Off) + n
	if i >= len(c.src) {
		return 0
	}
	return c.src[i]
}

func (c *Cursor) Peek() byte { return c.PeekAt(0) }

// Starts reports whether the remaining input begins with a then b.
func (c *Cursor) Starts(a, b byte) bool {
	return int(c.Off)+1 < len(c.src) && c.src[c.Off] == a && c.src[c.Off+1] == b
}

// Rest is the unread tail of the file.
func (c *Cursor) Rest() []byte { return c.src[c.Off:] }

func (c *Cursor) Bump() byte {
	b := c.Peek()
	if !c.EOF() {
		c.Off++
	}
	return b
}

// Advance skips n bytes, stopping at the end of input.
func (c *Cursor) Advance(n int) {
	if rest := len(c.src) - int(c.Off); n > rest {
		n = rest
	}
	c.Off += uint32(n) // #nosec G115 -- n is bounded by the file length
}

func (c *Cursor) Eat(b byte) bool {
	if c.EOF() || c.src[c.Off] != b {
		return false
	}
	c.Off++
	return true
}

func (c *Cursor) Mark() Mark        { return Mark(c.Off) }
func (c *Cursor) Reset(m Mark)      { c.Off = uint32(m) }
func (c *Cursor) Here() source.Span { return source.Span{File: c.file, Start: c.Off, End: c.Off} }

func (c *Cursor) SpanFrom(m Mark) source.Span {
	return source.Span{File: c.file, Start: uint32(m), End: c.Off}
}
