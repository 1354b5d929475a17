package scanner

import (
	"slices"
)

type Pos struct {
	Line int
	Col  int
}

// A Scanner reads bytes from a document held in memory, keeping track of the
// line and column of the current position so errors can point at the input.
type Scanner struct {
	buf []byte

	// Current position in buf
	// 0 <= currentIndex <= len(buf)
	currentIndex int

	// Records lineno and colno of current position (from when the scanning
	// started)
	currentPos, prevPos Pos

	// Position in buf of the currently recorded token.
	// -1 means not recording a token
	tokenStartIndex int

	// Tracks how many EOFs have been read.  This is required to make
	// Back() work after an EOF has been read.
	eofCount int
}

// NewScanner returns a Scanner positioned at the start of buf.  The scanner
// does not copy buf, which must not be modified while scanning.
func NewScanner(buf []byte) *Scanner {
	return &Scanner{
		buf:             buf,
		tokenStartIndex: -1,
		prevPos:         Pos{Line: -1},
	}
}

// Read returns the next byte and advances, or EOF when the input is
// exhausted.
func (s *Scanner) Read() byte {
	if s.currentIndex >= len(s.buf) {
		s.eofCount++
		return EOF
	}
	b := s.buf[s.currentIndex]
	s.prevPos = s.currentPos
	switch {
	case b == '\n':
		s.currentPos.Line++
		s.currentPos.Col = 0
	case b < 0x80 || b >= 0xC0:
		// Continuation bytes of a utf8-encoded codepoint don't move the column
		s.currentPos.Col++
	}
	s.currentIndex++
	return b
}

// Peek returns the next byte without advancing.
func (s *Scanner) Peek() byte {
	if s.currentIndex >= len(s.buf) {
		return EOF
	}
	return s.buf[s.currentIndex]
}

// Done reports whether all the input has been consumed.
func (s *Scanner) Done() bool {
	return s.currentIndex >= len(s.buf)
}

func (s *Scanner) StartToken() Pos {
	if s.tokenStartIndex >= 0 {
		panic("already in record mode")
	}
	s.tokenStartIndex = s.currentIndex
	return s.currentPos
}

func (s *Scanner) CurrentPos() Pos {
	return s.currentPos
}

// EndToken returns the bytes read since the last call to StartToken.  The
// returned slice is a copy and may be retained.
func (s *Scanner) EndToken() []byte {
	if s.tokenStartIndex < 0 {
		panic("not in record mode")
	}
	tokBytes := slices.Clone(s.buf[s.tokenStartIndex:s.currentIndex])
	s.tokenStartIndex = -1
	return tokBytes
}

// Back undoes the last Read.  It can only be called once between reads.
func (s *Scanner) Back() {
	if s.eofCount > 0 {
		s.eofCount--
		return
	}
	if s.currentIndex <= 0 || s.currentIndex <= s.tokenStartIndex {
		panic("cannot go back from start")
	}
	if s.prevPos.Line < 0 {
		panic("cannot go back twice")
	}
	s.currentIndex--
	s.currentPos = s.prevPos
	s.prevPos.Line = -1
}

// SkipSpaceAndPeek skips JSON whitespace and returns the next byte without
// consuming it.
func (s *Scanner) SkipSpaceAndPeek() byte {
	for i, b := range s.buf[s.currentIndex:] {
		switch {
		case b == '\n':
			s.currentPos.Line++
			s.currentPos.Col = 0
		case b == ' ' || b == '\t' || b == '\r':
			s.currentPos.Col++
		default:
			s.currentIndex += i
			s.prevPos.Line = -1
			return b
		}
	}
	s.currentIndex = len(s.buf)
	s.prevPos.Line = -1
	return EOF
}

// 0xFF is a byte that should not appear in a UTF-8 encoded stream of bytes.
const EOF byte = 0xFF
