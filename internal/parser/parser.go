// Package parser implements the single-pass, byte-driven state machine that
// turns a UTF-8 dotenv buffer into an ordered sequence of ParsedEntry
// values. The states and transitions below are the contract: any two
// conforming implementations must parse the same input to the same
// sequence of entries, or raise an error at the same line and column.
package parser

import (
	"github.com/signalforge/dotenv-go/internal/dotenverr"
)

// ParsedEntry is a single (key, raw-value) pair emitted by the parser, with
// escape sequences already resolved and surrounding quotes stripped. Line
// and Column record where the key began, for diagnostics.
type ParsedEntry struct {
	Key    string
	Value  []byte
	Line   int
	Column int
}

type state int

const (
	stateLineStart state = iota
	stateKey
	stateAfterKey
	stateBeforeValue
	stateValueUnquoted
	stateValueSingle
	stateValueDouble
	stateValueBacktick
	stateLineEnd
	stateComment
)

type scanner struct {
	data []byte
	pos  int
	line int
	col  int
}

func newScanner(data []byte) *scanner {
	return &scanner{data: data, line: 1, col: 1}
}

func (s *scanner) atEOF() bool {
	return s.pos >= len(s.data)
}

func (s *scanner) current() byte {
	return s.data[s.pos]
}

func (s *scanner) peek(offset int) (byte, bool) {
	if s.pos+offset >= len(s.data) {
		return 0, false
	}
	return s.data[s.pos+offset], true
}

// advance consumes the current byte, updating line/column bookkeeping.
func (s *scanner) advance() {
	if s.data[s.pos] == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}
	s.pos++
}

// advanceN consumes n bytes in sequence.
func (s *scanner) advanceN(n int) {
	for i := 0; i < n; i++ {
		s.advance()
	}
}

func isKeyStart(b byte) bool {
	return b == '_' || (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

func isKeyCont(b byte) bool {
	return isKeyStart(b) || (b >= '0' && b <= '9')
}

func isInlineWhitespace(b byte) bool {
	return b == ' ' || b == '\t'
}

// escapeChar maps a double/backtick-quote escape character to its resolved
// byte and whether it is a recognized escape at all.
func escapeChar(b byte) (byte, bool) {
	switch b {
	case 'n':
		return '\n', true
	case 'r':
		return '\r', true
	case 't':
		return '\t', true
	case '\\':
		return '\\', true
	case '"':
		return '"', true
	case '\'':
		return '\'', true
	case '$':
		return '$', true
	case '`':
		return '`', true
	default:
		return 0, false
	}
}

// Parse runs the dotenv state machine over data, returning ordered entries
// or a dotenverr.Error of KindParse with the offending line and column.
func Parse(data []byte) ([]ParsedEntry, error) {
	s := newScanner(data)
	var entries []ParsedEntry

	st := stateLineStart
	var keyBuf []byte
	var valueBuf []byte
	var entryLine, entryCol int

	store := func(key string, value []byte) {
		entries = append(entries, ParsedEntry{
			Key:    key,
			Value:  append([]byte(nil), value...),
			Line:   entryLine,
			Column: entryCol,
		})
	}

	rtrimInline := func(b []byte) []byte {
		end := len(b)
		for end > 0 && isInlineWhitespace(b[end-1]) {
			end--
		}
		return b[:end]
	}

	for {
		switch st {
		case stateLineStart:
			if s.atEOF() {
				return entries, nil
			}
			b := s.current()
			switch {
			case b == ' ' || b == '\t' || b == '\r':
				s.advance()
			case b == '\n':
				s.advance()
			case b == '#':
				s.advance()
				st = stateComment
			case isKeyStart(b):
				entryLine, entryCol = s.line, s.col
				keyBuf = []byte{b}
				s.advance()
				st = stateKey
			default:
				return nil, dotenverr.AtPosition(s.line, s.col, "Invalid character at start of line")
			}

		case stateKey:
			if s.atEOF() {
				store(string(keyBuf), nil)
				return entries, nil
			}
			b := s.current()
			switch {
			case isKeyCont(b):
				keyBuf = append(keyBuf, b)
				s.advance()
			case b == '=' || b == ' ' || b == '\t':
				st = stateAfterKey // do not consume; re-examined under AFTER_KEY
			case b == '\n' || b == '\r':
				store(string(keyBuf), nil)
				s.advance()
				st = stateLineStart
			default:
				return nil, dotenverr.AtPosition(s.line, s.col, "Invalid character in key name")
			}

		case stateAfterKey:
			if s.atEOF() {
				store(string(keyBuf), nil)
				return entries, nil
			}
			b := s.current()
			switch {
			case b == ' ' || b == '\t':
				s.advance()
			case b == '=':
				s.advance()
				st = stateBeforeValue
			default:
				return nil, dotenverr.AtPosition(s.line, s.col, "Expected '=' after key")
			}

		case stateBeforeValue:
			if s.atEOF() {
				store(string(keyBuf), nil)
				return entries, nil
			}
			b := s.current()
			switch {
			case b == ' ' || b == '\t':
				s.advance()
			case b == '"':
				s.advance()
				valueBuf = nil
				st = stateValueDouble
			case b == '\'':
				s.advance()
				valueBuf = nil
				st = stateValueSingle
			case b == '`':
				s.advance()
				valueBuf = nil
				st = stateValueBacktick
			case b == '\n' || b == '\r':
				store(string(keyBuf), nil)
				s.advance()
				st = stateLineStart
			case b == '#':
				store(string(keyBuf), nil)
				s.advance()
				st = stateComment
			default:
				valueBuf = []byte{b}
				s.advance()
				st = stateValueUnquoted
			}

		case stateValueUnquoted:
			if s.atEOF() {
				store(string(keyBuf), rtrimInline(valueBuf))
				return entries, nil
			}
			b := s.current()
			switch {
			case b == '\n' || b == '\r':
				store(string(keyBuf), rtrimInline(valueBuf))
				s.advance()
				st = stateLineStart
			case b == '#' && len(valueBuf) > 0 && isInlineWhitespace(valueBuf[len(valueBuf)-1]):
				store(string(keyBuf), rtrimInline(valueBuf))
				s.advance()
				st = stateComment
			default:
				valueBuf = append(valueBuf, b)
				s.advance()
			}

		case stateValueSingle:
			if s.atEOF() {
				return nil, dotenverr.AtPosition(entryLine, entryCol, "Unterminated quoted string at end of file")
			}
			b := s.current()
			switch {
			case b == '\\':
				if next, ok := s.peek(1); ok && next == '\'' {
					valueBuf = append(valueBuf, '\'')
					s.advanceN(2)
				} else {
					valueBuf = append(valueBuf, '\\')
					s.advance()
				}
			case b == '\'':
				s.advance()
				store(string(keyBuf), valueBuf)
				st = stateLineEnd
			default:
				valueBuf = append(valueBuf, b)
				s.advance()
			}

		case stateValueDouble, stateValueBacktick:
			closing := byte('"')
			if st == stateValueBacktick {
				closing = '`'
			}
			if s.atEOF() {
				return nil, dotenverr.AtPosition(entryLine, entryCol, "Unterminated quoted string at end of file")
			}
			b := s.current()
			switch {
			case b == '\\':
				next, ok := s.peek(1)
				if !ok {
					return nil, dotenverr.AtPosition(entryLine, entryCol, "Unterminated quoted string at end of file")
				}
				if resolved, known := escapeChar(next); known {
					valueBuf = append(valueBuf, resolved)
				} else {
					valueBuf = append(valueBuf, next)
				}
				s.advanceN(2)
			case b == closing:
				s.advance()
				store(string(keyBuf), valueBuf)
				st = stateLineEnd
			default:
				valueBuf = append(valueBuf, b)
				s.advance()
			}

		case stateLineEnd:
			if s.atEOF() {
				return entries, nil
			}
			b := s.current()
			switch {
			case b == ' ' || b == '\t':
				s.advance()
			case b == '#':
				s.advance()
				st = stateComment
			case b == '\n' || b == '\r':
				s.advance()
				st = stateLineStart
			default:
				return nil, dotenverr.AtPosition(s.line, s.col, "Unexpected character after quoted value")
			}

		case stateComment:
			if s.atEOF() {
				return entries, nil
			}
			b := s.current()
			s.advance()
			if b == '\n' {
				st = stateLineStart
			}
		}
	}
}
