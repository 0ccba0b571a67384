// seehuhn.de/go/pslite - a minimal PostScript-like stack interpreter
// Copyright (C) 2023  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package pslite

import (
	"errors"
	"io"
	"math"
	"strconv"
)

// TokenKind classifies a lexeme.
type TokenKind uint8

// These are the token classifications produced by the scanner.
const (
	IntegerToken TokenKind = iota + 1
	RealToken
	NameToken
	StringToken
	CommentToken
	ErrorToken
)

func (k TokenKind) String() string {
	switch k {
	case IntegerToken:
		return "Integer"
	case RealToken:
		return "Real"
	case NameToken:
		return "Name"
	case StringToken:
		return "String"
	case CommentToken:
		return "Comment"
	case ErrorToken:
		return "Error"
	default:
		return "TokenKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Token is a classified lexeme.
type Token struct {
	Kind   TokenKind
	Lexeme string

	// Line and Col give the position of the first byte of the token.
	// Both are 0-based.
	Line, Col int

	intVal  int64
	realVal float64
}

// Object converts the token into an object.  Comments and error tokens
// have no object representation.
func (t Token) Object() (Object, error) {
	switch t.Kind {
	case IntegerToken:
		return Integer(t.intVal), nil
	case RealToken:
		return Real(t.realVal), nil
	case NameToken:
		if len(t.Lexeme) > 0 && t.Lexeme[0] == '/' {
			return Name(t.Lexeme[1:]), nil
		}
		return ExecName(t.Lexeme), nil
	case StringToken:
		return String([]byte(t.Lexeme)), nil
	default:
		return Object{}, e(ScanError, "%d:%d: no object for %s token %q",
			t.Line+1, t.Col+1, t.Kind, t.Lexeme)
	}
}

type scanState uint8

const (
	stateNone scanState = iota
	stateInteger
	stateReal
	stateName
	stateComment
)

// Scanner splits program text into tokens.
type Scanner struct {
	Line int // 0-based
	Col  int // 0-based

	r         io.Reader
	buf       []byte
	pos, used int

	// err is the first error returned by r.Read().
	// Once an error has been returned, all subsequent calls to .refill() will
	// return err.
	err error
}

// NewScanner returns a scanner which reads program text from r.
func NewScanner(r io.Reader) *Scanner {
	return &Scanner{
		r:   r,
		buf: make([]byte, 512),
	}
}

// Next returns the next token.  At the end of input, io.EOF is returned.
// Read errors other than io.EOF are reported as IOError.
func (s *Scanner) Next() (Token, error) {
	state := stateNone
	var lexeme []byte
	var line, col int

	// numeric sub-state
	var digits, expDigits bool
	var inExp bool

	for {
		b, err := s.peek()
		if err == io.EOF {
			break
		} else if err != nil {
			return Token{}, wrap(IOError, err, "read program")
		}

		if b == '\r' {
			s.skipByte()
			continue
		}

		switch state {
		case stateNone:
			s.skipByte()
			switch {
			case isSpace(b):
				continue
			case b == '%':
				state = stateComment
			case isDigit(b):
				state = stateInteger
				digits = true
			case b == '+' || b == '-':
				state = stateInteger
			case b == '.':
				state = stateReal
			default:
				state = stateName
			}
			line, col = s.Line, s.Col-1
			if state != stateComment {
				lexeme = append(lexeme, b)
			}
			continue

		case stateComment:
			s.skipByte()
			if b == '\n' {
				return Token{Kind: CommentToken, Lexeme: string(lexeme), Line: line, Col: col}, nil
			}
			lexeme = append(lexeme, b)
			continue
		}

		if isSpace(b) {
			// the terminating whitespace is consumed with the token
			s.skipByte()
			break
		}
		s.skipByte()
		lexeme = append(lexeme, b)

		switch state {
		case stateInteger:
			switch {
			case isDigit(b):
				digits = true
			case b == '.':
				state = stateReal
			case b == 'E' || b == 'e':
				state = stateReal
				inExp = true
			default:
				state = stateName
			}
		case stateReal:
			last := lexeme[len(lexeme)-2]
			switch {
			case isDigit(b):
				if inExp {
					expDigits = true
				} else {
					digits = true
				}
			case (b == 'E' || b == 'e') && !inExp:
				inExp = true
			case (b == '+' || b == '-') && inExp && (last == 'E' || last == 'e'):
				// sign of the exponent
			default:
				state = stateName
			}
		}
	}

	if state == stateNone {
		return Token{}, io.EOF
	}
	tok := Token{Lexeme: string(lexeme), Line: line, Col: col}
	switch state {
	case stateComment:
		tok.Kind = CommentToken
	case stateName:
		tok.Kind = NameToken
	case stateInteger:
		if !digits {
			// a lone sign
			tok.Kind = NameToken
			break
		}
		x, err := strconv.ParseInt(tok.Lexeme, 10, 64)
		if errors.Is(err, strconv.ErrRange) {
			// too large for an integer, use a real instead
			return s.finishReal(tok)
		} else if err != nil {
			tok.Kind = ErrorToken
			return tok, e(ScanError, "%d:%d: invalid integer %q", line+1, col+1, tok.Lexeme)
		}
		tok.Kind = IntegerToken
		tok.intVal = x
	case stateReal:
		if !digits || inExp && !expDigits {
			tok.Kind = NameToken
			break
		}
		return s.finishReal(tok)
	}
	return tok, nil
}

func (s *Scanner) finishReal(tok Token) (Token, error) {
	x, err := strconv.ParseFloat(tok.Lexeme, 64)
	if err != nil || math.IsInf(x, 0) || math.IsNaN(x) {
		tok.Kind = ErrorToken
		return tok, e(ScanError, "%d:%d: invalid number %q", tok.Line+1, tok.Col+1, tok.Lexeme)
	}
	tok.Kind = RealToken
	tok.realVal = x
	return tok, nil
}

func (s *Scanner) peek() (byte, error) {
	for s.pos >= s.used {
		err := s.refill()
		if err != nil {
			return 0, err
		}
	}
	return s.buf[s.pos], nil
}

// skipByte skips a byte which has already been peeked.
func (s *Scanner) skipByte() {
	b := s.buf[s.pos]
	s.pos++
	if b == '\n' {
		s.Line++
		s.Col = 0
	} else if b != '\r' {
		s.Col++
	}
}

func (s *Scanner) refill() error {
	if s.err != nil {
		return s.err
	}
	s.used = copy(s.buf, s.buf[s.pos:s.used])
	s.pos = 0

	n, err := s.r.Read(s.buf[s.used:])
	s.used += n
	if err != nil {
		s.err = err
	}
	if n > 0 {
		err = nil
	}
	return err
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\f', '\v', 0:
		return true
	default:
		return false
	}
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
