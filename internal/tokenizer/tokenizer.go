package tokenizer

const (
	quote = '"'
	comma = ','
	cr    = '\r'
	lf    = '\n'
)

// Tokenizer is a two-state (quoted / unquoted) machine over an owned byte
// buffer. It is lenient: it never fails, whatever the input.
//
// Rules, one byte at a time:
//   - '"' enters quoted mode; inside quotes, '""' is a literal quote and a
//     single '"' leaves quoted mode.
//   - ',' outside quotes ends a MidRow cell.
//   - "\r\n" or a bare "\n" outside quotes ends an EndOfRow cell.
//   - A lone '\r' not followed by '\n' is cell content, not a line break.
//   - Everything else, and every byte inside quotes, is cell content.
//
// At end of input a non-empty cell buffer is flushed as EndOfRow; an empty
// one is dropped. An unterminated quoted field is flushed the same way.
type Tokenizer struct {
	data     []byte
	pos      int
	cell     []byte
	inQuotes bool
	done     bool

	line, col int

	// start of the cell being accumulated
	cellOffset, cellLine, cellCol int
}

// New creates a Tokenizer over a private copy of data.
func New(data []byte) *Tokenizer {
	buf := make([]byte, len(data))
	copy(buf, data)
	return &Tokenizer{
		data:     buf,
		line:     1,
		col:      1,
		cellLine: 1,
		cellCol:  1,
	}
}

// Tokenize returns every token in data.
func Tokenize(data []byte) []Token {
	t := New(data)
	tokens := make([]Token, 0, len(data)/8+1)
	for {
		tok, ok := t.Next()
		if !ok {
			return tokens
		}
		tokens = append(tokens, tok)
	}
}

// Next returns the next token, or false once input is exhausted.
func (t *Tokenizer) Next() (Token, bool) {
	if t.done {
		return Token{}, false
	}

	for !t.eof() {
		b := t.pop()
		switch b {
		case quote:
			if !t.inQuotes {
				t.inQuotes = true
			} else if p, ok := t.peek(); ok && p == quote {
				t.pop()
				t.cell = append(t.cell, quote)
			} else {
				t.inQuotes = false
			}

		case comma:
			if t.inQuotes {
				t.cell = append(t.cell, comma)
				continue
			}
			return t.emit(MidRow), true

		case cr:
			if t.inQuotes {
				t.cell = append(t.cell, cr)
				if p, ok := t.peek(); !ok || p != lf {
					t.newline()
				}
				continue
			}
			if p, ok := t.peek(); ok && p == lf {
				t.pop()
				tok := t.emit(EndOfRow)
				t.newline()
				t.markCell()
				return tok, true
			}
			t.cell = append(t.cell, cr)

		case lf:
			if t.inQuotes {
				t.cell = append(t.cell, lf)
				t.newline()
				continue
			}
			tok := t.emit(EndOfRow)
			t.newline()
			t.markCell()
			return tok, true

		default:
			t.cell = append(t.cell, b)
		}
	}

	t.done = true
	if len(t.cell) > 0 {
		return t.emit(EndOfRow), true
	}
	return Token{}, false
}

// InQuotes reports whether the tokenizer is inside a quoted field. After
// input is exhausted, true means the last quoted field was never closed.
func (t *Tokenizer) InQuotes() bool {
	return t.inQuotes
}

// emit hands the current cell off as a token and starts a new cell.
func (t *Tokenizer) emit(kind Kind) Token {
	value := make([]byte, len(t.cell))
	copy(value, t.cell)
	tok := Token{
		Kind:   kind,
		Value:  value,
		Offset: t.cellOffset,
		Line:   t.cellLine,
		Column: t.cellCol,
	}
	t.cell = t.cell[:0]
	t.markCell()
	return tok
}

func (t *Tokenizer) markCell() {
	t.cellOffset = t.pos
	t.cellLine = t.line
	t.cellCol = t.col
}

func (t *Tokenizer) eof() bool {
	return t.pos >= len(t.data)
}

func (t *Tokenizer) pop() byte {
	b := t.data[t.pos]
	t.pos++
	t.col++
	return b
}

func (t *Tokenizer) peek() (byte, bool) {
	if t.eof() {
		return 0, false
	}
	return t.data[t.pos], true
}

// newline moves position tracking to the start of the next line.
func (t *Tokenizer) newline() {
	t.line++
	t.col = 1
}
