package field

// Buffer is the mutable sequence of entered runes plus the insertion index.
// It owns its backing slice; Clone produces an independent copy.
type Buffer struct {
	runes  []rune
	cursor int
	bound  int
}

func NewBuffer(bound int) Buffer {
	return Buffer{bound: bound}
}

func (b Buffer) String() string {
	return string(b.runes)
}

func (b Buffer) Len() int {
	return len(b.runes)
}

func (b Buffer) Cursor() int {
	return b.cursor
}

func (b Buffer) Bound() int {
	return b.bound
}

func (b Buffer) Clone() Buffer {
	c := b
	c.runes = append([]rune(nil), b.runes...)
	return c
}

// Insert inserts r at the cursor and advances it.
// Inserting into a full buffer is a silent no-op.
func (b *Buffer) Insert(r rune) bool {
	if len(b.runes) >= b.bound {
		return false
	}
	b.runes = append(b.runes[:b.cursor], append([]rune{r}, b.runes[b.cursor:]...)...)
	b.cursor++
	return true
}

// DeleteBefore removes the rune before the cursor
func (b *Buffer) DeleteBefore() bool {
	if b.cursor == 0 {
		return false
	}
	b.runes = append(b.runes[:b.cursor-1], b.runes[b.cursor:]...)
	b.cursor--
	return true
}

// DeleteAt removes the rune under the cursor
func (b *Buffer) DeleteAt() bool {
	if b.cursor >= len(b.runes) {
		return false
	}
	b.runes = append(b.runes[:b.cursor], b.runes[b.cursor+1:]...)
	return true
}

func (b *Buffer) MoveLeft() {
	if b.cursor > 0 {
		b.cursor--
	}
}

func (b *Buffer) MoveRight() {
	if b.cursor < len(b.runes) {
		b.cursor++
	}
}

func (b *Buffer) MoveHome() {
	b.cursor = 0
}

func (b *Buffer) MoveEnd() {
	b.cursor = len(b.runes)
}

// SetText replaces the content and puts the cursor at the end. Callers are
// responsible for only handing it text that fits the bound; the field's
// state check catches violations.
func (b *Buffer) SetText(s string) {
	b.runes = []rune(s)
	b.cursor = len(b.runes)
}
