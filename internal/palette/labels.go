package palette

import "fmt"

// Label is the single character printed for one colour of a design.
type Label struct {
	Char   rune
	Color  Color
	Count  int
	Bucket Bucket // 1-based
}

// Labels maps each surviving colour to its label.
type Labels struct {
	entries []Label
	index   map[Color]int
}

// AssignLabels gives each colour a label in the order given, cycling through
// '0'..'9' and then 'a'..'z'.
func AssignLabels(colors []ColorCount) *Labels {
	l := &Labels{
		entries: make([]Label, 0, len(colors)),
		index:   make(map[Color]int, len(colors)),
	}

	ch := '0'
	for _, cc := range colors {
		l.index[cc.Color] = len(l.entries)
		l.entries = append(l.entries, Label{
			Char:   ch,
			Color:  cc.Color,
			Count:  cc.Count,
			Bucket: BucketOf(cc.Color).OneBased(),
		})
		ch = nextLabel(ch)
	}
	return l
}

func nextLabel(ch rune) rune {
	switch ch {
	case '9':
		return 'a'
	case 'z':
		return '0'
	default:
		return ch + 1
	}
}

// Entries returns the labels in assignment order.
func (l *Labels) Entries() []Label {
	return l.entries
}

// Len returns the number of labelled colours.
func (l *Labels) Len() int {
	return len(l.entries)
}

// Lookup returns the label character for a colour.
func (l *Labels) Lookup(c Color) (rune, bool) {
	i, ok := l.index[c]
	if !ok {
		return 0, false
	}
	return l.entries[i].Char, true
}

// Grid renders buf as rows of label characters.
func (l *Labels) Grid(buf *Buffer) ([]string, error) {
	rows := make([]string, buf.Height)
	line := make([]rune, buf.Width)
	for y := 0; y < buf.Height; y++ {
		for x := 0; x < buf.Width; x++ {
			c := buf.At(x, y)
			ch, ok := l.Lookup(c)
			if !ok {
				return nil, fmt.Errorf("pixel (%d,%d) has unlabelled colour %s", x, y, c)
			}
			line[x] = ch
		}
		rows[y] = string(line)
	}
	return rows, nil
}

// String formats a label as a legend line: "<label>\t(<hue>,<sat>,<val>)".
func (lb Label) String() string {
	return fmt.Sprintf("%c\t(%d,%d,%d)", lb.Char, lb.Bucket.Hue, lb.Bucket.Sat, lb.Bucket.Val)
}
