package notation

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode"

	"github.com/othellobot/othello/othello"
)

type Tag struct {
	Name  string
	Value string
}

// Record is a game transcript: a list of [Name "Value"] tags followed
// by numbered moves. A "Position" tag, if present, holds the starting
// position in FormatPosition form.
type Record struct {
	Tags  []Tag
	Moves []othello.Move
}

func (r *Record) FindTag(name string) string {
	for _, t := range r.Tags {
		if t.Name == name {
			return t.Value
		}
	}
	return ""
}

func (r *Record) SetTag(name, value string) {
	for i := range r.Tags {
		if r.Tags[i].Name == name {
			r.Tags[i].Value = value
			return
		}
	}
	r.Tags = append(r.Tags, Tag{Name: name, Value: value})
}

func (r *Record) InitialPosition() (*othello.Position, error) {
	pos := r.FindTag("Position")
	if pos == "" {
		return othello.New(), nil
	}
	p, err := ParsePosition(pos)
	if err != nil {
		return nil, fmt.Errorf("bad Position tag: %w", err)
	}
	return p, nil
}

// PositionAfter replays the first n moves from the initial position.
// A negative n replays all of them.
func (r *Record) PositionAfter(n int) (*othello.Position, error) {
	p, err := r.InitialPosition()
	if err != nil {
		return nil, err
	}
	if n < 0 || n > len(r.Moves) {
		n = len(r.Moves)
	}
	for i, m := range r.Moves[:n] {
		p, err = p.Move(m)
		if err != nil {
			return nil, fmt.Errorf("move %d (%s): %w", i+1, FormatMove(m), err)
		}
	}
	return p, nil
}

func (r *Record) Render() string {
	var out bytes.Buffer
	for _, tag := range r.Tags {
		fmt.Fprintf(&out, "[%s \"%s\"]\n",
			tag.Name, strings.Replace(tag.Value, "\"", "", -1),
		)
	}
	out.WriteString("\n")
	for i, m := range r.Moves {
		if i%2 == 0 {
			if i != 0 {
				out.WriteString("\n")
			}
			fmt.Fprintf(&out, "%d.", i/2+1)
		}
		fmt.Fprintf(&out, " %s", FormatMove(m))
	}
	out.WriteString("\n")
	return out.String()
}

func ParseRecord(rd io.Reader) (*Record, error) {
	buf := bufio.NewReader(rd)
	var rec Record
	if err := readTags(buf, &rec); err != nil && err != io.EOF {
		return nil, err
	}
	if err := readMoves(buf, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func ParseFile(path string) (*Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseRecord(f)
}

func readTags(r *bufio.Reader, rec *Record) error {
	for {
		if e := skipWS(r); e != nil {
			return e
		}
		c, e := r.ReadByte()
		if e != nil {
			return e
		}
		if c != '[' {
			return r.UnreadByte()
		}
		line, e := r.ReadString(']')
		if e != nil {
			return e
		}
		line = line[:len(line)-1]
		bits := strings.SplitN(line, " ", 2)
		if len(bits) != 2 {
			return errors.New("bad tag")
		}
		rec.Tags = append(rec.Tags, Tag{
			Name:  bits[0],
			Value: strings.Trim(bits[1], "\""),
		})
	}
}

func readMoves(r *bufio.Reader, rec *Record) error {
	s := bufio.NewScanner(r)
	s.Split(bufio.ScanWords)
	for s.Scan() {
		tok := s.Text()
		if strings.HasSuffix(tok, ".") {
			if _, err := strconv.Atoi(tok[:len(tok)-1]); err != nil {
				return fmt.Errorf("bad move number %q", tok)
			}
			continue
		}
		m, err := ParseMove(strings.TrimRightFunc(tok, unicode.IsPunct))
		if err != nil {
			return err
		}
		rec.Moves = append(rec.Moves, m)
	}
	return s.Err()
}

func skipWS(r *bufio.Reader) error {
	for {
		c, e := r.ReadByte()
		if e != nil {
			return e
		}
		if !unicode.IsSpace(rune(c)) {
			return r.UnreadByte()
		}
	}
}
