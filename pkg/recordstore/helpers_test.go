package recordstore

import (
	"strconv"
	"strings"
)

type note struct {
	Title  string
	Tags   []string
	Score  int
	Pinned bool
}

func (n note) Key() string { return n.Title }

func (n note) Validate() error {
	if err := Required("title", n.Title); err != nil {
		return err
	}
	if err := Storable("title", n.Title); err != nil {
		return err
	}
	if err := StorableList("tag", n.Tags); err != nil {
		return err
	}
	return RatingInRange(n.Score)
}

func (n note) Clone() note {
	n.Tags = append([]string(nil), n.Tags...)
	return n
}

type noteCodec struct{}

func (noteCodec) Encode(n note) string {
	return strings.Join([]string{n.Title, strings.Join(n.Tags, ","), strconv.Itoa(n.Score), FormatBool(n.Pinned)}, "|")
}

func (noteCodec) Decode(line string) (note, error) {
	parts, err := SplitFields(line, 4)
	if err != nil {
		return note{}, err
	}
	score, err := strconv.Atoi(parts[2])
	if err != nil {
		return note{}, Malformed("score %q", parts[2])
	}
	pinned, err := ParseBool(parts[3])
	if err != nil {
		return note{}, err
	}
	return note{Title: parts[0], Tags: SplitList(parts[1]), Score: score, Pinned: pinned}, nil
}
