// internal/rental/codec.go
package rental

import (
	"strconv"

	"recordbook/pkg/recordstore"
)

// MovieCodec reads and writes id|title|genre|available lines.
type MovieCodec struct{}

func (MovieCodec) Encode(m Movie) string {
	return recordstore.JoinFields(strconv.Itoa(m.ID), m.Title, m.Genre, recordstore.FormatBool(m.Available))
}

func (MovieCodec) Decode(line string) (Movie, error) {
	parts, err := recordstore.SplitFields(line, 4)
	if err != nil {
		return Movie{}, err
	}
	id, err := strconv.Atoi(parts[0])
	if err != nil {
		return Movie{}, recordstore.Malformed("movie id %q", parts[0])
	}
	available, err := recordstore.ParseBool(parts[3])
	if err != nil {
		return Movie{}, err
	}
	return Movie{ID: id, Title: parts[1], Genre: parts[2], Available: available}, nil
}
