// internal/recipe/codec.go
package recipe

import (
	"strconv"

	"recordbook/pkg/recordstore"
)

// Codec reads and writes name|ingredients|instructions|category|nutrition|ratings|favorite lines.
// The favorite flag is written as 1 or 0.
type Codec struct{}

func (Codec) Encode(r Recipe) string {
	ratings := make([]string, len(r.Ratings))
	for i, v := range r.Ratings {
		ratings[i] = strconv.Itoa(v)
	}
	favorite := "0"
	if r.Favorite {
		favorite = "1"
	}
	return recordstore.JoinFields(
		r.Name,
		recordstore.JoinList(r.Ingredients),
		r.Instructions,
		r.Category,
		r.Nutrition,
		recordstore.JoinList(ratings),
		favorite,
	)
}

func (Codec) Decode(line string) (Recipe, error) {
	parts, err := recordstore.SplitFields(line, 7)
	if err != nil {
		return Recipe{}, err
	}

	var ratings []int
	for _, field := range recordstore.SplitList(parts[5]) {
		v, err := strconv.Atoi(field)
		if err != nil || recordstore.RatingInRange(v) != nil {
			return Recipe{}, recordstore.Malformed("rating %q", field)
		}
		ratings = append(ratings, v)
	}

	var favorite bool
	switch parts[6] {
	case "1":
		favorite = true
	case "0":
	default:
		return Recipe{}, recordstore.Malformed("favorite flag %q", parts[6])
	}

	return Recipe{
		Name:         parts[0],
		Ingredients:  recordstore.SplitList(parts[1]),
		Instructions: parts[2],
		Category:     parts[3],
		Nutrition:    parts[4],
		Ratings:      ratings,
		Favorite:     favorite,
	}, nil
}
