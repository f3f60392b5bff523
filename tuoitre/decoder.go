package tuoitre

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ethanol1310/hotnews"
)

var _ hotnews.CommentDecoder = (*Decoder)(nil)

// Decoder decodes id.tuoitre.vn comment payloads. The comment list is
// itself a JSON document carried as a string:
//
//	{"Success":true,"Data":"[{\"id\":1,\"reactions\":{\"1\":3,\"3\":1}}]"}
//
// A comment's weight is the sum of its reaction counters.
type Decoder struct{}

type payload struct {
	Data *string `json:"Data"`
}

type item struct {
	ID        json.RawMessage `json:"id"`
	Reactions map[string]int  `json:"reactions"`
}

func (d *Decoder) Decode(body string) ([]hotnews.Comment, error) {
	var p payload
	if err := json.Unmarshal([]byte(body), &p); err != nil {
		return nil, fmt.Errorf("decode tuoitre comments: %w", err)
	}
	if p.Data == nil {
		return nil, hotnews.Errorf(hotnews.EINVALID, "tuoitre comment payload has no data")
	}
	if strings.TrimSpace(*p.Data) == "" {
		return nil, nil
	}

	var items []item
	if err := json.Unmarshal([]byte(*p.Data), &items); err != nil {
		return nil, fmt.Errorf("decode tuoitre comment list: %w", err)
	}

	comments := make([]hotnews.Comment, 0, len(items))
	for _, it := range items {
		comments = append(comments, hotnews.Comment{
			ID:        strings.Trim(string(it.ID), `"`),
			Reactions: it.Reactions,
		})
	}
	return comments, nil
}
