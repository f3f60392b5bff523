package vnexpress

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ethanol1310/hotnews"
)

var _ hotnews.CommentDecoder = (*Decoder)(nil)

// Decoder decodes usi-saas comment payloads:
//
//	{"error":0,"data":{"total":2,"items":[{"comment_id":1,"userlike":4}]}}
//
// A comment's weight is its like count.
type Decoder struct{}

type payload struct {
	Data *struct {
		Items []item `json:"items"`
	} `json:"data"`
}

type item struct {
	CommentID json.RawMessage `json:"comment_id"`
	UserLike  int             `json:"userlike"`
}

func (d *Decoder) Decode(body string) ([]hotnews.Comment, error) {
	var p payload
	if err := json.Unmarshal([]byte(body), &p); err != nil {
		return nil, fmt.Errorf("decode vnexpress comments: %w", err)
	}
	if p.Data == nil {
		return nil, hotnews.Errorf(hotnews.EINVALID, "vnexpress comment payload has no data")
	}

	comments := make([]hotnews.Comment, 0, len(p.Data.Items))
	for _, it := range p.Data.Items {
		comments = append(comments, hotnews.Comment{
			ID:        strings.Trim(string(it.CommentID), `"`),
			Reactions: map[string]int{"like": it.UserLike},
		})
	}
	return comments, nil
}
