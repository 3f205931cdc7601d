package graphql

import (
	"time"

	graphql "github.com/graph-gophers/graphql-go"

	"github.com/deepthoughts/backend/internal/domain"
)

// thoughtResolver resolves the Thought type. Reactions are embedded on the
// thought itself, so no extra loading happens here.
type thoughtResolver struct {
	t *domain.Thought
}

func newThoughtResolvers(thoughts []domain.Thought) []*thoughtResolver {
	out := make([]*thoughtResolver, 0, len(thoughts))
	for i := range thoughts {
		out = append(out, &thoughtResolver{t: &thoughts[i]})
	}
	return out
}

func (r *thoughtResolver) ID() graphql.ID {
	return graphql.ID(r.t.ID.String())
}

func (r *thoughtResolver) ThoughtText() string {
	return r.t.ThoughtText
}

func (r *thoughtResolver) Username() string {
	return r.t.Username
}

func (r *thoughtResolver) CreatedAt() string {
	return r.t.CreatedAt.Format(time.RFC3339)
}

func (r *thoughtResolver) ReactionCount() int32 {
	return int32(len(r.t.Reactions))
}

func (r *thoughtResolver) Reactions() []*reactionResolver {
	out := make([]*reactionResolver, 0, len(r.t.Reactions))
	for i := range r.t.Reactions {
		out = append(out, &reactionResolver{re: &r.t.Reactions[i]})
	}
	return out
}

type reactionResolver struct {
	re *domain.Reaction
}

func (r *reactionResolver) ID() graphql.ID {
	return graphql.ID(r.re.ID.String())
}

func (r *reactionResolver) ReactionBody() string {
	return r.re.ReactionBody
}

func (r *reactionResolver) Username() string {
	return r.re.Username
}

func (r *reactionResolver) CreatedAt() string {
	return r.re.CreatedAt.Format(time.RFC3339)
}
