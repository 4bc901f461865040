// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package signal

import (
	"context"

	"github.com/pdiddy/faculty-graph/internal/identity"
	"github.com/pdiddy/faculty-graph/pkg/types"
)

// ProfileCoauthorship marks pairs where either researcher's profile lists
// the other as a co-author.
type ProfileCoauthorship struct{}

func (ProfileCoauthorship) Kind() Kind { return KindProfileCoauthor }

func (ProfileCoauthorship) Extract(ctx context.Context, res *identity.Resolved) (*Collection, error) {
	col := NewCollection(KindProfileCoauthor)
	for _, r := range res.Roster {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for _, ca := range r.ProfileCoauthors {
			other, ok := res.Profile[ca.ID]
			if !ok || other == r.Name {
				continue
			}
			col.Set(NewPair(r.Name, other), Signal{Count: 1})
		}
	}
	return col, nil
}

// Mentions marks pairs the mention collaborator found named together.
// Records naming someone off the roster, or the same person twice, are
// ignored.
type Mentions struct {
	Records []types.Mention
}

func (Mentions) Kind() Kind { return KindMention }

func (m Mentions) Extract(ctx context.Context, res *identity.Resolved) (*Collection, error) {
	col := NewCollection(KindMention)
	for _, rec := range m.Records {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if rec.Source == rec.Target || !res.OnRoster(rec.Source) || !res.OnRoster(rec.Target) {
			continue
		}
		p := NewPair(rec.Source, rec.Target)
		s, _ := col.Get(p)
		s.Count = 1
		s.Names = appendUnique(s.Names, rec.FoundOn...)
		col.Set(p, s)
	}
	return col, nil
}

func appendUnique(dst []string, values ...string) []string {
	for _, v := range values {
		dup := false
		for _, d := range dst {
			if d == v {
				dup = true
				break
			}
		}
		if !dup {
			dst = append(dst, v)
		}
	}
	return dst
}
