package search

import (
	"context"
	"encoding/json"
	"sort"
)

//go:generate mockery --name=ScopeProvider -r --case underscore --with-expecter --structname ScopeProvider --filename scope_provider.go --output=./mocks

// ScopeProvider resolves the mailboxes a user is allowed to search.
type ScopeProvider interface {
	VisibleMailboxes(ctx context.Context, userID int64) (ScopeSet, error)
}

// ScopeSet is an immutable, sorted set of mailbox ids.
type ScopeSet struct {
	ids []int64
}

func NewScopeSet(ids ...int64) ScopeSet {
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if id > 0 {
			out = append(out, id)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })

	uniq := out[:0]
	for i, id := range out {
		if i > 0 && id == out[i-1] {
			continue
		}
		uniq = append(uniq, id)
	}
	return ScopeSet{ids: uniq}
}

func (s ScopeSet) IDs() []int64 {
	return append([]int64(nil), s.ids...)
}

func (s ScopeSet) Len() int { return len(s.ids) }

func (s ScopeSet) IsEmpty() bool { return len(s.ids) == 0 }

func (s ScopeSet) Contains(id int64) bool {
	i := sort.Search(len(s.ids), func(i int) bool { return s.ids[i] >= id })
	return i < len(s.ids) && s.ids[i] == id
}

// Narrow restricts the set to mailboxID. A mailbox outside the set yields
// the empty set, zero leaves the set unchanged.
func (s ScopeSet) Narrow(mailboxID int64) ScopeSet {
	if mailboxID == 0 {
		return s
	}
	if !s.Contains(mailboxID) {
		return ScopeSet{}
	}
	return ScopeSet{ids: []int64{mailboxID}}
}

func (s ScopeSet) Intersects(ids ...int64) bool {
	for _, id := range ids {
		if s.Contains(id) {
			return true
		}
	}
	return false
}

func (s ScopeSet) MarshalJSON() ([]byte, error) {
	if s.ids == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s.ids)
}

func (s *ScopeSet) UnmarshalJSON(data []byte) error {
	var ids []int64
	if err := json.Unmarshal(data, &ids); err != nil {
		return err
	}
	*s = NewScopeSet(ids...)
	return nil
}
