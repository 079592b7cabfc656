package postgres_test

import (
	"context"
	"testing"

	"github.com/goto/salt/log"
	"github.com/goto/ticketsearch/internal/store/postgres"
	"github.com/goto/ticketsearch/internal/testutils"
	"github.com/stretchr/testify/suite"
)

type ScopeRepositoryTestSuite struct {
	suite.Suite
	ctx        context.Context
	client     *postgres.Client
	repository *postgres.ScopeRepository
}

func (r *ScopeRepositoryTestSuite) SetupSuite() {
	var err error

	r.client, err = newTestClient(r.T(), log.NewNoop())
	if err != nil {
		r.T().Fatal(err)
	}

	r.ctx = context.TODO()
	r.repository, err = postgres.NewScopeRepository(r.client)
	if err != nil {
		r.T().Fatal(err)
	}

	if err := testutils.TruncateHost(r.ctx, r.client); err != nil {
		r.T().Fatal(err)
	}
	for _, u := range []struct {
		id        int64
		role      int
		mailboxes []int64
	}{
		{id: 1, role: postgres.RoleAdmin},
		{id: 2, role: 1, mailboxes: []int64{3, 1}},
		{id: 3, role: 1, mailboxes: []int64{2}},
		{id: 4, role: 1},
	} {
		if err := testutils.InsertUser(r.ctx, r.client, u.id, u.role, u.mailboxes...); err != nil {
			r.T().Fatal(err)
		}
	}
}

func (r *ScopeRepositoryTestSuite) TestVisibleMailboxes() {
	r.Run("admin sees every mailbox", func() {
		scope, err := r.repository.VisibleMailboxes(r.ctx, 1)
		r.Require().NoError(err)
		r.Equal([]int64{1, 2, 3}, scope.IDs())
	})

	r.Run("agent sees assigned mailboxes", func() {
		scope, err := r.repository.VisibleMailboxes(r.ctx, 2)
		r.Require().NoError(err)
		r.Equal([]int64{1, 3}, scope.IDs())
	})

	r.Run("agent without mailboxes sees nothing", func() {
		scope, err := r.repository.VisibleMailboxes(r.ctx, 4)
		r.Require().NoError(err)
		r.True(scope.IsEmpty())
	})

	r.Run("unknown and anonymous users see nothing", func() {
		scope, err := r.repository.VisibleMailboxes(r.ctx, 99)
		r.Require().NoError(err)
		r.True(scope.IsEmpty())

		scope, err = r.repository.VisibleMailboxes(r.ctx, 0)
		r.Require().NoError(err)
		r.True(scope.IsEmpty())
	})
}

func TestScopeRepository(t *testing.T) {
	suite.Run(t, &ScopeRepositoryTestSuite{})
}
