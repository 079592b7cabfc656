package postgres_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/goto/salt/log"
	"github.com/goto/ticketsearch/core/ticket"
	"github.com/goto/ticketsearch/internal/store/postgres"
	"github.com/goto/ticketsearch/internal/testutils"
	"github.com/stretchr/testify/suite"
)

type RecordRepositoryTestSuite struct {
	suite.Suite
	ctx        context.Context
	client     *postgres.Client
	repository *postgres.RecordRepository
}

func (r *RecordRepositoryTestSuite) SetupSuite() {
	var err error

	r.client, err = newTestClient(r.T(), log.NewNoop())
	if err != nil {
		r.T().Fatal(err)
	}

	r.ctx = context.TODO()
	r.repository, err = postgres.NewRecordRepository(r.client)
	if err != nil {
		r.T().Fatal(err)
	}
	if err := seedRecords(r.ctx, r.client); err != nil {
		r.T().Fatal(err)
	}
}

func (r *RecordRepositoryTestSuite) TestGetByID() {
	r.Run("return ErrEmptyID if id is zero", func() {
		_, err := r.repository.GetByID(r.ctx, 0)
		r.ErrorIs(err, ticket.ErrEmptyID)
	})

	r.Run("return NotFoundError if record does not exist", func() {
		_, err := r.repository.GetByID(r.ctx, 404)
		r.ErrorIs(err, ticket.NotFoundError{RecordID: 404})
	})

	r.Run("should load customer and threads", func() {
		got, err := r.repository.GetByID(r.ctx, 2)
		r.Require().NoError(err)

		expected := fixtureRecords()[1]
		testutils.AssertEqual(r.T(), expected, got,
			cmpopts.IgnoreFields(ticket.Thread{}, "ID", "CreatedAt"),
			cmpopts.IgnoreFields(ticket.Record{}, "ThreadsCount", "State", "Type", "CreatedAt", "UpdatedAt"),
		)
		r.Equal(3, got.ThreadsCount)
		r.True(got.UpdatedAt.Equal(expected.UpdatedAt))
		r.True(got.Unassigned())
	})
}

func (r *RecordRepositoryTestSuite) TestGetByIDs() {
	got, err := r.repository.GetByIDs(r.ctx, []int64{3, 404, 1})
	r.Require().NoError(err)
	r.Require().Len(got, 2)
	r.Equal(int64(3), got[0].ID)
	r.Equal(int64(1), got[1].ID)
	r.Equal(int64(5), got[1].AssigneeID)
	r.True(got[1].HasAttachments)

	got, err = r.repository.GetByIDs(r.ctx, nil)
	r.NoError(err)
	r.Empty(got)
}

func (r *RecordRepositoryTestSuite) TestListBatchAndCount() {
	batch, err := r.repository.ListBatch(r.ctx, 1, 2)
	r.Require().NoError(err)
	r.Require().Len(batch, 2)
	r.Equal(int64(2), batch[0].ID)
	r.Equal(int64(3), batch[1].ID)

	total, err := r.repository.Count(r.ctx)
	r.NoError(err)
	r.EqualValues(4, total)
}

func TestRecordRepository(t *testing.T) {
	suite.Run(t, &RecordRepositoryTestSuite{})
}
