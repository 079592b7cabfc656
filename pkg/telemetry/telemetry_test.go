package telemetry_test

import (
	"context"
	"errors"
	"testing"

	"github.com/goto/salt/log"
	"github.com/goto/ticketsearch/pkg/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitDisabled(t *testing.T) {
	nrApp, cleanUp, err := telemetry.Init(context.Background(), telemetry.Config{AppName: "ticketsearch"}, log.NewNoop())
	require.NoError(t, err)
	assert.Nil(t, nrApp)
	assert.NotPanics(t, cleanUp)
}

func TestStartTransactionWithoutApp(t *testing.T) {
	ctx := context.Background()

	txnCtx, end := telemetry.StartTransaction(ctx, nil, "search")
	assert.Equal(t, ctx, txnCtx)
	assert.NotPanics(t, func() { end(errors.New("boom")) })
}
