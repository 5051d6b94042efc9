package tlblog_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/tlbcodec/tlb/tlblog"
)

func TestDefaultLoggerIsNop(t *testing.T) {
	require.NotNil(t, tlblog.L())
}

func TestSetLoggerInstallsAndRestoresNop(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	tlblog.SetLogger(zap.New(core))
	defer tlblog.SetLogger(nil)

	tlblog.L().Info("boc: serialized", zap.Int("cells", 3))
	require.Equal(t, 1, logs.Len())
	require.Equal(t, "boc: serialized", logs.All()[0].Message)

	tlblog.SetLogger(nil)
	require.NotPanics(t, func() { tlblog.L().Info("after reset") })
}
