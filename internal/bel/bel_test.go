package bel_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pkmntrade/gbtrade/internal/bel"
)

func TestController_Exchange_ReturnsInboundByte(t *testing.T) {
	transport := bel.NewFakeTransport(0x42)
	ctrl := bel.NewController(transport)

	in, err := ctrl.Exchange(context.Background(), 0x02, time.Second)
	require.NoError(t, err)
	require.Equal(t, byte(0x42), in)
	require.Equal(t, []byte{0x02}, transport.Outbound())
}

func TestController_Exchange_OrdersCallsInSequence(t *testing.T) {
	transport := bel.NewFakeTransport(0x01, 0x02, 0x03)
	ctrl := bel.NewController(transport)

	for _, want := range []byte{0x01, 0x02, 0x03} {
		in, err := ctrl.Exchange(context.Background(), 0x00, time.Second)
		require.NoError(t, err)
		require.Equal(t, want, in)
	}
}

func TestController_Exchange_TimesOutWhenTransportStalls(t *testing.T) {
	transport := bel.NewFakeTransport() // no queued bytes
	ctrl := bel.NewController(transport)

	_, err := ctrl.Exchange(context.Background(), 0x00, 10*time.Millisecond)
	require.ErrorIs(t, err, bel.ErrTimeout)
}

func TestController_Exchange_CancelledContextReportsCancelled(t *testing.T) {
	transport := bel.NewFakeTransport() // no queued bytes
	ctrl := bel.NewController(transport)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ctrl.Exchange(ctx, 0x00, time.Second)
	require.ErrorIs(t, err, bel.ErrCancelled)
}
