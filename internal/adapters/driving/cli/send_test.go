package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pipedata/curator/internal/core/domain"
)

func swapTransmitService(t *testing.T, svc *mockTransmitService) {
	t.Helper()
	old := transmitService
	transmitService = svc
	t.Cleanup(func() { transmitService = old })
}

func TestSendCmd(t *testing.T) {
	svc := &mockTransmitService{
		result: &domain.SendResult{
			BatchID:      "batch-1",
			ItemsSent:    5,
			SuccessCount: 5,
		},
	}
	swapTransmitService(t, svc)

	out, err := execute(t, "send", "batch-1", "--actor", "alice")

	require.NoError(t, err)
	assert.Contains(t, out, "Batch batch-1 sent: 5 items, 5 accepted, 0 failed")
	assert.Equal(t, "batch-1", svc.gotBatchID)
	assert.Equal(t, "alice", svc.gotActor)
}

func TestSendCmd_PartialFailure(t *testing.T) {
	svc := &mockTransmitService{
		result: &domain.SendResult{
			BatchID:      "batch-1",
			ItemsSent:    4,
			SuccessCount: 3,
			ErrorCount:   1,
		},
	}
	swapTransmitService(t, svc)

	out, err := execute(t, "send", "batch-1")

	require.NoError(t, err)
	assert.Contains(t, out, "1 failed")
	assert.Contains(t, out, "transmission history")
}

func TestSendCmd_NotApproved(t *testing.T) {
	swapTransmitService(t, &mockTransmitService{err: domain.ErrInvalidState})

	_, err := execute(t, "send", "batch-1")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestSendCmd_ServiceNotConfigured(t *testing.T) {
	old := transmitService
	transmitService = nil
	t.Cleanup(func() { transmitService = old })

	_, err := execute(t, "send", "batch-1")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "transmit service not configured")
}
