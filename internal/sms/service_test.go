package sms_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smsgate/smsgate/internal/sms"
)

func TestServiceForwardsOneMessage(t *testing.T) {
	stub := &sms.CaptureProvider{}
	svc := sms.NewService(stub)

	err := svc.SendOneMessage(context.Background(), "+15550001111", "hi", "")
	require.NoError(t, err)

	require.Len(t, stub.Calls, 1)
	call := stub.Calls[0]
	assert.Equal(t, "one", call.Op)
	assert.Equal(t, []string{"+15550001111"}, call.To)
	assert.Equal(t, "hi", call.Body)
	assert.Equal(t, "", call.LineNumber)
}

func TestServiceForwardsBulkAndVerify(t *testing.T) {
	stub := &sms.CaptureProvider{}
	svc := sms.NewService(stub)

	require.NoError(t, svc.SendBulkMessages(context.Background(), []string{"+15550001111", "+15550002222"}, "hello", "3000"))
	require.NoError(t, svc.SendVerifyMessage(context.Background(), "+15550001111", "123456"))

	require.Len(t, stub.Calls, 2)
	assert.Equal(t, "bulk", stub.Calls[0].Op)
	assert.Equal(t, []string{"+15550001111", "+15550002222"}, stub.Calls[0].To)
	assert.Equal(t, "3000", stub.Calls[0].LineNumber)
	assert.Equal(t, "verify", stub.Calls[1].Op)
	assert.Equal(t, "123456", stub.Calls[1].Body)
	assert.Equal(t, "123456", stub.LastCode())
}

func TestServicePropagatesProviderError(t *testing.T) {
	wantErr := &sms.ProviderError{Provider: "stub", Op: "send", Err: errors.New("boom")}
	stub := &sms.CaptureProvider{Err: wantErr}
	svc := sms.NewService(stub)

	err := svc.SendOneMessage(context.Background(), "+15550001111", "hi", "")
	// Forwarded unmodified, not wrapped.
	assert.Same(t, error(wantErr), err)
}

func TestServiceSetProviderSwitchesDispatch(t *testing.T) {
	stubA := &sms.CaptureProvider{}
	stubB := &sms.CaptureProvider{}
	svc := sms.NewService(stubA)

	require.NoError(t, svc.SendOneMessage(context.Background(), "+15550001111", "first", ""))
	svc.SetProvider(stubB)
	require.NoError(t, svc.SendOneMessage(context.Background(), "+15550001111", "second", ""))
	require.NoError(t, svc.SendVerifyMessage(context.Background(), "+15550001111", "9999"))

	require.Len(t, stubA.Calls, 1)
	assert.Equal(t, "first", stubA.Calls[0].Body)
	require.Len(t, stubB.Calls, 2)
	assert.Equal(t, "second", stubB.Calls[0].Body)
}

func TestNewServiceNilProviderPanics(t *testing.T) {
	assert.Panics(t, func() { sms.NewService(nil) })
	svc := sms.NewService(&sms.CaptureProvider{})
	assert.Panics(t, func() { svc.SetProvider(nil) })
}

func TestCaptureProviderImplementsInterface(t *testing.T) {
	var _ sms.Provider = (*sms.CaptureProvider)(nil)
}
