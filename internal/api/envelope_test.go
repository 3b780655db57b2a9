package api

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeEnvelope_Canonical(t *testing.T) {
	env, err := normalizeEnvelope([]byte(`{"success":true,"data":{"x":1},"error":null}`))
	require.NoError(t, err)
	require.True(t, env.Success)
	require.JSONEq(t, `{"x":1}`, string(env.Data))
	require.Nil(t, env.Error)
}

func TestNormalizeEnvelope_UnwrapsDetail(t *testing.T) {
	env, err := normalizeEnvelope([]byte(`{"detail":{"success":true,"data":{"x":1},"error":null}}`))
	require.NoError(t, err)
	require.True(t, env.Success)
	require.JSONEq(t, `{"x":1}`, string(env.Data))
	require.Nil(t, env.Error)
}

func TestNormalizeEnvelope_UnwrapsExactlyOneLayer(t *testing.T) {
	// A doubly nested detail is not the backend's contract; only one layer
	// comes off, and the inner object then reads as a failed envelope.
	env, err := normalizeEnvelope([]byte(`{"detail":{"detail":{"success":true,"data":null,"error":null}}}`))
	require.NoError(t, err)
	require.False(t, env.Success)
}

func TestNormalizeEnvelope_NullDetailIsNotUnwrapped(t *testing.T) {
	env, err := normalizeEnvelope([]byte(`{"success":false,"data":null,"error":{"code":"E","message":"m"},"detail":null}`))
	require.NoError(t, err)
	require.False(t, env.Success)
	require.NotNil(t, env.Error)
	require.Equal(t, "E", env.Error.Code)
}

func TestNormalizeEnvelope_ErrorEnvelope(t *testing.T) {
	env, err := normalizeEnvelope([]byte(`{"detail":{"success":false,"data":null,"error":{"code":"VALIDATION_ERROR","message":"bad input"}}}`))
	require.NoError(t, err)
	require.False(t, env.Success)
	require.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	require.Equal(t, "bad input", env.Error.Message)
}

func TestNormalizeEnvelope_MissingSuccessReadsAsFailure(t *testing.T) {
	env, err := normalizeEnvelope([]byte(`{"message":"shapeless"}`))
	require.NoError(t, err)
	require.False(t, env.Success)
	require.Nil(t, env.Error)
}

func TestNormalizeEnvelope_RejectsNonObjectBodies(t *testing.T) {
	_, err := normalizeEnvelope([]byte(`not json at all`))
	require.Error(t, err)

	_, err = normalizeEnvelope([]byte(`[1,2,3]`))
	require.Error(t, err)
}
