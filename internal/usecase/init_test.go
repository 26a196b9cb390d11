package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingInitializer struct {
	calls int
	err   error
}

func (r *recordingInitializer) Initialize() error {
	r.calls++
	return r.err
}

type recordingConfigWriter struct {
	calls int
	err   error
}

func (r *recordingConfigWriter) WriteDefault() error {
	r.calls++
	return r.err
}

func TestInit_Execute(t *testing.T) {
	store := &recordingInitializer{}
	config := &recordingConfigWriter{}

	uc := NewInit(store, config)

	require.NoError(t, uc.Execute(context.Background()))
	assert.Equal(t, 1, store.calls)
	assert.Equal(t, 1, config.calls)

	// Safe to repeat.
	require.NoError(t, uc.Execute(context.Background()))
	assert.Equal(t, 2, store.calls)
}

func TestInit_Execute_StoreFailureSkipsConfig(t *testing.T) {
	store := &recordingInitializer{err: assert.AnError}
	config := &recordingConfigWriter{}

	uc := NewInit(store, config)

	require.Error(t, uc.Execute(context.Background()))
	assert.Zero(t, config.calls)
}
