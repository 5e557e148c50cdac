package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestStatsService_Count(t *testing.T) {
	store := new(MockStore)
	store.On("Configured").Return(true)
	store.On("CountSignups", mock.Anything).Return(42, nil).Twice()

	svc := NewStatsService(store, time.Second)
	for i := 0; i < 2; i++ {
		n, err := svc.Count(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 42, n)
	}
	// no caching between calls
	store.AssertNumberOfCalls(t, "CountSignups", 2)
}

func TestStatsService_NotConfigured(t *testing.T) {
	store := new(MockStore)
	store.On("Configured").Return(false)

	_, err := NewStatsService(store, time.Second).Count(context.Background())
	assert.ErrorIs(t, err, ErrStoreNotConfigured)
	store.AssertNotCalled(t, "CountSignups", mock.Anything)

	_, err = NewStatsService(nil, 0).Count(context.Background())
	assert.ErrorIs(t, err, ErrStoreNotConfigured)
}

func TestStatsService_StoreError(t *testing.T) {
	store := new(MockStore)
	store.On("Configured").Return(true)
	store.On("CountSignups", mock.Anything).Return(0, errors.New("bad content-range"))

	_, err := NewStatsService(store, time.Second).Count(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrStoreNotConfigured)
}
