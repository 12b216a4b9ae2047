package errx

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_TryRegister(t *testing.T) {
	r := NewRegistry()
	ok, err := r.TryRegister(testCode)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = r.TryRegister(MustCode(testCode.Value(), "another description"))
	require.NoError(t, err)
	assert.False(t, ok)

	if r.Count() != 1 {
		t.Errorf("Count() = %d, want %d", r.Count(), 1)
	}
}

func TestRegistry_TryRegisterNil(t *testing.T) {
	_, err := NewRegistry().TryRegister(nil)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestRegistry_RegisterTwice(t *testing.T) {
	r := NewRegistry()
	first := MustCode("SYS_001", "first")
	require.NoError(t, r.Register(first))

	err := r.Register(MustCode("SYS_001", "second"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConflict)
	assert.Contains(t, err.Error(), `error code "SYS_001" is already registered`)

	got, ok, err := r.TryGet("SYS_001")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Same(t, first, got)
}

func TestRegistry_TryGet(t *testing.T) {
	r := NewRegistry()

	got, ok, err := r.TryGet("missing")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, got)

	_, _, err = r.TryGet(" ")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestRegistry_ConcurrentTryRegister(t *testing.T) {
	r := NewRegistry()
	const callers = 64

	var (
		wg      sync.WaitGroup
		winners atomic.Int32
		start   = make(chan struct{})
	)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			ok, err := r.TryRegister(MustCode("RACE", fmt.Sprintf("caller %d", i)))
			if err != nil {
				t.Error(err)
				return
			}
			if ok {
				winners.Add(1)
			}
		}(i)
	}
	close(start)
	wg.Wait()

	assert.Equal(t, int32(1), winners.Load())
	assert.Equal(t, 1, r.Count())
}

func TestRegistry_ConcurrentDistinctValues(t *testing.T) {
	r := NewRegistry()
	const callers = 50

	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if err := r.Register(MustCode(fmt.Sprintf("C%03d", i), "d")); err != nil {
				t.Error(err)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, callers, r.Count())
	assert.Len(t, r.Codes(), callers)
}

func TestRegistry_ContextCancelled(t *testing.T) {
	r := NewRegistry()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.TryRegisterContext(ctx, testCode)
	assert.ErrorIs(t, err, ErrCancelled)
	assert.Equal(t, 0, r.Count(), "cancelled registration must not insert")

	err = r.RegisterContext(ctx, testCode)
	assert.ErrorIs(t, err, ErrCancelled)

	_, _, err = r.TryGetContext(ctx, testCode.Value())
	assert.ErrorIs(t, err, ErrCancelled)
}

func TestRegistry_Context(t *testing.T) {
	r := NewRegistry()
	ctx := context.Background()

	ok, err := r.TryRegisterContext(ctx, testCode)
	require.NoError(t, err)
	assert.True(t, ok)

	got, ok, err := r.TryGetContext(ctx, testCode.Value())
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Same(t, testCode, got)
}

func TestRegistry_CodesSorted(t *testing.T) {
	r := NewRegistry()
	for _, v := range []string{"B", "C", "A"} {
		require.NoError(t, r.Register(MustCode(v, "d")))
	}

	var values []string
	for _, c := range r.Codes() {
		values = append(values, c.Value())
	}
	assert.Equal(t, []string{"A", "B", "C"}, values)
}
