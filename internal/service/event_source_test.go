package service

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineSource_OneSignalPerLine(t *testing.T) {
	src := NewLineSource(strings.NewReader("\nfoo\nno newline at end"))
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, src.Next(ctx), "signal %d", i+1)
	}
	assert.ErrorIs(t, src.Next(ctx), io.EOF)
}

func TestLineSource_EmptyInput(t *testing.T) {
	src := NewLineSource(strings.NewReader(""))
	assert.ErrorIs(t, src.Next(context.Background()), io.EOF)
}

func TestSliceSource(t *testing.T) {
	src := NewSliceSource(2)
	ctx := context.Background()
	require.NoError(t, src.Next(ctx))
	require.NoError(t, src.Next(ctx))
	assert.ErrorIs(t, src.Next(ctx), io.EOF)
	assert.ErrorIs(t, src.Next(ctx), io.EOF)
}
