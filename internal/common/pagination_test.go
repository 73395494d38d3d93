package common

import (
	"testing"

	"github.com/pulsegram/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func Test_NormalizePage(t *testing.T) {
	ctx := testutil.MockContext()

	page, limit, err := NormalizePage(ctx, 0, 0, 20)
	require.NoError(t, err)
	require.Equal(t, 1, page)
	require.Equal(t, 20, limit)

	page, limit, err = NormalizePage(ctx, 3, 10, 20)
	require.NoError(t, err)
	require.Equal(t, 3, page)
	require.Equal(t, 10, limit)
	require.Equal(t, 20, Offset(page, limit))

	_, _, err = NormalizePage(ctx, 1, -1, 20)
	require.Error(t, err)

	_, _, err = NormalizePage(ctx, 1, 51, 20)
	require.Error(t, err)
}

func Test_NewPagination(t *testing.T) {
	p := NewPagination(0, 1, 10)
	require.Equal(t, 0, p.Pages)
	require.False(t, p.HasMore)

	p = NewPagination(10, 1, 10)
	require.Equal(t, 1, p.Pages)
	require.False(t, p.HasMore)

	p = NewPagination(11, 1, 10)
	require.Equal(t, 2, p.Pages)
	require.True(t, p.HasMore)

	p = NewPagination(11, 2, 10)
	require.False(t, p.HasMore)
}
