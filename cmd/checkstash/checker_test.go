package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_splitChunks(t *testing.T) {
	for i := 0; i < 50; i++ {
		chunks := splitChunks("X-Appended")
		require.NotEmpty(t, chunks)
		for _, c := range chunks {
			require.NotEmpty(t, c)
		}
		require.Equal(t, "X-Appended", string(bytes.Join(chunks, nil)))
	}
	require.Empty(t, splitChunks(""))
}

func Test_newSimpleRecord(t *testing.T) {
	rec := newSimpleRecord()
	require.Equal(t, "uninitialized", rec.String())
	require.Len(t, rec.pairs, 4)
	require.Equal(t, "X-Text", rec.pairs[2].Field)
}
