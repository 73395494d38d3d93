package ws

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_Compress(t *testing.T) {
	payload := []byte(`{"op":"send_message","data":{"content":"hello"}}`)

	compressed, err := Compress(payload)
	require.NoError(t, err)
	require.NotEmpty(t, compressed)

	decompressed, err := Decompress(compressed)
	require.NoError(t, err)
	require.Equal(t, payload, decompressed)

	// Garbage input is rejected rather than decoded.
	_, err = Decompress([]byte("not zlib"))
	require.Error(t, err)
}
