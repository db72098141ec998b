package console

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadLine(t *testing.T) {
	in := NewInput(strings.NewReader("1\r\n?\n\nrock"))
	ctx := context.Background()

	for _, want := range []string{"1", "?", "", "rock"} {
		line, err := in.ReadLine(ctx)
		require.NoError(t, err)
		assert.Equal(t, want, line)
	}

	_, err := in.ReadLine(ctx)
	assert.ErrorIs(t, err, io.EOF)
	_, err = in.ReadLine(ctx)
	assert.ErrorIs(t, err, io.EOF)
}

func TestReadLineCancelled(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()
	in := NewInput(pr)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := in.ReadLine(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 5*time.Second)

	// The line requested before cancellation is still delivered.
	go func() {
		_, _ = pw.Write([]byte("2\n"))
	}()
	line, err := in.ReadLine(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "2", line)
}
