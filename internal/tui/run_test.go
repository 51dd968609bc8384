package tui

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/Veraticus/wardrobe/internal/engine"
	"github.com/Veraticus/wardrobe/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

func TestBrowse_ForceQuitStopsUploads(t *testing.T) {
	svc := testCloset()
	queue := engine.NewSelectionQueue(nil)
	added, _ := queue.Add(
		model.PendingFile{Name: "a.png", Data: pngBytes},
		model.PendingFile{Name: "b.png", Data: pngBytes},
		model.PendingFile{Name: "c.png", Data: pngBytes},
	)
	require.Equal(t, 3, added)

	in, keys := io.Pipe()
	defer keys.Close()

	done := make(chan error, 1)
	go func() {
		done <- Browse(context.Background(), queue,
			WithService(svc),
			WithStats(false),
			WithSize(100, 30),
			WithIO(in, io.Discard),
		)
	}()

	require.Eventually(t, func() bool { return svc.CallCount("upload") == 1 }, 5*time.Second, 10*time.Millisecond)
	go func() { _, _ = keys.Write([]byte{0x03}) }()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("browser did not exit after ctrl+c")
	}

	assert.Equal(t, 1, svc.CallCount("upload"))
	assert.Zero(t, svc.CallCount("confirm"))
	assert.Equal(t, 3, queue.Len())
	assert.False(t, queue.Locked())
}
