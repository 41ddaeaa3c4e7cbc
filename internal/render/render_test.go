package render_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"bricksort/internal/cluster"
	"bricksort/internal/logging"
	"bricksort/internal/render"
)

type fakeImages struct {
	mu     sync.Mutex
	images map[int64]string
	err    error
	delays map[int64]time.Duration
}

func (f *fakeImages) ImagesForParts(ctx context.Context, ids []int64) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	var images []string
	for _, id := range ids {
		if delay := f.delays[id]; delay > 0 {
			time.Sleep(delay)
		}
		f.mu.Lock()
		image, ok := f.images[id]
		f.mu.Unlock()
		if ok {
			images = append(images, image)
		}
	}
	return images, nil
}

func TestClustersRendersBlocks(t *testing.T) {
	images := &fakeImages{images: map[int64]string{
		3001: "aW1nMQ==",
		3002: "aW1nMg==",
	}}
	renderer := render.New(images, logging.NewNop())

	out, err := renderer.Clusters(context.Background(), []cluster.Summary{
		{Label: "Bricks", Quantity: 14, Members: []int64{3001, 3002}},
	})
	if err != nil {
		t.Fatalf("Clusters failed: %v", err)
	}

	if !strings.Contains(out, `<p style="margin: 10px; font-size: 32px;">Bricks (14)</p>`) {
		t.Fatalf("missing cluster heading in output:\n%s", out)
	}
	if !strings.Contains(out, `<img src="data:image/png;base64,aW1nMQ==`) {
		t.Fatalf("missing first image in output:\n%s", out)
	}
	if !strings.Contains(out, `<img src="data:image/png;base64,aW1nMg==`) {
		t.Fatalf("missing second image in output:\n%s", out)
	}
}

func TestClustersPreservesOrderUnderConcurrency(t *testing.T) {
	images := &fakeImages{
		images: map[int64]string{1: "a", 2: "b", 3: "c"},
		// The first cluster resolves last; output order must not change.
		delays: map[int64]time.Duration{1: 50 * time.Millisecond},
	}
	renderer := render.New(images, logging.NewNop())

	out, err := renderer.Clusters(context.Background(), []cluster.Summary{
		{Label: "First", Quantity: 1, Members: []int64{1}},
		{Label: "Second", Quantity: 2, Members: []int64{2}},
		{Label: "Third", Quantity: 3, Members: []int64{3}},
	})
	if err != nil {
		t.Fatalf("Clusters failed: %v", err)
	}

	first := strings.Index(out, "First (1)")
	second := strings.Index(out, "Second (2)")
	third := strings.Index(out, "Third (3)")
	if first < 0 || second < 0 || third < 0 {
		t.Fatalf("missing cluster headings:\n%s", out)
	}
	if !(first < second && second < third) {
		t.Fatalf("blocks out of order: %d %d %d", first, second, third)
	}
}

func TestClustersStripsCategoryIndexPrefix(t *testing.T) {
	renderer := render.New(&fakeImages{}, logging.NewNop())

	out, err := renderer.Clusters(context.Background(), []cluster.Summary{
		{Label: "12. Gears", Quantity: 4},
	})
	if err != nil {
		t.Fatalf("Clusters failed: %v", err)
	}
	if !strings.Contains(out, ">Gears (4)<") {
		t.Fatalf("expected index prefix stripped:\n%s", out)
	}
}

func TestClustersEscapesLabels(t *testing.T) {
	renderer := render.New(&fakeImages{}, logging.NewNop())

	out, err := renderer.Clusters(context.Background(), []cluster.Summary{
		{Label: "Plates & <Tiles>", Quantity: 2},
	})
	if err != nil {
		t.Fatalf("Clusters failed: %v", err)
	}
	if !strings.Contains(out, "Plates &amp; &lt;Tiles&gt; (2)") {
		t.Fatalf("expected escaped label:\n%s", out)
	}
}

func TestClustersSkipsMissingImages(t *testing.T) {
	images := &fakeImages{images: map[int64]string{3001: "aW1n"}}
	renderer := render.New(images, logging.NewNop())

	out, err := renderer.Clusters(context.Background(), []cluster.Summary{
		{Label: "Bricks", Quantity: 9, Members: []int64{3001, 3002}},
	})
	if err != nil {
		t.Fatalf("Clusters failed: %v", err)
	}
	if got := strings.Count(out, "<img "); got != 1 {
		t.Fatalf("expected one image tag, got %d:\n%s", got, out)
	}
}

func TestClustersPropagatesImageErrors(t *testing.T) {
	wantErr := errors.New("cache unavailable")
	renderer := render.New(&fakeImages{err: wantErr}, logging.NewNop())

	_, err := renderer.Clusters(context.Background(), []cluster.Summary{
		{Label: "Bricks", Quantity: 1, Members: []int64{3001}},
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected wrapped image error, got %v", err)
	}
	if err != nil && !strings.Contains(err.Error(), fmt.Sprintf("%q", "Bricks")) {
		t.Fatalf("error should name the cluster: %v", err)
	}
}
