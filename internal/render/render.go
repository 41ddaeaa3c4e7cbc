package render

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"regexp"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"bricksort/internal/cluster"
	"bricksort/internal/logging"
)

// categoryIndexRE strips the taxonomy's "N. " category-index prefix from a
// cluster label.
var categoryIndexRE = regexp.MustCompile(`^\d+\. `)

// ImageSource supplies cached part images in ascending DesignID order,
// skipping parts that have none.
type ImageSource interface {
	ImagesForParts(ctx context.Context, ids []int64) ([]string, error)
}

// Renderer builds the HTML artifact for a clustered working set.
type Renderer struct {
	images ImageSource
	logger *slog.Logger
}

// New constructs a renderer over the given image source.
func New(images ImageSource, logger *slog.Logger) *Renderer {
	return &Renderer{
		images: images,
		logger: logging.NewComponentLogger(logger, "render"),
	}
}

// Clusters renders each cluster into a self-contained block concurrently and
// joins the blocks in the input order.
func (r *Renderer) Clusters(ctx context.Context, clusters []cluster.Summary) (string, error) {
	blocks := make([]string, len(clusters))

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(runtime.GOMAXPROCS(0))
	for i, summary := range clusters {
		i, summary := i, summary
		group.Go(func() error {
			block, err := r.clusterBlock(ctx, summary)
			if err != nil {
				return err
			}
			blocks[i] = block
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return "", err
	}

	r.logger.Info("rendered clusters", logging.Int("count", len(clusters)))
	return strings.Join(blocks, ""), nil
}

func (r *Renderer) clusterBlock(ctx context.Context, summary cluster.Summary) (string, error) {
	images, err := r.images.ImagesForParts(ctx, summary.Members)
	if err != nil {
		return "", fmt.Errorf("images for cluster %q: %w", summary.Label, err)
	}

	label := categoryIndexRE.ReplaceAllString(summary.Label, "")

	var sb strings.Builder
	sb.WriteString("<div>\n")
	sb.WriteString(fmt.Sprintf("<p style=\"margin: 10px; font-size: 32px;\">%s (%d)</p>\n",
		html.EscapeString(label), summary.Quantity))
	for _, image := range images {
		sb.WriteString(fmt.Sprintf("<img src=\"data:image/png;base64,%s\" style=\"margin: 10px;\">\n", image))
	}
	sb.WriteString("</div>\n<br>")
	return sb.String(), nil
}
