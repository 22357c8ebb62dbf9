// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"fmt"
	"os"

	"github.com/pdiddy/docparse/internal/container"
)

// DefaultMarkitdownImage is the container image used when the config does not
// name one.
const DefaultMarkitdownImage = "markitdown:latest"

// MarkitdownConverter converts documents by piping them through the
// markitdown container image. It depends on a container.Runtime (docker or
// podman) injected at construction time. The image handles format detection
// itself, so this backend accepts anything markitdown accepts.
type MarkitdownConverter struct {
	runtime container.Runtime
	image   string
}

// NewMarkitdownConverter creates a converter that runs the given image in the
// given runtime. It verifies that the image exists locally before returning.
func NewMarkitdownConverter(rt container.Runtime, image string) (*MarkitdownConverter, error) {
	if image == "" {
		image = DefaultMarkitdownImage
	}
	if err := rt.ImageExists(image); err != nil {
		return nil, fmt.Errorf("conversion image not available in %s: %w", rt.Name(), err)
	}
	return &MarkitdownConverter{runtime: rt, image: image}, nil
}

// Convert pipes the file through the container and wraps the Markdown output
// in a Document. Markitdown reports neither tables nor page counts, so the
// resulting Document exposes only the base capabilities.
func (m *MarkitdownConverter) Convert(path string) (Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var out bytes.Buffer
	if err := m.runtime.Run(m.image, f, &out); err != nil {
		return nil, fmt.Errorf("converting %s with %s: %w", path, m.image, err)
	}

	if out.Len() == 0 {
		return nil, fmt.Errorf("%s produced empty output for %s", m.image, path)
	}

	return NewDoc(out.String()), nil
}
