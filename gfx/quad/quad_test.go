package quad

import (
	"fmt"
	"strings"
	"testing"

	"github.com/peragwin/camfx/effects"
)

func TestFragmentProgramCoversCatalog(t *testing.T) {
	for id := effects.ID(1); id < effects.NumIDs; id++ {
		if !strings.Contains(fragmentShaderSource, fmt.Sprintf("case %d:", id)) {
			t.Errorf("fragment program has no branch for effect %d", id)
		}
	}
	if strings.Contains(fragmentShaderSource, fmt.Sprintf("case %d:", effects.NumIDs)) {
		t.Errorf("fragment program has a branch past the catalog")
	}
}

func TestQuadCoversClipSpace(t *testing.T) {
	if len(vertices)%4 != 0 {
		t.Fatalf("vertex data length %d is not a multiple of the stride", len(vertices))
	}
	for i := 0; i < len(vertices); i += 4 {
		x, y, u, v := vertices[i], vertices[i+1], vertices[i+2], vertices[i+3]
		// the top of clip space samples the first image row
		if u != (x+1)/2 || v != (1-y)/2 {
			t.Errorf("vertex %d: pos (%v,%v) tex (%v,%v)", i/4, x, y, u, v)
		}
	}
}
