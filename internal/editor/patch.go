package editor

import (
	"encoding/json"
	"fmt"
	"math"

	"bouncecure/internal/domain"
)

// Patch is a shallow set of element fields keyed by their JSON names.
type Patch map[string]any

// immutable keys are never taken from a patch.
var immutable = map[string]bool{"id": true, "type": true}

// applyPatch shallow-merges p into el and returns the merged element.
// el is left untouched on error.
func applyPatch(el domain.Element, p Patch) (domain.Element, error) {
	if len(p) == 0 {
		return el, nil
	}
	raw, err := json.Marshal(el)
	if err != nil {
		return el, fmt.Errorf("encode element: %w", err)
	}
	fields := map[string]any{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return el, fmt.Errorf("decode element: %w", err)
	}
	for k, v := range p {
		if immutable[k] {
			continue
		}
		fields[k] = v
	}
	merged, err := json.Marshal(fields)
	if err != nil {
		return el, fmt.Errorf("encode patch: %w", err)
	}
	var out domain.Element
	if err := json.Unmarshal(merged, &out); err != nil {
		return el, fmt.Errorf("apply patch: %w", err)
	}
	out.ID, out.Type = el.ID, el.Type
	if !out.GeometryValid() {
		return el, fmt.Errorf("apply patch: invalid geometry")
	}
	if out.Opacity != nil {
		o := *out.Opacity
		if math.IsNaN(o) {
			return el, fmt.Errorf("apply patch: invalid opacity")
		}
		o = math.Max(0, math.Min(1, o))
		out.Opacity = &o
	}
	return out, nil
}
