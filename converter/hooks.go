package converter

import (
	"context"
	"errors"
)

// ErrUnresolved indicates that a link or image reference could not be resolved by a hook.
var ErrUnresolved = errors.New("unresolved link or image reference")

// ResolutionMode controls how unresolved hook results are handled.
type ResolutionMode string

const (
	// ResolutionBestEffort keeps the original destination and records a warning.
	ResolutionBestEffort ResolutionMode = "best_effort"
	// ResolutionStrict fails conversion when a hook returns ErrUnresolved.
	ResolutionStrict ResolutionMode = "strict"
)

// ConvertOptions carries optional per-conversion context.
type ConvertOptions struct {
	SourcePath string
}

// ReferenceMetadata exposes details parsed from a destination.
type ReferenceMetadata struct {
	Filename string
	Anchor   string
}

// LinkHook can rewrite link destinations and labels before rendering.
type LinkHook func(ctx context.Context, in LinkInput) (LinkOutput, error)

// ImageHook can rewrite image sources and alt text before rendering.
type ImageHook func(ctx context.Context, in ImageInput) (ImageOutput, error)

// LinkInput describes a link segment being resolved.
type LinkInput struct {
	SourcePath  string
	Destination string
	Text        string
	Meta        ReferenceMetadata
}

// LinkOutput contains hook-provided link overrides. An empty Text keeps the
// original label.
type LinkOutput struct {
	Destination string
	Text        string
	Handled     bool
}

// ImageInput describes an image segment being resolved.
type ImageInput struct {
	SourcePath  string
	Destination string
	Alt         string
	Meta        ReferenceMetadata
}

// ImageOutput contains hook-provided image overrides. An empty Alt keeps the
// original alt text.
type ImageOutput struct {
	Destination string
	Alt         string
	Handled     bool
}
