package converter

import (
	"errors"
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/rgonek/inline-html-converter/segment"
)

func (s *state) resolveReferences(segments []segment.Segment) ([]segment.Segment, error) {
	if s.config.LinkHook == nil && s.config.ImageHook == nil {
		return segments, nil
	}

	resolved := make([]segment.Segment, len(segments))
	for i, seg := range segments {
		var err error
		switch seg.Category {
		case segment.Link:
			resolved[i], err = s.applyLinkHook(seg)
		case segment.Image:
			resolved[i], err = s.applyImageHook(seg)
		default:
			resolved[i] = seg
		}
		if err != nil {
			return nil, err
		}
	}
	return resolved, nil
}

func (s *state) applyLinkHook(seg segment.Segment) (segment.Segment, error) {
	dest, _ := seg.Destination()
	if s.config.LinkHook == nil {
		return seg, nil
	}

	if err := s.checkContext(); err != nil {
		return segment.Segment{}, err
	}

	output, err := s.config.LinkHook(s.ctx, LinkInput{
		SourcePath:  s.sourcePath,
		Destination: dest,
		Text:        seg.Text,
		Meta:        referenceMetadata(dest),
	})
	if err != nil {
		if errors.Is(err, ErrUnresolved) {
			if s.config.ResolutionMode == ResolutionStrict {
				return segment.Segment{}, fmt.Errorf("unresolved link reference %q: %w", dest, err)
			}
			s.addWarning(
				WarningUnresolvedReference,
				seg.Text,
				fmt.Sprintf("unresolved link reference %q; keeping original destination", dest),
			)
			return seg, nil
		}
		return segment.Segment{}, fmt.Errorf("link hook failed: %w", err)
	}

	if !output.Handled {
		return seg, nil
	}
	if strings.TrimSpace(output.Destination) == "" {
		return segment.Segment{}, fmt.Errorf("invalid link hook output: handled link requires non-empty destination")
	}

	if output.Text != "" {
		seg = seg.WithText(output.Text)
	}
	return seg.WithDestination(strings.TrimSpace(output.Destination))
}

func (s *state) applyImageHook(seg segment.Segment) (segment.Segment, error) {
	dest, _ := seg.Destination()
	if s.config.ImageHook == nil {
		return seg, nil
	}

	if err := s.checkContext(); err != nil {
		return segment.Segment{}, err
	}

	output, err := s.config.ImageHook(s.ctx, ImageInput{
		SourcePath:  s.sourcePath,
		Destination: dest,
		Alt:         seg.Text,
		Meta:        referenceMetadata(dest),
	})
	if err != nil {
		if errors.Is(err, ErrUnresolved) {
			if s.config.ResolutionMode == ResolutionStrict {
				return segment.Segment{}, fmt.Errorf("unresolved image reference %q: %w", dest, err)
			}
			s.addWarning(
				WarningUnresolvedReference,
				seg.Text,
				fmt.Sprintf("unresolved image reference %q; keeping original source", dest),
			)
			return seg, nil
		}
		return segment.Segment{}, fmt.Errorf("image hook failed: %w", err)
	}

	if !output.Handled {
		return seg, nil
	}
	if strings.TrimSpace(output.Destination) == "" {
		return segment.Segment{}, fmt.Errorf("invalid image hook output: handled image requires non-empty destination")
	}

	if output.Alt != "" {
		seg = seg.WithText(output.Alt)
	}
	return seg.WithDestination(strings.TrimSpace(output.Destination))
}

func referenceMetadata(reference string) ReferenceMetadata {
	filename, anchor := parseReferenceDetails(reference)
	return ReferenceMetadata{Filename: filename, Anchor: anchor}
}

func parseReferenceDetails(reference string) (string, string) {
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return "", ""
	}

	parsed, err := url.Parse(reference)
	if err != nil {
		return parseReferenceDetailsFallback(reference)
	}

	anchor := strings.TrimSpace(parsed.Fragment)
	referencePath := parsed.Path
	if referencePath == "" && parsed.Opaque == "" && parsed.Host == "" && anchor == "" {
		referencePath = reference
	}
	return baseName(referencePath), anchor
}

func parseReferenceDetailsFallback(reference string) (string, string) {
	anchor := ""
	if hashIndex := strings.LastIndex(reference, "#"); hashIndex >= 0 {
		anchor = strings.TrimSpace(reference[hashIndex+1:])
		reference = reference[:hashIndex]
	}
	return baseName(reference), anchor
}

func baseName(reference string) string {
	reference = strings.ReplaceAll(reference, "\\", "/")
	reference = strings.TrimRight(reference, "/")
	if reference == "" {
		return ""
	}

	filename := strings.TrimSpace(path.Base(reference))
	if filename == "." || filename == "/" {
		return ""
	}
	return filename
}
