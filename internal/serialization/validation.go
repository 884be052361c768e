package serialization

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// Limits applied to headers read from disk.
const (
	MaxHeaderSize    = 100 << 20
	MaxTensorCount   = 100_000
	MaxTensorNameLen = 4096
)

// ValidationError reports a malformed header entry.
type ValidationError struct {
	Type    string // "offset_overlap", "out_of_bounds", "size_mismatch", ...
	Tensor  string
	Tensor2 string // second tensor of an overlap
	Details string
}

func (e *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Type)
	switch {
	case e.Tensor2 != "":
		fmt.Fprintf(&sb, ": tensors %q and %q", e.Tensor, e.Tensor2)
	case e.Tensor != "":
		fmt.Fprintf(&sb, ": tensor %q", e.Tensor)
	}
	if e.Details != "" {
		sb.WriteString(": ")
		sb.WriteString(e.Details)
	}
	return sb.String()
}

// TensorMeta locates one tensor inside the data section.
type TensorMeta struct {
	Name   string
	Offset int64
	Size   int64
}

func (m TensorMeta) end() int64 {
	return m.Offset + m.Size
}

func tooManyTensors(n int) error {
	return &ValidationError{
		Type:    "too_many_tensors",
		Details: fmt.Sprintf("got %d, max %d", n, MaxTensorCount),
	}
}

// ValidateTensorOffsets checks that every tensor lies inside a data section
// of dataSize bytes and that no two tensors share a byte.
func ValidateTensorOffsets(tensors []TensorMeta, dataSize int64) error {
	if len(tensors) > MaxTensorCount {
		return tooManyTensors(len(tensors))
	}

	sorted := slices.Clone(tensors)
	slices.SortFunc(sorted, func(a, b TensorMeta) int {
		return cmp.Compare(a.Offset, b.Offset)
	})

	for i, t := range sorted {
		switch {
		case t.Offset < 0 || t.Size < 0:
			return &ValidationError{
				Type:    "negative_offset",
				Tensor:  t.Name,
				Details: fmt.Sprintf("offset %d, size %d", t.Offset, t.Size),
			}
		case t.end() > dataSize:
			return &ValidationError{
				Type:    "out_of_bounds",
				Tensor:  t.Name,
				Details: fmt.Sprintf("[%d, %d) past %d data bytes", t.Offset, t.end(), dataSize),
			}
		case i+1 < len(sorted) && t.end() > sorted[i+1].Offset:
			next := sorted[i+1]
			return &ValidationError{
				Type:    "offset_overlap",
				Tensor:  t.Name,
				Tensor2: next.Name,
				Details: fmt.Sprintf("[%d, %d) and [%d, %d)", t.Offset, t.end(), next.Offset, next.end()),
			}
		}
	}
	return nil
}

// ValidateTensorName rejects names longer than MaxTensorNameLen and names
// that read as paths: "..", a separator, or NUL.
func ValidateTensorName(name string) error {
	if len(name) > MaxTensorNameLen {
		return &ValidationError{
			Type:    "name_too_long",
			Tensor:  name[:32] + "...",
			Details: fmt.Sprintf("%d bytes, max %d", len(name), MaxTensorNameLen),
		}
	}
	if strings.Contains(name, "..") || strings.ContainsAny(name, "/\\\x00") {
		return &ValidationError{
			Type:    "invalid_name",
			Tensor:  name,
			Details: `contains "..", a path separator, or NUL`,
		}
	}
	return nil
}
