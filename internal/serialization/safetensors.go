package serialization

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"slices"

	"github.com/born-ml/nexus/internal/tensor"
)

// SafeTensors dtypes understood by Read.
const (
	DTypeF32 = "F32"
	DTypeF64 = "F64"
)

const metadataKey = "__metadata__"

// TensorInfo describes a tensor in the SafeTensors header.
type TensorInfo struct {
	DType       string   `json:"dtype"`
	Shape       []int    `json:"shape"`
	DataOffsets [2]int64 `json:"data_offsets"` // [start, end) within the data section
}

// Checkpoint is the decoded content of a SafeTensors file.
type Checkpoint struct {
	Tensors  map[string]*tensor.Array
	Metadata map[string]string
}

// Tensor returns the named array or ErrTensorNotFound.
func (c *Checkpoint) Tensor(name string) (*tensor.Array, error) {
	arr, ok := c.Tensors[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrTensorNotFound, name)
	}
	return arr, nil
}

// Write encodes tensors to w. Tensors are written in alphabetical order by
// name; metadata is copied into the header alongside the data checksum.
func Write(w io.Writer, tensors map[string]*tensor.Array, metadata map[string]string) error {
	names := make([]string, 0, len(tensors))
	for name := range tensors {
		if err := ValidateTensorName(name); err != nil {
			return err
		}
		names = append(names, name)
	}
	slices.Sort(names)

	header := make(map[string]any, len(names)+1)
	var data []byte
	for _, name := range names {
		arr := tensors[name]
		start := int64(len(data))
		for _, v := range arr.Values() {
			data = binary.LittleEndian.AppendUint64(data, math.Float64bits(v))
		}
		shape := arr.Shape()
		if shape == nil {
			shape = tensor.Shape{}
		}
		header[name] = TensorInfo{
			DType:       DTypeF64,
			Shape:       shape,
			DataOffsets: [2]int64{start, int64(len(data))},
		}
	}

	meta := make(map[string]string, len(metadata)+1)
	for k, v := range metadata {
		meta[k] = v
	}
	meta[checksumKey] = ComputeChecksum(data)
	header[metadataKey] = meta

	headerJSON, err := json.Marshal(header)
	if err != nil {
		return fmt.Errorf("failed to marshal header: %w", err)
	}

	// Write header size (8 bytes, little-endian uint64)
	if err := binary.Write(w, binary.LittleEndian, uint64(len(headerJSON))); err != nil {
		return fmt.Errorf("failed to write header size: %w", err)
	}
	if _, err := w.Write(headerJSON); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write tensor data: %w", err)
	}
	return nil
}

// WriteFile writes tensors to a SafeTensors file at path.
func WriteFile(path string, tensors map[string]*tensor.Array, metadata map[string]string) (err error) {
	//nolint:gosec // G304: File path comes from user input, which is expected for checkpoint saving
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("failed to close file: %w", cerr)
		}
	}()

	return Write(file, tensors, metadata)
}

// Read decodes a SafeTensors stream.
func Read(r io.Reader) (*Checkpoint, error) {
	// Read header size (8 bytes, little-endian uint64)
	var headerSize uint64
	if err := binary.Read(r, binary.LittleEndian, &headerSize); err != nil {
		return nil, fmt.Errorf("failed to read header size: %w", err)
	}
	if headerSize > MaxHeaderSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrHeaderTooLarge, headerSize)
	}

	headerBytes := make([]byte, headerSize)
	if _, err := io.ReadFull(r, headerBytes); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	var rawMap map[string]json.RawMessage
	if err := json.Unmarshal(headerBytes, &rawMap); err != nil {
		return nil, fmt.Errorf("failed to parse header JSON: %w", err)
	}

	ckpt := &Checkpoint{
		Tensors:  make(map[string]*tensor.Array, len(rawMap)),
		Metadata: map[string]string{},
	}
	if metaRaw, ok := rawMap[metadataKey]; ok {
		if err := json.Unmarshal(metaRaw, &ckpt.Metadata); err != nil {
			return nil, fmt.Errorf("failed to unmarshal metadata: %w", err)
		}
		delete(rawMap, metadataKey)
	}
	if len(rawMap) > MaxTensorCount {
		return nil, tooManyTensors(len(rawMap))
	}

	infos := make(map[string]TensorInfo, len(rawMap))
	metas := make([]TensorMeta, 0, len(rawMap))
	for name, raw := range rawMap {
		if err := ValidateTensorName(name); err != nil {
			return nil, err
		}
		var info TensorInfo
		if err := json.Unmarshal(raw, &info); err != nil {
			return nil, fmt.Errorf("failed to unmarshal tensor %s: %w", name, err)
		}
		infos[name] = info
		metas = append(metas, TensorMeta{
			Name:   name,
			Offset: info.DataOffsets[0],
			Size:   info.DataOffsets[1] - info.DataOffsets[0],
		})
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read tensor data: %w", err)
	}
	if err := ValidateTensorOffsets(metas, int64(len(data))); err != nil {
		return nil, err
	}
	if stored, ok := ckpt.Metadata[checksumKey]; ok {
		if err := ValidateChecksum(data, stored); err != nil {
			return nil, err
		}
	}

	for name, info := range infos {
		arr, err := decode(name, info, data[info.DataOffsets[0]:info.DataOffsets[1]])
		if err != nil {
			return nil, err
		}
		ckpt.Tensors[name] = arr
	}
	return ckpt, nil
}

// ReadFile reads a SafeTensors file from path.
func ReadFile(path string) (*Checkpoint, error) {
	//nolint:gosec // G304: File path comes from user input, which is expected for checkpoint loading
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() {
		_ = file.Close() // Best effort close
	}()

	return Read(file)
}

func decode(name string, info TensorInfo, raw []byte) (*tensor.Array, error) {
	shape := tensor.Shape(info.Shape)

	var width int
	switch info.DType {
	case DTypeF64:
		width = 8
	case DTypeF32:
		width = 4
	default:
		return nil, fmt.Errorf("tensor %s: %w: %s", name, ErrUnsupportedDType, info.DType)
	}
	n, ok := elementCount(shape, len(raw)/width)
	if !ok || len(raw) != n*width {
		return nil, &ValidationError{
			Type:    "size_mismatch",
			Tensor:  name,
			Details: fmt.Sprintf("shape %v does not fit %d bytes of %s", shape, len(raw), info.DType),
		}
	}

	values := make([]float64, n)
	for i := range values {
		chunk := raw[i*width : (i+1)*width]
		if width == 8 {
			values[i] = math.Float64frombits(binary.LittleEndian.Uint64(chunk))
		} else {
			values[i] = float64(math.Float32frombits(binary.LittleEndian.Uint32(chunk)))
		}
	}

	arr, err := tensor.New(shape, values)
	if err != nil {
		return nil, fmt.Errorf("tensor %s: %w", name, err)
	}
	return arr, nil
}

// elementCount multiplies the dimensions of shape, failing as soon as the
// product would exceed limit.
func elementCount(shape tensor.Shape, limit int) (int, bool) {
	n := 1
	for _, dim := range shape {
		if dim < 0 {
			return 0, false
		}
		if dim > 0 && n > limit/dim {
			return 0, false
		}
		n *= dim
	}
	return n, true
}
