// Package serialization saves and loads named arrays in the SafeTensors
// format.
//
//	Format Structure:
//	  [8 bytes: Header Size (uint64 LE)]
//	  [Header: JSON, name -> {dtype, shape, data_offsets}, plus __metadata__]
//	  [Tensor data: raw little-endian bytes, in name order]
//
// Arrays are written as F64. F32 and F64 entries are accepted on read; the
// writer stores a SHA-256 of the data section under the "sha256" metadata
// key, which the reader verifies when present.
//
// Example usage:
//
//	err := serialization.WriteFile("weights.safetensors",
//	    map[string]*tensor.Array{"weight": w}, nil)
//
//	ckpt, err := serialization.ReadFile("weights.safetensors")
//	w := ckpt.Tensors["weight"]
package serialization
