// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package storage

import (
	"encoding/binary"
	"encoding/json"
	"fmt"

	"github.com/go-crypt/x/blake2b"
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
)

// HandleEnvelopeVersion tags the current directory handle encoding.
const HandleEnvelopeVersion uint64 = 1

// HandleEnvelope wraps an encoded DirectoryHandle.
type HandleEnvelope struct {
	Version  uint64
	Payload  string
	Checksum uint64
}

// checksum returns a 64-bit BLAKE2b digest of payload.
func checksum(payload string) uint64 {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(payload))
	return binary.LittleEndian.Uint64(h.Sum(nil))
}

func marshalHandlePayload(h DirectoryHandle) string {
	buf := make([]byte, ord.String.Size(h.Name)+ord.String.Size(h.Path))
	n := ord.String.Marshal(h.Name, buf)
	ord.String.Marshal(h.Path, buf[n:])
	return string(buf)
}

func unmarshalHandlePayload(payload string) (DirectoryHandle, error) {
	bs := []byte(payload)
	name, n, err := ord.String.Unmarshal(bs)
	if err != nil {
		return DirectoryHandle{}, err
	}
	path, _, err := ord.String.Unmarshal(bs[n:])
	if err != nil {
		return DirectoryHandle{}, err
	}
	return DirectoryHandle{Name: name, Path: path}, nil
}

// MarshalHandle serializes a DirectoryHandle inside a versioned envelope.
func MarshalHandle(h DirectoryHandle) []byte {
	env := HandleEnvelope{Version: HandleEnvelopeVersion, Payload: marshalHandlePayload(h)}
	env.Checksum = checksum(env.Payload)

	size := varint.Uint64.Size(env.Version) + ord.String.Size(env.Payload) + varint.Uint64.Size(env.Checksum)
	buf := make([]byte, size)
	n := varint.Uint64.Marshal(env.Version, buf)
	n += ord.String.Marshal(env.Payload, buf[n:])
	varint.Uint64.Marshal(env.Checksum, buf[n:])
	return buf
}

// UnmarshalHandle deserializes a DirectoryHandle envelope.
// Any decoding failure, unknown version or checksum mismatch is reported
// as ErrMalformedHandle.
func UnmarshalHandle(data []byte) (DirectoryHandle, error) {
	var env HandleEnvelope
	var err error
	var n, m int

	env.Version, n, err = varint.Uint64.Unmarshal(data)
	if err != nil {
		return DirectoryHandle{}, fmt.Errorf("%w: %w", ErrMalformedHandle, err)
	}
	if env.Version != HandleEnvelopeVersion {
		return DirectoryHandle{}, fmt.Errorf("%w: version %d", ErrMalformedHandle, env.Version)
	}
	env.Payload, m, err = ord.String.Unmarshal(data[n:])
	if err != nil {
		return DirectoryHandle{}, fmt.Errorf("%w: %w", ErrMalformedHandle, err)
	}
	n += m
	env.Checksum, _, err = varint.Uint64.Unmarshal(data[n:])
	if err != nil {
		return DirectoryHandle{}, fmt.Errorf("%w: %w", ErrMalformedHandle, err)
	}
	if env.Checksum != checksum(env.Payload) {
		return DirectoryHandle{}, fmt.Errorf("%w: checksum mismatch", ErrMalformedHandle)
	}

	h, err := unmarshalHandlePayload(env.Payload)
	if err != nil {
		return DirectoryHandle{}, fmt.Errorf("%w: %w", ErrMalformedHandle, err)
	}
	if h.IsZero() {
		return DirectoryHandle{}, fmt.Errorf("%w: empty path", ErrMalformedHandle)
	}
	return h, nil
}

// MarshalDocument serializes v as an indented JSON document.
func MarshalDocument(v any) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return data, nil
}

// UnmarshalDocument deserializes a JSON document into v.
func UnmarshalDocument(data []byte, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return nil
}
