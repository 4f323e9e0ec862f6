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

import "errors"

var (
	// ErrNotFound indicates that the requested record was not found.
	ErrNotFound = errors.New("record not found")

	// ErrUnknownEntityType indicates a save for a kind no backend handles.
	ErrUnknownEntityType = errors.New("unknown entity type")

	// ErrStorageClosed indicates that the storage backend is closed.
	ErrStorageClosed = errors.New("storage is closed")

	// ErrNotReady indicates the backend has no usable location yet,
	// e.g. no folder has been selected.
	ErrNotReady = errors.New("storage not ready")

	// ErrSerializationFailed indicates a serialization/deserialization failure.
	ErrSerializationFailed = errors.New("serialization failed")

	// ErrMalformedHandle indicates a stored directory handle whose envelope
	// version or checksum does not match.
	ErrMalformedHandle = errors.New("malformed directory handle")

	// ErrHandleVerifyFailed indicates a handle write that did not read back
	// identically.
	ErrHandleVerifyFailed = errors.New("directory handle verification failed")
)
