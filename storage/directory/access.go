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


package directory

import (
	"context"

	"github.com/poiesic/mealplan/storage"
)

// Mode is the access level requested for a directory.
type Mode string

const (
	ModeRead      Mode = "read"
	ModeReadWrite Mode = "readwrite"
)

// Permission is the host's answer to a permission query.
type Permission string

const (
	PermissionGranted Permission = "granted"
	PermissionPrompt  Permission = "prompt"
	PermissionDenied  Permission = "denied"
)

// Access is the host capability for user-granted directory access.
// Hosts without it make the adapter fall back to the embedded database.
type Access interface {
	// PickDirectory asks the user to choose a folder and returns a handle
	// for it. This always involves the user.
	PickDirectory(ctx context.Context, mode Mode) (storage.DirectoryHandle, error)

	// QueryPermission reports the current permission for a handle without
	// prompting.
	QueryPermission(ctx context.Context, handle storage.DirectoryHandle, mode Mode) (Permission, error)

	// RequestPermission asks for permission on a handle and may prompt.
	RequestPermission(ctx context.Context, handle storage.DirectoryHandle, mode Mode) (Permission, error)
}

// HandleStore remembers the last granted directory handle across sessions.
type HandleStore interface {
	Store(ctx context.Context, handle storage.DirectoryHandle) error
	Lookup(ctx context.Context) (storage.DirectoryHandle, error)
	Clear(ctx context.Context) error
}
