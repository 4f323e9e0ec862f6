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


// Package storage provides the storage abstraction layer for mealplan.
//
// This package defines the contracts shared by the two persistence
// strategies: a directory of JSON documents inside a user-granted folder
// (see storage/directory) and an embedded BadgerDB database (see
// storage/badger). The facade in the root package picks one strategy per
// session and talks to it only through the Backend interface.
//
// # Entity Types
//
// Every save names the kind of data it carries:
//
//   - recipes, ingredients, allergens: catalog collections
//   - currentMenu: the date to slot mapping
//   - appSettings: the user preference bag
//
// # Directory Handles
//
// A directory handle is an opaque capability for a folder the user
// granted access to. Handles are persisted wrapped in a versioned,
// checksummed envelope (see MarshalHandle) so that validity is a tag
// comparison rather than structural probing of the stored bytes.
//
// # Error Policy
//
// Backends return errors; the facade logs them and degrades to defaults.
// Nothing in this layer is expected to reach the UI as a failure except
// a rejected import.
package storage
