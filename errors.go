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


package mealplan

import "errors"

var (
	// ErrAdapterClosed is returned by operations on a closed Adapter.
	ErrAdapterClosed = errors.New("adapter closed")

	// ErrUnexpectedData is logged when Save receives a value of the wrong type for its kind.
	ErrUnexpectedData = errors.New("unexpected data for entity type")

	// ErrInvalidExport is returned by Import when the document is not a JSON object.
	ErrInvalidExport = errors.New("invalid export document")
)
