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


// Package directory persists the mealplan model as JSON documents inside a
// folder the user granted access to.
//
// Access to the folder is mediated by a host capability (Access): the host
// shows the folder picker and answers permission queries for a handle it
// issued earlier. The last granted handle is remembered by a HandleStore so
// later sessions can reconnect without prompting.
//
// # Layout
//
//	<root>/data/data.json          combined recipes, ingredients, allergens
//	<root>/data/menus.json         menu (currentMenu.json read as fallback)
//	<root>/data/settings.json      settings
//	<root>/data/archive/menus/     reserved for exported menus
//
// Older layouts without data/ or with one file per entity type are still
// read; writes always produce the layout above.
package directory
