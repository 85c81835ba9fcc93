// Copyright 2026 Google LLC
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

package tablemeta

// CurrentVersion is the on-disk metadata format version this build writes.
const CurrentVersion uint32 = 426

// VersionThatAddedTableID is the format version at which the id word was
// added to _meta. A table whose stored version is below this has no id
// assigned and must go through the upgrade procedure's assign-id step.
const VersionThatAddedTableID uint32 = 422

// VersionThatAddedNullFlag is the format version at which symbol columns
// gained a per-column has-null flag. Engine.MigrateNullFlag raises the
// stored version of any table below this to CurrentVersion; it does not
// write per-column has-null flags.
const VersionThatAddedNullFlag uint32 = 416
