// Copyright 2024 Google LLC
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

package common

// Engine coordinator operation names, used as metric/tracing attribute
// values and as span names.
const (
	OpCreateTable     = "CreateTable"
	OpGetReader       = "GetReader"
	OpGetWriter       = "GetWriter"
	OpGetBackupWriter = "GetBackupWriter"
	OpLock            = "Lock"
	OpUnlock          = "Unlock"
	OpRemove          = "Remove"
	OpRename          = "Rename"
	OpStatus          = "Status"
	OpMigrateNullFlag = "MigrateNullFlag"
	OpListTables      = "ListTables"
	OpNextID          = "NextID"
	OpUpgrade         = "Upgrade"
	OpMaintenanceTick = "MaintenanceTick"
)

// Pool kinds, used to tag pool transition events and metrics.
const (
	PoolKindWriter = "writer"
	PoolKindReader = "reader"
)

// Pool transition kinds, reported to PoolListener implementations.
const (
	TransitionAcquired           = "acquired"
	TransitionReturned           = "returned"
	TransitionEvicted            = "evicted"
	TransitionLocked             = "locked"
	TransitionUnlocked           = "unlocked"
	TransitionClosed             = "closed"
	TransitionConstructionFailed = "construction_failed"
)

// Metric/trace attribute keys.
const (
	// OpKey annotates the engine operation processed (see the Op* constants).
	OpKey = "op"

	// PoolKindKey annotates which pool (writer or reader) an event concerns.
	PoolKindKey = "pool_kind"

	// TransitionKey annotates the pool state transition a listener observed.
	TransitionKey = "transition"
)
