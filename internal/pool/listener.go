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

package pool

// TransitionEvent describes a single pool entry state transition, tagged
// with pool kind and table name for metrics and diagnostics.
type TransitionEvent struct {
	PoolKind   string
	Name       string
	Transition string // one of the common.Transition* constants
}

// Listener observes every pool state transition. Invocations happen
// synchronously under the affected entry's lock: implementations must not
// block or re-enter the engine.
type Listener interface {
	OnTransition(event TransitionEvent)
}

// ListenerFunc adapts a plain function to a Listener, mirroring the
// corpus's preference for passing a function value over a subclass hook.
type ListenerFunc func(TransitionEvent)

func (f ListenerFunc) OnTransition(event TransitionEvent) {
	f(event)
}
