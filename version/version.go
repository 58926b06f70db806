// Copyright 2026 PlanMate <dev@planmate.site>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package version

// Version is the version of the PlanMate AI service, it is overridden at
// build time using the `-ldflags` option of `go build`.
var Version = "1.0.0"

// Hash is the source control revision the binary was built from, it is
// overridden at build time using the `-ldflags` option of `go build`.
var Hash = "dev"
