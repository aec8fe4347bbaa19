// Copyright 2025 Logbase Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package id_test

import (
	"testing"

	"github.com/logbase-dev/atsignal/pkg/id"
)

func TestGetXid(t *testing.T) {
	got := id.GetXid()
	if got == "" {
		t.Fatal("expected non-empty xid")
	}
	if got == id.GetXid() {
		t.Error("expected distinct ids")
	}
}

func TestGetUlid(t *testing.T) {
	got := id.GetUlid()
	if len(got) != 26 {
		t.Fatalf("expected 26-char ulid, got %q", got)
	}
}
