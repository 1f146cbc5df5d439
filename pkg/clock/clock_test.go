//
// Copyright 2026 The Licensecore Authors.
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

package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSystemNowAdvancesWithRealTime(t *testing.T) {
	before := time.Now()
	now := System{}.Now()
	after := time.Now()
	require.False(t, now.Before(before))
	require.False(t, now.After(after))
}

func TestFixedAlwaysReturnsSameInstant(t *testing.T) {
	instant := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	f := Fixed(instant)
	require.Equal(t, instant, f.Now())
	require.Equal(t, instant, f.Now())
}
