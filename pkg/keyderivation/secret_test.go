/*
 * Copyright © 2025 Kaleido, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
 * the License. You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
 * an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
 * specific language governing permissions and limitations under the License.
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package keyderivation

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSecretScalarRedacted(t *testing.T) {
	s := NewSecretScalar([]byte{0xde, 0xad, 0xbe, 0xef})
	assert.Equal(t, "[secret scalar]", fmt.Sprintf("%v", s))
	assert.Equal(t, "[secret scalar]", fmt.Sprintf("%s", s))
	assert.Equal(t, "[secret scalar]", fmt.Sprintf("%#v", s))

	j, err := json.Marshal(s)
	require.NoError(t, err)
	assert.Equal(t, `"[secret scalar]"`, string(j))
	assert.NotContains(t, string(j), "deadbeef")
}

func TestSecretScalarRoundTrip(t *testing.T) {
	b := []byte{0x01, 0x02, 0x03}
	s := NewSecretScalar(b)
	assert.Equal(t, b, s.Bytes())
	assert.Equal(t, int64(0x010203), s.BigInt().Int64())
	// the constructor copies, later changes to the input do not propagate
	b[0] = 0xff
	assert.Equal(t, int64(0x010203), s.BigInt().Int64())
}

func TestSecretScalarDestroy(t *testing.T) {
	s := NewSecretScalar([]byte{0xde, 0xad, 0xbe, 0xef})
	s.Destroy()
	assert.Equal(t, 0, s.BigInt().Sign())
	s.Destroy() // idempotent

	var nilScalar *SecretScalar
	nilScalar.Destroy()
}
