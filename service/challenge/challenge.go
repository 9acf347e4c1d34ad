// Copyright 2021 Optakt Labs OÜ
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not
// use this file except in compliance with the License. You may obtain a copy of
// the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS, WITHOUT
// WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the
// License for the specific language governing permissions and limitations under
// the License.

// Package challenge implements the time-boxed ownership challenge of the star
// registry. A challenge is a plain token of the form
// `{identity}:{unixSeconds}:starRegistry` which the caller must get signed by
// the key behind the identity before it expires. No state is kept; the token a
// caller presents back is all there is.
package challenge

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	// Tag marks a token as belonging to the star registry ownership protocol.
	Tag = "starRegistry"

	// Window is how long a challenge stays valid after being issued.
	Window = 300 * time.Second

	// separator joins the token fields.
	separator = ":"
)

// Challenge binds an identity to the time its ownership proof was requested.
type Challenge struct {
	Identity string
	IssuedAt time.Time
}

// Issue formats a challenge token for the given identity at the given time.
func Issue(identity string, now time.Time) string {
	return fmt.Sprintf("%s%s%d%s%s", identity, separator, now.Unix(), separator, Tag)
}

// Parse extracts the challenge from its token form. The identity may itself
// contain separators, so the token is taken apart from the right.
func Parse(token string) (Challenge, error) {

	parts := strings.Split(token, separator)
	if len(parts) < 3 {
		return Challenge{}, fmt.Errorf("invalid challenge token (have: %d fields, want: 3)", len(parts))
	}

	tag := parts[len(parts)-1]
	if tag != Tag {
		return Challenge{}, fmt.Errorf("invalid challenge tag (have: %s, want: %s)", tag, Tag)
	}

	issued, err := strconv.ParseInt(parts[len(parts)-2], 10, 64)
	if err != nil {
		return Challenge{}, fmt.Errorf("could not parse challenge timestamp: %w", err)
	}

	identity := strings.Join(parts[:len(parts)-2], separator)
	if identity == "" {
		return Challenge{}, fmt.Errorf("missing identity in challenge token")
	}

	c := Challenge{
		Identity: identity,
		IssuedAt: time.Unix(issued, 0),
	}

	return c, nil
}

// Fresh reports whether the challenge is still within its validity window at
// the given time.
func (c Challenge) Fresh(now time.Time) bool {
	return now.Sub(c.IssuedAt) < Window
}

// IsFresh reports whether the token is well-formed and still within its
// validity window. A malformed token is simply not fresh, never fatal.
func IsFresh(token string, now time.Time) bool {
	c, err := Parse(token)
	if err != nil {
		return false
	}
	return c.Fresh(now)
}
