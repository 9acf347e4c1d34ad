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

package chain

import (
	"time"
)

// DefaultConfig is the default configuration for the registry chain.
var DefaultConfig = Config{
	Now: time.Now,
}

// Config is the configuration of a registry chain.
type Config struct {
	Now func() time.Time
}

// WithClock injects the clock used to stamp blocks and to check challenge
// freshness, so tests can simulate the validity window.
func WithClock(now func() time.Time) func(*Config) {
	return func(cfg *Config) {
		cfg.Now = now
	}
}
