// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package trie

import (
	"github.com/hashicorp/go-hclog"
)

type config struct {
	logger hclog.Logger
}

// Option configures a Trie.
type Option func(*config)

// WithLogger sets the logger used for allocation, prune and store
// consistency events. The default discards everything.
func WithLogger(logger hclog.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func newConfig(opts []Option) config {
	c := config{logger: hclog.NewNullLogger()}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}
