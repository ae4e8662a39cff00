// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import "errors"

var (
	ErrMissingAgentAddress      = errors.New("config: agent address is required")
	ErrInvalidNetworkTimeout    = errors.New("config: network timeout must be > 0")
	ErrInvalidValidationTimeout = errors.New("config: validation timeout must be > 0")
)
