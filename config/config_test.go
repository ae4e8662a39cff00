// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"testing"

	"github.com/luxfi/ids"
	"github.com/stretchr/testify/require"
)

func TestDefaultAgentConfigRequiresAgentAddress(t *testing.T) {
	cfg := DefaultAgentConfig()
	require.ErrorIs(t, cfg.Valid(), ErrMissingAgentAddress)

	cfg.AgentAddress = ids.GenerateTestNodeID()
	require.NoError(t, cfg.Valid())
}

func TestInvalidTimeoutsRejected(t *testing.T) {
	cfg := DefaultAgentConfig()
	cfg.AgentAddress = ids.GenerateTestNodeID()

	cfg.NetworkTimeout = 0
	require.ErrorIs(t, cfg.Valid(), ErrInvalidNetworkTimeout)

	cfg.NetworkTimeout = DefaultAgentConfig().NetworkTimeout
	cfg.ValidationTimeout = 0
	require.ErrorIs(t, cfg.Valid(), ErrInvalidValidationTimeout)
}
