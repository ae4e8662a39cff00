// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package action

import (
	"context"

	"github.com/luxfi/holo"
	"github.com/luxfi/holo/entry"
	"github.com/luxfi/holo/ribosome"
	"github.com/luxfi/holo/validation"
)

// NewHostValidator returns a Validator that dispatches through host's zome
// export for entryType, the production wiring between this package and
// validation.Validate. metrics may be nil.
func NewHostValidator(host ribosome.Host, zome, entryType string, metrics *holo.Metrics) Validator {
	return func(ctx context.Context, e entry.Entry, data validation.ValidationData) error {
		return validation.Validate(ctx, host, zome, entryType, e, data, metrics)
	}
}
