// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package validation

import "errors"

var (
	// ErrRequiresPriorEntry is returned by Validate when a Modify action's
	// package carries no chain entries, and so not the prior entry
	// (original_source/core/src/nucleus/ribosome/api/update_entry.rs:
	// UpdateEntry requires the package to embed the entry being replaced).
	ErrRequiresPriorEntry = errors.New("validation: package for Modify must include prior entry")

	// ErrUnknownPackageDefinition is returned when a callback's response
	// decodes to a PackageDefinitionKind this pipeline does not recognize.
	ErrUnknownPackageDefinition = errors.New("validation: unknown package definition kind")
)
