// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ribosome

import "errors"

// ErrExportNotFound is returned by Host.Call when the target zome does not
// provide the requested export. Callers distinguish this from
// NotImplemented (spec.md §9): an absent export means the application never
// registered a hook, which the validation pipeline maps to its own
// NotImplemented policy per entry kind and lifecycle.
var ErrExportNotFound = errors.New("ribosome: export not found")
