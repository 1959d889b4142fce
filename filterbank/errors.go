// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package filterbank

import "errors"

// Error kinds shared across the pipeline stages.  Each stage validates
// its own inputs and fails fast, wrapping one of these so callers can
// dispatch with errors.Is.
var (
	// ErrConfig indicates an invalid filter spec, rate parameter,
	// or other configuration value.
	ErrConfig = errors.New("invalid configuration")

	// ErrDistribution indicates a malformed random distribution
	// parameter, such as a negative spread.
	ErrDistribution = errors.New("invalid distribution")

	// ErrDimension indicates mismatched array lengths between
	// pipeline stages.
	ErrDimension = errors.New("dimension mismatch")
)
