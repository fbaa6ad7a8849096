/*
 * Copyright (C) 2025 IBM, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 *
 */

package prefix

import (
	"fmt"

	"github.com/pkg/errors"
)

// AddressParseError reports an address part that is not four decimal octets in [0,255].
type AddressParseError struct {
	Input  string
	Reason string
}

func (e *AddressParseError) Error() string {
	return fmt.Sprintf("invalid IPv4 address %q: %s", e.Input, e.Reason)
}

// MaskRangeError reports a mask that is not a decimal integer in [0,32].
type MaskRangeError struct {
	Input string
	Mask  string
}

func (e *MaskRangeError) Error() string {
	return fmt.Sprintf("invalid mask %q in %q: must be an integer between 0 and %d", e.Mask, e.Input, MaxBits)
}

// PrefixCalculationError is returned by every encoding function of this package.
// The cause is either an *AddressParseError or a *MaskRangeError.
type PrefixCalculationError struct {
	Input string
	Err   error
}

func (e *PrefixCalculationError) Error() string {
	return fmt.Sprintf("unable to calculate prefix for %q: %v", e.Input, e.Err)
}

func (e *PrefixCalculationError) Unwrap() error {
	return e.Err
}

func calculationError(input string, cause error) error {
	return &PrefixCalculationError{Input: input, Err: errors.WithStack(cause)}
}
