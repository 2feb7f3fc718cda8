// SPDX-License-Identifier: EPL-2.0

package scale

import "errors"

var (
	ErrInvalidTransformKind = errors.New("invalid transform kind")
)
