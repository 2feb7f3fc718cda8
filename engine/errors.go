// SPDX-License-Identifier: EPL-2.0

package engine

import "errors"

var (
	ErrInvalidParameter = errors.New("invalid parameter")
	ErrFileTooLarge     = errors.New("file exceeds the size limit")
)
