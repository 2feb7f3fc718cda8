// SPDX-License-Identifier: EPL-2.0

// Package utils holds small numeric helpers shared by the analysis and
// chart code.
package utils
