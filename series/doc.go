// SPDX-License-Identifier: EPL-2.0

// Package series describes analysis results as charts without drawing
// them. A Chart carries ordered Series of (seconds, value) points plus the
// title, axis labels, colours and output name a renderer needs. Results
// are handed to a Consumer.
package series
