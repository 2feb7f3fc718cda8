// SPDX-License-Identifier: EPL-2.0

// Package au decodes Sun/NeXT audio (.au, .snd) files with linear PCM
// encodings (8, 16, 24 and 32 bit, big-endian, signed).
//
// The header is six big-endian 32-bit words: magic ".snd", data offset,
// data size (0xFFFFFFFF when unknown), encoding, sample rate and channel
// count. PatchHeader rewrites the data size, which is all a part cut from
// a larger file needs.
package au
