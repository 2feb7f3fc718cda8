// SPDX-License-Identifier: EPL-2.0

package audiscope

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ik5/audiscope/audio"
	"github.com/ik5/audiscope/formats/aiff"
	"github.com/ik5/audiscope/formats/au"
	"github.com/ik5/audiscope/formats/mp3"
	"github.com/ik5/audiscope/formats/vorbis"
	"github.com/ik5/audiscope/formats/wav"
)

// DefaultRegistry is used by Load.
var DefaultRegistry = NewRegistry()

// NewRegistry returns a registry holding every decoder of this module.
func NewRegistry() *audio.Registry {
	r := audio.NewRegistry()

	r.Register("wav", wav.Decoder{})
	r.Register("wave", wav.Decoder{})
	r.Register("aif", aiff.Decoder{})
	r.Register("aiff", aiff.Decoder{})
	r.Register("au", au.Decoder{})
	r.Register("snd", au.Decoder{})
	r.Register("mp3", mp3.Decoder{})
	r.Register("ogg", vorbis.Decoder{})

	return r
}

// Load decodes the file at path into a mono buffer using DefaultRegistry.
func Load(ctx context.Context, path string, opts audio.ReadOptions) (*audio.Buffer, error) {
	return LoadWith(ctx, DefaultRegistry, path, opts)
}

// LoadWith is Load with an explicit registry.
func LoadWith(ctx context.Context, reg *audio.Registry, path string, opts audio.ReadOptions) (*audio.Buffer, error) {
	ext := filepath.Ext(path)
	d, ok := reg.Get(ext)
	if !ok {
		return nil, fmt.Errorf("%w: %q files", audio.ErrUnsupportedFormat, ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", audio.ErrIO, err)
	}
	defer f.Close()

	src, err := d.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	defer src.Close()

	return audio.Read(ctx, src, opts)
}
