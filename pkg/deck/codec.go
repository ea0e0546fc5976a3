// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package deck

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🔌 Codec reads and writes a deck file format.
type Codec interface {
	// CanHandle checks if this codec handles the given file
	CanHandle(filename string) bool

	// Decode parses a document from bytes
	Decode(ctx context.Context, data []byte) (*Document, error)

	// Encode serializes a document to bytes
	Encode(ctx context.Context, doc *Document) ([]byte, error)
}

// 🗺️ codecs is the list of registered codecs
var codecs []Codec

// RegisterCodec registers a codec.
func RegisterCodec(c Codec) {
	codecs = append(codecs, c)
}

// CodecFor returns a codec that handles the given file, or nil.
func CodecFor(filename string) Codec {
	for _, c := range codecs {
		if c.CanHandle(filename) {
			return c
		}
	}
	return nil
}

// 🎯 Load reads a deck file, picking the codec by file extension.
func Load(ctx context.Context, path string) (*Document, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading deck")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading deck file: %w", err)
	}

	codec := CodecFor(path)
	if codec == nil {
		return nil, errors.Errorf("no codec for deck file %q", path)
	}

	doc, err := codec.Decode(ctx, data)
	if err != nil {
		return nil, errors.Errorf("decoding deck file %q: %w", path, err)
	}

	logger.Debug().Int("slides", doc.SlideCount()).Msg("deck loaded")
	return doc, nil
}

// 💾 Save writes a deck file, picking the codec by file extension.
func Save(ctx context.Context, path string, doc *Document) error {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Int("slides", doc.SlideCount()).Msg("saving deck")

	codec := CodecFor(path)
	if codec == nil {
		return errors.Errorf("no codec for deck file %q", path)
	}

	data, err := codec.Encode(ctx, doc)
	if err != nil {
		return errors.Errorf("encoding deck: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Errorf("writing deck file: %w", err)
	}
	return nil
}
