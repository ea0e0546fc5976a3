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
	"strings"

	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

func init() {
	RegisterCodec(&YAMLCodec{})
}

// 🔧 YAMLCodec implements the Codec interface for YAML deck files
type YAMLCodec struct{}

// CanHandle checks if this codec handles the given file
func (c *YAMLCodec) CanHandle(filename string) bool {
	return strings.HasSuffix(filename, ".yaml") || strings.HasSuffix(filename, ".yml")
}

type yamlRun struct {
	Text   string            `yaml:"text"`
	Format map[string]string `yaml:"format,omitempty"`
}

type yamlParagraph struct {
	Runs []yamlRun `yaml:"runs"`
}

type yamlShape struct {
	Name       string          `yaml:"name,omitempty"`
	Paragraphs []yamlParagraph `yaml:"paragraphs"`
}

type yamlSlide struct {
	Shapes []yamlShape `yaml:"shapes"`
}

type yamlDeck struct {
	Cursor int         `yaml:"cursor,omitempty"`
	Slides []yamlSlide `yaml:"slides"`
}

// 📝 Decode parses a document from YAML
func (c *YAMLCodec) Decode(ctx context.Context, data []byte) (*Document, error) {
	var yd yamlDeck
	if err := yaml.Unmarshal(data, &yd); err != nil {
		return nil, errors.Errorf("parsing YAML deck: %w", err)
	}

	doc := New()
	for _, ys := range yd.Slides {
		slide := NewSlide()
		doc.slides = append(doc.slides, slide)
		for _, ysh := range ys.Shapes {
			shape := slide.CreateShape(ysh.Name)
			for _, yp := range ysh.Paragraphs {
				para := shape.CreateParagraph()
				for _, yr := range yp.Runs {
					para.CreateRun(yr.Text, Format(yr.Format))
				}
			}
		}
	}

	if yd.Cursor != 0 {
		if err := doc.SetCursor(yd.Cursor); err != nil {
			return nil, errors.Errorf("deck cursor: %w", err)
		}
	}
	return doc, nil
}

// 📝 Encode serializes a document to YAML
func (c *YAMLCodec) Encode(ctx context.Context, doc *Document) ([]byte, error) {
	yd := yamlDeck{Cursor: doc.cursor}
	for _, slide := range doc.Slides() {
		ys := yamlSlide{}
		for _, shape := range slide.Shapes() {
			ysh := yamlShape{Name: shape.Name()}
			for _, para := range shape.Paragraphs() {
				yp := yamlParagraph{}
				for _, run := range para.Runs() {
					yp.Runs = append(yp.Runs, yamlRun{Text: run.Text(), Format: run.Format()})
				}
				ysh.Paragraphs = append(ysh.Paragraphs, yp)
			}
			ys.Shapes = append(ys.Shapes, ysh)
		}
		yd.Slides = append(yd.Slides, ys)
	}

	data, err := yaml.Marshal(&yd)
	if err != nil {
		return nil, errors.Errorf("marshaling YAML deck: %w", err)
	}
	return data, nil
}
