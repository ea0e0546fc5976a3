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
	"bytes"
	"context"
	"encoding/xml"
	"sort"
	"strconv"
	"strings"

	"github.com/antchfx/xmlquery"
	"gitlab.com/tozd/go/errors"
)

func init() {
	RegisterCodec(&XMLCodec{})
}

// 🔧 XMLCodec implements the Codec interface for XML slide-part files.
// The markup mirrors a presentation slide part: <sld> slides holding <sp>
// shapes, <txBody> text bodies, <p> paragraphs, and <r> runs whose <rPr>
// attributes carry the opaque format bag.
type XMLCodec struct{}

// CanHandle checks if this codec handles the given file
func (c *XMLCodec) CanHandle(filename string) bool {
	return strings.HasSuffix(filename, ".xml")
}

// 📝 Decode parses a document from slide-part XML
func (c *XMLCodec) Decode(ctx context.Context, data []byte) (*Document, error) {
	root, err := xmlquery.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Errorf("parsing deck XML: %w", err)
	}

	deckNode, err := xmlquery.Query(root, "/deck")
	if err != nil {
		return nil, errors.Errorf("querying deck root: %w", err)
	}
	if deckNode == nil {
		return nil, errors.Errorf("deck XML has no <deck> root element")
	}

	doc := New()
	slideNodes, err := xmlquery.QueryAll(deckNode, "sld")
	if err != nil {
		return nil, errors.Errorf("querying slides: %w", err)
	}
	for _, sn := range slideNodes {
		slide := NewSlide()
		doc.slides = append(doc.slides, slide)

		shapeNodes, err := xmlquery.QueryAll(sn, "sp")
		if err != nil {
			return nil, errors.Errorf("querying shapes: %w", err)
		}
		for _, shn := range shapeNodes {
			shape := slide.CreateShape(shn.SelectAttr("name"))

			paraNodes, err := xmlquery.QueryAll(shn, "txBody/p")
			if err != nil {
				return nil, errors.Errorf("querying paragraphs: %w", err)
			}
			for _, pn := range paraNodes {
				para := shape.CreateParagraph()

				runNodes, err := xmlquery.QueryAll(pn, "r")
				if err != nil {
					return nil, errors.Errorf("querying runs: %w", err)
				}
				for _, rn := range runNodes {
					var format Format
					if propNode, _ := xmlquery.Query(rn, "rPr"); propNode != nil {
						format = Format{}
						for _, attr := range propNode.Attr {
							format[attr.Name.Local] = attr.Value
						}
					}
					var text string
					if textNode, _ := xmlquery.Query(rn, "t"); textNode != nil {
						text = textNode.InnerText()
					}
					para.CreateRun(text, format)
				}
			}
		}
	}

	if cursorAttr := deckNode.SelectAttr("cursor"); cursorAttr != "" {
		cursor, err := strconv.Atoi(cursorAttr)
		if err != nil {
			return nil, errors.Errorf("deck cursor attribute %q: %w", cursorAttr, err)
		}
		if err := doc.SetCursor(cursor); err != nil {
			return nil, errors.Errorf("deck cursor: %w", err)
		}
	}
	return doc, nil
}

type xmlRunProps struct {
	Attrs []xml.Attr `xml:",any,attr"`
}

type xmlRun struct {
	XMLName xml.Name     `xml:"r"`
	Props   *xmlRunProps `xml:"rPr,omitempty"`
	Text    string       `xml:"t"`
}

type xmlParagraph struct {
	XMLName xml.Name `xml:"p"`
	Runs    []xmlRun `xml:"r"`
}

type xmlTextBody struct {
	XMLName    xml.Name       `xml:"txBody"`
	Paragraphs []xmlParagraph `xml:"p"`
}

type xmlShape struct {
	XMLName xml.Name    `xml:"sp"`
	Name    string      `xml:"name,attr,omitempty"`
	Body    xmlTextBody `xml:"txBody"`
}

type xmlSlide struct {
	XMLName xml.Name   `xml:"sld"`
	Shapes  []xmlShape `xml:"sp"`
}

type xmlDeck struct {
	XMLName xml.Name   `xml:"deck"`
	Cursor  int        `xml:"cursor,attr,omitempty"`
	Slides  []xmlSlide `xml:"sld"`
}

// 📝 Encode serializes a document to slide-part XML
func (c *XMLCodec) Encode(ctx context.Context, doc *Document) ([]byte, error) {
	xd := xmlDeck{Cursor: doc.cursor}
	for _, slide := range doc.Slides() {
		xs := xmlSlide{}
		for _, shape := range slide.Shapes() {
			xsh := xmlShape{Name: shape.Name()}
			for _, para := range shape.Paragraphs() {
				xp := xmlParagraph{}
				for _, run := range para.Runs() {
					xr := xmlRun{Text: run.Text()}
					if f := run.Format(); f != nil {
						// Attribute order is sorted so encoded output is stable.
						keys := make([]string, 0, len(f))
						for k := range f {
							keys = append(keys, k)
						}
						sort.Strings(keys)
						props := &xmlRunProps{}
						for _, k := range keys {
							props.Attrs = append(props.Attrs, xml.Attr{
								Name:  xml.Name{Local: k},
								Value: f[k],
							})
						}
						xr.Props = props
					}
					xp.Runs = append(xp.Runs, xr)
				}
				xsh.Body.Paragraphs = append(xsh.Body.Paragraphs, xp)
			}
			xs.Shapes = append(xs.Shapes, xsh)
		}
		xd.Slides = append(xd.Slides, xs)
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(&xd); err != nil {
		return nil, errors.Errorf("encoding deck XML: %w", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}
