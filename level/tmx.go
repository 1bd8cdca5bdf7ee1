package level

import (
	"encoding/xml"
	"fmt"
	"math"
	"strconv"
)

// AttachedToProperty is the TMX custom property naming an object's owner.
const AttachedToProperty = "AttachedTo"

type tmxMap struct {
	XMLName      xml.Name         `xml:"map"`
	Attrs        []xml.Attr       `xml:",any,attr"`
	ObjectGroups []tmxObjectGroup `xml:"objectgroup"`
}

type tmxObjectGroup struct {
	Attrs   []xml.Attr  `xml:",any,attr"`
	Objects []tmxObject `xml:"object"`
}

type tmxObject struct {
	Attrs      []xml.Attr    `xml:",any,attr"`
	Properties []tmxProperty `xml:"properties>property"`
}

type tmxProperty struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value,attr"`
}

// attrs indexes XML attributes by local name.
type attrs map[string]string

func indexAttrs(list []xml.Attr) attrs {
	a := make(attrs, len(list))
	for _, at := range list {
		a[at.Name.Local] = at.Value
	}
	return a
}

func (a attrs) str(where, key string) (string, error) {
	v, ok := a[key]
	if !ok || v == "" {
		return "", fmt.Errorf("level: %s: %s: %w", where, key, ErrMissingField)
	}
	return v, nil
}

// integer parses a numeric attribute. Tiled may write whole numbers as
// floats ("128.0"); anything with a fractional part is rejected.
func (a attrs) integer(where, key string) (int, error) {
	v, ok := a[key]
	if !ok || v == "" {
		return 0, fmt.Errorf("level: %s: %s: %w", where, key, ErrMissingField)
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f != math.Trunc(f) {
		return 0, fmt.Errorf("level: %s: %s=%q is not an integer", where, key, v)
	}
	return int(f), nil
}

// ParseTMX reads the Interactive and Prevention object groups of a Tiled TMX
// map. Every object must carry name, type (or class), x, y, width and height.
func ParseTMX(data []byte) (*Level, error) {
	var m tmxMap
	if err := xml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("level: parse tmx: %w", err)
	}

	ma := indexAttrs(m.Attrs)
	width, err := ma.integer("map", "width")
	if err != nil {
		return nil, err
	}
	height, err := ma.integer("map", "height")
	if err != nil {
		return nil, err
	}
	tileW, err := ma.integer("map", "tilewidth")
	if err != nil {
		return nil, err
	}
	tileH, err := ma.integer("map", "tileheight")
	if err != nil {
		return nil, err
	}

	var (
		interactive      []InteractiveObject
		prevention       []PreventionObject
		foundInteractive bool
	)
	for _, g := range m.ObjectGroups {
		ga := indexAttrs(g.Attrs)
		switch ga["name"] {
		case InteractiveGroupName:
			foundInteractive = true
			for i, obj := range g.Objects {
				o, err := parseTMXObject(obj, i)
				if err != nil {
					return nil, err
				}
				interactive = append(interactive, o)
			}
		case PreventionGroupName:
			for i, obj := range g.Objects {
				o, err := parseTMXObject(obj, i)
				if err != nil {
					return nil, err
				}
				prevention = append(prevention, PreventionObject{
					Name: o.Name, Type: o.Type,
					X: o.X, Y: o.Y, Width: o.Width, Height: o.Height,
				})
			}
		}
	}
	if !foundInteractive {
		return nil, fmt.Errorf("level: tmx: %s: %w", InteractiveGroupName, ErrMissingGroup)
	}

	return New(width, height, tileW, tileH, interactive, prevention)
}

func parseTMXObject(obj tmxObject, index int) (InteractiveObject, error) {
	a := indexAttrs(obj.Attrs)
	where := fmt.Sprintf("object %d", index)

	name, err := a.str(where, "name")
	if err != nil {
		return InteractiveObject{}, err
	}
	where = fmt.Sprintf("object %q", name)

	typ := a["type"]
	if typ == "" {
		typ = a["class"]
	}
	if typ == "" {
		return InteractiveObject{}, fmt.Errorf("level: %s: type: %w", where, ErrMissingField)
	}

	var o InteractiveObject
	o.Name = name
	o.Type = typ
	if o.X, err = a.integer(where, "x"); err != nil {
		return o, err
	}
	if o.Y, err = a.integer(where, "y"); err != nil {
		return o, err
	}
	if o.Width, err = a.integer(where, "width"); err != nil {
		return o, err
	}
	if o.Height, err = a.integer(where, "height"); err != nil {
		return o, err
	}
	for _, p := range obj.Properties {
		if p.Name == AttachedToProperty {
			o.AttachedTo = p.Value
		}
	}
	return o, nil
}
