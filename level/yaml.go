package level

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

type yamlLevel struct {
	Width       *int         `yaml:"width"`
	Height      *int         `yaml:"height"`
	TileWidth   *int         `yaml:"tile_width"`
	TileHeight  *int         `yaml:"tile_height"`
	Interactive []yamlObject `yaml:"interactive"`
	Prevention  []yamlObject `yaml:"prevention"`
}

type yamlObject struct {
	Name       string `yaml:"name"`
	Type       string `yaml:"type"`
	AttachedTo string `yaml:"attached_to"`
	X          *int   `yaml:"x"`
	Y          *int   `yaml:"y"`
	Width      *int   `yaml:"width"`
	Height     *int   `yaml:"height"`
}

func required(where, key string, v *int) (int, error) {
	if v == nil {
		return 0, fmt.Errorf("level: %s: %s: %w", where, key, ErrMissingField)
	}
	return *v, nil
}

func (y yamlObject) interactive(index int) (InteractiveObject, error) {
	where := fmt.Sprintf("object %d", index)
	if y.Name != "" {
		where = fmt.Sprintf("object %q", y.Name)
	}
	o := InteractiveObject{Name: y.Name, Type: y.Type, AttachedTo: y.AttachedTo}
	var err error
	if o.X, err = required(where, "x", y.X); err != nil {
		return o, err
	}
	if o.Y, err = required(where, "y", y.Y); err != nil {
		return o, err
	}
	if o.Width, err = required(where, "width", y.Width); err != nil {
		return o, err
	}
	if o.Height, err = required(where, "height", y.Height); err != nil {
		return o, err
	}
	return o, nil
}

// ParseYAML reads a level written as YAML:
//
//	width: 20
//	height: 15
//	tile_width: 64
//	tile_height: 64
//	interactive:
//	  - {name: house-1, type: House, x: 256, y: 192, width: 256, height: 192}
//	  - {name: door-1, type: Door, attached_to: house-1, x: 320, y: 320, width: 64, height: 64}
//	prevention:
//	  - {name: puddle-1, type: StandingWater, x: 64, y: 64, width: 64, height: 64}
func ParseYAML(data []byte) (*Level, error) {
	var y yamlLevel
	if err := yaml.Unmarshal(data, &y); err != nil {
		return nil, fmt.Errorf("level: parse yaml: %w", err)
	}

	width, err := required("map", "width", y.Width)
	if err != nil {
		return nil, err
	}
	height, err := required("map", "height", y.Height)
	if err != nil {
		return nil, err
	}
	tileW, err := required("map", "tile_width", y.TileWidth)
	if err != nil {
		return nil, err
	}
	tileH, err := required("map", "tile_height", y.TileHeight)
	if err != nil {
		return nil, err
	}
	if y.Interactive == nil {
		return nil, fmt.Errorf("level: yaml: %s: %w", InteractiveGroupName, ErrMissingGroup)
	}

	interactive := make([]InteractiveObject, 0, len(y.Interactive))
	for i, yo := range y.Interactive {
		o, err := yo.interactive(i)
		if err != nil {
			return nil, err
		}
		interactive = append(interactive, o)
	}

	prevention := make([]PreventionObject, 0, len(y.Prevention))
	for i, yo := range y.Prevention {
		o, err := yo.interactive(i)
		if err != nil {
			return nil, err
		}
		prevention = append(prevention, PreventionObject{
			Name: o.Name, Type: o.Type,
			X: o.X, Y: o.Y, Width: o.Width, Height: o.Height,
		})
	}

	return New(width, height, tileW, tileH, interactive, prevention)
}
