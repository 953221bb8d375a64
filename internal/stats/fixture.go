package stats

import (
	"fmt"
	"io"

	"github.com/rileyhilliard/statoverlay/internal/errors"
	"gopkg.in/yaml.v3"
)

// LoadFixture reads captured statistics from YAML into one Snapshot per
// source. The layout is source -> statistic -> value; a mapping value becomes
// a list statistic whose entries keep document order:
//
//	timesync:
//	  WarpRate: 1.5
//	  CurrentSubspace: 3
//	peers:
//	  ClientSkew:
//	    alice: 1.0
//	    bob: 2.5
//
// Null values are skipped, leaving the statistic unavailable.
func LoadFixture(r io.Reader) (map[SourceID]*Snapshot, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if err == io.EOF {
			return map[SourceID]*Snapshot{}, nil
		}
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Invalid stats fixture",
			"Check the YAML syntax of the fixture file")
	}

	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	if root.Kind != yaml.MappingNode {
		return nil, fixtureError(root, "top level must map source names to statistics")
	}

	out := make(map[SourceID]*Snapshot)
	for i := 0; i+1 < len(root.Content); i += 2 {
		id := SourceID(root.Content[i].Value)
		body := root.Content[i+1]
		if body.Kind != yaml.MappingNode {
			return nil, fixtureError(body, fmt.Sprintf("source %q must be a mapping", id))
		}

		snap := NewSnapshot(id)
		for j := 0; j+1 < len(body.Content); j += 2 {
			name := body.Content[j].Value
			node := body.Content[j+1]

			switch node.Kind {
			case yaml.ScalarNode:
				v, skip, err := scalarValue(node)
				if err != nil {
					return nil, err
				}
				if !skip {
					snap.Set(name, v)
				}
			case yaml.MappingNode:
				entries, err := entryList(node)
				if err != nil {
					return nil, err
				}
				snap.SetEntries(name, entries)
			default:
				return nil, fixtureError(node, fmt.Sprintf("%s/%s must be a scalar or a mapping", id, name))
			}
		}
		out[id] = snap
	}
	return out, nil
}

func entryList(node *yaml.Node) ([]Entry, error) {
	entries := make([]Entry, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		v, skip, err := scalarValue(node.Content[i+1])
		if err != nil {
			return nil, err
		}
		if skip {
			continue
		}
		entries = append(entries, Entry{Key: node.Content[i].Value, Value: v})
	}
	return entries, nil
}

func scalarValue(node *yaml.Node) (Value, bool, error) {
	if node.Kind != yaml.ScalarNode {
		return Value{}, false, fixtureError(node, "expected a scalar value")
	}
	switch node.ShortTag() {
	case "!!null":
		return Value{}, true, nil
	case "!!int":
		var i int64
		if err := node.Decode(&i); err != nil {
			return Value{}, false, fixtureError(node, err.Error())
		}
		return Int(i), false, nil
	case "!!float":
		var f float64
		if err := node.Decode(&f); err != nil {
			return Value{}, false, fixtureError(node, err.Error())
		}
		return Number(f), false, nil
	default:
		return Text(node.Value), false, nil
	}
}

func fixtureError(node *yaml.Node, msg string) error {
	return errors.New(errors.ErrConfig,
		fmt.Sprintf("Invalid stats fixture at line %d: %s", node.Line, msg),
		"See 'statoverlay render --help' for the fixture layout")
}
