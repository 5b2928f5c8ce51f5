package format

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/schichtkit/planq/internal/query"
)

var _ Formatter = (*YAML)(nil)

type YAML struct{}

func NewYAML() *YAML {
	return &YAML{}
}

// Format builds the yaml document node by node so that field order
// survives; a plain map would marshal with sorted keys.
func (yf *YAML) Format(header query.Header, rows []query.Row, _ *Options) ([]byte, error) {
	doc := &yaml.Node{Kind: yaml.SequenceNode}

	for _, row := range rows {
		record := &yaml.Node{Kind: yaml.MappingNode}

		for i, val := range row {
			var h string
			if i < len(header) {
				h = header[i]
			} else {
				h = fmt.Sprintf("<unknown-field-%d>", i)
			}

			key := &yaml.Node{}
			if err := key.Encode(h); err != nil {
				return nil, fmt.Errorf("key.Encode: %w", err)
			}
			value := &yaml.Node{}
			if err := value.Encode(val.Native()); err != nil {
				return nil, fmt.Errorf("value.Encode: %w", err)
			}

			record.Content = append(record.Content, key, value)
		}

		doc.Content = append(doc.Content, record)
	}

	out, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("yaml.Marshal: %w", err)
	}

	return out, nil
}
