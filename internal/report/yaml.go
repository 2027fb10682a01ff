package report

import (
	"bytes"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// marshalYAML builds the document node by node so that keys keep the same
// order as the JSON output.
func marshalYAML(doc Document) ([]byte, error) {
	jd := toJSONDocument(doc)
	top := mappingNode()
	appendPair(top, "source", scalarString(jd.Source))

	sums := &yaml.Node{Kind: yaml.SequenceNode}
	for _, rs := range doc.RowSums {
		item := mappingNode()
		appendPair(item, "row", scalarInt(rs.Row))
		appendPair(item, "sum", scalarFloat(rs.Sum))
		sums.Content = append(sums.Content, item)
	}
	appendPair(top, "rowSums", sums)

	avgs := &yaml.Node{Kind: yaml.SequenceNode}
	for _, a := range doc.Averages {
		item := mappingNode()
		appendPair(item, "column", scalarString(a.Column))
		if a.Numeric() {
			appendPair(item, "average", scalarFloat(a.Mean))
		} else {
			appendPair(item, "average", &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"})
		}
		appendPair(item, "count", scalarInt(a.Count))
		avgs.Content = append(avgs.Content, item)
	}
	appendPair(top, "averages", avgs)

	if len(jd.Errors) > 0 {
		errs := &yaml.Node{Kind: yaml.SequenceNode}
		for _, e := range jd.Errors {
			item := mappingNode()
			appendPair(item, "stage", scalarString(e.Stage))
			appendPair(item, "kind", scalarString(e.Kind))
			appendPair(item, "message", scalarString(e.Message))
			errs.Content = append(errs.Content, item)
		}
		appendPair(top, "errors", errs)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(top); err != nil {
		_ = enc.Close()
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (r *Renderer) finishYAML(doc Document) error {
	b, err := marshalYAML(doc)
	if err != nil {
		return err
	}
	_, err = r.w.Write(b)
	return err
}

func mappingNode() *yaml.Node { return &yaml.Node{Kind: yaml.MappingNode} }

func appendPair(m *yaml.Node, key string, v *yaml.Node) {
	m.Content = append(m.Content, scalarString(key), v)
}

func scalarString(v string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v}
}

func scalarInt(v int) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.Itoa(v)}
}

// scalarFloat keeps a decimal point on integral values so they read back as
// floats ("30.0", not "30"). Non-finite values use the YAML 1.2 forms.
func scalarFloat(v float64) *yaml.Node {
	switch {
	case math.IsInf(v, 1):
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: ".inf"}
	case math.IsInf(v, -1):
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: "-.inf"}
	case math.IsNaN(v):
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: ".nan"}
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: s}
}
