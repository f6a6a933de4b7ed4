package graph

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/knakk/rdf"
	"github.com/pkg/errors"
)

// Decode parses one turtle document into its triples. A syntax error fails
// the whole document; callers treat that as a skip-and-count condition.
func Decode(r io.Reader) ([]rdf.Triple, error) {
	dec := rdf.NewTripleDecoder(r, rdf.Turtle)
	triples, err := dec.DecodeAll()
	if err != nil {
		return nil, errors.Wrap(err, "decode turtle")
	}
	return triples, nil
}

// DecodeFile parses the turtle document at path.
func DecodeFile(path string) ([]rdf.Triple, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()
	return Decode(f)
}

// WriteTo serializes the graph, one triple per line, in deterministic order.
// The output is N-Triples, which every turtle parser accepts, so a written
// graph re-parses to the same triple set.
func (g *Graph) WriteTo(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, t := range g.Triples() {
		line := strings.TrimRight(t.Serialize(rdf.NTriples), "\n")
		if _, err := bw.WriteString(line + "\n"); err != nil {
			return errors.Wrap(err, "write triple")
		}
	}
	return errors.Wrap(bw.Flush(), "flush graph")
}

// WriteFile serializes the graph to the file at path.
func (g *Graph) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}
	defer f.Close()
	return g.WriteTo(f)
}

// LoadFile parses the turtle document at path into a fresh graph.
func LoadFile(path string) (*Graph, error) {
	triples, err := DecodeFile(path)
	if err != nil {
		return nil, err
	}
	g := New()
	g.AddAll(triples)
	return g, nil
}
