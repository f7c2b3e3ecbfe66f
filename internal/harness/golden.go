package harness

import (
	"fmt"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/limnlang/limn/internal/ir"
)

// RunWithGolden runs a case and checks its outcome.
//
// Reject cases must reject; nothing else is compared. Accept cases must
// convert, and the canonical IR encoding is compared against
// testdata/golden/{case.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, c *Case) error {
	t.Helper()

	result, err := Run(c)
	if err != nil {
		return err
	}

	if c.Reject {
		if !result.Rejected {
			return fmt.Errorf("case %s: expected rejection, document was accepted", c.Name)
		}
		return nil
	}
	if result.Rejected {
		return fmt.Errorf("case %s: expected acceptance, document was rejected", c.Name)
	}

	encoded, err := encodeResult(result.Nodes)
	if err != nil {
		return fmt.Errorf("case %s: %w", c.Name, err)
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, c.Name, encoded)

	return nil
}

// encodeResult encodes a conversion result as one canonical IR document.
// Multi-node sequences are grouped in a container, matching CLI output.
func encodeResult(nodes []ir.Node) ([]byte, error) {
	if len(nodes) == 1 {
		return ir.Encode(nodes[0])
	}
	builder := ir.NewNodeBuilder()
	container := builder.Container()
	for _, n := range nodes {
		container.Append(n)
	}
	return ir.Encode(container)
}
