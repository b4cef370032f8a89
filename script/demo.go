package script

import (
	"context"

	"github.com/rskv-p/hier/sink"
)

// DemoScript builds three composites and three leaves, shuffles leaf 3
// out of and back into slot 0, nests composite 2 under composite 0,
// fetches slot 2 and traverses the whole tree.
const DemoScript = `# reference driver
composite c0
composite c1
composite c2
leaf l3
leaf l4
leaf l5

op c0
op c1
op c2
op l3
op l4
op l5

add c0 l3
add c0 l4
remove c0 l3
add c0 l3

add c0 c1
add c0 c2
add c2 l5

get c0 2 tmp
op tmp

all c0
`

// Demo runs DemoScript, sending every event to s.
func Demo(ctx context.Context, s sink.Sink) error {
	steps, err := ParseString(DemoScript)
	if err != nil {
		return err
	}
	return NewRunner(WithSink(s)).Run(ctx, steps)
}
