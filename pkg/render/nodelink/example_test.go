package nodelink_test

import (
	"fmt"
	"strings"

	"github.com/matzehuels/marbles/pkg/render/nodelink"
	"github.com/matzehuels/marbles/pkg/trace"
)

func ExampleToDOT() {
	events := trace.Decode([]byte(`[{"results": {
		"[FluxRange,source(range)]": [{"event":"EMIT","result":1}],
		"[FluxMapFuseable,map]":     [{"event":"EMIT","result":2}]
	}}]`))

	dot := nodelink.ToDOT(events, nodelink.Options{})
	for _, line := range strings.Split(dot, "\n") {
		if strings.Contains(line, "->") {
			fmt.Println(strings.TrimSpace(line))
		}
	}
	// Output:
	// "stage-0" -> "stage-1";
}
