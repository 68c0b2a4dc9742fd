package tsutil_test

import (
	"fmt"

	"github.com/breakingbad08042/fathon/tsutil"
)

func ExampleToAggregated() {
	profile := tsutil.ToAggregated([]float64{1, 2, 3})
	fmt.Println(profile)

	// Output:
	// [-1 -1 0]
}
