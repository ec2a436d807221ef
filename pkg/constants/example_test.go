package constants_test

import (
	"fmt"

	"github.com/agentstation/langmap/pkg/constants"
)

// Example shows how speaker counts are banded around the sentinels.
func Example() {
	for _, count := range []int{constants.SpeakerCountUnknown, 0, 7, 50, 1500} {
		switch {
		case count < 0:
			fmt.Println(count, "unknown")
		case count == 0:
			fmt.Println(count, "none")
		case count < constants.SpeakerCountFewThreshold:
			fmt.Println(count, "few")
		case count < constants.SpeakerCountManyThreshold:
			fmt.Println(count, "some")
		default:
			fmt.Println(count, "many")
		}
	}

	// Output:
	// -2 unknown
	// 0 none
	// 7 few
	// 50 some
	// 1500 many
}

// ExampleDefaultExcludedCodes lists the codes the loader skips.
func ExampleDefaultExcludedCodes() {
	fmt.Println(constants.DefaultExcludedCodes())
	// Output: [coa eng cmn asf pih]
}
