package main

import (
	"fmt"
	"os"

	"github.com/zeu5/rollout-sampler/benchmarks/cmd"
)

func main() {
	if err := cmd.RootCommand().Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
