// Command smoke runs the template module once with its default configuration.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/picogrid/ctwrap/cmd/template"
	"github.com/picogrid/ctwrap/pkg/simulation"
)

func main() {
	if err := run(context.Background(), os.Stdout); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run self-tests the template module and writes its result table to w
func run(ctx context.Context, w io.Writer) error {
	result, err := simulation.SelfTest(ctx, template.New())
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, result[simulation.SelfTestName])
	return err
}
