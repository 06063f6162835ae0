package session

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/litescript/ls-sunpos/internal/geo"
	"github.com/litescript/ls-sunpos/internal/report"
)

// Run drives s from line-oriented input until the user answers anything but
// "y", the input ends, or ctx is cancelled. End of input is not an error.
func Run(ctx context.Context, s *Session, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)

	if s.Stage() == StageLatitude {
		fmt.Fprintf(out, "Enter your location and observation time (civil time %s).\n", geo.FormatOffset(s.Offset()))
	}

	for !s.Done() {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprint(out, s.Prompt())
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		reply := s.Submit(scanner.Text())
		switch {
		case reply.Err != nil:
			fmt.Fprintf(out, "Invalid input: %v. Please try again.\n", reply.Err)
		case reply.Result != nil:
			if err := report.WritePosition(out, reply.Result.Position); err != nil {
				return err
			}
		}
	}
	return nil
}
