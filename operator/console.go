package operator

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/warden-social/warden/gate"
)

// ConsoleChannel is an interactive stdio transport: prompts are printed to
// Out, and each line read from In answers the oldest unanswered prompt.
// Intended for the demo command and local operation, not production.
type ConsoleChannel struct {
	Out  io.Writer
	In   io.Reader
	Gate *gate.Gate

	lk      sync.Mutex
	pending []gate.Request
}

var _ gate.Notifier = (*ConsoleChannel)(nil)

func NewConsoleChannel(out io.Writer, in io.Reader, g *gate.Gate) *ConsoleChannel {
	return &ConsoleChannel{
		Out:  out,
		In:   in,
		Gate: g,
	}
}

func (c *ConsoleChannel) Publish(ctx context.Context, req gate.Request) error {
	c.lk.Lock()
	c.pending = append(c.pending, req)
	c.lk.Unlock()

	_, err := fmt.Fprintf(c.Out, "\n%s\n\n%s, what action should be taken? (approve/warn/restrict/remove): ", req.Prompt, req.Operator)
	return err
}

// Run reads answer lines until the input is exhausted or ctx is cancelled,
// delivering each to the gate on behalf of the operator the prompt was
// addressed to.
//
// Answers pair with prompts by arrival order: a line always answers the
// oldest unanswered prompt. That only attributes answers correctly when at
// most one prompt is outstanding at a time, which holds for the serial demo
// loop; concurrent pipelines need a transport whose answers carry the
// content ID, like the HTTP response endpoint.
func (c *ConsoleChannel) Run(ctx context.Context) error {
	scanner := bufio.NewScanner(c.In)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		c.lk.Lock()
		if len(c.pending) == 0 {
			c.lk.Unlock()
			continue
		}
		req := c.pending[0]
		c.pending = c.pending[1:]
		c.lk.Unlock()

		c.Gate.Deliver(gate.Response{
			ContentID: req.ContentID,
			Operator:  req.Operator,
			Text:      scanner.Text(),
		})
	}
	return scanner.Err()
}
