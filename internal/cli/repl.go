package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/alexanderramin/marty/internal/assistant"
	"github.com/alexanderramin/marty/internal/cli/formatter"
)

// Responder answers one line of chat input.
type Responder interface {
	Respond(ctx context.Context, line string) assistant.Turn
}

// lineREPL is the chat loop used when stdin is not a terminal. Replies are
// printed a character at a time unless delay is zero.
type lineREPL struct {
	in        io.Reader
	out       io.Writer
	responder Responder
	delay     time.Duration
	history   *history
	sleep     func(time.Duration)
}

// Run reads until EOF, an exit reply or ctx cancellation.
func (r *lineREPL) Run(ctx context.Context) error {
	done := make(chan struct{})
	defer close(done)

	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-done:
				return
			}
		}
		readErr <- scanner.Err()
	}()

	for {
		fmt.Fprint(r.out, formatter.UserName+": ")

		var line string
		select {
		case <-ctx.Done():
			fmt.Fprintln(r.out)
			return nil
		case l, ok := <-lines:
			if !ok {
				fmt.Fprintln(r.out)
				return <-readErr
			}
			line = l
		}

		if r.history != nil {
			r.history.Add(line)
		}
		turn := r.responder.Respond(ctx, line)
		for _, m := range turn.Messages {
			r.say(formatter.PlainMessage(m))
		}
		if turn.Exit {
			return nil
		}
	}
}

func (r *lineREPL) say(text string) {
	fmt.Fprint(r.out, formatter.SpeakerPrefix())
	if r.delay <= 0 {
		fmt.Fprintln(r.out, text)
		return
	}
	sleep := r.sleep
	if sleep == nil {
		sleep = time.Sleep
	}
	for _, ch := range text {
		fmt.Fprint(r.out, string(ch))
		sleep(r.delay)
	}
	fmt.Fprintln(r.out)
}
