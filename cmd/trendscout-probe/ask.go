package main

import (
	"fmt"
	"strings"

	"trendscout/internal/adapters/openfloor"
	"trendscout/internal/services/agent/domain"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// NewAskCmd sends one utterance and prints the agent's text replies
func NewAskCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "ask <question...>",
		Short:   "Ask the agent about a technology",
		Example: `  trendscout-probe ask "What's trending in Rust web frameworks?"`,
		Args:    cobra.MinimumNArgs(1),
		RunE:    runAsk,
	}
}

func runAsk(cmd *cobra.Command, args []string) error {
	c := clientFrom(cmd)
	asJSON, _ := cmd.Flags().GetBool("json")

	text := strings.Join(args, " ")
	env := c.envelope(openfloor.TextUtterance(uuid.NewString(), c.speaker, text, c.to()))

	raw, reply, err := c.send(cmd.Context(), env)
	if err != nil {
		return fmt.Errorf("ask: %w", err)
	}
	if asJSON {
		_, err = cmd.OutOrStdout().Write(append(raw, '\n'))
		return err
	}

	n := 0
	for _, ev := range reply.Events {
		u, ok := ev.(*domain.Utterance)
		if !ok {
			continue
		}
		n++
		fmt.Fprintln(cmd.OutOrStdout(), u.DialogEvent.Text())
	}
	if n == 0 {
		fmt.Fprintln(cmd.ErrOrStderr(), "no reply, the agent may not be addressed by --agent")
	}
	return nil
}
