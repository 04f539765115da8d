package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/gvawatch/gva-console/internal/llm"
	"github.com/spf13/cobra"
)

// chatCmd represents the chat command
var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Interactive support-focused chat",
	Long: `Start an interactive chat session with the GVA assistant. The session
keeps its history for the lifetime of the command; /reset discards it and
starts a fresh session.

Commands inside the REPL:
  /reset   discard the conversation and start over
  /quit    exit (Ctrl+D also works)

Example:
  GEMINI_API_KEY=... gva-console chat`,
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	config := GetConfig()

	logger := log.New(os.Stderr, "[chat] ", log.LstdFlags)
	gateway := llm.NewClient(config.Gemini.Endpoint, config.Gemini.Model, config.Gemini.APIKey, logger)
	session := llm.NewSession(llm.ChatSystemInstruction)

	fmt.Println("GVA assistant. Type /quit to exit, /reset to start over.")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			fmt.Println()
			return scanner.Err()
		}
		if ctx.Err() != nil {
			return nil
		}

		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "":
			continue
		case line == "/quit" || line == "/exit":
			return nil
		case line == "/reset":
			if err := session.Reset(); err != nil {
				fmt.Println("A message is still in flight; try again in a moment.")
				continue
			}
			fmt.Println("Session reset.")
			continue
		}

		reply, err := gateway.Chat(ctx, session, line)
		if err != nil {
			var callErr *llm.CallError
			if errors.As(err, &callErr) && callErr.Reason == llm.ReasonBusy {
				fmt.Println("Still waiting on the previous message.")
				continue
			}
			logger.Printf("Chat send failed (reason=%s): %v", llm.ReasonOf(err), err)
			reply = llm.FallbackChat
		}
		fmt.Println(reply)
		fmt.Println()
	}
}
