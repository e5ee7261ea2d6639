package cli

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"
)

func (a *App) getStatus() string {
	sess, ok := a.orchestrator.Session()
	if !ok {
		return ""
	}
	s := sess.DisplayName
	if sess.WalletAddress != "" {
		s = s + " " + shortAddress(sess.WalletAddress)
	}
	return fmt.Sprintf("(%s)", s)
}

func shortAddress(addr string) string {
	if len(addr) <= 10 {
		return addr
	}
	return addr[:6] + ".." + addr[len(addr)-4:]
}

func (a *App) Root(ctx context.Context) {

	log.Println("Welcome to Decentrix CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Printf("dcli %s> ", a.getStatus())
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]

		switch cmd {
		case "help":
			if a.isSignedIn() {
				fmt.Println("Available commands: feed, my, post, comment, whoami, logout, exit")
			} else {
				fmt.Println("Available commands: connect, login, register, feed, exit")
			}

		case "connect":
			a.Connect(ctx)
		case "login":
			a.Login(ctx)
		case "register":
			a.Register(ctx)
		case "feed":
			a.Feed(ctx)
		case "my":
			a.My(ctx)
		case "post":
			a.Post(ctx)
		case "comment":
			a.Comment(ctx)
		case "whoami":
			if sess, ok := a.orchestrator.Session(); ok {
				fmt.Printf("%s via %s", sess.DisplayName, sess.Provider)
				if sess.WalletAddress != "" {
					fmt.Printf(" wallet %s", sess.WalletAddress)
				}
				fmt.Println()
			} else {
				fmt.Println("Not signed in")
			}
		case "logout":
			a.Logout(ctx)
		case "exit", "quit":
			fmt.Println("Bye!")
			return
		default:
			fmt.Println("Unknown command:", cmd)
		}
	}
}
