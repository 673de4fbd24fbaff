// Command client is a small CLI for the task manager API built on
// the client session manager.
//
// Usage:
//
//	client [-addr http://localhost:8080] register <name> <email> <password>
//	client login <email> <password>
//	client whoami
//	client list
//	client add <text...>
//	client update <task-id> <text...>
//	client rm <task-id>
//	client logout
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adanyl0v/go-task-manager/internal/client"
)

func main() {
	addr := flag.String("addr", "http://localhost:8080", "server address")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		fatalf("failed to locate home directory: %v", err)
	}

	api := client.New(*addr)
	store := client.NewFileTokenStore(filepath.Join(home, ".go-task-manager-token"))
	session := client.NewSessionManager(api, store)

	ctx := context.Background()
	if err := session.Initialize(ctx); err != nil {
		fatalf("failed to initialize session: %v", err)
	}

	if err := run(ctx, session, args); err != nil {
		fatalf("%v", err)
	}
}

func run(ctx context.Context, session *client.SessionManager, args []string) error {
	cmd, rest := args[0], args[1:]

	switch cmd {
	case "register":
		if len(rest) != 3 {
			return fmt.Errorf("usage: register <name> <email> <password>")
		}
		if err := session.Register(ctx, rest[0], rest[1], rest[2]); err != nil {
			return err
		}
		fmt.Printf("registered as %s\n", session.CurrentUser().Email)

	case "login":
		if len(rest) != 2 {
			return fmt.Errorf("usage: login <email> <password>")
		}
		if err := session.Login(ctx, rest[0], rest[1]); err != nil {
			return err
		}
		fmt.Printf("logged in as %s\n", session.CurrentUser().Email)

	case "whoami":
		user := session.CurrentUser()
		if user == nil {
			return fmt.Errorf("not logged in")
		}
		fmt.Printf("%s <%s>\n", user.Name, user.Email)

	case "list":
		tasks, err := session.Tasks(ctx)
		if err != nil {
			return err
		}
		if len(tasks) == 0 {
			fmt.Println("no tasks")
			return nil
		}
		for _, task := range tasks {
			fmt.Printf("%s  %s\n", task.ID, task.Text)
		}

	case "add":
		if len(rest) == 0 {
			return fmt.Errorf("usage: add <text>")
		}
		task, err := session.AddTask(ctx, strings.Join(rest, " "))
		if err != nil {
			return err
		}
		fmt.Printf("added %s\n", task.ID)

	case "update":
		if len(rest) < 2 {
			return fmt.Errorf("usage: update <task-id> <text>")
		}
		task, err := session.UpdateTask(ctx, rest[0], strings.Join(rest[1:], " "))
		if err != nil {
			return err
		}
		fmt.Printf("updated %s\n", task.ID)

	case "rm":
		if len(rest) != 1 {
			return fmt.Errorf("usage: rm <task-id>")
		}
		if err := session.RemoveTask(ctx, rest[0]); err != nil {
			return err
		}
		fmt.Println("removed")

	case "logout":
		if err := session.Logout(); err != nil {
			return err
		}
		fmt.Println("logged out")

	default:
		return fmt.Errorf("unknown command: %s", cmd)
	}
	return nil
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
