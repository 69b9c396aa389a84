package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/rmagtoto/tala/internal/task"
)

var newCmd = &cobra.Command{
	Use:   "new <description>",
	Short: "Start a new task, interrupting the current one",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		description := strings.TrimSpace(strings.Join(args, " "))
		if description == "" {
			return fmt.Errorf("description must not be empty")
		}

		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		prev := a.coord.Current()
		id, err := a.coord.StartTask(description)
		if err != nil {
			return err
		}
		if prev != nil {
			fmt.Printf("Interrupted %q\n", prev.Description)
		}
		fmt.Printf("Started task %s\n", id)
		return nil
	},
}

var addCmd = &cobra.Command{
	Use:   "add <task_id> <text>",
	Short: "Add a todo item to a task",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		text := strings.TrimSpace(strings.Join(args[1:], " "))
		if text == "" {
			return fmt.Errorf("todo text must not be empty")
		}

		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		if err := a.repo.AddTodo(args[0], text); err != nil {
			return err
		}
		fmt.Println("Added.")
		return nil
	},
}

var doneCmd = &cobra.Command{
	Use:   "done <task_id> <index>",
	Short: "Mark a todo item done",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := parseIndex(args[1])
		if err != nil {
			return err
		}

		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		if err := a.repo.MarkDone(args[0], index); err != nil {
			return err
		}

		got, err := a.repo.Get(args[0])
		if err == nil && got.Status == task.StatusCompleted {
			fmt.Println("Task completed.")
			return nil
		}
		fmt.Println("Done.")
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <task_id> <index>",
	Short: "Delete a todo item (later indices shift down)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := parseIndex(args[1])
		if err != nil {
			return err
		}

		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		removed, err := a.repo.DeleteTodo(args[0], index)
		if err != nil {
			return err
		}
		fmt.Printf("Deleted %q\n", removed.Text)
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all tasks",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		tasks, err := a.repo.List()
		if err != nil {
			return err
		}
		if len(tasks) == 0 {
			fmt.Println("No tasks.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tSTATUS\tTODOS\tUPDATED")
		for _, t := range tasks {
			done := 0
			for _, todo := range t.Todos {
				if todo.Done {
					done++
				}
			}
			fmt.Fprintf(w, "%s\t%s\t%d/%d\t%s\n", t.ID, t.Status, done, len(t.Todos), formatAge(t.Updated))
		}
		return w.Flush()
	},
}

var showCmd = &cobra.Command{
	Use:   "show <task_id>",
	Short: "Show a task and its todos",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		t, err := a.repo.Get(args[0])
		if err != nil {
			return err
		}

		fmt.Printf("%s\n", t.Description)
		fmt.Printf("  id:      %s\n", t.ID)
		fmt.Printf("  status:  %s\n", t.Status)
		fmt.Printf("  created: %s\n", t.Created)
		fmt.Printf("  updated: %s\n", t.Updated)
		if len(t.Todos) == 0 {
			fmt.Println("  no todos")
			return nil
		}
		for i, todo := range t.Todos {
			marker := " "
			if todo.Done {
				marker = "x"
			}
			fmt.Printf("  %d. [%s] %s\n", i, marker, todo.Text)
		}
		return nil
	},
}

var hardDeleteCmd = &cobra.Command{
	Use:   "hard-delete <task_id>",
	Short: "Delete a task permanently, regardless of status",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		if err := a.repo.HardDelete(args[0]); err != nil {
			return err
		}
		fmt.Println("Deleted.")
		return nil
	},
}

var resumeCmd = &cobra.Command{
	Use:   "resume",
	Short: "Resume all interrupted tasks",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		n := len(a.coord.Interrupted())
		if err := a.coord.ResumeAll(); err != nil {
			return err
		}
		if n == 0 {
			fmt.Println("No interrupted tasks.")
			return nil
		}
		fmt.Printf("Resumed %d task(s)\n", n)
		return nil
	},
}

// parseIndex validates a todo index argument before it reaches the
// repository.
func parseIndex(arg string) (int, error) {
	index, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("index must be an integer, got %q", arg)
	}
	return index, nil
}

// formatAge returns a human-readable relative time string. Malformed
// timestamps are shown as-is.
func formatAge(stamp string) string {
	t, ok := task.ParseTimestamp(stamp)
	if !ok {
		return stamp
	}

	duration := time.Since(t)
	if duration < time.Minute {
		return "just now"
	}

	minutes := int(duration.Minutes())
	if minutes < 60 {
		return fmt.Sprintf("%dm ago", minutes)
	}

	hours := int(duration.Hours())
	if hours < 24 {
		return fmt.Sprintf("%dh ago", hours)
	}

	days := hours / 24
	return fmt.Sprintf("%dd ago", days)
}
