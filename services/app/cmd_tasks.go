package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ezgierrdogan/planning-forever-clean/services/app/core"
)

const dueLayout = "2006-01-02 15:04"

func parseDue(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(dueLayout, s, time.Local)
	if err != nil {
		return nil, fmt.Errorf("invalid due date %q, expected %q", s, dueLayout)
	}
	return &t, nil
}

func parseCategory(s string) (core.Category, error) {
	c := core.Category(strings.ToLower(strings.TrimSpace(s)))
	if !core.IsValidCategory(c) {
		return core.CategoryNone, fmt.Errorf("invalid category %q, expected work|personal|learning|other", s)
	}
	return c, nil
}

func printTask(t core.Task) {
	status := " "
	if t.Completed {
		status = "x"
	}
	line := fmt.Sprintf("[%s] %s  %s", status, t.ID, t.Title)
	if t.Category != core.CategoryNone {
		line += fmt.Sprintf("  #%s", t.Category)
	}
	if t.DueDate != nil {
		line += fmt.Sprintf("  due %s", t.DueDate.Local().Format(dueLayout))
	}
	fmt.Println(line)
}

func newListCmd(env *appEnv) *cobra.Command {
	var categoryFlag string
	var openOnly bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List your tasks in insertion order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := env.requireSession()
			if err != nil {
				return err
			}

			tasks, err := env.sync.ListTasks(cmd.Context(), s.UserID)
			if err != nil {
				return err
			}

			var category core.Category
			if categoryFlag != "" {
				if category, err = parseCategory(categoryFlag); err != nil {
					return err
				}
			}

			shown := 0
			for _, t := range tasks {
				if openOnly && t.Completed {
					continue
				}
				if categoryFlag != "" && t.Category != category {
					continue
				}
				printTask(t)
				shown++
			}
			if shown == 0 {
				fmt.Println("No tasks")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&categoryFlag, "category", "", "filter by category")
	cmd.Flags().BoolVar(&openOnly, "open", false, "only open tasks")
	return cmd
}

func newAddCmd(env *appEnv) *cobra.Command {
	var description, dueFlag, categoryFlag string

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Create a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := env.requireSession()
			if err != nil {
				return err
			}

			due, err := parseDue(dueFlag)
			if err != nil {
				return err
			}
			category, err := parseCategory(categoryFlag)
			if err != nil {
				return err
			}

			t, err := env.sync.CreateTask(cmd.Context(), core.NewTask{
				OwnerID:     s.UserID,
				Title:       args[0],
				Description: description,
				DueDate:     due,
				Category:    category,
			})
			if err != nil {
				return err
			}

			fmt.Println("Created:")
			printTask(t)
			return nil
		},
	}
	cmd.Flags().StringVarP(&description, "description", "d", "", "task description")
	cmd.Flags().StringVar(&dueFlag, "due", "", `due date, "`+dueLayout+`"`)
	cmd.Flags().StringVar(&categoryFlag, "category", "", "work|personal|learning|other")
	return cmd
}

func newShowCmd(env *appEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := env.requireSession(); err != nil {
				return err
			}

			t, err := env.sync.GetTask(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			printTask(t)
			fmt.Printf("  %s\n", t.Description)
			fmt.Printf("  created %s, updated %s\n",
				t.CreatedAt.Local().Format(dueLayout), t.UpdatedAt.Local().Format(dueLayout))
			return nil
		},
	}
}

func newEditCmd(env *appEnv) *cobra.Command {
	var title, description, dueFlag, categoryFlag string
	var clearDue, clearCategory bool

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Update fields of a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := env.requireSession(); err != nil {
				return err
			}

			var p core.TaskPatch
			if cmd.Flags().Changed("title") {
				p.Title = &title
			}
			if cmd.Flags().Changed("description") {
				p.Description = &description
			}
			if clearDue {
				p.DueDate = &time.Time{}
			} else if dueFlag != "" {
				due, err := parseDue(dueFlag)
				if err != nil {
					return err
				}
				p.DueDate = due
			}
			if clearCategory {
				none := core.CategoryNone
				p.Category = &none
			} else if categoryFlag != "" {
				category, err := parseCategory(categoryFlag)
				if err != nil {
					return err
				}
				p.Category = &category
			}

			t, err := env.sync.UpdateTask(cmd.Context(), args[0], p)
			if err != nil {
				return err
			}

			fmt.Println("Updated:")
			printTask(t)
			return nil
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "new title")
	cmd.Flags().StringVarP(&description, "description", "d", "", "new description")
	cmd.Flags().StringVar(&dueFlag, "due", "", `new due date, "`+dueLayout+`"`)
	cmd.Flags().BoolVar(&clearDue, "clear-due", false, "remove the due date")
	cmd.Flags().StringVar(&categoryFlag, "category", "", "new category")
	cmd.Flags().BoolVar(&clearCategory, "clear-category", false, "untag the task")
	return cmd
}

func newDoneCmd(env *appEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "done <id>",
		Short: "Mark a task completed",
		Args:  cobra.ExactArgs(1),
		RunE:  toggleRunE(env, true),
	}
}

func newUndoneCmd(env *appEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "undone <id>",
		Short: "Reopen a completed task",
		Args:  cobra.ExactArgs(1),
		RunE:  toggleRunE(env, false),
	}
}

func toggleRunE(env *appEnv, wantCompleted bool) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if _, err := env.requireSession(); err != nil {
			return err
		}

		cur, err := env.sync.GetTask(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if cur.Completed == wantCompleted {
			printTask(cur)
			return nil
		}

		t, err := env.sync.ToggleComplete(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		printTask(t)
		return nil
	}
}

func newRemoveCmd(env *appEnv) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := env.requireSession(); err != nil {
				return err
			}

			if err := env.sync.DeleteTask(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Println("Deleted", args[0])
			return nil
		},
	}
}
