package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func newWatchCmd(env *appEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Keep running and print reminders as they come due",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := env.requireSession()
			if err != nil {
				return err
			}
			defer env.notifier.Close()

			// ListTasks re-arms reminders for every open due-dated task
			tasks, err := env.sync.ListTasks(cmd.Context(), s.UserID)
			if err != nil {
				return err
			}

			armed := 0
			for _, t := range tasks {
				if !t.Completed && t.DueDate != nil {
					armed++
				}
			}
			fmt.Printf("Watching %d task(s) with due dates. Ctrl-C to stop.\n", armed)

			stop := make(chan os.Signal, 1)
			signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
			<-stop
			fmt.Println("\nStopped")
			return nil
		},
	}
}
