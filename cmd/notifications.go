// ABOUTME: Notification commands for hackctl CLI
// ABOUTME: Lists, counts, marks read and deletes in-app notifications

package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"
	"github.com/spf13/cobra"

	"github.com/saarthix/hackctl/internal/client"
)

var notificationsCmd = &cobra.Command{
	Use:     "notifications",
	Aliases: []string{"notif"},
	Short:   "List your notifications",
	Args:    cobra.NoArgs,
	Run:     runCommand(runNotificationsList),
}

var notificationsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your notifications, newest first",
	Args:  cobra.NoArgs,
	Run:   runCommand(runNotificationsList),
}

var notificationsUnreadCmd = &cobra.Command{
	Use:   "unread",
	Short: "Print the number of unread notifications",
	Args:  cobra.NoArgs,
	Run:   runCommand(runNotificationsUnread),
}

var notificationsReadCmd = &cobra.Command{
	Use:   "read <id>",
	Short: "Mark a notification as read",
	Args:  cobra.ExactArgs(1),
	Run:   runCommand(runNotificationsRead),
}

var notificationsReadAllCmd = &cobra.Command{
	Use:   "read-all",
	Short: "Mark every notification as read",
	Args:  cobra.NoArgs,
	Run:   runCommand(runNotificationsReadAll),
}

var notificationsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a notification",
	Args:  cobra.ExactArgs(1),
	Run:   runCommand(runNotificationsDelete),
}

func init() {
	notificationsCmd.AddCommand(
		notificationsListCmd,
		notificationsUnreadCmd,
		notificationsReadCmd,
		notificationsReadAllCmd,
		notificationsDeleteCmd,
	)
	rootCmd.AddCommand(notificationsCmd)
}

// requireSignedIn settles the session and reports whether anyone is signed in
func (e *env) requireSignedIn(ctx context.Context, w io.Writer) bool {
	err := e.session.Initialize(ctx, nil)
	if e.session.Authenticated() {
		return true
	}
	if err != nil && !rejected(err) {
		fmt.Fprintf(w, "Error: %v\n", err)
	} else {
		fmt.Fprintln(w, `Not signed in. Run "hackctl login" first.`)
	}
	return false
}

func runNotificationsList(ctx context.Context, w io.Writer, args []string) int {
	return withEnv(w, func(e *env) int {
		if !e.requireSignedIn(ctx, w) {
			return exitDenied
		}

		items, err := e.client.Notifications(ctx)
		if err != nil {
			return failure(w, err, "Failed to load notifications")
		}

		if IsJSONOutput() {
			if items == nil {
				items = []client.Notification{}
			}
			writeJSON(w, items)
			return exitOK
		}
		fmt.Fprintln(w, formatNotifications(items))
		return exitOK
	})
}

// formatNotifications renders one block per notification with unread ones marked
func formatNotifications(items []client.Notification) string {
	if len(items) == 0 {
		return "No notifications."
	}

	unread := 0
	var sb strings.Builder
	for _, n := range items {
		marker := " "
		if !n.Read {
			marker = "•"
			unread++
		}
		fmt.Fprintf(&sb, "%s %s  %s", marker, n.ID, n.Title)
		if !n.CreatedAt.IsZero() {
			fmt.Fprintf(&sb, "  (%s)", humanize.Time(n.CreatedAt))
		}
		sb.WriteString("\n")
		if n.Message != "" {
			fmt.Fprintf(&sb, "    %s\n", n.Message)
		}
	}
	fmt.Fprintf(&sb, "\n%s, %d unread", english.Plural(len(items), "notification", ""), unread)
	return sb.String()
}

func runNotificationsUnread(ctx context.Context, w io.Writer, args []string) int {
	return withEnv(w, func(e *env) int {
		if !e.requireSignedIn(ctx, w) {
			return exitDenied
		}

		// any failure reads as zero unread
		count := e.client.UnreadCount(ctx)
		if IsJSONOutput() {
			writeJSON(w, map[string]int{"count": count})
			return exitOK
		}
		fmt.Fprintln(w, count)
		return exitOK
	})
}

func runNotificationsRead(ctx context.Context, w io.Writer, args []string) int {
	return notificationAction(ctx, w, "Marked as read", func(e *env) error {
		return e.client.MarkNotificationRead(ctx, args[0])
	})
}

func runNotificationsReadAll(ctx context.Context, w io.Writer, args []string) int {
	return notificationAction(ctx, w, "All notifications marked as read", func(e *env) error {
		return e.client.MarkAllNotificationsRead(ctx)
	})
}

func runNotificationsDelete(ctx context.Context, w io.Writer, args []string) int {
	return notificationAction(ctx, w, "Notification deleted", func(e *env) error {
		return e.client.DeleteNotification(ctx, args[0])
	})
}

// notificationAction runs a mutating call for the signed-in user and reports it
func notificationAction(ctx context.Context, w io.Writer, done string, call func(e *env) error) int {
	return withEnv(w, func(e *env) int {
		if !e.requireSignedIn(ctx, w) {
			return exitDenied
		}
		if err := call(e); err != nil {
			if rejected(err) {
				fmt.Fprintln(w, client.UserMessage(err, "The backend refused the request"))
				return exitDenied
			}
			return failure(w, err, "Failed to update notifications")
		}
		if IsJSONOutput() {
			writeJSON(w, map[string]bool{"ok": true})
			return exitOK
		}
		fmt.Fprintln(w, done)
		return exitOK
	})
}
