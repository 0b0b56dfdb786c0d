// ABOUTME: Notification endpoints of the jobs backend
// ABOUTME: The unread counter degrades to zero instead of failing

package client

import (
	"context"
	"log/slog"
	"net/http"
)

const notificationsPath = "/notifications"

// Notifications lists the current user's notifications
func (c *Client) Notifications(ctx context.Context) ([]Notification, error) {
	return listOf[Notification](ctx, c, notificationsPath)
}

// UnreadCount returns the unread notification count, or 0 on any failure
func (c *Client) UnreadCount(ctx context.Context) int {
	var resp struct {
		Count int `json:"count"`
	}
	if err := c.do(ctx, request{method: http.MethodGet, path: notificationsPath + "/unread-count"}, &resp); err != nil {
		slog.Warn("Failed to fetch unread notification count", "error", err)
		return 0
	}
	return resp.Count
}

// MarkNotificationRead marks one notification read
func (c *Client) MarkNotificationRead(ctx context.Context, id string) error {
	return c.do(ctx, request{method: http.MethodPut, path: notificationsPath + "/" + escape(id) + "/read", body: struct{}{}}, nil)
}

// MarkAllNotificationsRead marks every notification read
func (c *Client) MarkAllNotificationsRead(ctx context.Context) error {
	return c.do(ctx, request{method: http.MethodPut, path: notificationsPath + "/mark-all-read", body: struct{}{}}, nil)
}

// DeleteNotification removes one notification
func (c *Client) DeleteNotification(ctx context.Context, id string) error {
	return c.do(ctx, request{method: http.MethodDelete, path: notificationsPath + "/" + escape(id)}, nil)
}
