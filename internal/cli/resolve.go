package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/consistency/internal/domain"
	"github.com/alexanderramin/consistency/internal/repository"
)

// errNoProfile is returned when no profile exists yet.
var errNoProfile = errors.New("no profile yet; run `consistency init --name <you>` first")

// resolveUserID picks the profile a command acts on:
//   - the --user flag (id, id prefix or display name)
//   - the configured profile
//   - the only profile, when exactly one exists
func resolveUserID(ctx context.Context, app *App, flag string) (string, error) {
	ref := strings.TrimSpace(flag)
	if ref == "" {
		ref = app.UserID
	}

	if ref != "" {
		if u, err := app.Users.Get(ctx, ref); err == nil {
			return u.ID, nil
		} else if !errors.Is(err, repository.ErrNotFound) {
			return "", err
		}
	}

	users, err := app.Users.List(ctx)
	if err != nil {
		return "", err
	}
	if ref == "" {
		switch len(users) {
		case 0:
			return "", errNoProfile
		case 1:
			return users[0].ID, nil
		default:
			return "", fmt.Errorf("%d profiles exist; choose one with --user", len(users))
		}
	}

	var matches []*domain.User
	for _, u := range users {
		if strings.HasPrefix(u.ID, ref) || strings.EqualFold(u.DisplayName, ref) {
			matches = append(matches, u)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("profile %q not found", ref)
	case 1:
		return matches[0].ID, nil
	default:
		return "", fmt.Errorf("profile %q is ambiguous (%d matches)", ref, len(matches))
	}
}

// resolveTask finds one of the user's live tasks. ref can be:
//   - a 1-based position from `task list` or `today`
//   - a task id or id prefix
//   - a name, matched case-insensitively, or a unique name prefix
func resolveTask(ctx context.Context, app *App, userID, ref string) (*domain.Task, error) {
	tasks, err := app.Tasks.List(ctx, userID, false)
	if err != nil {
		return nil, err
	}
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, fmt.Errorf("task reference is empty")
	}

	if n, err := strconv.Atoi(ref); err == nil {
		if n < 1 || n > len(tasks) {
			return nil, fmt.Errorf("no task #%d (you have %d)", n, len(tasks))
		}
		return tasks[n-1], nil
	}

	for _, t := range tasks {
		if t.ID == ref || strings.EqualFold(t.Name, ref) {
			return t, nil
		}
	}

	var matches []*domain.Task
	lower := strings.ToLower(ref)
	for _, t := range tasks {
		if strings.HasPrefix(t.ID, ref) || strings.HasPrefix(strings.ToLower(t.Name), lower) {
			matches = append(matches, t)
		}
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("task %q not found", ref)
	case 1:
		return matches[0], nil
	default:
		names := make([]string, 0, len(matches))
		for _, t := range matches {
			names = append(names, t.Name)
		}
		return nil, fmt.Errorf("task %q is ambiguous: %s", ref, strings.Join(names, ", "))
	}
}

func resolveTasks(ctx context.Context, app *App, userID string, refs []string) ([]*domain.Task, error) {
	out := make([]*domain.Task, 0, len(refs))
	for _, ref := range refs {
		t, err := resolveTask(ctx, app, userID, ref)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}
