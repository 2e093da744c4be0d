package client

import (
	"context"
	"sort"

	"github.com/yukikurage/taskhive/internal/dto"
	"golang.org/x/sync/errgroup"
)

// BoardPage is everything the board view renders: the board and its tasks.
type BoardPage struct {
	Board dto.BoardDTO
	Tasks []dto.TaskDTO
}

// LoadBoardPage fetches a board and its tasks concurrently. Either failure
// fails the whole load.
func (c *Client) LoadBoardPage(ctx context.Context, boardID uint64) (*BoardPage, error) {
	var (
		board *dto.BoardDTO
		tasks []dto.TaskDTO
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		board, err = c.GetBoard(ctx, boardID)
		return err
	})
	g.Go(func() error {
		var err error
		tasks, err = c.ListTasks(ctx, boardID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &BoardPage{Board: *board, Tasks: tasks}, nil
}

// Column returns the tasks shown in a column, oldest first.
func (p *BoardPage) Column(columnID string) []dto.TaskDTO {
	var tasks []dto.TaskDTO
	for _, task := range p.Tasks {
		if task.Column == columnID {
			tasks = append(tasks, task)
		}
	}
	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].CreatedAt.Before(tasks[j].CreatedAt)
	})
	return tasks
}

// DropTask moves a task dropped onto a column. Dropping a task onto its own
// column is a no-op; otherwise it lands at position 0 and the page's copy of
// the task is replaced with the server's.
func (c *Client) DropTask(ctx context.Context, page *BoardPage, taskID uint64, columnID string) error {
	idx := -1
	for i, task := range page.Tasks {
		if task.ID == taskID {
			idx = i
			break
		}
	}
	if idx < 0 || page.Tasks[idx].Column == columnID {
		return nil
	}

	moved, err := c.MoveTask(ctx, taskID, columnID, 0)
	if err != nil {
		return err
	}
	page.Tasks[idx] = *moved
	return nil
}
