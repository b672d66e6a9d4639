package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"taskmanager/internal/errors"
	"taskmanager/internal/middleware"
	"taskmanager/internal/model"
	"taskmanager/internal/service"
)

const dueDateLayout = "2006-01-02"

// TaskHandler handles the profile page and task CRUD.
type TaskHandler struct {
	taskService     service.TaskService
	categoryService service.CategoryService
	authService     service.AuthService
}

// NewTaskHandler creates a new task handler.
func NewTaskHandler(taskService service.TaskService, categoryService service.CategoryService, authService service.AuthService) *TaskHandler {
	return &TaskHandler{
		taskService:     taskService,
		categoryService: categoryService,
		authService:     authService,
	}
}

// TaskForm represents a task create/edit form submission.
type TaskForm struct {
	TaskName        string `form:"task_name" validate:"required"`
	TaskDescription string `form:"task_description"`
	DueDate         string `form:"due_date" validate:"required"`
	CategoryID      uint   `form:"category_id" validate:"required"`
}

// Home lists the current user's tasks for the profile page.
func (h *TaskHandler) Home(c echo.Context) error {
	user, err := h.currentUser(c)
	if err != nil {
		return err
	}
	tasks, err := h.taskService.ListForOwner(c.Request().Context(), user.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{
		"user":  user,
		"tasks": tasks,
	})
}

// AddTaskForm returns the data the add-task form needs: the category list
// sorted by name.
func (h *TaskHandler) AddTaskForm(c echo.Context) error {
	categories, err := h.categoryService.List(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"categories": categories})
}

// AddTask creates a task owned by the current user and redirects home.
func (h *TaskHandler) AddTask(c echo.Context) error {
	in, err := h.bindTaskForm(c)
	if err != nil {
		return err
	}
	user, err := h.currentUser(c)
	if err != nil {
		return err
	}
	if _, err := h.taskService.Add(c.Request().Context(), user.ID, in); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.Redirect(http.StatusFound, "/")
}

// EditTaskForm returns the task's current field values plus the sorted
// category list. A non-owner gets a bare redirect home, not an error.
func (h *TaskHandler) EditTaskForm(c echo.Context) error {
	task, ok, err := h.loadOwnedTask(c)
	if err != nil {
		return err
	}
	if !ok {
		return c.Redirect(http.StatusFound, "/")
	}
	categories, err := h.categoryService.List(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{
		"task":       task,
		"categories": categories,
	})
}

// EditTask overwrites all mutable fields of an owned task. Non-owner
// submissions are silently dropped and redirected home.
func (h *TaskHandler) EditTask(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	in, err := h.bindTaskForm(c)
	if err != nil {
		return err
	}
	user, err := h.currentUser(c)
	if err != nil {
		return err
	}
	if err := h.taskService.Update(c.Request().Context(), id, user.ID, in); err != nil {
		if err == service.ErrNotTaskOwner {
			return c.Redirect(http.StatusFound, "/")
		}
		httpErr := errors.MapStorageError(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.Redirect(http.StatusFound, "/")
}

// DeleteTask deletes an owned task. Non-owner attempts leave the row
// untouched; either way the caller lands back home.
func (h *TaskHandler) DeleteTask(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	user, err := h.currentUser(c)
	if err != nil {
		return err
	}
	if err := h.taskService.Delete(c.Request().Context(), id, user.ID); err != nil {
		if err == service.ErrNotTaskOwner {
			return c.Redirect(http.StatusFound, "/")
		}
		httpErr := errors.MapStorageError(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.Redirect(http.StatusFound, "/")
}

// loadOwnedTask loads the task in the id segment for the current user.
// ok=false signals an ownership miss; not-found and bad-id come back as
// HTTP errors.
func (h *TaskHandler) loadOwnedTask(c echo.Context) (*model.Task, bool, error) {
	id, err := parseID(c)
	if err != nil {
		return nil, false, err
	}
	user, err := h.currentUser(c)
	if err != nil {
		return nil, false, err
	}
	task, err := h.taskService.GetOwned(c.Request().Context(), id, user.ID)
	if err != nil {
		if err == service.ErrNotTaskOwner {
			return nil, false, nil
		}
		httpErr := errors.MapStorageError(err)
		return nil, false, echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return task, true, nil
}

func (h *TaskHandler) bindTaskForm(c echo.Context) (service.TaskInput, error) {
	var form TaskForm
	if err := c.Bind(&form); err != nil {
		return service.TaskInput{}, echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&form); err != nil {
		return service.TaskInput{}, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	dueDate, err := time.Parse(dueDateLayout, form.DueDate)
	if err != nil {
		return service.TaskInput{}, echo.NewHTTPError(http.StatusBadRequest, "invalid due_date, expected YYYY-MM-DD")
	}
	return service.TaskInput{
		TaskName:        form.TaskName,
		TaskDescription: form.TaskDescription,
		IsUrgent:        c.FormValue("is_urgent") != "", // checkbox presence
		DueDate:         dueDate,
		CategoryID:      form.CategoryID,
	}, nil
}

// currentUser resolves the username the login gate stored in the context.
func (h *TaskHandler) currentUser(c echo.Context) (*model.User, error) {
	username, _ := c.Get(middleware.ContextUserKey).(string)
	if username == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "no session user")
	}
	user, err := h.authService.CurrentUser(c.Request().Context(), username)
	if err != nil {
		httpErr := errors.MapStorageError(err)
		return nil, echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return user, nil
}

func parseID(c echo.Context) (uint, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return uint(id), nil
}
