package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"taskmanager/internal/errors"
	"taskmanager/internal/service"
)

// CategoryHandler handles category CRUD.
type CategoryHandler struct {
	categoryService service.CategoryService
}

// NewCategoryHandler creates a new category handler.
func NewCategoryHandler(categoryService service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// CategoryForm represents a category create/edit form submission.
type CategoryForm struct {
	CategoryName string `form:"category_name" validate:"required"`
}

// ListCategories returns all categories sorted by name ascending.
func (h *CategoryHandler) ListCategories(c echo.Context) error {
	categories, err := h.categoryService.List(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"categories": categories})
}

// AddCategoryForm answers the add-category page fetch.
func (h *CategoryHandler) AddCategoryForm(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

// AddCategory creates a category and redirects to the list.
func (h *CategoryHandler) AddCategory(c echo.Context) error {
	form, err := bindCategoryForm(c)
	if err != nil {
		return err
	}
	if _, err := h.categoryService.Add(c.Request().Context(), form.CategoryName); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.Redirect(http.StatusFound, "/categories")
}

// EditCategoryForm returns the category's current name for editing.
func (h *CategoryHandler) EditCategoryForm(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	category, err := h.categoryService.Get(c.Request().Context(), id)
	if err != nil {
		httpErr := errors.MapStorageError(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, echo.Map{"category": category})
}

// EditCategory overwrites the category name and redirects to the list.
func (h *CategoryHandler) EditCategory(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	form, err := bindCategoryForm(c)
	if err != nil {
		return err
	}
	if err := h.categoryService.Rename(c.Request().Context(), id, form.CategoryName); err != nil {
		httpErr := errors.MapStorageError(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.Redirect(http.StatusFound, "/categories")
}

// DeleteCategory deletes a category; its tasks go with it via the cascade.
func (h *CategoryHandler) DeleteCategory(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.categoryService.Delete(c.Request().Context(), id); err != nil {
		httpErr := errors.MapStorageError(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.Redirect(http.StatusFound, "/categories")
}

func bindCategoryForm(c echo.Context) (CategoryForm, error) {
	var form CategoryForm
	if err := c.Bind(&form); err != nil {
		return form, echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&form); err != nil {
		return form, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return form, nil
}
