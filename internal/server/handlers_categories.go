package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "github.com/Downforcedemon/MinimalHome/internal/errors"
)

type createCategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type assignAppRequest struct {
	AppName string `json:"app_name"`
}

func (s *Server) handleCreateCategory(c echo.Context) error {
	var req createCategoryRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}

	category, err := s.registry.CreateCategory(c.Request().Context(), req.Name, req.Description)
	if err != nil {
		return translateDomainError(err, "failed to create category")
	}
	return c.JSON(http.StatusCreated, category)
}

func (s *Server) handleSearchCategories(c echo.Context) error {
	categories, err := s.registry.SearchCategories(c.Request().Context(), c.QueryParam("search"))
	if err != nil {
		return translateDomainError(err, "failed to search categories")
	}
	return c.JSON(http.StatusOK, categories)
}

func (s *Server) handleAssignApp(c echo.Context) error {
	categoryID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	var req assignAppRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}

	category, err := s.registry.AssignApp(c.Request().Context(), req.AppName, categoryID)
	if err != nil {
		return translateDomainError(err, "failed to assign app")
	}
	return c.JSON(http.StatusCreated, map[string]any{
		"app_name": req.AppName,
		"category": category,
	})
}

func (s *Server) handleUnassignApp(c echo.Context) error {
	categoryID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := s.registry.UnassignApp(c.Request().Context(), categoryID, c.Param("app")); err != nil {
		return translateDomainError(err, "failed to unassign app")
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) handleAppsInCategory(c echo.Context) error {
	categoryID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	apps, err := s.registry.AppsInCategory(c.Request().Context(), categoryID)
	if err != nil {
		return translateDomainError(err, "failed to list apps in category")
	}
	return c.JSON(http.StatusOK, apps)
}

func (s *Server) handleCategoryForApp(c echo.Context) error {
	category, err := s.registry.LookupCategoryForApp(c.Request().Context(), c.Param("app"))
	if err != nil {
		return translateDomainError(err, "failed to look up app category")
	}
	return c.JSON(http.StatusOK, category)
}
