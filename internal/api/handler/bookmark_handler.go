package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/linksaver/linksaver/internal/core/ports"
)

// BookmarkHandler handles HTTP requests for bookmark operations. Every
// route it serves sits behind the Auth middleware.
type BookmarkHandler struct {
	service ports.BookmarkService
}

func NewBookmarkHandler(service ports.BookmarkService) *BookmarkHandler {
	return &BookmarkHandler{service: service}
}

// List handles GET /bookmarks.
//
// @Summary      List the caller's bookmarks in manual sort order
// @Tags         bookmarks
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  bookmarkListResponse
// @Failure      401  {object}  map[string]string
// @Router       /bookmarks [get]
func (h *BookmarkHandler) List(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	bookmarks, err := h.service.List(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, bookmarkListResponse{Bookmarks: bookmarks})
}

// Create handles POST /bookmarks. Metadata and summary acquisition run
// inside the service; third-party outages degrade to placeholder values
// and never fail the request.
//
// @Summary      Save a URL
// @Tags         bookmarks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createBookmarkRequest  true  "URL and optional tags"
// @Success      201   {object}  bookmarkResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /bookmarks [post]
func (h *BookmarkHandler) Create(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req createBookmarkRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	bookmark, err := h.service.Create(c.Request().Context(), userID, req.URL, req.Tags)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, bookmarkResponse{Bookmark: bookmark})
}

// Update handles PUT /bookmarks/:id. Only the supplied fields change.
//
// @Summary      Edit a bookmark's title and/or tags
// @Tags         bookmarks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                 true  "Bookmark id"
// @Param        body  body      updateBookmarkRequest  true  "Fields to change"
// @Success      200   {object}  bookmarkResponse
// @Failure      404   {object}  map[string]string
// @Router       /bookmarks/{id} [put]
func (h *BookmarkHandler) Update(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req updateBookmarkRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	bookmark, err := h.service.Update(c.Request().Context(), userID, c.Param("id"), ports.UpdateBookmarkInput{
		Title: req.Title,
		Tags:  req.Tags,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, bookmarkResponse{Bookmark: bookmark})
}

// Delete handles DELETE /bookmarks/:id.
//
// @Summary      Delete a bookmark
// @Tags         bookmarks
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Bookmark id"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /bookmarks/{id} [delete]
func (h *BookmarkHandler) Delete(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), userID, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "bookmark deleted"})
}

// Reorder handles PUT /bookmarks/reorder. The submitted id list must be
// exactly the caller's bookmark set; partial lists are rejected.
//
// @Summary      Apply a manual sort order
// @Tags         bookmarks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      reorderRequest  true  "Full bookmark id list in desired order"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /bookmarks/reorder [put]
func (h *BookmarkHandler) Reorder(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req reorderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.service.Reorder(c.Request().Context(), userID, req.BookmarkIDs); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "bookmarks reordered"})
}

// RefreshSummary handles POST /bookmarks/:id/summary. Reruns the
// summary pipeline only; metadata is untouched.
//
// @Summary      Regenerate a bookmark's summary
// @Tags         bookmarks
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Bookmark id"
// @Success      200  {object}  bookmarkResponse
// @Failure      404  {object}  map[string]string
// @Router       /bookmarks/{id}/summary [post]
func (h *BookmarkHandler) RefreshSummary(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	bookmark, err := h.service.RefreshSummary(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, bookmarkResponse{Bookmark: bookmark})
}
