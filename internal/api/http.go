package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/victornm/pollquiz/internal/errors"
	"github.com/victornm/pollquiz/internal/report"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func (a *API) registerHTTP(r gin.IRouter) {
	v1 := r.Group("/v1")
	v1.POST("/sessions", a.handleStartSession)
	v1.GET("/sessions/:id", a.handleGetSession)
	v1.GET("/sessions/:id/leaderboard", a.handleGetLeaderboard)
	v1.GET("/sessions/:id/leaderboard.xlsx", a.handleExportLeaderboard)
	v1.GET("/users/:id/history", a.handleListHistory)
}

func (a *API) handleStartSession(c *gin.Context) {
	var req StartSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, errors.New(errors.CodeValidation, errors.WithMessagef("invalid request body"), errors.WithCause(err)))
		return
	}

	resp, err := a.startSession(c.Request.Context(), &req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, resp)
}

func (a *API) handleGetSession(c *gin.Context) {
	resp, err := a.GetSession(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (a *API) handleGetLeaderboard(c *gin.Context) {
	limit, err := queryInt(c, "limit")
	if err != nil {
		writeError(c, err)
		return
	}

	resp, err := a.getLeaderboard(c.Request.Context(), &GetLeaderboardRequest{SessionID: c.Param("id"), Limit: limit})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (a *API) handleExportLeaderboard(c *gin.Context) {
	id := c.Param("id")

	sb, err := a.scoreboard(c.Request.Context(), id, 0)
	if err != nil {
		writeError(c, err)
		return
	}

	c.Header("Content-Type", xlsxContentType)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"leaderboard-%s.xlsx\"", id))
	c.Status(http.StatusOK)

	if err := report.WriteXLSX(c.Writer, *sb); err != nil {
		slog.ErrorContext(c.Request.Context(), "api: export leaderboard failed", "session", id, "error", err)
	}
}

func (a *API) handleListHistory(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		writeError(c, errors.Validationf("invalid user id %q", c.Param("id")))
		return
	}

	limit, err := queryInt(c, "limit")
	if err != nil {
		writeError(c, err)
		return
	}

	resp, err := a.ListHistory(c.Request.Context(), userID, limit)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"history": resp})
}

func queryInt(c *gin.Context, key string) (int, error) {
	v := c.Query(key)
	if v == "" {
		return 0, nil
	}

	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, errors.Validationf("invalid %s %q", key, v)
	}
	return n, nil
}

func writeError(c *gin.Context, err error) {
	e := errors.Convert(err)
	if e.HTTPStatusCode() >= http.StatusInternalServerError {
		slog.ErrorContext(c.Request.Context(), "api: request failed", "path", c.FullPath(), "error", err)
	}

	c.AbortWithStatusJSON(e.HTTPStatusCode(), gin.H{"error": e})
}
