package acghttp

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/tidwall/gjson"

	"astromap/internal/metadata"
	"astromap/internal/service"
)

// Router exposes the map computation endpoints.
type Router struct {
	svc         *service.Service
	recentLimit int
}

// NewRouter builds the API router.
func NewRouter(svc *service.Service, recentLimit int) *Router {
	if recentLimit <= 0 {
		recentLimit = 50
	}
	return &Router{svc: svc, recentLimit: recentLimit}
}

// Register mounts the routes under the given group.
func (r *Router) Register(group *gin.RouterGroup) {
	if group == nil {
		return
	}
	group.POST("/map", r.handleMap)
	group.POST("/batch", r.handleBatch)
	group.POST("/animate", r.handleAnimate)
	group.GET("/bodies", r.handleBodies)
	group.GET("/schema", r.handleSchema)
	group.GET("/cache/stats", r.handleCacheStats)
	group.GET("/journal", r.handleJournal)
}

// readBody slurps and sanity-checks the request payload before binding, so a
// syntactically broken body is rejected with a clear message.
func readBody(c *gin.Context) ([]byte, bool) {
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable request body"})
		return nil, false
	}
	if !gjson.ValidBytes(raw) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "request body is not valid JSON"})
		return nil, false
	}
	return raw, true
}

func (r *Router) handleMap(c *gin.Context) {
	raw, ok := readBody(c)
	if !ok {
		return
	}
	if epoch := gjson.GetBytes(raw, "epoch"); epoch.Exists() && epoch.Type != gjson.String {
		c.JSON(http.StatusBadRequest, gin.H{"error": "epoch must be an ISO-8601 string"})
		return
	}

	var req service.Request
	if err := bindJSON(raw, &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := r.svc.Compute(c.Request.Context(), req)
	if err != nil {
		writeComputeError(c, err)
		return
	}
	if res.CacheHit {
		c.Header("X-Cache", "hit")
	} else {
		c.Header("X-Cache", "miss")
	}
	c.JSON(http.StatusOK, res)
}

func (r *Router) handleBatch(c *gin.Context) {
	raw, ok := readBody(c)
	if !ok {
		return
	}
	var req service.BatchRequest
	if err := bindJSON(raw, &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := r.svc.Batch(c.Request.Context(), req)
	if err != nil {
		writeComputeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (r *Router) handleAnimate(c *gin.Context) {
	raw, ok := readBody(c)
	if !ok {
		return
	}
	var req service.AnimateRequest
	if err := bindJSON(raw, &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := r.svc.Animate(c.Request.Context(), req)
	if err != nil {
		writeComputeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (r *Router) handleBodies(c *gin.Context) {
	snap := r.svc.Bodies()
	c.JSON(http.StatusOK, gin.H{
		"version":   snap.Version,
		"loaded_at": snap.LoadedAt,
		"bodies":    snap.Bodies,
	})
}

func (r *Router) handleSchema(c *gin.Context) {
	c.JSON(http.StatusOK, metadata.SchemaDocument())
}

func (r *Router) handleCacheStats(c *gin.Context) {
	c.JSON(http.StatusOK, r.svc.CacheStats())
}

func (r *Router) handleJournal(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	if limit <= 0 || limit > r.recentLimit {
		limit = r.recentLimit
	}
	recs, err := r.svc.Journal().Recent(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"records": recs})
}

func bindJSON(raw []byte, dst any) error {
	return json.Unmarshal(raw, dst)
}

func writeComputeError(c *gin.Context, err error) {
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Msg, "kind": "validation"})
		return
	}
	c.JSON(http.StatusBadGateway, gin.H{"error": err.Error(), "kind": "calculation"})
}
