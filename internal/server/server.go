package server

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/agenthands/recall/internal/tools"
)

// Server exposes the tool surface over plain HTTP for hosts that do not
// speak MCP. Every endpoint takes JSON in and returns the same rendered text
// block the MCP tools produce.
type Server struct {
	deps *tools.Deps
}

func New(deps *tools.Deps) *Server {
	return &Server{deps: deps}
}

func (s *Server) SetupRouter() *gin.Engine {
	r := gin.Default()

	r.POST("/tools/search_memories", s.searchMemories)
	r.POST("/tools/add_memory", s.addMemory)
	r.POST("/tools/list_memories", s.listMemories)
	r.POST("/tools/delete_memory", s.deleteMemory)
	r.POST("/tools/search_graph", s.searchGraph)
	r.POST("/tools/get_entity", s.getEntity)

	return r
}

type queryRequest struct {
	Query string `json:"query" binding:"required"`
}

func (s *Server) searchMemories(c *gin.Context) {
	var req queryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	result, err := s.deps.SearchMemories(c.Request.Context(), req.Query)
	if err != nil {
		log.Error("search_memories failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": result})
}

type addRequest struct {
	Text string `json:"text" binding:"required"`
}

func (s *Server) addMemory(c *gin.Context) {
	var req addRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	result, err := s.deps.AddMemory(c.Request.Context(), req.Text)
	if err != nil {
		log.Error("add_memory failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": result})
}

func (s *Server) listMemories(c *gin.Context) {
	result, err := s.deps.ListMemories(c.Request.Context())
	if err != nil {
		log.Error("list_memories failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": result})
}

type deleteRequest struct {
	MemoryID string `json:"memory_id" binding:"required"`
}

func (s *Server) deleteMemory(c *gin.Context) {
	var req deleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	result, err := s.deps.DeleteMemory(c.Request.Context(), req.MemoryID)
	if err != nil {
		log.Error("delete_memory failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": result})
}

func (s *Server) searchGraph(c *gin.Context) {
	var req queryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	result, err := s.deps.SearchGraph(c.Request.Context(), req.Query)
	if err != nil {
		log.Error("search_graph failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": result})
}

type entityRequest struct {
	Name string `json:"name" binding:"required"`
}

func (s *Server) getEntity(c *gin.Context) {
	var req entityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	result, err := s.deps.GetEntity(c.Request.Context(), req.Name)
	if err != nil {
		log.Error("get_entity failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": result})
}
