package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/azizbekh/staffdesk/internal/model"
	"github.com/azizbekh/staffdesk/internal/repository"
)

// PeopleHandler serves one person collection; it is mounted twice, once
// as /managers and once as /employees.
type PeopleHandler struct {
	Store repository.Store
	Type  model.PersonType
}

func NewPeopleHandler(store repository.Store, t model.PersonType) *PeopleHandler {
	return &PeopleHandler{Store: store, Type: t}
}

func (h *PeopleHandler) List(c *gin.Context) {
	people, err := h.Store.ListPeople(c.Request.Context(), h.Type)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if filter := c.Query("name_like"); filter != "" {
		needle := strings.ToLower(filter)
		matched := people[:0]
		for _, p := range people {
			if strings.Contains(strings.ToLower(p.FullName()), needle) {
				matched = append(matched, p)
			}
		}
		people = matched
	}

	c.JSON(http.StatusOK, pageWindow(c, people))
}

func (h *PeopleHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	p, err := h.Store.GetPerson(c.Request.Context(), h.Type, id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *PeopleHandler) Create(c *gin.Context) {
	var p model.Person
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	created, err := h.Store.CreatePerson(c.Request.Context(), h.Type, p)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *PeopleHandler) Patch(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var fields map[string]any
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	updated, err := h.Store.PatchPerson(c.Request.Context(), h.Type, id, fields)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *PeopleHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if err := h.Store.DeletePerson(c.Request.Context(), h.Type, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{})
}
